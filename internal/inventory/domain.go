package inventory

import (
	"time"
)

// MovementType enumerates supported inventory movements.
type MovementType string

const (
	// MovementPurchase represents an inbound movement from a purchase.
	MovementPurchase MovementType = "Purchase"
	// MovementSale represents an outbound movement from a sale.
	MovementSale MovementType = "Sale"
	// MovementOpening seeds the initial stock position.
	MovementOpening MovementType = "Opening Balance"
)

// Movement models one inventory row. Sale rows carry the cost locked in
// when the sale was recorded, not the current average.
type Movement struct {
	ID             int64
	TenantID       string
	JournalEntryID *int64
	Date           time.Time
	Type           MovementType
	Category       string
	UnitPrice      float64
	Qty            int
	Total          float64
	CreatedAt      time.Time
}

// Inbound reports whether the movement adds stock.
func (m Movement) Inbound() bool {
	return m.Type == MovementPurchase || m.Type == MovementOpening
}

// Balance summarises the stock position of one category.
type Balance struct {
	Category string
	Qty      int
	AvgCost  float64
	Value    float64
}

// CardRow is one line of a stock card with the running position after it.
type CardRow struct {
	MovementID   int64
	Date         time.Time
	Type         MovementType
	QtyIn        int
	UnitPriceIn  float64
	TotalIn      float64
	QtyOut       int
	UnitPriceOut float64
	TotalOut     float64
	BalanceQty   int
	BalanceAvg   float64
	BalanceValue float64
}

// AppendInput describes a directly appended movement.
type AppendInput struct {
	TenantID  string
	Date      time.Time
	Type      MovementType
	Category  string
	UnitPrice float64
	Qty       int
}

// RecomputeResult reports what a cost recomputation changed.
type RecomputeResult struct {
	Category string
	Scanned  int
	Repaired int
	Balance  Balance
}

// StockSummary aggregates head count and value across categories.
type StockSummary struct {
	TotalQty   int
	TotalValue float64
	Categories []Balance
}

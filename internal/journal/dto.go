package journal

import "time"

// MiscInput posts a one-debit one-credit entry of equal amount. Tagging
// a counterparty makes the entry visible on that party's subledger card,
// which is how receivables and payables get settled.
type MiscInput struct {
	TenantID      string
	Date          time.Time
	Description   string
	DebitAccount  string
	CreditAccount string
	Amount        float64
	Counterparty  string
}

// TradeInput posts a livestock purchase or sale.
type TradeInput struct {
	TenantID     string
	Date         time.Time
	Description  string
	Method       Method
	Counterparty string
	Category     string
	UnitPrice    float64
	Qty          int
}

// OpeningAccountInput seeds one account's opening balance. The entry is
// balanced against the owner capital account.
type OpeningAccountInput struct {
	TenantID    string
	Date        time.Time
	Account     string
	Debit       bool
	Amount      float64
	Description string
}

// OpeningKind distinguishes counterparty opening balances.
type OpeningKind string

const (
	OpeningReceivable OpeningKind = "receivable"
	OpeningPayable    OpeningKind = "payable"
)

// OpeningCounterpartyInput seeds a receivable or payable opening balance
// for one counterparty.
type OpeningCounterpartyInput struct {
	TenantID     string
	Date         time.Time
	Counterparty string
	Kind         OpeningKind
	Amount       float64
}

// OpeningInventoryInput seeds a livestock category's opening stock.
type OpeningInventoryInput struct {
	TenantID  string
	Date      time.Time
	Category  string
	UnitPrice float64
	Qty       int
}

// DeleteInput removes entries of one category by id.
type DeleteInput struct {
	TenantID string
	Category Category
	IDs      []int64
}

// DeleteResult reports how many rows a deletion removed.
type DeleteResult struct {
	JournalDeleted   int64
	InventoryDeleted int64
	Summary          string
}

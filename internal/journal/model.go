package journal

import (
	"math"
	"time"

	"github.com/subuhjayafarm/farmbook/internal/shared"
)

// Method enumerates settlement methods.
type Method string

const (
	MethodCash    Method = "Cash"
	MethodCredit  Method = "Credit"
	MethodOpening Method = "Opening Balance"
)

// Category enumerates entry categories.
type Category string

const (
	CategorySale     Category = "Sale"
	CategoryPurchase Category = "Purchase"
	CategoryMisc     Category = "Miscellaneous"
	CategoryOpening  Category = "Opening Balance"
)

// balanceTolerance is the cent tolerance under which debit and credit
// totals are considered equal.
const balanceTolerance = 0.01

// PostingLine is one account posting within an entry.
type PostingLine struct {
	Account string
	Amount  float64
}

// Entry is a double-entry journal record. At most two debit and two
// credit lines; totals must balance before the entry is stored.
type Entry struct {
	ID                int64
	TenantID          string
	Date              time.Time
	Description       string
	Method            Method
	Category          Category
	Debits            []PostingLine
	Credits           []PostingLine
	Counterparty      string
	LivestockCategory string
	UnitPrice         float64
	UnitQty           int
	TotalValue        float64
	CreatedAt         time.Time
}

// DebitTotal sums the debit side.
func (e Entry) DebitTotal() float64 {
	var t float64
	for _, l := range e.Debits {
		t += l.Amount
	}
	return t
}

// CreditTotal sums the credit side.
func (e Entry) CreditTotal() float64 {
	var t float64
	for _, l := range e.Credits {
		t += l.Amount
	}
	return t
}

// Validate enforces the shape every stored entry must have: both sides
// populated, at most two lines per side, positive line amounts and
// balanced totals. Unbalanced entries are rejected, never stored.
func (e Entry) Validate() error {
	if len(e.Debits) == 0 || len(e.Credits) == 0 {
		return shared.ErrTooFewLines
	}
	if len(e.Debits) > 2 || len(e.Credits) > 2 {
		return shared.ErrTooManyLines
	}
	for _, l := range append(append([]PostingLine{}, e.Debits...), e.Credits...) {
		if l.Account == "" {
			return shared.Invalid(shared.KindMissingField, "posting line requires an account")
		}
		if l.Amount <= 0 {
			return shared.Invalid(shared.KindBadAmount, "posting amount must be positive, got %.2f", l.Amount)
		}
	}
	if e.Date.IsZero() {
		return shared.Invalid(shared.KindBadDate, "entry date required")
	}
	if math.Abs(e.DebitTotal()-e.CreditTotal()) >= balanceTolerance {
		return shared.ErrUnbalanced
	}
	return nil
}

// DateKey renders the entry date as YYYY-MM-DD, the sort and wire format.
func (e Entry) DateKey() string {
	return e.Date.Format("2006-01-02")
}

package accounts

// Class enumerates account classifications in the chart of accounts.
type Class string

const (
	ClassAsset     Class = "ASSET"
	ClassLiability Class = "LIABILITY"
	ClassEquity    Class = "EQUITY"
	ClassRevenue   Class = "REVENUE"
	ClassExpense   Class = "EXPENSE"
	ClassContra    Class = "CONTRA"
)

// Side enumerates the normal balance side of an account.
type Side string

const (
	SideDebit  Side = "DEBIT"
	SideCredit Side = "CREDIT"
)

// Well-known account names referenced by the posting rules.
const (
	Cash            = "Cash"
	TradeReceivable = "Trade Receivable"
	TradePayable    = "Trade Payable"
	OtherPayable    = "Other Payables"
	OwnerCapital    = "Owner Capital"
	OwnerDrawings   = "Owner Drawings"
	SalesRevenue    = "Sales Revenue"
	OtherIncome     = "Other Income"
	CostOfGoodsSold = "Cost of Goods Sold"
	AccumDepr       = "Accumulated Depreciation"
)

// Fixed asset accounts reported net of accumulated depreciation.
var FixedAssets = []string{"Barn Building", "Vehicles"}

var assetAccounts = []string{
	Cash, TradeReceivable,
	"Male Goat Inventory", "Female Goat Inventory",
	"Young Goat Biological Assets",
	"Feed Inventory", "Medicine Inventory",
	"Barn Building", "Vehicles",
}

var liabilityAccounts = []string{TradePayable, OtherPayable}

var equityAccounts = []string{OwnerCapital, OwnerDrawings}

var revenueAccounts = []string{SalesRevenue, OtherIncome}

var expenseAccounts = []string{
	CostOfGoodsSold, "Wages Expense", "Barn Repair Expense",
	"Utilities Expense", "Feed Expense", "Medicine Expense",
	"Depreciation Expense",
}

var contraAccounts = []string{AccumDepr}

var classByName = buildIndex()

func buildIndex() map[string]Class {
	idx := make(map[string]Class)
	for _, n := range assetAccounts {
		idx[n] = ClassAsset
	}
	for _, n := range liabilityAccounts {
		idx[n] = ClassLiability
	}
	for _, n := range equityAccounts {
		idx[n] = ClassEquity
	}
	for _, n := range revenueAccounts {
		idx[n] = ClassRevenue
	}
	for _, n := range expenseAccounts {
		idx[n] = ClassExpense
	}
	for _, n := range contraAccounts {
		idx[n] = ClassContra
	}
	return idx
}

// All returns every account name in the chart, in chart order.
func All() []string {
	out := make([]string, 0, len(classByName))
	out = append(out, assetAccounts...)
	out = append(out, liabilityAccounts...)
	out = append(out, equityAccounts...)
	out = append(out, revenueAccounts...)
	out = append(out, expenseAccounts...)
	out = append(out, contraAccounts...)
	return out
}

// Classify returns the class of a named account. Unknown names report
// ClassAsset semantics for balance purposes via NormalSide, but are
// flagged by the second return value.
func Classify(name string) (Class, bool) {
	c, ok := classByName[name]
	return c, ok
}

// NormalSide returns the side on which the account naturally accumulates
// value. Owner Drawings is debit-normal despite belonging to equity;
// unclassified names default to debit-normal.
func NormalSide(name string) Side {
	if name == OwnerDrawings {
		return SideDebit
	}
	class, ok := classByName[name]
	if !ok {
		return SideDebit
	}
	switch class {
	case ClassAsset, ClassExpense:
		return SideDebit
	default:
		return SideCredit
	}
}

// Sign returns +1 for debit-normal accounts and -1 for credit-normal ones.
func Sign(name string) float64 {
	if NormalSide(name) == SideDebit {
		return 1
	}
	return -1
}

// OperatingExpense reports whether the account is an expense other than cost of
// goods sold. The income statement lists these as operating expenses.
func OperatingExpense(name string) bool {
	if name == CostOfGoodsSold {
		return false
	}
	c, ok := classByName[name]
	return ok && c == ClassExpense
}

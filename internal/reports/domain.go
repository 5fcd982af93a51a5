package reports

// AccountAmount is one labelled amount on a report.
type AccountAmount struct {
	Account string
	Amount  float64
}

// TrialBalanceLine places an account's balance in its normal column.
type TrialBalanceLine struct {
	Account string
	Debit   float64
	Credit  float64
}

// TrialBalance lists every account with activity. The report is produced
// even when out of balance; the caller gets the flag and a warning.
type TrialBalance struct {
	Lines       []TrialBalanceLine
	TotalDebit  float64
	TotalCredit float64
	Balanced    bool
	Warning     string
}

// IncomeStatement isolates cost of goods sold from operating expenses so
// gross profit is visible.
type IncomeStatement struct {
	Revenue       []AccountAmount
	TotalRevenue  float64
	COGS          float64
	GrossProfit   float64
	Expenses      []AccountAmount
	TotalExpenses float64
	NetIncome     float64
}

// BalanceSheet decomposes equity into its opening, contributed, drawings
// and earned components.
type BalanceSheet struct {
	CurrentAssets          []AccountAmount
	FixedAssets            []AccountAmount
	TotalAssets            float64
	Liabilities            []AccountAmount
	TotalLiabilities       float64
	OpeningCapital         float64
	ContributedCapital     float64
	Drawings               float64
	NetIncome              float64
	TotalEquity            float64
	TotalLiabilitiesEquity float64
	Balanced               bool
	Warning                string
}

// KPI carries the dashboard headline numbers.
type KPI struct {
	Cash       float64
	TotalSales float64
	NetIncome  float64
	StockQty   int
	StockValue float64
}

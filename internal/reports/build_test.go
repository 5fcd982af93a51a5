package reports

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/subuhjayafarm/farmbook/internal/accounts"
	"github.com/subuhjayafarm/farmbook/internal/inventory"
	"github.com/subuhjayafarm/farmbook/internal/journal"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func entry(id int64, date string, category journal.Category, debits, credits []journal.PostingLine) journal.Entry {
	return journal.Entry{
		ID: id, Date: day(date), Category: category,
		Debits: debits, Credits: credits,
	}
}

// goatBook is the canonical scenario: 500 opening cash, buy 10 goats at
// 100, sell 4 at 150 for cash, pay 30 of feed.
func goatBook() []journal.Entry {
	return []journal.Entry{
		entry(1, "2025-01-01", journal.CategoryOpening,
			[]journal.PostingLine{{Account: accounts.Cash, Amount: 1500}},
			[]journal.PostingLine{{Account: accounts.OwnerCapital, Amount: 1500}}),
		entry(2, "2025-01-05", journal.CategoryPurchase,
			[]journal.PostingLine{{Account: "Male Goat Inventory", Amount: 1000}},
			[]journal.PostingLine{{Account: accounts.Cash, Amount: 1000}}),
		entry(3, "2025-01-20", journal.CategorySale,
			[]journal.PostingLine{
				{Account: accounts.Cash, Amount: 600},
				{Account: accounts.CostOfGoodsSold, Amount: 400},
			},
			[]journal.PostingLine{
				{Account: accounts.SalesRevenue, Amount: 600},
				{Account: "Male Goat Inventory", Amount: 400},
			}),
		entry(4, "2025-01-25", journal.CategoryMisc,
			[]journal.PostingLine{{Account: "Feed Expense", Amount: 30}},
			[]journal.PostingLine{{Account: accounts.Cash, Amount: 30}}),
	}
}

func TestTrialBalanceColumnsAndTotals(t *testing.T) {
	tb := BuildTrialBalance(goatBook(), true)

	require.True(t, tb.Balanced)
	require.Empty(t, tb.Warning)
	require.InDelta(t, tb.TotalDebit, tb.TotalCredit, 0.001)

	byAccount := make(map[string]TrialBalanceLine)
	for _, l := range tb.Lines {
		byAccount[l.Account] = l
	}
	require.InDelta(t, 1070.0, byAccount[accounts.Cash].Debit, 0.001)
	require.InDelta(t, 600.0, byAccount["Male Goat Inventory"].Debit, 0.001)
	require.InDelta(t, 600.0, byAccount[accounts.SalesRevenue].Credit, 0.001)
	require.InDelta(t, 1500.0, byAccount[accounts.OwnerCapital].Credit, 0.001)
}

func TestTrialBalanceExcludeOpening(t *testing.T) {
	tb := BuildTrialBalance(goatBook(), false)

	byAccount := make(map[string]TrialBalanceLine)
	for _, l := range tb.Lines {
		byAccount[l.Account] = l
	}
	// Without the opening injection cash is a net outflow.
	require.InDelta(t, 430.0, byAccount[accounts.Cash].Credit, 0.001)
	_, hasCapital := byAccount[accounts.OwnerCapital]
	require.False(t, hasCapital)
	require.True(t, tb.Balanced)
}

func TestTrialBalanceFlagsImbalance(t *testing.T) {
	entries := []journal.Entry{
		entry(1, "2025-01-01", journal.CategoryMisc,
			[]journal.PostingLine{{Account: accounts.Cash, Amount: 100}},
			[]journal.PostingLine{{Account: accounts.SalesRevenue, Amount: 90}}),
	}

	tb := BuildTrialBalance(entries, true)
	require.False(t, tb.Balanced)
	require.NotEmpty(t, tb.Warning)
	require.InDelta(t, 100.0, tb.TotalDebit, 0.001)
	require.InDelta(t, 90.0, tb.TotalCredit, 0.001)
}

// Randomly generated balanced entries must always produce a balanced
// trial balance, opening entries in or out.
func TestTrialBalanceBalancedForBalancedEntries(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	names := accounts.All()

	var entries []journal.Entry
	for i := 0; i < 60; i++ {
		amount := float64(rng.Intn(99900)+100) / 100
		cat := journal.CategoryMisc
		if rng.Intn(5) == 0 {
			cat = journal.CategoryOpening
		}
		entries = append(entries, entry(int64(i+1), "2025-03-01", cat,
			[]journal.PostingLine{{Account: names[rng.Intn(len(names))], Amount: amount}},
			[]journal.PostingLine{{Account: names[rng.Intn(len(names))], Amount: amount}}))
	}

	require.True(t, BuildTrialBalance(entries, true).Balanced)
	require.True(t, BuildTrialBalance(entries, false).Balanced)
}

func TestIncomeStatementIsolatesCOGS(t *testing.T) {
	is := BuildIncomeStatement(goatBook())

	require.InDelta(t, 600.0, is.TotalRevenue, 0.001)
	require.InDelta(t, 400.0, is.COGS, 0.001)
	require.InDelta(t, 200.0, is.GrossProfit, 0.001)
	require.InDelta(t, 30.0, is.TotalExpenses, 0.001)
	require.InDelta(t, 170.0, is.NetIncome, 0.001)

	for _, e := range is.Expenses {
		require.NotEqual(t, accounts.CostOfGoodsSold, e.Account)
	}
}

func TestBalanceSheetEquityDecomposition(t *testing.T) {
	book := append(goatBook(),
		entry(5, "2025-02-01", journal.CategoryMisc,
			[]journal.PostingLine{{Account: accounts.Cash, Amount: 250}},
			[]journal.PostingLine{{Account: accounts.OwnerCapital, Amount: 250}}),
		entry(6, "2025-02-10", journal.CategoryMisc,
			[]journal.PostingLine{{Account: accounts.OwnerDrawings, Amount: 40}},
			[]journal.PostingLine{{Account: accounts.Cash, Amount: 40}}),
	)

	bs := BuildBalanceSheet(book)

	require.InDelta(t, 1500.0, bs.OpeningCapital, 0.001)
	require.InDelta(t, 250.0, bs.ContributedCapital, 0.001)
	require.InDelta(t, 40.0, bs.Drawings, 0.001)
	require.InDelta(t, 170.0, bs.NetIncome, 0.001)
	require.InDelta(t, 1880.0, bs.TotalEquity, 0.001)

	require.True(t, bs.Balanced)
	require.InDelta(t, bs.TotalAssets, bs.TotalLiabilitiesEquity, 0.001)
}

func TestBalanceSheetSplitsFixedAssets(t *testing.T) {
	book := append(goatBook(),
		entry(5, "2025-02-01", journal.CategoryMisc,
			[]journal.PostingLine{{Account: "Barn Building", Amount: 5000}},
			[]journal.PostingLine{{Account: accounts.OwnerCapital, Amount: 5000}}),
		entry(6, "2025-02-28", journal.CategoryMisc,
			[]journal.PostingLine{{Account: "Depreciation Expense", Amount: 100}},
			[]journal.PostingLine{{Account: accounts.AccumDepr, Amount: 100}}),
	)

	bs := BuildBalanceSheet(book)

	fixed := make(map[string]float64)
	for _, a := range bs.FixedAssets {
		fixed[a.Account] = a.Amount
	}
	require.InDelta(t, 5000.0, fixed["Barn Building"], 0.001)
	// Accumulated depreciation nets against fixed assets.
	require.InDelta(t, -100.0, fixed[accounts.AccumDepr], 0.001)

	for _, a := range bs.CurrentAssets {
		require.NotEqual(t, "Barn Building", a.Account)
	}
	require.True(t, bs.Balanced)
}

func TestKPIHeadlines(t *testing.T) {
	kpi := BuildKPI(goatBook(), inventory.StockSummary{TotalQty: 6, TotalValue: 600})

	require.InDelta(t, 1070.0, kpi.Cash, 0.001)
	require.InDelta(t, 600.0, kpi.TotalSales, 0.001)
	require.InDelta(t, 170.0, kpi.NetIncome, 0.001)
	require.Equal(t, 6, kpi.StockQty)
	require.InDelta(t, 600.0, kpi.StockValue, 0.001)
}

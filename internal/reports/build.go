package reports

import (
	"math"

	"github.com/subuhjayafarm/farmbook/internal/accounts"
	"github.com/subuhjayafarm/farmbook/internal/inventory"
	"github.com/subuhjayafarm/farmbook/internal/journal"
	"github.com/subuhjayafarm/farmbook/internal/ledger"
	"github.com/subuhjayafarm/farmbook/internal/shared"
)

const tolerance = 0.01

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// chartAccounts returns the chart plus any account names that appear in
// entries but not in the chart, preserving chart order.
func chartAccounts(entries []journal.Entry) []string {
	names := accounts.All()
	known := make(map[string]struct{}, len(names))
	for _, n := range names {
		known[n] = struct{}{}
	}
	for _, e := range entries {
		for _, l := range append(append([]journal.PostingLine{}, e.Debits...), e.Credits...) {
			if _, ok := known[l.Account]; !ok {
				known[l.Account] = struct{}{}
				names = append(names, l.Account)
			}
		}
	}
	return names
}

// BuildTrialBalance places each account's net posting activity in its
// debit or credit column. Accounts with under a cent of net activity are
// skipped. The report is still produced when the columns differ; the
// Balanced flag and warning carry the discrepancy.
func BuildTrialBalance(entries []journal.Entry, includeOpening bool) TrialBalance {
	var tb TrialBalance
	for _, name := range chartAccounts(entries) {
		var net float64
		for _, e := range entries {
			if !includeOpening && e.Category == journal.CategoryOpening {
				continue
			}
			for _, l := range e.Debits {
				if l.Account == name {
					net += l.Amount
				}
			}
			for _, l := range e.Credits {
				if l.Account == name {
					net -= l.Amount
				}
			}
		}
		net = round2(net)
		if math.Abs(net) < tolerance {
			continue
		}
		line := TrialBalanceLine{Account: name}
		if net > 0 {
			line.Debit = net
		} else {
			line.Credit = -net
		}
		tb.Lines = append(tb.Lines, line)
		tb.TotalDebit = round2(tb.TotalDebit + line.Debit)
		tb.TotalCredit = round2(tb.TotalCredit + line.Credit)
	}
	diff := round2(tb.TotalDebit - tb.TotalCredit)
	tb.Balanced = math.Abs(diff) < tolerance
	if !tb.Balanced {
		tb.Warning = shared.Summary("trial balance out of balance by %.2f", diff)
	}
	return tb
}

// BuildIncomeStatement folds revenue and expense balances, isolating cost
// of goods sold so gross profit is reported.
func BuildIncomeStatement(entries []journal.Entry) IncomeStatement {
	var is IncomeStatement
	for _, name := range chartAccounts(entries) {
		class, ok := accounts.Classify(name)
		if !ok {
			continue
		}
		bal := ledger.AccountBalanceFrom(entries, name, true)
		if math.Abs(bal) < tolerance {
			continue
		}
		switch {
		case class == accounts.ClassRevenue:
			is.Revenue = append(is.Revenue, AccountAmount{Account: name, Amount: bal})
			is.TotalRevenue = round2(is.TotalRevenue + bal)
		case name == accounts.CostOfGoodsSold:
			is.COGS = bal
		case accounts.OperatingExpense(name):
			is.Expenses = append(is.Expenses, AccountAmount{Account: name, Amount: bal})
			is.TotalExpenses = round2(is.TotalExpenses + bal)
		}
	}
	is.GrossProfit = round2(is.TotalRevenue - is.COGS)
	is.NetIncome = round2(is.GrossProfit - is.TotalExpenses)
	return is
}

// BuildBalanceSheet assembles assets, liabilities and the decomposed
// equity section. Opening capital is the part of owner capital that came
// from opening entries; contributed capital is the rest.
func BuildBalanceSheet(entries []journal.Entry) BalanceSheet {
	var bs BalanceSheet

	fixed := make(map[string]struct{}, len(accounts.FixedAssets))
	for _, n := range accounts.FixedAssets {
		fixed[n] = struct{}{}
	}
	for _, name := range chartAccounts(entries) {
		class, ok := accounts.Classify(name)
		if !ok {
			class = accounts.ClassAsset
		}
		bal := ledger.AccountBalanceFrom(entries, name, true)
		if math.Abs(bal) < tolerance {
			continue
		}
		switch class {
		case accounts.ClassAsset:
			if _, isFixed := fixed[name]; isFixed {
				bs.FixedAssets = append(bs.FixedAssets, AccountAmount{Account: name, Amount: bal})
			} else {
				bs.CurrentAssets = append(bs.CurrentAssets, AccountAmount{Account: name, Amount: bal})
			}
			bs.TotalAssets = round2(bs.TotalAssets + bal)
		case accounts.ClassContra:
			bs.FixedAssets = append(bs.FixedAssets, AccountAmount{Account: name, Amount: -bal})
			bs.TotalAssets = round2(bs.TotalAssets - bal)
		case accounts.ClassLiability:
			bs.Liabilities = append(bs.Liabilities, AccountAmount{Account: name, Amount: bal})
			bs.TotalLiabilities = round2(bs.TotalLiabilities + bal)
		}
	}

	capitalAll := ledger.AccountBalanceFrom(entries, accounts.OwnerCapital, true)
	capitalPost := ledger.AccountBalanceFrom(entries, accounts.OwnerCapital, false)
	bs.OpeningCapital = round2(capitalAll - capitalPost)
	bs.ContributedCapital = capitalPost
	bs.Drawings = ledger.AccountBalanceFrom(entries, accounts.OwnerDrawings, true)
	bs.NetIncome = BuildIncomeStatement(entries).NetIncome
	bs.TotalEquity = round2(bs.OpeningCapital + bs.ContributedCapital - bs.Drawings + bs.NetIncome)
	bs.TotalLiabilitiesEquity = round2(bs.TotalLiabilities + bs.TotalEquity)

	diff := round2(bs.TotalAssets - bs.TotalLiabilitiesEquity)
	bs.Balanced = math.Abs(diff) < tolerance
	if !bs.Balanced {
		bs.Warning = shared.Summary("balance sheet out of balance by %.2f", diff)
	}
	return bs
}

// BuildKPI assembles the dashboard headline numbers.
func BuildKPI(entries []journal.Entry, stock inventory.StockSummary) KPI {
	is := BuildIncomeStatement(entries)
	return KPI{
		Cash:       ledger.AccountBalanceFrom(entries, accounts.Cash, true),
		TotalSales: ledger.AccountBalanceFrom(entries, accounts.SalesRevenue, true),
		NetIncome:  is.NetIncome,
		StockQty:   stock.TotalQty,
		StockValue: stock.TotalValue,
	}
}

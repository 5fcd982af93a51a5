package journal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/subuhjayafarm/farmbook/internal/accounts"
)

func TestFormatSlotOrderAndDateOnFirstLine(t *testing.T) {
	entries := []Entry{
		{
			ID:       1,
			Date:     day("2025-03-05"),
			Category: CategorySale,
			Debits: []PostingLine{
				{Account: accounts.Cash, Amount: 600},
				{Account: accounts.CostOfGoodsSold, Amount: 400},
			},
			Credits: []PostingLine{
				{Account: accounts.SalesRevenue, Amount: 600},
				{Account: "Male Goat Inventory", Amount: 400},
			},
			Description: "Sold 4 male goats",
		},
	}

	lines := Format(entries)
	require.Len(t, lines, 4)

	require.Equal(t, "2025-03-05", lines[0].Date)
	require.Equal(t, "Sold 4 male goats", lines[0].Description)
	for _, l := range lines[1:] {
		require.Empty(t, l.Date)
		require.Empty(t, l.Description)
	}

	require.Equal(t, accounts.Cash, lines[0].Account)
	require.Equal(t, accounts.CostOfGoodsSold, lines[1].Account)
	require.Equal(t, accounts.SalesRevenue, lines[2].Account)
	require.Equal(t, "Male Goat Inventory", lines[3].Account)

	require.InDelta(t, 600.0, lines[0].Debit, 0.001)
	require.InDelta(t, 400.0, lines[1].Debit, 0.001)
	require.InDelta(t, 600.0, lines[2].Credit, 0.001)
	require.InDelta(t, 400.0, lines[3].Credit, 0.001)
}

func TestFormatExcludesOpeningEntries(t *testing.T) {
	entries := []Entry{
		{
			ID: 1, Date: day("2025-01-01"), Category: CategoryOpening,
			Debits:  []PostingLine{{Account: accounts.Cash, Amount: 500}},
			Credits: []PostingLine{{Account: accounts.OwnerCapital, Amount: 500}},
		},
		{
			ID: 2, Date: day("2025-01-02"), Category: CategoryMisc,
			Debits:  []PostingLine{{Account: "Feed Expense", Amount: 50}},
			Credits: []PostingLine{{Account: accounts.Cash, Amount: 50}},
		},
	}

	lines := Format(entries)
	require.Len(t, lines, 2)
	for _, l := range lines {
		require.NotEqual(t, accounts.OwnerCapital, l.Account)
	}
}

func TestFormatSortsByDateKeyStable(t *testing.T) {
	entries := []Entry{
		{
			ID: 3, Date: day("2025-02-10"), Category: CategoryMisc,
			Debits:  []PostingLine{{Account: "Wages Expense", Amount: 10}},
			Credits: []PostingLine{{Account: accounts.Cash, Amount: 10}},
		},
		{
			ID: 1, Date: day("2025-02-01"), Category: CategoryMisc,
			Debits:  []PostingLine{{Account: "Feed Expense", Amount: 20}},
			Credits: []PostingLine{{Account: accounts.Cash, Amount: 20}},
		},
		{
			ID: 2, Date: day("2025-02-10"), Category: CategoryMisc,
			Debits:  []PostingLine{{Account: "Utilities Expense", Amount: 30}},
			Credits: []PostingLine{{Account: accounts.Cash, Amount: 30}},
		},
	}

	lines := Format(entries)
	require.Len(t, lines, 6)
	require.Equal(t, "2025-02-01", lines[0].Date)
	require.EqualValues(t, 1, lines[0].EntryID)
	require.EqualValues(t, 2, lines[2].EntryID)
	require.EqualValues(t, 3, lines[4].EntryID)
}

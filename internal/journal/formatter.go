package journal

import (
	"math"
	"sort"
)

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// DisplayLine is one row of the rendered journal. The date and description
// appear only on the first line of each entry.
type DisplayLine struct {
	EntryID     int64
	Date        string
	Description string
	Account     string
	Debit       float64
	Credit      float64
}

// Format expands entries into display lines. Entries sort by date key then
// id, stable; within an entry, lines render debit slots before credit
// slots. Opening balance entries never appear in the journal view.
func Format(entries []Entry) []DisplayLine {
	filtered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Category == CategoryOpening {
			continue
		}
		filtered = append(filtered, e)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		if ki, kj := filtered[i].DateKey(), filtered[j].DateKey(); ki != kj {
			return ki < kj
		}
		return filtered[i].ID < filtered[j].ID
	})

	var lines []DisplayLine
	for _, e := range filtered {
		first := true
		for _, d := range e.Debits {
			lines = append(lines, displayLine(e, first, d.Account, d.Amount, 0))
			first = false
		}
		for _, c := range e.Credits {
			lines = append(lines, displayLine(e, first, c.Account, 0, c.Amount))
			first = false
		}
	}
	return lines
}

func displayLine(e Entry, first bool, account string, debit, credit float64) DisplayLine {
	l := DisplayLine{EntryID: e.ID, Account: account, Debit: debit, Credit: credit}
	if first {
		l.Date = e.DateKey()
		l.Description = e.Description
	}
	return l
}

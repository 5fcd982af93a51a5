package ledger

import (
	"math"
	"sort"

	"github.com/subuhjayafarm/farmbook/internal/accounts"
	"github.com/subuhjayafarm/farmbook/internal/journal"
)

// openingThreshold is the net amount under which the synthetic opening
// row is omitted from a ledger card.
const openingThreshold = 0.01

// openingDateLabel stands in for a date on the synthetic opening row,
// which aggregates entries from multiple dates.
const openingDateLabel = "Opening Period"

// Row is one line of a ledger or subledger card. The synthetic opening
// row aggregates all opening entries touching the account and carries
// every source entry id.
type Row struct {
	Date        string
	Description string
	Category    journal.Category
	Debit       float64
	Credit      float64
	Balance     float64
	EntryIDs    []int64
	Opening     bool
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// entryDebit sums an entry's debit postings to the account.
func entryDebit(e journal.Entry, account string) float64 {
	var t float64
	for _, l := range e.Debits {
		if l.Account == account {
			t += l.Amount
		}
	}
	return t
}

// entryCredit sums an entry's credit postings to the account.
func entryCredit(e journal.Entry, account string) float64 {
	var t float64
	for _, l := range e.Credits {
		if l.Account == account {
			t += l.Amount
		}
	}
	return t
}

func touches(e journal.Entry, account string) bool {
	return entryDebit(e, account) != 0 || entryCredit(e, account) != 0
}

func sortEntries(es []journal.Entry) {
	sort.SliceStable(es, func(i, j int) bool {
		if ki, kj := es[i].DateKey(), es[j].DateKey(); ki != kj {
			return ki < kj
		}
		return es[i].ID < es[j].ID
	})
}

// AccountBalanceFrom folds the account's postings into a signed balance on
// its normal side. Debit-normal accounts grow with debits; credit-normal
// accounts grow with credits. Unclassified names run debit-normal. Opening
// entries are included or excluded per the flag.
func AccountBalanceFrom(entries []journal.Entry, account string, includeOpening bool) float64 {
	sign := accounts.Sign(account)
	var bal float64
	for _, e := range entries {
		if !includeOpening && e.Category == journal.CategoryOpening {
			continue
		}
		bal += sign * (entryDebit(e, account) - entryCredit(e, account))
	}
	return round2(bal)
}

// CardFrom reconstructs the account's ledger card. Opening entries collapse
// into one synthetic first row; when their net effect is under a cent the
// row is omitted entirely. Remaining rows follow in date order, one per
// entry, with a running balance on the account's normal side.
func CardFrom(entries []journal.Entry, account string) []Row {
	sign := accounts.Sign(account)

	var openDebit, openCredit float64
	var openIDs []int64
	var regular []journal.Entry
	for _, e := range entries {
		if !touches(e, account) {
			continue
		}
		if e.Category == journal.CategoryOpening {
			openDebit += entryDebit(e, account)
			openCredit += entryCredit(e, account)
			openIDs = append(openIDs, e.ID)
			continue
		}
		regular = append(regular, e)
	}
	sortEntries(regular)

	var rows []Row
	var balance float64
	openNet := sign * (openDebit - openCredit)
	if math.Abs(openNet) >= openingThreshold {
		balance = round2(openNet)
		rows = append(rows, Row{
			Date:        openingDateLabel,
			Description: "Opening Balance",
			Category:    journal.CategoryOpening,
			Debit:       round2(openDebit),
			Credit:      round2(openCredit),
			Balance:     balance,
			EntryIDs:    openIDs,
			Opening:     true,
		})
	}
	for _, e := range regular {
		d := entryDebit(e, account)
		c := entryCredit(e, account)
		balance = round2(balance + sign*(d-c))
		rows = append(rows, Row{
			Date:        e.DateKey(),
			Description: e.Description,
			Category:    e.Category,
			Debit:       round2(d),
			Credit:      round2(c),
			Balance:     balance,
			EntryIDs:    []int64{e.ID},
		})
	}
	return rows
}

// SubledgerKind selects the control account of a subledger card.
type SubledgerKind string

const (
	SubledgerReceivable SubledgerKind = "receivable"
	SubledgerPayable    SubledgerKind = "payable"
)

// SubledgerCardFrom reconstructs one counterparty's receivable or payable
// card. Only entries tagged with the counterparty that post to the control
// account are eligible; opening entries collapse as on ledger cards.
// Receivable cards run debit-normal, payable cards credit-normal.
func SubledgerCardFrom(entries []journal.Entry, kind SubledgerKind, counterparty string) []Row {
	account := accounts.TradeReceivable
	sign := 1.0
	if kind == SubledgerPayable {
		account = accounts.TradePayable
		sign = -1.0
	}

	var openDebit, openCredit float64
	var openIDs []int64
	var regular []journal.Entry
	for _, e := range entries {
		if e.Counterparty != counterparty || !touches(e, account) {
			continue
		}
		if e.Category == journal.CategoryOpening {
			openDebit += entryDebit(e, account)
			openCredit += entryCredit(e, account)
			openIDs = append(openIDs, e.ID)
			continue
		}
		regular = append(regular, e)
	}
	sortEntries(regular)

	var rows []Row
	var balance float64
	openNet := sign * (openDebit - openCredit)
	if math.Abs(openNet) >= openingThreshold {
		balance = round2(openNet)
		rows = append(rows, Row{
			Date:        openingDateLabel,
			Description: "Opening Balance",
			Category:    journal.CategoryOpening,
			Debit:       round2(openDebit),
			Credit:      round2(openCredit),
			Balance:     balance,
			EntryIDs:    openIDs,
			Opening:     true,
		})
	}
	for _, e := range regular {
		d := entryDebit(e, account)
		c := entryCredit(e, account)
		balance = round2(balance + sign*(d-c))
		rows = append(rows, Row{
			Date:        e.DateKey(),
			Description: e.Description,
			Category:    e.Category,
			Debit:       round2(d),
			Credit:      round2(c),
			Balance:     balance,
			EntryIDs:    []int64{e.ID},
		})
	}
	return rows
}

// CounterpartiesFrom lists the distinct counterparty names seen in
// entries, sorted.
func CounterpartiesFrom(entries []journal.Entry) []string {
	seen := make(map[string]struct{})
	for _, e := range entries {
		if e.Counterparty != "" {
			seen[e.Counterparty] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

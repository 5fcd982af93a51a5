package inventory

import (
	"math"
	"sort"

	"github.com/subuhjayafarm/farmbook/internal/shared"
)

// round2 keeps stored totals at cent precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// sortMovements orders movements by date then id, stable.
func sortMovements(ms []Movement) {
	sort.SliceStable(ms, func(i, j int) bool {
		if !ms[i].Date.Equal(ms[j].Date) {
			return ms[i].Date.Before(ms[j].Date)
		}
		return ms[i].ID < ms[j].ID
	})
}

// Fold replays movements in date order and returns the resulting position.
// Inbound rows add quantity and value; sale rows subtract the value that was
// recorded when the sale happened. The average is value/qty while qty > 0
// and zero otherwise.
func Fold(category string, ms []Movement) Balance {
	sortMovements(ms)
	b := Balance{Category: category}
	for _, m := range ms {
		if m.Inbound() {
			b.Qty += m.Qty
			b.Value += m.Total
		} else {
			b.Qty -= m.Qty
			b.Value -= m.Total
		}
	}
	b.Value = round2(b.Value)
	if b.Qty > 0 {
		b.AvgCost = round2(b.Value / float64(b.Qty))
	} else {
		b.AvgCost = 0
		b.Value = 0
	}
	return b
}

// BuildCard expands movements into stock card rows with a running balance.
func BuildCard(ms []Movement) []CardRow {
	sortMovements(ms)
	rows := make([]CardRow, 0, len(ms))
	qty := 0
	value := 0.0
	for _, m := range ms {
		row := CardRow{MovementID: m.ID, Date: m.Date, Type: m.Type}
		if m.Inbound() {
			row.QtyIn = m.Qty
			row.UnitPriceIn = m.UnitPrice
			row.TotalIn = m.Total
			qty += m.Qty
			value += m.Total
		} else {
			row.QtyOut = m.Qty
			row.UnitPriceOut = m.UnitPrice
			row.TotalOut = m.Total
			qty -= m.Qty
			value -= m.Total
		}
		row.BalanceQty = qty
		row.BalanceValue = round2(value)
		if qty > 0 {
			row.BalanceAvg = round2(value / float64(qty))
		}
		rows = append(rows, row)
	}
	return rows
}

// replan replays movements and rewrites each sale at the average cost in
// force when it occurs. It returns the movements whose stored cost drifted
// from the replayed cost by a cent or more. Movements are mutated in place.
func replan(ms []Movement) ([]*Movement, error) {
	sortMovements(ms)
	var repaired []*Movement
	qty := 0
	value := 0.0
	for i := range ms {
		m := &ms[i]
		if m.Inbound() {
			qty += m.Qty
			value += m.Total
			continue
		}
		if m.Qty > qty {
			return nil, shared.ErrNegativeStock
		}
		avg := 0.0
		if qty > 0 {
			avg = value / float64(qty)
		}
		total := round2(avg * float64(m.Qty))
		if math.Abs(total-m.Total) >= 0.01 {
			m.UnitPrice = round2(avg)
			m.Total = total
			repaired = append(repaired, m)
		}
		qty -= m.Qty
		value -= total
	}
	return repaired, nil
}

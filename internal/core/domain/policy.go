package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerPolicy holds the tolerances shared by the poster, converter and auditor.
type LedgerPolicy struct {
	BalanceTolerance decimal.Decimal
	AgingCutoffDays  int
	AuditChunkDays   int
}

// DefaultLedgerPolicy returns the standard 0.01 tolerance and 30-day aging cutoff.
func DefaultLedgerPolicy() LedgerPolicy {
	return LedgerPolicy{
		BalanceTolerance: decimal.NewFromFloat(0.01),
		AgingCutoffDays:  30,
		AuditChunkDays:   31,
	}
}

// Balanced reports whether two amounts agree within the tolerance.
func (p LedgerPolicy) Balanced(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(p.BalanceTolerance)
}

// DateWindow is a closed interval of calendar days.
type DateWindow struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether t falls on a day within the window.
func (w DateWindow) Contains(t time.Time) bool {
	d := truncateDay(t)
	return !d.Before(truncateDay(w.From)) && !d.After(truncateDay(w.To))
}

// Chunks splits the window into consecutive windows of at most days days.
func (w DateWindow) Chunks(days int) []DateWindow {
	from, to := truncateDay(w.From), truncateDay(w.To)
	if days <= 0 || to.Before(from) {
		return []DateWindow{{From: from, To: to}}
	}
	var out []DateWindow
	for start := from; !start.After(to); start = start.AddDate(0, 0, days) {
		end := start.AddDate(0, 0, days-1)
		if end.After(to) {
			end = to
		}
		out = append(out, DateWindow{From: start, To: end})
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TruncateDay returns midnight UTC of t's calendar day.
func TruncateDay(t time.Time) time.Time { return truncateDay(t) }

/*
ytd.go - Year-to-date compilation

PURPOSE:
  Maintains the ordered, append-only collection of monthly summaries and
  the rolled-up totals. Merging is replace-by-month: re-running a month
  swaps in the new summary instead of duplicating it, so re-runs are
  idempotent. Totals are always recomputed from every entry after a
  merge, never adjusted incrementally, so they cannot drift.
*/
package policy

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// YEAR TO DATE
// =============================================================================

// YearToDate is the cumulative report: one summary per month, ordered,
// plus rolled-up totals. Months are never removed.
type YearToDate struct {
	Months []MonthlySummary
	Totals Totals
}

// Totals is the roll-up across all compiled months.
type Totals struct {
	TotalShifts     int
	OnTime          int
	LateNoWaiver    int
	LateWithWaiver  int
	Missed          int
	NotRequired     int
	RequiresReview  int
	FiveHourNoBreak int
}

func (t Totals) Violations() int { return t.Missed + t.LateNoWaiver }

// ViolationPercentage mirrors MonthlySummary: zero shifts yields zero.
func (t Totals) ViolationPercentage() decimal.Decimal {
	if t.TotalShifts == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(t.Violations())).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(t.TotalShifts)))
}

// =============================================================================
// COMPILE / MERGE
// =============================================================================

// Compile builds a YearToDate from scratch. Duplicate months keep the
// last occurrence, matching replace-by-key merge semantics.
func Compile(months []MonthlySummary) YearToDate {
	byMonth := make(map[Month]MonthlySummary, len(months))
	for _, m := range months {
		byMonth[m.Month] = m
	}

	ordered := make([]MonthlySummary, 0, len(byMonth))
	for _, m := range byMonth {
		ordered = append(ordered, m)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Month.Before(ordered[j].Month)
	})

	return YearToDate{Months: ordered, Totals: totalsOf(ordered)}
}

// Merge returns a new YearToDate with the summary appended, or replacing
// the existing entry for the same month. The input is not mutated.
func Merge(existing YearToDate, summary MonthlySummary) YearToDate {
	months := make([]MonthlySummary, 0, len(existing.Months)+1)
	replaced := false
	for _, m := range existing.Months {
		if m.Month.Equal(summary.Month) {
			months = append(months, summary)
			replaced = true
			continue
		}
		months = append(months, m)
	}
	if !replaced {
		months = append(months, summary)
	}
	return Compile(months)
}

// Summary returns the entry for a month, if compiled.
func (y YearToDate) Summary(m Month) (MonthlySummary, bool) {
	for _, s := range y.Months {
		if s.Month.Equal(m) {
			return s, true
		}
	}
	return MonthlySummary{}, false
}

func totalsOf(months []MonthlySummary) Totals {
	var t Totals
	for _, m := range months {
		t.TotalShifts += m.TotalShifts
		t.OnTime += m.OnTime
		t.LateNoWaiver += m.LateNoWaiver
		t.LateWithWaiver += m.LateWithWaiver
		t.Missed += m.Missed
		t.NotRequired += m.NotRequired
		t.RequiresReview += m.RequiresReview
		t.FiveHourNoBreak += m.FiveHourNoBreak
	}
	return t
}

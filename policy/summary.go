/*
summary.go - Verdict aggregation into a monthly summary

PURPOSE:
  Counts verdicts for one month's batch of classified shifts and derives
  the violation metrics. The violation percentage is kept as a
  decimal.Decimal at full precision; rounding happens only at the
  display/serialization edge.

WHAT COUNTS AS A VIOLATION:
  missed + late_no_waiver. Waived late breaks are reported in their own
  column but excluded from the violation total.
*/
package policy

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// =============================================================================
// MONTHLY SUMMARY
// =============================================================================

// MonthlySummary is the one-row compliance report for a month.
// TotalShifts counts canonical shifts only; rejected rows never appear
// here.
type MonthlySummary struct {
	Month          Month
	TotalShifts    int
	OnTime         int
	LateNoWaiver   int
	LateWithWaiver int
	Missed         int
	NotRequired    int
	RequiresReview int

	// FiveHourNoBreak counts shifts of exactly the required-duration
	// threshold with no recorded break. Under the rules these are
	// not_required, so the count is a data-quality signal for
	// operators, not a violation metric.
	FiveHourNoBreak int
}

// Violations is the violation total: missed plus unwaived late breaks.
func (s MonthlySummary) Violations() int {
	return s.Missed + s.LateNoWaiver
}

// ViolationPercentage returns violations as a percentage of total shifts
// at full decimal precision. Zero shifts yields zero, not an error.
func (s MonthlySummary) ViolationPercentage() decimal.Decimal {
	if s.TotalShifts == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(s.Violations())).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(s.TotalShifts)))
}

// CountFor returns the count bucket for a verdict.
func (s MonthlySummary) CountFor(v Verdict) int {
	switch v {
	case VerdictOnTime:
		return s.OnTime
	case VerdictLateNoWaiver:
		return s.LateNoWaiver
	case VerdictLateWithWaiver:
		return s.LateWithWaiver
	case VerdictMissed:
		return s.Missed
	case VerdictNotRequired:
		return s.NotRequired
	case VerdictRequiresReview:
		return s.RequiresReview
	default:
		return 0
	}
}

// =============================================================================
// AGGREGATION
// =============================================================================

// Summarize counts one month's classified shifts. The caller is
// responsible for having filtered the batch to a single month. The
// policy supplies the exact-threshold duration for the five-hour spot
// check.
func (p BreakPolicy) Summarize(shifts []ClassifiedShift, month Month) MonthlySummary {
	summary := MonthlySummary{Month: month, TotalShifts: len(shifts)}

	for _, s := range shifts {
		switch s.Verdict {
		case VerdictOnTime:
			summary.OnTime++
		case VerdictLateNoWaiver:
			summary.LateNoWaiver++
		case VerdictLateWithWaiver:
			summary.LateWithWaiver++
		case VerdictMissed:
			summary.Missed++
		case VerdictNotRequired:
			summary.NotRequired++
		case VerdictRequiresReview:
			summary.RequiresReview++
		}
		if s.Duration == p.RequiredDuration && s.LunchStart == nil {
			summary.FiveHourNoBreak++
		}
	}

	return summary
}

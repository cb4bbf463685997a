/*
Package employee builds per-employee violation reports.

PURPOSE:
  Aggregates classified shifts into per-employee violation tallies for a
  month and across the year to date. These reports back the HR follow-up
  workflow: the monthly report lists only employees with at least one
  violation, sorted worst-first, and the detailed list carries the
  individual offending shifts.

RELATION TO THE CORE ENGINE:
  This package consumes policy.ClassifiedShift; it never re-derives
  verdicts. Waived late breaks appear in the tallies for visibility but
  do not count toward an employee's violation total, mirroring the
  monthly summary semantics.

SEE ALSO:
  - policy/summary.go: The month-level counterpart
*/
package employee

import (
	"sort"

	"github.com/goldenvalley/breakcheck/policy"
)

// =============================================================================
// TALLY - Violation counts for one employee
// =============================================================================

// Tally holds one employee's violation counts for a reporting window.
type Tally struct {
	EmployeeID     policy.EmployeeID
	Missed         int
	LateNoWaiver   int
	LateWithWaiver int
}

// Total is the violation total: waived late breaks are excluded.
func (t Tally) Total() int { return t.Missed + t.LateNoWaiver }

// Report is the employee-level view of one month.
type Report struct {
	Month   policy.Month
	Tallies []Tally
}

// =============================================================================
// REPORT BUILDING
// =============================================================================

// BuildReport tallies violations per employee for one month of
// classified shifts. Employees without violations (or with only waived
// late breaks) are omitted. Sorted by total descending, employee ID
// ascending for ties, so output is deterministic.
func BuildReport(shifts []policy.ClassifiedShift, month policy.Month) Report {
	byEmployee := make(map[policy.EmployeeID]*Tally)

	for _, s := range shifts {
		if s.Verdict != policy.VerdictMissed &&
			s.Verdict != policy.VerdictLateNoWaiver &&
			s.Verdict != policy.VerdictLateWithWaiver {
			continue
		}
		t, ok := byEmployee[s.EmployeeID]
		if !ok {
			t = &Tally{EmployeeID: s.EmployeeID}
			byEmployee[s.EmployeeID] = t
		}
		switch s.Verdict {
		case policy.VerdictMissed:
			t.Missed++
		case policy.VerdictLateNoWaiver:
			t.LateNoWaiver++
		case policy.VerdictLateWithWaiver:
			t.LateWithWaiver++
		}
	}

	tallies := make([]Tally, 0, len(byEmployee))
	for _, t := range byEmployee {
		if t.Total() == 0 && t.LateWithWaiver == 0 {
			continue
		}
		tallies = append(tallies, *t)
	}
	sortTallies(tallies)

	return Report{Month: month, Tallies: tallies}
}

// Violations filters a month's classified shifts down to the rows that
// count as violations, for the detailed (row-level) report.
func Violations(shifts []policy.ClassifiedShift) []policy.ClassifiedShift {
	var out []policy.ClassifiedShift
	for _, s := range shifts {
		if s.Verdict.IsViolation() {
			out = append(out, s)
		}
	}
	return out
}

// MergeYearToDate sums monthly tallies per employee across reports.
// Re-supplying a month's report replaces nothing here: callers pass one
// report per month, the way the store compiles them.
func MergeYearToDate(reports []Report) []Tally {
	byEmployee := make(map[policy.EmployeeID]*Tally)
	for _, r := range reports {
		for _, t := range r.Tallies {
			agg, ok := byEmployee[t.EmployeeID]
			if !ok {
				agg = &Tally{EmployeeID: t.EmployeeID}
				byEmployee[t.EmployeeID] = agg
			}
			agg.Missed += t.Missed
			agg.LateNoWaiver += t.LateNoWaiver
			agg.LateWithWaiver += t.LateWithWaiver
		}
	}

	tallies := make([]Tally, 0, len(byEmployee))
	for _, t := range byEmployee {
		tallies = append(tallies, *t)
	}
	sortTallies(tallies)
	return tallies
}

func sortTallies(tallies []Tally) {
	sort.Slice(tallies, func(i, j int) bool {
		if tallies[i].Total() != tallies[j].Total() {
			return tallies[i].Total() > tallies[j].Total()
		}
		return tallies[i].EmployeeID < tallies[j].EmployeeID
	})
}

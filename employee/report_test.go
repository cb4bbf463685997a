package employee_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldenvalley/breakcheck/employee"
	"github.com/goldenvalley/breakcheck/policy"
)

func classifiedFor(id policy.EmployeeID, v policy.Verdict) policy.ClassifiedShift {
	return policy.ClassifiedShift{
		CanonicalShift: policy.CanonicalShift{
			EmployeeID: id,
			Date:       time.Date(2024, time.December, 2, 0, 0, 0, 0, time.UTC),
			ClockIn:    policy.ClockTime(8, 0, 0),
			ClockOut:   policy.ClockTime(16, 0, 0),
			Duration:   8 * time.Hour,
		},
		Verdict: v,
	}
}

func dec2024() policy.Month { return policy.NewMonth(2024, time.December) }

// =============================================================================
// MONTHLY EMPLOYEE REPORT
// =============================================================================

func TestBuildReport_TalliesPerEmployee(t *testing.T) {
	shifts := []policy.ClassifiedShift{
		classifiedFor("emp-1", policy.VerdictMissed),
		classifiedFor("emp-1", policy.VerdictLateNoWaiver),
		classifiedFor("emp-1", policy.VerdictOnTime),
		classifiedFor("emp-2", policy.VerdictMissed),
		classifiedFor("emp-3", policy.VerdictOnTime),
	}

	r := employee.BuildReport(shifts, dec2024())

	require.Len(t, r.Tallies, 2, "clean employees are omitted")
	assert.Equal(t, policy.EmployeeID("emp-1"), r.Tallies[0].EmployeeID)
	assert.Equal(t, 2, r.Tallies[0].Total())
	assert.Equal(t, policy.EmployeeID("emp-2"), r.Tallies[1].EmployeeID)
	assert.Equal(t, 1, r.Tallies[1].Total())
}

func TestBuildReport_WaivedLateTrackedButNotTotaled(t *testing.T) {
	shifts := []policy.ClassifiedShift{
		classifiedFor("emp-1", policy.VerdictLateWithWaiver),
	}

	r := employee.BuildReport(shifts, dec2024())

	require.Len(t, r.Tallies, 1)
	assert.Equal(t, 1, r.Tallies[0].LateWithWaiver)
	assert.Equal(t, 0, r.Tallies[0].Total())
}

func TestBuildReport_SortWorstFirstThenByID(t *testing.T) {
	shifts := []policy.ClassifiedShift{
		classifiedFor("emp-b", policy.VerdictMissed),
		classifiedFor("emp-a", policy.VerdictMissed),
		classifiedFor("emp-c", policy.VerdictMissed),
		classifiedFor("emp-c", policy.VerdictMissed),
	}

	r := employee.BuildReport(shifts, dec2024())

	require.Len(t, r.Tallies, 3)
	assert.Equal(t, policy.EmployeeID("emp-c"), r.Tallies[0].EmployeeID)
	assert.Equal(t, policy.EmployeeID("emp-a"), r.Tallies[1].EmployeeID)
	assert.Equal(t, policy.EmployeeID("emp-b"), r.Tallies[2].EmployeeID)
}

func TestViolations_FiltersToViolatingRows(t *testing.T) {
	shifts := []policy.ClassifiedShift{
		classifiedFor("emp-1", policy.VerdictMissed),
		classifiedFor("emp-1", policy.VerdictOnTime),
		classifiedFor("emp-2", policy.VerdictLateWithWaiver),
		classifiedFor("emp-2", policy.VerdictLateNoWaiver),
		classifiedFor("emp-3", policy.VerdictRequiresReview),
	}

	got := employee.Violations(shifts)

	require.Len(t, got, 2)
	assert.Equal(t, policy.VerdictMissed, got[0].Verdict)
	assert.Equal(t, policy.VerdictLateNoWaiver, got[1].Verdict)
}

// =============================================================================
// YEAR-TO-DATE AGGREGATION
// =============================================================================

func TestMergeYearToDate_SumsAcrossMonths(t *testing.T) {
	nov := employee.Report{Month: policy.NewMonth(2024, time.November), Tallies: []employee.Tally{
		{EmployeeID: "emp-1", Missed: 2},
		{EmployeeID: "emp-2", LateNoWaiver: 1},
	}}
	dec := employee.Report{Month: dec2024(), Tallies: []employee.Tally{
		{EmployeeID: "emp-1", LateNoWaiver: 1, LateWithWaiver: 2},
	}}

	ytd := employee.MergeYearToDate([]employee.Report{nov, dec})

	require.Len(t, ytd, 2)
	assert.Equal(t, policy.EmployeeID("emp-1"), ytd[0].EmployeeID)
	assert.Equal(t, 3, ytd[0].Total())
	assert.Equal(t, 2, ytd[0].LateWithWaiver)
	assert.Equal(t, policy.EmployeeID("emp-2"), ytd[1].EmployeeID)
	assert.Equal(t, 1, ytd[1].Total())
}

func TestMergeYearToDate_Empty(t *testing.T) {
	assert.Empty(t, employee.MergeYearToDate(nil))
}

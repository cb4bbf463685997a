package policy_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldenvalley/breakcheck/policy"
)

func monthlySummary(m policy.Month, total, missed int) policy.MonthlySummary {
	return policy.MonthlySummary{
		Month:       m,
		TotalShifts: total,
		Missed:      missed,
		OnTime:      total - missed,
	}
}

// =============================================================================
// MERGE SEMANTICS
// =============================================================================

func TestMerge_AppendsNewMonthInOrder(t *testing.T) {
	ytd := policy.Compile([]policy.MonthlySummary{
		monthlySummary(month(2024, time.January), 100, 10),
		monthlySummary(month(2024, time.March), 100, 30),
	})

	ytd = policy.Merge(ytd, monthlySummary(month(2024, time.February), 100, 20))

	require.Len(t, ytd.Months, 3)
	assert.Equal(t, "2024-01", ytd.Months[0].Month.String())
	assert.Equal(t, "2024-02", ytd.Months[1].Month.String())
	assert.Equal(t, "2024-03", ytd.Months[2].Month.String())
	assert.Equal(t, 300, ytd.Totals.TotalShifts)
	assert.Equal(t, 60, ytd.Totals.Violations())
}

func TestMerge_ReplacesExistingMonth(t *testing.T) {
	// Re-running a month swaps in the new summary; nothing duplicates
	// and totals reflect only the replacement.
	ytd := policy.Compile([]policy.MonthlySummary{
		monthlySummary(month(2024, time.January), 100, 10),
	})

	ytd = policy.Merge(ytd, monthlySummary(month(2024, time.January), 90, 5))

	require.Len(t, ytd.Months, 1)
	assert.Equal(t, 90, ytd.Totals.TotalShifts)
	assert.Equal(t, 5, ytd.Totals.Violations())
}

func TestMerge_Idempotent(t *testing.T) {
	ytd := policy.Compile([]policy.MonthlySummary{
		monthlySummary(month(2024, time.January), 100, 10),
	})
	feb := monthlySummary(month(2024, time.February), 80, 8)

	once := policy.Merge(ytd, feb)
	twice := policy.Merge(once, feb)

	assert.Equal(t, once, twice)
}

func TestMerge_DoesNotMutateInput(t *testing.T) {
	ytd := policy.Compile([]policy.MonthlySummary{
		monthlySummary(month(2024, time.January), 100, 10),
	})

	policy.Merge(ytd, monthlySummary(month(2024, time.January), 1, 1))

	require.Len(t, ytd.Months, 1)
	assert.Equal(t, 100, ytd.Months[0].TotalShifts)
	assert.Equal(t, 100, ytd.Totals.TotalShifts)
}

// =============================================================================
// TOTALS
// =============================================================================

func TestTotals_RecomputedFromAllEntries(t *testing.T) {
	jan := policy.MonthlySummary{Month: month(2024, time.January),
		TotalShifts: 10, OnTime: 6, Missed: 2, LateNoWaiver: 1, LateWithWaiver: 1,
		FiveHourNoBreak: 2}
	feb := policy.MonthlySummary{Month: month(2024, time.February),
		TotalShifts: 5, OnTime: 3, NotRequired: 1, RequiresReview: 1,
		FiveHourNoBreak: 1}

	ytd := policy.Compile([]policy.MonthlySummary{jan, feb})

	assert.Equal(t, 15, ytd.Totals.TotalShifts)
	assert.Equal(t, 9, ytd.Totals.OnTime)
	assert.Equal(t, 2, ytd.Totals.Missed)
	assert.Equal(t, 1, ytd.Totals.LateNoWaiver)
	assert.Equal(t, 1, ytd.Totals.LateWithWaiver)
	assert.Equal(t, 1, ytd.Totals.NotRequired)
	assert.Equal(t, 1, ytd.Totals.RequiresReview)
	assert.Equal(t, 3, ytd.Totals.FiveHourNoBreak)
	assert.Equal(t, 3, ytd.Totals.Violations())
	assert.Equal(t, "20.00", ytd.Totals.ViolationPercentage().StringFixed(2))
}

func TestTotals_EmptyYTD_ZeroPercent(t *testing.T) {
	ytd := policy.Compile(nil)
	assert.True(t, ytd.Totals.ViolationPercentage().IsZero())
	assert.Empty(t, ytd.Months)
}

func TestYearToDate_SummaryLookup(t *testing.T) {
	ytd := policy.Compile([]policy.MonthlySummary{
		monthlySummary(month(2024, time.January), 100, 10),
	})

	got, ok := ytd.Summary(month(2024, time.January))
	require.True(t, ok)
	assert.Equal(t, 100, got.TotalShifts)

	_, ok = ytd.Summary(month(2024, time.May))
	assert.False(t, ok)
}

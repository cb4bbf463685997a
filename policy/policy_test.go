package policy_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldenvalley/breakcheck/policy"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func clock(h, m, s int) policy.TimeOfDay {
	return policy.ClockTime(h, m, s)
}

func clockPtr(h, m, s int) *policy.TimeOfDay {
	t := policy.ClockTime(h, m, s)
	return &t
}

func dec15(year int, day int) time.Time {
	return time.Date(year, time.December, day, 0, 0, 0, 0, time.UTC)
}

// shift builds a canonical shift the way the normalizer would.
func shift(in, out policy.TimeOfDay, lunch *policy.TimeOfDay, waiver bool) policy.CanonicalShift {
	return policy.CanonicalShift{
		EmployeeID:   "emp-1",
		Date:         dec15(2024, 2),
		ClockIn:      in,
		ClockOut:     out,
		LunchStart:   lunch,
		Duration:     out.Sub(in),
		WaiverSigned: waiver,
	}
}

// =============================================================================
// CLASSIFIER TESTS
// =============================================================================

func TestClassify_ShortShift_NotRequired(t *testing.T) {
	// GIVEN: 4-hour shift, no break recorded
	// THEN: no break owed
	p := policy.California()
	v := p.Classify(shift(clock(8, 0, 0), clock(12, 0, 0), nil, false))
	assert.Equal(t, policy.VerdictNotRequired, v)
}

func TestClassify_ExactlyFiveHours_NotRequired(t *testing.T) {
	// Boundary is inclusive on the safe side: 5h00m owes no break,
	// with or without a waiver.
	p := policy.California()

	assert.Equal(t, policy.VerdictNotRequired,
		p.Classify(shift(clock(8, 0, 0), clock(13, 0, 0), nil, false)))
	assert.Equal(t, policy.VerdictNotRequired,
		p.Classify(shift(clock(8, 0, 0), clock(13, 0, 0), nil, true)))
}

func TestClassify_NotRequired_IgnoresLunchTiming(t *testing.T) {
	// A recorded break on a short shift is never checked for timing,
	// even one that would be wildly late on a longer shift.
	p := policy.California()
	v := p.Classify(shift(clock(8, 0, 0), clock(13, 0, 0), clockPtr(12, 59, 59), false))
	assert.Equal(t, policy.VerdictNotRequired, v)
}

func TestClassify_LongShift_NoLunch_Missed(t *testing.T) {
	p := policy.California()
	v := p.Classify(shift(clock(8, 0, 0), clock(16, 0, 0), nil, false))
	assert.Equal(t, policy.VerdictMissed, v)
}

func TestClassify_NoWaiverBoundary(t *testing.T) {
	// clock_in 08:00 -> no-waiver window closes at 12:59:00 inclusive.
	p := policy.California()

	tests := []struct {
		name  string
		lunch *policy.TimeOfDay
		want  policy.Verdict
	}{
		{"well inside window", clockPtr(11, 30, 0), policy.VerdictOnTime},
		{"exactly at window close", clockPtr(12, 59, 0), policy.VerdictOnTime},
		{"one second past", clockPtr(12, 59, 1), policy.VerdictLateNoWaiver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := p.Classify(shift(clock(8, 0, 0), clock(16, 0, 0), tt.lunch, false))
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestClassify_WaiverBoundary_SixHourShift(t *testing.T) {
	// 6-hour shift with a signed waiver: window extends to 13:59:00.
	p := policy.California()
	in, out := clock(8, 0, 0), clock(14, 0, 0)

	tests := []struct {
		name  string
		lunch *policy.TimeOfDay
		want  policy.Verdict
	}{
		// Compliant without needing the waiver -> plain on_time.
		{"inside no-waiver window", clockPtr(12, 59, 0), policy.VerdictOnTime},
		// Past the no-waiver window but covered by the waiver.
		{"one second into waiver window", clockPtr(12, 59, 1), policy.VerdictLateWithWaiver},
		{"exactly at waiver close", clockPtr(13, 59, 0), policy.VerdictLateWithWaiver},
		// Beyond even the extended window: the waiver does not cover it.
		{"one second past waiver close", clockPtr(13, 59, 1), policy.VerdictLateNoWaiver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := p.Classify(shift(in, out, tt.lunch, true))
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestClassify_WaiverVoidOnLongShift(t *testing.T) {
	// GIVEN: 7-hour shift WITH a signed waiver, lunch at 13:30
	// THEN: the waiver is void past 6 hours, so the shift is evaluated
	//       as unwaived and 13:30 > 12:59 is a plain late violation.
	p := policy.California()
	v := p.Classify(shift(clock(8, 0, 0), clock(15, 0, 0), clockPtr(13, 30, 0), true))
	assert.Equal(t, policy.VerdictLateNoWaiver, v)
}

func TestClassify_NegativeDuration_RequiresReview(t *testing.T) {
	// clock_out before clock_in reads as an overnight shift. The engine
	// refuses to guess and routes it to review.
	p := policy.California()
	v := p.Classify(shift(clock(22, 0, 0), clock(6, 0, 0), nil, false))
	assert.Equal(t, policy.VerdictRequiresReview, v)
}

func TestClassify_LateEveningShift_NoClockWrap(t *testing.T) {
	// 18:30-23:59 is 5h29m: a break is owed and timing is measured as
	// an offset from clock-in, so windows near midnight stay correct.
	p := policy.California()

	assert.Equal(t, policy.VerdictOnTime,
		p.Classify(shift(clock(18, 30, 0), clock(23, 59, 0), clockPtr(23, 0, 0), false)))
	assert.Equal(t, policy.VerdictLateWithWaiver,
		p.Classify(shift(clock(18, 30, 0), clock(23, 59, 0), clockPtr(23, 45, 0), true)))
}

func TestClassify_IsPure(t *testing.T) {
	// Same input, same verdict, input untouched.
	p := policy.California()
	s := shift(clock(8, 0, 0), clock(16, 0, 0), clockPtr(12, 0, 0), false)
	before := s

	v1 := p.Classify(s)
	v2 := p.Classify(s)

	assert.Equal(t, v1, v2)
	assert.Equal(t, before, s)
}

func TestClassifyAll_PreservesOrder(t *testing.T) {
	p := policy.California()
	shifts := []policy.CanonicalShift{
		shift(clock(8, 0, 0), clock(12, 0, 0), nil, false),
		shift(clock(8, 0, 0), clock(16, 0, 0), nil, false),
		shift(clock(8, 0, 0), clock(16, 0, 0), clockPtr(12, 0, 0), false),
	}

	classified := p.ClassifyAll(shifts)

	require.Len(t, classified, 3)
	assert.Equal(t, policy.VerdictNotRequired, classified[0].Verdict)
	assert.Equal(t, policy.VerdictMissed, classified[1].Verdict)
	assert.Equal(t, policy.VerdictOnTime, classified[2].Verdict)
}

// =============================================================================
// POLICY VALIDATION
// =============================================================================

func TestPolicyValidate(t *testing.T) {
	require.NoError(t, policy.California().Validate())

	bad := policy.California()
	bad.WaiverMaxShift = 4 * time.Hour
	assert.Error(t, bad.Validate())

	bad = policy.California()
	bad.WaiverLatestStartOffset = time.Hour
	assert.Error(t, bad.Validate())

	bad = policy.California()
	bad.BreakDuration = 0
	assert.Error(t, bad.Validate())
}

// =============================================================================
// VERDICT VOCABULARY
// =============================================================================

func TestVerdict_IsViolation(t *testing.T) {
	assert.True(t, policy.VerdictMissed.IsViolation())
	assert.True(t, policy.VerdictLateNoWaiver.IsViolation())
	assert.False(t, policy.VerdictLateWithWaiver.IsViolation())
	assert.False(t, policy.VerdictOnTime.IsViolation())
	assert.False(t, policy.VerdictNotRequired.IsViolation())
	assert.False(t, policy.VerdictRequiresReview.IsViolation())
}

func TestParseVerdict(t *testing.T) {
	v, err := policy.ParseVerdict("late_with_waiver")
	require.NoError(t, err)
	assert.Equal(t, policy.VerdictLateWithWaiver, v)

	_, err = policy.ParseVerdict("sorta_late")
	assert.Error(t, err)
}

/*
policy.go - BreakPolicy and the classification rules

PURPOSE:
  Defines the meal-break policy as an explicit value object and the pure
  classification function that maps one canonical shift to a verdict.
  The policy is injected, never read from globals, so an alternate
  jurisdiction can be substituted without touching classifier code.

THE CALIFORNIA RULE (the shipped default):
  - A shift of 5 hours or less owes no meal break.
  - Longer shifts must start a 30-minute break before the end of the
    fifth hour of work (clock-in + 4h59m, inclusive).
  - A signed waiver extends that window by one hour (clock-in + 5h59m,
    inclusive) but is only valid on shifts of 6 hours or less. A waiver
    on a longer shift has no effect: the shift is evaluated as unwaived.

BOUNDARY SEMANTICS (all inclusive on the compliant side):
  - duration == 5h00m          -> not required
  - lunch at clock-in + 4h59m  -> on time
  - lunch at clock-in + 5h59m  -> late_with_waiver (valid waiver only)
  One second past either window tips the verdict.

SEE ALSO:
  - verdict.go: The verdict vocabulary
  - normalize.go: Builds the CanonicalShift this file consumes
*/
package policy

import (
	"fmt"
	"time"
)

// =============================================================================
// BREAK POLICY - Injectable rule parameters
// =============================================================================

// BreakPolicy holds the thresholds that drive classification. Treat it
// as immutable; build a new value to change a rule.
type BreakPolicy struct {
	// RequiredDuration: shifts at or under this owe no break.
	RequiredDuration time.Duration

	// WaiverMaxShift: a signed waiver is only valid on shifts at or
	// under this duration.
	WaiverMaxShift time.Duration

	// NoWaiverLatestStartOffset: latest compliant break start, measured
	// from clock-in, when no valid waiver applies.
	NoWaiverLatestStartOffset time.Duration

	// WaiverLatestStartOffset: latest break start covered by a valid
	// waiver, measured from clock-in.
	WaiverLatestStartOffset time.Duration

	// BreakDuration: the assumed break length. Used to impute a missing
	// lunch start from a recorded lunch end.
	BreakDuration time.Duration
}

// California returns the default single-break policy.
func California() BreakPolicy {
	return BreakPolicy{
		RequiredDuration:          5 * time.Hour,
		WaiverMaxShift:            6 * time.Hour,
		NoWaiverLatestStartOffset: 4*time.Hour + 59*time.Minute,
		WaiverLatestStartOffset:   5*time.Hour + 59*time.Minute,
		BreakDuration:             30 * time.Minute,
	}
}

// Validate rejects policies whose thresholds cannot produce coherent
// verdicts.
func (p BreakPolicy) Validate() error {
	if p.RequiredDuration <= 0 || p.WaiverMaxShift <= 0 || p.BreakDuration <= 0 {
		return fmt.Errorf("%w: durations must be positive", ErrInvalidPolicy)
	}
	if p.WaiverMaxShift < p.RequiredDuration {
		return fmt.Errorf("%w: waiver max shift %v below required duration %v", ErrInvalidPolicy, p.WaiverMaxShift, p.RequiredDuration)
	}
	if p.WaiverLatestStartOffset < p.NoWaiverLatestStartOffset {
		return fmt.Errorf("%w: waiver window %v narrower than no-waiver window %v", ErrInvalidPolicy, p.WaiverLatestStartOffset, p.NoWaiverLatestStartOffset)
	}
	return nil
}

// =============================================================================
// CLASSIFICATION - Pure function, no I/O, no shared state
// =============================================================================

// Classify assigns the compliance verdict for one canonical shift.
//
// Rule order matters: review outranks everything (the duration cannot be
// trusted), then the no-break-owed short circuit, then missing break,
// then timing against the applicable window.
func (p BreakPolicy) Classify(shift CanonicalShift) Verdict {
	if shift.Duration < 0 {
		return VerdictRequiresReview
	}
	if shift.Duration <= p.RequiredDuration {
		return VerdictNotRequired
	}
	if shift.LunchStart == nil {
		return VerdictMissed
	}

	sinceClockIn := shift.LunchStart.Sub(shift.ClockIn)
	if sinceClockIn <= p.NoWaiverLatestStartOffset {
		// Compliant even without a waiver, so a waiver on file is moot.
		return VerdictOnTime
	}
	if p.waiverValid(shift) && sinceClockIn <= p.WaiverLatestStartOffset {
		return VerdictLateWithWaiver
	}
	return VerdictLateNoWaiver
}

// waiverValid reports whether the signed waiver actually covers the
// shift. A waiver on a shift longer than WaiverMaxShift is void.
func (p BreakPolicy) waiverValid(shift CanonicalShift) bool {
	return shift.WaiverSigned && shift.Duration <= p.WaiverMaxShift
}

// ClassifyAll classifies a batch of shifts, preserving order.
func (p BreakPolicy) ClassifyAll(shifts []CanonicalShift) []ClassifiedShift {
	classified := make([]ClassifiedShift, len(shifts))
	for i, s := range shifts {
		classified[i] = ClassifiedShift{CanonicalShift: s, Verdict: p.Classify(s)}
	}
	return classified
}

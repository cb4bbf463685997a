package policy

import "fmt"

// =============================================================================
// VERDICT - Compliance outcome for one shift
// =============================================================================

// Verdict is the compliance outcome assigned to a single shift.
type Verdict string

const (
	// VerdictOnTime: a break was required and started within the no-waiver
	// window. Also used when the break would have been compliant even
	// without the waiver that happens to be on file.
	VerdictOnTime Verdict = "on_time"

	// VerdictLateNoWaiver: the break started after every window that
	// applies to the shift. Counts as a violation.
	VerdictLateNoWaiver Verdict = "late_no_waiver"

	// VerdictLateWithWaiver: the break started past the no-waiver window
	// but within the waiver-extended one, and a valid waiver covers the
	// shift. Tracked separately; not counted as a violation.
	VerdictLateWithWaiver Verdict = "late_with_waiver"

	// VerdictMissed: a break was required but none was recorded.
	// Counts as a violation.
	VerdictMissed Verdict = "missed"

	// VerdictNotRequired: shift short enough that no break is legally
	// owed. Any recorded break timing is ignored.
	VerdictNotRequired Verdict = "not_required"

	// VerdictRequiresReview: the record is internally inconsistent
	// (clock-out before clock-in, i.e. a probable overnight shift) and
	// needs a human decision instead of a mechanical verdict.
	VerdictRequiresReview Verdict = "requires_review"
)

// Verdicts lists all verdicts in report order.
var Verdicts = []Verdict{
	VerdictOnTime,
	VerdictLateNoWaiver,
	VerdictLateWithWaiver,
	VerdictMissed,
	VerdictNotRequired,
	VerdictRequiresReview,
}

// IsViolation reports whether this verdict counts toward the violation
// total. Waived late breaks are tracked but deliberately excluded.
func (v Verdict) IsViolation() bool {
	return v == VerdictLateNoWaiver || v == VerdictMissed
}

// ParseVerdict validates a verdict string coming from storage or the API.
func ParseVerdict(s string) (Verdict, error) {
	for _, v := range Verdicts {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown verdict %q", s)
}

func (v Verdict) String() string { return string(v) }

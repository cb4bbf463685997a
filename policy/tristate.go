package policy

import "strings"

// =============================================================================
// TRI-STATE WAIVER FLAG
// =============================================================================

// TriState is the waiver flag as ingested: explicitly signed, explicitly
// unsigned, or unknown. The source systems export a mix of spellings, so
// parsing is an explicit table rather than implicit truthiness. Unknown
// defaults to "no waiver" at normalization time, the conservative reading
// for compliance purposes.
type TriState int

const (
	TriUnknown TriState = iota
	TriTrue
	TriFalse
)

// ParseTriState maps the spellings seen in timecard exports onto the three
// states. Anything unrecognized is TriUnknown, never an error: a garbled
// waiver cell must not reject an otherwise usable row.
func ParseTriState(s string) TriState {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "1", "signed":
		return TriTrue
	case "false", "f", "no", "n", "0", "unsigned":
		return TriFalse
	default:
		return TriUnknown
	}
}

// Bool collapses the tri-state to the boolean used in classification,
// with unknown treated as false.
func (t TriState) Bool() bool { return t == TriTrue }

func (t TriState) String() string {
	switch t {
	case TriTrue:
		return "true"
	case TriFalse:
		return "false"
	default:
		return "unknown"
	}
}

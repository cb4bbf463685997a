/*
Package policy provides the core break-compliance engine.

PURPOSE:
  This package contains the domain types and algorithms for evaluating
  employee work shifts against a meal-break policy. Given a month of raw
  timecard rows it normalizes them into canonical shifts, classifies each
  shift with a compliance verdict, and aggregates verdicts into monthly
  and year-to-date summaries.

KEY CONCEPTS IN THIS FILE (types.go):
  - RawShiftRow: One timecard row as ingested, fields still nullable
  - CanonicalShift: A validated, immutable shift with derived duration
  - ClassifiedShift: A canonical shift paired with its verdict
  - RejectedRow: A raw row excluded from processing, with the reason
  - Month: A calendar month used as the reporting key

DESIGN PRINCIPLES:
  1. Immutability: CanonicalShift is built once and never mutated
  2. Explicitness: Missing data is modeled with nil, never sentinel values
  3. Determinism: Classification is a pure function over shift + policy
  4. Precision: Percentages use decimal.Decimal, not float64

USAGE:
  norm := policy.NewNormalizer(policy.California())
  shifts, rejected := norm.Normalize(rows)
  classified := policy.California().ClassifyAll(shifts)
  summary := policy.Summarize(classified, month)

SEE ALSO:
  - policy.go: BreakPolicy and the classification rules
  - normalize.go: RawShiftRow -> CanonicalShift conversion
  - summary.go: Verdict aggregation into MonthlySummary
  - ytd.go: Year-to-date compilation
*/
package policy

import (
	"fmt"
	"time"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string

// =============================================================================
// MONTH - Reporting key (calendar month)
// =============================================================================

// Month identifies a calendar month. It is the key under which summaries
// are stored and merged; the zero value is "no month".
type Month struct {
	Year  int
	Month time.Month
}

func NewMonth(year int, month time.Month) Month {
	return Month{Year: year, Month: month}
}

// MonthOf returns the month containing the given date.
func MonthOf(date time.Time) Month {
	return Month{Year: date.Year(), Month: date.Month()}
}

// ParseMonth parses the "2006-01" form used in reports and APIs.
func ParseMonth(s string) (Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return MonthOf(t), nil
}

func (m Month) IsZero() bool { return m.Year == 0 && m.Month == 0 }

func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

func (m Month) Equal(other Month) bool { return m == other }

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Contains reports whether the date falls inside this month.
func (m Month) Contains(date time.Time) bool {
	return date.Year() == m.Year && date.Month() == m.Month
}

// =============================================================================
// RAW SHIFT ROW - One ingested timecard row, before validation
// =============================================================================

// RawShiftRow is a timecard row as it arrives from the source file.
// Time fields are nullable because source data is incomplete; the
// Normalizer decides what each missing field means. LunchEnd is
// informational only: it never participates in classification, but it
// is used to impute a missing LunchStart.
type RawShiftRow struct {
	EmployeeID EmployeeID
	Date       time.Time // calendar date, midnight UTC; zero if unparseable
	ClockIn    *TimeOfDay
	ClockOut   *TimeOfDay
	LunchStart *TimeOfDay
	LunchEnd   *TimeOfDay
	Waiver     TriState

	// Line is the 1-based source line, carried through to the rejected-row
	// log so operators can locate the row for manual correction.
	Line int
}

// =============================================================================
// CANONICAL SHIFT - Validated shift record (immutable once built)
// =============================================================================

// CanonicalShift is a shift that passed normalization. ClockIn and
// ClockOut are always present; Duration = ClockOut - ClockIn and is
// negative only for overnight rows, which classification surfaces as
// VerdictRequiresReview rather than wrapping silently.
type CanonicalShift struct {
	EmployeeID   EmployeeID
	Date         time.Time
	ClockIn      TimeOfDay
	ClockOut     TimeOfDay
	LunchStart   *TimeOfDay // nil = no recorded break
	Duration     time.Duration
	WaiverSigned bool

	// LunchImputed marks shifts whose LunchStart was derived from
	// LunchEnd rather than recorded directly.
	LunchImputed bool
}

// ClassifiedShift pairs a canonical shift with its compliance verdict.
type ClassifiedShift struct {
	CanonicalShift
	Verdict Verdict
}

// =============================================================================
// REJECTED ROW - Excluded from processing, surfaced to operators
// =============================================================================

// RejectReason is the stable vocabulary of per-row rejection reasons.
type RejectReason string

const (
	ReasonIncompleteClockData RejectReason = "incomplete clock data"
	ReasonMissingIdentity     RejectReason = "missing employee or date"
	ReasonLunchOutsideShift   RejectReason = "lunch outside shift window"
	ReasonOutsideMonth        RejectReason = "outside reporting month"
)

// RejectedRow records a raw row excluded by the Normalizer together with
// the reason. Rejected rows never contribute to any summary.
type RejectedRow struct {
	Row    RawShiftRow
	Reason RejectReason
}

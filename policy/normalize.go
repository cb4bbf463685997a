/*
normalize.go - RawShiftRow to CanonicalShift conversion

PURPOSE:
  Applies the per-row data-quality rules that turn nullable ingested rows
  into canonical shifts or rejections. Rejection is always per-row and
  never aborts the batch; the rejected list is the operator-facing log
  for manual correction.

RULES, IN ORDER:
  1. Missing employee_id or date            -> reject (row has no identity)
  2. Missing clock_in OR clock_out          -> reject "incomplete clock data"
  3. lunch_start missing, lunch_end present -> impute start = end - break length
  4. Unknown waiver flag                    -> false (no waiver)
  5. duration = clock_out - clock_in; negative values are kept and
     flagged downstream as requires_review, never wrapped
  6. A recorded lunch outside (clock_in, clock_out) -> reject; the
     timestamp contradicts the shift it belongs to

The input slice is never mutated.
*/
package policy

// Normalizer converts raw rows into canonical shifts under a policy.
// The policy supplies the break length used for lunch-start imputation.
type Normalizer struct {
	policy BreakPolicy
}

func NewNormalizer(p BreakPolicy) *Normalizer {
	return &Normalizer{policy: p}
}

// Normalize partitions rows into canonical shifts and rejections,
// preserving input order within each partition.
func (n *Normalizer) Normalize(rows []RawShiftRow) ([]CanonicalShift, []RejectedRow) {
	var valid []CanonicalShift
	var rejected []RejectedRow

	for _, row := range rows {
		shift, reject := n.normalizeRow(row)
		if reject != nil {
			rejected = append(rejected, *reject)
			continue
		}
		valid = append(valid, shift)
	}
	return valid, rejected
}

func (n *Normalizer) normalizeRow(row RawShiftRow) (CanonicalShift, *RejectedRow) {
	if row.EmployeeID == "" || row.Date.IsZero() {
		return CanonicalShift{}, &RejectedRow{Row: row, Reason: ReasonMissingIdentity}
	}
	if row.ClockIn == nil || row.ClockOut == nil {
		return CanonicalShift{}, &RejectedRow{Row: row, Reason: ReasonIncompleteClockData}
	}

	shift := CanonicalShift{
		EmployeeID:   row.EmployeeID,
		Date:         row.Date,
		ClockIn:      *row.ClockIn,
		ClockOut:     *row.ClockOut,
		Duration:     row.ClockOut.Sub(*row.ClockIn),
		WaiverSigned: row.Waiver.Bool(),
	}

	switch {
	case row.LunchStart != nil:
		ls := *row.LunchStart
		shift.LunchStart = &ls
	case row.LunchEnd != nil:
		// Stated assumption: a recorded lunch end implies a break of the
		// policy's standard length.
		ls := row.LunchEnd.Add(-n.policy.BreakDuration)
		shift.LunchStart = &ls
		shift.LunchImputed = true
	}

	// The lunch-inside-shift invariant is only checkable when the clock
	// pair is coherent; overnight rows go to review with lunch intact.
	if shift.LunchStart != nil && shift.Duration >= 0 {
		if !shift.LunchStart.After(shift.ClockIn) || !shift.LunchStart.Before(shift.ClockOut) {
			return CanonicalShift{}, &RejectedRow{Row: row, Reason: ReasonLunchOutsideShift}
		}
	}

	return shift, nil
}

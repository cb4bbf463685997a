/*
Package export writes the CSV report artifacts.

PURPOSE:
  Produces the files consumed by the downstream reporting tools:

  - the classified per-shift dataset (cleaned rows + verdict column)
  - the rejected-row log for operator follow-up
  - the one-row monthly summary
  - the year-to-date report (one row per month plus a totals row)
  - the employee-level violation reports (monthly and YTD)

ATOMICITY:
  Every file is written to a temp file in the destination directory and
  renamed into place, so an interrupted run never leaves a partial
  artifact behind.

COLUMN VOCABULARY:
  Summary columns use the established report names (total_shifts,
  violations, violation_pct, missed_lunch, late_lunch_no_waiver,
  late_lunch_waiver) so existing dashboards keep working.
*/
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/goldenvalley/breakcheck/employee"
	"github.com/goldenvalley/breakcheck/policy"
)

// =============================================================================
// ARTIFACT WRITERS
// =============================================================================

// WriteShifts writes the classified per-shift dataset.
func WriteShifts(path string, shifts []policy.ClassifiedShift) error {
	return writeAtomic(path, func(w *csv.Writer) error {
		if err := w.Write([]string{
			"employee_id", "date", "clock_in", "lunch_start", "clock_out",
			"shift_minutes", "waiver_signed", "lunch_imputed", "verdict",
		}); err != nil {
			return err
		}
		for _, s := range shifts {
			lunch := ""
			if s.LunchStart != nil {
				lunch = s.LunchStart.String()
			}
			if err := w.Write([]string{
				string(s.EmployeeID),
				s.Date.Format("2006-01-02"),
				s.ClockIn.String(),
				lunch,
				s.ClockOut.String(),
				strconv.Itoa(int(s.Duration.Minutes())),
				strconv.FormatBool(s.WaiverSigned),
				strconv.FormatBool(s.LunchImputed),
				s.Verdict.String(),
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteRejected writes the rejected-row log.
func WriteRejected(path string, rejected []policy.RejectedRow) error {
	return writeAtomic(path, func(w *csv.Writer) error {
		if err := w.Write([]string{"line", "employee_id", "date", "reason"}); err != nil {
			return err
		}
		for _, r := range rejected {
			date := ""
			if !r.Row.Date.IsZero() {
				date = r.Row.Date.Format("2006-01-02")
			}
			if err := w.Write([]string{
				strconv.Itoa(r.Row.Line),
				string(r.Row.EmployeeID),
				date,
				string(r.Reason),
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

var summaryHeader = []string{
	"month", "total_shifts", "violations", "violation_pct",
	"missed_lunch", "late_lunch_no_waiver", "late_lunch_waiver",
	"on_time", "not_required", "requires_review", "five_hour_no_break",
}

// WriteMonthlySummary writes the one-row monthly report.
func WriteMonthlySummary(path string, s policy.MonthlySummary) error {
	return writeAtomic(path, func(w *csv.Writer) error {
		if err := w.Write(summaryHeader); err != nil {
			return err
		}
		return w.Write(summaryRecord(s))
	})
}

// WriteYearToDate writes one row per compiled month plus a totals row.
func WriteYearToDate(path string, ytd policy.YearToDate) error {
	return writeAtomic(path, func(w *csv.Writer) error {
		if err := w.Write(summaryHeader); err != nil {
			return err
		}
		for _, m := range ytd.Months {
			if err := w.Write(summaryRecord(m)); err != nil {
				return err
			}
		}
		t := ytd.Totals
		return w.Write([]string{
			"ytd",
			strconv.Itoa(t.TotalShifts),
			strconv.Itoa(t.Violations()),
			t.ViolationPercentage().StringFixed(2),
			strconv.Itoa(t.Missed),
			strconv.Itoa(t.LateNoWaiver),
			strconv.Itoa(t.LateWithWaiver),
			strconv.Itoa(t.OnTime),
			strconv.Itoa(t.NotRequired),
			strconv.Itoa(t.RequiresReview),
			strconv.Itoa(t.FiveHourNoBreak),
		})
	})
}

// WriteEmployeeReport writes the per-employee violation tallies.
func WriteEmployeeReport(path string, tallies []employee.Tally) error {
	return writeAtomic(path, func(w *csv.Writer) error {
		if err := w.Write([]string{
			"employee_id", "missed_lunch", "late_lunch_no_waiver",
			"late_lunch_waiver", "total_violations",
		}); err != nil {
			return err
		}
		for _, t := range tallies {
			if err := w.Write([]string{
				string(t.EmployeeID),
				strconv.Itoa(t.Missed),
				strconv.Itoa(t.LateNoWaiver),
				strconv.Itoa(t.LateWithWaiver),
				strconv.Itoa(t.Total()),
			}); err != nil {
				return err
			}
		}
		return nil
	})
}

func summaryRecord(s policy.MonthlySummary) []string {
	return []string{
		s.Month.String(),
		strconv.Itoa(s.TotalShifts),
		strconv.Itoa(s.Violations()),
		s.ViolationPercentage().StringFixed(2),
		strconv.Itoa(s.Missed),
		strconv.Itoa(s.LateNoWaiver),
		strconv.Itoa(s.LateWithWaiver),
		strconv.Itoa(s.OnTime),
		strconv.Itoa(s.NotRequired),
		strconv.Itoa(s.RequiresReview),
		strconv.Itoa(s.FiveHourNoBreak),
	}
}

// =============================================================================
// ATOMIC WRITES
// =============================================================================

// writeAtomic writes via temp-file-then-rename in the target directory.
func writeAtomic(path string, fn func(w *csv.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := fn(w); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("finalize %s: %w", path, err)
	}
	return nil
}

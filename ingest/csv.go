/*
Package ingest reads timecard CSV files into raw shift rows.

PURPOSE:
  Translates the tabular export format into policy.RawShiftRow values.
  The split of responsibilities with the normalizer is deliberate:

  - Structural problems (unreadable file, required column missing from
    the header, zero rows) are fatal and abort the run before any
    output exists.
  - Cell-level problems (blank or unparseable time, garbled waiver
    flag) become nil/unknown fields on the raw row. The normalizer
    owns the per-row verdicts about what missing data means.

EXPECTED COLUMNS:
  required: employee_id, date, clock_in, clock_out
  optional: lunch_start, lunch_end, waiver_signed

  Column order does not matter; unknown columns are ignored. Dates are
  accepted as 2006-01-02 or 01/02/2006.
*/
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goldenvalley/breakcheck/policy"
)

// Required header columns. lunch_start, lunch_end and waiver_signed are
// optional: exports from older clock hardware omit them.
var requiredColumns = []string{"employee_id", "date", "clock_in", "clock_out"}

var dateLayouts = []string{"2006-01-02", "01/02/2006"}

// ReadFile reads a timecard CSV from disk.
func ReadFile(path string) ([]policy.RawShiftRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open timecard file: %w", err)
	}
	defer f.Close()

	rows, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// Read parses timecard CSV content into raw rows.
func Read(r io.Reader) ([]policy.RawShiftRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // ragged rows are handled per-cell
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, policy.ErrEmptyInput
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := mapHeader(header)
	if err != nil {
		return nil, err
	}

	var rows []policy.RawShiftRow
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		rows = append(rows, parseRow(record, cols, line))
	}

	if len(rows) == 0 {
		return nil, policy.ErrEmptyInput
	}
	return rows, nil
}

// mapHeader resolves column positions and enforces the required set.
func mapHeader(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("%w: %s", policy.ErrMissingColumn, name)
		}
	}
	return cols, nil
}

func parseRow(record []string, cols map[string]int, line int) policy.RawShiftRow {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	return policy.RawShiftRow{
		EmployeeID: policy.EmployeeID(cell("employee_id")),
		Date:       parseDate(cell("date")),
		ClockIn:    parseClock(cell("clock_in")),
		ClockOut:   parseClock(cell("clock_out")),
		LunchStart: parseClock(cell("lunch_start")),
		LunchEnd:   parseClock(cell("lunch_end")),
		Waiver:     policy.ParseTriState(cell("waiver_signed")),
		Line:       line,
	}
}

// parseClock maps blank or unparseable cells to nil; the normalizer
// decides what a missing timestamp means for the row.
func parseClock(s string) *policy.TimeOfDay {
	if s == "" {
		return nil
	}
	t, err := policy.ParseTimeOfDay(s)
	if err != nil {
		return nil
	}
	return &t
}

// parseDate returns the zero time for bad cells; the normalizer rejects
// rows without an identity.
func parseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
	}
	return time.Time{}
}

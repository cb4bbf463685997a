package export_test

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldenvalley/breakcheck/employee"
	"github.com/goldenvalley/breakcheck/export"
	"github.com/goldenvalley/breakcheck/policy"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func sampleShift() policy.ClassifiedShift {
	lunch := policy.ClockTime(12, 0, 0)
	return policy.ClassifiedShift{
		CanonicalShift: policy.CanonicalShift{
			EmployeeID: "emp-1",
			Date:       time.Date(2024, time.December, 2, 0, 0, 0, 0, time.UTC),
			ClockIn:    policy.ClockTime(8, 0, 0),
			ClockOut:   policy.ClockTime(16, 0, 0),
			LunchStart: &lunch,
			Duration:   8 * time.Hour,
		},
		Verdict: policy.VerdictOnTime,
	}
}

func TestWriteShifts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shifts.csv")

	require.NoError(t, export.WriteShifts(path, []policy.ClassifiedShift{sampleShift()}))

	records := readCSV(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, "verdict", records[0][8])
	assert.Equal(t, []string{
		"emp-1", "2024-12-02", "08:00:00", "12:00:00", "16:00:00",
		"480", "false", "false", "on_time",
	}, records[1])
}

func TestWriteMonthlySummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")
	s := policy.MonthlySummary{
		Month:       policy.NewMonth(2024, time.December),
		TotalShifts: 400,
		Missed:      100,
		LateNoWaiver: 63, LateWithWaiver: 7,
		OnTime: 230,
	}

	require.NoError(t, export.WriteMonthlySummary(path, s))

	records := readCSV(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, "2024-12", records[1][0])
	assert.Equal(t, "400", records[1][1])
	assert.Equal(t, "163", records[1][2])
	assert.Equal(t, "40.75", records[1][3])
}

func TestWriteYearToDate_IncludesTotalsRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ytd.csv")
	ytd := policy.Compile([]policy.MonthlySummary{
		{Month: policy.NewMonth(2024, time.November), TotalShifts: 10, Missed: 1, OnTime: 9, FiveHourNoBreak: 2},
		{Month: policy.NewMonth(2024, time.December), TotalShifts: 10, Missed: 3, OnTime: 7, FiveHourNoBreak: 1},
	})

	require.NoError(t, export.WriteYearToDate(path, ytd))

	records := readCSV(t, path)
	require.Len(t, records, 4)
	assert.Equal(t, "2024-11", records[1][0])
	assert.Equal(t, "2024-12", records[2][0])
	assert.Equal(t, "ytd", records[3][0])
	assert.Equal(t, "20", records[3][1])
	assert.Equal(t, "4", records[3][2])
	assert.Equal(t, "20.00", records[3][3])
	assert.Equal(t, "3", records[3][10])
}

func TestWriteRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rejected.csv")
	rejected := []policy.RejectedRow{{
		Row: policy.RawShiftRow{
			EmployeeID: "emp-2",
			Date:       time.Date(2024, time.December, 3, 0, 0, 0, 0, time.UTC),
			Line:       14,
		},
		Reason: policy.ReasonIncompleteClockData,
	}}

	require.NoError(t, export.WriteRejected(path, rejected))

	records := readCSV(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"14", "emp-2", "2024-12-03", "incomplete clock data"}, records[1])
}

func TestWriteEmployeeReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.csv")
	tallies := []employee.Tally{
		{EmployeeID: "emp-1", Missed: 2, LateNoWaiver: 1, LateWithWaiver: 1},
	}

	require.NoError(t, export.WriteEmployeeReport(path, tallies))

	records := readCSV(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"emp-1", "2", "1", "1", "3"}, records[1])
}

func TestWriteAtomic_NoPartialFileOnSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")

	require.NoError(t, export.WriteMonthlySummary(path, policy.MonthlySummary{
		Month: policy.NewMonth(2024, time.December),
	}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp file must be gone after rename")
	assert.Equal(t, "out.csv", entries[0].Name())
}

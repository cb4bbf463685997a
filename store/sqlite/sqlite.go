/*
Package sqlite persists compliance runs and summaries in SQLite.

PURPOSE:
  Stores everything a run produces: the classified shift dataset, the
  rejected-row log, the monthly summary, the employee tallies, and the
  run record itself. The year-to-date view is compiled from the stored
  monthly summaries on read, so cumulative totals can never drift from
  their parts.

RE-RUN SEMANTICS:
  A month is the unit of replacement. SaveRun deletes the month's prior
  shifts, rejections and employee tallies, re-inserts the new ones, and
  upserts the monthly summary - all inside one SQL transaction. Either
  the whole month flips to the new run or nothing changes, which is the
  atomic read-modify-write discipline the cumulative report requires.

KEY TABLES:
  runs:               One record per processed batch (audit trail)
  shifts:             Classified per-shift dataset, keyed by month
  rejected_rows:      Operator-facing log of excluded rows
  monthly_summaries:  One row per month, UNIQUE(month), upsert on re-run
  employee_summaries: Per-employee violation tallies, keyed by month

WAL MODE:
  The database is opened with WAL so the API can serve reads while a
  monthly run commits.

USAGE:
  store, err := sqlite.New("./data/breakcheck.db")
  if err != nil { ... }
  defer store.Close()

SEE ALSO:
  - pipeline/run.go: Produces the values saved here
  - policy/ytd.go: Compile, used for the year-to-date view
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/goldenvalley/breakcheck/employee"
	"github.com/goldenvalley/breakcheck/policy"
)

// Store wraps a SQLite database holding compliance results.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Run is the audit record for one processed batch.
type Run struct {
	ID           uuid.UUID
	Month        policy.Month
	Source       string
	TotalRows    int
	ValidShifts  int
	RejectedRows int
	StartedAt    time.Time
	CompletedAt  time.Time
}

// RejectedRecord is the persisted form of a rejected row.
type RejectedRecord struct {
	Month      policy.Month
	Line       int
	EmployeeID policy.EmployeeID
	Date       string // "2006-01-02", empty when the source cell was bad
	Reason     policy.RejectReason
}

// New opens (or creates) the database at dbPath and migrates the schema.
// Use ":memory:" for tests.
func New(dbPath string) (*Store, error) {
	// go-sqlite3 cannot create a database in a missing directory.
	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- One record per processed batch
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		month TEXT NOT NULL,
		source TEXT,
		total_rows INTEGER NOT NULL,
		valid_shifts INTEGER NOT NULL,
		rejected_rows INTEGER NOT NULL,
		started_at TEXT NOT NULL,
		completed_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_month ON runs(month);

	-- Classified per-shift dataset (replaced wholesale per month)
	CREATE TABLE IF NOT EXISTS shifts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		month TEXT NOT NULL,
		employee_id TEXT NOT NULL,
		date TEXT NOT NULL,
		clock_in TEXT NOT NULL,
		clock_out TEXT NOT NULL,
		lunch_start TEXT,
		duration_seconds INTEGER NOT NULL,
		waiver_signed BOOLEAN NOT NULL,
		lunch_imputed BOOLEAN NOT NULL,
		verdict TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_shifts_month ON shifts(month);
	CREATE INDEX IF NOT EXISTS idx_shifts_employee ON shifts(employee_id, month);
	CREATE INDEX IF NOT EXISTS idx_shifts_verdict ON shifts(month, verdict);

	-- Rows excluded by normalization, for operator follow-up
	CREATE TABLE IF NOT EXISTS rejected_rows (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		month TEXT NOT NULL,
		line INTEGER NOT NULL,
		employee_id TEXT,
		date TEXT,
		reason TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_rejected_month ON rejected_rows(month);

	-- One summary row per month; re-runs replace in place
	CREATE TABLE IF NOT EXISTS monthly_summaries (
		month TEXT PRIMARY KEY,
		total_shifts INTEGER NOT NULL,
		on_time INTEGER NOT NULL,
		late_no_waiver INTEGER NOT NULL,
		late_with_waiver INTEGER NOT NULL,
		missed INTEGER NOT NULL,
		not_required INTEGER NOT NULL,
		requires_review INTEGER NOT NULL,
		five_hour_no_break INTEGER NOT NULL,
		updated_at TEXT NOT NULL
	);

	-- Per-employee violation tallies per month
	CREATE TABLE IF NOT EXISTS employee_summaries (
		month TEXT NOT NULL,
		employee_id TEXT NOT NULL,
		missed INTEGER NOT NULL,
		late_no_waiver INTEGER NOT NULL,
		late_with_waiver INTEGER NOT NULL,
		PRIMARY KEY (month, employee_id)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SAVE RUN - The single write path (atomic per month)
// =============================================================================

// SaveRun commits everything one run produced, replacing any prior data
// for the same month. All writes happen in one transaction.
func (s *Store) SaveRun(ctx context.Context, run Run, shifts []policy.ClassifiedShift,
	rejected []policy.RejectedRow, summary policy.MonthlySummary, report employee.Report) error {

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run transaction: %w", err)
	}
	defer tx.Rollback()

	month := run.Month.String()
	for _, table := range []string{"shifts", "rejected_rows", "employee_summaries"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE month = ?", month); err != nil {
			return fmt.Errorf("clear %s for %s: %w", table, month, err)
		}
	}

	for _, sh := range shifts {
		var lunch any
		if sh.LunchStart != nil {
			lunch = sh.LunchStart.String()
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO shifts
			(month, employee_id, date, clock_in, clock_out, lunch_start,
			 duration_seconds, waiver_signed, lunch_imputed, verdict)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			month, sh.EmployeeID, sh.Date.Format("2006-01-02"),
			sh.ClockIn.String(), sh.ClockOut.String(), lunch,
			int(sh.Duration/time.Second), sh.WaiverSigned, sh.LunchImputed,
			sh.Verdict.String(),
		)
		if err != nil {
			return fmt.Errorf("insert shift: %w", err)
		}
	}

	for _, r := range rejected {
		date := ""
		if !r.Row.Date.IsZero() {
			date = r.Row.Date.Format("2006-01-02")
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO rejected_rows (month, line, employee_id, date, reason)
			VALUES (?, ?, ?, ?, ?)`,
			month, r.Row.Line, r.Row.EmployeeID, date, string(r.Reason),
		)
		if err != nil {
			return fmt.Errorf("insert rejected row: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO monthly_summaries
		(month, total_shifts, on_time, late_no_waiver, late_with_waiver,
		 missed, not_required, requires_review, five_hour_no_break, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(month) DO UPDATE SET
			total_shifts = excluded.total_shifts,
			on_time = excluded.on_time,
			late_no_waiver = excluded.late_no_waiver,
			late_with_waiver = excluded.late_with_waiver,
			missed = excluded.missed,
			not_required = excluded.not_required,
			requires_review = excluded.requires_review,
			five_hour_no_break = excluded.five_hour_no_break,
			updated_at = excluded.updated_at`,
		month, summary.TotalShifts, summary.OnTime, summary.LateNoWaiver,
		summary.LateWithWaiver, summary.Missed, summary.NotRequired,
		summary.RequiresReview, summary.FiveHourNoBreak,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert monthly summary: %w", err)
	}

	for _, t := range report.Tallies {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO employee_summaries
			(month, employee_id, missed, late_no_waiver, late_with_waiver)
			VALUES (?, ?, ?, ?, ?)`,
			month, t.EmployeeID, t.Missed, t.LateNoWaiver, t.LateWithWaiver,
		)
		if err != nil {
			return fmt.Errorf("insert employee summary: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, month, source, total_rows, valid_shifts, rejected_rows, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(), month, run.Source, run.TotalRows, run.ValidShifts,
		run.RejectedRows,
		run.StartedAt.UTC().Format(time.RFC3339),
		run.CompletedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert run record: %w", err)
	}

	return tx.Commit()
}

// =============================================================================
// SUMMARY QUERIES
// =============================================================================

// MonthlySummaries returns all stored summaries ordered by month.
func (s *Store) MonthlySummaries(ctx context.Context) ([]policy.MonthlySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT month, total_shifts, on_time, late_no_waiver, late_with_waiver,
		       missed, not_required, requires_review, five_hour_no_break
		FROM monthly_summaries ORDER BY month ASC`)
	if err != nil {
		return nil, fmt.Errorf("query monthly summaries: %w", err)
	}
	defer rows.Close()

	var summaries []policy.MonthlySummary
	for rows.Next() {
		ms, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, ms)
	}
	return summaries, rows.Err()
}

// MonthlySummary returns the stored summary for one month.
func (s *Store) MonthlySummary(ctx context.Context, m policy.Month) (policy.MonthlySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT month, total_shifts, on_time, late_no_waiver, late_with_waiver,
		       missed, not_required, requires_review, five_hour_no_break
		FROM monthly_summaries WHERE month = ?`, m.String())

	ms, err := scanSummary(row)
	if err == sql.ErrNoRows {
		return policy.MonthlySummary{}, fmt.Errorf("%w: %s", policy.ErrMonthNotFound, m)
	}
	return ms, err
}

// YearToDate compiles the cumulative view from the stored summaries.
func (s *Store) YearToDate(ctx context.Context) (policy.YearToDate, error) {
	summaries, err := s.MonthlySummaries(ctx)
	if err != nil {
		return policy.YearToDate{}, err
	}
	return policy.Compile(summaries), nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanSummary(row scannable) (policy.MonthlySummary, error) {
	var ms policy.MonthlySummary
	var month string
	if err := row.Scan(&month, &ms.TotalShifts, &ms.OnTime, &ms.LateNoWaiver,
		&ms.LateWithWaiver, &ms.Missed, &ms.NotRequired, &ms.RequiresReview,
		&ms.FiveHourNoBreak); err != nil {
		return policy.MonthlySummary{}, err
	}
	m, err := policy.ParseMonth(month)
	if err != nil {
		return policy.MonthlySummary{}, fmt.Errorf("stored month corrupt: %w", err)
	}
	ms.Month = m
	return ms, nil
}

// =============================================================================
// SHIFT AND REJECTION QUERIES
// =============================================================================

// Shifts returns the classified dataset for a month, optionally filtered
// to violations only. Ordered by date, then employee.
func (s *Store) Shifts(ctx context.Context, m policy.Month, violationsOnly bool) ([]policy.ClassifiedShift, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT employee_id, date, clock_in, clock_out, lunch_start,
		       duration_seconds, waiver_signed, lunch_imputed, verdict
		FROM shifts WHERE month = ?`
	if violationsOnly {
		query += ` AND verdict IN ('missed', 'late_no_waiver')`
	}
	query += ` ORDER BY date ASC, employee_id ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, m.String())
	if err != nil {
		return nil, fmt.Errorf("query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []policy.ClassifiedShift
	for rows.Next() {
		var (
			sh         policy.ClassifiedShift
			date       string
			in, out    string
			lunch      sql.NullString
			durationS  int64
			verdictStr string
		)
		if err := rows.Scan(&sh.EmployeeID, &date, &in, &out, &lunch,
			&durationS, &sh.WaiverSigned, &sh.LunchImputed, &verdictStr); err != nil {
			return nil, err
		}

		if sh.Date, err = time.Parse("2006-01-02", date); err != nil {
			return nil, fmt.Errorf("stored date corrupt: %w", err)
		}
		if sh.ClockIn, err = policy.ParseTimeOfDay(in); err != nil {
			return nil, fmt.Errorf("stored clock_in corrupt: %w", err)
		}
		if sh.ClockOut, err = policy.ParseTimeOfDay(out); err != nil {
			return nil, fmt.Errorf("stored clock_out corrupt: %w", err)
		}
		if lunch.Valid {
			ls, err := policy.ParseTimeOfDay(lunch.String)
			if err != nil {
				return nil, fmt.Errorf("stored lunch_start corrupt: %w", err)
			}
			sh.LunchStart = &ls
		}
		sh.Duration = time.Duration(durationS) * time.Second
		if sh.Verdict, err = policy.ParseVerdict(verdictStr); err != nil {
			return nil, fmt.Errorf("stored verdict corrupt: %w", err)
		}
		shifts = append(shifts, sh)
	}
	return shifts, rows.Err()
}

// Rejected returns the rejected-row log for a month, in source order.
func (s *Store) Rejected(ctx context.Context, m policy.Month) ([]RejectedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT line, employee_id, date, reason
		FROM rejected_rows WHERE month = ? ORDER BY line ASC`, m.String())
	if err != nil {
		return nil, fmt.Errorf("query rejected rows: %w", err)
	}
	defer rows.Close()

	var records []RejectedRecord
	for rows.Next() {
		r := RejectedRecord{Month: m}
		var reason string
		if err := rows.Scan(&r.Line, &r.EmployeeID, &r.Date, &reason); err != nil {
			return nil, err
		}
		r.Reason = policy.RejectReason(reason)
		records = append(records, r)
	}
	return records, rows.Err()
}

// =============================================================================
// EMPLOYEE QUERIES
// =============================================================================

// EmployeeReport returns the per-employee tallies stored for a month,
// worst-first.
func (s *Store) EmployeeReport(ctx context.Context, m policy.Month) (employee.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, missed, late_no_waiver, late_with_waiver
		FROM employee_summaries WHERE month = ?
		ORDER BY (missed + late_no_waiver) DESC, employee_id ASC`, m.String())
	if err != nil {
		return employee.Report{}, fmt.Errorf("query employee summaries: %w", err)
	}
	defer rows.Close()

	report := employee.Report{Month: m}
	for rows.Next() {
		var t employee.Tally
		if err := rows.Scan(&t.EmployeeID, &t.Missed, &t.LateNoWaiver, &t.LateWithWaiver); err != nil {
			return employee.Report{}, err
		}
		report.Tallies = append(report.Tallies, t)
	}
	return report, rows.Err()
}

// EmployeeYearToDate sums the stored monthly tallies per employee.
func (s *Store) EmployeeYearToDate(ctx context.Context) ([]employee.Tally, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT employee_id, SUM(missed), SUM(late_no_waiver), SUM(late_with_waiver)
		FROM employee_summaries
		GROUP BY employee_id
		ORDER BY (SUM(missed) + SUM(late_no_waiver)) DESC, employee_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query employee year-to-date: %w", err)
	}
	defer rows.Close()

	var tallies []employee.Tally
	for rows.Next() {
		var t employee.Tally
		if err := rows.Scan(&t.EmployeeID, &t.Missed, &t.LateNoWaiver, &t.LateWithWaiver); err != nil {
			return nil, err
		}
		tallies = append(tallies, t)
	}
	return tallies, rows.Err()
}

// =============================================================================
// RUN HISTORY
// =============================================================================

// ListRuns returns run records, most recent first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, month, source, total_rows, valid_shifts, rejected_rows,
		       started_at, completed_at
		FROM runs ORDER BY completed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r                  Run
			id, month          string
			started, completed string
		)
		if err := rows.Scan(&id, &month, &r.Source, &r.TotalRows,
			&r.ValidShifts, &r.RejectedRows, &started, &completed); err != nil {
			return nil, err
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("stored run id corrupt: %w", err)
		}
		if r.Month, err = policy.ParseMonth(month); err != nil {
			return nil, fmt.Errorf("stored run month corrupt: %w", err)
		}
		if r.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
			return nil, fmt.Errorf("stored run timestamp corrupt: %w", err)
		}
		if r.CompletedAt, err = time.Parse(time.RFC3339, completed); err != nil {
			return nil, fmt.Errorf("stored run timestamp corrupt: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

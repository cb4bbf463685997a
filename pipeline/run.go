/*
Package pipeline orchestrates one monthly compliance run.

PURPOSE:
  Wires the stages together for a single batch: read the timecard CSV,
  resolve the reporting month, normalize raw rows, classify every shift
  against the break policy, roll up the monthly summary and the
  per-employee report, and persist everything atomically. Optionally
  writes the CSV artifacts operators hand to HR.

MONTH RESOLUTION:
  A run covers exactly one calendar month. The caller may pin it via
  Options.Month; otherwise the month of the first row with a valid date
  wins. Rows dated outside the reporting month are rejected up front so
  a stray row from an adjacent export cannot skew the summary.

FAILURE MODEL:
  Structural failures (unreadable file, missing column, no usable month)
  abort the run with an error and nothing is persisted. Row-level
  problems never abort: they land in the rejected log, which is part of
  the run's output.

SEE ALSO:
  - policy/normalize.go: Row-level validation rules
  - store/sqlite/sqlite.go: Atomic per-month persistence
*/
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goldenvalley/breakcheck/employee"
	"github.com/goldenvalley/breakcheck/export"
	"github.com/goldenvalley/breakcheck/ingest"
	"github.com/goldenvalley/breakcheck/policy"
	"github.com/goldenvalley/breakcheck/store/sqlite"
)

// =============================================================================
// RUNNER
// =============================================================================

// Runner executes monthly compliance runs. A nil Store skips
// persistence, which makes dry runs and tests cheap.
type Runner struct {
	Policy policy.BreakPolicy
	Store  *sqlite.Store
	Logger *zap.Logger
}

// Options tune a single run.
type Options struct {
	// Month pins the reporting month. Zero means infer it from the
	// first row carrying a valid date.
	Month policy.Month

	// OutDir, when set, receives the CSV artifacts for the run.
	OutDir string
}

// RunReport is everything one run produced.
type RunReport struct {
	RunID       uuid.UUID
	Month       policy.Month
	Source      string
	TotalRows   int
	Shifts      []policy.ClassifiedShift
	Rejected    []policy.RejectedRow
	Summary     policy.MonthlySummary
	Employees   employee.Report
	StartedAt   time.Time
	CompletedAt time.Time
}

// NewRunner builds a runner with the given policy and store. Logger
// defaults to a no-op logger when nil.
func NewRunner(p policy.BreakPolicy, store *sqlite.Store, logger *zap.Logger) (*Runner, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{Policy: p, Store: store, Logger: logger}, nil
}

// =============================================================================
// RUN EXECUTION
// =============================================================================

// RunFile reads a timecard CSV from disk and executes a run over it.
func (r *Runner) RunFile(ctx context.Context, path string, opts Options) (RunReport, error) {
	rows, err := ingest.ReadFile(path)
	if err != nil {
		return RunReport{}, err
	}
	return r.Run(ctx, filepath.Base(path), rows, opts)
}

// Run processes one batch of raw rows end to end.
func (r *Runner) Run(ctx context.Context, source string, rows []policy.RawShiftRow, opts Options) (RunReport, error) {
	started := time.Now().UTC()

	month, err := resolveMonth(rows, opts.Month)
	if err != nil {
		return RunReport{}, err
	}

	inMonth, outOfMonth := partitionByMonth(rows, month)

	normalizer := policy.NewNormalizer(r.Policy)
	shifts, rejected := normalizer.Normalize(inMonth)
	rejected = mergeRejections(rejected, outOfMonth)

	classified := r.Policy.ClassifyAll(shifts)
	summary := r.Policy.Summarize(classified, month)
	report := employee.BuildReport(classified, month)

	run := RunReport{
		RunID:     uuid.New(),
		Month:     month,
		Source:    source,
		TotalRows: len(rows),
		Shifts:    classified,
		Rejected:  rejected,
		Summary:   summary,
		Employees: report,
		StartedAt: started,
	}

	r.Logger.Info("batch classified",
		zap.String("run_id", run.RunID.String()),
		zap.String("month", month.String()),
		zap.String("source", source),
		zap.Int("total_rows", len(rows)),
		zap.Int("valid_shifts", len(classified)),
		zap.Int("rejected_rows", len(rejected)),
		zap.Int("violations", summary.Violations()),
	)

	if opts.OutDir != "" {
		if err := r.writeArtifacts(run, opts.OutDir); err != nil {
			return RunReport{}, err
		}
	}

	run.CompletedAt = time.Now().UTC()

	if r.Store != nil {
		record := sqlite.Run{
			ID:           run.RunID,
			Month:        month,
			Source:       source,
			TotalRows:    run.TotalRows,
			ValidShifts:  len(classified),
			RejectedRows: len(rejected),
			StartedAt:    run.StartedAt,
			CompletedAt:  run.CompletedAt,
		}
		if err := r.Store.SaveRun(ctx, record, classified, rejected, summary, report); err != nil {
			return RunReport{}, fmt.Errorf("persist run: %w", err)
		}
		r.Logger.Info("run persisted",
			zap.String("run_id", run.RunID.String()),
			zap.String("month", month.String()),
		)
	}

	return run, nil
}

// =============================================================================
// MONTH RESOLUTION
// =============================================================================

// resolveMonth picks the reporting month: the override wins, otherwise
// the first row with a parseable date decides.
func resolveMonth(rows []policy.RawShiftRow, override policy.Month) (policy.Month, error) {
	if !override.IsZero() {
		return override, nil
	}
	for _, row := range rows {
		if !row.Date.IsZero() {
			return policy.MonthOf(row.Date), nil
		}
	}
	return policy.Month{}, fmt.Errorf("no row carries a usable date, cannot infer reporting month: %w", policy.ErrEmptyInput)
}

// mergeRejections combines the normalizer's rejections with the
// out-of-month ones in source-line order, so the operator log reads
// top to bottom.
func mergeRejections(a, b []policy.RejectedRow) []policy.RejectedRow {
	merged := append(append([]policy.RejectedRow{}, a...), b...)
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Row.Line < merged[j].Row.Line
	})
	return merged
}

// partitionByMonth rejects rows dated outside the reporting month. Rows
// with an unparseable date pass through so the normalizer can log them
// under its own reason.
func partitionByMonth(rows []policy.RawShiftRow, month policy.Month) (in []policy.RawShiftRow, out []policy.RejectedRow) {
	for _, row := range rows {
		if !row.Date.IsZero() && !month.Contains(row.Date) {
			out = append(out, policy.RejectedRow{Row: row, Reason: policy.ReasonOutsideMonth})
			continue
		}
		in = append(in, row)
	}
	return in, out
}

// =============================================================================
// CSV ARTIFACTS
// =============================================================================

func (r *Runner) writeArtifacts(run RunReport, dir string) error {
	prefix := filepath.Join(dir, run.Month.String())

	writes := []struct {
		name string
		fn   func() error
	}{
		{"shifts", func() error { return export.WriteShifts(prefix+"_shifts.csv", run.Shifts) }},
		{"rejected", func() error { return export.WriteRejected(prefix+"_rejected.csv", run.Rejected) }},
		{"summary", func() error { return export.WriteMonthlySummary(prefix+"_summary.csv", run.Summary) }},
		{"employees", func() error { return export.WriteEmployeeReport(prefix+"_employees.csv", run.Employees.Tallies) }},
	}
	for _, w := range writes {
		if err := w.fn(); err != nil {
			return fmt.Errorf("write %s artifact: %w", w.name, err)
		}
	}

	r.Logger.Info("artifacts written", zap.String("dir", dir), zap.String("month", run.Month.String()))
	return nil
}

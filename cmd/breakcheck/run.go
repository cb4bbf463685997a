/*
run.go - monthly batch command

PURPOSE:
  Processes one timecard CSV end to end and persists the results. This
  is the command payroll runs after each monthly export.
*/
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goldenvalley/breakcheck/pipeline"
	"github.com/goldenvalley/breakcheck/policy"
	"github.com/goldenvalley/breakcheck/store/sqlite"
)

var (
	runMonth  string
	runOutDir string
	runDryRun bool
)

var runCmd = &cobra.Command{
	Use:   "run <timecards.csv>",
	Short: "Process one month of timecard data",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := pipeline.Options{OutDir: runOutDir}
		if runMonth != "" {
			month, err := policy.ParseMonth(runMonth)
			if err != nil {
				return fmt.Errorf("invalid --month: %w", err)
			}
			opts.Month = month
		}

		breakPolicy, err := loadPolicy(policyFile)
		if err != nil {
			return err
		}

		var store *sqlite.Store
		if !runDryRun {
			store, err = sqlite.New(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()
		}

		runner, err := pipeline.NewRunner(breakPolicy, store, logger)
		if err != nil {
			return err
		}

		report, err := runner.RunFile(cmd.Context(), args[0], opts)
		if err != nil {
			return err
		}

		logger.Info("run complete",
			zap.String("run_id", report.RunID.String()),
			zap.String("month", report.Month.String()),
		)

		printSummary(cmd, report.Summary)
		if len(report.Rejected) > 0 {
			cmd.Printf("\nRejected rows (%d):\n", len(report.Rejected))
			for _, r := range report.Rejected {
				cmd.Printf("  line %-4d %-12s %s\n", r.Row.Line, r.Row.EmployeeID, r.Reason)
			}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runMonth, "month", "", "pin the reporting month (YYYY-MM, default: inferred)")
	runCmd.Flags().StringVar(&runOutDir, "out", "", "directory for CSV artifacts (default: none)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "classify and report without persisting")
}

func printSummary(cmd *cobra.Command, s policy.MonthlySummary) {
	cmd.Printf("Month %s: %d shifts, %d violations (%s%%)\n",
		s.Month, s.TotalShifts, s.Violations(), s.ViolationPercentage().StringFixed(2))
	cmd.Printf("  missed lunch:          %d\n", s.Missed)
	cmd.Printf("  late lunch, no waiver: %d\n", s.LateNoWaiver)
	cmd.Printf("  late lunch, waived:    %d\n", s.LateWithWaiver)
	cmd.Printf("  on time:               %d\n", s.OnTime)
	cmd.Printf("  no break owed:         %d\n", s.NotRequired)
	if s.RequiresReview > 0 {
		cmd.Printf("  requires review:       %d\n", s.RequiresReview)
	}
	if s.FiveHourNoBreak > 0 {
		cmd.Printf("  5h shifts, no break:   %d\n", s.FiveHourNoBreak)
	}
}

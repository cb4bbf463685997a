/*
main.go - breakcheck CLI entry point

PURPOSE:
  Command-line interface for the meal break compliance engine. One
  binary covers the monthly batch workflow and the reporting server.

COMMANDS:
  run <timecards.csv>   Process one month of timecards
  serve                 Start the reporting HTTP server
  ytd                   Print the cumulative year-to-date summary
  employees             Print per-employee violation tallies

CONFIGURATION:
  The serve command reads BREAKCHECK_-prefixed environment variables
  (see config package). Batch commands take flags; --db and --policy
  are shared.

EXAMPLES:
  # Process December's export and write CSV artifacts
  breakcheck run timecards_dec.csv --out ./reports

  # Re-run a month with a pinned reporting month
  breakcheck run stray_export.csv --month 2024-12

  # Serve stored results
  BREAKCHECK_SERVER_PORT=9090 breakcheck serve

SEE ALSO:
  - pipeline/run.go: Batch orchestration
  - api/server.go: Router configuration
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/goldenvalley/breakcheck/factory"
	"github.com/goldenvalley/breakcheck/policy"
)

var (
	// Global flags
	dbPath     string
	policyFile string
	verbose    bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "breakcheck",
	Short: "Meal break compliance engine for timecard exports",
	Long: `breakcheck classifies employee shifts against a meal break policy.

It reads monthly timecard CSV exports, normalizes and classifies every
shift, and maintains monthly and year-to-date compliance summaries in
a local SQLite database. The serve command exposes stored results over
HTTP for the reporting dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = buildLogger(verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func buildLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// loadPolicy resolves the effective break policy: an explicit document
// wins, otherwise the built-in California policy applies.
func loadPolicy(path string) (policy.BreakPolicy, error) {
	if path == "" {
		return policy.California(), nil
	}
	return factory.NewPolicyFactory().LoadPolicy(path)
}

func main() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "./data/breakcheck.db", "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&policyFile, "policy", "", "JSON policy document (default: built-in California policy)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ytdCmd)
	rootCmd.AddCommand(employeesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

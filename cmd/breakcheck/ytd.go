/*
ytd.go - year-to-date and employee reporting commands

PURPOSE:
  Read-only views over the stored results for quick terminal checks
  without standing up the server.
*/
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goldenvalley/breakcheck/employee"
	"github.com/goldenvalley/breakcheck/policy"
	"github.com/goldenvalley/breakcheck/store/sqlite"
)

var ytdCmd = &cobra.Command{
	Use:   "ytd",
	Short: "Print the cumulative year-to-date compliance summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := sqlite.New(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		ytd, err := store.YearToDate(cmd.Context())
		if err != nil {
			return err
		}
		if len(ytd.Months) == 0 {
			cmd.Println("No processed months yet.")
			return nil
		}

		cmd.Printf("%-8s %8s %10s %8s %8s %8s\n", "month", "shifts", "violations", "pct", "missed", "late")
		for _, m := range ytd.Months {
			cmd.Printf("%-8s %8d %10d %7s%% %8d %8d\n",
				m.Month, m.TotalShifts, m.Violations(),
				m.ViolationPercentage().StringFixed(2), m.Missed, m.LateNoWaiver)
		}
		cmd.Printf("%-8s %8d %10d %7s%% %8d %8d\n",
			"total", ytd.Totals.TotalShifts, ytd.Totals.Violations(),
			ytd.Totals.ViolationPercentage().StringFixed(2),
			ytd.Totals.Missed, ytd.Totals.LateNoWaiver)
		return nil
	},
}

var employeesMonth string

var employeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "Print per-employee violation tallies",
	Long: `Prints per-employee violation tallies, worst offenders first.

With --month, shows one month's report. Without it, shows cumulative
tallies across every stored month.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := sqlite.New(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		var tallies []employee.Tally
		if employeesMonth != "" {
			month, err := policy.ParseMonth(employeesMonth)
			if err != nil {
				return fmt.Errorf("invalid --month: %w", err)
			}
			report, err := store.EmployeeReport(cmd.Context(), month)
			if err != nil {
				return err
			}
			tallies = report.Tallies
		} else {
			if tallies, err = store.EmployeeYearToDate(cmd.Context()); err != nil {
				return err
			}
		}

		if len(tallies) == 0 {
			cmd.Println("No violations recorded.")
			return nil
		}

		cmd.Printf("%-14s %8s %8s %8s %8s\n", "employee", "total", "missed", "late", "waived")
		for _, t := range tallies {
			cmd.Printf("%-14s %8d %8d %8d %8d\n",
				t.EmployeeID, t.Total(), t.Missed, t.LateNoWaiver, t.LateWithWaiver)
		}
		return nil
	},
}

func init() {
	employeesCmd.Flags().StringVar(&employeesMonth, "month", "", "restrict to one month (YYYY-MM)")
}

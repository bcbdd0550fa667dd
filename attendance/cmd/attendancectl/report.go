package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	engine "gymdesk.io/backoffice/attendance/core"
	"gymdesk.io/backoffice/attendance/export"
	"gymdesk.io/backoffice/attendance/store"
)

var (
	reportMonth  string
	reportFrom   string
	reportTo     string
	reportXlsx   string
	reportScope  string
	reportRole   string
	reportSearch string
	reportDays   bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the attendance summary for a month or a date range",
	RunE:  runReport,
}

var presenceCmd = &cobra.Command{
	Use:   "presence",
	Short: "Show who is inside right now",
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := reconstructor()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		return withStore(ctx, func(repo *store.Repository, db *gorm.DB) error {
			presence, err := rc.LivePresence(ctx, repo)
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d inside, %d visited today\n",
				presence.Date.Format(engine.DateLayout), presence.CurrentlyPresent, presence.VisitedToday)
			if len(presence.Inside) > 0 {
				fmt.Printf("Inside: %s\n", strings.Join(presence.Inside, ", "))
			}
			return nil
		})
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportMonth, "month", "", "month label, e.g. \"March 2024\" (default is the current month)")
	reportCmd.Flags().StringVar(&reportFrom, "from", "", "first day (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "last day (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportXlsx, "xlsx", "", "also write the workbook to this file")
	reportCmd.Flags().StringVar(&reportScope, "scope", "all", "all or staff")
	reportCmd.Flags().StringVar(&reportRole, "role", "", "only this role")
	reportCmd.Flags().StringVar(&reportSearch, "search", "", "name filter")
	reportCmd.Flags().BoolVar(&reportDays, "days", false, "print the daily records as well")
	reportCmd.MarkFlagsRequiredTogether("from", "to")
	reportCmd.MarkFlagsMutuallyExclusive("month", "from")

	rootCmd.AddCommand(reportCmd, presenceCmd)
}

// reportRange resolves --from/--to, then --month, then the current month.
func reportRange(rc *engine.Reconstructor, month, from, to string) (engine.DateRange, error) {
	switch {
	case from != "" || to != "":
		return engine.ParseRange(from, to, rc.Location)
	case month != "":
		return engine.ParseMonth(month, rc.Location)
	}
	today := rc.Today()
	return engine.MonthRange(today.Year(), today.Month(), rc.Location), nil
}

func runReport(cmd *cobra.Command, args []string) error {
	rc, err := reconstructor()
	if err != nil {
		return err
	}
	rng, err := reportRange(rc, reportMonth, reportFrom, reportTo)
	if err != nil {
		return err
	}
	population, err := engine.ParsePopulation(reportScope)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var report *engine.Report
	err = withStore(ctx, func(repo *store.Repository, db *gorm.DB) error {
		report, err = rc.BuildReport(ctx, repo, engine.ReportOptions{
			Range:  rng,
			Scope:  engine.RosterScope{Population: population, Role: reportRole},
			Search: reportSearch,
		})
		return err
	})
	if err != nil {
		return err
	}

	if len(report.Aggregates) == 0 {
		fmt.Printf("No attendance for %s\n", rng)
		return nil
	}

	fmt.Printf("Attendance %s\n", report.Range)
	if reportDays {
		fmt.Println(renderTable(dayHeaders, dayRows(report.Days), len(dayHeaders)-1))
	}
	fmt.Println(renderTable(aggregateHeaders, aggregateRows(report.Aggregates), -1))
	if t := report.Today; t != nil {
		fmt.Printf("Today: %d present (%d late), %d absent of %d\n", t.Present, t.Late, t.Absent, t.Total)
	}

	if reportXlsx != "" {
		f, err := os.Create(reportXlsx)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", reportXlsx, err)
		}
		defer f.Close()
		if err := export.WriteWorkbook(f, report); err != nil {
			return err
		}
		fmt.Printf("[INFO] workbook written to %s\n", reportXlsx)
	}
	return nil
}

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"gymdesk.io/backoffice/attendance/assistant"
	"gymdesk.io/backoffice/attendance/store"
	api "gymdesk.io/backoffice/attendance/web/handlers/attendance"
	v1 "gymdesk.io/backoffice/client/v1"
	"gymdesk.io/backoffice/lambdas/punch-import/helper"
	"gymdesk.io/backoffice/security"
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import punch exports (.csv or .xlsx)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := reconstructor()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		return withStore(ctx, func(repo *store.Repository, db *gorm.DB) error {
			for _, path := range args {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("failed to open file %s: %w", path, err)
				}
				n, err := helper.Import(ctx, repo, filepath.Base(path), f, rc.Location)
				f.Close()
				if err != nil {
					return err
				}
				fmt.Printf("[INFO] %s: %d punches imported into %s\n", path, n, targetSchema())
			}
			return nil
		})
	},
}

var (
	tokenSubject string
	tokenName    string
	tokenRole    string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a session token for the attendance API",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := settings.SigningKey()
		if err != nil {
			return err
		}
		session := security.NewSession(tokenSubject, tokenName, tokenRole, time.Now())
		token, err := security.IssueToken(session, key)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a question about attendance",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := reconstructor()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		return withStore(ctx, func(repo *store.Repository, db *gorm.DB) error {
			a, err := assistant.New(ctx, settings.GeminiAPIKey, rc, repo)
			if err != nil {
				return err
			}
			answer, err := a.Ask(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Println(answer)
			return nil
		})
	},
}

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Query a running attendance API",
}

var (
	remoteMonth  string
	remoteScope  string
	remoteSearch string
)

var remoteSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Fetch the monthly summary over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := remoteClient()
		if err != nil {
			return err
		}
		summary, err := client.Attendance.Summary(cmd.Context(), api.SearchParams{
			Month:  remoteMonth,
			Scope:  remoteScope,
			Search: remoteSearch,
		})
		if err != nil {
			return err
		}
		fmt.Printf("Attendance %s..%s\n", summary.StartDate.Format(time.DateOnly), summary.EndDate.Format(time.DateOnly))
		fmt.Println(renderTable(aggregateHeaders, aggregateDTORows(summary.Aggregates), -1))
		return nil
	},
}

var remotePresenceCmd = &cobra.Command{
	Use:   "presence",
	Short: "Fetch live presence over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := remoteClient()
		if err != nil {
			return err
		}
		presence, err := client.Attendance.Presence(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d inside, %d visited today\n", presence.Date.Format(time.DateOnly), presence.CurrentlyPresent, presence.VisitedToday)
		return nil
	},
}

func remoteClient() (*v1.AttendanceClient, error) {
	if settings.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is not set")
	}
	return v1.NewAttendanceClient(settings.APIBaseURL, settings.APIToken), nil
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "", "user id")
	tokenCmd.Flags().StringVar(&tokenName, "name", "", "display name")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "Manager", "role")
	_ = tokenCmd.MarkFlagRequired("subject")

	remoteSummaryCmd.Flags().StringVar(&remoteMonth, "month", "", "month label, e.g. \"March 2024\"")
	remoteSummaryCmd.Flags().StringVar(&remoteScope, "scope", "", "all or staff")
	remoteSummaryCmd.Flags().StringVar(&remoteSearch, "search", "", "name filter")
	_ = remoteSummaryCmd.MarkFlagRequired("month")
	remoteCmd.AddCommand(remoteSummaryCmd, remotePresenceCmd)

	rootCmd.AddCommand(importCmd, tokenCmd, askCmd, remoteCmd)
}

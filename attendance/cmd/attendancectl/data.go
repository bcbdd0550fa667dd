package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	engine "gymdesk.io/backoffice/attendance/core"
	"gymdesk.io/backoffice/attendance/importer"
	"gymdesk.io/backoffice/attendance/model"
	"gymdesk.io/backoffice/attendance/store"
	"gymdesk.io/backoffice/core"
)

const mockDevice = "mock"

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the attendance tables in the studio schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(cmd.Context(), func(repo *store.Repository, db *gorm.DB) error {
			if err := store.Migrate(db); err != nil {
				return err
			}
			fmt.Printf("[INFO] %s migrated\n", targetSchema())
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert a sample roster of members and staff",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		return withStore(ctx, func(repo *store.Repository, db *gorm.DB) error {
			users, staffs := sampleRoster()
			if err := repo.SaveUsers(ctx, users); err != nil {
				return err
			}
			if err := repo.SaveStaffs(ctx, staffs); err != nil {
				return err
			}
			fmt.Printf("[INFO] seeded %d users and %d staff\n", len(users), len(staffs))
			return nil
		})
	},
}

var (
	mockFrom string
	mockTo   string
	mockSeed uint64
)

var mockCmd = &cobra.Command{
	Use:   "mock",
	Short: "Generate punches for everyone on the roster",
	RunE:  runMock,
}

var databasesCmd = &cobra.Command{
	Use:   "databases",
	Short: "List the studio schemas on the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		dm, err := core.New(settings.DBDriver, settings.DSN, 1)
		if err != nil {
			return err
		}
		defer dm.Close()

		names, err := dm.GetAllDatabases(cmd.Context())
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	mockCmd.Flags().StringVar(&mockFrom, "from", "", "first day (YYYY-MM-DD)")
	mockCmd.Flags().StringVar(&mockTo, "to", "", "last day (YYYY-MM-DD)")
	mockCmd.Flags().Uint64Var(&mockSeed, "seed", 1, "random seed")
	_ = mockCmd.MarkFlagRequired("from")
	_ = mockCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(migrateCmd, seedCmd, mockCmd, databasesCmd)
}

func runMock(cmd *cobra.Command, args []string) error {
	rc, err := reconstructor()
	if err != nil {
		return err
	}
	rng, err := engine.ParseRange(mockFrom, mockTo, rc.Location)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	return withStore(ctx, func(repo *store.Repository, db *gorm.DB) error {
		people, err := repo.FetchRoster(ctx, engine.RosterScope{Population: engine.PopulationAll})
		if err != nil {
			return err
		}

		logs := mockPunches(people, rng.Days(rc.Location), rand.New(rand.NewPCG(mockSeed, mockSeed)))
		if len(logs) == 0 {
			fmt.Println("No roster found. Run seed first.")
			return nil
		}

		fmt.Printf("Inserting %d mock punches for %d people...\n", len(logs), len(people))
		if err := repo.SaveAccessLogs(ctx, logs); err != nil {
			return err
		}
		fmt.Println("Successfully inserted mock punches.")
		return nil
	})
}

func sampleRoster() ([]model.User, []model.Staff) {
	users := []model.User{
		{UserID: "1001", Name: "Ava Brooks", Email: "ava.brooks@example.com", Role: "Member"},
		{UserID: "1002", Name: "Liam Carter", Email: "liam.carter@example.com", Role: "Member"},
		{UserID: "1003", Name: "Mia Davis", Email: "mia.davis@example.com", Role: "Member"},
		{UserID: "1004", Name: "Noah Evans", Email: "noah.evans@example.com", Role: "Member"},
		{UserID: "1005", Name: "Zoe Foster", Email: "zoe.foster@example.com", Role: "Front Desk"},
	}
	staffs := []model.Staff{
		{UserID: "2001", Username: "Grace Hill", Useremail: "grace.hill@example.com", Role: "Trainer", MobileNumber: "0400 000 001"},
		{UserID: "2002", Username: "Owen Kim", Useremail: "owen.kim@example.com", Role: "Trainer", MobileNumber: "0400 000 002"},
		{UserID: "2003", Username: "Ruby Lane", Useremail: "ruby.lane@example.com", Role: "Manager", MobileNumber: "0400 000 003"},
		{UserID: "2004", Username: "Sam Moore", Useremail: "sam.moore@example.com", Role: "Cleaner"},
	}
	return users, staffs
}

// mockPunches gives every person an arrival between 08:30 and 09:44 on most days,
// a departure 6 to 9 hours later and sometimes a break in between.
func mockPunches(people []engine.Person, days []time.Time, rnd *rand.Rand) []model.AccessLog {
	var logs []model.AccessLog
	punch := func(id string, ts time.Time) {
		logs = append(logs, model.AccessLog{
			ID:        importer.LogID(id, ts, mockDevice),
			UserID:    id,
			Timestamp: ts,
			DeviceID:  mockDevice,
			Source:    mockDevice,
		})
	}

	for _, day := range days {
		for _, p := range people {
			if rnd.IntN(100) >= 85 {
				continue
			}
			in := day.Add(8*time.Hour + 30*time.Minute + time.Duration(rnd.IntN(75))*time.Minute)
			out := in.Add(6*time.Hour + time.Duration(rnd.IntN(180))*time.Minute)
			punch(p.ID, in)
			if rnd.IntN(100) < 30 {
				leave := in.Add(3 * time.Hour)
				punch(p.ID, leave)
				punch(p.ID, leave.Add(30*time.Minute))
			}
			punch(p.ID, out)
		}
	}
	return logs
}

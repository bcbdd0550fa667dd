package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	engine "gymdesk.io/backoffice/attendance/core"
	"gymdesk.io/backoffice/attendance/store"
	"gymdesk.io/backoffice/core"
	"gymdesk.io/backoffice/infrastructure/devops"
)

var (
	cfgFile  string
	schema   string
	settings *devops.Settings
)

var rootCmd = &cobra.Command{
	Use:   "attendancectl",
	Short: "Gym attendance tooling",
	Long: `attendancectl manages studio attendance data: schema setup, sample data,
punch imports, reports and session tokens.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is .env and the environment)")
	rootCmd.PersistentFlags().StringVar(&schema, "schema", "", "studio schema (default is the database named in DSN)")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	v := devops.NewViper()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", cfgFile, err)
		}
	}

	s, err := devops.SettingsFrom(v)
	if err != nil {
		return err
	}
	settings = s
	return nil
}

func reconstructor() (*engine.Reconstructor, error) {
	return engine.ConfigureReconstructor(settings.LateThreshold, settings.Timezone)
}

func targetSchema() string {
	if schema != "" {
		return schema
	}
	return core.DatabaseFromDSN(settings.DSN)
}

// withStore runs fn on a connection pinned to the target schema.
func withStore(ctx context.Context, fn func(repo *store.Repository, db *gorm.DB) error) error {
	if settings.DSN == "" {
		return fmt.Errorf("DSN is not set")
	}

	dm, err := core.New(settings.DBDriver, settings.DSN, settings.DBMaxConnections)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dm.Close()
	dm.LogLevel = core.ParseLogLevel(settings.LogLevel)

	return dm.Exec(ctx, targetSchema(), func(db *gorm.DB) error {
		return fn(store.New(db), db)
	})
}

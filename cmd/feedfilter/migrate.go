package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the settings database",
	Long: `Apply pending migrations to the SQLite settings database (DATABASE_PATH).

The schema holds a single settings row with the geo-popular and ads toggles
and an ordered keywords table. Running it again is a no-op.`,
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	versions, err := a.Store.AppliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}

	current, err := a.Settings.Load(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	fmt.Fprintf(out, "Database: %s\n", a.Config.DatabasePath)
	fmt.Fprintf(out, "Applied migrations (%d):\n", len(versions))
	for _, v := range versions {
		fmt.Fprintf(out, "  %s\n", v)
	}
	fmt.Fprintf(out, "Keywords: %d\n", len(current.Keywords))
	return nil
}

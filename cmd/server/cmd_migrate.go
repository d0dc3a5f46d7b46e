package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/docutrack/internal/config"
	"github.com/iliyamo/docutrack/internal/database"
)

// docutrack migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply all pending database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		db, err := database.Open(cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()

		fmt.Fprintln(cmd.OutOrStdout(), "Running migrations…")
		return database.Migrate(cmd.Context(), db)
	},
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iliyamo/docutrack/internal/config"
	"github.com/iliyamo/docutrack/internal/database"
	"github.com/iliyamo/docutrack/internal/logger"
	"github.com/iliyamo/docutrack/internal/repository"
	"github.com/iliyamo/docutrack/internal/service"
)

var adminFlags config.AdminConfig

// docutrack create-admin --email ... --password ...
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account if the email is not registered",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		admin := cfg.Admin
		if cmd.Flags().Changed("email") {
			admin.Email = adminFlags.Email
		}
		if cmd.Flags().Changed("password") {
			admin.Password = adminFlags.Password
		}
		if cmd.Flags().Changed("first-name") {
			admin.FirstName = adminFlags.FirstName
		}
		if cmd.Flags().Changed("last-name") {
			admin.LastName = adminFlags.LastName
		}

		db, err := database.Open(cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()

		log := logger.New(cfg.LogLevel, cfg.IsProduction())
		auth := service.NewAuthService(repository.NewUserRepo(db), cfg, log)
		if err := auth.SeedAdmin(cmd.Context(), admin); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Administrator %s is ready\n", repository.NormalizeEmail(admin.Email))
		return nil
	},
}

func init() {
	f := createAdminCmd.Flags()
	f.StringVar(&adminFlags.Email, "email", "", "administrator email (default ADMIN_EMAIL)")
	f.StringVar(&adminFlags.Password, "password", "", "administrator password (default ADMIN_PASSWORD)")
	f.StringVar(&adminFlags.FirstName, "first-name", "", "first name (default ADMIN_FIRST_NAME)")
	f.StringVar(&adminFlags.LastName, "last-name", "", "last name (default ADMIN_LAST_NAME)")
}

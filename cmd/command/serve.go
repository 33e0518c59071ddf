package command

import (
	"fmt"

	"clinic-booking/cmd/bootstrap"
	"clinic-booking/config"
	"clinic-booking/internal/infrastructure/database"

	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the booking HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			// Initialize application with all dependencies
			app, err := bootstrap.New(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			app.Run()
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or revert the database schema",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction, err := database.ParseMigrateDirection(args[0])
			if err != nil {
				return err
			}

			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			bootstrap.SetupLogger(cfg.App.LogLevel)

			if err := database.RunMigrations(cfg.DB, direction); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Migrations %s complete.\n", direction)
			return nil
		},
	}
}

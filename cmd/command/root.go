package command

import (
	"time"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the clinic CLI. Running it without a subcommand
// starts the server.
func NewRootCommand() *cobra.Command {
	serve := serveCmd()

	rootCmd := &cobra.Command{
		Use:           "clinic",
		Short:         "Clinic appointment booking server and tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(slotsCmd())
	rootCmd.AddCommand(calendarCmd())
	rootCmd.AddCommand(bookCmd())
	rootCmd.AddCommand(scheduleCmd())

	return rootCmd
}

// loadLocation resolves the --tz flag, falling back to UTC.
func loadLocation(cmd *cobra.Command) *time.Location {
	name, _ := cmd.Flags().GetString("tz")
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

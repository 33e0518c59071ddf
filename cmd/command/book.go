package command

import (
	"context"
	"fmt"
	"time"

	"clinic-booking/pkg/bookingclient"
	"clinic-booking/pkg/calendar"

	"github.com/spf13/cobra"
)

func bookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book",
		Short: "Book a slot on a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, _ := cmd.Flags().GetString("server")
			userID, _ := cmd.Flags().GetInt64("user")
			token, _ := cmd.Flags().GetString("token")
			rawDate, _ := cmd.Flags().GetString("date")
			rawTime, _ := cmd.Flags().GetString("time")

			// Empty flags leave the selection incomplete and the client
			// reports it without calling the server.
			var sel calendar.Selection
			if rawDate != "" {
				d, err := calendar.ParseDate(rawDate)
				if err != nil {
					return fmt.Errorf("invalid --date %q: %w", rawDate, err)
				}
				sel.Date = &d
			}
			if rawTime != "" {
				t, err := calendar.ParseTimeOfDay(rawTime)
				if err != nil {
					return fmt.Errorf("invalid --time %q: %w", rawTime, err)
				}
				sel.Time = &t
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			client := bookingclient.New(server, bookingclient.WithToken(token))
			confirmation, err := client.Submit(ctx, sel, userID)
			if err != nil {
				return err
			}

			b := confirmation.Booking
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, confirmation.Message)
			fmt.Fprintf(out, "  Booking #%d %s\n", b.ID, b.BookingCode)
			fmt.Fprintf(out, "  %s at %s\n", calendar.LongDate(b.Date), calendar.FormatTime12h(b.Time))
			return nil
		},
	}
	cmd.Flags().String("server", "http://localhost:3000", "Booking server base URL")
	cmd.Flags().Int64("user", 0, "User id to book for")
	cmd.Flags().String("token", "", "Access token sent as a Bearer header")
	cmd.Flags().String("date", "", "Day to book, YYYY-MM-DD")
	cmd.Flags().String("time", "", "Slot to book, HH:MM")
	return cmd
}

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Print the doctor's schedule from a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			server, _ := cmd.Flags().GetString("server")
			rawDate, _ := cmd.Flags().GetString("date")

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()
			client := bookingclient.New(server)

			var (
				entries []bookingclient.ScheduleEntry
				err     error
			)
			if rawDate != "" {
				date, perr := calendar.ParseDate(rawDate)
				if perr != nil {
					return fmt.Errorf("invalid --date %q: %w", rawDate, perr)
				}
				entries, err = client.Schedule(ctx, date)
				for i := range entries {
					entries[i].Date = date
				}
			} else {
				entries, err = client.Upcoming(ctx)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No appointments scheduled.")
				return nil
			}

			var current calendar.Date
			for _, e := range entries {
				if e.Date != current {
					current = e.Date
					fmt.Fprintln(out, calendar.LongDate(current))
				}
				fmt.Fprintf(out, "  %8s  %s (age: %s)\n", calendar.FormatTime12h(e.Time), e.Name, e.Age)
				fmt.Fprintf(out, "            Reason: %s\n", e.Reason)
				fmt.Fprintf(out, "            Notes: %s\n", e.Notes)
			}
			return nil
		},
	}
	cmd.Flags().String("server", "http://localhost:3000", "Booking server base URL")
	cmd.Flags().String("date", "", "Only this day, YYYY-MM-DD")
	return cmd
}

package command

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"clinic-booking/pkg/bookingclient"
	"clinic-booking/pkg/calendar"

	"github.com/spf13/cobra"
)

func slotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List the bookable slots of a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, _ := cmd.Flags().GetString("date")
			date, err := calendar.ParseDate(raw)
			if err != nil {
				return fmt.Errorf("invalid --date %q: %w", raw, err)
			}

			out := cmd.OutOrStdout()
			slots := calendar.GenerateSlots(date)
			fmt.Fprintln(out, calendar.LongDate(date))
			if len(slots) == 0 {
				fmt.Fprintln(out, "  Closed")
				return nil
			}
			for _, s := range slots {
				fmt.Fprintf(out, "  %s  %8s\n", s.Time, calendar.FormatTime12h(s.Time))
			}
			return nil
		},
	}
	cmd.Flags().String("date", "", "Day to list, YYYY-MM-DD")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func calendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print the booking calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := loadLocation(cmd)
			today := calendar.Today(time.Now(), loc)
			if raw, _ := cmd.Flags().GetString("today"); raw != "" {
				d, err := calendar.ParseDate(raw)
				if err != nil {
					return fmt.Errorf("invalid --today %q: %w", raw, err)
				}
				today = d
			}

			opts := []calendar.Option{}
			if monday, _ := cmd.Flags().GetBool("monday"); monday {
				opts = append(opts, calendar.WithWeekStart(time.Monday))
			}
			if week, _ := cmd.Flags().GetBool("week"); week {
				opts = append(opts, calendar.WithMode(calendar.ModeWeek))
			}
			presenter := calendar.NewPresenter(today, opts...)

			months, _ := cmd.Flags().GetInt("months")
			for ; months > 0; months-- {
				presenter.NextMonth()
			}
			for ; months < 0; months++ {
				presenter.PrevMonth()
			}

			cells := presenter.Cells()
			if server, _ := cmd.Flags().GetString("server"); server != "" {
				ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
				defer cancel()
				entries, err := bookingclient.New(server).Upcoming(ctx)
				if err != nil {
					return err
				}
				dates := make([]calendar.Date, 0, len(entries))
				for _, e := range entries {
					dates = append(dates, e.Date)
				}
				cells = calendar.CountByDate(cells, dates)
			}

			if presenter.Mode() == calendar.ModeMonth {
				fmt.Fprintln(cmd.OutOrStdout(), presenter.View())
			}
			printCells(cmd.OutOrStdout(), cells)
			return nil
		},
	}
	cmd.Flags().String("today", "", "Override today, YYYY-MM-DD")
	cmd.Flags().String("tz", "UTC", "Clinic timezone used for today")
	cmd.Flags().Int("months", 0, "Months to move from the current one")
	cmd.Flags().Bool("week", false, "Show the 7 days starting today")
	cmd.Flags().Bool("monday", false, "Start weeks on Monday")
	cmd.Flags().String("server", "", "Booking server used to show per-day counts")
	return cmd
}

// printCells writes seven cells per row. Past days are shown in brackets,
// today with an asterisk and booked days with their count.
func printCells(w io.Writer, cells []calendar.Cell) {
	var row []string
	for i, c := range cells {
		row = append(row, formatCell(c))
		if (i+1)%7 == 0 || i == len(cells)-1 {
			fmt.Fprintln(w, strings.Join(row, " "))
			row = row[:0]
		}
	}
}

func formatCell(c calendar.Cell) string {
	if c.Blank {
		return strings.Repeat(" ", 7)
	}
	day := fmt.Sprintf("%2d", c.Date.Day)
	switch {
	case c.Past:
		day = "[" + day + "]"
	case c.Today:
		day = " " + day + "*"
	default:
		day = " " + day + " "
	}
	count := ""
	if c.Count > 0 {
		count = fmt.Sprintf("(%d)", c.Count)
	}
	return fmt.Sprintf("%s%-3s", day, count)
}

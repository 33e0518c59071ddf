package calendar

import (
	"fmt"
	"time"
)

// Mode selects between the 7-day strip and the full month grid.
type Mode int

const (
	ModeWeek Mode = iota
	ModeMonth
)

func (m Mode) String() string {
	if m == ModeMonth {
		return "month"
	}
	return "week"
}

// Cell is one day of a rendered calendar. Blank cells pad the first week of a month grid.
type Cell struct {
	Date  Date
	Blank bool
	Past  bool
	Today bool
	Count int
}

// Selectable reports whether a booking may be made on the cell's date.
func (c Cell) Selectable() bool {
	return !c.Blank && !c.Past
}

// MonthView identifies the month shown in month mode.
type MonthView struct {
	Year  int
	Month time.Month
}

func MonthOf(d Date) MonthView {
	return MonthView{Year: d.Year, Month: d.Month}
}

// Prev moves one month back, wrapping January to December of the previous year.
func (v MonthView) Prev() MonthView {
	if v.Month == time.January {
		return MonthView{Year: v.Year - 1, Month: time.December}
	}
	return MonthView{Year: v.Year, Month: v.Month - 1}
}

// Next moves one month forward, wrapping December to January of the next year.
func (v MonthView) Next() MonthView {
	if v.Month == time.December {
		return MonthView{Year: v.Year + 1, Month: time.January}
	}
	return MonthView{Year: v.Year, Month: v.Month + 1}
}

func (v MonthView) FirstDay() Date {
	return Date{Year: v.Year, Month: v.Month, Day: 1}
}

func (v MonthView) String() string {
	return fmt.Sprintf("%s %d", v.Month, v.Year)
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// RenderCalendar lays out the day cells for reference. In week mode it returns
// the seven days starting at reference; in month mode the whole month of
// reference preceded by blank cells up to the first day's column, counted
// from weekStart.
func RenderCalendar(reference, today Date, mode Mode, weekStart time.Weekday) []Cell {
	if mode == ModeWeek {
		cells := make([]Cell, 0, 7)
		for i := 0; i < 7; i++ {
			cells = append(cells, newCell(reference.AddDays(i), today))
		}
		return cells
	}

	first := MonthOf(reference).FirstDay()
	offset := (int(first.Weekday()) - int(weekStart) + 7) % 7
	days := DaysIn(first.Year, first.Month)

	cells := make([]Cell, 0, offset+days)
	for i := 0; i < offset; i++ {
		cells = append(cells, Cell{Blank: true})
	}
	for day := 1; day <= days; day++ {
		cells = append(cells, newCell(Date{Year: first.Year, Month: first.Month, Day: day}, today))
	}
	return cells
}

func newCell(d, today Date) Cell {
	return Cell{
		Date:  d,
		Past:  d.Before(today),
		Today: d == today,
	}
}

// CountByDate fills Cell.Count with the number of occurrences of each cell's date in dates.
func CountByDate(cells []Cell, dates []Date) []Cell {
	counts := make(map[Date]int, len(dates))
	for _, d := range dates {
		counts[d]++
	}
	out := make([]Cell, len(cells))
	for i, c := range cells {
		if !c.Blank {
			c.Count = counts[c.Date]
		}
		out[i] = c
	}
	return out
}

// FormatTime12h renders t the way the doctor view shows it, e.g. "2:30 PM".
func FormatTime12h(t TimeOfDay) string {
	period := "AM"
	if t.Hour >= 12 {
		period = "PM"
	}
	hour := t.Hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute, period)
}

// LongDate renders d as "Monday, November 10, 2025".
func LongDate(d Date) string {
	return d.Time().Format("Monday, January 2, 2006")
}

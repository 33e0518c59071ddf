package calendar

import "time"

// SlotMinutes is the fixed granularity of bookable slots.
const SlotMinutes = 30

// Slot is a bookable (date, time) pair. It is computed on demand and never stored.
type Slot struct {
	Date Date      `json:"date"`
	Time TimeOfDay `json:"time"`
}

// OpeningHours returns the first and last slot hour for a weekday.
// The clinic is closed on Sundays.
func OpeningHours(wd time.Weekday) (start, end int, open bool) {
	switch wd {
	case time.Sunday:
		return 0, 0, false
	case time.Saturday:
		return 9, 13, true
	default:
		return 8, 16, true
	}
}

// GenerateSlots lists the slots offered on d in ascending order. The last slot
// of a day falls exactly on the closing hour. The result is always a new,
// non-nil slice; Sundays yield an empty one.
func GenerateSlots(d Date) []Slot {
	start, end, open := OpeningHours(d.Weekday())
	if !open {
		return []Slot{}
	}

	slots := make([]Slot, 0, (end-start)*(60/SlotMinutes)+1)
	for hour := start; hour <= end; hour++ {
		for minute := 0; minute < 60; minute += SlotMinutes {
			if hour == end && minute > 0 {
				break
			}
			slots = append(slots, Slot{Date: d, Time: TimeOfDay{Hour: hour, Minute: minute}})
		}
	}
	return slots
}

// SlotTimes renders the times of slots as HH:MM strings.
func SlotTimes(slots []Slot) []string {
	times := make([]string, len(slots))
	for i, s := range slots {
		times[i] = s.Time.String()
	}
	return times
}

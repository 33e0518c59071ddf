package service

import (
	"time"

	"clinic-booking/pkg/calendar"
)

// ttlUntilDayAfter returns the time left until 24 hours after the start of d
// in loc. Past dates get a short TTL so their keys are cleaned up.
func ttlUntilDayAfter(d calendar.Date, loc *time.Location, now time.Time) time.Duration {
	expireAt := time.Date(d.Year, d.Month, d.Day+1, 0, 0, 0, 0, loc)
	ttl := expireAt.Sub(now)

	if ttl <= 0 {
		return 1 * time.Minute
	}

	return ttl
}

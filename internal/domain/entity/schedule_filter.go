package entity

// ScheduleFilter is a domain-level filter for querying the booking schedule.
// Used by repository layer to avoid coupling with delivery DTOs.
type ScheduleFilter struct {
	FromDate string // Format: YYYY-MM-DD, inclusive
	OnDate   string // Format: YYYY-MM-DD, exact day
}

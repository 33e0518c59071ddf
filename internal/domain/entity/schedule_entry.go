package entity

import "time"

// ScheduleEntry is a booking joined with its user's name and patient_info.
// Joined columns are nil when the row is missing or the column is NULL.
type ScheduleEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Date      time.Time `json:"date"`
	Time      string    `json:"time"`
	CreatedAt time.Time `json:"created_at"`
	FirstName *string   `json:"first_name,omitempty"`
	LastName  *string   `json:"last_name,omitempty"`
	Age       *int      `json:"age,omitempty"`
	Reason    *string   `json:"reason,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
}

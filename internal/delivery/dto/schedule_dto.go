package dto

// UpcomingBookingResponse is one row of GET /bookings.
type UpcomingBookingResponse struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"userId"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Name   string `json:"name"`
	Reason string `json:"reason"`
	Age    string `json:"age"`
	Notes  string `json:"notes"`
}

// DayAppointmentResponse is one row of GET /appointments?date=.
type DayAppointmentResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Time   string `json:"time"`
	Reason string `json:"reason"`
	Age    string `json:"age"`
	Notes  string `json:"notes"`
}

type SlotsResponse struct {
	Date  string   `json:"date"`
	Day   string   `json:"day"`
	Slots []string `json:"slots"`
}

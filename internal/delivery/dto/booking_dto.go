package dto

import "time"

// Request DTOs

// CreateBookingRequest is the body of POST /book. UserID may be omitted when
// the request carries a bearer token.
type CreateBookingRequest struct {
	UserID *int64 `json:"userId" validate:"omitempty,gte=1"`
	Date   string `json:"date" validate:"required,ymd"`
	Time   string `json:"time" validate:"required,hhmm"`
}

// Response DTOs

type BookingResponse struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	CreatedAt   time.Time `json:"createdAt"`
	BookingCode string    `json:"bookingCode"`
}

type CreateBookingResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Booking *BookingResponse `json:"booking"`
}

// UserAppointmentResponse is one row of GET /appointments/{userId}.
type UserAppointmentResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	CreatedAt time.Time `json:"createdAt"`
}

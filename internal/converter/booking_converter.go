package converter

import (
	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"
)

// BookingToResponse converts a Booking entity to BookingResponse DTO
func BookingToResponse(booking *entity.Booking) *dto.BookingResponse {
	if booking == nil {
		return nil
	}

	return &dto.BookingResponse{
		ID:          booking.ID,
		UserID:      booking.UserID,
		Date:        booking.DateString(),
		Time:        booking.Time,
		CreatedAt:   booking.CreatedAt,
		BookingCode: booking.BookingCode,
	}
}

// BookingsToAppointments keeps the order of bookings and never returns nil.
func BookingsToAppointments(bookings []entity.Booking) []dto.UserAppointmentResponse {
	responses := make([]dto.UserAppointmentResponse, 0, len(bookings))
	for _, b := range bookings {
		responses = append(responses, dto.UserAppointmentResponse{
			ID:        b.ID,
			Date:      b.DateString(),
			Time:      b.Time,
			CreatedAt: b.CreatedAt,
		})
	}
	return responses
}

package converter

import (
	"fmt"
	"strconv"
	"strings"

	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"
)

// Shown in place of missing or blank patient fields.
const (
	PlaceholderReason = "General Consultation"
	PlaceholderAge    = "Not specified"
	PlaceholderNotes  = "No notes"
)

// PatientName joins the user's names, or falls back to "Patient <userId>".
func PatientName(e *entity.ScheduleEntry) string {
	var parts []string
	for _, p := range []*string{e.FirstName, e.LastName} {
		if p != nil && strings.TrimSpace(*p) != "" {
			parts = append(parts, strings.TrimSpace(*p))
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("Patient %d", e.UserID)
	}
	return strings.Join(parts, " ")
}

func orPlaceholder(v *string, placeholder string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return placeholder
	}
	return *v
}

func ageText(age *int) string {
	if age == nil {
		return PlaceholderAge
	}
	return strconv.Itoa(*age)
}

func ScheduleEntryToUpcoming(e *entity.ScheduleEntry) dto.UpcomingBookingResponse {
	return dto.UpcomingBookingResponse{
		ID:     e.ID,
		UserID: e.UserID,
		Date:   e.Date.Format("2006-01-02"),
		Time:   e.Time,
		Name:   PatientName(e),
		Reason: orPlaceholder(e.Reason, PlaceholderReason),
		Age:    ageText(e.Age),
		Notes:  orPlaceholder(e.Notes, PlaceholderNotes),
	}
}

func ScheduleEntryToDayAppointment(e *entity.ScheduleEntry) dto.DayAppointmentResponse {
	return dto.DayAppointmentResponse{
		ID:     e.ID,
		Name:   PatientName(e),
		Time:   e.Time,
		Reason: orPlaceholder(e.Reason, PlaceholderReason),
		Age:    ageText(e.Age),
		Notes:  orPlaceholder(e.Notes, PlaceholderNotes),
	}
}

func ScheduleEntriesToUpcoming(entries []entity.ScheduleEntry) []dto.UpcomingBookingResponse {
	responses := make([]dto.UpcomingBookingResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ScheduleEntryToUpcoming(&entries[i]))
	}
	return responses
}

func ScheduleEntriesToDayAppointments(entries []entity.ScheduleEntry) []dto.DayAppointmentResponse {
	responses := make([]dto.DayAppointmentResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ScheduleEntryToDayAppointment(&entries[i]))
	}
	return responses
}

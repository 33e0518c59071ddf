package handler

import (
	"errors"
	"net/http"

	"clinic-booking/internal/usecase"
	"clinic-booking/pkg/response"
)

// ScheduleHandler serves the doctor's read views. Lists are written as bare
// JSON arrays.
type ScheduleHandler struct {
	scheduleUsecase usecase.ScheduleUsecase
}

func NewScheduleHandler(scheduleUsecase usecase.ScheduleUsecase) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleUsecase: scheduleUsecase,
	}
}

// GetUpcoming handles GET /bookings[?date=YYYY-MM-DD]
func (h *ScheduleHandler) GetUpcoming(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.scheduleUsecase.GetUpcoming(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidDate) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalServerError(w, "Failed to fetch bookings")
		return
	}

	response.JSON(w, http.StatusOK, bookings)
}

// GetByDate handles GET /appointments?date=YYYY-MM-DD
func (h *ScheduleHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "date query parameter is required")
		return
	}

	appointments, err := h.scheduleUsecase.GetByDate(r.Context(), date)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidDate) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalServerError(w, "Failed to fetch appointments")
		return
	}

	response.JSON(w, http.StatusOK, appointments)
}

// GetSlots handles GET /slots?date=YYYY-MM-DD
func (h *ScheduleHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := h.scheduleUsecase.GetSlots(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.BadRequest(w, usecase.ErrInvalidDate.Error())
		return
	}

	response.JSON(w, http.StatusOK, slots)
}

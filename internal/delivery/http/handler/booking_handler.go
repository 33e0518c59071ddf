package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/delivery/http/middleware"
	"clinic-booking/internal/service"
	"clinic-booking/internal/usecase"
	"clinic-booking/pkg/response"
	"clinic-booking/pkg/validator"

	"github.com/gorilla/mux"
)

type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
	validator      *validator.CustomValidator
}

func NewBookingHandler(bookingUsecase usecase.BookingUsecase, validator *validator.CustomValidator) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
		validator:      validator,
	}
}

// CreateBooking handles POST /book
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	// A non-positive userId counts as absent. Identity is checked before the
	// payload.
	if req.UserID != nil && *req.UserID <= 0 {
		req.UserID = nil
	}
	if req.UserID == nil {
		if _, ok := middleware.GetUserIDFromContext(r.Context()); !ok {
			response.Unauthorized(w, "Authentication required")
			return
		}
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	booking, err := h.bookingUsecase.CreateBooking(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrAuthenticationRequired):
			response.Unauthorized(w, "Authentication required")
		case errors.Is(err, usecase.ErrUnknownUser):
			response.Unauthorized(w, "Unknown user")
		case errors.Is(err, usecase.ErrInvalidDate), errors.Is(err, usecase.ErrInvalidTime):
			response.BadRequest(w, err.Error())
		case errors.Is(err, service.ErrSlotTaken):
			response.Conflict(w, "Slot already booked")
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.JSON(w, http.StatusCreated, dto.CreateBookingResponse{
		Success: true,
		Message: "Appointment booked successfully",
		Booking: booking,
	})
}

// GetUserAppointments handles GET /appointments/{userId}
func (h *BookingHandler) GetUserAppointments(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userId"], 10, 64)
	if err != nil || userID <= 0 {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	appointments, err := h.bookingUsecase.GetUserAppointments(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to fetch appointments")
		return
	}

	response.JSON(w, http.StatusOK, appointments)
}

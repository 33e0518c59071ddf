package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"clinic-booking/internal/converter"
	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/delivery/http/middleware"
	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/domain/repository"
	"clinic-booking/internal/service"
	"clinic-booking/pkg/calendar"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrUnknownUser            = errors.New("user does not exist")
	ErrInvalidDate            = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTime            = errors.New("invalid time format, use HH:MM")
)

const (
	bookingCodeAlphabet = "0123456789ABCDEF"
	invalidateAttempts  = 2
)

type BookingUsecase interface {
	CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	GetUserAppointments(ctx context.Context, userID int64) ([]dto.UserAppointmentResponse, error)
}

type bookingUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	bookingRepo     repository.BookingRepository
	auditService    service.AuditService
	slotGuard       service.SlotGuard
	scheduleCache   service.ScheduleCache
	bookingsCreated prometheus.Counter
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	auditService service.AuditService,
	slotGuard service.SlotGuard,
	scheduleCache service.ScheduleCache,
	bookingsCreated prometheus.Counter,
) BookingUsecase {
	return &bookingUsecase{
		db:              db,
		log:             log,
		bookingRepo:     bookingRepo,
		auditService:    auditService,
		slotGuard:       slotGuard,
		scheduleCache:   scheduleCache,
		bookingsCreated: bookingsCreated,
	}
}

// resolveUserID prefers the id in the body and falls back to the
// authenticated user.
func resolveUserID(ctx context.Context, req *dto.CreateBookingRequest) (int64, error) {
	if req.UserID != nil && *req.UserID > 0 {
		return *req.UserID, nil
	}
	if userID, ok := middleware.GetUserIDFromContext(ctx); ok && userID > 0 {
		return userID, nil
	}
	return 0, ErrAuthenticationRequired
}

// CreateBooking stores one booking for (date, time).
//
// Flow:
// 1. Resolve the user and parse date and time
// 2. Claim the slot when the guard is enabled
// 3. Insert booking and audit row in one transaction
// 4. If the DB fails -> compensate: release the slot
// 5. Drop the cached day view
func (u *bookingUsecase) CreateBooking(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	userID, err := resolveUserID(ctx, req)
	if err != nil {
		return nil, err
	}

	date, err := calendar.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	slot, err := calendar.ParseTimeOfDay(req.Time)
	if err != nil {
		return nil, ErrInvalidTime
	}

	if err := u.slotGuard.Claim(ctx, date, slot); err != nil {
		if errors.Is(err, service.ErrSlotTaken) {
			return nil, service.ErrSlotTaken
		}
		u.log.Warnf("Failed to claim slot %s %s: %+v", date, slot, err)
		return nil, err
	}

	bookingCode, err := generateBookingCode(date)
	if err != nil {
		u.releaseSlot(date, slot)
		u.log.Warnf("Failed to generate booking code: %+v", err)
		return nil, err
	}

	booking := &entity.Booking{
		UserID:      userID,
		Date:        date.Time(),
		Time:        slot.String(),
		BookingCode: bookingCode,
	}

	if err := u.store(ctx, booking); err != nil {
		u.log.Errorf("Failed to insert booking to DB, releasing slot: %+v", err)
		u.releaseSlot(date, slot)

		if isForeignKeyError(err, "user") {
			return nil, ErrUnknownUser
		}
		return nil, err
	}

	u.invalidateDay(date)
	if u.bookingsCreated != nil {
		u.bookingsCreated.Inc()
	}

	u.log.Infof("Booking created: id=%d, user=%d, slot=%s %s, code=%s", booking.ID, userID, date, slot, bookingCode)
	return converter.BookingToResponse(booking), nil
}

func (u *bookingUsecase) store(ctx context.Context, booking *entity.Booking) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.bookingRepo.Create(ctx, tx, booking); err != nil {
		return err
	}

	userID := booking.UserID
	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionBookingCreate, "booking",
		strconv.FormatInt(booking.ID, 10), converter.BookingToResponse(booking)); err != nil {
		return err
	}

	return tx.Commit().Error
}

func (u *bookingUsecase) releaseSlot(date calendar.Date, slot calendar.TimeOfDay) {
	releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	u.slotGuard.Release(releaseCtx, date, slot)
}

// invalidateDay drops the cached day view after a commit. It runs on its own
// context so a client hanging up cannot leave the stale view in place, and is
// retried once before giving up.
func (u *bookingUsecase) invalidateDay(date calendar.Date) {
	var err error
	for attempt := 1; attempt <= invalidateAttempts; attempt++ {
		invalidateCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = u.scheduleCache.InvalidateDay(invalidateCtx, date)
		cancel()
		if err == nil {
			return
		}
		u.log.Warnf("Failed to invalidate schedule cache (attempt %d/%d): %+v", attempt, invalidateAttempts, err)
	}
	u.log.Errorf("CRITICAL: schedule cache for %s may be stale until it expires: %+v", date, err)
}

// GetUserAppointments returns the bookings of one user, newest first.
func (u *bookingUsecase) GetUserAppointments(ctx context.Context, userID int64) ([]dto.UserAppointmentResponse, error) {
	bookings, err := u.bookingRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find bookings for user %d: %+v", userID, err)
		return nil, err
	}

	return converter.BookingsToAppointments(bookings), nil
}

// generateBookingCode generates a booking code: BK-YYYYMMDD-XXXXXX
func generateBookingCode(date calendar.Date) (string, error) {
	suffix, err := gonanoid.Generate(bookingCodeAlphabet, 6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("BK-%s-%s", date.Time().Format("20060102"), suffix), nil
}

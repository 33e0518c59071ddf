package usecase

import (
	"context"
	"time"

	"clinic-booking/internal/converter"
	"clinic-booking/internal/delivery/dto"
	"clinic-booking/internal/domain/entity"
	"clinic-booking/internal/domain/repository"
	"clinic-booking/internal/service"
	"clinic-booking/pkg/calendar"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ScheduleUsecase interface {
	// GetUpcoming lists bookings from today on. A non-empty date narrows the
	// result to that day.
	GetUpcoming(ctx context.Context, date string) ([]dto.UpcomingBookingResponse, error)
	GetByDate(ctx context.Context, date string) ([]dto.DayAppointmentResponse, error)
	GetSlots(ctx context.Context, date string) (*dto.SlotsResponse, error)
}

type scheduleUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	scheduleRepo  repository.ScheduleRepository
	scheduleCache service.ScheduleCache
	loc           *time.Location
	now           func() time.Time
}

func NewScheduleUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	scheduleRepo repository.ScheduleRepository,
	scheduleCache service.ScheduleCache,
	loc *time.Location,
) ScheduleUsecase {
	if loc == nil {
		loc = time.UTC
	}
	return &scheduleUsecase{
		db:            db,
		log:           log,
		scheduleRepo:  scheduleRepo,
		scheduleCache: scheduleCache,
		loc:           loc,
		now:           time.Now,
	}
}

func (u *scheduleUsecase) GetUpcoming(ctx context.Context, date string) ([]dto.UpcomingBookingResponse, error) {
	if date != "" {
		day, err := calendar.ParseDate(date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		entries, err := u.entriesOn(ctx, day)
		if err != nil {
			return nil, err
		}
		return converter.ScheduleEntriesToUpcoming(entries), nil
	}

	today := calendar.Today(u.now(), u.loc)
	entries, err := u.scheduleRepo.FindEntries(ctx, u.db, entity.ScheduleFilter{FromDate: today.String()})
	if err != nil {
		u.log.Warnf("Failed to find bookings from %s: %+v", today, err)
		return nil, err
	}

	return converter.ScheduleEntriesToUpcoming(entries), nil
}

func (u *scheduleUsecase) GetByDate(ctx context.Context, date string) ([]dto.DayAppointmentResponse, error) {
	day, err := calendar.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	entries, err := u.entriesOn(ctx, day)
	if err != nil {
		return nil, err
	}

	return converter.ScheduleEntriesToDayAppointments(entries), nil
}

func (u *scheduleUsecase) GetSlots(ctx context.Context, date string) (*dto.SlotsResponse, error) {
	day, err := calendar.ParseDate(date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	return &dto.SlotsResponse{
		Date:  day.String(),
		Day:   day.Weekday().String(),
		Slots: calendar.SlotTimes(calendar.GenerateSlots(day)),
	}, nil
}

// entriesOn reads one day through the schedule cache. The generation is read
// before the query so that a booking committed meanwhile keeps the result out
// of the cache.
func (u *scheduleUsecase) entriesOn(ctx context.Context, day calendar.Date) ([]entity.ScheduleEntry, error) {
	entries, generation, ok := u.scheduleCache.GetDay(ctx, day)
	if ok {
		return entries, nil
	}

	entries, err := u.scheduleRepo.FindEntries(ctx, u.db, entity.ScheduleFilter{OnDate: day.String()})
	if err != nil {
		u.log.Warnf("Failed to find bookings on %s: %+v", day, err)
		return nil, err
	}

	u.scheduleCache.SetDay(ctx, day, generation, entries)
	return entries, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinic-booking/internal/domain/repository"
	"clinic-booking/pkg/calendar"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrSlotTaken is returned when another booking already holds the date and time.
var ErrSlotTaken = errors.New("slot is already booked")

const (
	RedisSlotKeyPrefix = "booking:slot:"

	// Batch size for startup sync - process 500 records at a time
	syncBatchSize = 500
)

// SlotGuard rejects a second booking of the same (date, time). A disabled
// guard accepts every claim and never touches Redis.
type SlotGuard interface {
	Enabled() bool
	Claim(ctx context.Context, date calendar.Date, t calendar.TimeOfDay) error
	Release(ctx context.Context, date calendar.Date, t calendar.TimeOfDay)
	SyncOnStartup(ctx context.Context) error
}

type redisSlotGuard struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger
	bookingRepo repository.BookingRepository
	enabled     bool
	loc         *time.Location
	now         func() time.Time
}

func NewSlotGuard(
	db *gorm.DB,
	redisClient *redis.Client,
	log *logrus.Logger,
	bookingRepo repository.BookingRepository,
	enabled bool,
	loc *time.Location,
) SlotGuard {
	if loc == nil {
		loc = time.UTC
	}
	return &redisSlotGuard{
		db:          db,
		redisClient: redisClient,
		log:         log,
		bookingRepo: bookingRepo,
		enabled:     enabled && redisClient != nil,
		loc:         loc,
		now:         time.Now,
	}
}

func slotKey(date calendar.Date, t calendar.TimeOfDay) string {
	return fmt.Sprintf("%s%s:%s", RedisSlotKeyPrefix, date, t)
}

func (s *redisSlotGuard) Enabled() bool {
	return s.enabled
}

// Claim marks the slot as taken with SETNX. It returns ErrSlotTaken when the
// key already exists.
func (s *redisSlotGuard) Claim(ctx context.Context, date calendar.Date, t calendar.TimeOfDay) error {
	if !s.enabled {
		return nil
	}

	key := slotKey(date, t)
	ok, err := s.redisClient.SetNX(ctx, key, 1, ttlUntilDayAfter(date, s.loc, s.now())).Result()
	if err != nil {
		s.log.Warnf("Failed to claim slot %s %s: %+v", date, t, err)
		return fmt.Errorf("claim slot %s %s: %w", date, t, err)
	}
	if !ok {
		return ErrSlotTaken
	}

	s.log.Debugf("Claimed slot %s %s", date, t)
	return nil
}

// Release frees a slot whose booking could not be stored.
func (s *redisSlotGuard) Release(ctx context.Context, date calendar.Date, t calendar.TimeOfDay) {
	if !s.enabled {
		return
	}

	if err := s.redisClient.Del(ctx, slotKey(date, t)).Err(); err != nil {
		s.log.Errorf("CRITICAL: Failed to release slot %s %s: %+v", date, t, err)
	}
}

// SyncOnStartup claims every slot already booked from today on so that the
// guard survives a Redis restart. Bookings are read in batches and each batch
// is written with its own pipeline.
func (s *redisSlotGuard) SyncOnStartup(ctx context.Context) error {
	if !s.enabled {
		return nil
	}

	s.log.Info("Starting slot guard sync from database...")
	startTime := time.Now()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		s.log.Warnf("Redis is not available, skipping sync: %+v", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}

	today := calendar.Today(s.now(), s.loc)
	offset := 0
	totalSynced := 0

	for {
		bookings, err := s.bookingRepo.FindFrom(ctx, s.db, today.String(), syncBatchSize, offset)
		if err != nil {
			s.log.Errorf("Failed to query bookings at offset %d: %+v", offset, err)
			return fmt.Errorf("query bookings at offset %d: %w", offset, err)
		}

		if len(bookings) == 0 {
			if offset == 0 {
				s.log.Info("No upcoming bookings found for sync")
			}
			break
		}

		pipe := s.redisClient.TxPipeline()
		for _, b := range bookings {
			date := calendar.DateOf(b.Date)
			t, err := calendar.ParseTimeOfDay(b.Time)
			if err != nil {
				s.log.Warnf("Skipping booking %d with malformed time %q", b.ID, b.Time)
				continue
			}
			pipe.Set(ctx, slotKey(date, t), 1, ttlUntilDayAfter(date, s.loc, s.now()))
		}

		if _, err := pipe.Exec(ctx); err != nil {
			s.log.Errorf("Failed to execute pipeline for batch at offset %d: %+v", offset, err)
			return fmt.Errorf("pipeline exec at offset %d: %w", offset, err)
		}

		totalSynced += len(bookings)

		if len(bookings) < syncBatchSize {
			break
		}

		offset += syncBatchSize

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	s.log.Infof("Slot guard sync completed: %d bookings synced in %v", totalSynced, time.Since(startTime))
	return nil
}

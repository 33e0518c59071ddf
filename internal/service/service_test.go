package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"clinic-booking/internal/domain/entity"
	"clinic-booking/pkg/calendar"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

var (
	nov10 = calendar.NewDate(2025, time.November, 10)
	two   = calendar.TimeOfDay{Hour: 14}
)

func fixedNow() time.Time {
	return time.Date(2025, time.November, 10, 9, 0, 0, 0, time.UTC)
}

// fakeBookingRepo serves FindFrom out of memory.
type fakeBookingRepo struct {
	bookings []entity.Booking
	err      error
	calls    int
}

func (r *fakeBookingRepo) Create(ctx context.Context, db *gorm.DB, b *entity.Booking) error {
	r.bookings = append(r.bookings, *b)
	return nil
}

func (r *fakeBookingRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID int64) ([]entity.Booking, error) {
	return nil, nil
}

func (r *fakeBookingRepo) FindFrom(ctx context.Context, db *gorm.DB, fromDate string, limit, offset int) ([]entity.Booking, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.Booking
	for _, b := range r.bookings {
		if b.DateString() >= fromDate {
			out = append(out, b)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func TestTTLUntilDayAfter(t *testing.T) {
	now := fixedNow()
	assert.Equal(t, 15*time.Hour, ttlUntilDayAfter(nov10, time.UTC, now))
	assert.Equal(t, 39*time.Hour, ttlUntilDayAfter(nov10.AddDays(1), time.UTC, now))
	assert.Equal(t, time.Minute, ttlUntilDayAfter(nov10.AddDays(-1), time.UTC, now))
}

func TestScheduleCache_RoundTripAndInvalidate(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewScheduleCache(client, newTestLogger(), 5*time.Minute, time.UTC)
	cache.(*redisScheduleCache).now = fixedNow
	ctx := context.Background()

	_, gen, ok := cache.GetDay(ctx, nov10)
	assert.False(t, ok)
	assert.Equal(t, int64(0), gen)

	name := "Ada"
	entries := []entity.ScheduleEntry{
		{ID: 1, UserID: 42, Date: nov10.Time(), Time: "14:00", FirstName: &name},
	}
	cache.SetDay(ctx, nov10, gen, entries)

	assert.True(t, mr.Exists("schedule:day:2025-11-10"))
	assert.Equal(t, 5*time.Minute, mr.TTL("schedule:day:2025-11-10"))

	got, _, ok := cache.GetDay(ctx, nov10)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "Ada", *got[0].FirstName)
	assert.Equal(t, "2025-11-10", got[0].Date.Format("2006-01-02"))

	require.NoError(t, cache.InvalidateDay(ctx, nov10))
	assert.False(t, mr.Exists("schedule:day:2025-11-10"))

	_, gen, ok = cache.GetDay(ctx, nov10)
	assert.False(t, ok)
	assert.Equal(t, int64(1), gen)
	assert.Equal(t, 15*time.Hour+5*time.Minute, mr.TTL("schedule:gen:2025-11-10"))
}

func TestScheduleCache_StaleGenerationIsNotStored(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewScheduleCache(client, newTestLogger(), 5*time.Minute, time.UTC)
	ctx := context.Background()

	_, readGen, _ := cache.GetDay(ctx, nov10)
	require.NoError(t, cache.InvalidateDay(ctx, nov10))

	cache.SetDay(ctx, nov10, readGen, []entity.ScheduleEntry{})
	assert.False(t, mr.Exists("schedule:day:2025-11-10"))

	_, current, _ := cache.GetDay(ctx, nov10)
	cache.SetDay(ctx, nov10, current, []entity.ScheduleEntry{{ID: 1}})
	got, _, ok := cache.GetDay(ctx, nov10)
	require.True(t, ok)
	assert.Len(t, got, 1)
}

func TestScheduleCache_EmptyDayIsCached(t *testing.T) {
	_, client := newTestRedis(t)
	cache := NewScheduleCache(client, newTestLogger(), time.Minute, time.UTC)
	ctx := context.Background()

	cache.SetDay(ctx, nov10, 0, nil)
	got, _, ok := cache.GetDay(ctx, nov10)
	require.True(t, ok)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestScheduleCache_TTLCappedAtEndOfDay(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewScheduleCache(client, newTestLogger(), 48*time.Hour, time.UTC)
	cache.(*redisScheduleCache).now = fixedNow

	cache.SetDay(context.Background(), nov10, 0, []entity.ScheduleEntry{})
	assert.Equal(t, 15*time.Hour, mr.TTL("schedule:day:2025-11-10"))
}

func TestScheduleCache_CorruptEntryIsDropped(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewScheduleCache(client, newTestLogger(), time.Minute, time.UTC)

	require.NoError(t, mr.Set("schedule:day:2025-11-10", "{not json"))
	_, gen, ok := cache.GetDay(context.Background(), nov10)
	assert.False(t, ok)
	assert.Equal(t, int64(0), gen)
	assert.False(t, mr.Exists("schedule:day:2025-11-10"))
}

func TestScheduleCache_MalformedGenerationDisablesWrite(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewScheduleCache(client, newTestLogger(), time.Minute, time.UTC)
	ctx := context.Background()

	require.NoError(t, mr.Set("schedule:gen:2025-11-10", "x"))
	_, gen, ok := cache.GetDay(ctx, nov10)
	assert.False(t, ok)
	assert.Equal(t, NoGeneration, gen)

	cache.SetDay(ctx, nov10, gen, []entity.ScheduleEntry{})
	assert.False(t, mr.Exists("schedule:day:2025-11-10"))
}

func TestScheduleCache_RedisDownIsAMiss(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewScheduleCache(client, newTestLogger(), time.Minute, time.UTC)
	mr.Close()

	ctx := context.Background()
	cache.SetDay(ctx, nov10, 0, []entity.ScheduleEntry{{ID: 1}})
	_, gen, ok := cache.GetDay(ctx, nov10)
	assert.False(t, ok)
	assert.Equal(t, NoGeneration, gen)
	assert.Error(t, cache.InvalidateDay(ctx, nov10))
}

func TestScheduleCache_Disabled(t *testing.T) {
	cache := NewScheduleCache(nil, newTestLogger(), time.Minute, nil)
	cache.SetDay(context.Background(), nov10, 0, []entity.ScheduleEntry{{ID: 1}})
	_, _, ok := cache.GetDay(context.Background(), nov10)
	assert.False(t, ok)
	assert.NoError(t, cache.InvalidateDay(context.Background(), nov10))
}

func TestSlotGuard_ClaimAndRelease(t *testing.T) {
	mr, client := newTestRedis(t)
	guard := NewSlotGuard(nil, client, newTestLogger(), &fakeBookingRepo{}, true, time.UTC)
	guard.(*redisSlotGuard).now = fixedNow
	ctx := context.Background()

	require.True(t, guard.Enabled())
	require.NoError(t, guard.Claim(ctx, nov10, two))
	assert.True(t, mr.Exists("booking:slot:2025-11-10:14:00"))
	assert.Equal(t, 15*time.Hour, mr.TTL("booking:slot:2025-11-10:14:00"))

	assert.ErrorIs(t, guard.Claim(ctx, nov10, two), ErrSlotTaken)
	assert.NoError(t, guard.Claim(ctx, nov10, calendar.TimeOfDay{Hour: 14, Minute: 30}))

	guard.Release(ctx, nov10, two)
	assert.NoError(t, guard.Claim(ctx, nov10, two))
}

func TestSlotGuard_DisabledAcceptsEverything(t *testing.T) {
	mr, client := newTestRedis(t)
	guard := NewSlotGuard(nil, client, newTestLogger(), &fakeBookingRepo{}, false, time.UTC)
	ctx := context.Background()

	assert.False(t, guard.Enabled())
	assert.NoError(t, guard.Claim(ctx, nov10, two))
	assert.NoError(t, guard.Claim(ctx, nov10, two))
	assert.Empty(t, mr.Keys())
	assert.NoError(t, guard.SyncOnStartup(ctx))
}

func TestSlotGuard_NilClientIsDisabled(t *testing.T) {
	guard := NewSlotGuard(nil, nil, newTestLogger(), &fakeBookingRepo{}, true, time.UTC)
	assert.False(t, guard.Enabled())
	assert.NoError(t, guard.Claim(context.Background(), nov10, two))
}

func TestSlotGuard_RedisDown(t *testing.T) {
	mr, client := newTestRedis(t)
	guard := NewSlotGuard(nil, client, newTestLogger(), &fakeBookingRepo{}, true, time.UTC)
	mr.Close()

	err := guard.Claim(context.Background(), nov10, two)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSlotTaken)
	assert.Error(t, guard.SyncOnStartup(context.Background()))
}

func TestSlotGuard_SyncOnStartup(t *testing.T) {
	mr, client := newTestRedis(t)

	repo := &fakeBookingRepo{}
	for i := 0; i < syncBatchSize+3; i++ {
		d := nov10.AddDays(i % 5)
		repo.bookings = append(repo.bookings, entity.Booking{
			ID:   int64(i + 1),
			Date: d.Time(),
			Time: calendar.TimeOfDay{Hour: 8 + i%8}.String(),
		})
	}
	repo.bookings = append(repo.bookings,
		entity.Booking{ID: 9001, Date: nov10.AddDays(-1).Time(), Time: "09:00"},
		entity.Booking{ID: 9002, Date: nov10.Time(), Time: "bogus"},
	)

	guard := NewSlotGuard(nil, client, newTestLogger(), repo, true, time.UTC)
	guard.(*redisSlotGuard).now = fixedNow

	require.NoError(t, guard.SyncOnStartup(context.Background()))
	assert.Equal(t, 2, repo.calls)

	assert.True(t, mr.Exists("booking:slot:2025-11-10:08:00"))
	assert.False(t, mr.Exists("booking:slot:2025-11-09:09:00"))
	assert.ErrorIs(t, guard.Claim(context.Background(), nov10, calendar.TimeOfDay{Hour: 8}), ErrSlotTaken)
}

func TestSlotGuard_SyncQueryError(t *testing.T) {
	_, client := newTestRedis(t)
	repo := &fakeBookingRepo{err: errors.New("db down")}
	guard := NewSlotGuard(nil, client, newTestLogger(), repo, true, time.UTC)

	assert.Error(t, guard.SyncOnStartup(context.Background()))
}

type recordingAuditRepo struct {
	logs []*entity.AuditLog
	err  error
}

func (r *recordingAuditRepo) Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error {
	if r.err != nil {
		return r.err
	}
	r.logs = append(r.logs, log)
	return nil
}

func TestAuditService_LogCreate(t *testing.T) {
	repo := &recordingAuditRepo{}
	svc := NewAuditService(newTestLogger(), repo)

	userID := int64(42)
	require.NoError(t, svc.LogCreate(context.Background(), nil, &userID, entity.AuditActionBookingCreate, "booking", "7", map[string]string{"time": "14:00"}))

	require.Len(t, repo.logs, 1)
	log := repo.logs[0]
	assert.Equal(t, entity.AuditActionBookingCreate, log.Action)
	assert.Equal(t, int64(42), *log.UserID)
	assert.Equal(t, "booking", log.Metadata["entity"])
	assert.Equal(t, "7", log.Metadata["entity_id"])
	assert.Nil(t, log.Metadata["old_value"])
}

func TestAuditService_PropagatesError(t *testing.T) {
	repo := &recordingAuditRepo{err: errors.New("insert failed")}
	svc := NewAuditService(newTestLogger(), repo)

	err := svc.LogEvent(context.Background(), nil, nil, entity.AuditActionUserLogin, entity.JSON{"email": "a@b.c"})
	assert.EqualError(t, err, "insert failed")
}

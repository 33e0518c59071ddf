package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"clinic-booking/internal/domain/entity"
	"clinic-booking/pkg/calendar"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	RedisScheduleDayKeyPrefix = "schedule:day:"
	RedisScheduleGenKeyPrefix = "schedule:gen:"
)

// NoGeneration is returned by GetDay when the day's generation could not be
// read. SetDay never writes under it.
const NoGeneration int64 = -1

// setDayIfCurrent stores the day view only when the generation read before the
// DB query is still the current one.
// KEYS[1] = generation key, KEYS[2] = day key
// ARGV[1] = expected generation, ARGV[2] = payload, ARGV[3] = ttl in ms
var setDayIfCurrent = redis.NewScript(`
local current = redis.call('GET', KEYS[1]) or '0'
if current ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[2], ARGV[2], 'PX', ARGV[3])
return 1
`)

// ScheduleCache keeps the single-day schedule in Redis. Reads degrade to a
// cache miss when Redis is unavailable.
//
// Every InvalidateDay bumps a per-day generation. A reader passes the
// generation it got from GetDay to SetDay, so a view read from the database
// before a booking was committed is never stored after that booking's
// invalidation.
type ScheduleCache interface {
	GetDay(ctx context.Context, date calendar.Date) (entries []entity.ScheduleEntry, generation int64, ok bool)
	SetDay(ctx context.Context, date calendar.Date, generation int64, entries []entity.ScheduleEntry)
	InvalidateDay(ctx context.Context, date calendar.Date) error
}

type redisScheduleCache struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
	loc         *time.Location
	now         func() time.Time
}

// NewScheduleCache returns a cache whose entries live at most ttl. A nil
// client or a non-positive ttl disables caching.
func NewScheduleCache(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration, loc *time.Location) ScheduleCache {
	if loc == nil {
		loc = time.UTC
	}
	return &redisScheduleCache{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
		loc:         loc,
		now:         time.Now,
	}
}

func scheduleDayKey(date calendar.Date) string {
	return RedisScheduleDayKeyPrefix + date.String()
}

func scheduleGenKey(date calendar.Date) string {
	return RedisScheduleGenKeyPrefix + date.String()
}

func (c *redisScheduleCache) enabled() bool {
	return c.redisClient != nil && c.ttl > 0
}

// GetDay reads the cached view and the day's generation in one round trip.
// On a miss the generation is still returned for the following SetDay.
func (c *redisScheduleCache) GetDay(ctx context.Context, date calendar.Date) ([]entity.ScheduleEntry, int64, bool) {
	if !c.enabled() {
		return nil, NoGeneration, false
	}

	values, err := c.redisClient.MGet(ctx, scheduleDayKey(date), scheduleGenKey(date)).Result()
	if err != nil {
		c.log.Warnf("Failed to read schedule cache for %s: %+v", date, err)
		return nil, NoGeneration, false
	}

	generation := int64(0)
	if raw, ok := values[1].(string); ok {
		generation, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.log.Warnf("Ignoring malformed schedule generation for %s: %q", date, raw)
			return nil, NoGeneration, false
		}
	}

	raw, ok := values[0].(string)
	if !ok {
		return nil, generation, false
	}

	var entries []entity.ScheduleEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		c.log.Warnf("Discarding corrupt schedule cache for %s: %+v", date, err)
		if err := c.redisClient.Del(ctx, scheduleDayKey(date)).Err(); err != nil {
			c.log.Warnf("Failed to drop corrupt schedule cache for %s: %+v", date, err)
		}
		return nil, generation, false
	}
	if entries == nil {
		entries = []entity.ScheduleEntry{}
	}
	return entries, generation, true
}

func (c *redisScheduleCache) SetDay(ctx context.Context, date calendar.Date, generation int64, entries []entity.ScheduleEntry) {
	if !c.enabled() || generation == NoGeneration {
		return
	}

	if entries == nil {
		entries = []entity.ScheduleEntry{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		c.log.Warnf("Failed to encode schedule cache for %s: %+v", date, err)
		return
	}

	stored, err := setDayIfCurrent.Run(ctx, c.redisClient,
		[]string{scheduleGenKey(date), scheduleDayKey(date)},
		strconv.FormatInt(generation, 10), string(raw), c.calculateTTL(date).Milliseconds(),
	).Int()
	if err != nil {
		c.log.Warnf("Failed to write schedule cache for %s: %+v", date, err)
		return
	}
	if stored == 0 {
		c.log.Debugf("Skipped stale schedule cache write for %s (generation %d)", date, generation)
	}
}

// InvalidateDay bumps the day's generation and drops the cached view in one
// MULTI/EXEC. The generation key outlives any view stored under it.
func (c *redisScheduleCache) InvalidateDay(ctx context.Context, date calendar.Date) error {
	if !c.enabled() {
		return nil
	}

	genKey := scheduleGenKey(date)
	pipe := c.redisClient.TxPipeline()
	pipe.Incr(ctx, genKey)
	pipe.Expire(ctx, genKey, ttlUntilDayAfter(date, c.loc, c.now())+c.ttl)
	pipe.Del(ctx, scheduleDayKey(date))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("invalidate schedule cache for %s: %w", date, err)
	}

	c.log.Debugf("Invalidated schedule cache for %s", date)
	return nil
}

// calculateTTL caps the configured TTL at 24 hours after the cached date.
func (c *redisScheduleCache) calculateTTL(date calendar.Date) time.Duration {
	ttl := ttlUntilDayAfter(date, c.loc, c.now())
	if c.ttl < ttl {
		return c.ttl
	}
	return ttl
}

package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"clinic-booking/internal/domain/entity"
	"clinic-booking/pkg/calendar"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

type fakeBookingRepo struct {
	created   []*entity.Booking
	createErr error
	byUser    []entity.Booking
	findErr   error
	nextID    int64
}

func (r *fakeBookingRepo) Create(ctx context.Context, db *gorm.DB, b *entity.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	b.ID = r.nextID
	b.CreatedAt = time.Date(2025, time.November, 1, 12, 0, 0, 0, time.UTC)
	r.created = append(r.created, b)
	return nil
}

func (r *fakeBookingRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID int64) ([]entity.Booking, error) {
	return r.byUser, r.findErr
}

func (r *fakeBookingRepo) FindFrom(ctx context.Context, db *gorm.DB, fromDate string, limit, offset int) ([]entity.Booking, error) {
	return nil, nil
}

type fakeAuditService struct {
	actions []string
	err     error
}

func (s *fakeAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *int64, action string, entityName string, entityID string, newValue interface{}) error {
	return s.LogEvent(ctx, tx, userID, action, nil)
}

func (s *fakeAuditService) LogEvent(ctx context.Context, tx *gorm.DB, userID *int64, action string, metadata entity.JSON) error {
	if s.err != nil {
		return s.err
	}
	s.actions = append(s.actions, action)
	return nil
}

type fakeScheduleCache struct {
	days          map[string][]entity.ScheduleEntry
	generations   map[string]int64
	invalidated   []string
	invalidateErr error
}

func newFakeScheduleCache() *fakeScheduleCache {
	return &fakeScheduleCache{
		days:        map[string][]entity.ScheduleEntry{},
		generations: map[string]int64{},
	}
}

func (c *fakeScheduleCache) GetDay(ctx context.Context, date calendar.Date) ([]entity.ScheduleEntry, int64, bool) {
	entries, ok := c.days[date.String()]
	return entries, c.generations[date.String()], ok
}

func (c *fakeScheduleCache) SetDay(ctx context.Context, date calendar.Date, generation int64, entries []entity.ScheduleEntry) {
	if generation != c.generations[date.String()] {
		return
	}
	c.days[date.String()] = entries
}

func (c *fakeScheduleCache) InvalidateDay(ctx context.Context, date calendar.Date) error {
	c.invalidated = append(c.invalidated, date.String())
	if c.invalidateErr != nil {
		return c.invalidateErr
	}
	c.generations[date.String()]++
	delete(c.days, date.String())
	return nil
}

// fakeScheduleRepo returns entries as they were when the query started.
// afterFind runs between that read and the return.
type fakeScheduleRepo struct {
	entries   []entity.ScheduleEntry
	err       error
	filters   []entity.ScheduleFilter
	afterFind func()
}

func (r *fakeScheduleRepo) FindEntries(ctx context.Context, db *gorm.DB, filter entity.ScheduleFilter) ([]entity.ScheduleEntry, error) {
	r.filters = append(r.filters, filter)
	if r.err != nil {
		return nil, r.err
	}
	entries := r.entries
	if r.afterFind != nil {
		r.afterFind()
	}
	return entries, nil
}

type fakeUserRepo struct {
	users     map[string]*entity.User
	createErr error
	nextID    int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*entity.User{}, nextID: 100}
}

func (r *fakeUserRepo) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*entity.User, error) {
	return r.users[email], nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

type fakeDoctorRepo struct {
	doctors map[int64]*entity.Doctor
}

func (r *fakeDoctorRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID int64) (*entity.Doctor, error) {
	return r.doctors[userID], nil
}

type fakePatientInfoRepo struct {
	infos map[int64]*entity.PatientInfo
}

func (r *fakePatientInfoRepo) FindByUserID(ctx context.Context, db *gorm.DB, userID int64) (*entity.PatientInfo, error) {
	return r.infos[userID], nil
}

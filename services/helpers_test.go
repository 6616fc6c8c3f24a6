package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"hotel-booking/locks"
	"hotel-booking/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	// one connection keeps the in-memory database alive and shared
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

type recordingPublisher struct {
	mu    sync.Mutex
	types []string
	keys  []string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType, key string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, eventType)
	p.keys = append(p.keys, key)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.types...)
}

type fixture struct {
	db       *gorm.DB
	users    *UserService
	rooms    *RoomService
	bookings *BookingService
	events   *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	users := NewUserService(db, "test-secret", time.Hour)
	users.Cost = bcrypt.MinCost
	rooms := NewRoomService(db)
	pub := &recordingPublisher{}
	return &fixture{
		db:       db,
		users:    users,
		rooms:    rooms,
		bookings: NewBookingService(db, users, rooms, locks.NewKeyedMutex(), pub),
		events:   pub,
	}
}

func (f *fixture) user(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), RegisterInput{Name: "Guest " + email, Email: email, Password: "secret123"})
	require.NoError(t, err)
	return u
}

func (f *fixture) room(t *testing.T, name string, capacity int) *models.Room {
	t.Helper()
	r, err := f.rooms.Create(context.Background(), CreateRoomInput{Name: name, Price: 120, Capacity: capacity})
	require.NoError(t, err)
	return r
}

func (f *fixture) book(userID, roomID, checkIn, checkOut string) (*models.Booking, error) {
	return f.bookings.Create(context.Background(), CreateBookingInput{
		UserID:       userID,
		RoomID:       roomID,
		CheckInDate:  date(checkIn),
		CheckOutDate: date(checkOut),
		Guests:       2,
		TotalPrice:   480,
	})
}

func (f *fixture) countBookings(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.Booking{}).Count(&n).Error)
	return n
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func ptr[T any](v T) *T {
	return &v
}

// trackingLocker wraps a Locker and records how many callers hold each key.
type trackingLocker struct {
	inner locks.Locker

	mu       sync.Mutex
	held     map[string]int
	acquired int
	maxHeld  int
}

func newTrackingLocker(inner locks.Locker) *trackingLocker {
	return &trackingLocker{inner: inner, held: map[string]int{}}
}

func (l *trackingLocker) Lock(ctx context.Context, key string) (func(), error) {
	unlock, err := l.inner.Lock(ctx, key)
	if err != nil {
		return nil, err
	}
	l.mu.Lock()
	l.held[key]++
	l.acquired++
	if l.held[key] > l.maxHeld {
		l.maxHeld = l.held[key]
	}
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			l.held[key]--
			l.mu.Unlock()
			unlock()
		})
	}, nil
}

func (l *trackingLocker) isHeld(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held[key] > 0
}

// earlyRelease drops the lock as soon as it is acquired.
type earlyRelease struct{ inner locks.Locker }

func (l earlyRelease) Lock(ctx context.Context, key string) (func(), error) {
	unlock, err := l.inner.Lock(ctx, key)
	if err != nil {
		return nil, err
	}
	unlock()
	return func() {}, nil
}

// watchBookingStatements calls fn before every bookings read or write that
// runs inside a transaction.
func watchBookingStatements(t *testing.T, db *gorm.DB, fn func()) {
	t.Helper()
	hook := func(tx *gorm.DB) {
		if _, inTx := tx.Statement.ConnPool.(gorm.TxCommitter); !inTx {
			return
		}
		if tx.Statement.Table == "bookings" {
			fn()
		}
	}
	cb := db.Callback()
	require.NoError(t, cb.Query().Before("gorm:query").Register("test:watch_bookings_query", hook))
	require.NoError(t, cb.Create().Before("gorm:create").Register("test:watch_bookings_create", hook))
	require.NoError(t, cb.Update().Before("gorm:update").Register("test:watch_bookings_update", hook))
}

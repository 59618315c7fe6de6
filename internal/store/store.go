package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/model"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

// EventStore persists events.
type EventStore interface {
	ListEvents(ctx context.Context, f EventFilter) ([]model.Event, error)
	ListIncompleteEvents(ctx context.Context) ([]model.Event, error)
	GetEvent(ctx context.Context, id string) (*model.Event, error)
	CreateEvent(ctx context.Context, ev *model.Event) error
	CreateEvents(ctx context.Context, evs []*model.Event) error
	UpdateEvent(ctx context.Context, ev *model.Event) error
	DeleteEvent(ctx context.Context, id string) error
}

// AttendanceStore is the session attendance ledger.
type AttendanceStore interface {
	GetAttendanceRecords(ctx context.Context, eventID string) ([]model.SessionAttendance, error)
	MarkAttendance(ctx context.Context, m AttendanceMark) (*model.SessionAttendance, error)
	GetPendingSessionDates(ctx context.Context, eventID string, now time.Time) ([]string, error)
}

// PomodoroStore records timer runs.
type PomodoroStore interface {
	CreatePomodoroSession(ctx context.Context, s *model.PomodoroSession) error
	ListPomodoroSessions(ctx context.Context, limit int) ([]model.PomodoroSession, error)
	ListPomodoroSessionsByMode(ctx context.Context, mode string) ([]model.PomodoroSession, error)
}

// SubscriptionStore manages web push subscriptions.
type SubscriptionStore interface {
	PutSubscription(ctx context.Context, sub *model.PushSubscription, eventIDs []string) error
	GetSubscription(ctx context.Context, endpoint string) (*model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
	SubscriptionsForEvent(ctx context.Context, eventID string) ([]model.PushSubscription, error)
}

// Store defines the interface for all database operations.
type Store interface {
	EventStore
	AttendanceStore
	PomodoroStore
	SubscriptionStore
	Ping(ctx context.Context) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

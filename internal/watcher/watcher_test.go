package watcher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/config"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/model"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/notification"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/realtime"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/temporal"
)

// mockStore is a mock implementation of EventLister.
type mockStore struct {
	ListFunc func(ctx context.Context) ([]model.Event, error)
}

func (m *mockStore) ListIncompleteEvents(ctx context.Context) ([]model.Event, error) {
	return m.ListFunc(ctx)
}

type recordingDispatcher struct {
	jobs []notification.Job
}

func (d *recordingDispatcher) Dispatch(job notification.Job) bool {
	d.jobs = append(d.jobs, job)
	return true
}

func strPtr(s string) *string { return &s }

func TestService_CheckOnce(t *testing.T) {
	start := time.Date(2026, 1, 8, 9, 0, 0, 0, time.UTC)
	events := []model.Event{
		{
			ID: "window", Title: "Study block",
			StartDate: start, EndDate: start.Add(56 * time.Hour),
			DailyStartTime: strPtr("09:00"), DailyEndTime: strPtr("17:00"),
		},
		{
			ID: "broken", Title: "Broken",
			StartDate: start, EndDate: start,
		},
	}
	store := &mockStore{ListFunc: func(ctx context.Context) ([]model.Event, error) { return events, nil }}

	cfg := &config.Config{Location: time.UTC}
	hub := realtime.NewHub(8)
	msgs, cancel := hub.Subscribe()
	defer cancel()
	dispatcher := &recordingDispatcher{}

	svc := NewService(cfg, store, hub, dispatcher)
	clock := start.Add(-time.Hour)
	svc.now = func() time.Time { return clock }

	// First observation records the phase without announcing it.
	assert.Empty(t, svc.CheckOnce(context.Background()))

	clock = start.Add(30 * time.Minute)
	transitions := svc.CheckOnce(context.Background())
	require.Len(t, transitions, 1)
	assert.Equal(t, "window", transitions[0].EventID)
	assert.Equal(t, temporal.PhaseUpcoming, transitions[0].From)
	assert.Equal(t, temporal.PhaseOngoing, transitions[0].To)
	assert.Equal(t, "7h 30m left in today's session", transitions[0].Label.Headline)

	select {
	case msg := <-msgs:
		assert.Equal(t, realtime.TypePhaseChanged, msg.Type)
	case <-time.After(time.Second):
		t.Fatal("no hub message")
	}
	require.Len(t, dispatcher.jobs, 1)
	assert.Equal(t, "ongoing", dispatcher.jobs[0].Phase)
	assert.Equal(t, "Study block", dispatcher.jobs[0].Title)

	// Same phase again is not a transition.
	clock = start.Add(time.Hour)
	assert.Empty(t, svc.CheckOnce(context.Background()))

	clock = start.Add(9 * time.Hour)
	transitions = svc.CheckOnce(context.Background())
	require.Len(t, transitions, 1)
	assert.Equal(t, temporal.PhasePaused, transitions[0].To)
}

func TestService_ForgetsRemovedEvents(t *testing.T) {
	start := time.Date(2026, 1, 8, 9, 0, 0, 0, time.UTC)
	events := []model.Event{{ID: "a", StartDate: start, EndDate: start.Add(time.Hour)}}
	store := &mockStore{ListFunc: func(ctx context.Context) ([]model.Event, error) { return events, nil }}

	svc := NewService(&config.Config{Location: time.UTC}, store, nil, nil)
	svc.now = func() time.Time { return start }
	svc.CheckOnce(context.Background())
	assert.Len(t, svc.last, 1)

	events = nil
	svc.CheckOnce(context.Background())
	assert.Empty(t, svc.last)
}

func TestService_StoreError(t *testing.T) {
	store := &mockStore{ListFunc: func(ctx context.Context) ([]model.Event, error) { return nil, errors.New("db down") }}
	svc := NewService(&config.Config{}, store, nil, nil)
	assert.Nil(t, svc.CheckOnce(context.Background()))
}

func TestService_RunRejectsBadSchedule(t *testing.T) {
	store := &mockStore{ListFunc: func(ctx context.Context) ([]model.Event, error) { return nil, nil }}
	cfg := &config.Config{Watcher: config.WatcherConfig{Enabled: true, Schedule: "not a schedule"}}
	svc := NewService(cfg, store, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	assert.Error(t, svc.Run(ctx))
}

func TestService_RunDisabled(t *testing.T) {
	svc := NewService(&config.Config{}, nil, nil, nil)
	assert.NoError(t, svc.Run(context.Background()))
}

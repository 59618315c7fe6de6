package internal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/config"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/attendance"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/db"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/model"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/notification"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/realtime"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/store"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/watcher"
)

type recordingDispatcher struct {
	jobs []notification.Job
}

func (d *recordingDispatcher) Dispatch(job notification.Job) bool {
	d.jobs = append(d.jobs, job)
	return true
}

// TestEventLifecycle walks a three-day daily-window event through its
// phases and verifies the watcher, the hub and the attendance ledger at each
// step.
func TestEventLifecycle(t *testing.T) {
	// --- Test Setup ---
	testDB, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err, "Failed to connect to the in-memory database")
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()
	require.NoError(t, db.Migrate(testDB))

	cfg := &config.Config{Location: time.UTC}
	cfg.Watcher.Enabled = true

	appStore := store.NewGormStore(testDB)
	hub := realtime.NewHub(8)
	msgs, unsubscribe := hub.Subscribe()
	defer unsubscribe()
	dispatcher := &recordingDispatcher{}

	svc := watcher.NewService(cfg, appStore, hub, dispatcher)
	setNow := func(s string) time.Time {
		now, err := time.ParseInLocation("2006-01-02T15:04", s, time.UTC)
		require.NoError(t, err)
		svc.SetClock(func() time.Time { return now })
		return now
	}

	daily, until := "09:00", "17:00"
	ev := &model.Event{
		Title:          "Workshop",
		StartDate:      time.Date(2026, 1, 8, 9, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 1, 10, 17, 0, 0, 0, time.UTC),
		Category:       model.CategoryLearning,
		Priority:       model.PriorityHigh,
		TimingMode:     model.TimingSpecific,
		Resolution:     model.ResolutionPending,
		DailyStartTime: &daily,
		DailyEndTime:   &until,
	}
	ctx := context.Background()
	require.NoError(t, appStore.CreateEvent(ctx, ev))

	t.Run("First observation is silent", func(t *testing.T) {
		setNow("2026-01-08T08:00")
		assert.Empty(t, svc.CheckOnce(ctx))
		assert.Empty(t, dispatcher.jobs)
	})

	t.Run("Session opens", func(t *testing.T) {
		setNow("2026-01-08T10:00")
		transitions := svc.CheckOnce(ctx)
		require.Len(t, transitions, 1)
		assert.Equal(t, "upcoming", string(transitions[0].From))
		assert.Equal(t, "ongoing", string(transitions[0].To))

		msg := <-msgs
		assert.Equal(t, realtime.TypePhaseChanged, msg.Type)

		require.Len(t, dispatcher.jobs, 1)
		assert.Equal(t, ev.ID, dispatcher.jobs[0].EventID)
		assert.Equal(t, "7h left in today's session", dispatcher.jobs[0].Body)
	})

	t.Run("Session closes for the night", func(t *testing.T) {
		setNow("2026-01-08T18:00")
		transitions := svc.CheckOnce(ctx)
		require.Len(t, transitions, 1)
		assert.Equal(t, "paused", string(transitions[0].To))
		assert.Equal(t, "Next session tomorrow, in 15h", transitions[0].Label.Headline)
		<-msgs
	})

	t.Run("Attendance is recorded", func(t *testing.T) {
		rec, err := appStore.MarkAttendance(ctx, store.AttendanceMark{
			EventID:     ev.ID,
			SessionDate: "2026-01-08",
			Status:      attendance.StatusAttended,
		})
		require.NoError(t, err)
		assert.Equal(t, "attended", rec.Status)
	})

	t.Run("Event ends", func(t *testing.T) {
		now := setNow("2026-01-10T18:00")
		transitions := svc.CheckOnce(ctx)
		require.Len(t, transitions, 1)
		assert.Equal(t, "ended", string(transitions[0].To))
		<-msgs

		pending, err := appStore.GetPendingSessionDates(ctx, ev.ID, now)
		require.NoError(t, err)
		assert.Equal(t, []string{"2026-01-09", "2026-01-10"}, pending)

		records, err := appStore.GetAttendanceRecords(ctx, ev.ID)
		require.NoError(t, err)
		tev, err := ev.Temporal(time.UTC)
		require.NoError(t, err)

		summary := attendance.Summarize(tev, []attendance.Record{{Date: records[0].SessionDate, Status: attendance.Status(records[0].Status)}})
		assert.Equal(t, 3, summary.TotalSessions)
		assert.Equal(t, 2, summary.Pending)
		assert.Equal(t, 100.0, summary.AttendanceRate)
	})

	t.Run("Completed events leave the watch list", func(t *testing.T) {
		ev.IsCompleted = true
		require.NoError(t, appStore.UpdateEvent(ctx, ev))

		setNow("2026-01-11T09:00")
		assert.Empty(t, svc.CheckOnce(ctx))
		assert.Len(t, dispatcher.jobs, 3)
	})
}

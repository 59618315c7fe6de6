package temporal

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(t *testing.T, raw string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02T15:04", raw, time.UTC)
	require.NoError(t, err)
	return ts
}

func mustWindow(t *testing.T, start, end string) *DailyWindow {
	t.Helper()
	w, err := NewDailyWindow(start, end)
	require.NoError(t, err)
	return &w
}

// threeDayTask spans 2026-01-08..2026-01-10 with a 09:00-17:00 window.
func threeDayTask(t *testing.T) Event {
	return Event{
		Start:  at(t, "2026-01-08T09:00"),
		End:    at(t, "2026-01-10T17:00"),
		Window: mustWindow(t, "09:00", "17:00"),
	}
}

func TestEvaluate_PlainOngoing(t *testing.T) {
	ev := Event{Start: at(t, "2026-01-08T09:00"), End: at(t, "2026-01-08T10:00")}

	st, err := Evaluate(ev, at(t, "2026-01-08T09:30"))
	require.NoError(t, err)

	assert.Equal(t, PhaseOngoing, st.Phase)
	assert.Equal(t, 30*time.Minute, st.Elapsed.Duration())
	assert.Equal(t, 30*time.Minute, st.Remaining.Duration())
	require.NotNil(t, st.Ongoing)
	assert.False(t, st.IsInSession())
	assert.Nil(t, st.Ongoing.TodayRemaining)
}

func TestEvaluate_PlainPhases(t *testing.T) {
	ev := Event{Start: at(t, "2026-01-08T09:00"), End: at(t, "2026-01-08T10:00")}

	testCases := []struct {
		name     string
		now      string
		expected Phase
	}{
		{name: "Before start", now: "2026-01-08T08:00", expected: PhaseUpcoming},
		{name: "At start", now: "2026-01-08T09:00", expected: PhaseOngoing},
		{name: "At end", now: "2026-01-08T10:00", expected: PhaseEnded},
		{name: "After end", now: "2026-01-09T10:00", expected: PhaseEnded},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			st, err := Evaluate(ev, at(t, tc.now))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, st.Phase)
		})
	}

	st, err := Evaluate(ev, at(t, "2026-01-08T08:00"))
	require.NoError(t, err)
	assert.Equal(t, time.Hour, st.Upcoming.StartsIn.Duration())
	assert.Equal(t, int64(0), st.Elapsed.TotalMs)

	st, err = Evaluate(ev, at(t, "2026-01-09T10:00"))
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, st.Ended.EndedAgo.Duration())
	assert.Equal(t, 1, st.Ended.EndedAgo.Days)
}

func TestEvaluate_WindowInSession(t *testing.T) {
	st, err := Evaluate(threeDayTask(t), at(t, "2026-01-09T10:00"))
	require.NoError(t, err)

	assert.Equal(t, PhaseOngoing, st.Phase)
	assert.True(t, st.IsInSession())
	require.NotNil(t, st.Ongoing.TodayRemaining)
	assert.Equal(t, 7*time.Hour, st.Ongoing.TodayRemaining.Duration())
	assert.Equal(t, 9*time.Hour, st.Elapsed.Duration())
	assert.Equal(t, 24*time.Hour, st.Total.Duration())
	assert.Equal(t, 15*time.Hour, st.Remaining.Duration())
}

func TestEvaluate_WindowPausedUntilTomorrow(t *testing.T) {
	st, err := Evaluate(threeDayTask(t), at(t, "2026-01-09T20:00"))
	require.NoError(t, err)

	assert.Equal(t, PhasePaused, st.Phase)
	assert.False(t, st.IsInSession())
	require.NotNil(t, st.Paused)
	assert.Equal(t, SessionTomorrow, st.Paused.NextSession)
	assert.Equal(t, 13*time.Hour, st.Paused.NextSessionIn.Duration())
	assert.Equal(t, at(t, "2026-01-10T09:00"), st.Paused.NextSessionAt)
	assert.Equal(t, 16*time.Hour, st.Elapsed.Duration())
}

// After the last window closes and before the event ends, the next session
// is still reported as tomorrow even though it falls after the end.
func TestEvaluate_WindowPausedAfterLastSession(t *testing.T) {
	ev := Event{
		Start:  at(t, "2026-01-08T09:00"),
		End:    at(t, "2026-01-10T20:00"),
		Window: mustWindow(t, "09:00", "17:00"),
	}

	testCases := []struct {
		name string
		now  string
	}{
		{name: "Just after the last window", now: "2026-01-10T17:00"},
		{name: "At the event end", now: "2026-01-10T20:00"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			st, err := Evaluate(ev, at(t, tc.now))
			require.NoError(t, err)

			assert.Equal(t, PhasePaused, st.Phase)
			require.NotNil(t, st.Paused)
			assert.Equal(t, SessionTomorrow, st.Paused.NextSession)
			assert.Equal(t, at(t, "2026-01-11T09:00"), st.Paused.NextSessionAt)
			assert.True(t, st.Paused.NextSessionAt.After(ev.End))
			assert.Equal(t, 24*time.Hour, st.Elapsed.Duration())
			assert.Zero(t, st.Remaining.Duration())
		})
	}

	st, err := Evaluate(ev, at(t, "2026-01-10T20:01"))
	require.NoError(t, err)
	assert.Equal(t, PhaseEnded, st.Phase)
}

func TestEvaluate_WindowPausedLaterToday(t *testing.T) {
	st, err := Evaluate(threeDayTask(t), at(t, "2026-01-09T07:30"))
	require.NoError(t, err)

	assert.Equal(t, PhasePaused, st.Phase)
	assert.Equal(t, SessionToday, st.Paused.NextSession)
	assert.Equal(t, 90*time.Minute, st.Paused.NextSessionIn.Duration())
	assert.Equal(t, 8*time.Hour, st.Elapsed.Duration())
}

func TestEvaluate_CompletedOverridesTime(t *testing.T) {
	ev := threeDayTask(t)
	ev.Completed = true

	for _, now := range []string{"2026-01-01T00:00", "2026-01-09T10:00", "2026-02-01T00:00"} {
		st, err := Evaluate(ev, at(t, now))
		require.NoError(t, err)
		assert.Equal(t, PhaseCompleted, st.Phase)
		assert.Equal(t, Span{}, st.Elapsed)
		assert.Equal(t, Span{}, st.Remaining)
		assert.Nil(t, st.Upcoming)
		assert.Nil(t, st.Ongoing)
		assert.Nil(t, st.Paused)
		assert.Nil(t, st.Ended)
	}
}

func TestEvaluate_WindowBoundaries(t *testing.T) {
	ev := threeDayTask(t)

	testCases := []struct {
		name     string
		now      string
		expected Phase
	}{
		{name: "Before overall start", now: "2026-01-08T08:59", expected: PhaseUpcoming},
		{name: "Window opens (inclusive)", now: "2026-01-09T09:00", expected: PhaseOngoing},
		{name: "Window closes (exclusive)", now: "2026-01-09T17:00", expected: PhasePaused},
		{name: "Overall end is still inside span", now: "2026-01-10T17:00", expected: PhasePaused},
		{name: "After overall end", now: "2026-01-10T17:01", expected: PhaseEnded},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			st, err := Evaluate(ev, at(t, tc.now))
			require.NoError(t, err)
			assert.Equal(t, tc.expected, st.Phase)
		})
	}
}

func TestEvaluate_ExactlyOneDetail(t *testing.T) {
	ev := threeDayTask(t)
	start := at(t, "2026-01-07T00:00")
	for now := start; now.Before(at(t, "2026-01-12T00:00")); now = now.Add(17 * time.Minute) {
		st, err := Evaluate(ev, now)
		require.NoError(t, err)

		set := 0
		for _, present := range []bool{st.Upcoming != nil, st.Ongoing != nil, st.Paused != nil, st.Ended != nil} {
			if present {
				set++
			}
		}
		assert.Equal(t, 1, set, "phase %s at %s", st.Phase, now)
	}
}

func TestEvaluate_MonotonicAndConserved(t *testing.T) {
	events := map[string]Event{
		"window":      threeDayTask(t),
		"late start":  {Start: at(t, "2026-01-08T14:00"), End: at(t, "2026-01-10T11:00"), Window: mustWindow(t, "09:00", "17:00")},
		"plain":       {Start: at(t, "2026-01-08T09:00"), End: at(t, "2026-01-08T10:00")},
		"short daily": {Start: at(t, "2026-01-08T00:00"), End: at(t, "2026-01-12T23:59"), Window: mustWindow(t, "06:15", "06:45")},
	}

	for name, ev := range events {
		t.Run(name, func(t *testing.T) {
			from := ev.Start.Add(-36 * time.Hour)
			to := ev.End.Add(36 * time.Hour)
			total := TotalScheduled(ev)

			var prev *State
			for now := from; now.Before(to); now = now.Add(7 * time.Minute) {
				st, err := Evaluate(ev, now)
				require.NoError(t, err)

				if prev != nil {
					assert.GreaterOrEqual(t, st.Elapsed.TotalMs, prev.Elapsed.TotalMs, "elapsed went back at %s", now)
					assert.LessOrEqual(t, st.Remaining.TotalMs, prev.Remaining.TotalMs, "remaining grew at %s", now)
				}
				if ev.Window != nil && !now.Before(ev.Start) && !now.After(ev.End) {
					assert.Equal(t, total, Elapsed(ev, now)+Remaining(ev, now), "not conserved at %s", now)
				}
				prev = &st
			}
		})
	}
}

func TestEvaluate_InvalidRange(t *testing.T) {
	ev := Event{Start: at(t, "2026-01-08T10:00"), End: at(t, "2026-01-08T10:00")}
	_, err := Evaluate(ev, at(t, "2026-01-08T10:00"))

	var iv *InvariantViolation
	assert.True(t, errors.As(err, &iv))
}

func TestEvaluate_UsesEventLocation(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	ev := Event{
		Start:  time.Date(2026, 1, 8, 9, 0, 0, 0, loc),
		End:    time.Date(2026, 1, 10, 17, 0, 0, 0, loc),
		Window: mustWindow(t, "09:00", "17:00"),
	}

	// 01:00 UTC is 10:00 in Tokyo.
	st, err := Evaluate(ev, time.Date(2026, 1, 9, 1, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, PhaseOngoing, st.Phase)
	assert.Equal(t, 9*time.Hour, st.Elapsed.Duration())
}

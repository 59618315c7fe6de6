package temporal

import (
	"time"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/wallclock"
)

// Event is the immutable input of one evaluation. Calendar days are read in
// the location of Start.
type Event struct {
	Start     time.Time
	End       time.Time
	Completed bool
	Window    *DailyWindow
}

// TotalDays is the inclusive number of calendar days the event touches.
func (ev Event) TotalDays() int {
	return wallclock.DaysBetween(ev.Start, ev.End.In(ev.Start.Location())) + 1
}

// TotalScheduled is the full duration of the event.
//
// With a daily window every calendar day in the span counts as a full
// session, including a first or last day the event only partly covers.
// This keeps the total stable over the event's life; it overstates the
// total when start or end fall inside a window.
func TotalScheduled(ev Event) time.Duration {
	if ev.Window == nil {
		return ev.End.Sub(ev.Start)
	}
	return time.Duration(ev.TotalDays()) * ev.Window.Duration()
}

// Elapsed is the scheduled time already consumed at now: whole sessions of
// the days before today plus today's share of the window.
func Elapsed(ev Event, now time.Time) time.Duration {
	if ev.Window == nil {
		return clamp(now.Sub(ev.Start), 0, ev.End.Sub(ev.Start))
	}

	now = now.In(ev.Start.Location())
	daily := ev.Window.Duration()
	completedDays := wallclock.DaysBetween(ev.Start, now)
	elapsed := time.Duration(completedDays) * daily

	winStart, winEnd := ev.Window.For(now)
	switch {
	case now.Before(winStart):
	case now.Before(winEnd):
		elapsed += min(now.Sub(winStart), daily)
	default:
		elapsed += daily
	}

	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Remaining is TotalScheduled minus Elapsed, never negative.
func Remaining(ev Event, now time.Time) time.Duration {
	return max(0, TotalScheduled(ev)-Elapsed(ev, now))
}

func clamp(d, lo, hi time.Duration) time.Duration {
	return max(lo, min(d, hi))
}

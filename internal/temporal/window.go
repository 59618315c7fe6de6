package temporal

import (
	"fmt"
	"time"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/wallclock"
)

// DailyWindow is a same-day recurring time-of-day range such as 09:00-17:00.
type DailyWindow struct {
	Start wallclock.Clock
	End   wallclock.Clock
}

// NewDailyWindow parses an "HH:MM" pair. The end must fall strictly after the
// start on the same day; windows crossing midnight are rejected.
func NewDailyWindow(start, end string) (DailyWindow, error) {
	s, err := wallclock.ParseClock(start)
	if err != nil {
		return DailyWindow{}, err
	}
	e, err := wallclock.ParseClock(end)
	if err != nil {
		return DailyWindow{}, err
	}
	if e.Minutes() <= s.Minutes() {
		return DailyWindow{}, &InvariantViolation{
			Reason: fmt.Sprintf("daily end time %s must be after daily start time %s", end, start),
		}
	}
	return DailyWindow{Start: s, End: e}, nil
}

// WindowFromPair builds an optional window from two nullable strings.
// Both nil yields no window; exactly one nil is an invariant violation.
func WindowFromPair(start, end *string) (*DailyWindow, error) {
	if start == nil && end == nil {
		return nil, nil
	}
	if start == nil || end == nil {
		return nil, &InvariantViolation{Reason: "daily start and end times must be set together"}
	}
	w, err := NewDailyWindow(*start, *end)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// For returns the absolute bounds of the window on day's calendar date,
// built from wall-clock fields in day's location.
func (w DailyWindow) For(day time.Time) (time.Time, time.Time) {
	return w.Start.On(day), w.End.On(day)
}

// Duration is the length of one session.
func (w DailyWindow) Duration() time.Duration {
	return time.Duration(w.End.Minutes()-w.Start.Minutes()) * time.Minute
}

func (w DailyWindow) String() string {
	return w.Start.String() + "-" + w.End.String()
}

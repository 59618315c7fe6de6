package attendance

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/temporal"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/wallclock"
)

// Status is the outcome recorded for one session day.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAttended Status = "attended"
	StatusMissed   Status = "missed"
	StatusSkipped  Status = "skipped"
)

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusAttended, StatusMissed, StatusSkipped:
		return st, nil
	}
	return "", fmt.Errorf("unknown attendance status %q", s)
}

// Record is one ledger entry keyed by its YYYY-MM-DD session date.
type Record struct {
	Date   string
	Status Status
	Notes  *string
}

// SessionDates lists midnight of every calendar day a daily-window event
// touches, in the event's location. Plain events have no sessions.
func SessionDates(ev temporal.Event) []time.Time {
	if ev.Window == nil || !ev.End.After(ev.Start) {
		return nil
	}
	first := wallclock.Date(ev.Start)
	last := wallclock.Date(ev.End.In(ev.Start.Location()))

	r, err := rrule.NewRRule(rrule.ROption{
		Freq:    rrule.DAILY,
		Dtstart: first,
		Until:   last,
	})
	if err != nil {
		return nil
	}
	return r.All()
}

// PendingDates returns the session dates up to today that have no record.
// Today only counts once its window has closed.
func PendingDates(ev temporal.Event, marked map[string]bool, now time.Time) []string {
	if ev.Window == nil {
		return nil
	}
	now = now.In(ev.Start.Location())
	today := wallclock.DateKey(now)
	_, todayEnd := ev.Window.For(now)

	var pending []string
	for _, day := range SessionDates(ev) {
		key := wallclock.DateKey(day)
		if key > today {
			break
		}
		if key == today && now.Before(todayEnd) {
			break
		}
		if !marked[key] {
			pending = append(pending, key)
		}
	}
	return pending
}

// Summary aggregates the ledger of one event.
type Summary struct {
	TotalSessions  int     `json:"total_sessions"`
	Attended       int     `json:"attended"`
	Missed         int     `json:"missed"`
	Skipped        int     `json:"skipped"`
	Pending        int     `json:"pending"`
	AttendanceRate float64 `json:"attendance_rate"`
	CurrentStreak  int     `json:"current_streak"`
}

// Summarize counts records against the event's session total. The rate is
// attended over attended+missed, skipped days count for neither. The streak
// is the run of attended records ending at the most recent one.
func Summarize(ev temporal.Event, records []Record) Summary {
	var s Summary
	if ev.Window != nil {
		s.TotalSessions = ev.TotalDays()
	}

	for _, r := range records {
		switch r.Status {
		case StatusAttended:
			s.Attended++
		case StatusMissed:
			s.Missed++
		case StatusSkipped:
			s.Skipped++
		}
	}
	s.Pending = max(0, s.TotalSessions-(s.Attended+s.Missed+s.Skipped))

	if decided := s.Attended + s.Missed; decided > 0 {
		s.AttendanceRate = math.Round(float64(s.Attended)/float64(decided)*1000) / 10
	}

	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Date > sorted[j].Date })
	for _, r := range sorted {
		if r.Status != StatusAttended {
			break
		}
		s.CurrentStreak++
	}
	return s
}

package temporal

import (
	"time"
)

// Phase is the lifecycle position of an event at an instant.
type Phase string

const (
	PhaseUpcoming  Phase = "upcoming"
	PhaseOngoing   Phase = "ongoing"
	PhasePaused    Phase = "paused"
	PhaseEnded     Phase = "ended"
	PhaseCompleted Phase = "completed"
)

// SessionDay says whether the next session opens later today or tomorrow.
type SessionDay string

const (
	SessionToday    SessionDay = "today"
	SessionTomorrow SessionDay = "tomorrow"
)

// Span is a duration split into display units. The units carry the sign
// of the duration.
type Span struct {
	Days    int   `json:"days"`
	Hours   int   `json:"hours"`
	Minutes int   `json:"minutes"`
	Seconds int   `json:"seconds"`
	TotalMs int64 `json:"total_ms"`
}

// NewSpan decomposes d into days, hours, minutes and whole seconds.
func NewSpan(d time.Duration) Span {
	sign := 1
	abs := d
	if d < 0 {
		sign = -1
		abs = -d
	}
	secs := int64(abs / time.Second)
	return Span{
		Days:    sign * int(secs/86400),
		Hours:   sign * int(secs%86400/3600),
		Minutes: sign * int(secs%3600/60),
		Seconds: sign * int(secs%60),
		TotalMs: d.Milliseconds(),
	}
}

// Duration converts the span back to a time.Duration at millisecond precision.
func (s Span) Duration() time.Duration {
	return time.Duration(s.TotalMs) * time.Millisecond
}

// Upcoming is carried while the event has not started.
type Upcoming struct {
	StartsIn Span `json:"starts_in"`
}

// Ongoing is carried while the event runs. TodayRemaining is only set for
// daily-window events, which are then in session.
type Ongoing struct {
	InSession      bool  `json:"in_session"`
	TodayRemaining *Span `json:"today_remaining,omitempty"`
}

// Paused is carried between two sessions of a daily-window event.
type Paused struct {
	NextSessionIn Span       `json:"next_session_in"`
	NextSession   SessionDay `json:"next_session"`
	NextSessionAt time.Time  `json:"-"`
}

// Ended is carried once the event is over.
type Ended struct {
	EndedAgo Span `json:"ended_ago"`
}

// State is the snapshot returned by Evaluate. Exactly one of the phase
// details is set, matching Phase; a completed state carries none.
type State struct {
	Phase     Phase `json:"phase"`
	Elapsed   Span  `json:"elapsed"`
	Remaining Span  `json:"remaining"`
	Total     Span  `json:"total"`

	Upcoming *Upcoming `json:"upcoming,omitempty"`
	Ongoing  *Ongoing  `json:"ongoing,omitempty"`
	Paused   *Paused   `json:"paused,omitempty"`
	Ended    *Ended    `json:"ended,omitempty"`
}

// IsInSession reports whether a daily-window event is inside today's window.
func (s State) IsInSession() bool {
	return s.Phase == PhaseOngoing && s.Ongoing != nil && s.Ongoing.InSession
}

// Evaluate derives the state of ev at now. It holds no state of its own and
// is safe to call concurrently; callers re-run it on every tick.
func Evaluate(ev Event, now time.Time) (State, error) {
	if ev.Completed {
		return State{Phase: PhaseCompleted}, nil
	}
	if !ev.End.After(ev.Start) {
		return State{}, &InvariantViolation{Reason: "event end must be after its start"}
	}

	now = now.In(ev.Start.Location())
	if ev.Window == nil {
		return evaluatePlain(ev, now), nil
	}
	return evaluateWindowed(ev, now), nil
}

func evaluatePlain(ev Event, now time.Time) State {
	total := TotalScheduled(ev)
	switch {
	case now.Before(ev.Start):
		return upcoming(ev, now, total)
	case now.Before(ev.End):
		return State{
			Phase:     PhaseOngoing,
			Elapsed:   NewSpan(now.Sub(ev.Start)),
			Remaining: NewSpan(ev.End.Sub(now)),
			Total:     NewSpan(total),
			Ongoing:   &Ongoing{},
		}
	default:
		return ended(ev, now, total)
	}
}

func evaluateWindowed(ev Event, now time.Time) State {
	total := TotalScheduled(ev)
	if now.Before(ev.Start) {
		return upcoming(ev, now, total)
	}
	if now.After(ev.End) {
		return ended(ev, now, total)
	}

	elapsed := Elapsed(ev, now)
	st := State{
		Elapsed:   NewSpan(elapsed),
		Remaining: NewSpan(max(0, total-elapsed)),
		Total:     NewSpan(total),
	}

	winStart, winEnd := ev.Window.For(now)
	if !now.Before(winStart) && now.Before(winEnd) {
		today := NewSpan(winEnd.Sub(now))
		st.Phase = PhaseOngoing
		st.Ongoing = &Ongoing{InSession: true, TodayRemaining: &today}
		return st
	}

	next, day := winStart, SessionToday
	if !now.Before(winStart) {
		next, _ = ev.Window.For(now.AddDate(0, 0, 1))
		day = SessionTomorrow
	}
	st.Phase = PhasePaused
	st.Paused = &Paused{
		NextSessionIn: NewSpan(next.Sub(now)),
		NextSession:   day,
		NextSessionAt: next,
	}
	return st
}

func upcoming(ev Event, now time.Time, total time.Duration) State {
	return State{
		Phase:     PhaseUpcoming,
		Remaining: NewSpan(total),
		Total:     NewSpan(total),
		Upcoming:  &Upcoming{StartsIn: NewSpan(ev.Start.Sub(now))},
	}
}

func ended(ev Event, now time.Time, total time.Duration) State {
	return State{
		Phase:   PhaseEnded,
		Elapsed: NewSpan(total),
		Total:   NewSpan(total),
		Ended:   &Ended{EndedAgo: NewSpan(now.Sub(ev.End))},
	}
}

package cli

import (
	"context"
	"io"
	"time"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/temporal"
)

// State evaluates one event on this machine and prints the result.
type State struct {
	Event temporal.Event
	Title string
	// At fixes the evaluation instant. Zero means now.
	At time.Time
	// Watch re-evaluates every Interval until the event is over or ctx is
	// done.
	Watch    bool
	Interval time.Duration
	Now      func() time.Time
	Out      io.Writer
}

// Do runs the evaluation.
func (s *State) Do(ctx context.Context) error {
	now := s.Now
	if now == nil {
		now = time.Now
	}

	if !s.Watch {
		at := s.At
		if at.IsZero() {
			at = now()
		}
		st, err := temporal.Evaluate(s.Event, at)
		if err != nil {
			return err
		}
		renderState(s.Out, s.Title, st)
		return nil
	}

	interval := s.Interval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		at := now()
		st, err := temporal.Evaluate(s.Event, at)
		if err != nil {
			return err
		}
		renderTick(s.Out, at, st)
		if st.Phase == temporal.PhaseEnded || st.Phase == temporal.PhaseCompleted {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

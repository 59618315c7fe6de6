package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/attendance"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/client"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/wallclock"
)

// Pending prints the session days of an event still waiting for a mark.
type Pending struct {
	Client  *client.Client
	EventID string
	Out     io.Writer
}

func (p *Pending) Do(ctx context.Context) error {
	dates, err := p.Client.PendingSessions(ctx, p.EventID)
	if err != nil {
		return err
	}
	if len(dates) == 0 {
		_, _ = fmt.Fprintln(p.Out, "No pending sessions.")
		return nil
	}
	for _, d := range dates {
		_, _ = fmt.Fprintln(p.Out, d)
	}
	return nil
}

// Mark records attendance for one session day.
type Mark struct {
	Client  *client.Client
	EventID string
	Date    string
	Status  string
	Notes   *string
	Out     io.Writer
}

func (m *Mark) Do(ctx context.Context) error {
	if _, err := wallclock.ParseDateKey(m.Date, nil); err != nil {
		return err
	}
	if _, err := attendance.ParseStatus(m.Status); err != nil {
		return err
	}

	rec, err := m.Client.MarkSession(ctx, m.EventID, m.Date, m.Status, m.Notes)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(m.Out, "%s marked %s\n", rec.SessionDate, color.New(color.Bold).Sprint(rec.Status))
	return nil
}

package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/client"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/temporal"
)

// Events lists server events with their state evaluated locally.
type Events struct {
	Client *client.Client
	Loc    *time.Location
	All    bool
	Now    func() time.Time
	Out    io.Writer
}

// Do fetches and prints the events.
func (e *Events) Do(ctx context.Context) error {
	var completed *bool
	if !e.All {
		open := false
		completed = &open
	}
	events, err := e.Client.ListEvents(ctx, completed)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		_, _ = fmt.Fprintln(e.Out, "No events.")
		return nil
	}

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	at := now().In(e.Loc)

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("TITLE"), bold.Sprint("STATE"), bold.Sprint("STATUS"), bold.Sprint("PROGRESS"))

	for _, ev := range events {
		id := ev.ID
		if len(id) > 8 {
			id = id[:8]
		}
		tev, err := ev.Temporal(e.Loc)
		if err == nil {
			var st temporal.State
			if st, err = temporal.Evaluate(tev, at); err == nil {
				l := temporal.Describe(st)
				tbl.AddRow(id, ev.Title, badge(l), l.Headline, percent(l.Progress))
				continue
			}
		}
		tbl.AddRow(id, ev.Title, color.RedString("Invalid"), err.Error(), "-")
	}

	_, _ = fmt.Fprintln(e.Out, tbl)
	return nil
}

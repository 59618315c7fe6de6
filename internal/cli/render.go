package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/temporal"
)

var phaseColors = map[temporal.Phase]*color.Color{
	temporal.PhaseUpcoming:  color.New(color.FgCyan),
	temporal.PhaseOngoing:   color.New(color.FgGreen, color.Bold),
	temporal.PhasePaused:    color.New(color.FgYellow),
	temporal.PhaseEnded:     color.New(color.Faint),
	temporal.PhaseCompleted: color.New(color.FgBlue),
}

func badge(l temporal.Label) string {
	if c, ok := phaseColors[l.Phase]; ok {
		return c.Sprint(l.Badge)
	}
	return l.Badge
}

func percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// renderState prints the full breakdown of one evaluation.
func renderState(w io.Writer, title string, st temporal.State) {
	bold := color.New(color.Bold)
	l := temporal.Describe(st)

	tbl := uitable.New()
	tbl.Separator = "  "
	if title != "" {
		tbl.AddRow(bold.Sprint("Event"), title)
	}
	tbl.AddRow(bold.Sprint("State"), badge(l))
	tbl.AddRow(bold.Sprint("Status"), l.Headline)
	if l.Detail != "" {
		tbl.AddRow("", l.Detail)
	}
	tbl.AddRow(bold.Sprint("Progress"), percent(l.Progress))
	if st.Phase != temporal.PhaseCompleted {
		tbl.AddRow(bold.Sprint("Elapsed"), temporal.FormatSpan(st.Elapsed))
		tbl.AddRow(bold.Sprint("Remaining"), temporal.FormatSpan(st.Remaining))
		tbl.AddRow(bold.Sprint("Total"), temporal.FormatSpan(st.Total))
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(w, tbl)
}

// renderTick prints one line of watch output.
func renderTick(w io.Writer, at time.Time, st temporal.State) {
	l := temporal.Describe(st)
	_, _ = fmt.Fprintf(w, "%s  %s  %s  (%s)\n", at.Format("15:04:05"), badge(l), l.Headline, percent(l.Progress))
}

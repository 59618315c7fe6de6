package temporal

import (
	"fmt"
	"math"
	"strings"
)

// Label is the human-facing rendering of a State.
type Label struct {
	Phase    Phase   `json:"phase"`
	Badge    string  `json:"badge"`
	Headline string  `json:"headline"`
	Detail   string  `json:"detail,omitempty"`
	Progress float64 `json:"progress"`
}

// FormatSpan renders the two most significant units of s, e.g. "2d 3h",
// "3h 15m", "15m 20s" or "20s".
func FormatSpan(s Span) string {
	abs := func(v int) int {
		if v < 0 {
			return -v
		}
		return v
	}
	units := []struct {
		value int
		label string
	}{
		{abs(s.Days), "d"},
		{abs(s.Hours), "h"},
		{abs(s.Minutes), "m"},
		{abs(s.Seconds), "s"},
	}

	for i, u := range units {
		if u.value == 0 {
			continue
		}
		parts := []string{fmt.Sprintf("%d%s", u.value, u.label)}
		if i+1 < len(units) && units[i+1].value > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", units[i+1].value, units[i+1].label))
		}
		return strings.Join(parts, " ")
	}
	return "0s"
}

// Describe turns a state into display strings.
func Describe(s State) Label {
	l := Label{Phase: s.Phase, Progress: progress(s)}

	switch s.Phase {
	case PhaseCompleted:
		l.Badge = "Completed"
		l.Headline = "Completed"
	case PhaseUpcoming:
		l.Badge = "Upcoming"
		l.Headline = "Starts in " + FormatSpan(s.Upcoming.StartsIn)
	case PhaseOngoing:
		if s.IsInSession() && s.Ongoing.TodayRemaining != nil {
			l.Badge = "In session"
			l.Headline = FormatSpan(*s.Ongoing.TodayRemaining) + " left in today's session"
			l.Detail = overall(s)
		} else {
			l.Badge = "In progress"
			l.Headline = FormatSpan(s.Remaining) + " remaining"
			l.Detail = FormatSpan(s.Elapsed) + " elapsed"
		}
	case PhasePaused:
		l.Badge = "Paused"
		if s.Paused.NextSession == SessionTomorrow {
			l.Headline = "Next session tomorrow, in " + FormatSpan(s.Paused.NextSessionIn)
		} else {
			l.Headline = "Next session in " + FormatSpan(s.Paused.NextSessionIn)
		}
		l.Detail = overall(s)
	case PhaseEnded:
		l.Badge = "Ended"
		l.Headline = "Ended " + FormatSpan(s.Ended.EndedAgo) + " ago"
	}
	return l
}

func overall(s State) string {
	return FormatSpan(s.Remaining) + " of " + FormatSpan(s.Total) + " remaining overall"
}

func progress(s State) float64 {
	if s.Phase == PhaseCompleted {
		return 100
	}
	total := s.Elapsed.TotalMs + s.Remaining.TotalMs
	if total <= 0 {
		return 0
	}
	return math.Round(float64(s.Elapsed.TotalMs)/float64(total)*1000) / 10
}

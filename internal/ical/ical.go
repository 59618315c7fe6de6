package ical

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/model"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/temporal"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/wallclock"
)

const productID = "-//scheduler-assistant//events//EN"

// Export renders events as an iCalendar document. A daily-window event is
// written as its first session repeated daily for every session day.
func Export(events []model.Event, loc *time.Location, stamp time.Time) string {
	if loc == nil {
		loc = time.Local
	}
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)

	for i := range events {
		ev := &events[i]
		tev, err := ev.Temporal(loc)
		if err != nil {
			log.Printf("ical: skipping event %s: %v", ev.ID, err)
			continue
		}

		vevent := cal.AddEvent(ev.ID)
		vevent.SetDtStampTime(stamp)
		vevent.SetSummary(ev.Title)
		if ev.Description != nil {
			vevent.SetDescription(*ev.Description)
		}
		vevent.SetProperty(ics.ComponentPropertyCategories, strings.ToUpper(string(ev.Category)))
		vevent.SetProperty(ics.ComponentPropertyPriority, priorityValue(ev.Priority))
		if ev.IsCompleted {
			vevent.SetProperty(ics.ComponentPropertyStatus, "CONFIRMED")
		}

		if tev.Window == nil {
			vevent.SetStartAt(tev.Start)
			vevent.SetEndAt(tev.End)
			continue
		}

		firstStart, firstEnd := tev.Window.For(tev.Start)
		vevent.SetStartAt(firstStart)
		vevent.SetEndAt(firstEnd)
		vevent.AddRrule(fmt.Sprintf("FREQ=DAILY;COUNT=%d", tev.TotalDays()))
	}
	return cal.Serialize()
}

// Imported is one VEVENT translated into an event ready to store.
type Imported struct {
	Event model.Event
	UID   string
}

// ImportError describes a VEVENT that could not be translated.
type ImportError struct {
	Index int    `json:"index"`
	UID   string `json:"uid,omitempty"`
	Error string `json:"error"`
}

// Parse reads an iCalendar document. Instants are converted to loc. A
// VEVENT with RRULE:FREQ=DAILY;COUNT=n becomes a daily-window event spanning
// n days.
func Parse(r io.Reader, loc *time.Location) ([]Imported, []ImportError, error) {
	if loc == nil {
		loc = time.Local
	}
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse calendar: %w", err)
	}

	var (
		out  []Imported
		errs []ImportError
	)
	for i, ve := range cal.Events() {
		imp, err := translate(ve, loc)
		if err != nil {
			uid := ""
			if p := ve.GetProperty(ics.ComponentPropertyUniqueId); p != nil {
				uid = p.Value
			}
			errs = append(errs, ImportError{Index: i, UID: uid, Error: err.Error()})
			continue
		}
		out = append(out, imp)
	}
	return out, errs, nil
}

func translate(ve *ics.VEvent, loc *time.Location) (Imported, error) {
	var imp Imported
	if p := ve.GetProperty(ics.ComponentPropertyUniqueId); p != nil {
		imp.UID = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return imp, fmt.Errorf("invalid DTSTART: %w", err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return imp, fmt.Errorf("invalid DTEND: %w", err)
	}
	start, end = start.In(loc), end.In(loc)
	if !end.After(start) {
		return imp, errors.New("End time must be after start time")
	}

	ev := model.Event{
		Title:      "Untitled",
		StartDate:  start,
		EndDate:    end,
		Category:   model.CategoryPersonal,
		Priority:   model.PriorityMedium,
		TimingMode: model.TimingSpecific,
		Resolution: model.ResolutionPending,
	}
	if p := ve.GetProperty(ics.ComponentPropertySummary); p != nil && p.Value != "" {
		if len(p.Value) > 255 {
			return imp, errors.New("Title must be between 1 and 255 characters")
		}
		ev.Title = p.Value
	}
	if p := ve.GetProperty(ics.ComponentPropertyDescription); p != nil && p.Value != "" {
		if len(p.Value) > 1000 {
			return imp, errors.New("Description must be at most 1000 characters")
		}
		desc := p.Value
		ev.Description = &desc
	}
	if p := ve.GetProperty(ics.ComponentPropertyCategories); p != nil {
		if c, ok := parseCategory(p.Value); ok {
			ev.Category = c
		}
	}

	if p := ve.GetProperty(ics.ComponentPropertyRrule); p != nil {
		days, err := dailyCount(p.Value)
		if err != nil {
			return imp, err
		}
		if days > 1 && wallclock.DaysBetween(start, end) == 0 {
			daily := wallclock.Clock{Hour: start.Hour(), Minute: start.Minute()}.String()
			until := wallclock.Clock{Hour: end.Hour(), Minute: end.Minute()}.String()
			if _, err := temporal.WindowFromPair(&daily, &until); err != nil {
				return imp, err
			}
			ev.DailyStartTime = &daily
			ev.DailyEndTime = &until
			ev.EndDate = end.AddDate(0, 0, days-1)
			ev.IsRecurring = true
		}
	}

	imp.Event = ev
	return imp, nil
}

// dailyCount accepts only the FREQ=DAILY;COUNT=n shape this service writes.
func dailyCount(rule string) (int, error) {
	var freq string
	count := 0
	for _, part := range strings.Split(rule, ";") {
		k, v, _ := strings.Cut(part, "=")
		switch strings.ToUpper(k) {
		case "FREQ":
			freq = strings.ToUpper(v)
		case "COUNT":
			if _, err := fmt.Sscanf(v, "%d", &count); err != nil {
				return 0, fmt.Errorf("invalid RRULE count %q", v)
			}
		}
	}
	if freq != "DAILY" || count <= 0 {
		return 0, fmt.Errorf("unsupported recurrence %q", rule)
	}
	return count, nil
}

func parseCategory(v string) (model.Category, bool) {
	c := model.Category(strings.ToLower(strings.TrimSpace(v)))
	switch c {
	case model.CategoryWork, model.CategoryPersonal, model.CategoryHealth,
		model.CategoryLearning, model.CategoryFinance, model.CategorySocial:
		return c, true
	}
	return "", false
}

func priorityValue(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "1"
	case model.PriorityLow:
		return "9"
	default:
		return "5"
	}
}

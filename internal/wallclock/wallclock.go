package wallclock

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layout is the offset-free representation used on the wire.
const Layout = "2006-01-02T15:04:05"

// DateLayout is the calendar-day key format used for session dates.
const DateLayout = "2006-01-02"

var (
	clockRe = regexp.MustCompile(`^(\d{2}):(\d{2})$`)

	naiveLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		DateLayout,
	}

	offsetLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04Z07:00",
		"2006-01-02T15:04:05.999999999Z0700",
		"2006-01-02 15:04:05.999999999Z07:00",
	}
)

// FormatError reports a string that is not a recognised time representation.
type FormatError struct {
	Input  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid time format %q: %s", e.Input, e.Reason)
}

// ToLocal interprets raw as wall-clock digits in loc.
//
// A value without an offset marker is taken digit for digit. A value with an
// offset marker ("Z", "+05:30", ...) is parsed as a real instant and its UTC
// digits are then re-read as wall-clock fields in loc, so the stored digits
// are what gets displayed regardless of the process timezone.
func ToLocal(raw string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, &FormatError{Input: raw, Reason: "empty value"}
	}

	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}

	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Reproject(t.UTC(), loc), nil
		}
	}

	return time.Time{}, &FormatError{Input: raw, Reason: "expected YYYY-MM-DD[THH:MM[:SS]] with optional offset"}
}

// Reproject keeps the wall-clock digits of t and rebuilds them in loc.
func Reproject(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// Format renders t as offset-free wall-clock digits in loc.
func Format(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(Layout)
}

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses a strict "HH:MM" string.
func ParseClock(hhmm string) (Clock, error) {
	m := clockRe.FindStringSubmatch(hhmm)
	if m == nil {
		return Clock{}, &FormatError{Input: hhmm, Reason: "expected HH:MM"}
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	if h > 23 {
		return Clock{}, &FormatError{Input: hhmm, Reason: "hour out of range"}
	}
	if mm > 59 {
		return Clock{}, &FormatError{Input: hhmm, Reason: "minute out of range"}
	}
	return Clock{Hour: h, Minute: mm}, nil
}

// MinutesSinceMidnight returns H*60+M for an "HH:MM" string.
func MinutesSinceMidnight(hhmm string) (int, error) {
	c, err := ParseClock(hhmm)
	if err != nil {
		return 0, err
	}
	return c.Minutes(), nil
}

// Minutes returns the number of minutes since midnight.
func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

// On returns the instant at which c occurs on day's calendar date, in day's location.
func (c Clock) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Date truncates t to midnight of its calendar day in t's location.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween counts whole calendar days from a's date to b's date.
// Dates are compared by their digits so DST transitions never shift the count.
func DaysBetween(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da) / (24 * time.Hour))
}

// DateKey renders the calendar day of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateKey parses a YYYY-MM-DD session date in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(key), loc)
	if err != nil {
		return time.Time{}, &FormatError{Input: key, Reason: "expected YYYY-MM-DD"}
	}
	return t, nil
}

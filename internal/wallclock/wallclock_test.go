package wallclock

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToLocal(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	testCases := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "Naive seconds", raw: "2026-01-08T09:00:00", expected: "2026-01-08T09:00:00"},
		{name: "Naive minutes", raw: "2026-01-08T09:30", expected: "2026-01-08T09:30:00"},
		{name: "Naive space separator", raw: "2026-01-08 17:45:10", expected: "2026-01-08T17:45:10"},
		{name: "Naive fraction", raw: "2026-01-08T09:00:00.123456", expected: "2026-01-08T09:00:00"},
		{name: "Date only", raw: "2026-01-08", expected: "2026-01-08T00:00:00"},
		{name: "UTC marker keeps digits", raw: "2026-01-08T09:00:00Z", expected: "2026-01-08T09:00:00"},
		{name: "UTC marker without seconds", raw: "2026-01-08T09:00Z", expected: "2026-01-08T09:00:00"},
		{name: "Offset uses UTC digits", raw: "2026-01-08T09:00:00+05:30", expected: "2026-01-08T03:30:00"},
		{name: "Compact offset", raw: "2026-01-08T09:00:00-0100", expected: "2026-01-08T10:00:00"},
	}

	for _, loc := range []*time.Location{time.UTC, tokyo, newYork} {
		for _, tc := range testCases {
			t.Run(loc.String()+"/"+tc.name, func(t *testing.T) {
				got, err := ToLocal(tc.raw, loc)
				require.NoError(t, err)
				assert.Equal(t, loc, got.Location())
				assert.Equal(t, tc.expected, got.Format(Layout))
			})
		}
	}
}

func TestToLocal_RoundTripKeepsDigits(t *testing.T) {
	for _, name := range []string{"UTC", "Asia/Kolkata", "America/Los_Angeles", "Pacific/Chatham"} {
		loc, err := time.LoadLocation(name)
		require.NoError(t, err)

		got, err := ToLocal("2026-03-29T02:30:00", loc)
		require.NoError(t, err)
		assert.Equal(t, "2026-03-29T02:30:00", Format(got, loc), name)
	}
}

func TestToLocal_Invalid(t *testing.T) {
	for _, raw := range []string{"", "tomorrow", "2026-13-01T09:00", "08/01/2026 09:00"} {
		_, err := ToLocal(raw, time.UTC)
		var fe *FormatError
		assert.True(t, errors.As(err, &fe), "expected FormatError for %q", raw)
	}
}

func TestMinutesSinceMidnight(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  int
		expectErr bool
	}{
		{name: "Midnight", input: "00:00", expected: 0},
		{name: "Morning", input: "09:00", expected: 540},
		{name: "Last minute", input: "23:59", expected: 1439},
		{name: "Hour out of range", input: "25:00", expectErr: true},
		{name: "Minute out of range", input: "10:60", expectErr: true},
		{name: "Missing pad", input: "9:00", expectErr: true},
		{name: "Seconds present", input: "09:00:00", expectErr: true},
		{name: "Empty", input: "", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MinutesSinceMidnight(tc.input)
			if tc.expectErr {
				var fe *FormatError
				assert.True(t, errors.As(err, &fe))
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestDaysBetween_AcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	require.NoError(t, err)

	a := time.Date(2026, 3, 28, 23, 0, 0, 0, loc)
	b := time.Date(2026, 3, 30, 0, 30, 0, 0, loc)
	assert.Equal(t, 2, DaysBetween(a, b))
	assert.Equal(t, -2, DaysBetween(b, a))
	assert.Equal(t, 0, DaysBetween(a, a.Add(30*time.Minute)))
}

func TestClockOn(t *testing.T) {
	day := time.Date(2026, 1, 9, 20, 15, 0, 0, time.UTC)
	c, err := ParseClock("09:05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 9, 9, 5, 0, 0, time.UTC), c.On(day))
	assert.Equal(t, "09:05", c.String())
}

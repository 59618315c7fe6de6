package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/temporal"
)

func TestClient(t *testing.T) {
	var patched map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/events":
			assert.Equal(t, "false", r.URL.Query().Get("completed"))
			_, _ = w.Write([]byte(`[{"id":"e1","title":"Study","start_date":"2026-01-08T09:00:00","end_date":"2026-01-10T17:00:00","daily_start_time":"09:00","daily_end_time":"17:00"}]`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/events/e1/sessions/pending":
			_, _ = w.Write([]byte(`{"event_id":"e1","pending_dates":["2026-01-08"]}`))
		case r.Method == http.MethodPatch && r.URL.Path == "/api/events/e1/sessions/2026-01-08":
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&patched))
			_, _ = w.Write([]byte(`{"id":1,"event_id":"e1","session_date":"2026-01-08","status":"attended","notes":null}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Event not found"}`))
		}
	}))
	defer server.Close()

	c := New(server.URL+"/", nil)
	ctx := context.Background()

	incomplete := false
	events, err := c.ListEvents(ctx, &incomplete)
	require.NoError(t, err)
	require.Len(t, events, 1)

	tev, err := events[0].Temporal(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 8, 9, 0, 0, 0, time.UTC), tev.Start)
	require.NotNil(t, tev.Window)
	assert.Equal(t, 3, tev.TotalDays())

	pending, err := c.PendingSessions(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-08"}, pending)

	rec, err := c.MarkSession(ctx, "e1", "2026-01-08", "attended", nil)
	require.NoError(t, err)
	assert.Equal(t, "attended", rec.Status)
	assert.Equal(t, map[string]any{"status": "attended"}, patched)

	_, err = c.GetEvent(ctx, "missing")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Event not found", apiErr.Message)
}

func TestEventTemporal_Invalid(t *testing.T) {
	start := "09:00"
	ev := Event{StartDate: "2026-01-08T09:00", EndDate: "2026-01-08T10:00", DailyStartTime: &start}
	_, err := ev.Temporal(time.UTC)
	var iv *temporal.InvariantViolation
	assert.True(t, errors.As(err, &iv))

	ev = Event{StartDate: "soon", EndDate: "2026-01-08T10:00"}
	_, err = ev.Temporal(time.UTC)
	assert.Error(t, err)
}

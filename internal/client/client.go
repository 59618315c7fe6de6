// Package client talks to the scheduler HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/temporal"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/wallclock"
)

// Event mirrors the API's event representation.
type Event struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Description    *string `json:"description"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	Category       string  `json:"category"`
	Priority       string  `json:"priority"`
	IsCompleted    bool    `json:"is_completed"`
	Resolution     string  `json:"resolution"`
	DailyStartTime *string `json:"daily_start_time"`
	DailyEndTime   *string `json:"daily_end_time"`
}

// Temporal converts the event into the engine's input with its wall-clock
// times read in loc.
func (e Event) Temporal(loc *time.Location) (temporal.Event, error) {
	start, err := wallclock.ToLocal(e.StartDate, loc)
	if err != nil {
		return temporal.Event{}, err
	}
	end, err := wallclock.ToLocal(e.EndDate, loc)
	if err != nil {
		return temporal.Event{}, err
	}
	w, err := temporal.WindowFromPair(e.DailyStartTime, e.DailyEndTime)
	if err != nil {
		return temporal.Event{}, err
	}
	return temporal.Event{Start: start, End: end, Completed: e.IsCompleted, Window: w}, nil
}

// Session is one attendance ledger entry.
type Session struct {
	ID          int64   `json:"id"`
	EventID     string  `json:"event_id"`
	SessionDate string  `json:"session_date"`
	Status      string  `json:"status"`
	Notes       *string `json:"notes"`
}

// APIError is a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Client is a small JSON client for the scheduler API.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for baseURL. A nil httpClient uses a client with a
// 10 second timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// ListEvents returns events ordered by start. completed filters on the
// completion flag when non-nil.
func (c *Client) ListEvents(ctx context.Context, completed *bool) ([]Event, error) {
	q := url.Values{}
	if completed != nil {
		q.Set("completed", fmt.Sprint(*completed))
	}
	var out []Event
	err := c.do(ctx, http.MethodGet, "/api/events", q, nil, &out)
	return out, err
}

func (c *Client) GetEvent(ctx context.Context, id string) (*Event, error) {
	var out Event
	if err := c.do(ctx, http.MethodGet, "/api/events/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PendingSessions lists closed session days with no attendance record.
func (c *Client) PendingSessions(ctx context.Context, id string) ([]string, error) {
	var out struct {
		PendingDates []string `json:"pending_dates"`
	}
	err := c.do(ctx, http.MethodGet, "/api/events/"+url.PathEscape(id)+"/sessions/pending", nil, nil, &out)
	return out.PendingDates, err
}

// MarkSession records status for one session day. Existing notes are kept
// when notes is nil.
func (c *Client) MarkSession(ctx context.Context, id, date, status string, notes *string) (*Session, error) {
	body := map[string]any{"status": status}
	if notes != nil {
		body["notes"] = *notes
	}
	var out Session
	path := "/api/events/" + url.PathEscape(id) + "/sessions/" + url.PathEscape(date)
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		r = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, r)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

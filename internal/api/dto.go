package api

import (
	"bytes"
	"encoding/json"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/model"
)

type eventResponse struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Description       *string         `json:"description"`
	StartDate         string          `json:"start_date"`
	EndDate           string          `json:"end_date"`
	Category          string          `json:"category"`
	Priority          string          `json:"priority"`
	IsRecurring       bool            `json:"is_recurring"`
	IsCompleted       bool            `json:"is_completed"`
	Subtasks          []model.Subtask `json:"subtasks"`
	TimingMode        string          `json:"timing_mode"`
	Resolution        string          `json:"resolution"`
	RescheduleCount   int             `json:"reschedule_count"`
	OriginalStartDate *string         `json:"original_start_date"`
	DailyStartTime    *string         `json:"daily_start_time"`
	DailyEndTime      *string         `json:"daily_end_time"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
}

func (h *Handler) toEventResponse(ev *model.Event) eventResponse {
	resp := eventResponse{
		ID:              ev.ID,
		Title:           ev.Title,
		Description:     ev.Description,
		StartDate:       h.formatTime(ev.StartDate),
		EndDate:         h.formatTime(ev.EndDate),
		Category:        string(ev.Category),
		Priority:        string(ev.Priority),
		IsRecurring:     ev.IsRecurring,
		IsCompleted:     ev.IsCompleted,
		Subtasks:        ev.Subtasks,
		TimingMode:      string(ev.TimingMode),
		Resolution:      string(ev.Resolution),
		RescheduleCount: ev.RescheduleCount,
		DailyStartTime:  ev.DailyStartTime,
		DailyEndTime:    ev.DailyEndTime,
		CreatedAt:       h.formatTime(ev.CreatedAt),
		UpdatedAt:       h.formatTime(ev.UpdatedAt),
	}
	if resp.Subtasks == nil {
		resp.Subtasks = []model.Subtask{}
	}
	if ev.OriginalStartDate != nil {
		s := h.formatTime(*ev.OriginalStartDate)
		resp.OriginalStartDate = &s
	}
	return resp
}

func (h *Handler) toEventResponses(events []model.Event) []eventResponse {
	out := make([]eventResponse, 0, len(events))
	for i := range events {
		out = append(out, h.toEventResponse(&events[i]))
	}
	return out
}

// nullableString tells an absent key apart from an explicit null.
type nullableString struct {
	Set   bool
	Value *string
}

func (n *nullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(b, []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

type sessionResponse struct {
	ID          int64   `json:"id"`
	EventID     string  `json:"event_id"`
	SessionDate string  `json:"session_date"`
	Status      string  `json:"status"`
	Notes       *string `json:"notes"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func (h *Handler) toSessionResponse(s *model.SessionAttendance) sessionResponse {
	return sessionResponse{
		ID:          s.ID,
		EventID:     s.EventID,
		SessionDate: s.SessionDate,
		Status:      s.Status,
		Notes:       s.Notes,
		CreatedAt:   h.formatTime(s.CreatedAt),
		UpdatedAt:   h.formatTime(s.UpdatedAt),
	}
}

type pomodoroResponse struct {
	ID        string `json:"id"`
	Mode      string `json:"mode"`
	Duration  int    `json:"duration"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
}

func (h *Handler) toPomodoroResponse(p *model.PomodoroSession) pomodoroResponse {
	return pomodoroResponse{
		ID:        p.ID,
		Mode:      p.Mode,
		Duration:  p.Duration,
		Completed: p.Completed,
		CreatedAt: h.formatTime(p.CreatedAt),
	}
}

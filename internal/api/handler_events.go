package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/model"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/realtime"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/store"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/temporal"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/wallclock"
)

// eventInput is the transport-neutral shape shared by create and import.
type eventInput struct {
	Title          string
	Description    *string
	StartDate      string
	EndDate        string
	Category       string
	Priority       string
	IsRecurring    bool
	Subtasks       []model.Subtask
	TimingMode     string
	DailyStartTime *string
	DailyEndTime   *string
}

type createEventRequest struct {
	Title          string          `json:"title" binding:"required,min=1,max=255"`
	Description    *string         `json:"description" binding:"omitempty,max=1000"`
	StartDate      string          `json:"start_date" binding:"required"`
	EndDate        string          `json:"end_date" binding:"required"`
	Category       string          `json:"category" binding:"omitempty,oneof=work personal health learning finance social"`
	Priority       string          `json:"priority" binding:"omitempty,oneof=high medium low"`
	IsRecurring    bool            `json:"is_recurring"`
	Subtasks       []model.Subtask `json:"subtasks"`
	TimingMode     string          `json:"timing_mode" binding:"omitempty,oneof=specific anytime deadline"`
	DailyStartTime *string         `json:"daily_start_time"`
	DailyEndTime   *string         `json:"daily_end_time"`
}

type updateEventRequest struct {
	Title          *string          `json:"title" binding:"omitempty,min=1,max=255"`
	Description    nullableString   `json:"description"`
	StartDate      *string          `json:"start_date"`
	EndDate        *string          `json:"end_date"`
	Category       *string          `json:"category" binding:"omitempty,oneof=work personal health learning finance social"`
	Priority       *string          `json:"priority" binding:"omitempty,oneof=high medium low"`
	IsRecurring    *bool            `json:"is_recurring"`
	IsCompleted    *bool            `json:"is_completed"`
	Subtasks       *[]model.Subtask `json:"subtasks"`
	TimingMode     *string          `json:"timing_mode" binding:"omitempty,oneof=specific anytime deadline"`
	Resolution     *string          `json:"resolution" binding:"omitempty,oneof=pending completed missed rescheduled"`
	DailyStartTime nullableString   `json:"daily_start_time"`
	DailyEndTime   nullableString   `json:"daily_end_time"`
}

// newEvent validates in and builds an unsaved event. rejectPast refuses
// starts before today's midnight.
func (h *Handler) newEvent(in eventInput, rejectPast bool) (*model.Event, error) {
	if in.Title == "" || len(in.Title) > 255 {
		return nil, badRequest("Title must be between 1 and 255 characters")
	}
	if in.Description != nil && len(*in.Description) > 1000 {
		return nil, badRequest("Description must be at most 1000 characters")
	}
	start, err := h.parseTime(in.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := h.parseTime(in.EndDate)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, badRequest("End time must be after start time")
	}
	if rejectPast && start.Before(wallclock.Date(h.now().In(h.loc))) {
		return nil, badRequest("Cannot schedule events in the past")
	}
	if _, err := temporal.WindowFromPair(in.DailyStartTime, in.DailyEndTime); err != nil {
		return nil, err
	}

	ev := &model.Event{
		Title:          in.Title,
		Description:    in.Description,
		StartDate:      start,
		EndDate:        end,
		Category:       model.Category(orDefault(in.Category, string(model.CategoryWork))),
		Priority:       model.Priority(orDefault(in.Priority, string(model.PriorityMedium))),
		IsRecurring:    in.IsRecurring,
		Subtasks:       in.Subtasks,
		TimingMode:     model.TimingMode(orDefault(in.TimingMode, string(model.TimingSpecific))),
		Resolution:     model.ResolutionPending,
		DailyStartTime: in.DailyStartTime,
		DailyEndTime:   in.DailyEndTime,
	}
	if ev.Subtasks == nil {
		ev.Subtasks = []model.Subtask{}
	}
	return ev, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// ListEvents handles GET /api/events.
func (h *Handler) ListEvents(c *gin.Context) {
	var f store.EventFilter

	if raw := c.Query("start_date"); raw != "" {
		t, err := h.parseTime(raw)
		if err != nil {
			abortUnprocessable(c, err)
			return
		}
		f.StartFrom = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := h.parseTime(raw)
		if err != nil {
			abortUnprocessable(c, err)
			return
		}
		f.EndUntil = &t
	}
	f.Category = c.Query("category")
	if raw := c.Query("completed"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			abortUnprocessable(c, fmt.Errorf("invalid completed value %q", raw))
			return
		}
		f.Completed = &b
	}

	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		abortUnprocessable(c, errors.New("skip must be a non-negative integer"))
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(store.DefaultEventLimit)))
	if err != nil || limit < 1 || limit > store.MaxEventLimit {
		abortUnprocessable(c, fmt.Errorf("limit must be between 1 and %d", store.MaxEventLimit))
		return
	}
	f.Skip, f.Limit = skip, limit

	events, err := h.store.ListEvents(c.Request.Context(), f)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toEventResponses(events))
}

// GetEvent handles GET /api/events/:id.
func (h *Handler) GetEvent(c *gin.Context) {
	ev, err := h.store.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.toEventResponse(ev))
}

// CreateEvent handles POST /api/events. Overlapping events are allowed.
func (h *Handler) CreateEvent(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortUnprocessable(c, err)
		return
	}

	ev, err := h.newEvent(eventInput(req), true)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if err := h.store.CreateEvent(c.Request.Context(), ev); err != nil {
		abortWithError(c, err)
		return
	}

	resp := h.toEventResponse(ev)
	h.publish(realtime.ActionCreated, resp)
	c.JSON(http.StatusCreated, resp)
}

// UpdateEvent handles PUT /api/events/:id with partial-update semantics.
func (h *Handler) UpdateEvent(c *gin.Context) {
	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortUnprocessable(c, err)
		return
	}

	ev, err := h.store.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if err := h.applyUpdate(ev, &req); err != nil {
		abortWithError(c, err)
		return
	}
	if err := h.store.UpdateEvent(c.Request.Context(), ev); err != nil {
		abortWithError(c, err)
		return
	}

	resp := h.toEventResponse(ev)
	h.publish(realtime.ActionUpdated, resp)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) applyUpdate(ev *model.Event, req *updateEventRequest) error {
	oldStart := ev.StartDate

	if req.Title != nil {
		ev.Title = *req.Title
	}
	if req.Description.Set {
		if req.Description.Value != nil && len(*req.Description.Value) > 1000 {
			return badRequest("Description must be at most 1000 characters")
		}
		ev.Description = req.Description.Value
	}
	if req.StartDate != nil {
		t, err := h.parseTime(*req.StartDate)
		if err != nil {
			return err
		}
		ev.StartDate = t
	}
	if req.EndDate != nil {
		t, err := h.parseTime(*req.EndDate)
		if err != nil {
			return err
		}
		ev.EndDate = t
	}
	if !ev.EndDate.After(ev.StartDate) {
		return badRequest("End time must be after start time")
	}
	if req.Category != nil {
		ev.Category = model.Category(*req.Category)
	}
	if req.Priority != nil {
		ev.Priority = model.Priority(*req.Priority)
	}
	if req.IsRecurring != nil {
		ev.IsRecurring = *req.IsRecurring
	}
	if req.IsCompleted != nil {
		ev.IsCompleted = *req.IsCompleted
	}
	if req.Subtasks != nil {
		ev.Subtasks = *req.Subtasks
	}
	if req.TimingMode != nil {
		ev.TimingMode = model.TimingMode(*req.TimingMode)
	}
	if req.DailyStartTime.Set {
		ev.DailyStartTime = req.DailyStartTime.Value
	}
	if req.DailyEndTime.Set {
		ev.DailyEndTime = req.DailyEndTime.Value
	}
	if _, err := temporal.WindowFromPair(ev.DailyStartTime, ev.DailyEndTime); err != nil {
		return err
	}
	if req.Resolution != nil {
		ev.Resolution = model.Resolution(*req.Resolution)
		if ev.Resolution == model.ResolutionRescheduled && !ev.StartDate.Equal(oldStart) {
			ev.RescheduleCount++
			if ev.OriginalStartDate == nil {
				orig := oldStart
				ev.OriginalStartDate = &orig
			}
		}
	}
	return nil
}

// DeleteEvent handles DELETE /api/events/:id.
func (h *Handler) DeleteEvent(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteEvent(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}
	h.publish(realtime.ActionDeleted, gin.H{"id": id})
	c.Status(http.StatusNoContent)
}

// ToggleComplete handles PATCH /api/events/:id/toggle-complete.
func (h *Handler) ToggleComplete(c *gin.Context) {
	ev, err := h.store.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	if !ev.IsCompleted && ev.StartDate.After(h.now()) {
		abortWithError(c, badRequest("Cannot mark as complete - event hasn't started yet"))
		return
	}
	ev.IsCompleted = !ev.IsCompleted

	if err := h.store.UpdateEvent(c.Request.Context(), ev); err != nil {
		abortWithError(c, err)
		return
	}
	resp := h.toEventResponse(ev)
	h.publish(realtime.ActionUpdated, resp)
	c.JSON(http.StatusOK, resp)
}

type stateResponse struct {
	EventID string         `json:"event_id"`
	At      string         `json:"at"`
	State   temporal.State `json:"state"`
	Label   temporal.Label `json:"label"`
	// NextSessionAt is set while paused between sessions.
	NextSessionAt *string `json:"next_session_at,omitempty"`
}

// GetEventState handles GET /api/events/:id/state. The optional at query
// parameter evaluates the event at another instant.
func (h *Handler) GetEventState(c *gin.Context) {
	at := h.now().In(h.loc)
	if raw := c.Query("at"); raw != "" {
		t, err := h.parseTime(raw)
		if err != nil {
			abortUnprocessable(c, err)
			return
		}
		at = t
	}

	ev, err := h.store.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	tev, err := ev.Temporal(h.loc)
	if err != nil {
		abortWithError(c, err)
		return
	}
	st, err := temporal.Evaluate(tev, at)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp := stateResponse{
		EventID: ev.ID,
		At:      h.formatTime(at),
		State:   st,
		Label:   temporal.Describe(st),
	}
	if st.Paused != nil {
		next := h.formatTime(st.Paused.NextSessionAt)
		resp.NextSessionAt = &next
	}
	c.JSON(http.StatusOK, resp)
}


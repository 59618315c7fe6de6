package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/attendance"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/model"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/store"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/wallclock"
)

type markSessionRequest struct {
	SessionDate string  `json:"session_date" binding:"required"`
	Status      string  `json:"status" binding:"required"`
	Notes       *string `json:"notes" binding:"omitempty,max=500"`
}

type patchSessionRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes" binding:"omitempty,max=500"`
}

// ListSessions handles GET /api/events/:id/sessions.
func (h *Handler) ListSessions(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	if _, err := h.store.GetEvent(ctx, id); err != nil {
		abortWithError(c, err)
		return
	}
	records, err := h.store.GetAttendanceRecords(ctx, id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	out := make([]sessionResponse, 0, len(records))
	for i := range records {
		out = append(out, h.toSessionResponse(&records[i]))
	}
	c.JSON(http.StatusOK, out)
}

// SessionStats handles GET /api/events/:id/sessions/stats.
func (h *Handler) SessionStats(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	ev, err := h.store.GetEvent(ctx, id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	tev, err := ev.Temporal(h.loc)
	if err != nil {
		abortWithError(c, err)
		return
	}
	records, err := h.store.GetAttendanceRecords(ctx, id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, attendance.Summarize(tev, toRecords(records)))
}

func toRecords(rows []model.SessionAttendance) []attendance.Record {
	out := make([]attendance.Record, len(rows))
	for i, r := range rows {
		out[i] = attendance.Record{Date: r.SessionDate, Status: attendance.Status(r.Status), Notes: r.Notes}
	}
	return out
}

// MarkSession handles POST /api/events/:id/sessions. Notes are overwritten.
func (h *Handler) MarkSession(c *gin.Context) {
	var req markSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortUnprocessable(c, err)
		return
	}
	h.mark(c, req.SessionDate, req.Status, req.Notes, false)
}

// PatchSession handles PATCH /api/events/:id/sessions/:date. Omitted notes
// are kept.
func (h *Handler) PatchSession(c *gin.Context) {
	var req patchSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortUnprocessable(c, err)
		return
	}
	h.mark(c, c.Param("date"), req.Status, req.Notes, true)
}

func (h *Handler) mark(c *gin.Context, date, status string, notes *string, keepNotes bool) {
	day, err := wallclock.ParseDateKey(date, h.loc)
	if err != nil {
		abortUnprocessable(c, err)
		return
	}
	st, err := attendance.ParseStatus(status)
	if err != nil {
		abortUnprocessable(c, err)
		return
	}

	rec, err := h.store.MarkAttendance(c.Request.Context(), store.AttendanceMark{
		EventID:     c.Param("id"),
		SessionDate: wallclock.DateKey(day),
		Status:      st,
		Notes:       notes,
		KeepNotes:   keepNotes,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	code := http.StatusOK
	if c.Request.Method == http.MethodPost {
		code = http.StatusCreated
	}
	c.JSON(code, h.toSessionResponse(rec))
}

// PendingSessions handles GET /api/events/:id/sessions/pending.
func (h *Handler) PendingSessions(c *gin.Context) {
	id := c.Param("id")
	dates, err := h.store.GetPendingSessionDates(c.Request.Context(), id, h.now().In(h.loc))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"event_id": id, "pending_dates": dates})
}

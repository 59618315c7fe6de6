package api

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/ical"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/model"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/realtime"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/store"
)

const maxCalendarBytes = 2 << 20

// scheduleItem uses the camelCase keys of exported schedules.
type scheduleItem struct {
	Title          string          `json:"title" binding:"required,min=1,max=255"`
	Description    *string         `json:"description" binding:"omitempty,max=1000"`
	StartDate      string          `json:"startDate" binding:"required"`
	EndDate        string          `json:"endDate" binding:"required"`
	Category       string          `json:"category" binding:"omitempty,oneof=work personal health learning finance social"`
	Priority       string          `json:"priority" binding:"omitempty,oneof=high medium low"`
	IsRecurring    bool            `json:"isRecurring"`
	Subtasks       []model.Subtask `json:"subtasks"`
	TimingMode     string          `json:"timingMode" binding:"omitempty,oneof=specific anytime deadline"`
	DailyStartTime *string         `json:"dailyStartTime"`
	DailyEndTime   *string         `json:"dailyEndTime"`
}

type scheduleImportRequest struct {
	Schedule []scheduleItem `json:"schedule" binding:"required,min=1,dive"`
}

type importErrorDetail struct {
	Index int     `json:"index"`
	Title *string `json:"title,omitempty"`
	UID   string  `json:"uid,omitempty"`
	Error string  `json:"error"`
}

type importResponse struct {
	Imported      []eventResponse     `json:"imported"`
	Errors        []importErrorDetail `json:"errors"`
	TotalReceived int                 `json:"total_received"`
	TotalImported int                 `json:"total_imported"`
	TotalErrors   int                 `json:"total_errors"`
}

// ImportSchedule handles POST /api/import/schedule. Invalid items are
// reported individually and the valid ones are committed together.
func (h *Handler) ImportSchedule(c *gin.Context) {
	var req scheduleImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortUnprocessable(c, err)
		return
	}

	var (
		events []*model.Event
		errs   []importErrorDetail
	)
	for i, item := range req.Schedule {
		ev, err := h.newEvent(eventInput(item), false)
		if err != nil {
			title := item.Title
			errs = append(errs, importErrorDetail{Index: i, Title: &title, Error: err.Error()})
			continue
		}
		events = append(events, ev)
	}

	h.commitImport(c, events, errs, len(req.Schedule))
}

// ImportCalendar handles POST /api/import/ics. The calendar is read from the
// "file" form field or from the raw request body.
func (h *Handler) ImportCalendar(c *gin.Context) {
	var r io.Reader = io.LimitReader(c.Request.Body, maxCalendarBytes)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			abortUnprocessable(c, fmt.Errorf("missing calendar file: %w", err))
			return
		}
		f, err := fh.Open()
		if err != nil {
			abortWithError(c, err)
			return
		}
		defer f.Close()
		r = io.LimitReader(f, maxCalendarBytes)
	}

	imported, parseErrs, err := ical.Parse(r, h.loc)
	if err != nil {
		abortUnprocessable(c, err)
		return
	}

	events := make([]*model.Event, 0, len(imported))
	for i := range imported {
		events = append(events, &imported[i].Event)
	}
	var errs []importErrorDetail
	for _, pe := range parseErrs {
		errs = append(errs, importErrorDetail{Index: pe.Index, UID: pe.UID, Error: pe.Error})
	}

	h.commitImport(c, events, errs, len(imported)+len(parseErrs))
}

func (h *Handler) commitImport(c *gin.Context, events []*model.Event, errs []importErrorDetail, received int) {
	if len(events) > 0 {
		if err := h.store.CreateEvents(c.Request.Context(), events); err != nil {
			abortWithError(c, fmt.Errorf("failed to commit imported events: %w", err))
			return
		}
	}

	resp := importResponse{
		Imported:      make([]eventResponse, 0, len(events)),
		Errors:        errs,
		TotalReceived: received,
		TotalImported: len(events),
		TotalErrors:   len(errs),
	}
	if resp.Errors == nil {
		resp.Errors = []importErrorDetail{}
	}
	for _, ev := range events {
		resp.Imported = append(resp.Imported, h.toEventResponse(ev))
	}

	if len(events) > 0 {
		h.publish(realtime.ActionImported, gin.H{"count": len(events)})
	}
	c.JSON(http.StatusCreated, resp)
}

// ExportCalendar handles GET /api/export/events.ics.
func (h *Handler) ExportCalendar(c *gin.Context) {
	events, err := h.store.ListEvents(c.Request.Context(), store.EventFilter{Limit: store.MaxEventLimit})
	if err != nil {
		abortWithError(c, err)
		return
	}

	body := ical.Export(events, h.loc, h.now())
	c.Header("Content-Disposition", `attachment; filename="events.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

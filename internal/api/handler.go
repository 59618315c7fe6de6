package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/realtime"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/store"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/temporal"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/wallclock"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	webpush *webpush.Options
	hub     *realtime.Hub
	loc     *time.Location
	now     func() time.Time
}

// NewHandler creates a new API handler. Timestamps are read and written as
// wall-clock digits in loc.
func NewHandler(s store.Store, webpushOptions *webpush.Options, hub *realtime.Hub, loc *time.Location) *Handler {
	if loc == nil {
		loc = time.Local
	}
	return &Handler{
		store:   s,
		webpush: webpushOptions,
		hub:     hub,
		loc:     loc,
		now:     time.Now,
	}
}

func (h *Handler) publish(action string, data any) {
	if h.hub == nil {
		return
	}
	h.hub.Publish(realtime.Message{Type: realtime.TypeEventUpdate, Action: action, Data: data})
}

func (h *Handler) parseTime(raw string) (time.Time, error) {
	return wallclock.ToLocal(raw, h.loc)
}

func (h *Handler) formatTime(t time.Time) string {
	return wallclock.Format(t, h.loc)
}

// abortWithError maps domain errors onto HTTP status codes.
func abortWithError(c *gin.Context, err error) {
	var (
		fe *wallclock.FormatError
		iv *temporal.InvariantViolation
		ve *validationError
	)
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.As(err, &ve):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": ve.msg})
	case errors.As(err, &fe), errors.As(err, &iv):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.Printf("api: %s %s failed: %v", c.Request.Method, c.FullPath(), err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func abortUnprocessable(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
}

// validationError is a business-rule rejection reported as 400.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func badRequest(msg string) error { return &validationError{msg: msg} }

// Root handles GET /.
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Scheduler Assistant API", "version": "1.0.0"})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		log.Printf("health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

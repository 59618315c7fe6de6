package api

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/model"
)

const defaultPomodoroLimit = 50

type pomodoroRequest struct {
	Mode      string `json:"mode" binding:"required,oneof=work shortBreak longBreak"`
	Duration  int    `json:"duration" binding:"required,gt=0"`
	Completed bool   `json:"completed"`
}

type pomodoroStats struct {
	TotalSessions        int     `json:"total_sessions"`
	CompletedSessions    int     `json:"completed_sessions"`
	TotalWorkTime        int     `json:"total_work_time"`
	AverageSessionLength float64 `json:"average_session_length"`
}

// CreatePomodoroSession handles POST /api/pomodoro.
func (h *Handler) CreatePomodoroSession(c *gin.Context) {
	var req pomodoroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortUnprocessable(c, err)
		return
	}

	p := &model.PomodoroSession{Mode: req.Mode, Duration: req.Duration, Completed: req.Completed}
	if err := h.store.CreatePomodoroSession(c.Request.Context(), p); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.toPomodoroResponse(p))
}

// ListPomodoroSessions handles GET /api/pomodoro.
func (h *Handler) ListPomodoroSessions(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPomodoroLimit)))
	if err != nil || limit < 1 {
		abortUnprocessable(c, errors.New("limit must be a positive integer"))
		return
	}

	sessions, err := h.store.ListPomodoroSessions(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	out := make([]pomodoroResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, h.toPomodoroResponse(&sessions[i]))
	}
	c.JSON(http.StatusOK, out)
}

// PomodoroStats handles GET /api/pomodoro/stats over work sessions.
func (h *Handler) PomodoroStats(c *gin.Context) {
	sessions, err := h.store.ListPomodoroSessionsByMode(c.Request.Context(), "work")
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summarizePomodoro(sessions))
}

func summarizePomodoro(sessions []model.PomodoroSession) pomodoroStats {
	stats := pomodoroStats{TotalSessions: len(sessions)}
	seconds := 0
	for _, s := range sessions {
		if s.Completed {
			stats.CompletedSessions++
			seconds += s.Duration
		}
	}
	stats.TotalWorkTime = seconds / 60
	if stats.CompletedSessions > 0 {
		avg := float64(stats.TotalWorkTime) / float64(stats.CompletedSessions)
		stats.AverageSessionLength = math.Round(avg*10) / 10
	}
	return stats
}

package api

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const streamKeepAlive = 25 * time.Second

// Stream handles GET /api/stream, relaying hub messages as Server-Sent
// Events until the client disconnects.
func (h *Handler) Stream(c *gin.Context) {
	if h.hub == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "streaming is not available"})
		return
	}

	msgs, cancel := h.hub.Subscribe()
	defer cancel()

	keepAlive := time.NewTicker(streamKeepAlive)
	defer keepAlive.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Header("Content-Type", "text/event-stream")
	c.Writer.WriteHeader(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case msg, ok := <-msgs:
			if !ok {
				return false
			}
			c.SSEvent(msg.Type, msg)
			return true
		case t := <-keepAlive.C:
			c.SSEvent("ping", gin.H{"time": h.formatTime(t)})
			return true
		}
	})
}

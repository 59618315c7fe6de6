package mw

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	r        rate.Limit
	b        int
}

// NewIPRateLimiter creates a new IPRateLimiter.
func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		r:        r,
		b:        b,
	}
}

// GetLimiter returns the limiter for ip, creating it on first use.
func (i *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	v, ok := i.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(i.r, i.b)}
		i.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Prune drops limiters idle for longer than maxIdle.
func (i *IPRateLimiter) Prune(maxIdle time.Duration) int {
	i.mu.Lock()
	defer i.mu.Unlock()

	removed := 0
	for ip, v := range i.visitors {
		if time.Since(v.lastSeen) > maxIdle {
			delete(i.visitors, ip)
			removed++
		}
	}
	return removed
}

// RunJanitor prunes idle limiters every interval until ctx is done.
func (i *IPRateLimiter) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			i.Prune(maxIdle)
		}
	}
}

// Middleware rejects requests over the limit with 429.
func (i *IPRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !i.GetLimiter(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}

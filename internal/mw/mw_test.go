package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCache_HitAndInvalidate(t *testing.T) {
	store := cache.New(time.Minute, time.Minute)
	calls := 0

	r := gin.New()
	r.Use(InvalidateOnWrite(store))
	r.GET("/export", Cache(store, time.Minute), func(c *gin.Context) {
		calls++
		c.String(http.StatusOK, "body-%d", calls)
	})
	r.POST("/events", func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.POST("/broken", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	get := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/export", nil))
		return w
	}

	first := get()
	assert.Equal(t, "body-1", first.Body.String())
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := get()
	assert.Equal(t, "body-1", second.Body.String())
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/broken", nil))
	assert.Equal(t, "body-1", get().Body.String(), "failed writes keep the cache")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/events", nil))
	assert.Equal(t, "body-2", get().Body.String())
}

func TestRateLimiter(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 2)
	r := gin.New()
	r.Use(limiter.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "limits are per client IP")

	assert.Equal(t, 0, limiter.Prune(time.Hour))
	assert.Equal(t, 2, limiter.Prune(-time.Second))
}

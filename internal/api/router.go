package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/config"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(handler *Handler, cfg config.ServerConfig, limiter *mw.IPRateLimiter) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(ttl, 2*ttl)
	caching := mw.Cache(cacheStore, ttl)

	r.GET("/", Root)
	r.GET("/health", handler.Health)

	api := r.Group("/api")
	api.Use(limiter.Middleware(), mw.InvalidateOnWrite(cacheStore))
	{
		events := api.Group("/events")
		events.GET("", handler.ListEvents)
		events.POST("", handler.CreateEvent)
		events.GET("/:id", handler.GetEvent)
		events.PUT("/:id", handler.UpdateEvent)
		events.DELETE("/:id", handler.DeleteEvent)
		events.PATCH("/:id/toggle-complete", handler.ToggleComplete)
		events.GET("/:id/state", handler.GetEventState)

		events.GET("/:id/sessions", handler.ListSessions)
		events.POST("/:id/sessions", handler.MarkSession)
		events.GET("/:id/sessions/stats", handler.SessionStats)
		events.GET("/:id/sessions/pending", handler.PendingSessions)
		events.PATCH("/:id/sessions/:date", handler.PatchSession)

		pomodoro := api.Group("/pomodoro")
		pomodoro.GET("", handler.ListPomodoroSessions)
		pomodoro.POST("", handler.CreatePomodoroSession)
		pomodoro.GET("/stats", handler.PomodoroStats)

		api.POST("/import/schedule", handler.ImportSchedule)
		api.POST("/import/ics", handler.ImportCalendar)
		api.GET("/export/events.ics", caching, handler.ExportCalendar)

		api.GET("/stream", handler.Stream)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}

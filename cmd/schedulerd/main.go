package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"golang.org/x/time/rate"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/config"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/api"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/db"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/mw"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/notification"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/realtime"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/store"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/watcher"
)

func main() {
	logger := log.New(os.Stdout, "schedulerd ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded from %s (timezone %s)", configPath, cfg.Location)

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Printf("database initialized (%s)", cfg.Database.Driver)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	hub := realtime.NewHub(32)

	var (
		webpushOptions *webpush.Options
		dispatcher     watcher.Dispatcher
	)
	if cfg.Push.Enabled() {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, appStore, webpushOptions)
		pool.Start(ctx)
		dispatcher = pool
		logger.Printf("push notifications enabled with %d workers", cfg.WorkerPool.Size)
	} else {
		logger.Println("VAPID keys not configured; push notifications disabled")
	}

	watcherSvc := watcher.NewService(cfg, appStore, hub, dispatcher)
	go func() {
		if err := watcherSvc.Run(ctx); err != nil {
			logger.Printf("phase watcher stopped: %v", err)
		}
	}()

	limiter := mw.NewIPRateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)
	go limiter.RunJanitor(ctx, time.Minute, 10*time.Minute)

	handler := api.NewHandler(appStore, webpushOptions, hub, cfg.Location)
	router := api.NewRouter(handler, cfg.Server, limiter)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
		// Streams end when ctx is cancelled.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}

package notification

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Subscriptions is the part of the store the pool needs.
type Subscriptions interface {
	SubscriptionsForEvent(ctx context.Context, eventID string) ([]model.PushSubscription, error)
	DeleteSubscription(ctx context.Context, endpoint string) error
}

// Job asks the pool to notify every subscriber of one event.
type Job struct {
	EventID string `json:"event_id"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	Phase   string `json:"phase,omitempty"`
}

// WorkerPool manages a pool of workers for sending notifications.
type WorkerPool struct {
	size    int
	jobs    chan Job
	subs    Subscriptions
	webpush *webpush.Options
	sender  NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, subs Subscriptions, webpushOptions *webpush.Options) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan Job, size*8),
		subs:    subs,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case job := <-wp.jobs:
			wp.sendNotificationsForEvent(ctx, job)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a job. It reports false when the queue is full and the
// job was dropped.
func (wp *WorkerPool) Dispatch(job Job) bool {
	select {
	case wp.jobs <- job:
		return true
	default:
		log.Printf("Notification queue full; dropping job for event %s", job.EventID)
		return false
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Job {
	return wp.jobs
}

func (wp *WorkerPool) sendNotificationsForEvent(ctx context.Context, job Job) {
	subscriptions, err := wp.subs.SubscriptionsForEvent(ctx, job.EventID)
	if err != nil {
		log.Printf("Error fetching subscriptions for event %s: %v", job.EventID, err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	payload, err := json.Marshal(job)
	if err != nil {
		log.Printf("Error encoding notification for event %s: %v", job.EventID, err)
		return
	}

	log.Printf("Sending %d notifications for event %s", len(subscriptions), job.EventID)
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, payload)
	}
}

func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.subs.DeleteSubscription(ctx, sub.Endpoint); err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}

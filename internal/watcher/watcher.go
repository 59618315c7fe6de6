package watcher

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/config"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/model"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/notification"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/realtime"
	"github.com/abdulhakeem-dev804/scheduler-assistant-sub000/internal/temporal"
)

// EventLister is the part of the store the watcher reads.
type EventLister interface {
	ListIncompleteEvents(ctx context.Context) ([]model.Event, error)
}

// Dispatcher queues push notifications.
type Dispatcher interface {
	Dispatch(job notification.Job) bool
}

// Transition is one observed phase change.
type Transition struct {
	EventID string         `json:"event_id"`
	Title   string         `json:"title"`
	From    temporal.Phase `json:"from"`
	To      temporal.Phase `json:"to"`
	Label   temporal.Label `json:"label"`
}

// Service periodically evaluates every open event and announces phase
// changes on the hub and through web push.
type Service struct {
	cfg        *config.Config
	store      EventLister
	hub        *realtime.Hub
	dispatcher Dispatcher
	now        func() time.Time

	mu   sync.Mutex
	last map[string]temporal.Phase
}

// NewService creates a watcher. dispatcher may be nil when push is disabled.
func NewService(cfg *config.Config, store EventLister, hub *realtime.Hub, dispatcher Dispatcher) *Service {
	return &Service{
		cfg:        cfg,
		store:      store,
		hub:        hub,
		dispatcher: dispatcher,
		now:        time.Now,
		last:       make(map[string]temporal.Phase),
	}
}

// SetClock replaces the time source used by CheckOnce.
func (s *Service) SetClock(now func() time.Time) {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
}

// Run schedules CheckOnce on the configured cron expression until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	if !s.cfg.Watcher.Enabled {
		log.Println("Phase watcher is disabled. Not starting.")
		return nil
	}

	c := cron.New(cron.WithLocation(s.location()))
	if _, err := c.AddFunc(s.cfg.Watcher.Schedule, func() { s.CheckOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid watcher schedule %q: %w", s.cfg.Watcher.Schedule, err)
	}

	log.Printf("Starting phase watcher on schedule %q", s.cfg.Watcher.Schedule)
	s.CheckOnce(ctx)
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	log.Println("Phase watcher shutting down.")
	return nil
}

// CheckOnce evaluates all incomplete events and returns the transitions
// seen since the previous check. An event's first observation only records
// its phase.
func (s *Service) CheckOnce(ctx context.Context) []Transition {
	events, err := s.store.ListIncompleteEvents(ctx)
	if err != nil {
		log.Printf("Error listing events for phase check: %v", err)
		return nil
	}

	seen := make(map[string]bool, len(events))
	var transitions []Transition

	s.mu.Lock()
	now := s.now().In(s.location())
	for i := range events {
		ev := &events[i]
		seen[ev.ID] = true

		tev, err := ev.Temporal(s.location())
		if err != nil {
			log.Printf("Skipping event %s: %v", ev.ID, err)
			continue
		}
		st, err := temporal.Evaluate(tev, now)
		if err != nil {
			log.Printf("Skipping event %s: %v", ev.ID, err)
			continue
		}

		prev, known := s.last[ev.ID]
		s.last[ev.ID] = st.Phase
		if !known || prev == st.Phase {
			continue
		}
		transitions = append(transitions, Transition{
			EventID: ev.ID,
			Title:   ev.Title,
			From:    prev,
			To:      st.Phase,
			Label:   temporal.Describe(st),
		})
	}
	for id := range s.last {
		if !seen[id] {
			delete(s.last, id)
		}
	}
	s.mu.Unlock()

	for _, tr := range transitions {
		s.announce(tr)
	}
	return transitions
}

func (s *Service) announce(tr Transition) {
	log.Printf("Event %s moved from %s to %s", tr.EventID, tr.From, tr.To)
	if s.hub != nil {
		s.hub.Publish(realtime.Message{Type: realtime.TypePhaseChanged, Data: tr})
	}
	if s.dispatcher != nil {
		s.dispatcher.Dispatch(notification.Job{
			EventID: tr.EventID,
			Title:   tr.Title,
			Body:    tr.Label.Headline,
			Phase:   string(tr.To),
		})
	}
}

func (s *Service) location() *time.Location {
	if s.cfg.Location != nil {
		return s.cfg.Location
	}
	return time.Local
}

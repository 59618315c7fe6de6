package realtime

import (
	"log"
	"sync"
)

// Message types published on the hub.
const (
	TypeEventUpdate  = "event_update"
	TypePhaseChanged = "phase_changed"
)

// Actions carried by event_update messages.
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionImported = "imported"
)

// Message is one broadcast notification.
type Message struct {
	Type   string `json:"-"`
	Action string `json:"action,omitempty"`
	Data   any    `json:"data"`
}

// Hub fans messages out to every subscriber. Publishing never blocks: a
// subscriber whose buffer is full misses the message.
type Hub struct {
	mu     sync.RWMutex
	subs   map[chan Message]struct{}
	buffer int
}

// NewHub creates a hub whose subscriber channels hold buffer messages.
func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = 16
	}
	return &Hub{subs: make(map[chan Message]struct{}), buffer: buffer}
}

// Subscribe registers a new listener. The returned cancel func unregisters
// it and closes the channel.
func (h *Hub) Subscribe() (<-chan Message, func()) {
	ch := make(chan Message, h.buffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish delivers msg to all current subscribers.
func (h *Hub) Publish(msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs {
		select {
		case ch <- msg:
		default:
			log.Printf("realtime: subscriber buffer full, dropping %s message", msg.Type)
		}
	}
}

// Subscribers returns the number of registered listeners.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

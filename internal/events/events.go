// Package events carries booking change notifications from store
// mutations to their subscribers through an in-process bus.
package events

import (
	"encoding/json"
	"sync"
	"time"
)

// Wire-level event names, as they appear on the push channel.
const (
	EventBookingCreated   = "BOOKING_CREATED"
	EventBookingUpdated   = "BOOKING_UPDATED"
	EventBookingCancelled = "BOOKING_CANCELLED"
	EventHeartbeat        = "heartbeat"
)

// Event represents a lightweight domain event with a serialized payload.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// Handler reacts to an event.
type Handler func(event *Event) error

// Bus provides in-process pub/sub for events. Handlers run
// synchronously in publish order; the caller decides the concurrency
// model.
type Bus struct {
	subscribers map[string][]Handler
	mu          sync.RWMutex
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{subscribers: make(map[string][]Handler)}
}

// Subscribe registers a handler for a given event type.
func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type. Handler errors are
// ignored here; delivery concerns belong to the handlers themselves.
func (b *Bus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *Bus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}

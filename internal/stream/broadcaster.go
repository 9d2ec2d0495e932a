// Package stream implements the server side of the notification push
// channel: a long-lived Server-Sent Events response per subscriber.
package stream

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"frontdesk/internal/events"
	"frontdesk/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Frame is one outgoing SSE event: a type label and a serialized payload.
type Frame struct {
	Event string
	Data  []byte
}

// Subscriber is a single connected stream viewer. Frames are delivered
// strictly in emission order through its buffered channel.
type Subscriber struct {
	ID     string
	frames chan Frame
	done   chan struct{}
	once   sync.Once
}

func (s *Subscriber) close() {
	s.once.Do(func() { close(s.done) })
}

// Config tunes the broadcaster.
type Config struct {
	// AllowedOrigin is echoed back on CORS headers; empty mirrors the
	// request origin so credentialed browser clients stay functional.
	AllowedOrigin string
	// Heartbeat is the keep-alive interval; zero disables the ticker
	// (the connect-time heartbeat is always sent).
	Heartbeat time.Duration
	// Buffer is the per-subscriber frame buffer size.
	Buffer int
}

// Broadcaster keeps the subscriber registry and fans frames out to it.
// Writes are fire-and-forget: a stuck subscriber is skipped with a log
// line and never blocks the caller.
type Broadcaster struct {
	cfg    Config
	logger *zerolog.Logger

	mu   sync.Mutex
	subs []*Subscriber
}

func NewBroadcaster(cfg Config, logger *zerolog.Logger) *Broadcaster {
	if cfg.Buffer <= 0 {
		cfg.Buffer = 64
	}
	return &Broadcaster{cfg: cfg, logger: logger}
}

// Subscribe registers a new subscriber and returns its handle.
func (b *Broadcaster) Subscribe() *Subscriber {
	sub := &Subscriber{
		ID:     uuid.NewString(),
		frames: make(chan Frame, b.cfg.Buffer),
		done:   make(chan struct{}),
	}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	total := len(b.subs)
	b.mu.Unlock()

	metrics.SetStreamClients(total)
	if b.logger != nil {
		b.logger.Info().Str("subscriber_id", sub.ID).Int("total_clients", total).Msg("stream client connected")
	}
	return sub
}

// Unsubscribe removes a subscriber. Idempotent: removing a subscriber
// that is already gone is a no-op.
func (b *Broadcaster) Unsubscribe(sub *Subscriber) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	removed := false
	for i := range b.subs {
		if b.subs[i] == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			removed = true
			break
		}
	}
	total := len(b.subs)
	b.mu.Unlock()

	sub.close()
	if !removed {
		return
	}

	metrics.SetStreamClients(total)
	if b.logger != nil {
		b.logger.Info().Str("subscriber_id", sub.ID).Int("total_clients", total).Msg("stream client disconnected")
	}
}

// Broadcast enqueues a frame for every subscriber registered at call
// time, in registry order. A full buffer drops the frame for that
// subscriber only.
func (b *Broadcaster) Broadcast(event string, data []byte) {
	b.mu.Lock()
	targets := append([]*Subscriber(nil), b.subs...)
	b.mu.Unlock()

	for _, sub := range targets {
		select {
		case sub.frames <- Frame{Event: event, Data: data}:
		default:
			metrics.IncDroppedFrame()
			if b.logger != nil {
				b.logger.Warn().Str("subscriber_id", sub.ID).Str("event", event).Msg("subscriber buffer full, frame dropped")
			}
		}
	}
}

// HandleEvent adapts the broadcaster to the event bus.
func (b *Broadcaster) HandleEvent(ev *events.Event) error {
	b.Broadcast(ev.Type, ev.Payload)
	return nil
}

// ClientCount returns the number of connected subscribers.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close evicts every subscriber; used on process shutdown, the only
// case where the server ends the channel itself.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	subs := b.subs
	b.subs = nil
	b.mu.Unlock()

	for _, sub := range subs {
		sub.close()
	}
	metrics.SetStreamClients(0)
}

// ServeHTTP streams frames to one subscriber until the client goes
// away. The first frame out is always a heartbeat so the client can
// confirm a live connection before any real event arrives.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	b.setCORS(w, r)

	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	b.writeFrame(w, flusher, Frame{Event: events.EventHeartbeat, Data: []byte("{}")})

	var heartbeat <-chan time.Time
	if b.cfg.Heartbeat > 0 {
		ticker := time.NewTicker(b.cfg.Heartbeat)
		defer ticker.Stop()
		heartbeat = ticker.C
	}

	for {
		select {
		case frame := <-sub.frames:
			b.writeFrame(w, flusher, frame)
		case <-heartbeat:
			b.writeFrame(w, flusher, Frame{Event: events.EventHeartbeat, Data: []byte("{}")})
		case <-sub.done:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (b *Broadcaster) setCORS(w http.ResponseWriter, r *http.Request) {
	origin := b.cfg.AllowedOrigin
	if origin == "" {
		origin = r.Header.Get("Origin")
	}
	if origin == "" {
		return
	}
	w.Header().Set("Access-Control-Allow-Origin", origin)
	w.Header().Set("Access-Control-Allow-Credentials", "true")
}

func (b *Broadcaster) writeFrame(w http.ResponseWriter, flusher http.Flusher, frame Frame) {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", frame.Event, frame.Data); err != nil {
		if b.logger != nil {
			b.logger.Warn().Err(err).Msg("stream write failed")
		}
		return
	}
	flusher.Flush()
}

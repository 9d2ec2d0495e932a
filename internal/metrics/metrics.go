package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "frontdesk",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	eventsEmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "frontdesk",
			Name:      "booking_events_total",
			Help:      "Booking notifications emitted by event type.",
		},
		[]string{"type"},
	)

	streamClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "frontdesk",
			Name:      "stream_clients",
			Help:      "Currently connected notification stream subscribers.",
		},
	)

	streamDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "frontdesk",
			Name:      "stream_frames_dropped_total",
			Help:      "Frames dropped because a subscriber buffer was full.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, eventsEmitted, streamClients, streamDropped)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncEvent increments the emitted-notification counter for a type.
func IncEvent(eventType string) {
	eventsEmitted.WithLabelValues(eventType).Inc()
}

// SetStreamClients records the current subscriber count.
func SetStreamClients(n int) {
	streamClients.Set(float64(n))
}

// IncDroppedFrame counts a frame skipped for a slow subscriber.
func IncDroppedFrame() {
	streamDropped.Inc()
}

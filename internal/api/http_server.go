package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"frontdesk/internal/auth"
	"frontdesk/internal/config"
	"frontdesk/internal/domain"
	"frontdesk/internal/events"
	"frontdesk/internal/export"
	"frontdesk/internal/filter"
	"frontdesk/internal/stream"

	"github.com/rs/zerolog"
)

// HTTPServer exposes the booking REST surface, the notification
// stream and the auth boundary endpoints.
type HTTPServer struct {
	cfg         *config.Config
	store       domain.ReservationStore
	emitter     *events.Emitter
	broadcaster *stream.Broadcaster
	auth        *auth.Service
	exporter    *export.Exporter
	filter      *filter.Engine
	server      *http.Server
	log         zerolog.Logger
}

func NewHTTPServer(
	cfg *config.Config,
	store domain.ReservationStore,
	emitter *events.Emitter,
	broadcaster *stream.Broadcaster,
	authService *auth.Service,
	exporter *export.Exporter,
	logger *zerolog.Logger,
) *HTTPServer {
	srv := &HTTPServer{
		cfg:         cfg,
		store:       store,
		emitter:     emitter,
		broadcaster: broadcaster,
		auth:        authService,
		exporter:    exporter,
	}
	if logger != nil {
		srv.log = logger.With().Str("component", "http").Logger()
	}
	srv.filter = filter.New(&srv.log)

	mux := http.NewServeMux()
	mux.HandleFunc("/bookings", srv.handleBookings)
	mux.HandleFunc("/bookings/export", srv.handleExport)
	mux.HandleFunc("/bookings/", srv.handleBookingByID)
	mux.Handle("/notifications/stream", broadcaster)
	mux.HandleFunc("/auth/login", srv.handleLogin)
	mux.HandleFunc("/auth/register", srv.handleRegister)
	mux.HandleFunc("/auth/forgot-password", srv.handleForgotPassword)
	mux.HandleFunc("/auth/reset-password", srv.handleResetPassword)
	mux.HandleFunc("/healthz", srv.handleHealth)

	limiter := newRateLimiter(cfg.RateLimit)
	handler := loggingMiddleware(&srv.log,
		corsMiddleware(cfg.Server.AllowedOrigin,
			limiter.Wrap(mux)))

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		// no WriteTimeout: it would sever long-lived notification streams
	}

	return srv
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.broadcaster.Close()
	return s.server.Shutdown(ctx)
}

// Handler returns the full middleware-wrapped handler, for tests.
func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"stream_clients": s.broadcaster.ClientCount(),
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

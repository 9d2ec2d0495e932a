package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"frontdesk/internal/api"
	"frontdesk/internal/auth"
	"frontdesk/internal/config"
	"frontdesk/internal/domain"
	"frontdesk/internal/events"
	"frontdesk/internal/export"
	"frontdesk/internal/logging"
	"frontdesk/internal/metrics"
	"frontdesk/internal/repository"
	"frontdesk/internal/store"
	"frontdesk/internal/stream"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func(c io.Closer) { _ = c.Close() })(closer)
	}

	if err := os.MkdirAll(cfg.Exports.Path, 0o755); err != nil {
		logger.Error().Err(err).Msg("create exports directory")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Register()

	reservations := initStore(cfg, &logger)
	sessions := initSessionRepository(ctx, cfg, &logger)

	bus := events.NewBus()
	emitter := events.NewEmitter(bus, &logger)
	broadcaster := stream.NewBroadcaster(stream.Config{
		AllowedOrigin: cfg.Server.AllowedOrigin,
		Heartbeat:     time.Duration(cfg.Stream.HeartbeatSeconds) * time.Second,
		Buffer:        cfg.Stream.Buffer,
	}, &logger)
	for _, eventType := range []string{
		events.EventBookingCreated,
		events.EventBookingUpdated,
		events.EventBookingCancelled,
	} {
		bus.Subscribe(eventType, broadcaster.HandleEvent)
	}

	authService := auth.NewService(cfg.Auth, sessions, &logger)
	exporter := export.New(cfg.Exports.Path, &logger)

	if cfg.Monitoring.PrometheusEnabled {
		go startMetricsServer(cfg.Monitoring.PrometheusPort, &logger)
	}

	apiServer := api.NewHTTPServer(cfg, reservations, emitter, broadcaster, authService, exporter, &logger)
	go func() {
		if err := apiServer.Start(); err != nil {
			logger.Error().Err(err).Msg("API server error")
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
		return err
	}

	logger.Info().Msg("Shutdown complete.")
	return nil
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, err
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

func initStore(cfg *config.Config, logger *zerolog.Logger) *store.Store {
	reservations := store.New(logger)
	if cfg.Seed.Path == "" {
		return reservations
	}

	if _, err := reservations.LoadSeed(cfg.Seed.Path); err != nil {
		logger.Warn().Err(err).Str("path", cfg.Seed.Path).Msg("seed file skipped")
	}
	return reservations
}

func initSessionRepository(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) domain.SessionRepository {
	ttl := time.Duration(cfg.Sessions.TTLSeconds) * time.Second
	memoryRepo := repository.NewMemorySessionRepository(ttl)

	if cfg.Sessions.Backend != "redis" {
		return memoryRepo
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, sessions start on the memory fallback")
	}
	redisRepo := repository.NewRedisSessionRepository(redisClient, ttl)
	return repository.NewFailoverSessionRepository(redisRepo, memoryRepo, logger)
}

func startMetricsServer(port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info().Str("addr", addr).Msg("Prometheus metrics listening")

	server := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}

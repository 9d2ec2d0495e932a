// Command watch tails a front-desk notification stream and prints each
// booking event as it arrives, with a running unread counter.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"frontdesk/internal/client"
	"frontdesk/internal/config"
	"frontdesk/internal/logging"
	"frontdesk/internal/worker"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	var (
		url       = flag.String("url", "http://localhost:8080/notifications/stream", "stream endpoint")
		token     = flag.String("token", "", "bearer token sent with the stream request")
		reconnect = flag.Bool("reconnect", false, "retry with backoff instead of closing on error")
		interval  = flag.Duration("interval", 5*time.Second, "how often the feed summary is printed")
	)
	flag.Parse()

	cfg := configFromEnvOrDefaults()
	logger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}
	watchLogger := logger.With().Str("component", "watch").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	feed := client.NewFeed()
	consumer := client.NewConsumer(client.Config{
		URL:       *url,
		Token:     *token,
		Reconnect: *reconnect,
		Retry: worker.RetryPolicy{
			MaxRetries:    cfg.Consumer.MaxRetries,
			InitialDelay:  time.Duration(cfg.Consumer.InitialDelayMS) * time.Millisecond,
			MaxDelay:      time.Duration(cfg.Consumer.MaxDelayMS) * time.Millisecond,
			BackoffFactor: 2,
		},
	}, feed, &watchLogger)

	done := make(chan error, 1)
	go func() {
		done <- consumer.Run(ctx)
	}()

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	seen := 0
	for {
		select {
		case <-ticker.C:
			seen = printNew(feed, seen)
		case err := <-done:
			printNew(feed, seen)
			if err != nil && ctx.Err() == nil {
				return err
			}
			return nil
		}
	}
}

// printNew reports notifications that arrived since the last tick and
// returns the new high-water mark.
func printNew(feed *client.Feed, seen int) int {
	all := feed.Notifications()
	fresh := len(all) - seen
	// newest first in the feed, so the tail of the window is oldest
	for i := fresh - 1; i >= 0; i-- {
		n := all[i]
		fmt.Printf("[%s] %s booking %d guest %q\n",
			n.Date.Format(time.RFC3339), n.Type, n.BookingID, n.User)
	}
	if fresh > 0 {
		fmt.Printf("-- %d unread --\n", feed.Unread())
	}
	return len(all)
}

// configFromEnvOrDefaults loads the shared config file when present so
// the watcher honors the same logging and retry settings as the server.
func configFromEnvOrDefaults() *config.Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}
	if cfg, err := config.Load(configPath); err == nil {
		return cfg
	}

	cfg := &config.Config{}
	cfg.App.Name = "frontdesk-watch"
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "console"
	cfg.Consumer.MaxRetries = 10
	cfg.Consumer.InitialDelayMS = 1000
	cfg.Consumer.MaxDelayMS = 30000
	return cfg
}

package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"frontdesk/internal/events"
	"frontdesk/internal/models"
	"frontdesk/internal/worker"

	"github.com/rs/zerolog"
)

// Config describes one consumer connection.
type Config struct {
	// URL of the notification stream endpoint.
	URL string
	// Token, when set, is sent as an Authorization bearer header.
	Token string
	// Reconnect enables retry-with-backoff after a stream error. Off
	// by default: the reference behavior is close-on-error.
	Reconnect bool
	// Retry tunes the backoff when Reconnect is on.
	Retry worker.RetryPolicy
}

// Consumer opens the push channel and folds incoming booking events
// into a Feed. The transport is released on every exit path.
type Consumer struct {
	cfg    Config
	feed   *Feed
	http   *http.Client
	logger *zerolog.Logger
}

func NewConsumer(cfg Config, feed *Feed, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		cfg:    cfg,
		feed:   feed,
		http:   &http.Client{}, // no client timeout: the stream is long-lived
		logger: logger,
	}
}

// Feed returns the notification state this consumer folds into.
func (c *Consumer) Feed() *Feed {
	return c.feed
}

// Run consumes the stream until the context ends. Without Reconnect a
// single transport error closes the connection and returns it; with
// Reconnect the consumer backs off and dials again.
func (c *Consumer) Run(ctx context.Context) error {
	attempt := 0
	for {
		err := c.consumeOnce(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !c.cfg.Reconnect {
			return err
		}

		attempt++
		if c.cfg.Retry.Exhausted(attempt) {
			return fmt.Errorf("stream reconnect attempts exhausted: %w", err)
		}
		if c.logger != nil {
			c.logger.Warn().Err(err).Int("attempt", attempt).Msg("stream lost, reconnecting")
		}
		if werr := c.cfg.Retry.Wait(ctx, attempt); werr != nil {
			return werr
		}
	}
}

// consumeOnce runs one connection to completion.
func (c *Consumer) consumeOnce(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("build stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("open stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream returned status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		return fmt.Errorf("unexpected stream content type %q", ct)
	}

	return c.readFrames(resp.Body)
}

// readFrames decodes the line-delimited SSE framing: an event-type
// line, a data line, a blank line.
func (c *Consumer) readFrames(body io.Reader) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)

	var event string
	var data strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case line == "":
			if event != "" || data.Len() > 0 {
				c.dispatch(event, data.String())
			}
			event = ""
			data.Reset()
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(strings.TrimSpace(strings.TrimPrefix(line, "data:")))
		case strings.HasPrefix(line, ":"):
			// comment line, keep-alive padding from intermediaries
		default:
			// id:, retry: and anything else the server may add
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	// EOF: server or network closed the channel
	return fmt.Errorf("stream closed")
}

func (c *Consumer) dispatch(event, data string) {
	switch event {
	case events.EventBookingCreated, events.EventBookingUpdated, events.EventBookingCancelled:
		var n models.Notification
		if err := json.Unmarshal([]byte(data), &n); err != nil {
			if c.logger != nil {
				c.logger.Warn().Err(err).Str("event", event).Msg("undecodable notification payload")
			}
			return
		}
		if n.Date.IsZero() {
			n.Date = time.Now()
		}
		c.feed.Push(n)
		if c.logger != nil {
			c.logger.Debug().Str("event", event).Int64("booking_id", n.BookingID).Msg("notification received")
		}
	case events.EventHeartbeat:
		// connection liveness only, nothing to fold in
	default:
		if c.logger != nil {
			c.logger.Debug().Str("event", event).Msg("ignoring unknown stream event")
		}
	}
}

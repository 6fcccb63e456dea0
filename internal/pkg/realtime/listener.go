// Package realtime turns PostgreSQL row-change notifications into in-process events.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/familyhub/portal/internal/pkg/metrics"
)

// Channel is the NOTIFY channel the row-change trigger publishes on
const Channel = "row_changes"

// Event is one row change
type Event struct {
	Table string `json:"table"`
	Type  string `json:"type"`
	ID    string `json:"id"`
}

// Handler receives events; it must not block for long
type Handler func(Event)

// ParseEvent decodes a notification payload
func ParseEvent(payload string) (Event, error) {
	var ev Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return Event{}, fmt.Errorf("invalid row change payload: %w", err)
	}
	if ev.Table == "" || ev.Type == "" {
		return Event{}, fmt.Errorf("invalid row change payload: missing table or type")
	}
	return ev, nil
}

// Listener holds one pooled connection in LISTEN mode and dispatches events to handlers by table
type Listener struct {
	pool    *pgxpool.Pool
	logger  zerolog.Logger
	backoff time.Duration

	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewListener creates a listener on the row_changes channel
func NewListener(pool *pgxpool.Pool, logger zerolog.Logger) *Listener {
	return &Listener{
		pool:     pool,
		logger:   logger,
		backoff:  2 * time.Second,
		handlers: make(map[string][]Handler),
	}
}

// Subscribe registers h for changes of table
func (l *Listener) Subscribe(table string, h Handler) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers[table] = append(l.handlers[table], h)
}

// Dispatch hands an event to the handlers of its table
func (l *Listener) Dispatch(ev Event) {
	metrics.RealtimeEvents.WithLabelValues(ev.Table, ev.Type).Inc()

	l.mu.RLock()
	handlers := l.handlers[ev.Table]
	l.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
}

// Run listens until ctx is cancelled, reconnecting after connection failures
func (l *Listener) Run(ctx context.Context) error {
	for {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return nil
		}

		l.logger.Warn().Err(err).Dur("retryIn", l.backoff).Msg("Realtime listener disconnected")
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(l.backoff):
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	pooled, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire listener connection: %w", err)
	}
	// A LISTENing connection must not go back to the pool.
	conn := pooled.Hijack()
	defer conn.Close(context.Background())

	if _, err := conn.Exec(ctx, "LISTEN "+Channel); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", Channel, err)
	}
	l.logger.Info().Str("channel", Channel).Msg("Realtime listener started")

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			return fmt.Errorf("failed waiting for notification: %w", err)
		}

		ev, err := ParseEvent(notification.Payload)
		if err != nil {
			l.logger.Warn().Err(err).Str("payload", notification.Payload).Msg("Skipping malformed notification")
			continue
		}
		l.Dispatch(ev)
	}
}

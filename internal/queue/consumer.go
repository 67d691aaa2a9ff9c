package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// LogConsumer appends one human-readable line per ReservationEvent to a log
// file, creating the directory on first use.
type LogConsumer struct {
	path   string
	logger *zap.SugaredLogger
	mu     sync.Mutex
}

func NewLogConsumer(path string, logger *zap.SugaredLogger) *LogConsumer {
	if path == "" {
		path = filepath.Join("logs", "reservations.log")
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &LogConsumer{path: path, logger: logger}
}

// Start subscribes the consumer to queueName on b.
func (c *LogConsumer) Start(ctx context.Context, b Broker, queueName string) error {
	if err := b.Subscribe(ctx, queueName, c.Handle); err != nil {
		return fmt.Errorf("start reservation log consumer: %w", err)
	}
	c.logger.Infow("reservation log consumer started", "queue", queueName, "path", c.path)
	return nil
}

// Handle is a MessageHandler. Undecodable messages are returned as errors
// so the broker can reject them.
func (c *LogConsumer) Handle(_ context.Context, body []byte) error {
	var ev ReservationEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(c.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLine(ev)); err != nil {
		return fmt.Errorf("write log: %w", err)
	}
	return nil
}

// FormatLine renders ev as a single newline-terminated log line.
func FormatLine(ev ReservationEvent) string {
	action := "Reservation event"
	switch ev.Type {
	case EventConfirmed:
		action = "Reservation confirmed"
	case EventCancelled:
		action = "Reservation cancelled"
	}

	table := "-"
	if ev.TableID != nil {
		table = fmt.Sprintf("%d", *ev.TableID)
	}

	return fmt.Sprintf("[%s] %s | reservation_id=%s | source=%s | name=%q | date=%s | time=%s | guests=%d | table=%s | amount=%.2f\n",
		ev.OccurredAt, action, ev.ReservationID, ev.Source, ev.Name, ev.Date, ev.Time, ev.Guests, table, ev.Amount)
}

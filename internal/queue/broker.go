package queue

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/goldenhour-reservation/internal/config"
)

// QueueReservationEvents carries every ReservationEvent.
const QueueReservationEvents = "reservation.events"

type Broker interface {
	Publish(ctx context.Context, queueName string, message []byte) error
	Subscribe(ctx context.Context, queueName string, handler MessageHandler) error
	Close() error
}

type MessageHandler func(ctx context.Context, message []byte) error

// NopBroker drops published messages and never delivers any.
type NopBroker struct{}

func (NopBroker) Publish(context.Context, string, []byte) error           { return nil }
func (NopBroker) Subscribe(context.Context, string, MessageHandler) error { return nil }
func (NopBroker) Close() error                                            { return nil }

// Connect opens the broker selected by cfg.Driver. An unreachable broker is
// reported as an error so the caller can fall back to NopBroker.
func Connect(cfg config.EventsConfig, logger *zap.SugaredLogger) (Broker, error) {
	switch cfg.Driver {
	case config.EventsDriverAMQP:
		b, err := NewRabbitMQBroker(RabbitMQConfig{
			URL:           cfg.AMQPURL,
			PrefetchCount: cfg.Prefetch,
			Queues:        []string{cfg.Queue},
		}, logger)
		if err != nil {
			return nil, err
		}
		return b, nil
	case config.EventsDriverNATS:
		b, err := NewNATSBroker(cfg.NATSURL, logger)
		if err != nil {
			return nil, err
		}
		return b, nil
	case config.EventsDriverNone, "":
		return NopBroker{}, nil
	}
	return nil, fmt.Errorf("unknown events driver %q", cfg.Driver)
}

// ConnectWithRetry calls Connect up to attempts times, doubling the wait
// between tries up to 30s. It gives up early when ctx is done.
func ConnectWithRetry(ctx context.Context, cfg config.EventsConfig, attempts int, logger *zap.SugaredLogger) (Broker, error) {
	if attempts < 1 {
		attempts = 1
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	backoff := time.Second
	var lastErr error
	for i := 1; i <= attempts; i++ {
		b, err := Connect(cfg, logger)
		if err == nil {
			return b, nil
		}
		lastErr = err
		if i == attempts {
			break
		}
		logger.Warnw("events broker unavailable, retrying", "driver", cfg.Driver, "attempt", i, "retry_in", backoff, "error", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
	return nil, fmt.Errorf("connect %s broker after %d attempts: %w", cfg.Driver, attempts, lastErr)
}

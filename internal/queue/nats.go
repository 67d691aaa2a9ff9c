package queue

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// NATSBroker publishes and subscribes on core NATS subjects. Queue names
// are used as subjects. Delivery is at most once.
type NATSBroker struct {
	conn   *nats.Conn
	logger *zap.SugaredLogger
}

func NewNATSBroker(url string, logger *zap.SugaredLogger) (*NATSBroker, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	conn, err := nats.Connect(url, nats.Name("goldenhour-reservation"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSBroker{conn: conn, logger: logger}, nil
}

func (b *NATSBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.conn.Publish(queueName, message)
}

// Subscribe registers handler on the subject until ctx is done.
func (b *NATSBroker) Subscribe(ctx context.Context, queueName string, handler MessageHandler) error {
	sub, err := b.conn.Subscribe(queueName, func(msg *nats.Msg) {
		if err := handler(ctx, msg.Data); err != nil {
			b.logger.Errorw("handle message failed", "subject", queueName, "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", queueName, err)
	}

	go func() {
		<-ctx.Done()
		_ = sub.Unsubscribe()
	}()
	return nil
}

func (b *NATSBroker) Close() error {
	b.conn.Close()
	return nil
}

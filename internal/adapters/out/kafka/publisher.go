package kafka

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"hyperlocal/internal/core/ports"
	"hyperlocal/internal/pkg/errs"
)

// Publisher writes order lifecycle events to a Kafka topic. Messages
// are keyed by order ID so every event of one order lands on the same
// partition and consumers see them in lifecycle order.
type Publisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

var _ ports.EventPublisher = (*Publisher)(nil)

// NewPublisher creates a publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string, logger *zap.Logger) (*Publisher, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("brokers")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
	}

	return &Publisher{writer: writer, logger: logger}, nil
}

// PublishOrderEvent marshals the event and writes it to the topic.
func (p *Publisher) PublishOrderEvent(ctx context.Context, event ports.OrderEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal order event",
			zap.String("order_id", event.OrderID),
			zap.Error(err))
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
	})
	if err != nil {
		p.logger.Error("failed to publish order event",
			zap.String("order_id", event.OrderID),
			zap.String("status", event.Status),
			zap.Error(err))
		return err
	}

	p.logger.Info("order event published",
		zap.String("order_id", event.OrderID),
		zap.String("status", event.Status))

	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

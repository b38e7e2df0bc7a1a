package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/stimlink/savings-ledger/src/internal/domain"
	"github.com/stimlink/savings-ledger/src/internal/logger"
)

const writeAttempts = 3

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes ledger events to one topic, keyed by account number so
// every event of an account lands on the same partition in order.
type Publisher struct {
	writer  messageWriter
	topic   string
	timeout time.Duration
}

// NewPublisher bounds every write by timeout, including the writer's retries.
func NewPublisher(brokers []string, topic string, timeout time.Duration) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			BatchTimeout: 10 * time.Millisecond,
			WriteTimeout: timeout,
			MaxAttempts:  writeAttempts,
			ErrorLogger:  zap.NewStdLog(logger.L().With(zap.String("component", "kafka-publisher"))),
		},
		topic:   topic,
		timeout: timeout,
	}
}

func newPublisherWithWriter(writer messageWriter, topic string, timeout time.Duration) *Publisher {
	return &Publisher{writer: writer, topic: topic, timeout: timeout}
}

func (p *Publisher) Publish(ctx context.Context, key string, event domain.LedgerEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal ledger event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.EventType)},
		},
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}

	logger.Info("kafka publisher event published", logger.Fields{
		"topic":       p.topic,
		"key":         key,
		"eventType":   event.EventType,
		"operationId": event.OperationID,
	})
	return nil
}

func (p *Publisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("close kafka publisher: %w", err)
	}
	return nil
}

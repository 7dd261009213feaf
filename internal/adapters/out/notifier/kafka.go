// Package notifier implements the notification dispatcher: a Kafka producer
// for deployments with a broker and a structured-log sink for everything else.
package notifier

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

// Header keys set on every published message.
const (
	HeaderEventType  = "event_type"
	HeaderEventID    = "event_id"
	HeaderOccurredAt = "occurred_at"
)

// MessageWriter is the part of *kafka.Writer the dispatcher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter returns a writer for topic that auto-creates it on first use.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// KafkaDispatcher publishes one message per notification keyed by aggregate id,
// so the events of one order or delivery stay ordered within a partition.
type KafkaDispatcher struct {
	writer MessageWriter
}

func NewKafkaDispatcher(writer MessageWriter) *KafkaDispatcher {
	return &KafkaDispatcher{writer: writer}
}

func (d *KafkaDispatcher) Dispatch(ctx context.Context, n ports.Notification) error {
	msg := kafka.Message{
		Key:   []byte(n.AggregateID.String()),
		Value: n.Payload,
		Time:  n.OccurredAt,
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(n.Kind.String())},
			{Key: HeaderEventID, Value: []byte(n.ID.String())},
			{Key: HeaderOccurredAt, Value: []byte(n.OccurredAt.UTC().Format(time.RFC3339Nano))},
		},
	}
	if err := d.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s %s: %w", n.Kind, n.ID, err)
	}
	return nil
}

func (d *KafkaDispatcher) Close() error {
	return d.writer.Close()
}

package notifier_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/notifier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func sample() ports.Notification {
	return ports.Notification{
		ID:          kernel.NewUUID(),
		Kind:        ports.DeliveryStatusChanged,
		AggregateID: kernel.NewUUID(),
		OccurredAt:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Payload:     json.RawMessage(`{"to":"PickedUp"}`),
	}
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestKafkaDispatcher_Dispatch(t *testing.T) {
	t.Run("should publish keyed by aggregate with headers", func(t *testing.T) {
		writer := &fakeWriter{}
		n := sample()

		require.NoError(t, notifier.NewKafkaDispatcher(writer).Dispatch(t.Context(), n))

		require.Len(t, writer.messages, 1)
		msg := writer.messages[0]
		assert.Equal(t, n.AggregateID.String(), string(msg.Key))
		assert.JSONEq(t, `{"to":"PickedUp"}`, string(msg.Value))
		assert.Equal(t, "delivery.status_changed", header(msg, notifier.HeaderEventType))
		assert.Equal(t, n.ID.String(), header(msg, notifier.HeaderEventID))
		assert.Equal(t, "2025-03-01T12:00:00Z", header(msg, notifier.HeaderOccurredAt))
	})

	t.Run("should wrap writer failures", func(t *testing.T) {
		boom := errors.New("broker unavailable")
		writer := &fakeWriter{err: boom}

		err := notifier.NewKafkaDispatcher(writer).Dispatch(t.Context(), sample())

		require.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "delivery.status_changed")
	})

	t.Run("should close the writer", func(t *testing.T) {
		writer := &fakeWriter{}

		require.NoError(t, notifier.NewKafkaDispatcher(writer).Close())

		assert.True(t, writer.closed)
	})
}

func TestLogDispatcher_Dispatch(t *testing.T) {
	var buf bytes.Buffer
	n := sample()

	require.NoError(t, notifier.NewLogDispatcher(zerolog.New(&buf)).Dispatch(t.Context(), n))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "notification", entry["message"])
	assert.Equal(t, "notifier", entry["component"])
	assert.Equal(t, "delivery.status_changed", entry["event_type"])
	assert.Equal(t, n.AggregateID.String(), entry["aggregate_id"])
	assert.Equal(t, map[string]any{"to": "PickedUp"}, entry["payload"])
}

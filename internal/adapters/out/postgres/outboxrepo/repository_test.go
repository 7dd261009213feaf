package outboxrepo_test

import (
	"encoding/json"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/outboxrepo"
	"fulfillment/internal/adapters/out/postgres/testdb"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func notification(kind ports.NotificationKind, at time.Time) ports.Notification {
	return ports.Notification{
		ID:          kernel.NewUUID(),
		Kind:        kind,
		AggregateID: kernel.NewUUID(),
		OccurredAt:  at,
		Payload:     json.RawMessage(`{"ok":true}`),
	}
}

func TestGormOutboxRepository(t *testing.T) {
	t.Run("should return unpublished notifications oldest first", func(t *testing.T) {
		repo := outboxrepo.NewGormOutboxRepository(testdb.New(t))
		late := notification(ports.OrderStatusChanged, base.Add(time.Minute))
		early := notification(ports.OrderPlaced, base)
		require.NoError(t, repo.Append(t.Context(), []ports.Notification{late, early}))

		got, err := repo.GetUnpublished(t.Context(), 10)

		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.True(t, got[0].ID.IsEqual(early.ID))
		assert.Equal(t, ports.OrderPlaced, got[0].Kind)
		assert.True(t, got[0].AggregateID.IsEqual(early.AggregateID))
		assert.True(t, got[0].OccurredAt.Equal(base))
		assert.JSONEq(t, `{"ok":true}`, string(got[0].Payload))
		assert.True(t, got[1].ID.IsEqual(late.ID))
	})

	t.Run("should respect the limit", func(t *testing.T) {
		repo := outboxrepo.NewGormOutboxRepository(testdb.New(t))
		require.NoError(t, repo.Append(t.Context(), []ports.Notification{
			notification(ports.OrderPlaced, base),
			notification(ports.DeliveryAssigned, base.Add(time.Second)),
			notification(ports.DeliveryStatusChanged, base.Add(2*time.Second)),
		}))

		got, err := repo.GetUnpublished(t.Context(), 2)

		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("should hide published notifications", func(t *testing.T) {
		repo := outboxrepo.NewGormOutboxRepository(testdb.New(t))
		first := notification(ports.OrderPlaced, base)
		second := notification(ports.OrderStatusChanged, base.Add(time.Second))
		require.NoError(t, repo.Append(t.Context(), []ports.Notification{first, second}))

		require.NoError(t, repo.MarkPublished(t.Context(), []kernel.UUID{first.ID}, base.Add(time.Hour)))

		got, err := repo.GetUnpublished(t.Context(), 10)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].ID.IsEqual(second.ID))
	})

	t.Run("should accept empty batches", func(t *testing.T) {
		repo := outboxrepo.NewGormOutboxRepository(testdb.New(t))

		require.NoError(t, repo.Append(t.Context(), nil))
		require.NoError(t, repo.MarkPublished(t.Context(), nil, base))
	})
}

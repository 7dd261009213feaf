package ports_test

import (
	"encoding/json"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationFromEvent(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	event := delivery.StatusChangedEvent{
		ID:         kernel.NewUUID(),
		DeliveryID: kernel.NewUUID(),
		OrderID:    kernel.NewUUID(),
		AgentID:    kernel.NewUUID(),
		CustomerID: kernel.NewUUID(),
		From:       "Accepted",
		To:         "PickedUp",
		ActorRole:  "agent",
		At:         at,
	}

	n, err := ports.NotificationFromEvent(event)

	require.NoError(t, err)
	assert.Equal(t, ports.DeliveryStatusChanged, n.Kind)
	assert.True(t, n.ID.IsEqual(event.ID))
	assert.True(t, n.AggregateID.IsEqual(event.DeliveryID))
	assert.Equal(t, at, n.OccurredAt)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(n.Payload, &payload))
	assert.Equal(t, "PickedUp", payload["to"])
	assert.Equal(t, event.OrderID.String(), payload["orderId"])
}

func TestParseNotificationKind(t *testing.T) {
	kind, err := ports.ParseNotificationKind("order.status_changed")
	require.NoError(t, err)
	assert.Equal(t, ports.OrderStatusChanged, kind)
	assert.Equal(t, "order.status_changed", kind.String())

	_, err = ports.ParseNotificationKind("order.deleted")
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = ports.ParseNotificationKind("unknown")
	require.Error(t, err)
}

package delivery

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

const (
	AssignedEventName      = "delivery.assigned"
	StatusChangedEventName = "delivery.status_changed"
)

// AssignedEvent is recorded when a delivery is created for an order.
type AssignedEvent struct {
	ID         kernel.UUID `json:"eventId"`
	DeliveryID kernel.UUID `json:"deliveryId"`
	OrderID    kernel.UUID `json:"orderId"`
	AgentID    kernel.UUID `json:"agentId"`
	CustomerID kernel.UUID `json:"customerId"`
	At         time.Time   `json:"occurredAt"`
}

func (e AssignedEvent) EventID() kernel.UUID { return e.ID }
func (e AssignedEvent) Name() string { return AssignedEventName }
func (e AssignedEvent) AggregateID() kernel.UUID { return e.DeliveryID }
func (e AssignedEvent) OccurredAt() time.Time { return e.At }

// StatusChangedEvent is recorded for every advance and for cancellation.
type StatusChangedEvent struct {
	ID         kernel.UUID `json:"eventId"`
	DeliveryID kernel.UUID `json:"deliveryId"`
	OrderID    kernel.UUID `json:"orderId"`
	AgentID    kernel.UUID `json:"agentId"`
	CustomerID kernel.UUID `json:"customerId"`
	From       string      `json:"from"`
	To         string      `json:"to"`
	ActorRole  string      `json:"actorRole"`
	At         time.Time   `json:"occurredAt"`
}

func (e StatusChangedEvent) EventID() kernel.UUID { return e.ID }
func (e StatusChangedEvent) Name() string { return StatusChangedEventName }
func (e StatusChangedEvent) AggregateID() kernel.UUID { return e.DeliveryID }
func (e StatusChangedEvent) OccurredAt() time.Time { return e.At }

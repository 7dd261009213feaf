package order

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

const (
	PlacedEventName        = "order.placed"
	StatusChangedEventName = "order.status_changed"
)

// PlacedEvent is recorded when an order is created.
type PlacedEvent struct {
	ID         kernel.UUID `json:"eventId"`
	OrderID    kernel.UUID `json:"orderId"`
	CustomerID kernel.UUID `json:"customerId"`
	OwnerID    kernel.UUID `json:"ownerId"`
	Total      string      `json:"total"`
	At         time.Time   `json:"occurredAt"`
}

func (e PlacedEvent) EventID() kernel.UUID { return e.ID }
func (e PlacedEvent) Name() string { return PlacedEventName }
func (e PlacedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e PlacedEvent) OccurredAt() time.Time { return e.At }

// StatusChangedEvent is recorded for every accepted transition.
type StatusChangedEvent struct {
	ID         kernel.UUID `json:"eventId"`
	OrderID    kernel.UUID `json:"orderId"`
	CustomerID kernel.UUID `json:"customerId"`
	OwnerID    kernel.UUID `json:"ownerId"`
	From       string      `json:"from"`
	To         string      `json:"to"`
	ActorRole  string      `json:"actorRole"`
	At         time.Time   `json:"occurredAt"`
}

func (e StatusChangedEvent) EventID() kernel.UUID { return e.ID }
func (e StatusChangedEvent) Name() string { return StatusChangedEventName }
func (e StatusChangedEvent) AggregateID() kernel.UUID { return e.OrderID }
func (e StatusChangedEvent) OccurredAt() time.Time { return e.At }

// Package ports defines the contracts between the fulfillment core and its
// infrastructure: repositories bound to a unit of work, the session cart
// store, the read-only catalog and address book, and the notification sink.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Orders are never deleted.
type OrderRepository interface {
	// Add persists a new order with its lines and timeline.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists status, timeline and delivery changes. The write only
	// succeeds when the stored version equals aggregate.Version(); otherwise
	// it returns a ConflictError. On success the aggregate's version is bumped.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id, or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

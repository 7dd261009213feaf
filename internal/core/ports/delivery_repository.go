package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
type DeliveryRepository interface {
	// Add persists a new delivery. A second delivery for the same order is
	// rejected with a ConflictError.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists status changes with the same version check as
	// OrderRepository.Update.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery by id, or an ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByOrder retrieves the delivery of an order, or an ObjectNotFoundError
	// when the order was never assigned.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)
}

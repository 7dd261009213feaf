package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// OutboxRepository reads and acknowledges the domain events written by a
// committed unit of work.
type OutboxRepository interface {
	// GetUnpublished returns at most limit notifications, oldest first.
	GetUnpublished(ctx context.Context, limit int) ([]Notification, error)

	// MarkPublished flags the given notifications as dispatched.
	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

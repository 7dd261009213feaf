package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/cart"
)

// CartStore persists session carts. Writes are last-write-wins.
type CartStore interface {
	// Get returns the cart of sessionKey, or an empty cart when none is stored.
	Get(ctx context.Context, sessionKey string) (*cart.Cart, error)

	Set(ctx context.Context, sessionKey string, c *cart.Cart) error

	Clear(ctx context.Context, sessionKey string) error
}

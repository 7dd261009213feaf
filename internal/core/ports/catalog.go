package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
)

// ProductCatalog is the read-only view of the external catalog.
type ProductCatalog interface {
	// Get returns the product or an ObjectNotFoundError.
	Get(ctx context.Context, productID string) (catalog.Product, error)

	// GetMany returns the products that exist, keyed by id. Unknown ids are
	// simply absent from the result.
	GetMany(ctx context.Context, productIDs []string) (map[string]catalog.Product, error)
}

// AddressBook is the read-only view of customer profiles.
type AddressBook interface {
	// Get returns one of the customer's addresses, or an ObjectNotFoundError
	// when it does not exist or belongs to someone else.
	Get(ctx context.Context, customerID, addressID kernel.UUID) (kernel.Address, error)

	// GetDefault returns the customer's default address, or an ObjectNotFoundError.
	GetDefault(ctx context.Context, customerID kernel.UUID) (kernel.Address, error)
}

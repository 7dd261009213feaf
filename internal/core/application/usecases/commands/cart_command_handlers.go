package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// CartCommandHandler handles the four session cart mutations. Each one loads
// the cart from the store, applies one mutation and writes it back; there is no
// cross-session locking and the last write wins.
//
// Example:
//
//	handler := NewCartCommandHandler(cartStore, productCatalog)
//	cmd, _ := NewAddCartItemCommand(sessionKey, "42", 2)
//	c, err := handler.AddItem(ctx, cmd)
//	if errors.Is(err, errs.ErrInsufficientStock) {
//	    // product sold out
//	}
type CartCommandHandler struct {
	carts   ports.CartStore
	catalog ports.ProductCatalog
}

func NewCartCommandHandler(carts ports.CartStore, catalog ports.ProductCatalog) CartCommandHandler {
	return CartCommandHandler{carts: carts, catalog: catalog}
}

// AddItem resolves the current name, price and stock from the catalog before
// merging the item into the cart.
func (h CartCommandHandler) AddItem(ctx context.Context, cmd AddCartItemCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	product, err := h.catalog.Get(ctx, cmd.ProductID())
	if err != nil {
		return nil, err
	}

	return h.mutate(ctx, cmd.SessionKey(), func(c *cart.Cart) error {
		return c.AddItem(services.ItemFromProduct(product), cmd.Quantity())
	})
}

func (h CartCommandHandler) UpdateQuantity(ctx context.Context, cmd UpdateCartItemQuantityCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.mutate(ctx, cmd.SessionKey(), func(c *cart.Cart) error {
		return c.UpdateQuantity(cmd.ProductID(), cmd.Quantity())
	})
}

func (h CartCommandHandler) RemoveItem(ctx context.Context, cmd RemoveCartItemCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	return h.mutate(ctx, cmd.SessionKey(), func(c *cart.Cart) error {
		c.RemoveItem(cmd.ProductID())
		return nil
	})
}

func (h CartCommandHandler) Clear(ctx context.Context, cmd ClearCartCommand) (*cart.Cart, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.carts.Clear(ctx, cmd.SessionKey()); err != nil {
		return nil, err
	}
	return cart.NewCart(), nil
}

func (h CartCommandHandler) mutate(ctx context.Context, sessionKey string, apply func(*cart.Cart) error) (*cart.Cart, error) {
	c, err := h.carts.Get(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if err = apply(c); err != nil {
		return nil, err
	}
	if err = h.carts.Set(ctx, sessionKey, c); err != nil {
		return nil, err
	}
	return c, nil
}

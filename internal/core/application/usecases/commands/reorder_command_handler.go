package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// ReorderResult is the rebuilt session cart and the products that could not
// be carried over.
type ReorderResult struct {
	Cart    *cart.Cart
	Dropped []string
}

// ReorderCommandHandler replaces the session cart with the lines of a past
// order at current prices. It never modifies the order.
type ReorderCommandHandler struct {
	uowFactory OrderUoWFactory
	carts      ports.CartStore
	catalog    ports.ProductCatalog
}

// NewReorderCommandHandler reads the order through uowFactory and the current
// prices through catalog; the result is written to carts.
func NewReorderCommandHandler(uowFactory OrderUoWFactory, carts ports.CartStore, catalog ports.ProductCatalog) ReorderCommandHandler {
	return ReorderCommandHandler{uowFactory: uowFactory, carts: carts, catalog: catalog}
}

// Handle replaces the session cart of cmd. Only customers may reorder, and
// only their own orders.
func (h ReorderCommandHandler) Handle(ctx context.Context, cmd ReorderCommand) (ReorderResult, error) {
	if err := cmd.Validate(); err != nil {
		return ReorderResult{}, err
	}
	if cmd.Actor().Role() != kernel.RoleCustomer {
		return ReorderResult{}, errs.NewUnauthorizedError(cmd.Actor().String(), "reorder")
	}

	o, err := h.load(ctx, cmd)
	if err != nil {
		return ReorderResult{}, err
	}

	lines := o.Lines()
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID())
	}
	products, err := h.catalog.GetMany(ctx, ids)
	if err != nil {
		return ReorderResult{}, err
	}

	c, dropped, err := services.NewCartRebuilder().Rebuild(o, products)
	if err != nil {
		return ReorderResult{}, err
	}

	if err = h.carts.Set(ctx, cmd.SessionKey(), c); err != nil {
		return ReorderResult{}, err
	}

	return ReorderResult{Cart: c, Dropped: dropped}, nil
}

func (h ReorderCommandHandler) load(ctx context.Context, cmd ReorderCommand) (*order.Order, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return getVisibleOrder(ctx, uow.OrderRepository(), cmd.OrderID(), cmd.Actor())
}

package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/rs/zerolog/log"
)

// PlaceOrderCommandHandler turns a session cart into a Pending order.
//
// The cart is re-checked against the live catalog: every product must still
// exist with enough stock, and all products must belong to the same store.
// The shipping address comes from the address book. Pricing goes through the
// PriceQuoter, so an unknown coupon fails the checkout with InvalidCoupon.
// Once the order is committed the session cart is cleared.
type PlaceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	carts      ports.CartStore
	catalog    ports.ProductCatalog
	addresses  ports.AddressBook
	quoter     services.PriceQuoter
}

func NewPlaceOrderCommandHandler(
	uowFactory OrderUoWFactory,
	carts ports.CartStore,
	catalog ports.ProductCatalog,
	addresses ports.AddressBook,
	quoter services.PriceQuoter,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		carts:      carts,
		catalog:    catalog,
		addresses:  addresses,
		quoter:     quoter,
	}
}

func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	customer := cmd.Actor()
	if customer.Role() != kernel.RoleCustomer {
		return nil, errs.NewUnauthorizedError(customer.String(), "place orders")
	}

	c, err := h.carts.Get(ctx, cmd.SessionKey())
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, errs.NewValueIsRequiredError("cart")
	}

	ownerID, err := h.checkStock(ctx, c)
	if err != nil {
		return nil, err
	}

	address, err := h.shippingAddress(ctx, customer.ID(), cmd.AddressID())
	if err != nil {
		return nil, err
	}

	quote, err := h.quoter.Quote(c, cmd.CouponCode())
	if err != nil {
		return nil, err
	}

	lines, err := order.LinesFromCart(c)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(order.Draft{
		ID:              cmd.OrderID(),
		CustomerID:      customer.ID(),
		OwnerID:         ownerID,
		Lines:           lines,
		ShippingAddress: address,
		PaymentMethod:   cmd.PaymentMethod(),
		Notes:           cmd.Notes(),
		Pricing:         quote.Pricing(),
	}, now())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if err = h.carts.Clear(ctx, cmd.SessionKey()); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("order_id", o.ID().String()).Msg("order placed but cart was not cleared")
	}

	return o, nil
}

// checkStock returns the single store owner of every product in c.
func (h PlaceOrderCommandHandler) checkStock(ctx context.Context, c *cart.Cart) (kernel.UUID, error) {
	lines := c.Lines()
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID())
	}

	products, err := h.catalog.GetMany(ctx, ids)
	if err != nil {
		return kernel.UUID{}, err
	}

	var owner *catalog.Product
	var errList []error
	for _, l := range lines {
		p, ok := products[l.ProductID()]
		if !ok {
			errList = append(errList, errs.NewObjectNotFoundError("productId", l.ProductID()))
			continue
		}
		if p.Stock() < l.Quantity() {
			errList = append(errList, errs.NewInsufficientStockError(p.ID(), l.Quantity(), p.Stock()))
			continue
		}
		if owner == nil {
			owner = &p
		} else if !owner.OwnerID().IsEqual(p.OwnerID()) {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause("cart",
				fmt.Errorf("products %s and %s are sold by different stores", owner.ID(), p.ID())))
		}
	}
	if err := errors.Join(errList...); err != nil {
		return kernel.UUID{}, err
	}
	return owner.OwnerID(), nil
}

func (h PlaceOrderCommandHandler) shippingAddress(ctx context.Context, customerID kernel.UUID, addressID *kernel.UUID) (kernel.Address, error) {
	if addressID == nil {
		return h.addresses.GetDefault(ctx, customerID)
	}
	return h.addresses.Get(ctx, customerID, *addressID)
}

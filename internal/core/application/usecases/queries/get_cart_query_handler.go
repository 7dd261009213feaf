package queries

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

type CartLineView struct {
	ProductID string
	Name      string
	ImageURL  string
	UnitPrice kernel.Money
	Quantity  int
	Stock     int
	Total     kernel.Money
}

// CartView is a cart with its checkout quote. An unknown coupon does not fail
// the read; it is reported in CouponError and the discount stays zero.
type CartView struct {
	Lines        []CartLineView
	TotalItems   int
	TotalPrice   kernel.Money
	Subtotal     kernel.Money
	ShippingCost kernel.Money
	Discount     kernel.Money
	Total        kernel.Money
	CouponCode   string
	CouponError  string
}

type GetCartQueryHandler struct {
	carts  ports.CartStore
	quoter services.PriceQuoter
}

func NewGetCartQueryHandler(carts ports.CartStore, quoter services.PriceQuoter) GetCartQueryHandler {
	return GetCartQueryHandler{carts: carts, quoter: quoter}
}

func (h GetCartQueryHandler) Handle(ctx context.Context, query GetCartQuery) (CartView, error) {
	if err := query.Validate(); err != nil {
		return CartView{}, err
	}

	c, err := h.carts.Get(ctx, query.SessionKey())
	if err != nil {
		return CartView{}, err
	}

	quote, quoteErr := h.quoter.Quote(c, query.CouponCode())
	if quoteErr != nil && !errors.Is(quoteErr, errs.ErrInvalidCoupon) {
		return CartView{}, quoteErr
	}

	view := CartView{
		Lines:        make([]CartLineView, 0, len(c.Lines())),
		TotalItems:   c.TotalItems(),
		TotalPrice:   c.TotalPrice(),
		Subtotal:     quote.Subtotal,
		ShippingCost: quote.ShippingCost,
		Discount:     quote.Discount,
		Total:        quote.Total,
		CouponCode:   quote.CouponCode,
	}
	if quoteErr != nil {
		view.CouponError = quoteErr.Error()
	}
	for _, l := range c.Lines() {
		view.Lines = append(view.Lines, CartLineView{
			ProductID: l.ProductID(),
			Name:      l.Name(),
			ImageURL:  l.ImageURL(),
			UnitPrice: l.UnitPrice(),
			Quantity:  l.Quantity(),
			Stock:     l.Stock(),
			Total:     l.Total(),
		})
	}
	return view, nil
}

package services

import (
	"strings"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/coupon"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// Quote is the priced view of a cart.
type Quote struct {
	Subtotal     kernel.Money
	ShippingCost kernel.Money
	Discount     kernel.Money
	Total        kernel.Money
	CouponCode   string
}

// Pricing converts the quote into the order's checkout inputs.
func (q Quote) Pricing() order.Pricing {
	return order.Pricing{ShippingCost: q.ShippingCost, Discount: q.Discount, CouponCode: q.CouponCode}
}

// PriceQuoter prices carts with a flat shipping cost and an optional coupon.
// It is safe for concurrent use.
type PriceQuoter struct {
	coupons      *coupon.Registry
	shippingCost kernel.Money
}

func NewPriceQuoter(coupons *coupon.Registry, shippingCost kernel.Money) PriceQuoter {
	if coupons == nil {
		coupons = coupon.DefaultRegistry()
	}
	return PriceQuoter{coupons: coupons, shippingCost: shippingCost}
}

// Quote prices c. An empty cart ships for free. A blank couponCode applies no
// coupon. An unknown couponCode returns a complete quote with a zero discount
// together with an InvalidCouponError, so callers may either show the quote
// or refuse it.
func (q PriceQuoter) Quote(c *cart.Cart, couponCode string) (Quote, error) {
	quote := Quote{Subtotal: c.TotalPrice(), ShippingCost: q.shippingCost, Discount: kernel.Zero}
	if c.IsEmpty() {
		quote.ShippingCost = kernel.Zero
	}

	var err error
	if code := strings.TrimSpace(couponCode); code != "" {
		var discount kernel.Money
		discount, err = q.coupons.Evaluate(code, quote.Subtotal, quote.ShippingCost)
		if err == nil {
			quote.Discount = discount
			quote.CouponCode = strings.ToUpper(code)
		}
	}

	quote.Total = quote.Subtotal.Add(quote.ShippingCost).Sub(quote.Discount)
	if quote.Total.IsNegative() {
		quote.Total = kernel.Zero
	}
	return quote, err
}

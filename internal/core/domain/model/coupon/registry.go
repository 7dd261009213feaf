package coupon

import (
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Registry is an immutable, case-insensitive set of coupons.
type Registry struct {
	coupons map[string]Coupon
}

func NewRegistry(coupons ...Coupon) (*Registry, error) {
	r := &Registry{coupons: make(map[string]Coupon, len(coupons))}
	for _, c := range coupons {
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.coupons[c.Code()]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("coupons", fmt.Errorf("%s registered twice", c.Code()))
		}
		r.coupons[c.Code()] = c
	}
	return r, nil
}

// DefaultRegistry holds DISCOUNT10 (10% off the subtotal) and FREESHIPPING.
func DefaultRegistry() *Registry {
	discount10, _ := NewPercentageCoupon("DISCOUNT10", decimal.RequireFromString("0.10"))
	freeShipping, _ := NewShippingWaiver("FREESHIPPING")
	r, _ := NewRegistry(discount10, freeShipping)
	return r
}

// Lookup is an exact, case-insensitive match.
func (r *Registry) Lookup(code string) (Coupon, error) {
	c, ok := r.coupons[strings.ToUpper(code)]
	if !ok {
		return Coupon{}, errs.NewInvalidCouponError(code)
	}
	return c, nil
}

// Evaluate returns the discount of code for the given totals. Unknown codes
// yield a zero discount together with an InvalidCouponError.
func (r *Registry) Evaluate(code string, subtotal, shipping kernel.Money) (kernel.Money, error) {
	c, err := r.Lookup(code)
	if err != nil {
		return kernel.Zero, err
	}
	return c.Discount(subtotal, shipping), nil
}

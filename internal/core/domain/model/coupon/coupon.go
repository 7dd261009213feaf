// Package coupon implements the Coupon Evaluator. Evaluation is a pure
// function of (code, subtotal, shipping) against an immutable Registry, so it
// is safe for unbounded concurrent use.
package coupon

import (
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Kind selects how a coupon computes its discount.
type Kind int

const (
	KindUnknown Kind = iota
	// PercentageOff discounts a fraction of the subtotal.
	PercentageOff
	// ShippingWaiver discounts the shipping cost.
	ShippingWaiver
)

func (k Kind) String() string {
	switch k {
	case PercentageOff:
		return "percentage"
	case ShippingWaiver:
		return "free_shipping"
	default:
		return "unknown"
	}
}

var ErrCouponIsNotConstructed = errs.NewValueIsRequiredError("coupon must be created via NewPercentageCoupon or NewShippingWaiver")

type Coupon struct {
	code  string
	kind  Kind
	rate  decimal.Decimal
	guard guard.ConstructorGuard
}

// NewPercentageCoupon creates a coupon discounting rate x subtotal. The rate
// must be in (0, 1].
func NewPercentageCoupon(code string, rate decimal.Decimal) (Coupon, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return Coupon{}, err
	}
	if !rate.IsPositive() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return Coupon{}, errs.NewValueIsOutOfRangeError("rate", rate, "0", "1")
	}
	return Coupon{code: code, kind: PercentageOff, rate: rate, guard: guard.NewConstructorGuard()}, nil
}

func NewShippingWaiver(code string) (Coupon, error) {
	code, err := normalizeCode(code)
	if err != nil {
		return Coupon{}, err
	}
	return Coupon{code: code, kind: ShippingWaiver, guard: guard.NewConstructorGuard()}, nil
}

func (c Coupon) Validate() error {
	return c.guard.Validate(ErrCouponIsNotConstructed)
}

// Code is the canonical upper-case code.
func (c Coupon) Code() string {
	return c.code
}

// Discount computes the discount for the given totals, rounded half-up to the
// cent and clamped to [0, subtotal+shipping].
func (c Coupon) Discount(subtotal, shipping kernel.Money) kernel.Money {
	var discount kernel.Money
	switch c.kind {
	case PercentageOff:
		discount = subtotal.MulRate(c.rate)
	case ShippingWaiver:
		discount = shipping
	default:
		return kernel.Zero
	}

	ceiling := subtotal.Add(shipping)
	if ceiling.IsNegative() {
		ceiling = kernel.Zero
	}
	return discount.Clamp(kernel.Zero, ceiling)
}

func normalizeCode(code string) (string, error) {
	if strings.TrimSpace(code) == "" {
		return "", errs.NewValueIsRequiredError("code")
	}
	if strings.ContainsAny(code, " \t\n") {
		return "", errs.NewValueIsInvalidErrorWithCause("code", fmt.Errorf("%q contains whitespace", code))
	}
	return strings.ToUpper(code), nil
}

package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// minorUnitExponent is the number of decimal places of the currency.
const minorUnitExponent = 2

// Money is an amount in integer minor units (cents). Arithmetic never touches
// floating point; fractional results are rounded half-up by MulRate.
type Money struct {
	cents int64
}

var Zero = Money{}

func MoneyFromCents(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

func (m Money) Mul(quantity int) Money {
	return Money{cents: m.cents * int64(quantity)}
}

// MulRate multiplies by a decimal rate and rounds half-up to whole cents.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{cents: decimal.NewFromInt(m.cents).Mul(rate).Round(0).IntPart()}
}

// Clamp bounds m to [lower, upper].
func (m Money) Clamp(lower, upper Money) Money {
	if m.cents < lower.cents {
		return lower
	}
	if m.cents > upper.cents {
		return upper
	}
	return m
}

func (m Money) IsNegative() bool {
	return m.cents < 0
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

// Decimal returns the amount in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.cents, -minorUnitExponent)
}

// String formats the amount with exactly two fractional digits, e.g. "19.46".
func (m Money) String() string {
	return m.Decimal().StringFixed(minorUnitExponent)
}

// NonNegative rejects negative amounts for the named parameter.
func (m Money) NonNegative(paramName string) error {
	if m.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%s is negative", m))
	}
	return nil
}

package order

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

type PaymentMethod int

const (
	PaymentUnknown PaymentMethod = iota
	PaymentCash
	PaymentCard
)

func (p PaymentMethod) String() string {
	switch p {
	case PaymentCash:
		return "cash"
	case PaymentCard:
		return "card"
	default:
		return "unknown"
	}
}

func (p PaymentMethod) Validate() error {
	if p != PaymentCash && p != PaymentCard {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%d is not cash or card", p))
	}
	return nil
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash":
		return PaymentCash, nil
	case "card":
		return PaymentCard, nil
	default:
		return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%q is not cash or card", s))
	}
}

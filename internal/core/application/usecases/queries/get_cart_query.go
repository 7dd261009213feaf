package queries

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor",
)

// GetCartQuery reads a session cart priced with an optional coupon.
type GetCartQuery struct { //nolint:recvcheck //using for validation
	sessionKey string
	couponCode string
	guard      guard.ConstructorGuard
}

func NewGetCartQuery(sessionKey, couponCode string) (GetCartQuery, error) {
	if strings.TrimSpace(sessionKey) == "" {
		return GetCartQuery{}, errs.NewValueIsRequiredError("sessionKey")
	}
	return GetCartQuery{
		sessionKey: sessionKey,
		couponCode: strings.TrimSpace(couponCode),
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

func (q GetCartQuery) SessionKey() string { return q.sessionKey }
func (q GetCartQuery) CouponCode() string { return q.couponCode }

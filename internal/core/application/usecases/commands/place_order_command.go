package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderCommand checks out the session cart of a customer.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(kernel.NewUUID(), customer, sessionKey, nil, order.PaymentCard, "", "DISCOUNT10")
//	if err != nil {
//	    return fmt.Errorf("invalid checkout: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	actor         kernel.Actor
	sessionKey    string
	addressID     *kernel.UUID
	paymentMethod order.PaymentMethod
	notes         string
	couponCode    string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand builds the command. A nil addressID selects the
// customer's default address.
func NewPlaceOrderCommand(
	orderID kernel.UUID,
	actor kernel.Actor,
	sessionKey string,
	addressID *kernel.UUID,
	paymentMethod order.PaymentMethod,
	notes, couponCode string,
) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard:      guard.NewConstructorGuard(),
		notes:      strings.TrimSpace(notes),
		couponCode: strings.TrimSpace(couponCode),
	}

	var addressErr error
	if addressID != nil {
		if addressErr = addressID.Validate(); addressErr == nil {
			id := *addressID
			cmd.addressID = &id
		}
	}

	if err := errors.Join(
		orderID.Validate(),
		actor.Validate(),
		setSessionKey(&cmd.sessionKey, sessionKey),
		addressErr,
		paymentMethod.Validate(),
	); err != nil {
		return PlaceOrderCommand{}, err
	}
	cmd.orderID = orderID
	cmd.actor = actor
	cmd.paymentMethod = paymentMethod

	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) OrderID() kernel.UUID { return c.orderID }
func (c PlaceOrderCommand) Actor() kernel.Actor { return c.actor }
func (c PlaceOrderCommand) SessionKey() string { return c.sessionKey }
func (c PlaceOrderCommand) PaymentMethod() order.PaymentMethod { return c.paymentMethod }
func (c PlaceOrderCommand) Notes() string { return c.notes }
func (c PlaceOrderCommand) CouponCode() string { return c.couponCode }

// AddressID returns the chosen address, or nil for the default one.
func (c PlaceOrderCommand) AddressID() *kernel.UUID {
	if c.addressID == nil {
		return nil
	}
	id := *c.addressID
	return &id
}

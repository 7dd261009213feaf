package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrAddCartItemCommandIsNotConstructed = errors.New(
		"AddCartItemCommand must be created via NewAddCartItemCommand constructor",
	)
	ErrUpdateCartItemQuantityCommandIsNotConstructed = errors.New(
		"UpdateCartItemQuantityCommand must be created via NewUpdateCartItemQuantityCommand constructor",
	)
	ErrRemoveCartItemCommandIsNotConstructed = errors.New(
		"RemoveCartItemCommand must be created via NewRemoveCartItemCommand constructor",
	)
	ErrClearCartCommandIsNotConstructed = errors.New(
		"ClearCartCommand must be created via NewClearCartCommand constructor",
	)
)

// AddCartItemCommand adds quantity units of a catalog product to a session cart.
type AddCartItemCommand struct { //nolint:recvcheck //using for validation
	sessionKey string
	productID  string
	quantity   int

	guard guard.ConstructorGuard
}

func NewAddCartItemCommand(sessionKey, productID string, quantity int) (AddCartItemCommand, error) {
	cmd := AddCartItemCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		setSessionKey(&cmd.sessionKey, sessionKey),
		setProductID(&cmd.productID, productID),
	); err != nil {
		return AddCartItemCommand{}, err
	}
	if quantity <= 0 || quantity > cart.MaxLineQuantity {
		return AddCartItemCommand{}, errs.NewValueIsOutOfRangeError("quantity", quantity, 1, cart.MaxLineQuantity)
	}
	cmd.quantity = quantity

	return cmd, nil
}

func (c AddCartItemCommand) Validate() error {
	return c.guard.Validate(ErrAddCartItemCommandIsNotConstructed)
}

func (c AddCartItemCommand) SessionKey() string { return c.sessionKey }
func (c AddCartItemCommand) ProductID() string { return c.productID }
func (c AddCartItemCommand) Quantity() int { return c.quantity }

// UpdateCartItemQuantityCommand replaces the quantity of a line already in the cart.
type UpdateCartItemQuantityCommand struct { //nolint:recvcheck //using for validation
	sessionKey string
	productID  string
	quantity   int

	guard guard.ConstructorGuard
}

// NewUpdateCartItemQuantityCommand only checks identifiers; the quantity
// bounds depend on the stored line and are enforced by the cart.
func NewUpdateCartItemQuantityCommand(sessionKey, productID string, quantity int) (UpdateCartItemQuantityCommand, error) {
	cmd := UpdateCartItemQuantityCommand{guard: guard.NewConstructorGuard(), quantity: quantity}

	if err := errors.Join(
		setSessionKey(&cmd.sessionKey, sessionKey),
		setProductID(&cmd.productID, productID),
	); err != nil {
		return UpdateCartItemQuantityCommand{}, err
	}

	return cmd, nil
}

func (c UpdateCartItemQuantityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartItemQuantityCommandIsNotConstructed)
}

func (c UpdateCartItemQuantityCommand) SessionKey() string { return c.sessionKey }
func (c UpdateCartItemQuantityCommand) ProductID() string { return c.productID }
func (c UpdateCartItemQuantityCommand) Quantity() int { return c.quantity }

type RemoveCartItemCommand struct { //nolint:recvcheck //using for validation
	sessionKey string
	productID  string

	guard guard.ConstructorGuard
}

func NewRemoveCartItemCommand(sessionKey, productID string) (RemoveCartItemCommand, error) {
	cmd := RemoveCartItemCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		setSessionKey(&cmd.sessionKey, sessionKey),
		setProductID(&cmd.productID, productID),
	); err != nil {
		return RemoveCartItemCommand{}, err
	}

	return cmd, nil
}

func (c RemoveCartItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartItemCommandIsNotConstructed)
}

func (c RemoveCartItemCommand) SessionKey() string { return c.sessionKey }
func (c RemoveCartItemCommand) ProductID() string { return c.productID }

type ClearCartCommand struct { //nolint:recvcheck //using for validation
	sessionKey string

	guard guard.ConstructorGuard
}

func NewClearCartCommand(sessionKey string) (ClearCartCommand, error) {
	cmd := ClearCartCommand{guard: guard.NewConstructorGuard()}
	if err := setSessionKey(&cmd.sessionKey, sessionKey); err != nil {
		return ClearCartCommand{}, err
	}
	return cmd, nil
}

func (c ClearCartCommand) Validate() error {
	return c.guard.Validate(ErrClearCartCommandIsNotConstructed)
}

func (c ClearCartCommand) SessionKey() string { return c.sessionKey }

func setSessionKey(dst *string, sessionKey string) error {
	if strings.TrimSpace(sessionKey) == "" {
		return errs.NewValueIsRequiredError("sessionKey")
	}
	*dst = sessionKey
	return nil
}

func setProductID(dst *string, productID string) error {
	if strings.TrimSpace(productID) == "" {
		return errs.NewValueIsRequiredError("productId")
	}
	*dst = productID
	return nil
}

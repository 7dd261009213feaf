package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrReorderCommandIsNotConstructed = errors.New(
	"ReorderCommand must be created via NewReorderCommand constructor",
)

// ReorderCommand rebuilds the session cart from a past order.
type ReorderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	actor      kernel.Actor
	sessionKey string

	guard guard.ConstructorGuard
}

func NewReorderCommand(orderID kernel.UUID, actor kernel.Actor, sessionKey string) (ReorderCommand, error) {
	cmd := ReorderCommand{guard: guard.NewConstructorGuard()}
	if err := errors.Join(orderID.Validate(), actor.Validate(), setSessionKey(&cmd.sessionKey, sessionKey)); err != nil {
		return ReorderCommand{}, err
	}
	cmd.orderID = orderID
	cmd.actor = actor
	return cmd, nil
}

func (c ReorderCommand) Validate() error {
	return c.guard.Validate(ErrReorderCommandIsNotConstructed)
}

func (c ReorderCommand) OrderID() kernel.UUID { return c.orderID }
func (c ReorderCommand) Actor() kernel.Actor { return c.actor }
func (c ReorderCommand) SessionKey() string { return c.sessionKey }

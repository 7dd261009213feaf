package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAdvanceDeliveryCommandIsNotConstructed = errors.New(
	"AdvanceDeliveryCommand must be created via NewAdvanceDeliveryCommand constructor",
)

// AdvanceDeliveryCommand moves a delivery one step along
// Assigned → PickedUp → OnTheWay → Delivered. Only the assigned agent may
// advance it.
type AdvanceDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

func NewAdvanceDeliveryCommand(deliveryID kernel.UUID, actor kernel.Actor) (AdvanceDeliveryCommand, error) {
	if err := errors.Join(deliveryID.Validate(), actor.Validate()); err != nil {
		return AdvanceDeliveryCommand{}, err
	}
	return AdvanceDeliveryCommand{deliveryID: deliveryID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (c AdvanceDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceDeliveryCommandIsNotConstructed)
}

func (c AdvanceDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c AdvanceDeliveryCommand) Actor() kernel.Actor { return c.actor }

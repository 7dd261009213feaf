package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignDeliveryCommandIsNotConstructed = errors.New(
	"AssignDeliveryCommand must be created via NewAssignDeliveryCommand constructor",
)

// AssignDeliveryCommand hands a Processing order to a delivery agent.
type AssignDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	orderID    kernel.UUID
	actor      kernel.Actor
	agent      kernel.Actor

	guard guard.ConstructorGuard
}

// NewAssignDeliveryCommand builds the command. agentID is wrapped in an actor
// with the agent role; whether that agent exists is not checked here.
func NewAssignDeliveryCommand(deliveryID, orderID kernel.UUID, actor kernel.Actor, agentID kernel.UUID) (AssignDeliveryCommand, error) {
	if err := errors.Join(deliveryID.Validate(), orderID.Validate(), actor.Validate()); err != nil {
		return AssignDeliveryCommand{}, err
	}
	agent, err := kernel.NewActor(agentID, kernel.RoleAgent)
	if err != nil {
		return AssignDeliveryCommand{}, err
	}
	return AssignDeliveryCommand{
		deliveryID: deliveryID,
		orderID:    orderID,
		actor:      actor,
		agent:      agent,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AssignDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAssignDeliveryCommandIsNotConstructed)
}

func (c AssignDeliveryCommand) DeliveryID() kernel.UUID { return c.deliveryID }
func (c AssignDeliveryCommand) OrderID() kernel.UUID { return c.orderID }
func (c AssignDeliveryCommand) Actor() kernel.Actor { return c.actor }
func (c AssignDeliveryCommand) Agent() kernel.Actor { return c.agent }

package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/services"
)

// AssignDeliveryCommandHandler creates the delivery of a Processing order and
// attaches it to the order in one transaction. The order write bumps its
// version, so a cancel racing the assignment loses with Conflict.
type AssignDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewAssignDeliveryCommandHandler creates a handler for delivery assignment.
func NewAssignDeliveryCommandHandler(uowFactory UoWFactory) AssignDeliveryCommandHandler {
	return AssignDeliveryCommandHandler{uowFactory: uowFactory}
}

// Handle creates the delivery and records its id on the order.
//
// Returns IllegalTransition when the order is not Processing or already has a
// delivery, and Unauthorized when the caller is not the order's store owner.
func (h AssignDeliveryCommandHandler) Handle(ctx context.Context, cmd AssignDeliveryCommand) (*delivery.Delivery, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := getVisibleOrder(ctx, uow.OrderRepository(), cmd.OrderID(), cmd.Actor())
	if err != nil {
		return nil, err
	}

	d, err := services.NewFulfillmentCoordinator().Assign(o, cmd.Actor(), cmd.Agent(), cmd.DeliveryID(), now())
	if err != nil {
		return nil, err
	}

	if err = uow.DeliveryRepository().Add(ctx, d); err != nil {
		return nil, err
	}
	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}

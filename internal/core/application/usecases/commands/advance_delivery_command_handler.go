package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/services"
)

// AdvanceDeliveryCommandHandler moves a delivery forward and persists the
// order projection when the order status changed with it.
type AdvanceDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewAdvanceDeliveryCommandHandler creates a handler for delivery progress.
func NewAdvanceDeliveryCommandHandler(uowFactory UoWFactory) AdvanceDeliveryCommandHandler {
	return AdvanceDeliveryCommandHandler{uowFactory: uowFactory}
}

// Handle advances the delivery by one status. The first step past Assigned
// moves the order to OutForDelivery and Delivered closes it.
func (h AdvanceDeliveryCommandHandler) Handle(ctx context.Context, cmd AdvanceDeliveryCommand) (*delivery.Delivery, error) {
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

	d, o, err := loadDelivery(ctx, uow, cmd.DeliveryID(), cmd.Actor())
	if err != nil {
		return nil, err
	}

	before := o.Status()
	if _, err = services.NewFulfillmentCoordinator().Advance(o, d, cmd.Actor(), now()); err != nil {
		return nil, err
	}

	if err = uow.DeliveryRepository().Update(ctx, d); err != nil {
		return nil, err
	}
	if o.Status() != before {
		if err = uow.OrderRepository().Update(ctx, o); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}

package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// CancelDeliveryCommandHandler cancels a delivery that has not been picked up,
// together with its order.
type CancelDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewCancelDeliveryCommandHandler creates a handler for delivery cancellation.
func NewCancelDeliveryCommandHandler(uowFactory UoWFactory) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{uowFactory: uowFactory}
}

// Handle cancels the delivery and its order in one transaction. Deliveries
// already picked up answer OrderNotCancellable.
func (h CancelDeliveryCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryCommand) (*delivery.Delivery, error) {
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
	if d.Status().IsArchived() {
		return nil, errs.NewOrderNotCancellableError(o.ID().String(), "delivery "+d.Status().String())
	}

	if err = services.NewFulfillmentCoordinator().Cancel(o, d, cmd.Actor(), now()); err != nil {
		return nil, err
	}

	if err = uow.DeliveryRepository().Update(ctx, d); err != nil {
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

package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// getVisibleOrder hides orders the actor may not read behind ObjectNotFound.
func getVisibleOrder(ctx context.Context, repo ports.OrderRepository, id kernel.UUID, actor kernel.Actor) (*order.Order, error) {
	o, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.VisibleTo(actor) {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return o, nil
}

func cancelOrder(ctx context.Context, uow UoW, o *order.Order, actor kernel.Actor, at time.Time) error {
	var (
		d   *delivery.Delivery
		err error
	)
	if o.DeliveryID() != nil {
		if d, err = uow.DeliveryRepository().GetByOrder(ctx, o.ID()); err != nil {
			return err
		}
	}

	wasActive := d != nil && !d.Status().IsArchived()
	if err = services.NewFulfillmentCoordinator().Cancel(o, d, actor, at); err != nil {
		return err
	}

	if wasActive {
		if err = uow.DeliveryRepository().Update(ctx, d); err != nil {
			return err
		}
	}
	return uow.OrderRepository().Update(ctx, o)
}

// loadDelivery returns a delivery visible to actor together with its order.
func loadDelivery(ctx context.Context, uow UoW, id kernel.UUID, actor kernel.Actor) (*delivery.Delivery, *order.Order, error) {
	d, err := uow.DeliveryRepository().Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !d.VisibleTo(actor) {
		return nil, nil, errs.NewObjectNotFoundError("delivery", id)
	}
	o, err := uow.OrderRepository().Get(ctx, d.OrderID())
	if err != nil {
		return nil, nil, err
	}
	return d, o, nil
}

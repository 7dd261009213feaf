package services

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// FulfillmentCoordinator keeps an Order and its Delivery consistent.
//
// Business rules:
//   - a delivery is created only for a Processing order, by the owning store,
//     for an actor with the agent role, at most once per order
//   - the first PickedUp or OnTheWay moves the order to OutForDelivery
//   - Delivered moves the order to Delivered
//   - cancelling an active delivery cancels the order with the same actor
//
// Order projections are performed by kernel.SystemActor, which is the only
// actor allowed on the delivery-driven order edges.
type FulfillmentCoordinator struct{}

func NewFulfillmentCoordinator() FulfillmentCoordinator {
	return FulfillmentCoordinator{}
}

// Assign creates a delivery in Assigned for o and attaches it to the order.
//
// Parameters:
//   - o: the order, which must be Processing
//   - owner: the caller, which must be the order's store owner
//   - agent: the courier receiving the delivery
//   - deliveryID: identity of the new delivery
//
// Returns IllegalTransition when the order is not Processing or already has a
// delivery, Unauthorized when owner does not own the order, and a validation
// error when agent does not carry the agent role.
func (FulfillmentCoordinator) Assign(
	o *order.Order,
	owner, agent kernel.Actor,
	deliveryID kernel.UUID,
	at time.Time,
) (*delivery.Delivery, error) {
	if err := errors.Join(o.Validate(), owner.Validate(), agent.Validate()); err != nil {
		return nil, err
	}
	if o.Status() != order.Processing {
		return nil, errs.NewIllegalTransitionErrorWithCause("order", o.Status().String(), "DeliveryAssigned",
			errors.New("only Processing orders can be assigned"))
	}
	if !owner.Is(kernel.RoleOwner, o.OwnerID()) {
		return nil, errs.NewUnauthorizedError(owner.String(), "assign a delivery for order "+o.ID().String())
	}
	if agent.Role() != kernel.RoleAgent {
		return nil, errs.NewValueIsInvalidErrorWithCause("agent", fmt.Errorf("%s is not a delivery agent", agent))
	}

	d, err := delivery.NewDelivery(deliveryID, delivery.Parties{
		OrderID:    o.ID(),
		AgentID:    agent.ID(),
		CustomerID: o.CustomerID(),
		OwnerID:    o.OwnerID(),
	}, o.ShippingAddress(), at)
	if err != nil {
		return nil, err
	}
	if err := o.AttachDelivery(d.ID()); err != nil {
		return nil, err
	}
	return d, nil
}

// Advance moves d to its next status on behalf of actor and applies the
// matching order projection. On error neither aggregate should be persisted.
func (FulfillmentCoordinator) Advance(o *order.Order, d *delivery.Delivery, actor kernel.Actor, at time.Time) (delivery.Status, error) {
	if err := matchPair(o, d); err != nil {
		return delivery.Unknown, err
	}
	if s := o.Status(); s != order.Processing && s != order.OutForDelivery {
		return delivery.Unknown, errs.NewIllegalTransitionErrorWithCause("delivery", d.Status().String(), "next",
			fmt.Errorf("order is %s", s))
	}

	next, err := d.Advance(actor, at)
	if err != nil {
		return delivery.Unknown, err
	}

	system := kernel.SystemActor()
	if (next.InTransit() || next == delivery.Delivered) && o.Status() == order.Processing {
		if err := o.Transition(order.OutForDelivery, system, at); err != nil {
			return delivery.Unknown, err
		}
	}
	if next == delivery.Delivered {
		if err := o.Transition(order.Delivered, system, at); err != nil {
			return delivery.Unknown, err
		}
	}
	return next, nil
}

// Cancel cancels the order on behalf of actor. When d is an active delivery it
// is cancelled first; in-transit deliveries fail with OrderNotCancellable.
// d may be nil for orders that were never assigned.
func (FulfillmentCoordinator) Cancel(o *order.Order, d *delivery.Delivery, actor kernel.Actor, at time.Time) error {
	if d != nil && !d.Status().IsArchived() {
		if err := matchPair(o, d); err != nil {
			return err
		}
		if err := d.Cancel(actor, at); err != nil {
			return err
		}
	}
	return o.Cancel(actor, at)
}

func matchPair(o *order.Order, d *delivery.Delivery) error {
	if err := errors.Join(o.Validate(), d.Validate()); err != nil {
		return err
	}
	if !d.OrderID().IsEqual(o.ID()) {
		return errs.NewValueIsInvalidErrorWithCause("delivery",
			fmt.Errorf("delivery %s belongs to order %s, not %s", d.ID(), d.OrderID(), o.ID()))
	}
	return nil
}

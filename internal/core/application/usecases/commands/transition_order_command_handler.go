package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// TransitionOrderCommandHandler applies a manual order transition. A request
// for Cancelled is handled like CancelOrderCommand so an active delivery is
// cancelled with the order.
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewTransitionOrderCommandHandler creates a handler that runs every transition
// in its own unit of work.
func NewTransitionOrderCommandHandler(uowFactory UoWFactory) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{uowFactory: uowFactory}
}

// Handle loads the order visible to the actor, applies the transition and
// persists it with the aggregate's version check.
//
// Returns ObjectNotFound for orders the actor may not see, IllegalTransition
// for edges outside the status graph, Unauthorized for edges the actor's role
// may not take, and Conflict when the order changed since it was loaded.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
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

	if cmd.Target() == order.Cancelled {
		err = cancelOrder(ctx, uow, o, cmd.Actor(), now())
	} else {
		err = o.Transition(cmd.Target(), cmd.Actor(), now())
		if err == nil {
			err = uow.OrderRepository().Update(ctx, o)
		}
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

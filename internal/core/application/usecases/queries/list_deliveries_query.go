package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
	"fulfillment/internal/pkg/pagination"
)

var ErrListDeliveriesQueryIsNotConstructed = errors.New(
	"ListDeliveriesQuery must be created via NewListDeliveriesQuery constructor",
)

// ListDeliveriesQuery lists deliveries visible to actor, most recently
// assigned first. A nil status lists every status.
type ListDeliveriesQuery struct { //nolint:recvcheck //using for validation
	actor  kernel.Actor
	status *delivery.Status
	page   pagination.Params
	guard  guard.ConstructorGuard
}

func NewListDeliveriesQuery(actor kernel.Actor, status *delivery.Status, page, limit int) (ListDeliveriesQuery, error) {
	params, pageErr := pagination.NewParams(page, limit)
	var statusErr error
	if status != nil {
		statusErr = status.Validate()
	}
	if err := errors.Join(actor.Validate(), statusErr, pageErr); err != nil {
		return ListDeliveriesQuery{}, err
	}
	return ListDeliveriesQuery{actor: actor, status: status, page: params, guard: guard.NewConstructorGuard()}, nil
}

func (q ListDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesQueryIsNotConstructed)
}

func (q ListDeliveriesQuery) Actor() kernel.Actor { return q.actor }
func (q ListDeliveriesQuery) Status() *delivery.Status { return q.status }
func (q ListDeliveriesQuery) Page() pagination.Params { return q.page }

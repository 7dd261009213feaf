package queries

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
	"fulfillment/internal/pkg/pagination"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// DateRange bounds creation time as [From, To). Either end may be zero.
type DateRange struct {
	From time.Time
	To   time.Time
}

// OrderFilter narrows a listing. Zero fields do not filter.
type OrderFilter struct {
	Status *order.Status
	Dates  DateRange
	// Search matches the order id or any line item name, case-insensitively.
	Search string
}

// ListOrdersQuery lists the orders visible to a customer or a store owner,
// newest first.
type ListOrdersQuery struct { //nolint:recvcheck //using for validation
	actor  kernel.Actor
	filter OrderFilter
	page   pagination.Params
	guard  guard.ConstructorGuard
}

func NewListOrdersQuery(actor kernel.Actor, filter OrderFilter, page, limit int) (ListOrdersQuery, error) {
	params, pageErr := pagination.NewParams(page, limit)
	if err := errors.Join(actor.Validate(), validateFilter(filter), pageErr); err != nil {
		return ListOrdersQuery{}, err
	}

	filter.Search = strings.ToLower(strings.TrimSpace(filter.Search))
	return ListOrdersQuery{actor: actor, filter: filter, page: params, guard: guard.NewConstructorGuard()}, nil
}

func validateFilter(f OrderFilter) error {
	var statusErr, datesErr error
	if f.Status != nil {
		statusErr = f.Status.Validate()
	}
	if !f.Dates.From.IsZero() && !f.Dates.To.IsZero() && !f.Dates.From.Before(f.Dates.To) {
		datesErr = errs.NewValueIsInvalidErrorWithCause("dateRange",
			fmt.Errorf("from %s is not before to %s", f.Dates.From.Format(time.RFC3339), f.Dates.To.Format(time.RFC3339)))
	}
	return errors.Join(statusErr, datesErr)
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Actor() kernel.Actor { return q.actor }
func (q ListOrdersQuery) Filter() OrderFilter { return q.filter }
func (q ListOrdersQuery) Page() pagination.Params { return q.page }

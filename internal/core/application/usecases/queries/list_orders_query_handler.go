package queries

import (
	"context"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/pagination"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler pages through orders scoped to the actor: customers
// see the orders they placed and owners the orders of their store. Agents
// work from deliveries and the system actor has no listing; both get an
// UnauthorizedError.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (pagination.Page[OrderView], error) {
	if err := query.Validate(); err != nil {
		return pagination.Page[OrderView]{}, err
	}

	db := h.db.WithContext(ctx)
	scoped := db.Model(&orderRow{})

	actor := query.Actor()
	switch actor.Role() {
	case kernel.RoleCustomer:
		scoped = scoped.Where("orders.customer_id = ?", actor.ID().Bytes())
	case kernel.RoleOwner:
		scoped = scoped.Where("orders.owner_id = ?", actor.ID().Bytes())
	default:
		return pagination.Page[OrderView]{}, errs.NewUnauthorizedError(actor.String(), "list orders")
	}

	f := query.Filter()
	if f.Status != nil {
		scoped = scoped.Where("orders.status = ?", int(*f.Status))
	}
	if !f.Dates.From.IsZero() {
		scoped = scoped.Where("orders.created_at >= ?", f.Dates.From.UTC())
	}
	if !f.Dates.To.IsZero() {
		scoped = scoped.Where("orders.created_at < ?", f.Dates.To.UTC())
	}
	if f.Search != "" {
		pattern := "%" + escapeLike(f.Search) + "%"
		scoped = scoped.Where(
			`(LOWER(CAST(orders.id AS TEXT)) LIKE ? ESCAPE '\' OR EXISTS (
				SELECT 1 FROM order_lines l
				WHERE l.order_id = orders.id AND LOWER(l.name) LIKE ? ESCAPE '\'
			))`,
			pattern, pattern,
		)
	}

	scoped = scoped.Session(&gorm.Session{})

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return pagination.Page[OrderView]{}, err
	}

	p := query.Page()
	var rows []orderRow
	err := scoped.Order("orders.created_at DESC, orders.id").Offset(p.Offset()).Limit(p.Limit).Find(&rows).Error
	if err != nil {
		return pagination.Page[OrderView]{}, err
	}

	views, err := loadOrderViews(db, rows)
	if err != nil {
		return pagination.Page[OrderView]{}, err
	}
	return pagination.NewPage(views, p, total), nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

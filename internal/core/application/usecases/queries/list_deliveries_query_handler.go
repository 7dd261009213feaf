package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListDeliveriesQueryHandler pages through deliveries: agents see the ones
// assigned to them, owners and customers the deliveries of their orders.
type ListDeliveriesQueryHandler struct {
	db *gorm.DB
}

func NewListDeliveriesQueryHandler(db *gorm.DB) ListDeliveriesQueryHandler {
	return ListDeliveriesQueryHandler{db: db}
}

func (h ListDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query ListDeliveriesQuery,
) (pagination.Page[DeliveryView], error) {
	if err := query.Validate(); err != nil {
		return pagination.Page[DeliveryView]{}, err
	}

	db := h.db.WithContext(ctx)
	scoped := db.Model(&deliveryRow{})

	actor := query.Actor()
	switch actor.Role() {
	case kernel.RoleAgent:
		scoped = scoped.Where("agent_id = ?", actor.ID().Bytes())
	case kernel.RoleOwner:
		scoped = scoped.Where("owner_id = ?", actor.ID().Bytes())
	case kernel.RoleCustomer:
		scoped = scoped.Where("customer_id = ?", actor.ID().Bytes())
	default:
		return pagination.Page[DeliveryView]{}, errs.NewUnauthorizedError(actor.String(), "list deliveries")
	}
	if status := query.Status(); status != nil {
		scoped = scoped.Where("status = ?", int(*status))
	}
	scoped = scoped.Session(&gorm.Session{})

	var total int64
	if err := scoped.Count(&total).Error; err != nil {
		return pagination.Page[DeliveryView]{}, err
	}

	p := query.Page()
	var rows []deliveryRow
	if err := scoped.Order("assigned_at DESC, id").Offset(p.Offset()).Limit(p.Limit).Find(&rows).Error; err != nil {
		return pagination.Page[DeliveryView]{}, err
	}

	views := make([]DeliveryView, 0, len(rows))
	if len(rows) > 0 {
		ids := make([]uuid.UUID, 0, len(rows))
		for _, r := range rows {
			ids = append(ids, r.ID)
		}
		var stamps []stampRow
		if err := db.Where("delivery_id IN ?", ids).Order("delivery_id, position").Find(&stamps).Error; err != nil {
			return pagination.Page[DeliveryView]{}, err
		}
		byDelivery := make(map[uuid.UUID][]stampRow, len(rows))
		for _, s := range stamps {
			byDelivery[s.DeliveryID] = append(byDelivery[s.DeliveryID], s)
		}
		for _, r := range rows {
			views = append(views, r.toView(byDelivery[r.ID]))
		}
	}

	return pagination.NewPage(views, p, total), nil
}

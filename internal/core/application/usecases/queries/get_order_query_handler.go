package queries

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads order detail straight from the database.
//
// Visibility follows the roles: the customer who placed the order, the owner
// of the store it was placed with, the agent assigned to its delivery and the
// system actor. Anyone else gets an ObjectNotFoundError, the same as for an
// order that does not exist.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	db := h.db.WithContext(ctx)
	scoped := db.Model(&orderRow{}).Where("orders.id = ?", query.OrderID().Bytes())

	actor := query.Actor()
	switch actor.Role() {
	case kernel.RoleSystem:
	case kernel.RoleCustomer:
		scoped = scoped.Where("orders.customer_id = ?", actor.ID().Bytes())
	case kernel.RoleOwner:
		scoped = scoped.Where("orders.owner_id = ?", actor.ID().Bytes())
	case kernel.RoleAgent:
		scoped = scoped.Where(
			"EXISTS (SELECT 1 FROM deliveries d WHERE d.order_id = orders.id AND d.agent_id = ?)",
			actor.ID().Bytes(),
		)
	default:
		return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	var row orderRow
	if err := scoped.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrderView{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return OrderView{}, err
	}

	views, err := loadOrderViews(db, []orderRow{row})
	if err != nil {
		return OrderView{}, err
	}
	return views[0], nil
}

// loadOrderViews attaches lines and timeline to rows, keeping the row order.
func loadOrderViews(db *gorm.DB, rows []orderRow) ([]OrderView, error) {
	if len(rows) == 0 {
		return []OrderView{}, nil
	}
	ids := rawIDs(rows)

	var lines []orderLineRow
	if err := db.Where("order_id IN ?", ids).Order("order_id, position").Find(&lines).Error; err != nil {
		return nil, err
	}
	var timeline []timelineRow
	if err := db.Where("order_id IN ?", ids).Order("order_id, position").Find(&timeline).Error; err != nil {
		return nil, err
	}

	linesByOrder := make(map[uuid.UUID][]orderLineRow, len(rows))
	for _, l := range lines {
		linesByOrder[l.OrderID] = append(linesByOrder[l.OrderID], l)
	}
	timelineByOrder := make(map[uuid.UUID][]timelineRow, len(rows))
	for _, e := range timeline {
		timelineByOrder[e.OrderID] = append(timelineByOrder[e.OrderID], e)
	}

	views := make([]OrderView, 0, len(rows))
	for _, r := range rows {
		views = append(views, r.toView(linesByOrder[r.ID], timelineByOrder[r.ID]))
	}
	return views, nil
}

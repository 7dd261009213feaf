// Package deliveryrepo persists delivery aggregates and their status stamps.
package deliveryrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(aggregate kernel.AggregateRoot)
}

func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a delivery at version 1. A second delivery for the same order
// is a ConflictError.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	dto := fromDomain(aggregate)
	dto.Version = 1

	var existing int64
	if err := db.Model(&DeliveryDTO{}).Where("order_id = ?", dto.OrderID).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return errs.NewConflictError("delivery", aggregate.OrderID().String(), 0)
	}

	if err := db.Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("delivery", aggregate.OrderID().String(), 0)
		}
		return err
	}

	aggregate.SyncVersion(dto.Version)
	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Update writes the status guarded by the loaded version and appends new stamps.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	id := aggregate.ID().Bytes()
	next := aggregate.Version() + 1

	result := db.Model(&DeliveryDTO{}).
		Where("id = ? AND version = ?", id, aggregate.Version()).
		Updates(map[string]any{
			"status":  int(aggregate.Status()),
			"version": next,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&DeliveryDTO{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("delivery", aggregate.ID().String())
		}
		return errs.NewConflictError("delivery", aggregate.ID().String(), aggregate.Version())
	}

	var stored int64
	if err := db.Model(&StampDTO{}).Where("delivery_id = ?", id).Count(&stored).Error; err != nil {
		return err
	}
	if stamps := stampsFromDomain(id, aggregate.Stamps(), int(stored)); len(stamps) > 0 {
		if err := db.Create(&stamps).Error; err != nil {
			return err
		}
	}

	aggregate.SyncVersion(next)
	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Get retrieves a delivery by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "delivery", id, "id = ?")
}

// GetByOrder retrieves the delivery assigned to an order.
func (r *GormDeliveryRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "delivery for order", orderID, "order_id = ?")
}

func (r *GormDeliveryRepository) first(ctx context.Context, what string, id kernel.UUID, where string) (*delivery.Delivery, error) {
	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		Preload("Stamps", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, where, id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(what, id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// Package postgres is the relational persistence of the fulfillment service.
// Repositories live in sub-packages; this package opens the database, owns the
// schema and implements the unit of work that binds repositories to a single
// transaction.
//
// Commit drains the domain events of every aggregate written through the
// unit of work into the outbox table, inside the same transaction, so an
// aggregate change and its notification are stored atomically:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//	if err := uow.DeliveryRepository().Update(ctx, d); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction and
// is safe to ignore.
package postgres

import (
	"context"
	"fmt"

	"fulfillment/internal/adapters/out/postgres/deliveryrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/outboxrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
// Each call to Create returns an isolated instance; instances must not be
// shared between goroutines.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates a database transaction across the order,
// delivery and outbox repositories and tracks the aggregates they write.
type GormUnitOfWork struct {
	db      *gorm.DB
	tx      *gorm.DB
	tracked []kernel.AggregateRoot
}

// Begin starts a transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	uow.tracked = nil
	return nil
}

// Commit stores the pending domain events of tracked aggregates in the
// outbox, commits, and then clears those events from the aggregates.
// If writing the outbox fails the transaction is rolled back.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	notifications, err := uow.pendingNotifications()
	if err == nil {
		err = outboxrepo.NewGormOutboxRepository(uow.tx).Append(ctx, notifications)
	}
	if err != nil {
		_ = uow.tx.Rollback()
		uow.tx = nil
		return fmt.Errorf("write outbox: %w", err)
	}

	err = uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return err
	}

	for _, aggregate := range uow.tracked {
		aggregate.ClearDomainEvents()
	}
	uow.tracked = nil
	return nil
}

// Rollback discards the transaction. Tracked aggregates keep their events.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.tracked = nil
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) DeliveryRepository() ports.DeliveryRepository {
	return deliveryrepo.NewGormDeliveryRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate written in this unit of work. The
// same aggregate tracked twice is stored once.
func (uow *GormUnitOfWork) TrackAggregate(aggregate kernel.AggregateRoot) {
	for _, tracked := range uow.tracked {
		if tracked == aggregate {
			return
		}
	}
	uow.tracked = append(uow.tracked, aggregate)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) pendingNotifications() ([]ports.Notification, error) {
	var notifications []ports.Notification
	for _, aggregate := range uow.tracked {
		for _, event := range aggregate.DomainEvents() {
			n, err := ports.NotificationFromEvent(event)
			if err != nil {
				return nil, err
			}
			notifications = append(notifications, n)
		}
	}
	return notifications, nil
}

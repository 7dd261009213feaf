// Package outboxrepo stores serialized domain events until the relay job has
// handed them to the notification dispatcher.
package outboxrepo

import (
	"context"
	"encoding/json"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventDTO is one outbox row. PublishedAt stays NULL until dispatch succeeds.
type EventDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Kind        string     `gorm:"size:64;not null"`
	AggregateID uuid.UUID  `gorm:"type:uuid;index;not null"`
	OccurredAt  time.Time  `gorm:"index;not null"`
	Payload     string     `gorm:"type:text;not null"`
	PublishedAt *time.Time `gorm:"index"`
}

func (EventDTO) TableName() string {
	return "outbox_events"
}

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Append stores notifications in the caller's transaction.
func (r *GormOutboxRepository) Append(ctx context.Context, notifications []ports.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	dtos := make([]EventDTO, 0, len(notifications))
	for _, n := range notifications {
		dtos = append(dtos, EventDTO{
			ID:          n.ID.Bytes(),
			Kind:        n.Kind.String(),
			AggregateID: n.AggregateID.Bytes(),
			OccurredAt:  n.OccurredAt.UTC(),
			Payload:     string(n.Payload),
		})
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

func (r *GormOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]ports.Notification, error) {
	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("occurred_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]ports.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return r.db.WithContext(ctx).
		Model(&EventDTO{}).
		Where("id IN ? AND published_at IS NULL", raw).
		Update("published_at", at.UTC()).Error
}

func toDomain(dto EventDTO) (ports.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Notification{}, err
	}
	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return ports.Notification{}, err
	}
	kind, err := ports.ParseNotificationKind(dto.Kind)
	if err != nil {
		return ports.Notification{}, err
	}

	return ports.Notification{
		ID:          id,
		Kind:        kind,
		AggregateID: aggregateID,
		OccurredAt:  dto.OccurredAt.UTC(),
		Payload:     json.RawMessage(dto.Payload),
	}, nil
}

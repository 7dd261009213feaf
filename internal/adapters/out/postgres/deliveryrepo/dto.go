package deliveryrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO is the delivery row. OrderID is unique: an order is assigned
// at most once.
type DeliveryDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null"`
	AgentID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index;not null"`
	OwnerID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	Dropoff    DropoffDTO `gorm:"embedded;embeddedPrefix:dropoff_"`
	Status     int        `gorm:"index;not null"`
	AssignedAt time.Time  `gorm:"index;not null"`
	Version    int64      `gorm:"not null"`

	Stamps []StampDTO `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
}

func (DeliveryDTO) TableName() string {
	return "deliveries"
}

type DropoffDTO struct {
	Recipient string
	Street    string
	City      string
	Zip       string
	Phone     string
}

// StampDTO records when a delivery status was reached.
type StampDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	DeliveryID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_delivery_stamp_position;not null"`
	Position   int       `gorm:"uniqueIndex:idx_delivery_stamp_position;not null"`
	Status     int       `gorm:"not null"`
	At         time.Time `gorm:"not null"`
}

func (StampDTO) TableName() string {
	return "delivery_stamps"
}

func stampsFromDomain(deliveryID uuid.UUID, stamps []delivery.Stamp, from int) []StampDTO {
	dtos := make([]StampDTO, 0, len(stamps))
	for i := from; i < len(stamps); i++ {
		dtos = append(dtos, StampDTO{
			DeliveryID: deliveryID,
			Position:   i,
			Status:     int(stamps[i].Status),
			At:         stamps[i].At.UTC(),
		})
	}
	return dtos
}

func fromDomain(d *delivery.Delivery) DeliveryDTO {
	id := d.ID().Bytes()
	stamps := d.Stamps()
	dropoff := d.Dropoff()

	return DeliveryDTO{
		ID:         id,
		OrderID:    d.OrderID().Bytes(),
		AgentID:    d.AgentID().Bytes(),
		CustomerID: d.CustomerID().Bytes(),
		OwnerID:    d.OwnerID().Bytes(),
		Dropoff: DropoffDTO{
			Recipient: dropoff.Recipient(),
			Street:    dropoff.Street(),
			City:      dropoff.City(),
			Zip:       dropoff.Zip(),
			Phone:     dropoff.Phone(),
		},
		Status:     int(d.Status()),
		AssignedAt: stamps[0].At.UTC(),
		Stamps:     stampsFromDomain(id, stamps, 0),
	}
}

func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	ids := make([]kernel.UUID, 0, 5)
	for _, raw := range []uuid.UUID{dto.ID, dto.OrderID, dto.AgentID, dto.CustomerID, dto.OwnerID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	dropoff, err := kernel.NewAddress(dto.Dropoff.Recipient, dto.Dropoff.Street, dto.Dropoff.City, dto.Dropoff.Zip, dto.Dropoff.Phone)
	if err != nil {
		return nil, err
	}

	stamps := make([]delivery.Stamp, 0, len(dto.Stamps))
	for _, s := range dto.Stamps {
		stamps = append(stamps, delivery.Stamp{Status: delivery.Status(s.Status), At: s.At.UTC()})
	}

	return delivery.RestoreDelivery(delivery.Snapshot{
		ID: ids[0],
		Parties: delivery.Parties{
			OrderID:    ids[1],
			AgentID:    ids[2],
			CustomerID: ids[3],
			OwnerID:    ids[4],
		},
		Dropoff: dropoff,
		Status:  delivery.Status(dto.Status),
		Stamps:  stamps,
		Version: dto.Version,
	})
}

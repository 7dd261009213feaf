// Package orderrepo persists order aggregates across three tables: the order
// header, its immutable lines and its append-only status timeline.
package orderrepo

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the order header row. Money columns hold cents.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID  `gorm:"type:uuid;index;not null"`
	OwnerID       uuid.UUID  `gorm:"type:uuid;index;not null"`
	DeliveryID    *uuid.UUID `gorm:"type:uuid"`
	Status        int        `gorm:"index;not null"`
	PaymentMethod int        `gorm:"not null"`
	Notes         string     `gorm:"size:500"`
	CouponCode    string     `gorm:"size:64"`
	SubtotalCents int64      `gorm:"not null"`
	ShippingCents int64      `gorm:"not null"`
	DiscountCents int64      `gorm:"not null"`
	TotalCents    int64      `gorm:"not null"`
	Address       AddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	CreatedAt     time.Time  `gorm:"index;not null"`
	Version       int64      `gorm:"not null"`

	Lines    []LineDTO          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Timeline []TimelineEntryDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO is the shipping address frozen into the order row.
type AddressDTO struct {
	Recipient string
	Street    string
	City      string
	Zip       string
	Phone     string
}

type LineDTO struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	OrderID        uuid.UUID `gorm:"type:uuid;index;not null"`
	Position       int       `gorm:"not null"`
	ProductID      string    `gorm:"not null"`
	Name           string    `gorm:"not null"`
	Quantity       int       `gorm:"not null"`
	UnitPriceCents int64     `gorm:"not null"`
}

func (LineDTO) TableName() string {
	return "order_lines"
}

// TimelineEntryDTO is one reached status. Rows are only ever appended.
type TimelineEntryDTO struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	OrderID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_order_timeline_position;not null"`
	Position int       `gorm:"uniqueIndex:idx_order_timeline_position;not null"`
	Status   int       `gorm:"not null"`
	At       time.Time `gorm:"not null"`
}

func (TimelineEntryDTO) TableName() string {
	return "order_timeline"
}

func addressFromDomain(a kernel.Address) AddressDTO {
	return AddressDTO{
		Recipient: a.Recipient(),
		Street:    a.Street(),
		City:      a.City(),
		Zip:       a.Zip(),
		Phone:     a.Phone(),
	}
}

func (a AddressDTO) toDomain() (kernel.Address, error) {
	return kernel.NewAddress(a.Recipient, a.Street, a.City, a.Zip, a.Phone)
}

func timelineFromDomain(orderID uuid.UUID, entries []order.TimelineEntry, from int) []TimelineEntryDTO {
	dtos := make([]TimelineEntryDTO, 0, len(entries))
	for i := from; i < len(entries); i++ {
		dtos = append(dtos, TimelineEntryDTO{
			OrderID:  orderID,
			Position: i,
			Status:   int(entries[i].Status()),
			At:       entries[i].At().UTC(),
		})
	}
	return dtos
}

// fromDomain maps an order onto its rows. Version is left to the caller.
func fromDomain(o *order.Order) OrderDTO {
	id := o.ID().Bytes()

	var deliveryID *uuid.UUID
	if d := o.DeliveryID(); d != nil {
		raw := d.Bytes()
		deliveryID = &raw
	}

	lines := make([]LineDTO, 0, len(o.Lines()))
	for i, l := range o.Lines() {
		lines = append(lines, LineDTO{
			OrderID:        id,
			Position:       i,
			ProductID:      l.ProductID(),
			Name:           l.Name(),
			Quantity:       l.Quantity(),
			UnitPriceCents: l.UnitPrice().Cents(),
		})
	}

	return OrderDTO{
		ID:            id,
		CustomerID:    o.CustomerID().Bytes(),
		OwnerID:       o.OwnerID().Bytes(),
		DeliveryID:    deliveryID,
		Status:        int(o.Status()),
		PaymentMethod: int(o.PaymentMethod()),
		Notes:         o.Notes(),
		CouponCode:    o.CouponCode(),
		SubtotalCents: o.Subtotal().Cents(),
		ShippingCents: o.ShippingCost().Cents(),
		DiscountCents: o.Discount().Cents(),
		TotalCents:    o.Total().Cents(),
		Address:       addressFromDomain(o.ShippingAddress()),
		CreatedAt:     o.CreatedAt().UTC(),
		Lines:         lines,
		Timeline:      timelineFromDomain(id, o.Timeline(), 0),
	}
}

// toDomain restores the aggregate. Lines and timeline must be loaded ordered
// by position.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	var deliveryID *kernel.UUID
	if dto.DeliveryID != nil {
		dID, dErr := kernel.UUIDFromBytes((*dto.DeliveryID)[:])
		if dErr != nil {
			return nil, dErr
		}
		deliveryID = &dID
	}

	address, err := dto.Address.toDomain()
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	var lineErrs []error
	for _, l := range dto.Lines {
		line, lErr := order.NewLine(l.ProductID, l.Name, l.Quantity, kernel.MoneyFromCents(l.UnitPriceCents))
		lineErrs = append(lineErrs, lErr)
		lines = append(lines, line)
	}
	if err := errors.Join(lineErrs...); err != nil {
		return nil, err
	}

	timeline := make([]order.TimelineEntry, 0, len(dto.Timeline))
	for _, e := range dto.Timeline {
		entry, eErr := order.NewTimelineEntry(order.Status(e.Status), e.At.UTC())
		if eErr != nil {
			return nil, eErr
		}
		timeline = append(timeline, entry)
	}

	return order.RestoreOrder(order.Snapshot{
		Draft: order.Draft{
			ID:              id,
			CustomerID:      customerID,
			OwnerID:         ownerID,
			Lines:           lines,
			ShippingAddress: address,
			PaymentMethod:   order.PaymentMethod(dto.PaymentMethod),
			Notes:           dto.Notes,
			Pricing: order.Pricing{
				ShippingCost: kernel.MoneyFromCents(dto.ShippingCents),
				Discount:     kernel.MoneyFromCents(dto.DiscountCents),
				CouponCode:   dto.CouponCode,
			},
		},
		Status:     order.Status(dto.Status),
		Timeline:   timeline,
		DeliveryID: deliveryID,
		CreatedAt:  dto.CreatedAt.UTC(),
		Version:    dto.Version,
	})
}

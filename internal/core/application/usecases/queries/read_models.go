package queries

import (
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// The rows below are read-only projections of the tables written by the
// persistence adapter. Columns not needed by any view are omitted.

type orderRow struct {
	ID               uuid.UUID
	CustomerID       uuid.UUID
	OwnerID          uuid.UUID
	DeliveryID       *uuid.UUID
	Status           int
	PaymentMethod    int
	Notes            string
	CouponCode       string
	SubtotalCents    int64
	ShippingCents    int64
	DiscountCents    int64
	TotalCents       int64
	AddressRecipient string
	AddressStreet    string
	AddressCity      string
	AddressZip       string
	AddressPhone     string
	CreatedAt        time.Time
}

func (orderRow) TableName() string { return "orders" }

type orderLineRow struct {
	OrderID        uuid.UUID
	Position       int
	ProductID      string
	Name           string
	Quantity       int
	UnitPriceCents int64
}

func (orderLineRow) TableName() string { return "order_lines" }

type timelineRow struct {
	OrderID  uuid.UUID
	Position int
	Status   int
	At       time.Time
}

func (timelineRow) TableName() string { return "order_timeline" }

type deliveryRow struct {
	ID               uuid.UUID
	OrderID          uuid.UUID
	AgentID          uuid.UUID
	CustomerID       uuid.UUID
	OwnerID          uuid.UUID
	DropoffRecipient string
	DropoffStreet    string
	DropoffCity      string
	DropoffZip       string
	DropoffPhone     string
	Status           int
	AssignedAt       time.Time
}

func (deliveryRow) TableName() string { return "deliveries" }

type stampRow struct {
	DeliveryID uuid.UUID
	Position   int
	Status     int
	At         time.Time
}

func (stampRow) TableName() string { return "delivery_stamps" }

// AddressView is a postal address as shown to clients.
type AddressView struct {
	Recipient string
	Street    string
	City      string
	Zip       string
	Phone     string
}

type OrderItemView struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice kernel.Money
	Total     kernel.Money
}

type TimelineEntryView struct {
	Status order.Status
	At     time.Time
}

// OrderView is the role-scoped projection of an order.
type OrderView struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	OwnerID         kernel.UUID
	DeliveryID      *kernel.UUID
	Status          order.Status
	Items           []OrderItemView
	Subtotal        kernel.Money
	ShippingCost    kernel.Money
	Discount        kernel.Money
	Total           kernel.Money
	CouponCode      string
	PaymentMethod   order.PaymentMethod
	Notes           string
	ShippingAddress AddressView
	Timeline        []TimelineEntryView
	CreatedAt       time.Time
}

type DeliveryStampView struct {
	Status delivery.Status
	At     time.Time
}

// DeliveryView is the projection of a delivery with its status timestamps.
type DeliveryView struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	AgentID    kernel.UUID
	Status     delivery.Status
	Dropoff    AddressView
	AssignedAt time.Time
	Timestamps []DeliveryStampView
}

func toUUID(raw uuid.UUID) kernel.UUID {
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.UUID{}
	}
	return id
}

func rawIDs(rows []orderRow) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}

func (r orderRow) toView(lines []orderLineRow, timeline []timelineRow) OrderView {
	view := OrderView{
		ID:            toUUID(r.ID),
		CustomerID:    toUUID(r.CustomerID),
		OwnerID:       toUUID(r.OwnerID),
		Status:        order.Status(r.Status),
		Items:         make([]OrderItemView, 0, len(lines)),
		Subtotal:      kernel.MoneyFromCents(r.SubtotalCents),
		ShippingCost:  kernel.MoneyFromCents(r.ShippingCents),
		Discount:      kernel.MoneyFromCents(r.DiscountCents),
		Total:         kernel.MoneyFromCents(r.TotalCents),
		CouponCode:    r.CouponCode,
		PaymentMethod: order.PaymentMethod(r.PaymentMethod),
		Notes:         r.Notes,
		ShippingAddress: AddressView{
			Recipient: r.AddressRecipient,
			Street:    r.AddressStreet,
			City:      r.AddressCity,
			Zip:       r.AddressZip,
			Phone:     r.AddressPhone,
		},
		Timeline:  make([]TimelineEntryView, 0, len(timeline)),
		CreatedAt: r.CreatedAt.UTC(),
	}
	if r.DeliveryID != nil {
		id := toUUID(*r.DeliveryID)
		view.DeliveryID = &id
	}
	for _, l := range lines {
		price := kernel.MoneyFromCents(l.UnitPriceCents)
		view.Items = append(view.Items, OrderItemView{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: price,
			Total:     price.Mul(l.Quantity),
		})
	}
	for _, e := range timeline {
		view.Timeline = append(view.Timeline, TimelineEntryView{Status: order.Status(e.Status), At: e.At.UTC()})
	}
	return view
}

func (r deliveryRow) toView(stamps []stampRow) DeliveryView {
	view := DeliveryView{
		ID:      toUUID(r.ID),
		OrderID: toUUID(r.OrderID),
		AgentID: toUUID(r.AgentID),
		Status:  delivery.Status(r.Status),
		Dropoff: AddressView{
			Recipient: r.DropoffRecipient,
			Street:    r.DropoffStreet,
			City:      r.DropoffCity,
			Zip:       r.DropoffZip,
			Phone:     r.DropoffPhone,
		},
		AssignedAt: r.AssignedAt.UTC(),
		Timestamps: make([]DeliveryStampView, 0, len(stamps)),
	}
	for _, s := range stamps {
		view.Timestamps = append(view.Timestamps, DeliveryStampView{Status: delivery.Status(s.Status), At: s.At.UTC()})
	}
	return view
}

package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/pagination"
)

// Requests. Money leaves the service as decimal strings ("19.46").

type addCartItemRequest struct {
	ProductID string `json:"productId" validate:"required,max=64"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=999"`
}

type updateCartItemRequest struct {
	ProductID string `param:"productId" json:"-" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1,lte=999"`
}

type getCartRequest struct {
	Coupon string `query:"coupon" validate:"max=64"`
}

type placeOrderRequest struct {
	AddressID     string `json:"addressId" validate:"omitempty,uuid"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=cash card"`
	Notes         string `json:"notes" validate:"max=500"`
	CouponCode    string `json:"couponCode" validate:"max=64"`
}

type transitionOrderRequest struct {
	Status string `json:"status" validate:"required"`
}

type assignDeliveryRequest struct {
	AgentID string `json:"agentId" validate:"required,uuid"`
}

type listOrdersRequest struct {
	Status string `query:"status"`
	From   string `query:"from" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	To     string `query:"to" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Search string `query:"q" validate:"max=100"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

type listDeliveriesRequest struct {
	Status string `query:"status"`
	Page   int    `query:"page"`
	Limit  int    `query:"limit"`
}

// Responses.

type addressResponse struct {
	Recipient string `json:"recipient"`
	Street    string `json:"street"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
	Phone     string `json:"phone"`
}

type cartItemResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	ImageURL  string `json:"imageUrl,omitempty"`
	UnitPrice string `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	Stock     int    `json:"stock"`
	Total     string `json:"total"`
}

type cartResponse struct {
	Items        []cartItemResponse `json:"items"`
	TotalItems   int                `json:"totalItems"`
	TotalPrice   string             `json:"totalPrice"`
	Subtotal     string             `json:"subtotal,omitempty"`
	ShippingCost string             `json:"shippingCost,omitempty"`
	Discount     string             `json:"discount,omitempty"`
	Total        string             `json:"total,omitempty"`
	CouponCode   string             `json:"couponCode,omitempty"`
	CouponError  string             `json:"couponError,omitempty"`
}

type reorderResponse struct {
	Cart         cartResponse `json:"cart"`
	DroppedItems []string     `json:"droppedItems"`
}

type orderItemResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	Total     string `json:"total"`
}

type statusAtResponse struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

type orderResponse struct {
	ID              string              `json:"id"`
	CustomerID      string              `json:"customerId"`
	OwnerID         string              `json:"ownerId"`
	DeliveryID      string              `json:"deliveryId,omitempty"`
	Status          string              `json:"status"`
	Items           []orderItemResponse `json:"items"`
	Subtotal        string              `json:"subtotal"`
	ShippingCost    string              `json:"shippingCost"`
	Discount        string              `json:"discount"`
	Total           string              `json:"total"`
	CouponCode      string              `json:"couponCode,omitempty"`
	PaymentMethod   string              `json:"paymentMethod"`
	Notes           string              `json:"notes,omitempty"`
	ShippingAddress addressResponse     `json:"shippingAddress"`
	Timeline        []statusAtResponse  `json:"timeline"`
	CreatedAt       time.Time           `json:"createdAt"`
}

type deliveryResponse struct {
	ID         string             `json:"id"`
	OrderID    string             `json:"orderId"`
	AgentID    string             `json:"agentId"`
	Status     string             `json:"status"`
	Dropoff    addressResponse    `json:"dropoff"`
	AssignedAt time.Time          `json:"assignedAt"`
	Timestamps []statusAtResponse `json:"timestamps"`
}

type pageResponse[T any] struct {
	Items []T   `json:"items"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

func newPageResponse[V, T any](page pagination.Page[V], convert func(V) T) pageResponse[T] {
	items := make([]T, 0, len(page.Items))
	for _, v := range page.Items {
		items = append(items, convert(v))
	}
	return pageResponse[T]{Items: items, Page: page.Page, Limit: page.Limit, Total: page.Total}
}

func newAddressResponse(a queries.AddressView) addressResponse {
	return addressResponse(a)
}

func addressView(a kernel.Address) queries.AddressView {
	return queries.AddressView{
		Recipient: a.Recipient(),
		Street:    a.Street(),
		City:      a.City(),
		Zip:       a.Zip(),
		Phone:     a.Phone(),
	}
}

func newCartResponse(c *cart.Cart) cartResponse {
	resp := cartResponse{
		Items:      make([]cartItemResponse, 0, len(c.Lines())),
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice().String(),
	}
	for _, l := range c.Lines() {
		resp.Items = append(resp.Items, cartItemResponse{
			ProductID: l.ProductID(),
			Name:      l.Name(),
			ImageURL:  l.ImageURL(),
			UnitPrice: l.UnitPrice().String(),
			Quantity:  l.Quantity(),
			Stock:     l.Stock(),
			Total:     l.Total().String(),
		})
	}
	return resp
}

func newCartViewResponse(v queries.CartView) cartResponse {
	resp := cartResponse{
		Items:        make([]cartItemResponse, 0, len(v.Lines)),
		TotalItems:   v.TotalItems,
		TotalPrice:   v.TotalPrice.String(),
		Subtotal:     v.Subtotal.String(),
		ShippingCost: v.ShippingCost.String(),
		Discount:     v.Discount.String(),
		Total:        v.Total.String(),
		CouponCode:   v.CouponCode,
		CouponError:  v.CouponError,
	}
	for _, l := range v.Lines {
		resp.Items = append(resp.Items, cartItemResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			ImageURL:  l.ImageURL,
			UnitPrice: l.UnitPrice.String(),
			Quantity:  l.Quantity,
			Stock:     l.Stock,
			Total:     l.Total.String(),
		})
	}
	return resp
}

func newReorderResponse(r commands.ReorderResult) reorderResponse {
	dropped := r.Dropped
	if dropped == nil {
		dropped = []string{}
	}
	return reorderResponse{Cart: newCartResponse(r.Cart), DroppedItems: dropped}
}

// orderView projects an aggregate returned by a command onto the same shape
// the queries return.
func orderView(o *order.Order) queries.OrderView {
	view := queries.OrderView{
		ID:              o.ID(),
		CustomerID:      o.CustomerID(),
		OwnerID:         o.OwnerID(),
		DeliveryID:      o.DeliveryID(),
		Status:          o.Status(),
		Items:           make([]queries.OrderItemView, 0, len(o.Lines())),
		Subtotal:        o.Subtotal(),
		ShippingCost:    o.ShippingCost(),
		Discount:        o.Discount(),
		Total:           o.Total(),
		CouponCode:      o.CouponCode(),
		PaymentMethod:   o.PaymentMethod(),
		Notes:           o.Notes(),
		ShippingAddress: addressView(o.ShippingAddress()),
		Timeline:        make([]queries.TimelineEntryView, 0, len(o.Timeline())),
		CreatedAt:       o.CreatedAt(),
	}
	for _, l := range o.Lines() {
		view.Items = append(view.Items, queries.OrderItemView{
			ProductID: l.ProductID(),
			Name:      l.Name(),
			Quantity:  l.Quantity(),
			UnitPrice: l.UnitPrice(),
			Total:     l.Total(),
		})
	}
	for _, e := range o.Timeline() {
		view.Timeline = append(view.Timeline, queries.TimelineEntryView{Status: e.Status(), At: e.At()})
	}
	return view
}

func newOrderResponse(v queries.OrderView) orderResponse {
	resp := orderResponse{
		ID:              v.ID.String(),
		CustomerID:      v.CustomerID.String(),
		OwnerID:         v.OwnerID.String(),
		Status:          v.Status.String(),
		Items:           make([]orderItemResponse, 0, len(v.Items)),
		Subtotal:        v.Subtotal.String(),
		ShippingCost:    v.ShippingCost.String(),
		Discount:        v.Discount.String(),
		Total:           v.Total.String(),
		CouponCode:      v.CouponCode,
		PaymentMethod:   v.PaymentMethod.String(),
		Notes:           v.Notes,
		ShippingAddress: newAddressResponse(v.ShippingAddress),
		Timeline:        make([]statusAtResponse, 0, len(v.Timeline)),
		CreatedAt:       v.CreatedAt,
	}
	if v.DeliveryID != nil {
		resp.DeliveryID = v.DeliveryID.String()
	}
	for _, item := range v.Items {
		resp.Items = append(resp.Items, orderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.String(),
			Total:     item.Total.String(),
		})
	}
	for _, e := range v.Timeline {
		resp.Timeline = append(resp.Timeline, statusAtResponse{Status: e.Status.String(), At: e.At})
	}
	return resp
}

func deliveryView(d *delivery.Delivery) queries.DeliveryView {
	assignedAt, _ := d.StatusAt(delivery.Assigned)
	view := queries.DeliveryView{
		ID:         d.ID(),
		OrderID:    d.OrderID(),
		AgentID:    d.AgentID(),
		Status:     d.Status(),
		Dropoff:    addressView(d.Dropoff()),
		AssignedAt: assignedAt,
		Timestamps: make([]queries.DeliveryStampView, 0, len(d.Stamps())),
	}
	for _, s := range d.Stamps() {
		view.Timestamps = append(view.Timestamps, queries.DeliveryStampView{Status: s.Status, At: s.At})
	}
	return view
}

func newDeliveryResponse(v queries.DeliveryView) deliveryResponse {
	resp := deliveryResponse{
		ID:         v.ID.String(),
		OrderID:    v.OrderID.String(),
		AgentID:    v.AgentID.String(),
		Status:     v.Status.String(),
		Dropoff:    newAddressResponse(v.Dropoff),
		AssignedAt: v.AssignedAt,
		Timestamps: make([]statusAtResponse, 0, len(v.Timestamps)),
	}
	for _, s := range v.Timestamps {
		resp.Timestamps = append(resp.Timestamps, statusAtResponse{Status: s.Status.String(), At: s.At})
	}
	return resp
}

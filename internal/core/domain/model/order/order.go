package order

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// MaxNotesLength bounds the free-text delivery notes.
const MaxNotesLength = 500

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrDeliveryAlreadyAttached is the cause of the IllegalTransitionError returned by
	// AttachDelivery when the order already has a delivery.
	ErrDeliveryAlreadyAttached = errors.New("order already has a delivery")
)

// Pricing carries the monetary inputs decided at checkout. The subtotal is
// always derived from the lines.
type Pricing struct {
	ShippingCost kernel.Money
	Discount     kernel.Money
	CouponCode   string
}

// Draft is everything needed to place a new order.
type Draft struct {
	ID              kernel.UUID
	CustomerID      kernel.UUID
	OwnerID         kernel.UUID
	Lines           []Line
	ShippingAddress kernel.Address
	PaymentMethod   PaymentMethod
	Notes           string
	Pricing         Pricing
}

// Snapshot is the persisted form of an order, used by RestoreOrder.
type Snapshot struct {
	Draft
	Status     Status
	Timeline   []TimelineEntry
	DeliveryID *kernel.UUID
	CreatedAt  time.Time
	Version    int64
}

// Order is the aggregate root of a purchase. It is owned by the customer who
// placed it and is never destroyed; terminal orders are kept for history.
//
// Order follows these invariants:
//   - lines are non-empty and immutable after creation
//   - total = max(0, subtotal + shippingCost - discount)
//   - status only moves along the legal edges, checked by Transition
//   - the timeline has one entry per status reached, with non-decreasing timestamps
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	ownerID    kernel.UUID

	lines           []Line
	shippingAddress kernel.Address
	paymentMethod   PaymentMethod
	notes           string
	couponCode      string

	subtotal     kernel.Money
	shippingCost kernel.Money
	discount     kernel.Money
	total        kernel.Money

	status     Status
	timeline   []TimelineEntry
	deliveryID *kernel.UUID
	createdAt  time.Time

	// version is the persisted version this instance was loaded at.
	version int64

	domainEvents []kernel.DomainEvent

	isConstructed bool
}

// NewOrder places a new order in Pending with a single timeline entry.
//
// Every field of the draft is validated and all failures are reported
// together. An empty line list fails with a ValueIsRequiredError for "cart".
func NewOrder(draft Draft, at time.Time) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := o.applyDraft(draft); err != nil {
		return nil, err
	}
	if at.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	o.status = Pending
	o.timeline = []TimelineEntry{{status: Pending, at: at}}
	o.createdAt = at

	o.record(PlacedEvent{
		ID:         kernel.NewUUID(),
		OrderID:    o.id,
		CustomerID: o.customerID,
		OwnerID:    o.ownerID,
		Total:      o.total.String(),
		At:         at,
	})

	return o, nil
}

// RestoreOrder rebuilds an order from storage. It records no events.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := o.applyDraft(s.Draft); err != nil {
		return nil, err
	}
	if err := errors.Join(s.Status.Validate(), validateTimeline(s.Timeline, s.Status)); err != nil {
		return nil, err
	}
	if s.DeliveryID != nil {
		if err := s.DeliveryID.Validate(); err != nil {
			return nil, err
		}
		id := *s.DeliveryID
		o.deliveryID = &id
	}

	o.status = s.Status
	o.timeline = append([]TimelineEntry(nil), s.Timeline...)
	o.createdAt = s.CreatedAt
	o.version = s.Version

	return o, nil
}

// Validate ensures the Order instance was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) CustomerID() kernel.UUID { return o.customerID }
func (o *Order) OwnerID() kernel.UUID { return o.ownerID }
func (o *Order) ShippingAddress() kernel.Address { return o.shippingAddress }
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }
func (o *Order) Notes() string { return o.notes }
func (o *Order) CouponCode() string { return o.couponCode }
func (o *Order) Subtotal() kernel.Money { return o.subtotal }
func (o *Order) ShippingCost() kernel.Money { return o.shippingCost }
func (o *Order) Discount() kernel.Money { return o.discount }
func (o *Order) Total() kernel.Money { return o.total }
func (o *Order) Status() Status { return o.status }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) Version() int64 { return o.version }

// Lines returns a copy of the frozen purchase lines.
func (o *Order) Lines() []Line {
	return append([]Line(nil), o.lines...)
}

// Timeline returns a copy of the status history, oldest first.
func (o *Order) Timeline() []TimelineEntry {
	return append([]TimelineEntry(nil), o.timeline...)
}

// DeliveryID returns the attached delivery, or nil before assignment.
func (o *Order) DeliveryID() *kernel.UUID {
	if o.deliveryID == nil {
		return nil
	}
	id := *o.deliveryID
	return &id
}

// VisibleTo reports whether actor may read this order.
func (o *Order) VisibleTo(actor kernel.Actor) bool {
	return actor.IsSystem() ||
		actor.Is(kernel.RoleCustomer, o.customerID) ||
		actor.Is(kernel.RoleOwner, o.ownerID)
}

// Transition moves the order to target on behalf of actor.
//
// The checks run in this order and the first failure is returned with the
// order left unchanged:
//   - non-system actors may not leave OutForDelivery, Delivered or Cancelled (IllegalTransition)
//   - target must be a legal edge from the current status (IllegalTransition)
//   - actor must hold the capability for that edge (Unauthorized)
//
// On success the status changes, a timeline entry is appended and a
// StatusChangedEvent is recorded. A timestamp earlier than the last entry is
// raised to it so the timeline stays non-decreasing.
func (o *Order) Transition(target Status, actor kernel.Actor, at time.Time) error {
	if err := errors.Join(o.Validate(), actor.Validate(), target.Validate()); err != nil {
		return err
	}

	if !actor.IsSystem() && o.status.IsTerminal() {
		return errs.NewIllegalTransitionErrorWithCause("order", o.status.String(), target.String(),
			fmt.Errorf("%s is terminal for %s", o.status, actor.Role()))
	}
	if !o.status.CanTransitionTo(target) {
		return errs.NewIllegalTransitionError("order", o.status.String(), target.String())
	}
	if err := o.authorize(target, actor); err != nil {
		return err
	}

	if last := o.timeline[len(o.timeline)-1].at; at.Before(last) {
		at = last
	}

	from := o.status
	o.status = target
	o.timeline = append(o.timeline, TimelineEntry{status: target, at: at})
	o.record(StatusChangedEvent{
		ID:         kernel.NewUUID(),
		OrderID:    o.id,
		CustomerID: o.customerID,
		OwnerID:    o.ownerID,
		From:       from.String(),
		To:         target.String(),
		ActorRole:  actor.Role().String(),
		At:         at,
	})
	return nil
}

// Cancel is Transition(Cancelled) that reports OrderNotCancellableError when
// the order is outside {Pending, Confirmed, Processing}.
func (o *Order) Cancel(actor kernel.Actor, at time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if !o.status.IsCancellable() {
		return errs.NewOrderNotCancellableError(o.id.String(), o.status.String())
	}
	return o.Transition(Cancelled, actor, at)
}

// AttachDelivery links the delivery created for this order. The order must be
// Processing and may hold only one delivery.
func (o *Order) AttachDelivery(deliveryID kernel.UUID) error {
	if err := errors.Join(o.Validate(), deliveryID.Validate()); err != nil {
		return err
	}
	if o.status != Processing {
		return errs.NewIllegalTransitionErrorWithCause("order", o.status.String(), "DeliveryAssigned",
			errors.New("only Processing orders can be assigned"))
	}
	if o.deliveryID != nil {
		return errs.NewIllegalTransitionErrorWithCause("order", o.status.String(), "DeliveryAssigned",
			ErrDeliveryAlreadyAttached)
	}
	o.deliveryID = &deliveryID
	return nil
}

// SyncVersion is called by repositories after a successful write.
func (o *Order) SyncVersion(version int64) {
	o.version = version
}

func (o *Order) DomainEvents() []kernel.DomainEvent {
	return append([]kernel.DomainEvent(nil), o.domainEvents...)
}

func (o *Order) ClearDomainEvents() {
	o.domainEvents = nil
}

func (o *Order) record(event kernel.DomainEvent) {
	o.domainEvents = append(o.domainEvents, event)
}

func (o *Order) authorize(target Status, actor kernel.Actor) error {
	//nolint:exhaustive // remaining statuses are never targets of a legal edge
	switch target {
	case Confirmed, Processing:
		if actor.Is(kernel.RoleOwner, o.ownerID) {
			return nil
		}
	case Cancelled:
		if actor.Is(kernel.RoleCustomer, o.customerID) || actor.Is(kernel.RoleOwner, o.ownerID) {
			return nil
		}
	case OutForDelivery, Delivered:
		if actor.IsSystem() {
			return nil
		}
	}
	return errs.NewUnauthorizedError(actor.String(), "move order "+o.id.String()+" to "+target.String())
}

func (o *Order) applyDraft(d Draft) error {
	return errors.Join(
		o.setID(d.ID),
		o.setParties(d.CustomerID, d.OwnerID),
		o.setLines(d.Lines),
		o.setShippingAddress(d.ShippingAddress),
		o.setPaymentMethod(d.PaymentMethod),
		o.setNotes(d.Notes),
		o.setPricing(d.Pricing),
	)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setParties(customerID, ownerID kernel.UUID) error {
	if err := errors.Join(customerID.Validate(), ownerID.Validate()); err != nil {
		return err
	}
	o.customerID = customerID
	o.ownerID = ownerID
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("cart")
	}
	seen := make(map[string]struct{}, len(lines))
	subtotal := kernel.Zero
	for _, l := range lines {
		if l.productID == "" || l.quantity < 1 {
			return errs.NewValueIsInvalidError("lines")
		}
		if _, dup := seen[l.productID]; dup {
			return errs.NewValueIsInvalidErrorWithCause("lines", fmt.Errorf("product %s appears twice", l.productID))
		}
		seen[l.productID] = struct{}{}
		subtotal = subtotal.Add(l.Total())
	}
	o.lines = append([]Line(nil), lines...)
	o.subtotal = subtotal
	return nil
}

func (o *Order) setShippingAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("shippingAddress", err)
	}
	o.shippingAddress = address
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

func (o *Order) setNotes(notes string) error {
	if n := utf8.RuneCountInString(notes); n > MaxNotesLength {
		return errs.NewValueIsOutOfRangeError("notes", n, 0, MaxNotesLength)
	}
	o.notes = notes
	return nil
}

// setPricing must run after setLines.
func (o *Order) setPricing(p Pricing) error {
	if err := errors.Join(p.ShippingCost.NonNegative("shippingCost"), p.Discount.NonNegative("discount")); err != nil {
		return err
	}
	o.shippingCost = p.ShippingCost
	o.discount = p.Discount
	o.couponCode = p.CouponCode

	total := o.subtotal.Add(o.shippingCost).Sub(o.discount)
	if total.IsNegative() {
		total = kernel.Zero
	}
	o.total = total
	return nil
}

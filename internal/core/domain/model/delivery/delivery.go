package delivery

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")

// Stamp records when a status was reached.
type Stamp struct {
	Status Status
	At     time.Time
}

// Parties are the identities a delivery carries from its order.
type Parties struct {
	OrderID    kernel.UUID
	AgentID    kernel.UUID
	CustomerID kernel.UUID
	OwnerID    kernel.UUID
}

// Snapshot is the persisted form of a delivery, used by RestoreDelivery.
type Snapshot struct {
	ID      kernel.UUID
	Parties Parties
	Dropoff kernel.Address
	Status  Status
	Stamps  []Stamp
	Version int64
}

type Delivery struct {
	id         kernel.UUID
	orderID    kernel.UUID
	agentID    kernel.UUID
	customerID kernel.UUID
	ownerID    kernel.UUID
	dropoff    kernel.Address

	status Status
	stamps []Stamp

	version      int64
	domainEvents []kernel.DomainEvent

	isConstructed bool
}

// NewDelivery creates a delivery in Assigned. Whether the order may be
// delivered is decided by the caller; see services.FulfillmentCoordinator.
func NewDelivery(id kernel.UUID, parties Parties, dropoff kernel.Address, at time.Time) (*Delivery, error) {
	d := &Delivery{isConstructed: true}
	if err := errors.Join(d.setIdentity(id, parties), d.setDropoff(dropoff)); err != nil {
		return nil, err
	}
	if at.IsZero() {
		return nil, errs.NewValueIsRequiredError("assignedAt")
	}

	d.status = Assigned
	d.stamps = []Stamp{{Status: Assigned, At: at}}
	d.record(AssignedEvent{
		ID:         kernel.NewUUID(),
		DeliveryID: d.id,
		OrderID:    d.orderID,
		AgentID:    d.agentID,
		CustomerID: d.customerID,
		At:         at,
	})
	return d, nil
}

// RestoreDelivery rebuilds a delivery from storage without recording events.
func RestoreDelivery(s Snapshot) (*Delivery, error) {
	d := &Delivery{isConstructed: true}
	if err := errors.Join(d.setIdentity(s.ID, s.Parties), d.setDropoff(s.Dropoff), s.Status.Validate()); err != nil {
		return nil, err
	}
	if err := validateStamps(s.Stamps, s.Status); err != nil {
		return nil, err
	}
	d.status = s.Status
	d.stamps = append([]Stamp(nil), s.Stamps...)
	d.version = s.Version
	return d, nil
}

func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

func (d *Delivery) ID() kernel.UUID { return d.id }
func (d *Delivery) OrderID() kernel.UUID { return d.orderID }
func (d *Delivery) AgentID() kernel.UUID { return d.agentID }
func (d *Delivery) CustomerID() kernel.UUID { return d.customerID }
func (d *Delivery) OwnerID() kernel.UUID { return d.ownerID }
func (d *Delivery) Dropoff() kernel.Address { return d.dropoff }
func (d *Delivery) Status() Status { return d.status }
func (d *Delivery) Version() int64 { return d.version }

func (d *Delivery) Parties() Parties {
	return Parties{OrderID: d.orderID, AgentID: d.agentID, CustomerID: d.customerID, OwnerID: d.ownerID}
}

// Stamps returns a copy of the status history, oldest first.
func (d *Delivery) Stamps() []Stamp {
	return append([]Stamp(nil), d.stamps...)
}

// StatusAt returns when status was reached.
func (d *Delivery) StatusAt(status Status) (time.Time, bool) {
	for _, s := range d.stamps {
		if s.Status == status {
			return s.At, true
		}
	}
	return time.Time{}, false
}

// VisibleTo reports whether actor may read this delivery.
func (d *Delivery) VisibleTo(actor kernel.Actor) bool {
	return actor.IsSystem() ||
		actor.Is(kernel.RoleAgent, d.agentID) ||
		actor.Is(kernel.RoleCustomer, d.customerID) ||
		actor.Is(kernel.RoleOwner, d.ownerID)
}

// Advance moves the delivery to the next status and returns it. Archived
// deliveries fail with IllegalTransition; anyone but the assigned agent fails
// with Unauthorized.
func (d *Delivery) Advance(actor kernel.Actor, at time.Time) (Status, error) {
	if err := errors.Join(d.Validate(), actor.Validate()); err != nil {
		return Unknown, err
	}
	next, ok := d.status.Next()
	if !ok {
		return Unknown, errs.NewIllegalTransitionErrorWithCause("delivery", d.status.String(), "next",
			errors.New("delivery is archived"))
	}
	if !actor.Is(kernel.RoleAgent, d.agentID) {
		return Unknown, errs.NewUnauthorizedError(actor.String(), "advance delivery "+d.id.String())
	}
	d.moveTo(next, actor, at)
	return next, nil
}

// Cancel is legal from Assigned or Accepted only; later statuses fail with
// OrderNotCancellable because the goods are in transit.
func (d *Delivery) Cancel(actor kernel.Actor, at time.Time) error {
	if err := errors.Join(d.Validate(), actor.Validate()); err != nil {
		return err
	}
	if !d.status.IsCancellable() {
		return errs.NewOrderNotCancellableError(d.orderID.String(), "delivery "+d.status.String())
	}
	if !actor.Is(kernel.RoleCustomer, d.customerID) && !actor.Is(kernel.RoleOwner, d.ownerID) {
		return errs.NewUnauthorizedError(actor.String(), "cancel delivery "+d.id.String())
	}
	d.moveTo(Cancelled, actor, at)
	return nil
}

// SyncVersion is called by repositories after a successful write.
func (d *Delivery) SyncVersion(version int64) {
	d.version = version
}

func (d *Delivery) DomainEvents() []kernel.DomainEvent {
	return append([]kernel.DomainEvent(nil), d.domainEvents...)
}

func (d *Delivery) ClearDomainEvents() {
	d.domainEvents = nil
}

func (d *Delivery) moveTo(target Status, actor kernel.Actor, at time.Time) {
	if last := d.stamps[len(d.stamps)-1].At; at.Before(last) {
		at = last
	}
	from := d.status
	d.status = target
	d.stamps = append(d.stamps, Stamp{Status: target, At: at})
	d.record(StatusChangedEvent{
		ID:         kernel.NewUUID(),
		DeliveryID: d.id,
		OrderID:    d.orderID,
		AgentID:    d.agentID,
		CustomerID: d.customerID,
		From:       from.String(),
		To:         target.String(),
		ActorRole:  actor.Role().String(),
		At:         at,
	})
}

func (d *Delivery) record(event kernel.DomainEvent) {
	d.domainEvents = append(d.domainEvents, event)
}

func (d *Delivery) setIdentity(id kernel.UUID, p Parties) error {
	if err := errors.Join(
		id.Validate(),
		p.OrderID.Validate(),
		p.AgentID.Validate(),
		p.CustomerID.Validate(),
		p.OwnerID.Validate(),
	); err != nil {
		return err
	}
	d.id = id
	d.orderID = p.OrderID
	d.agentID = p.AgentID
	d.customerID = p.CustomerID
	d.ownerID = p.OwnerID
	return nil
}

func (d *Delivery) setDropoff(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("dropoff", err)
	}
	d.dropoff = address
	return nil
}

func validateStamps(stamps []Stamp, current Status) error {
	if len(stamps) == 0 || stamps[0].Status != Assigned {
		return errs.NewValueIsInvalidErrorWithCause("stamps", errors.New("must start at Assigned"))
	}
	for i := 1; i < len(stamps); i++ {
		prev, next := stamps[i-1], stamps[i]
		expected, ok := prev.Status.Next()
		legal := (ok && next.Status == expected) || (next.Status == Cancelled && prev.Status.IsCancellable())
		if !legal {
			return errs.NewValueIsInvalidErrorWithCause("stamps", fmt.Errorf("%s cannot follow %s", next.Status, prev.Status))
		}
		if next.At.Before(prev.At) {
			return errs.NewValueIsInvalidErrorWithCause("stamps", fmt.Errorf("%s is earlier than %s", next.Status, prev.Status))
		}
	}
	if last := stamps[len(stamps)-1].Status; last != current {
		return errs.NewValueIsInvalidErrorWithCause("stamps", fmt.Errorf("ends at %s but status is %s", last, current))
	}
	return nil
}

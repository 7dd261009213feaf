package queries_test

import (
	"fmt"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/deliveryrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/testdb"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.AggregateRoot) {}

var day = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type world struct {
	db         *gorm.DB
	orders     *orderrepo.GormOrderRepository
	deliveries *deliveryrepo.GormDeliveryRepository

	customer kernel.Actor
	stranger kernel.Actor
	owner    kernel.Actor
	rival    kernel.Actor
	agent    kernel.Actor
}

func actor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}

func newWorld(t *testing.T) world {
	t.Helper()
	db := testdb.New(t)
	return world{
		db:         db,
		orders:     orderrepo.NewGormOrderRepository(db, noopTracker{}),
		deliveries: deliveryrepo.NewGormDeliveryRepository(db, noopTracker{}),
		customer:   actor(t, kernel.RoleCustomer),
		stranger:   actor(t, kernel.RoleCustomer),
		owner:      actor(t, kernel.RoleOwner),
		rival:      actor(t, kernel.RoleOwner),
		agent:      actor(t, kernel.RoleAgent),
	}
}

// place stores a Pending order with one line per item name, priced 1.00 each.
func (w world) place(t *testing.T, customer, owner kernel.Actor, at time.Time, items ...string) *order.Order {
	t.Helper()
	lines := make([]order.Line, 0, len(items))
	for i, name := range items {
		l, err := order.NewLine(fmt.Sprint(i+1), name, 1, kernel.MoneyFromCents(100))
		require.NoError(t, err)
		lines = append(lines, l)
	}
	address, err := kernel.NewAddress("Ada Lovelace", "1 Main St", "Springfield", "12345", "+1 555 0100")
	require.NoError(t, err)

	o, err := order.NewOrder(order.Draft{
		ID:              kernel.NewUUID(),
		CustomerID:      customer.ID(),
		OwnerID:         owner.ID(),
		Lines:           lines,
		ShippingAddress: address,
		PaymentMethod:   order.PaymentCard,
		Pricing:         order.Pricing{ShippingCost: kernel.MoneyFromCents(500)},
	}, at)
	require.NoError(t, err)
	require.NoError(t, w.orders.Add(t.Context(), o))
	return o
}

// process moves o to Processing on behalf of its owner.
func (w world) process(t *testing.T, o *order.Order, owner kernel.Actor) {
	t.Helper()
	at := o.CreatedAt()
	for _, s := range []order.Status{order.Confirmed, order.Processing} {
		at = at.Add(time.Minute)
		require.NoError(t, o.Transition(s, owner, at))
		require.NoError(t, w.orders.Update(t.Context(), o))
	}
}

// assign hands a Processing order to agent.
func (w world) assign(t *testing.T, o *order.Order, agent kernel.Actor) *delivery.Delivery {
	t.Helper()
	at := o.CreatedAt().Add(time.Hour)
	d, err := delivery.NewDelivery(kernel.NewUUID(), delivery.Parties{
		OrderID:    o.ID(),
		AgentID:    agent.ID(),
		CustomerID: o.CustomerID(),
		OwnerID:    o.OwnerID(),
	}, o.ShippingAddress(), at)
	require.NoError(t, err)
	require.NoError(t, o.AttachDelivery(d.ID()))
	require.NoError(t, w.deliveries.Add(t.Context(), d))
	require.NoError(t, w.orders.Update(t.Context(), o))
	return d
}

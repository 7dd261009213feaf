package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type parties struct {
	customer kernel.Actor
	owner    kernel.Actor
	agent    kernel.Actor
}

func newParties(t *testing.T) parties {
	t.Helper()
	customer, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleCustomer)
	require.NoError(t, err)
	owner, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleOwner)
	require.NoError(t, err)
	agent, err := kernel.NewActor(kernel.NewUUID(), kernel.RoleAgent)
	require.NoError(t, err)
	return parties{customer: customer, owner: owner, agent: agent}
}

func testAddress(t *testing.T) kernel.Address {
	t.Helper()
	addr, err := kernel.NewAddress("Ada Lovelace", "1 Main St", "Springfield", "12345", "+1 555 0100")
	require.NoError(t, err)
	return addr
}

func testDraft(t *testing.T, p parties) order.Draft {
	t.Helper()
	l1, err := order.NewLine("1", "Apples", 2, kernel.MoneyFromCents(599))
	require.NoError(t, err)
	l2, err := order.NewLine("3", "Pears", 1, kernel.MoneyFromCents(299))
	require.NoError(t, err)

	return order.Draft{
		ID:              kernel.NewUUID(),
		CustomerID:      p.customer.ID(),
		OwnerID:         p.owner.ID(),
		Lines:           []order.Line{l1, l2},
		ShippingAddress: testAddress(t),
		PaymentMethod:   order.PaymentCard,
		Notes:           "ring twice",
		Pricing:         order.Pricing{ShippingCost: kernel.MoneyFromCents(599)},
	}
}

func newPendingOrder(t *testing.T, p parties) *order.Order {
	t.Helper()
	o, err := order.NewOrder(testDraft(t, p), baseTime)
	require.NoError(t, err)
	return o
}

// advanceTo drives a fresh order along the happy path until it reaches target.
func advanceTo(t *testing.T, p parties, target order.Status) *order.Order {
	t.Helper()
	o := newPendingOrder(t, p)
	path := []struct {
		status order.Status
		actor  kernel.Actor
	}{
		{order.Confirmed, p.owner},
		{order.Processing, p.owner},
		{order.OutForDelivery, kernel.SystemActor()},
		{order.Delivered, kernel.SystemActor()},
	}
	if target == order.Cancelled {
		require.NoError(t, o.Cancel(p.customer, baseTime.Add(time.Minute)))
		return o
	}
	for i, step := range path {
		if o.Status() == target {
			break
		}
		require.NoError(t, o.Transition(step.status, step.actor, baseTime.Add(time.Duration(i+1)*time.Minute)))
	}
	require.Equal(t, target, o.Status())
	return o
}

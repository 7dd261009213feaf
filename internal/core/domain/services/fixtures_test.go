package services_test

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

func newOrder(t *testing.T, p parties, status order.Status) *order.Order {
	t.Helper()
	addr, err := kernel.NewAddress("Ada Lovelace", "1 Main St", "Springfield", "12345", "+1 555 0100")
	require.NoError(t, err)
	apples, err := order.NewLine("1", "Apples", 2, kernel.MoneyFromCents(599))
	require.NoError(t, err)
	pears, err := order.NewLine("3", "Pears", 3, kernel.MoneyFromCents(299))
	require.NoError(t, err)

	o, err := order.NewOrder(order.Draft{
		ID:              kernel.NewUUID(),
		CustomerID:      p.customer.ID(),
		OwnerID:         p.owner.ID(),
		Lines:           []order.Line{apples, pears},
		ShippingAddress: addr,
		PaymentMethod:   order.PaymentCash,
		Pricing:         order.Pricing{ShippingCost: kernel.MoneyFromCents(599)},
	}, baseTime)
	require.NoError(t, err)

	steps := []order.Status{order.Confirmed, order.Processing}
	for i, s := range steps {
		if o.Status() == status {
			break
		}
		require.NoError(t, o.Transition(s, p.owner, baseTime.Add(time.Duration(i+1)*time.Minute)))
	}
	require.Equal(t, status, o.Status())
	return o
}

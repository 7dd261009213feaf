package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/coupon"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

const sessionKey = "session-1"

// env wires every handler to the in-memory adapters.
type env struct {
	store     *memStore
	carts     *memCarts
	catalog   memCatalog
	addresses memAddressBook

	customer kernel.Actor
	owner    kernel.Actor
	agent    kernel.Actor
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		store:     newMemStore(),
		carts:     newMemCarts(),
		catalog:   memCatalog{},
		addresses: memAddressBook{},
	}

	var err error
	e.customer, err = kernel.NewActor(kernel.NewUUID(), kernel.RoleCustomer)
	require.NoError(t, err)
	e.owner, err = kernel.NewActor(kernel.NewUUID(), kernel.RoleOwner)
	require.NoError(t, err)
	e.agent, err = kernel.NewActor(kernel.NewUUID(), kernel.RoleAgent)
	require.NoError(t, err)

	e.addProduct(t, "1", "Apples", 599, 10, e.owner.ID())
	e.addProduct(t, "3", "Pears", 299, 5, e.owner.ID())

	addr, err := kernel.NewAddress("Ada Lovelace", "1 Main St", "Springfield", "12345", "+1 555 0100")
	require.NoError(t, err)
	e.addresses[e.customer.ID()] = addr
	return e
}

func (e *env) addProduct(t *testing.T, id, name string, cents int64, stock int, owner kernel.UUID) {
	t.Helper()
	p, err := catalog.NewProduct(id, name, "", kernel.MoneyFromCents(cents), stock, owner)
	require.NoError(t, err)
	e.catalog[id] = p
}

func (e *env) cartHandler() commands.CartCommandHandler {
	return commands.NewCartCommandHandler(e.carts, e.catalog)
}

func (e *env) placeOrderHandler() commands.PlaceOrderCommandHandler {
	quoter := services.NewPriceQuoter(coupon.DefaultRegistry(), kernel.MoneyFromCents(599))
	return commands.NewPlaceOrderCommandHandler(orderUoWFactory{e.store}, e.carts, e.catalog, e.addresses, quoter)
}

func (e *env) fillCart(t *testing.T) {
	t.Helper()
	h := e.cartHandler()
	for _, item := range []struct {
		id  string
		qty int
	}{{"1", 2}, {"3", 1}} {
		cmd, err := commands.NewAddCartItemCommand(sessionKey, item.id, item.qty)
		require.NoError(t, err)
		_, err = h.AddItem(t.Context(), cmd)
		require.NoError(t, err)
	}
}

func (e *env) placeOrder(t *testing.T) *order.Order {
	t.Helper()
	e.fillCart(t)
	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), e.customer, sessionKey, nil, order.PaymentCard, "", "")
	require.NoError(t, err)
	o, err := e.placeOrderHandler().Handle(t.Context(), cmd)
	require.NoError(t, err)
	return o
}

func (e *env) transition(t *testing.T, orderID kernel.UUID, actor kernel.Actor, target order.Status) (*order.Order, error) {
	t.Helper()
	cmd, err := commands.NewTransitionOrderCommand(orderID, actor, target)
	require.NoError(t, err)
	return commands.NewTransitionOrderCommandHandler(uowFactory{e.store}).Handle(t.Context(), cmd)
}

// processingOrder places an order and lets the owner confirm and start it.
func (e *env) processingOrder(t *testing.T) *order.Order {
	t.Helper()
	o := e.placeOrder(t)
	_, err := e.transition(t, o.ID(), e.owner, order.Confirmed)
	require.NoError(t, err)
	o, err = e.transition(t, o.ID(), e.owner, order.Processing)
	require.NoError(t, err)
	return o
}

func (e *env) assign(t *testing.T, orderID kernel.UUID) *delivery.Delivery {
	t.Helper()
	cmd, err := commands.NewAssignDeliveryCommand(kernel.NewUUID(), orderID, e.owner, e.agent.ID())
	require.NoError(t, err)
	d, err := commands.NewAssignDeliveryCommandHandler(uowFactory{e.store}).Handle(t.Context(), cmd)
	require.NoError(t, err)
	return d
}

func (e *env) advance(t *testing.T, deliveryID kernel.UUID, actor kernel.Actor) (*delivery.Delivery, error) {
	t.Helper()
	cmd, err := commands.NewAdvanceDeliveryCommand(deliveryID, actor)
	require.NoError(t, err)
	return commands.NewAdvanceDeliveryCommandHandler(uowFactory{e.store}).Handle(t.Context(), cmd)
}

func (e *env) cancelDelivery(t *testing.T, deliveryID kernel.UUID, actor kernel.Actor) (*delivery.Delivery, error) {
	t.Helper()
	cmd, err := commands.NewCancelDeliveryCommand(deliveryID, actor)
	require.NoError(t, err)
	return commands.NewCancelDeliveryCommandHandler(uowFactory{e.store}).Handle(t.Context(), cmd)
}

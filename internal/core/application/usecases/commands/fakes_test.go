package commands_test

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/require"
)

// memStore is a versioned in-memory database. Writes are checked and applied
// atomically on commit, mirroring the "WHERE id = ? AND version = ?" updates of
// the gorm repositories.
type memStore struct {
	mu         sync.Mutex
	orders     map[kernel.UUID]order.Snapshot
	deliveries map[kernel.UUID]delivery.Snapshot
	outbox     []ports.Notification
	published  map[kernel.UUID]bool

	// beforeCommit runs outside the lock before a commit is applied.
	beforeCommit func()
}

func newMemStore() *memStore {
	return &memStore{
		orders:     make(map[kernel.UUID]order.Snapshot),
		deliveries: make(map[kernel.UUID]delivery.Snapshot),
		published:  make(map[kernel.UUID]bool),
	}
}

func (s *memStore) unpublished() []ports.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ports.Notification
	for _, n := range s.outbox {
		if !s.published[n.ID] {
			out = append(out, n)
		}
	}
	return out
}

func (s *memStore) orderStatus(t *testing.T, id kernel.UUID) order.Status {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, ok := s.orders[id]
	require.True(t, ok)
	return snap.Status
}

func orderSnapshot(o *order.Order) order.Snapshot {
	return order.Snapshot{
		Draft: order.Draft{
			ID:              o.ID(),
			CustomerID:      o.CustomerID(),
			OwnerID:         o.OwnerID(),
			Lines:           o.Lines(),
			ShippingAddress: o.ShippingAddress(),
			PaymentMethod:   o.PaymentMethod(),
			Notes:           o.Notes(),
			Pricing: order.Pricing{
				ShippingCost: o.ShippingCost(),
				Discount:     o.Discount(),
				CouponCode:   o.CouponCode(),
			},
		},
		Status:     o.Status(),
		Timeline:   o.Timeline(),
		DeliveryID: o.DeliveryID(),
		CreatedAt:  o.CreatedAt(),
		Version:    o.Version(),
	}
}

func deliverySnapshot(d *delivery.Delivery) delivery.Snapshot {
	return delivery.Snapshot{
		ID:      d.ID(),
		Parties: d.Parties(),
		Dropoff: d.Dropoff(),
		Status:  d.Status(),
		Stamps:  d.Stamps(),
		Version: d.Version(),
	}
}

type write struct {
	insert   bool
	expected int64
	order    *order.Order
	delivery *delivery.Delivery
}

type fakeUoW struct {
	store     *memStore
	writes    []write
	published []kernel.UUID
}

func (u *fakeUoW) Begin(context.Context) error { return nil }
func (u *fakeUoW) Rollback(context.Context) error { return nil }

func (u *fakeUoW) Commit(context.Context) error {
	if u.store.beforeCommit != nil {
		u.store.beforeCommit()
	}
	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range u.writes {
		if err := s.check(w); err != nil {
			return err
		}
	}

	for _, w := range u.writes {
		var root kernel.AggregateRoot
		switch {
		case w.order != nil:
			w.order.SyncVersion(w.expected + 1)
			s.orders[w.order.ID()] = orderSnapshot(w.order)
			root = w.order
		case w.delivery != nil:
			w.delivery.SyncVersion(w.expected + 1)
			s.deliveries[w.delivery.ID()] = deliverySnapshot(w.delivery)
			root = w.delivery
		}
		for _, event := range root.DomainEvents() {
			n, err := ports.NotificationFromEvent(event)
			if err != nil {
				return err
			}
			s.outbox = append(s.outbox, n)
		}
		root.ClearDomainEvents()
	}
	for _, id := range u.published {
		s.published[id] = true
	}
	u.writes = nil
	return nil
}

func (s *memStore) check(w write) error {
	var (
		exists  bool
		version int64
		id      kernel.UUID
		entity  string
	)
	if w.order != nil {
		var snap order.Snapshot
		snap, exists = s.orders[w.order.ID()]
		version, id, entity = snap.Version, w.order.ID(), "order"
	} else {
		var snap delivery.Snapshot
		snap, exists = s.deliveries[w.delivery.ID()]
		version, id, entity = snap.Version, w.delivery.ID(), "delivery"
	}
	switch {
	case w.insert && exists:
		return errs.NewConflictError(entity, id.String(), 0)
	case !w.insert && !exists:
		return errs.NewObjectNotFoundError(entity, id)
	case !w.insert && version != w.expected:
		return errs.NewConflictError(entity, id.String(), w.expected)
	}
	return nil
}

func (u *fakeUoW) OrderRepository() ports.OrderRepository { return fakeOrderRepo{u} }
func (u *fakeUoW) DeliveryRepository() ports.DeliveryRepository { return fakeDeliveryRepo{u} }
func (u *fakeUoW) OutboxRepository() ports.OutboxRepository { return fakeOutboxRepo{u} }

type fakeOrderRepo struct{ uow *fakeUoW }

func (r fakeOrderRepo) Add(_ context.Context, o *order.Order) error {
	r.uow.writes = append(r.uow.writes, write{insert: true, order: o})
	return nil
}

func (r fakeOrderRepo) Update(_ context.Context, o *order.Order) error {
	r.uow.writes = append(r.uow.writes, write{expected: o.Version(), order: o})
	return nil
}

func (r fakeOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	s := r.uow.store
	s.mu.Lock()
	snap, ok := s.orders[id]
	s.mu.Unlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return order.RestoreOrder(snap)
}

type fakeDeliveryRepo struct{ uow *fakeUoW }

func (r fakeDeliveryRepo) Add(_ context.Context, d *delivery.Delivery) error {
	r.uow.writes = append(r.uow.writes, write{insert: true, delivery: d})
	return nil
}

func (r fakeDeliveryRepo) Update(_ context.Context, d *delivery.Delivery) error {
	r.uow.writes = append(r.uow.writes, write{expected: d.Version(), delivery: d})
	return nil
}

func (r fakeDeliveryRepo) Get(_ context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	s := r.uow.store
	s.mu.Lock()
	snap, ok := s.deliveries[id]
	s.mu.Unlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery", id)
	}
	return delivery.RestoreDelivery(snap)
}

func (r fakeDeliveryRepo) GetByOrder(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	s := r.uow.store
	s.mu.Lock()
	var found *delivery.Snapshot
	for _, snap := range s.deliveries {
		if snap.Parties.OrderID.IsEqual(orderID) {
			found = &snap
			break
		}
	}
	s.mu.Unlock()
	if found == nil {
		return nil, errs.NewObjectNotFoundError("orderId", orderID)
	}
	return r.Get(ctx, found.ID)
}

type fakeOutboxRepo struct{ uow *fakeUoW }

func (r fakeOutboxRepo) GetUnpublished(_ context.Context, limit int) ([]ports.Notification, error) {
	pending := r.uow.store.unpublished()
	sort.SliceStable(pending, func(i, j int) bool { return pending[i].OccurredAt.Before(pending[j].OccurredAt) })
	if len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (r fakeOutboxRepo) MarkPublished(_ context.Context, ids []kernel.UUID, _ time.Time) error {
	r.uow.published = append(r.uow.published, ids...)
	return nil
}

type uowFactory struct{ store *memStore }

func (f uowFactory) Create() commands.UoW { return &fakeUoW{store: f.store} }

type orderUoWFactory struct{ store *memStore }

func (f orderUoWFactory) Create() commands.OrderUoW { return &fakeUoW{store: f.store} }

type outboxUoWFactory struct{ store *memStore }

func (f outboxUoWFactory) Create() commands.OutboxUoW { return &fakeUoW{store: f.store} }

type memCarts struct {
	mu       sync.Mutex
	carts    map[string][]cart.Line
	clearErr error
}

func newMemCarts() *memCarts {
	return &memCarts{carts: make(map[string][]cart.Line)}
}

func (m *memCarts) Get(_ context.Context, sessionKey string) (*cart.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cart.RestoreCart(m.carts[sessionKey])
}

func (m *memCarts) Set(_ context.Context, sessionKey string, c *cart.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[sessionKey] = c.Lines()
	return nil
}

func (m *memCarts) Clear(_ context.Context, sessionKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.clearErr != nil {
		return m.clearErr
	}
	delete(m.carts, sessionKey)
	return nil
}

type memCatalog map[string]catalog.Product

func (m memCatalog) Get(_ context.Context, productID string) (catalog.Product, error) {
	p, ok := m[productID]
	if !ok {
		return catalog.Product{}, errs.NewObjectNotFoundError("productId", productID)
	}
	return p, nil
}

func (m memCatalog) GetMany(_ context.Context, productIDs []string) (map[string]catalog.Product, error) {
	out := make(map[string]catalog.Product, len(productIDs))
	for _, id := range productIDs {
		if p, ok := m[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

type memAddressBook map[kernel.UUID]kernel.Address

func (m memAddressBook) Get(_ context.Context, customerID, addressID kernel.UUID) (kernel.Address, error) {
	return kernel.Address{}, errs.NewObjectNotFoundError("address", addressID)
}

func (m memAddressBook) GetDefault(_ context.Context, customerID kernel.UUID) (kernel.Address, error) {
	a, ok := m[customerID]
	if !ok {
		return kernel.Address{}, errs.NewObjectNotFoundError("address", customerID)
	}
	return a, nil
}

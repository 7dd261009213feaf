package orderrepo_test

import (
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/testdb"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(aggregate kernel.AggregateRoot) {
	m.Called(aggregate)
}

type OrderRepositoryTestSuite struct {
	suite.Suite
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker

	customer kernel.Actor
	owner    kernel.Actor
}

func TestOrderRepository(t *testing.T) {
	suite.Run(t, new(OrderRepositoryTestSuite))
}

func (suite *OrderRepositoryTestSuite) SetupTest() {
	suite.db = testdb.New(suite.T())
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)

	var err error
	suite.customer, err = kernel.NewActor(kernel.NewUUID(), kernel.RoleCustomer)
	suite.Require().NoError(err)
	suite.owner, err = kernel.NewActor(kernel.NewUUID(), kernel.RoleOwner)
	suite.Require().NoError(err)
}

var placedAt = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func (suite *OrderRepositoryTestSuite) newOrder() *order.Order {
	apples, err := order.NewLine("1", "Apples", 2, kernel.MoneyFromCents(599))
	suite.Require().NoError(err)
	pears, err := order.NewLine("3", "Pears", 1, kernel.MoneyFromCents(299))
	suite.Require().NoError(err)
	address, err := kernel.NewAddress("Ada Lovelace", "1 Main St", "Springfield", "12345", "+1 555 0100")
	suite.Require().NoError(err)

	o, err := order.NewOrder(order.Draft{
		ID:              kernel.NewUUID(),
		CustomerID:      suite.customer.ID(),
		OwnerID:         suite.owner.ID(),
		Lines:           []order.Line{apples, pears},
		ShippingAddress: address,
		PaymentMethod:   order.PaymentCard,
		Notes:           "ring twice",
		Pricing: order.Pricing{
			ShippingCost: kernel.MoneyFromCents(599),
			Discount:     kernel.MoneyFromCents(150),
			CouponCode:   "SAVE10",
		},
	}, placedAt)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryTestSuite) add(o *order.Order) {
	suite.tracker.On("TrackAggregate", o).Once()
	suite.Require().NoError(suite.repository.Add(suite.T().Context(), o))
}

func (suite *OrderRepositoryTestSuite) TestAdd_should_persist_order_at_version_one() {
	o := suite.newOrder()

	suite.add(o)

	suite.Equal(int64(1), o.Version())
	var lines, timeline int64
	suite.Require().NoError(suite.db.Model(&orderrepo.LineDTO{}).Count(&lines).Error)
	suite.Require().NoError(suite.db.Model(&orderrepo.TimelineEntryDTO{}).Count(&timeline).Error)
	suite.Equal(int64(2), lines)
	suite.Equal(int64(1), timeline)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryTestSuite) TestAdd_should_reject_unconstructed_order() {
	err := suite.repository.Add(suite.T().Context(), &order.Order{})

	suite.Require().Error(err)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything)
}

func (suite *OrderRepositoryTestSuite) TestGet_should_restore_every_field() {
	o := suite.newOrder()
	suite.add(o)

	got, err := suite.repository.Get(suite.T().Context(), o.ID())

	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(o.ID()))
	suite.True(got.CustomerID().IsEqual(suite.customer.ID()))
	suite.True(got.OwnerID().IsEqual(suite.owner.ID()))
	suite.Equal(order.Pending, got.Status())
	suite.Equal(order.PaymentCard, got.PaymentMethod())
	suite.Equal("ring twice", got.Notes())
	suite.Equal("SAVE10", got.CouponCode())
	suite.Equal("14.97", got.Subtotal().String())
	suite.Equal("5.99", got.ShippingCost().String())
	suite.Equal("1.50", got.Discount().String())
	suite.Equal("19.46", got.Total().String())
	suite.True(got.ShippingAddress().IsEqual(o.ShippingAddress()))
	suite.True(got.CreatedAt().Equal(placedAt))
	suite.Equal(int64(1), got.Version())
	suite.Nil(got.DeliveryID())
	suite.Empty(got.DomainEvents())

	suite.Require().Len(got.Lines(), 2)
	suite.Equal("1", got.Lines()[0].ProductID())
	suite.Equal("Apples", got.Lines()[0].Name())
	suite.Equal(2, got.Lines()[0].Quantity())
	suite.Equal("3", got.Lines()[1].ProductID())
}

func (suite *OrderRepositoryTestSuite) TestGet_should_return_not_found() {
	_, err := suite.repository.Get(suite.T().Context(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryTestSuite) TestUpdate_should_append_timeline_and_bump_version() {
	ctx := suite.T().Context()
	o := suite.newOrder()
	suite.add(o)

	suite.Require().NoError(o.Transition(order.Confirmed, suite.owner, placedAt.Add(time.Minute)))
	suite.tracker.On("TrackAggregate", o).Once()
	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.Equal(int64(2), o.Version())

	suite.Require().NoError(o.Transition(order.Processing, suite.owner, placedAt.Add(2*time.Minute)))
	deliveryID := kernel.NewUUID()
	suite.Require().NoError(o.AttachDelivery(deliveryID))
	suite.tracker.On("TrackAggregate", o).Once()
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Processing, got.Status())
	suite.Equal(int64(3), got.Version())
	suite.Require().NotNil(got.DeliveryID())
	suite.True(got.DeliveryID().IsEqual(deliveryID))

	timeline := got.Timeline()
	suite.Require().Len(timeline, 3)
	suite.Equal(order.Pending, timeline[0].Status())
	suite.Equal(order.Confirmed, timeline[1].Status())
	suite.Equal(order.Processing, timeline[2].Status())
	suite.True(timeline[2].At().Equal(placedAt.Add(2 * time.Minute)))
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryTestSuite) TestUpdate_should_report_conflict_for_stale_version() {
	ctx := suite.T().Context()
	o := suite.newOrder()
	suite.add(o)

	stale, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(o.Transition(order.Confirmed, suite.owner, placedAt.Add(time.Minute)))
	suite.tracker.On("TrackAggregate", o).Once()
	suite.Require().NoError(suite.repository.Update(ctx, o))

	suite.Require().NoError(stale.Cancel(suite.customer, placedAt.Add(time.Minute)))
	err = suite.repository.Update(ctx, stale)

	suite.Require().ErrorIs(err, errs.ErrConflict)
	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, got.Status())
	suite.Len(got.Timeline(), 2)
}

func (suite *OrderRepositoryTestSuite) TestUpdate_should_return_not_found_for_unknown_order() {
	o := suite.newOrder()

	err := suite.repository.Update(suite.T().Context(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

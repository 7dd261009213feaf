package cmd

import (
	"errors"
	"io"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/notifier"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/addressrepo"
	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/adapters/out/redis/cartstore"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/coupon"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	redis      redis.Cmdable
	logger     zerolog.Logger
	registry   *prometheus.Registry
	uowFactory *postgres.GormUnitOfWorkFactory
	closers    []io.Closer
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, redisClient redis.Cmdable, logger zerolog.Logger) *CompositionRoot {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		redis:      redisClient,
		logger:     logger,
		registry:   registry,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
	}
}

// Close releases the resources created by the factories below.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i].Close())
	}
	c.closers = nil
	return err
}

func (c *CompositionRoot) Registry() *prometheus.Registry {
	return c.registry
}

func (c *CompositionRoot) CreateCartStore() ports.CartStore {
	return cartstore.NewRedisCartStore(c.redis, c.cfg.CartTTL)
}

func (c *CompositionRoot) CreateProductCatalog() ports.ProductCatalog {
	return catalogrepo.NewGormProductCatalog(c.gormDB)
}

func (c *CompositionRoot) CreateAddressBook() ports.AddressBook {
	return addressrepo.NewGormAddressBook(c.gormDB)
}

func (c *CompositionRoot) CreatePriceQuoter() services.PriceQuoter {
	return services.NewPriceQuoter(coupon.DefaultRegistry(), kernel.MoneyFromCents(c.cfg.ShippingCostCents))
}

func (c *CompositionRoot) CreateCartCommandHandler() commands.CartCommandHandler {
	return commands.NewCartCommandHandler(c.CreateCartStore(), c.CreateProductCatalog())
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(
		c.orderUoWFactory(),
		c.CreateCartStore(),
		c.CreateProductCatalog(),
		c.CreateAddressBook(),
		c.CreatePriceQuoter(),
	)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.fulfillmentUoWFactory())
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.fulfillmentUoWFactory())
}

func (c *CompositionRoot) CreateReorderCommandHandler() commands.ReorderCommandHandler {
	return commands.NewReorderCommandHandler(c.orderUoWFactory(), c.CreateCartStore(), c.CreateProductCatalog())
}

func (c *CompositionRoot) CreateAssignDeliveryCommandHandler() commands.AssignDeliveryCommandHandler {
	return commands.NewAssignDeliveryCommandHandler(c.fulfillmentUoWFactory())
}

func (c *CompositionRoot) CreateAdvanceDeliveryCommandHandler() commands.AdvanceDeliveryCommandHandler {
	return commands.NewAdvanceDeliveryCommandHandler(c.fulfillmentUoWFactory())
}

func (c *CompositionRoot) CreateCancelDeliveryCommandHandler() commands.CancelDeliveryCommandHandler {
	return commands.NewCancelDeliveryCommandHandler(c.fulfillmentUoWFactory())
}

func (c *CompositionRoot) CreateRelayNotificationsCommandHandler() commands.RelayNotificationsCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayNotificationsCommandHandler(f, c.CreateNotificationDispatcher())
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.CreateCartStore(), c.CreatePriceQuoter())
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDeliveriesQueryHandler() queries.ListDeliveriesQueryHandler {
	return queries.NewListDeliveriesQueryHandler(c.gormDB)
}

// CreateNotificationDispatcher publishes to Kafka when brokers are configured
// and logs notifications otherwise.
func (c *CompositionRoot) CreateNotificationDispatcher() ports.NotificationDispatcher {
	if len(c.cfg.KafkaBrokers) == 0 {
		return notifier.NewLogDispatcher(c.logger)
	}
	dispatcher := notifier.NewKafkaDispatcher(notifier.NewKafkaWriter(c.cfg.KafkaBrokers, c.cfg.KafkaNotificationTopic))
	c.closers = append(c.closers, dispatcher)
	return dispatcher
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	relay := jobs.NewNotificationRelayJob(
		c.CreateRelayNotificationsCommandHandler(),
		c.cfg.RelaySchedule,
		c.cfg.RelayBatchSize,
		metrics.NewJobMetrics(c.registry),
		c.logger,
	)
	return jobs.NewJobManager(relay)
}

func (c *CompositionRoot) CreateHTTPServer() *echo.Echo {
	handlers := httpin.Handlers{
		Cart:            c.CreateCartCommandHandler(),
		PlaceOrder:      c.CreatePlaceOrderCommandHandler(),
		TransitionOrder: c.CreateTransitionOrderCommandHandler(),
		CancelOrder:     c.CreateCancelOrderCommandHandler(),
		Reorder:         c.CreateReorderCommandHandler(),
		AssignDelivery:  c.CreateAssignDeliveryCommandHandler(),
		AdvanceDelivery: c.CreateAdvanceDeliveryCommandHandler(),
		CancelDelivery:  c.CreateCancelDeliveryCommandHandler(),
		GetCart:         c.CreateGetCartQueryHandler(),
		GetOrder:        c.CreateGetOrderQueryHandler(),
		ListOrders:      c.CreateListOrdersQueryHandler(),
		ListDeliveries:  c.CreateListDeliveriesQueryHandler(),
	}
	server := httpin.NewServer(handlers, httpin.NewAuthenticator(c.cfg.JWTSecret), c.logger)
	return server.NewEcho(c.registry)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) fulfillmentUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}

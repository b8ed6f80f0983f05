package cmd

import (
	"log/slog"

	"ordering/internal/adapters/in/http"
	"ordering/internal/adapters/out/postgres"
	"ordering/internal/core/application/usecases/commands"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/ports"
	"ordering/internal/jobs"
	"ordering/internal/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	cache      ports.OrderSummaryCache
	metrics    *metrics.Metrics
	logger     *slog.Logger
}

// NewCompositionRoot wires the application. cache may be nil; listeners are
// notified after every committed order change.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	cache ports.OrderSummaryCache,
	listeners []ports.OrderChangeListener,
	m *metrics.Metrics,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, listeners, logger),
		cache:      cache,
		metrics:    m,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.metrics)
}

func (c *CompositionRoot) CreateUpdateShippingCommandHandler() commands.UpdateShippingCommandHandler {
	return commands.NewUpdateShippingCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateOrderDetailCommandHandler() commands.OrderDetailCommandHandler {
	return commands.NewOrderDetailCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateExpirePendingOrdersCommandHandler() commands.ExpirePendingOrdersCommandHandler {
	return commands.NewExpirePendingOrdersCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateGetOrderSummaryQueryHandler() queries.GetOrderSummaryQueryHandler {
	return queries.NewGetOrderSummaryQueryHandler(c.gormDB, c.cache)
}

func (c *CompositionRoot) CreateListUserOrdersQueryHandler() queries.ListUserOrdersQueryHandler {
	return queries.NewListUserOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPServer() *http.Server {
	create := c.CreateCreateOrderCommandHandler()
	transition := c.CreateTransitionOrderCommandHandler()
	updateShipping := c.CreateUpdateShippingCommandHandler()
	orderDetail := c.CreateOrderDetailCommandHandler()

	return http.NewServer(
		&create,
		&transition,
		&updateShipping,
		&orderDetail,
		c.CreateGetOrderSummaryQueryHandler(),
		c.CreateListUserOrdersQueryHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	expire := c.CreateExpirePendingOrdersCommandHandler()
	expiry := jobs.NewPendingOrderExpiryJob(&expire, c.metrics, jobs.PendingOrderExpiryConfig{
		Schedule: c.config.PendingOrderExpirySchedule,
		TTL:      c.config.PendingOrderTTL,
	}, c.logger)
	return jobs.NewJobManager(expiry)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

package cmd

import (
	"log/slog"

	httpadapter "pedidos/internal/adapters/in/http"
	"pedidos/internal/adapters/in/http/middleware"
	"pedidos/internal/adapters/out/postgres"
	"pedidos/internal/adapters/out/postgres/orderrepo"
	"pedidos/internal/adapters/out/redis/ordercache"
	"pedidos/internal/core/application/usecases/commands"
	"pedidos/internal/core/application/usecases/queries"
	"pedidos/internal/core/ports"
	"pedidos/internal/jobs"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// CompositionRoot wires the adapters into the application's use cases.
// Everything hangs off the shared database handle and redis client; each
// command handler gets its own unit-of-work factory so concurrent requests
// never share transaction state.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	cache      ports.OrderCache
	verifier   *middleware.TokenVerifier
	logger     *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *redis.Client,
	logger *slog.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		cache:      ordercache.NewRedisOrderCache(redisClient, config.CacheTTL),
		verifier:   middleware.NewTokenVerifier(config.JWTSecret),
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.cache)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.orderUoWFactory(), c.cache)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.cache)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory(), c.cache)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByCustomerQueryHandler() queries.GetOrdersByCustomerQueryHandler {
	return queries.NewGetOrdersByCustomerQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByDriverQueryHandler() queries.GetOrdersByDriverQueryHandler {
	return queries.NewGetOrdersByDriverQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrdersByStatusQueryHandler() queries.GetOrdersByStatusQueryHandler {
	return queries.NewGetOrdersByStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAvailableOrdersQueryHandler() queries.GetAvailableOrdersQueryHandler {
	return queries.NewGetAvailableOrdersQueryHandler(c.gormDB, c.cache)
}

func (c *CompositionRoot) CreateGetOrderAvailabilityQueryHandler() queries.GetOrderAvailabilityQueryHandler {
	return queries.NewGetOrderAvailabilityQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the echo-facing server over all handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateClaimOrderCommandHandler(),
		c.CreateUpdateOrderStatusCommandHandler(),
		c.CreateDeleteOrderCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrdersByCustomerQueryHandler(),
		c.CreateGetOrdersByDriverQueryHandler(),
		c.CreateGetOrdersByStatusQueryHandler(),
		c.CreateGetAvailableOrdersQueryHandler(),
		c.CreateGetOrderAvailabilityQueryHandler(),
	)
}

// CreateJobManager assembles the background jobs. The cache refresh job reads
// through a repository outside any unit of work; refreshes are read-only.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	repository := orderrepo.NewGormOrderRepository(c.gormDB, nil)
	cacheJob := jobs.NewAvailableOrdersCacheJob(repository, c.cache, c.logger)
	return jobs.NewJobManager(cacheJob)
}

// TokenVerifier exposes the verifier for wiring the HTTP middleware.
func (c *CompositionRoot) TokenVerifier() *middleware.TokenVerifier {
	return c.verifier
}

// FuncOrderUoWFactory adapts a closure to the OrderUoWFactory interface.
type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

package ordercache_test

import (
	"context"
	"testing"
	"time"

	"pedidos/internal/adapters/out/redis/ordercache"
	"pedidos/internal/core/domain/model/kernel"
	"pedidos/internal/core/domain/model/order"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// OrderCacheIntegrationTestSuite verifies the cache round-trip against a real
// Redis instance, including miss semantics and invalidation.
type OrderCacheIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
	cache     *ordercache.RedisOrderCache
}

func (suite *OrderCacheIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	suite.Require().NoError(err)
	suite.container = container

	endpoint, err := container.Endpoint(ctx, "")
	suite.Require().NoError(err)

	suite.client = redis.NewClient(&redis.Options{Addr: endpoint})
	suite.Require().NoError(suite.client.Ping(ctx).Err())

	suite.cache = ordercache.NewRedisOrderCache(suite.client, 30*time.Second)
}

func (suite *OrderCacheIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.client.FlushAll(context.Background()).Err())
}

func (suite *OrderCacheIntegrationTestSuite) TearDownSuite() {
	if suite.client != nil {
		suite.Require().NoError(suite.client.Close())
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderCacheIntegrationTestSuite) TestGetAvailableOrders_EmptyCache_IsMiss() {
	orders, ok, err := suite.cache.GetAvailableOrders(context.Background())

	suite.Require().NoError(err)
	suite.False(ok)
	suite.Nil(orders)
}

func (suite *OrderCacheIntegrationTestSuite) TestSetAndGetAvailableOrders_RoundTrips() {
	ctx := context.Background()

	pending, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), "cliente@example.com", "groceries", "Rua A 1")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.cache.SetAvailableOrders(ctx, []*order.Order{pending}))

	cached, ok, err := suite.cache.GetAvailableOrders(ctx)
	suite.Require().NoError(err)
	suite.Require().True(ok)
	suite.Require().Len(cached, 1)

	suite.True(cached[0].ID().IsEqual(pending.ID()))
	suite.True(cached[0].CustomerID().IsEqual(pending.CustomerID()))
	suite.Equal(pending.CustomerEmail(), cached[0].CustomerEmail())
	suite.Equal(pending.Description(), cached[0].Description())
	suite.Equal(pending.Destination(), cached[0].Destination())
	suite.Nil(cached[0].Driver())
	suite.Equal(order.StatusPending, cached[0].Status())
	suite.Equal(pending.Version(), cached[0].Version())
}

func (suite *OrderCacheIntegrationTestSuite) TestSetAvailableOrders_EmptyList_IsHit() {
	ctx := context.Background()

	suite.Require().NoError(suite.cache.SetAvailableOrders(ctx, nil))

	cached, ok, err := suite.cache.GetAvailableOrders(ctx)
	suite.Require().NoError(err)
	suite.True(ok, "an empty listing is a valid cached answer, not a miss")
	suite.Empty(cached)
}

func (suite *OrderCacheIntegrationTestSuite) TestInvalidateAvailableOrders_TurnsHitIntoMiss() {
	ctx := context.Background()

	pending, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), "cliente@example.com", "groceries", "Rua A 1")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.cache.SetAvailableOrders(ctx, []*order.Order{pending}))

	suite.Require().NoError(suite.cache.InvalidateAvailableOrders(ctx))

	_, ok, err := suite.cache.GetAvailableOrders(ctx)
	suite.Require().NoError(err)
	suite.False(ok)
}

func TestOrderCacheIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderCacheIntegrationTestSuite))
}

package queries_test

import (
	"context"
	"testing"
	"time"

	"pedidos/internal/adapters/out/postgres/orderrepo"
	"pedidos/internal/core/application/usecases/queries"
	"pedidos/internal/core/domain/model/kernel"
	"pedidos/internal/core/domain/model/order"
	"pedidos/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// QueriesIntegrationTestSuite verifies the read-side projections against a
// real PostgreSQL instance, seeded through the write-side repository so the
// SQL stays honest about the actual schema.
type QueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
	suite.repo = orderrepo.NewGormOrderRepository(db, nil)
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderQueryHandler() {
	ctx := context.Background()
	pending := suite.seedOrder(kernel.NewUUID(), "cliente@example.com", nil)

	handler := queries.NewGetOrderQueryHandler(suite.db)
	query, err := queries.NewGetOrderQuery(pending.ID())
	suite.Require().NoError(err)

	resp, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.True(resp.ID.IsEqual(pending.ID()))
	suite.True(resp.CustomerID.IsEqual(pending.CustomerID()))
	suite.Equal(pending.CustomerEmail(), resp.CustomerEmail)
	suite.Equal(pending.Description(), resp.Description)
	suite.Equal(pending.Destination(), resp.Destination)
	suite.Nil(resp.DriverID)
	suite.Equal(order.StatusPending, resp.Status)
	suite.Equal(pending.Version(), resp.Version)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderQueryHandler_NotFound() {
	handler := queries.NewGetOrderQueryHandler(suite.db)
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrdersByCustomerQueryHandler() {
	ctx := context.Background()
	customerID := kernel.NewUUID()

	suite.seedOrder(customerID, "cliente@example.com", nil)
	suite.seedOrder(customerID, "cliente@example.com", nil)
	suite.seedOrder(kernel.NewUUID(), "outro@example.com", nil)

	handler := queries.NewGetOrdersByCustomerQueryHandler(suite.db)

	byID, err := queries.NewGetOrdersByCustomerIDQuery(customerID)
	suite.Require().NoError(err)
	responses, err := handler.Handle(ctx, byID)
	suite.Require().NoError(err)
	suite.Len(responses, 2)

	byEmail, err := queries.NewGetOrdersByCustomerEmailQuery("outro@example.com")
	suite.Require().NoError(err)
	responses, err = handler.Handle(ctx, byEmail)
	suite.Require().NoError(err)
	suite.Len(responses, 1)

	byUnknown, err := queries.NewGetOrdersByCustomerEmailQuery("ninguem@example.com")
	suite.Require().NoError(err)
	responses, err = handler.Handle(ctx, byUnknown)
	suite.Require().NoError(err)
	suite.Empty(responses)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrdersByDriverQueryHandler() {
	ctx := context.Background()
	driverID := kernel.NewUUID()

	suite.seedOrder(kernel.NewUUID(), "cliente@example.com", &driverID)
	suite.seedOrder(kernel.NewUUID(), "cliente@example.com", nil)

	handler := queries.NewGetOrdersByDriverQueryHandler(suite.db)
	query, err := queries.NewGetOrdersByDriverQuery(driverID)
	suite.Require().NoError(err)

	responses, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(responses, 1)
	suite.Require().NotNil(responses[0].DriverID)
	suite.True(responses[0].DriverID.IsEqual(driverID))
	suite.Equal(order.StatusAssigned, responses[0].Status)
}

func (suite *QueriesIntegrationTestSuite) TestGetOrdersByStatusQueryHandler() {
	ctx := context.Background()
	driverID := kernel.NewUUID()

	suite.seedOrder(kernel.NewUUID(), "cliente@example.com", nil)
	suite.seedOrder(kernel.NewUUID(), "cliente@example.com", &driverID)

	handler := queries.NewGetOrdersByStatusQueryHandler(suite.db)

	query, err := queries.NewGetOrdersByStatusQuery(order.StatusPending)
	suite.Require().NoError(err)
	responses, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Len(responses, 1)

	query, err = queries.NewGetOrdersByStatusQuery(order.StatusDelivered)
	suite.Require().NoError(err)
	responses, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Empty(responses)
}

func (suite *QueriesIntegrationTestSuite) TestGetAvailableOrdersQueryHandler_CacheMissFallsBackToDatabase() {
	ctx := context.Background()
	driverID := kernel.NewUUID()

	pending := suite.seedOrder(kernel.NewUUID(), "cliente@example.com", nil)
	suite.seedOrder(kernel.NewUUID(), "cliente@example.com", &driverID)

	cache := &stubOrderCache{}
	handler := queries.NewGetAvailableOrdersQueryHandler(suite.db, cache)

	responses, err := handler.Handle(ctx, queries.NewGetAvailableOrdersQuery())
	suite.Require().NoError(err)
	suite.Require().Len(responses, 1)
	suite.True(responses[0].ID.IsEqual(pending.ID()))

	// The miss repopulated the cache.
	suite.Equal(1, cache.setCalls)
	suite.Require().Len(cache.orders, 1)
	suite.True(cache.orders[0].ID().IsEqual(pending.ID()))
}

func (suite *QueriesIntegrationTestSuite) TestGetOrderAvailabilityQueryHandler() {
	ctx := context.Background()
	driverID := kernel.NewUUID()

	pending := suite.seedOrder(kernel.NewUUID(), "cliente@example.com", nil)
	claimed := suite.seedOrder(kernel.NewUUID(), "cliente@example.com", &driverID)

	handler := queries.NewGetOrderAvailabilityQueryHandler(suite.db)

	query, err := queries.NewGetOrderAvailabilityQuery(pending.ID())
	suite.Require().NoError(err)
	available, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.True(available)

	query, err = queries.NewGetOrderAvailabilityQuery(claimed.ID())
	suite.Require().NoError(err)
	available, err = handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.False(available)

	query, err = queries.NewGetOrderAvailabilityQuery(kernel.NewUUID())
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, query)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// seedOrder persists a fresh order; when driverID is set the order is
// claimed first, so it lands in ASSIGNED.
func (suite *QueriesIntegrationTestSuite) seedOrder(
	customerID kernel.UUID,
	customerEmail string,
	driverID *kernel.UUID,
) *order.Order {
	seeded, err := order.NewOrder(
		kernel.NewUUID(), customerID, customerEmail, "groceries", "Rua A 1")
	suite.Require().NoError(err)

	if driverID != nil {
		suite.Require().NoError(seeded.Claim(*driverID))
	}

	suite.Require().NoError(suite.repo.Add(context.Background(), seeded))
	return seeded
}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}

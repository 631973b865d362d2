package queries_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/actor"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker satisfies the repository's tracker dependency; query
// tests only need the repositories for seeding.
type mockAggregateTracker struct{}

func (mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type GetSupplierOrdersQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetSupplierOrdersQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetSupplierOrdersQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}, &orderrepo.HistoryDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetSupplierOrdersQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, mockAggregateTracker{})
}

func (suite *GetSupplierOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetSupplierOrdersQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items, order_history").Error
	suite.Require().NoError(err)
}

func (suite *GetSupplierOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	query, err := queries.NewGetSupplierOrdersQuery(kernel.NewUUID(), nil)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetSupplierOrdersQueryHandlerTestSuite) TestHandle_ReturnsOnlySupplierOrders() {
	supplierID := kernel.NewUUID()
	mine := suite.seedOrder(supplierID, time.Now().UTC())
	suite.seedOrder(kernel.NewUUID(), time.Now().UTC())

	query, err := queries.NewGetSupplierOrdersQuery(supplierID, nil)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(mine.ID(), result[0].ID)
	suite.Equal(supplierID, result[0].SupplierID)
	suite.Equal(order.Placed, result[0].Status)
	suite.Equal(mine.Total().Cents(), result[0].TotalCents)
	suite.Equal(1, result[0].Version)
}

func (suite *GetSupplierOrdersQueryHandlerTestSuite) TestHandle_StatusFilter() {
	supplierID := kernel.NewUUID()
	confirmed := suite.seedOrder(supplierID, time.Now().UTC())
	suite.seedOrder(supplierID, time.Now().UTC())

	by, err := actor.NewActor(kernel.NewUUID(), actor.RoleSupplier)
	suite.Require().NoError(err)
	suite.Require().NoError(confirmed.TransitionTo(order.Confirmed, by, "", time.Now().UTC()))
	suite.Require().NoError(suite.orderRepo.Update(context.Background(), confirmed))

	status := order.Confirmed
	query, err := queries.NewGetSupplierOrdersQuery(supplierID, &status)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(confirmed.ID(), result[0].ID)
	suite.Equal(order.Confirmed, result[0].Status)
}

func (suite *GetSupplierOrdersQueryHandlerTestSuite) TestHandle_NewestFirst() {
	supplierID := kernel.NewUUID()
	older := suite.seedOrder(supplierID, time.Now().UTC().Add(-time.Hour))
	newer := suite.seedOrder(supplierID, time.Now().UTC())

	query, err := queries.NewGetSupplierOrdersQuery(supplierID, nil)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal(newer.ID(), result[0].ID)
	suite.Equal(older.ID(), result[1].ID)
}

func (suite *GetSupplierOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.GetSupplierOrdersQuery{})
	suite.Require().Error(err)
	suite.ErrorIs(err, queries.ErrGetSupplierOrdersQueryIsNotConstructed)
}

func (suite *GetSupplierOrdersQueryHandlerTestSuite) seedOrder(supplierID kernel.UUID, placedAt time.Time) *order.Order {
	price, err := kernel.NewMoney(250)
	suite.Require().NoError(err)
	fee, err := kernel.NewMoney(0)
	suite.Require().NoError(err)

	item, err := order.NewItem(kernel.NewUUID(), "Oat milk 1L", price, 2)
	suite.Require().NoError(err)
	address, err := order.NewAddress("1 Main St", "Springfield", "+15550100")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), supplierID,
		[]order.Item{item}, address, fee, fee, placedAt)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(context.Background(), testOrder))
	return testOrder
}

func TestGetSupplierOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetSupplierOrdersQueryHandlerTestSuite))
}

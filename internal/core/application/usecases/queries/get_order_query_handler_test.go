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
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetOrderQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOrderQueryHandler
	orderRepo *orderrepo.GormOrderRepository
}

func (suite *GetOrderQueryHandlerTestSuite) SetupSuite() {
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

	suite.handler = queries.NewGetOrderQueryHandler(db)
	suite.orderRepo = orderrepo.NewGormOrderRepository(db, mockAggregateTracker{})
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_items, order_history").Error
	suite.Require().NoError(err)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_FullDetail() {
	ctx := context.Background()
	testOrder := suite.seedConfirmedOrder()

	query, err := queries.NewGetOrderQuery(testOrder.ID())
	suite.Require().NoError(err)

	detail, err := suite.handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Equal(testOrder.ID(), detail.ID)
	suite.Equal(testOrder.CustomerID(), detail.CustomerID)
	suite.Equal(testOrder.SupplierID(), detail.SupplierID)
	suite.Equal(order.Confirmed, detail.Status)
	suite.Equal(testOrder.Subtotal().Cents(), detail.SubtotalCents)
	suite.Equal(testOrder.Total().Cents(), detail.TotalCents)
	suite.Equal("1 Main St", detail.Street)
	suite.Equal("Springfield", detail.City)
	suite.Equal("+15550100", detail.Phone)
	suite.Equal(2, detail.Version)

	suite.Require().Len(detail.Items, 2)
	suite.Equal("Oat milk 1L", detail.Items[0].Name)
	suite.Equal(int64(250), detail.Items[0].UnitPriceCents)
	suite.Equal(2, detail.Items[0].Quantity)
	suite.Equal("Sourdough loaf", detail.Items[1].Name)

	suite.Require().Len(detail.History, 2)
	suite.Equal(order.Placed, detail.History[0].Status)
	suite.Equal(actor.RoleCustomer, detail.History[0].Role)
	suite.Equal(order.Confirmed, detail.History[1].Status)
	suite.Equal(actor.RoleSupplier, detail.History[1].Role)
	suite.Equal("accepted", detail.History[1].Note)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_UnknownOrder_NotFound() {
	query, err := queries.NewGetOrderQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	_, err := suite.handler.Handle(context.Background(), queries.GetOrderQuery{})
	suite.Require().Error(err)
	suite.ErrorIs(err, queries.ErrGetOrderQueryIsNotConstructed)
}

func (suite *GetOrderQueryHandlerTestSuite) seedConfirmedOrder() *order.Order {
	ctx := context.Background()
	money := func(cents int64) kernel.Money {
		m, err := kernel.NewMoney(cents)
		suite.Require().NoError(err)
		return m
	}

	milk, err := order.NewItem(kernel.NewUUID(), "Oat milk 1L", money(250), 2)
	suite.Require().NoError(err)
	bread, err := order.NewItem(kernel.NewUUID(), "Sourdough loaf", money(499), 1)
	suite.Require().NoError(err)
	address, err := order.NewAddress("1 Main St", "Springfield", "+15550100")
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		[]order.Item{milk, bread}, address, money(200), money(0), time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.orderRepo.Add(ctx, testOrder))

	by, err := actor.NewActor(kernel.NewUUID(), actor.RoleSupplier)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.TransitionTo(order.Confirmed, by, "accepted", time.Now().UTC()))
	suite.Require().NoError(suite.orderRepo.Update(ctx, testOrder))
	return testOrder
}

func TestGetOrderQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
}

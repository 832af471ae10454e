package queries_test

import (
	"context"
	"testing"
	"time"

	"hyperlocal/internal/adapters/out/postgres/orderrepo"
	"hyperlocal/internal/core/application/usecases/queries"
	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"

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
	tenant    kernel.TenantID
	now       time.Time
}

func TestGetOrderQueryHandler(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(GetOrderQueryHandlerTestSuite))
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

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.HistoryEntryDTO{},
	))

	suite.handler = queries.NewGetOrderQueryHandler(db)
	suite.tenant, err = kernel.NewTenantID("blr-south")
	suite.Require().NoError(err)
	suite.now = time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
}

func (suite *GetOrderQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)
}

func (suite *GetOrderQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetOrderQueryHandlerTestSuite) seedOrder() *order.Order {
	item, err := order.NewItem(kernel.NewUUID(), "Filter Coffee Powder 500g", 2, 4500, order.SubstitutionNone)
	suite.Require().NoError(err)
	pricing, err := order.NewPricing(9000, 3000, 900, 450, 0)
	suite.Require().NoError(err)
	point, err := kernel.NewGeoPoint(12.930, 77.628)
	suite.Require().NoError(err)
	address, err := order.NewDeliveryAddress("80 Feet Road, gate 2", point)
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), suite.tenant, kernel.NewUUID(),
		kernel.NewUUID(), kernel.NewUUID(), []order.Item{item}, pricing,
		address, order.PaymentCashOnDelivery, suite.now)
	suite.Require().NoError(err)

	repo := orderrepo.NewGormOrderRepository(suite.db, &nopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), o))
	return o
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_PlacedOrder_ReturnsTrackingView() {
	o := suite.seedOrder()

	query, err := queries.NewGetOrderQuery(suite.tenant, o.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.True(result.ID.IsEqual(o.ID()))
	suite.Equal("placed", result.Status)
	suite.Nil(result.RiderID)
	suite.Equal(int64(9000), result.Subtotal)
	suite.Equal(int64(12450), result.Total)
	suite.Equal("cash_on_delivery", result.PaymentMethod)
	suite.Equal("pending", result.PaymentStatus)
	suite.Nil(result.DeliveredAt)
	suite.Require().Len(result.Timeline, 1)
	suite.Equal("placed", result.Timeline[0].Status)
	suite.Equal("order placed", result.Timeline[0].Note)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_AssignedOrder_IncludesRiderAndTimeline() {
	o := suite.seedOrder()
	owner, err := order.NewActor(kernel.NewUUID(), order.RoleStoreOwner)
	suite.Require().NoError(err)
	for _, next := range []order.Status{order.Accepted, order.Preparing, order.ReadyForPickup} {
		suite.Require().NoError(o.Transition(next, "", owner, suite.now.Add(time.Minute)))
	}
	riderID := kernel.NewUUID()
	suite.Require().NoError(o.AssignRider(riderID, suite.now.Add(2*time.Minute)))

	repo := orderrepo.NewGormOrderRepository(suite.db, &nopTracker{})
	suite.Require().NoError(repo.Update(context.Background(), o))

	query, err := queries.NewGetOrderQuery(suite.tenant, o.ID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Equal("rider_assigned", result.Status)
	suite.Require().NotNil(result.RiderID)
	suite.True(result.RiderID.IsEqual(riderID))
	suite.Require().Len(result.Timeline, 5)
	suite.Equal("placed", result.Timeline[0].Status)
	suite.Equal("rider_assigned", result.Timeline[4].Status)
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_UnknownOrder_ReturnsNotFound() {
	query, err := queries.NewGetOrderQuery(suite.tenant, kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "object not found")
}

func (suite *GetOrderQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	result, err := suite.handler.Handle(context.Background(), queries.GetOrderQuery{})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetOrderQuery constructor")
}

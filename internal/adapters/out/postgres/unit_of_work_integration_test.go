package postgres_test

import (
	"context"
	"testing"
	"time"

	"hyperlocal/internal/adapters/out/postgres"
	"hyperlocal/internal/adapters/out/postgres/orderrepo"
	"hyperlocal/internal/adapters/out/postgres/productrepo"
	"hyperlocal/internal/adapters/out/postgres/riderrepo"
	"hyperlocal/internal/adapters/out/postgres/storerepo"
	"hyperlocal/internal/adapters/out/postgres/zonerepo"
	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/core/domain/model/product"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
	tenant    kernel.TenantID
	now       time.Time
}

func TestUnitOfWorkIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
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
		&zonerepo.ZoneDTO{},
		&zonerepo.ZoneVertexDTO{},
		&storerepo.StoreDTO{},
		&storerepo.StoreHourDTO{},
		&productrepo.ProductDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.HistoryEntryDTO{},
		&riderrepo.RiderDTO{},
	))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
	suite.tenant, err = kernel.NewTenantID("blr-south")
	suite.Require().NoError(err)
	suite.now = time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, products, riders, stores, zones CASCADE").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestOrder() *order.Order {
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
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestProduct(stock int) *product.Product {
	p, err := product.NewProduct(kernel.NewUUID(), suite.tenant, kernel.NewUUID(),
		"Filter Coffee Powder 500g", "groceries", 4500, stock, 10)
	suite.Require().NoError(err)
	return p
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAcrossRepositories() {
	ctx := context.Background()

	p := suite.createTestProduct(25)
	seed := suite.factory.Create()
	suite.Require().NoError(seed.Begin(ctx))
	suite.Require().NoError(seed.ProductRepository().Add(ctx, p))
	suite.Require().NoError(seed.Commit(ctx))

	o := suite.createTestOrder()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ProductRepository().ReserveStock(ctx, suite.tenant, p.ID(), 2))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	verify := suite.factory.Create()
	loadedOrder, err := verify.OrderRepository().Get(ctx, suite.tenant, o.ID())
	suite.Require().NoError(err)
	suite.True(loadedOrder.IsEqual(o))

	loadedProduct, err := verify.ProductRepository().Get(ctx, suite.tenant, p.ID())
	suite.Require().NoError(err)
	suite.Equal(23, loadedProduct.Stock())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsEverything() {
	ctx := context.Background()

	p := suite.createTestProduct(25)
	seed := suite.factory.Create()
	suite.Require().NoError(seed.Begin(ctx))
	suite.Require().NoError(seed.ProductRepository().Add(ctx, p))
	suite.Require().NoError(seed.Commit(ctx))

	o := suite.createTestOrder()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.ProductRepository().ReserveStock(ctx, suite.tenant, p.ID(), 2))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	verify := suite.factory.Create()
	_, err := verify.OrderRepository().Get(ctx, suite.tenant, o.ID())
	suite.Require().Error(err)
	suite.Contains(err.Error(), "object not found")

	loadedProduct, err := verify.ProductRepository().Get(ctx, suite.tenant, p.ID())
	suite.Require().NoError(err)
	suite.Equal(25, loadedProduct.Stock())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_AfterCommit_IsNoOp() {
	ctx := context.Background()

	o := suite.createTestOrder()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	verify := suite.factory.Create()
	loaded, err := verify.OrderRepository().Get(ctx, suite.tenant, o.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(o))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_Twice_DoesNotNest() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))

	o := suite.createTestOrder()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))
}

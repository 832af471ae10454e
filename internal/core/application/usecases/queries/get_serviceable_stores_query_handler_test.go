package queries_test

import (
	"context"
	"testing"
	"time"

	"hyperlocal/internal/adapters/out/postgres/storerepo"
	"hyperlocal/internal/core/application/usecases/queries"
	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/store"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// nopTracker satisfies the repositories' tracker dependency when tests
// seed data outside a unit of work.
type nopTracker struct{}

func (t *nopTracker) TrackAggregate(kernel.UUID, any) {}

type GetServiceableStoresQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetServiceableStoresQueryHandler
	tenant    kernel.TenantID
	// mondayNoon falls inside the default 09:00-21:00 window.
	mondayNoon time.Time
}

func TestGetServiceableStoresQueryHandler(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(GetServiceableStoresQueryHandlerTestSuite))
}

func (suite *GetServiceableStoresQueryHandlerTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&storerepo.StoreDTO{}, &storerepo.StoreHourDTO{}))

	suite.handler = queries.NewGetServiceableStoresQueryHandler(db)
	suite.tenant, err = kernel.NewTenantID("blr-south")
	suite.Require().NoError(err)
	suite.mondayNoon = time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
}

func (suite *GetServiceableStoresQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE stores CASCADE").Error)
}

func (suite *GetServiceableStoresQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetServiceableStoresQueryHandlerTestSuite) seedStore(name string, zoneID kernel.UUID, rating float64) *store.Store {
	window, err := store.NewOperatingWindow(9*60, 21*60)
	suite.Require().NoError(err)
	schedule := store.WeekSchedule{}
	for day := time.Sunday; day <= time.Saturday; day++ {
		schedule[day] = window
	}
	location, err := kernel.NewGeoPoint(12.930, 77.628)
	suite.Require().NoError(err)

	s, err := store.RestoreStore(kernel.NewUUID(), suite.tenant, zoneID, kernel.NewUUID(),
		name, location, schedule, 10, 15, true, nil, rating, true)
	suite.Require().NoError(err)

	repo := storerepo.NewGormStoreRepository(suite.db, &nopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), s))
	return s
}

func (suite *GetServiceableStoresQueryHandlerTestSuite) TestHandle_SortsByRatingThenName() {
	zoneID := kernel.NewUUID()
	suite.seedStore("Darshini Fresh Mart", zoneID, 4.2)
	suite.seedStore("Adyar Bakery", zoneID, 4.7)
	suite.seedStore("Corner Provisions", zoneID, 4.7)

	query, err := queries.NewGetServiceableStoresQuery(suite.tenant, zoneID, suite.mondayNoon)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 3)
	suite.Equal("Adyar Bakery", result[0].Name)
	suite.Equal("Corner Provisions", result[1].Name)
	suite.Equal("Darshini Fresh Mart", result[2].Name)
}

func (suite *GetServiceableStoresQueryHandlerTestSuite) TestHandle_ExcludesUnserviceableStores() {
	zoneID := kernel.NewUUID()
	open := suite.seedStore("Open Mart", zoneID, 4.0)

	shut := suite.seedStore("Shut Mart", zoneID, 4.9)
	shut.SetOpen(false)
	repo := storerepo.NewGormStoreRepository(suite.db, &nopTracker{})
	suite.Require().NoError(repo.Update(context.Background(), shut))

	closed := suite.seedStore("Festival Mart", zoneID, 4.8)
	suite.Require().NoError(closed.CloseTemporarily("festival rush", suite.mondayNoon.Add(2*time.Hour)))
	suite.Require().NoError(repo.Update(context.Background(), closed))

	suite.seedStore("Other Zone Mart", kernel.NewUUID(), 4.5)

	query, err := queries.NewGetServiceableStoresQuery(suite.tenant, zoneID, suite.mondayNoon)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID.IsEqual(open.ID()))
}

func (suite *GetServiceableStoresQueryHandlerTestSuite) TestHandle_OutsideWindow_ReturnsEmpty() {
	zoneID := kernel.NewUUID()
	suite.seedStore("Open Mart", zoneID, 4.0)

	lateNight := time.Date(2025, 3, 3, 23, 30, 0, 0, time.UTC)
	query, err := queries.NewGetServiceableStoresQuery(suite.tenant, zoneID, lateNight)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetServiceableStoresQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	result, err := suite.handler.Handle(context.Background(), queries.GetServiceableStoresQuery{})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetServiceableStoresQuery constructor")
}

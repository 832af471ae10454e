package riderrepo_test

import (
	"context"
	"testing"
	"time"

	"hyperlocal/internal/adapters/out/postgres/riderrepo"
	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/rider"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker
// interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type RiderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *riderrepo.GormRiderRepository
	tracker    *MockAggregateTracker
	tenant     kernel.TenantID
}

func TestRiderRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(RiderRepositoryIntegrationTestSuite))
}

func (suite *RiderRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&riderrepo.RiderDTO{}))

	suite.tenant, err = kernel.NewTenantID("blr-south")
	suite.Require().NoError(err)
}

func (suite *RiderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE riders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = riderrepo.NewGormRiderRepository(suite.db, suite.tracker)
}

func (suite *RiderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *RiderRepositoryIntegrationTestSuite) createTestRider(zones ...kernel.UUID) *rider.Rider {
	r, err := rider.NewRider(kernel.NewUUID(), suite.tenant, "Suresh", "+919900112233", zones)
	suite.Require().NoError(err)
	return r
}

func (suite *RiderRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	zoneA := kernel.NewUUID()
	zoneB := kernel.NewUUID()
	r := suite.createTestRider(zoneA, zoneB)
	r.Verify()
	suite.Require().NoError(r.SetAvailability(rider.Online))
	point, err := kernel.NewGeoPoint(12.931, 77.629)
	suite.Require().NoError(err)
	locatedAt := time.Date(2025, 3, 3, 11, 59, 0, 0, time.UTC)
	suite.Require().NoError(r.UpdateLocation(point, locatedAt))

	suite.Require().NoError(suite.repository.Add(ctx, r))

	loaded, err := suite.repository.Get(ctx, suite.tenant, r.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(r))
	suite.Equal(rider.Online, loaded.Availability())
	suite.True(loaded.IsVerified())
	suite.True(loaded.ServesZone(zoneA))
	suite.True(loaded.ServesZone(zoneB))
	suite.True(loaded.LocatedAt().Equal(locatedAt))
	suite.Require().NotNil(loaded.Location())
	isEqual, err := loaded.Location().IsEqual(point)
	suite.Require().NoError(err)
	suite.True(isEqual)
}

func (suite *RiderRepositoryIntegrationTestSuite) TestUpdate_PersistsEarningsAndCounters() {
	ctx := context.Background()
	r := suite.createTestRider(kernel.NewUUID())
	r.Verify()
	suite.Require().NoError(r.SetAvailability(rider.Online))
	point, err := kernel.NewGeoPoint(12.931, 77.629)
	suite.Require().NoError(err)
	suite.Require().NoError(r.UpdateLocation(point, time.Date(2025, 3, 3, 11, 59, 0, 0, time.UTC)))
	suite.Require().NoError(suite.repository.Add(ctx, r))

	suite.Require().NoError(r.StartDelivery())
	suite.Require().NoError(r.RecordDelivery(3000))
	suite.Require().NoError(suite.repository.Update(ctx, r))

	loaded, err := suite.repository.Get(ctx, suite.tenant, r.ID())
	suite.Require().NoError(err)
	suite.Equal(rider.Online, loaded.Availability())
	suite.Equal(1, loaded.TotalOrders())
	suite.Equal(1, loaded.CompletedOrders())
	suite.Equal(int64(3000), loaded.Earnings().Balance().Int64())
	suite.Equal(int64(3000), loaded.Earnings().Today().Int64())
}

func (suite *RiderRepositoryIntegrationTestSuite) TestGetAllServingZone_FiltersByZoneMembership() {
	ctx := context.Background()
	zoneA := kernel.NewUUID()
	zoneB := kernel.NewUUID()

	inZone := suite.createTestRider(zoneA)
	suite.Require().NoError(suite.repository.Add(ctx, inZone))

	bothZones := suite.createTestRider(zoneA, zoneB)
	suite.Require().NoError(suite.repository.Add(ctx, bothZones))

	elsewhere := suite.createTestRider(zoneB)
	suite.Require().NoError(suite.repository.Add(ctx, elsewhere))

	riders, err := suite.repository.GetAllServingZone(ctx, suite.tenant, zoneA)
	suite.Require().NoError(err)
	suite.Len(riders, 2)
	for _, r := range riders {
		suite.True(r.ServesZone(zoneA))
	}
}

package storerepo_test

import (
	"context"
	"testing"
	"time"

	"hyperlocal/internal/adapters/out/postgres/storerepo"
	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/store"

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

type StoreRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *storerepo.GormStoreRepository
	tracker    *MockAggregateTracker
	tenant     kernel.TenantID
}

func TestStoreRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(StoreRepositoryIntegrationTestSuite))
}

func (suite *StoreRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.tenant, err = kernel.NewTenantID("blr-south")
	suite.Require().NoError(err)
}

func (suite *StoreRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE stores CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = storerepo.NewGormStoreRepository(suite.db, suite.tracker)
}

func (suite *StoreRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *StoreRepositoryIntegrationTestSuite) createTestStore(zoneID kernel.UUID) *store.Store {
	window, err := store.NewOperatingWindow(9*60, 21*60)
	suite.Require().NoError(err)
	schedule := store.WeekSchedule{
		time.Monday:    window,
		time.Tuesday:   window,
		time.Wednesday: window,
	}
	location, err := kernel.NewGeoPoint(12.930, 77.628)
	suite.Require().NoError(err)

	s, err := store.NewStore(kernel.NewUUID(), suite.tenant, zoneID, kernel.NewUUID(),
		"Darshini Fresh Mart", location, schedule, 10, 15)
	suite.Require().NoError(err)
	return s
}

func (suite *StoreRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	s := suite.createTestStore(kernel.NewUUID())

	suite.Require().NoError(suite.repository.Add(ctx, s))

	loaded, err := suite.repository.Get(ctx, suite.tenant, s.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(s))
	suite.Equal("Darshini Fresh Mart", loaded.Name())
	suite.InDelta(10, loaded.CommissionRatePercent(), 0.001)

	// Monday noon is inside the window, Thursday has no window at all.
	mondayNoon := time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	suite.True(loaded.IsOpenAt(mondayNoon))
	thursdayNoon := time.Date(2025, 3, 6, 12, 0, 0, 0, time.UTC)
	suite.False(loaded.IsOpenAt(thursdayNoon))
}

func (suite *StoreRepositoryIntegrationTestSuite) TestUpdate_PersistsClosure() {
	ctx := context.Background()
	s := suite.createTestStore(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, s))

	until := time.Date(2025, 3, 3, 14, 0, 0, 0, time.UTC)
	suite.Require().NoError(s.CloseTemporarily("festival rush", until))
	suite.Require().NoError(suite.repository.Update(ctx, s))

	loaded, err := suite.repository.Get(ctx, suite.tenant, s.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(loaded.Closure())
	suite.Equal("festival rush", loaded.Closure().Reason)
	suite.True(loaded.Closure().Until.Equal(until))
	suite.False(loaded.IsOpenAt(time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)))
}

func (suite *StoreRepositoryIntegrationTestSuite) TestGetAllInZone_FiltersByZone() {
	ctx := context.Background()
	zoneA := kernel.NewUUID()
	zoneB := kernel.NewUUID()

	inZone := suite.createTestStore(zoneA)
	suite.Require().NoError(suite.repository.Add(ctx, inZone))

	elsewhere := suite.createTestStore(zoneB)
	suite.Require().NoError(suite.repository.Add(ctx, elsewhere))

	stores, err := suite.repository.GetAllInZone(ctx, suite.tenant, zoneA)
	suite.Require().NoError(err)
	suite.Require().Len(stores, 1)
	suite.True(stores[0].IsEqual(inZone))
}

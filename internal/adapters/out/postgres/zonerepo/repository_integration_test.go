package zonerepo_test

import (
	"context"
	"testing"
	"time"

	"hyperlocal/internal/adapters/out/postgres/zonerepo"
	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/zone"

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

type ZoneRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *zonerepo.GormZoneRepository
	tracker    *MockAggregateTracker
	tenant     kernel.TenantID
}

func TestZoneRepositoryIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(ZoneRepositoryIntegrationTestSuite))
}

func (suite *ZoneRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&zonerepo.ZoneDTO{}, &zonerepo.ZoneVertexDTO{}))

	suite.tenant, err = kernel.NewTenantID("blr-south")
	suite.Require().NoError(err)
}

func (suite *ZoneRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE zones CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = zonerepo.NewGormZoneRepository(suite.db, suite.tracker)
}

func (suite *ZoneRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ZoneRepositoryIntegrationTestSuite) createTestZone(name string, createdAt time.Time) *zone.Zone {
	corners := [][2]float64{
		{12.925, 77.622}, {12.925, 77.635}, {12.935, 77.635}, {12.935, 77.622},
	}
	vertices := make([]kernel.GeoPoint, 0, len(corners))
	for _, c := range corners {
		point, err := kernel.NewGeoPoint(c[0], c[1])
		suite.Require().NoError(err)
		vertices = append(vertices, point)
	}
	boundary, err := kernel.NewPolygon(vertices)
	suite.Require().NoError(err)
	center, err := kernel.NewGeoPoint(12.930, 77.628)
	suite.Require().NoError(err)

	z, err := zone.NewZone(kernel.NewUUID(), suite.tenant, name, boundary,
		center, 5, 20, 40, createdAt)
	suite.Require().NoError(err)
	return z
}

func (suite *ZoneRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	createdAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	z := suite.createTestZone("Koramangala", createdAt)

	suite.Require().NoError(suite.repository.Add(ctx, z))

	loaded, err := suite.repository.Get(ctx, suite.tenant, z.ID())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(z))
	suite.Equal("Koramangala", loaded.Name())
	suite.True(loaded.IsActive())
	suite.True(loaded.CreatedAt().Equal(createdAt))

	// The ring must survive the round trip in vertex order.
	suite.Require().Len(loaded.Boundary().Vertices(), 4)
	for i, v := range z.Boundary().Vertices() {
		isEqual, eqErr := loaded.Boundary().Vertices()[i].IsEqual(v)
		suite.Require().NoError(eqErr)
		suite.True(isEqual)
	}

	inside, err := kernel.NewGeoPoint(12.930, 77.628)
	suite.Require().NoError(err)
	contains, err := loaded.Contains(inside)
	suite.Require().NoError(err)
	suite.True(contains)
}

func (suite *ZoneRepositoryIntegrationTestSuite) TestGetAllActive_SkipsDeactivated() {
	ctx := context.Background()
	createdAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	active := suite.createTestZone("Koramangala", createdAt)
	suite.Require().NoError(suite.repository.Add(ctx, active))

	retired := suite.createTestZone("HSR Layout", createdAt.Add(time.Hour))
	retired.Deactivate()
	suite.Require().NoError(suite.repository.Add(ctx, retired))

	zones, err := suite.repository.GetAllActive(ctx, suite.tenant)
	suite.Require().NoError(err)
	suite.Require().Len(zones, 1)
	suite.True(zones[0].IsEqual(active))
}

func (suite *ZoneRepositoryIntegrationTestSuite) TestUpdate_PersistsDeactivation() {
	ctx := context.Background()
	z := suite.createTestZone("Koramangala", time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	suite.Require().NoError(suite.repository.Add(ctx, z))

	z.Deactivate()
	suite.Require().NoError(suite.repository.Update(ctx, z))

	loaded, err := suite.repository.Get(ctx, suite.tenant, z.ID())
	suite.Require().NoError(err)
	suite.False(loaded.IsActive())
}

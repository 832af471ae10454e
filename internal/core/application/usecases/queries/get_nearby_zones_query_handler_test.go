package queries_test

import (
	"context"
	"testing"
	"time"

	"hyperlocal/internal/adapters/out/postgres/zonerepo"
	"hyperlocal/internal/core/application/usecases/queries"
	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/zone"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetNearbyZonesQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetNearbyZonesQueryHandler
	tenant    kernel.TenantID
}

func TestGetNearbyZonesQueryHandler(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(GetNearbyZonesQueryHandlerTestSuite))
}

func (suite *GetNearbyZonesQueryHandlerTestSuite) SetupSuite() {
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

	suite.handler = queries.NewGetNearbyZonesQueryHandler(db)
	suite.tenant, err = kernel.NewTenantID("blr-south")
	suite.Require().NoError(err)
}

func (suite *GetNearbyZonesQueryHandlerTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE zones CASCADE").Error)
}

func (suite *GetNearbyZonesQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *GetNearbyZonesQueryHandlerTestSuite) seedZone(name string, centerLat, centerLng float64) *zone.Zone {
	corners := [][2]float64{
		{centerLat - 0.005, centerLng - 0.006},
		{centerLat - 0.005, centerLng + 0.007},
		{centerLat + 0.005, centerLng + 0.007},
		{centerLat + 0.005, centerLng - 0.006},
	}
	vertices := make([]kernel.GeoPoint, 0, len(corners))
	for _, c := range corners {
		point, err := kernel.NewGeoPoint(c[0], c[1])
		suite.Require().NoError(err)
		vertices = append(vertices, point)
	}
	boundary, err := kernel.NewPolygon(vertices)
	suite.Require().NoError(err)
	center, err := kernel.NewGeoPoint(centerLat, centerLng)
	suite.Require().NoError(err)

	z, err := zone.NewZone(kernel.NewUUID(), suite.tenant, name, boundary,
		center, 5, 20, 40, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)

	repo := zonerepo.NewGormZoneRepository(suite.db, &nopTracker{})
	suite.Require().NoError(repo.Add(context.Background(), z))
	return z
}

func (suite *GetNearbyZonesQueryHandlerTestSuite) TestHandle_NearestFirstWithinRadius() {
	near := suite.seedZone("Koramangala", 12.930, 77.628)
	farther := suite.seedZone("HSR Layout", 12.910, 77.645)
	suite.seedZone("Whitefield", 12.970, 77.750)

	point, err := kernel.NewGeoPoint(12.931, 77.629)
	suite.Require().NoError(err)
	query, err := queries.NewGetNearbyZonesQuery(suite.tenant, point, 5)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].ID.IsEqual(near.ID()))
	suite.True(result[1].ID.IsEqual(farther.ID()))
	suite.Less(result[0].DistanceKm, result[1].DistanceKm)
	suite.Equal(20, result[0].EtaMinMinutes)
	suite.Equal(40, result[0].EtaMaxMinutes)
}

func (suite *GetNearbyZonesQueryHandlerTestSuite) TestHandle_SkipsInactiveZones() {
	retired := suite.seedZone("Koramangala", 12.930, 77.628)
	retired.Deactivate()
	repo := zonerepo.NewGormZoneRepository(suite.db, &nopTracker{})
	suite.Require().NoError(repo.Update(context.Background(), retired))

	point, err := kernel.NewGeoPoint(12.931, 77.629)
	suite.Require().NoError(err)
	query, err := queries.NewGetNearbyZonesQuery(suite.tenant, point, 5)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Empty(result)
}

func (suite *GetNearbyZonesQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	result, err := suite.handler.Handle(context.Background(), queries.GetNearbyZonesQuery{})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetNearbyZonesQuery constructor")
}

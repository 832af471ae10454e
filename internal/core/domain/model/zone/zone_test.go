package zone_test

import (
	"testing"
	"time"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/zone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBoundary(t *testing.T) kernel.Polygon {
	t.Helper()
	ring := make([]kernel.GeoPoint, 0, 4)
	for _, c := range [][2]float64{
		{12.925, 77.622}, {12.925, 77.635}, {12.935, 77.635}, {12.935, 77.622},
	} {
		p, err := kernel.NewGeoPoint(c[0], c[1])
		require.NoError(t, err)
		ring = append(ring, p)
	}
	boundary, err := kernel.NewPolygon(ring)
	require.NoError(t, err)
	return boundary
}

func testZoneArgs(t *testing.T) (kernel.UUID, kernel.TenantID, kernel.Polygon, kernel.GeoPoint, time.Time) {
	t.Helper()
	tenant, err := kernel.NewTenantID("blr-south")
	require.NoError(t, err)
	center, err := kernel.NewGeoPoint(12.930, 77.628)
	require.NoError(t, err)
	createdAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return kernel.NewUUID(), tenant, testBoundary(t), center, createdAt
}

func TestNewZone(t *testing.T) {
	id, tenant, boundary, center, createdAt := testZoneArgs(t)

	t.Run("should create active zone with valid parameters", func(t *testing.T) {
		z, err := zone.NewZone(id, tenant, "Koramangala", boundary, center, 5, 20, 40, createdAt)

		require.NoError(t, err)
		require.NoError(t, z.Validate())
		assert.True(t, z.ID().IsEqual(id))
		assert.Equal(t, "Koramangala", z.Name())
		assert.True(t, z.IsActive())
		etaMin, etaMax := z.ETAMinutes()
		assert.Equal(t, 20, etaMin)
		assert.Equal(t, 40, etaMax)
		assert.Equal(t, createdAt, z.CreatedAt())
	})

	t.Run("should fail without a name", func(t *testing.T) {
		_, err := zone.NewZone(id, tenant, "", boundary, center, 5, 20, 40, createdAt)

		require.Error(t, err)
		assert.ErrorContains(t, err, "name")
	})

	t.Run("should fail with non-positive radius", func(t *testing.T) {
		_, err := zone.NewZone(id, tenant, "Koramangala", boundary, center, 0, 20, 40, createdAt)

		require.Error(t, err)
		assert.ErrorContains(t, err, "radiusKm")
	})

	t.Run("should fail with inverted eta range", func(t *testing.T) {
		_, err := zone.NewZone(id, tenant, "Koramangala", boundary, center, 5, 40, 20, createdAt)

		require.Error(t, err)
		assert.ErrorContains(t, err, "etaRange")
	})

	t.Run("should fail with unconstructed boundary", func(t *testing.T) {
		var emptyBoundary kernel.Polygon
		_, err := zone.NewZone(id, tenant, "Koramangala", emptyBoundary, center, 5, 20, 40, createdAt)

		require.Error(t, err)
	})

	t.Run("should fail with zero creation time", func(t *testing.T) {
		_, err := zone.NewZone(id, tenant, "Koramangala", boundary, center, 5, 20, 40, time.Time{})

		require.Error(t, err)
		assert.ErrorContains(t, err, "createdAt")
	})
}

func TestZone_Contains(t *testing.T) {
	id, tenant, boundary, center, createdAt := testZoneArgs(t)
	z, err := zone.NewZone(id, tenant, "Koramangala", boundary, center, 5, 20, 40, createdAt)
	require.NoError(t, err)

	t.Run("interior point", func(t *testing.T) {
		point, _ := kernel.NewGeoPoint(12.930, 77.628)

		inside, err := z.Contains(point)

		require.NoError(t, err)
		assert.True(t, inside)
	})

	t.Run("exterior point", func(t *testing.T) {
		point, _ := kernel.NewGeoPoint(13.0, 77.0)

		inside, err := z.Contains(point)

		require.NoError(t, err)
		assert.False(t, inside)
	})
}

func TestZone_ActivationLifecycle(t *testing.T) {
	id, tenant, boundary, center, createdAt := testZoneArgs(t)
	z, err := zone.NewZone(id, tenant, "Koramangala", boundary, center, 5, 20, 40, createdAt)
	require.NoError(t, err)

	z.Deactivate()
	assert.False(t, z.IsActive())

	z.Activate()
	assert.True(t, z.IsActive())
}

func TestRestoreZone(t *testing.T) {
	id, tenant, boundary, center, createdAt := testZoneArgs(t)

	t.Run("restores inactive zones", func(t *testing.T) {
		z, err := zone.RestoreZone(id, tenant, "Koramangala", boundary, center, 5, 20, 40, false, createdAt)

		require.NoError(t, err)
		assert.False(t, z.IsActive())
	})
}

func TestZone_Validate(t *testing.T) {
	t.Run("nil zone fails validation", func(t *testing.T) {
		var z *zone.Zone

		assert.Equal(t, zone.ErrZoneIsNotConstructed, z.Validate())
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var z zone.Zone

		assert.Equal(t, zone.ErrZoneIsNotConstructed, z.Validate())
	})
}

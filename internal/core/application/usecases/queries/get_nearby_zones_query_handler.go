package queries

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hyperlocal/internal/core/domain/model/kernel"
)

// GetNearbyZonesQueryHandler reads active zones from the database and
// ranks them by center distance. Distance filtering happens in Go: the
// zone count per tenant is small and it keeps the haversine in one
// place, the kernel.
type GetNearbyZonesQueryHandler struct {
	db *gorm.DB
}

// NewGetNearbyZonesQueryHandler creates a handler for nearby-zone
// queries.
func NewGetNearbyZonesQueryHandler(db *gorm.DB) GetNearbyZonesQueryHandler {
	return GetNearbyZonesQueryHandler{db: db}
}

// Handle executes the query and returns zones sorted nearest first.
func (h GetNearbyZonesQueryHandler) Handle(
	ctx context.Context,
	query GetNearbyZonesQuery,
) ([]GetNearbyZonesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	zones := make([]GetNearbyZonesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			center_lat,
			center_lng,
			eta_min,
			eta_max
		FROM zones
		WHERE tenant = ? AND active
	`, query.Tenant().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var name string
		var centerLat, centerLng float64
		var etaMin, etaMax int

		if err = rows.Scan(&id, &name, &centerLat, &centerLng, &etaMin, &etaMax); err != nil {
			return nil, err
		}

		zoneID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		center, centerErr := kernel.NewGeoPoint(centerLat, centerLng)
		if centerErr != nil {
			return nil, centerErr
		}
		distance, distErr := query.Point().DistanceKm(center)
		if distErr != nil {
			return nil, distErr
		}
		if distance > query.MaxDistanceKm() {
			continue
		}

		zones = append(zones, GetNearbyZonesQueryResponse{
			ID:            zoneID,
			Name:          name,
			Center:        center,
			DistanceKm:    distance,
			EtaMinMinutes: etaMin,
			EtaMaxMinutes: etaMax,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(zones, func(i, j int) bool {
		return zones[i].DistanceKm < zones[j].DistanceKm
	})

	return zones, nil
}

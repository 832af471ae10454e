package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/rider"
)

// GetEligibleRidersQueryHandler reads the offerable riders of a zone
// from the database. The eligibility predicate mirrors the domain's
// IsEligible plus the known-location requirement the matcher applies.
type GetEligibleRidersQueryHandler struct {
	db *gorm.DB
}

// NewGetEligibleRidersQueryHandler creates a handler for dispatch-board
// queries.
func NewGetEligibleRidersQueryHandler(db *gorm.DB) GetEligibleRidersQueryHandler {
	return GetEligibleRidersQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by location freshness,
// newest ping first.
func (h GetEligibleRidersQueryHandler) Handle(
	ctx context.Context,
	query GetEligibleRidersQuery,
) ([]GetEligibleRidersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	riders := make([]GetEligibleRidersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			location_lat,
			location_lng
		FROM riders
		WHERE tenant = ?
		  AND ? = ANY(zones)
		  AND availability = ?
		  AND verified
		  AND active
		  AND location_lat IS NOT NULL
		ORDER BY located_at DESC
	`, query.Tenant().String(), query.ZoneID().Bytes(), rider.Online.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var name string
		var lat, lng float64

		if err = rows.Scan(&id, &name, &lat, &lng); err != nil {
			return nil, err
		}

		riderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		location, locErr := kernel.NewGeoPoint(lat, lng)
		if locErr != nil {
			return nil, locErr
		}

		riders = append(riders, GetEligibleRidersQueryResponse{
			ID:       riderID,
			Name:     name,
			Location: location,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return riders, nil
}

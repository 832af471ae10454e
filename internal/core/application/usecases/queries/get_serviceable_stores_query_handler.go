package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hyperlocal/internal/core/domain/model/kernel"
)

// GetServiceableStoresQueryHandler reads the orderable stores of a zone
// straight from the database. The weekday window, closure, and open
// flag checks all happen in SQL so the storefront listing is one round
// trip.
type GetServiceableStoresQueryHandler struct {
	db *gorm.DB
}

// NewGetServiceableStoresQueryHandler creates a handler for storefront
// listings.
func NewGetServiceableStoresQueryHandler(db *gorm.DB) GetServiceableStoresQueryHandler {
	return GetServiceableStoresQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by rating descending,
// ties broken by name.
func (h GetServiceableStoresQueryHandler) Handle(
	ctx context.Context,
	query GetServiceableStoresQuery,
) ([]GetServiceableStoresQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	at := query.At()
	minuteOfDay := at.Hour()*60 + at.Minute()

	stores := make([]GetServiceableStoresQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.name,
			s.location_lat,
			s.location_lng,
			s.rating,
			s.prep_time_minutes
		FROM stores s
		JOIN store_hours h ON h.store_id = s.id AND h.weekday = ?
		WHERE s.tenant = ?
		  AND s.zone_id = ?
		  AND s.active
		  AND s.open
		  AND (s.closure_until IS NULL OR s.closure_until <= ?)
		  AND ? >= h.open_minute
		  AND ? < h.close_minute
		ORDER BY s.rating DESC, s.name ASC
	`, int(at.Weekday()), query.Tenant().String(), query.ZoneID().Bytes(),
		at, minuteOfDay, minuteOfDay).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		var name string
		var lat, lng, rating float64
		var prepTime int

		if err = rows.Scan(&id, &name, &lat, &lng, &rating, &prepTime); err != nil {
			return nil, err
		}

		storeID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		location, locErr := kernel.NewGeoPoint(lat, lng)
		if locErr != nil {
			return nil, locErr
		}

		stores = append(stores, GetServiceableStoresQueryResponse{
			ID:              storeID,
			Name:            name,
			Location:        location,
			Rating:          rating,
			PrepTimeMinutes: prepTime,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return stores, nil
}

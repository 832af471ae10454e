// Package queries contains the read side: handlers that bypass the
// aggregates and read optimized models straight from the database.
package queries

import (
	"errors"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/guard"
)

// ErrGetNearbyZonesQueryIsNotConstructed is returned when using an
// improperly initialized GetNearbyZonesQuery.
var ErrGetNearbyZonesQueryIsNotConstructed = errors.New(
	"GetNearbyZonesQuery must be created via NewGetNearbyZonesQuery constructor",
)

// GetNearbyZonesQuery lists active zones whose center lies within the
// given distance of a point, nearest first. Backs the customer's
// "where can we deliver around me" screen.
type GetNearbyZonesQuery struct {
	tenant        kernel.TenantID
	point         kernel.GeoPoint
	maxDistanceKm float64

	guard guard.ConstructorGuard
}

// NewGetNearbyZonesQuery creates a query for zones near the point.
func NewGetNearbyZonesQuery(tenant kernel.TenantID, point kernel.GeoPoint, maxDistanceKm float64) (GetNearbyZonesQuery, error) {
	if err := tenant.Validate(); err != nil {
		return GetNearbyZonesQuery{}, err
	}
	if err := point.Validate(); err != nil {
		return GetNearbyZonesQuery{}, err
	}
	if maxDistanceKm <= 0 {
		return GetNearbyZonesQuery{}, errors.New("maxDistanceKm must be positive")
	}

	return GetNearbyZonesQuery{
		tenant:        tenant,
		point:         point,
		maxDistanceKm: maxDistanceKm,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Tenant returns the tenant scope of the query.
func (q GetNearbyZonesQuery) Tenant() kernel.TenantID {
	return q.tenant
}

// Point returns the reference point.
func (q GetNearbyZonesQuery) Point() kernel.GeoPoint {
	return q.point
}

// MaxDistanceKm returns the search radius.
func (q GetNearbyZonesQuery) MaxDistanceKm() float64 {
	return q.maxDistanceKm
}

// Validate ensures the query was created through the constructor.
func (q GetNearbyZonesQuery) Validate() error {
	return q.guard.Validate(ErrGetNearbyZonesQueryIsNotConstructed)
}

// GetNearbyZonesQueryResponse is one zone in the nearby read model.
type GetNearbyZonesQueryResponse struct {
	ID            kernel.UUID
	Name          string
	Center        kernel.GeoPoint
	DistanceKm    float64
	EtaMinMinutes int
	EtaMaxMinutes int
}

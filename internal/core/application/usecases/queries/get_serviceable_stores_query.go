package queries

import (
	"errors"
	"time"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/guard"
)

// ErrGetServiceableStoresQueryIsNotConstructed is returned when using
// an improperly initialized GetServiceableStoresQuery.
var ErrGetServiceableStoresQueryIsNotConstructed = errors.New(
	"GetServiceableStoresQuery must be created via NewGetServiceableStoresQuery constructor",
)

// GetServiceableStoresQuery lists the stores of a zone that can take an
// order at a given instant: active, open, not under a closure, and
// inside their weekday window.
type GetServiceableStoresQuery struct {
	tenant kernel.TenantID
	zoneID kernel.UUID
	at     time.Time

	guard guard.ConstructorGuard
}

// NewGetServiceableStoresQuery creates a query for orderable stores in
// the zone at the given instant.
func NewGetServiceableStoresQuery(tenant kernel.TenantID, zoneID kernel.UUID, at time.Time) (GetServiceableStoresQuery, error) {
	if err := tenant.Validate(); err != nil {
		return GetServiceableStoresQuery{}, err
	}
	if err := zoneID.Validate(); err != nil {
		return GetServiceableStoresQuery{}, err
	}
	if at.IsZero() {
		return GetServiceableStoresQuery{}, errors.New("at must be a concrete instant")
	}

	return GetServiceableStoresQuery{
		tenant: tenant,
		zoneID: zoneID,
		at:     at,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Tenant returns the tenant scope of the query.
func (q GetServiceableStoresQuery) Tenant() kernel.TenantID {
	return q.tenant
}

// ZoneID returns the zone whose stores are listed.
func (q GetServiceableStoresQuery) ZoneID() kernel.UUID {
	return q.zoneID
}

// At returns the instant serviceability is evaluated at.
func (q GetServiceableStoresQuery) At() time.Time {
	return q.at
}

// Validate ensures the query was created through the constructor.
func (q GetServiceableStoresQuery) Validate() error {
	return q.guard.Validate(ErrGetServiceableStoresQueryIsNotConstructed)
}

// GetServiceableStoresQueryResponse is one store in the storefront read
// model, best rated first.
type GetServiceableStoresQueryResponse struct {
	ID              kernel.UUID
	Name            string
	Location        kernel.GeoPoint
	Rating          float64
	PrepTimeMinutes int
}

package queries

import (
	"errors"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/guard"
)

// ErrGetEligibleRidersQueryIsNotConstructed is returned when using an
// improperly initialized GetEligibleRidersQuery.
var ErrGetEligibleRidersQueryIsNotConstructed = errors.New(
	"GetEligibleRidersQuery must be created via NewGetEligibleRidersQuery constructor",
)

// GetEligibleRidersQuery lists the riders who could take an offer in a
// zone right now: verified, active, online, serving the zone, with a
// known location. Backs the dispatch board.
type GetEligibleRidersQuery struct {
	tenant kernel.TenantID
	zoneID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetEligibleRidersQuery creates a query for offerable riders in the
// zone.
func NewGetEligibleRidersQuery(tenant kernel.TenantID, zoneID kernel.UUID) (GetEligibleRidersQuery, error) {
	if err := tenant.Validate(); err != nil {
		return GetEligibleRidersQuery{}, err
	}
	if err := zoneID.Validate(); err != nil {
		return GetEligibleRidersQuery{}, err
	}

	return GetEligibleRidersQuery{
		tenant: tenant,
		zoneID: zoneID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Tenant returns the tenant scope of the query.
func (q GetEligibleRidersQuery) Tenant() kernel.TenantID {
	return q.tenant
}

// ZoneID returns the zone riders must serve.
func (q GetEligibleRidersQuery) ZoneID() kernel.UUID {
	return q.zoneID
}

// Validate ensures the query was created through the constructor.
func (q GetEligibleRidersQuery) Validate() error {
	return q.guard.Validate(ErrGetEligibleRidersQueryIsNotConstructed)
}

// GetEligibleRidersQueryResponse is one rider on the dispatch board,
// freshest location ping first.
type GetEligibleRidersQueryResponse struct {
	ID       kernel.UUID
	Name     string
	Location kernel.GeoPoint
}

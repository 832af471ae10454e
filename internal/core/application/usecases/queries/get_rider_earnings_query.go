package queries

import (
	"errors"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/guard"
)

// ErrGetRiderEarningsQueryIsNotConstructed is returned when using an
// improperly initialized GetRiderEarningsQuery.
var ErrGetRiderEarningsQueryIsNotConstructed = errors.New(
	"GetRiderEarningsQuery must be created via NewGetRiderEarningsQuery constructor",
)

// GetRiderEarningsQuery fetches a rider's earnings ledger and delivery
// counters. Backs the rider app's earnings screen.
type GetRiderEarningsQuery struct {
	tenant  kernel.TenantID
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRiderEarningsQuery creates a query for one rider's earnings.
func NewGetRiderEarningsQuery(tenant kernel.TenantID, riderID kernel.UUID) (GetRiderEarningsQuery, error) {
	if err := tenant.Validate(); err != nil {
		return GetRiderEarningsQuery{}, err
	}
	if err := riderID.Validate(); err != nil {
		return GetRiderEarningsQuery{}, err
	}

	return GetRiderEarningsQuery{
		tenant:  tenant,
		riderID: riderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Tenant returns the tenant scope of the query.
func (q GetRiderEarningsQuery) Tenant() kernel.TenantID {
	return q.tenant
}

// RiderID returns the rider whose ledger is read.
func (q GetRiderEarningsQuery) RiderID() kernel.UUID {
	return q.riderID
}

// Validate ensures the query was created through the constructor.
func (q GetRiderEarningsQuery) Validate() error {
	return q.guard.Validate(ErrGetRiderEarningsQueryIsNotConstructed)
}

// GetRiderEarningsQueryResponse is the earnings read model. Amounts are
// in minor currency units.
type GetRiderEarningsQueryResponse struct {
	RiderID         kernel.UUID
	Balance         int64
	Today           int64
	Week            int64
	Month           int64
	TotalOrders     int
	CompletedOrders int
	CancelledOrders int
}

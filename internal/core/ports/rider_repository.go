package ports

import (
	"context"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/rider"
)

// RiderRepository defines the persistence contract for rider aggregates.
type RiderRepository interface {
	// Add persists a new rider aggregate.
	Add(ctx context.Context, aggregate *rider.Rider) error

	// Update persists changes to an existing rider aggregate.
	Update(ctx context.Context, aggregate *rider.Rider) error

	// Get retrieves a rider by identifier within the tenant.
	Get(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) (*rider.Rider, error)

	// GetAllServingZone retrieves riders whose zone set includes zoneID.
	// The matcher filters these further by eligibility and distance.
	GetAllServingZone(ctx context.Context, tenant kernel.TenantID, zoneID kernel.UUID) ([]*rider.Rider, error)
}

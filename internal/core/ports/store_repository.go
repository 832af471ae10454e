package ports

import (
	"context"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/store"
)

// StoreRepository defines the persistence contract for store aggregates.
type StoreRepository interface {
	// Add persists a new store aggregate.
	Add(ctx context.Context, aggregate *store.Store) error

	// Update persists changes to an existing store aggregate.
	Update(ctx context.Context, aggregate *store.Store) error

	// Get retrieves a store by identifier within the tenant.
	Get(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) (*store.Store, error)

	// GetAllInZone retrieves every active store bound to the zone.
	GetAllInZone(ctx context.Context, tenant kernel.TenantID, zoneID kernel.UUID) ([]*store.Store, error)
}

package ports

import (
	"context"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/zone"
)

// ZoneRepository defines the persistence contract for zone aggregates.
// Every read is scoped by tenant; a zone belonging to another tenant is
// indistinguishable from a missing one.
type ZoneRepository interface {
	// Add persists a new zone aggregate.
	Add(ctx context.Context, aggregate *zone.Zone) error

	// Update persists changes to an existing zone aggregate.
	Update(ctx context.Context, aggregate *zone.Zone) error

	// Get retrieves a zone by identifier within the tenant.
	Get(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) (*zone.Zone, error)

	// GetAllActive retrieves every active zone for the tenant. The zone
	// resolver scans these for polygon membership.
	GetAllActive(ctx context.Context, tenant kernel.TenantID) ([]*zone.Zone, error)
}

package ports

import (
	"context"
	"time"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate with its items and history.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate. New
	// history entries are appended; existing ones are never rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by identifier within the tenant.
	Get(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) (*order.Order, error)

	// GetAllAwaitingRider retrieves ready_for_pickup orders without a
	// rider that have waited since before the given cutoff. Used by the
	// assignment sweeper.
	GetAllAwaitingRider(ctx context.Context, tenant kernel.TenantID, waitingSince time.Time) ([]*order.Order, error)

	// ClaimForRider atomically sets the rider on a ready_for_pickup
	// order whose rider is still null. Returns order.ErrAlreadyAssigned
	// when another rider won the race, so at most one claim succeeds.
	ClaimForRider(ctx context.Context, tenant kernel.TenantID, id kernel.UUID, riderID kernel.UUID) error
}

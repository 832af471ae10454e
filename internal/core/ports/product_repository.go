package ports

import (
	"context"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for product
// aggregates, including the stock linearization points.
type ProductRepository interface {
	// Add persists a new product aggregate.
	Add(ctx context.Context, aggregate *product.Product) error

	// Update persists changes to an existing product aggregate.
	// Update never touches the stock column; use ReserveStock and
	// ReleaseStock so concurrent reservations are not lost.
	Update(ctx context.Context, aggregate *product.Product) error

	// Get retrieves a product by identifier within the tenant.
	Get(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) (*product.Product, error)

	// GetAllInStore retrieves every active product of the store.
	GetAllInStore(ctx context.Context, tenant kernel.TenantID, storeID kernel.UUID) ([]*product.Product, error)

	// ReserveStock atomically decrements stock by qty, failing with
	// product.ErrInsufficientStock when fewer than qty units remain.
	// Two concurrent reservations can never both succeed past actual
	// availability.
	ReserveStock(ctx context.Context, tenant kernel.TenantID, id kernel.UUID, qty int) error

	// ReleaseStock atomically increments stock by qty. It never fails
	// for a positive qty on an existing product.
	ReleaseStock(ctx context.Context, tenant kernel.TenantID, id kernel.UUID, qty int) error
}

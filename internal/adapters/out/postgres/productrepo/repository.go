package productrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/product"
	"hyperlocal/internal/pkg/errs"
)

// aggregateTracker records aggregates modified within the unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormProductRepository implements ports.ProductRepository using GORM.
type GormProductRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormProductRepository creates a new GORM product repository.
func NewGormProductRepository(db *gorm.DB, tracker aggregateTracker) *GormProductRepository {
	return &GormProductRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new product.
func (r *GormProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing product's catalog fields. The stock column
// is omitted so concurrent reservations are never overwritten by a
// stale aggregate.
func (r *GormProductRepository) Update(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ProductDTO{}).
		Where("id = ?", dto.ID).
		Omit("stock").
		Select("tenant", "store_id", "name", "category", "price", "max_order_quantity", "active").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a product by ID within the tenant.
func (r *GormProductRepository) Get(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND tenant = ?", id.Bytes(), tenant.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("product", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInStore retrieves every active product of the store.
func (r *GormProductRepository) GetAllInStore(ctx context.Context, tenant kernel.TenantID, storeID kernel.UUID) ([]*product.Product, error) {
	if err := storeID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ProductDTO
	err := r.db.WithContext(ctx).
		Where("tenant = ? AND store_id = ? AND active", tenant.String(), storeID.Bytes()).
		Order("name ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	products := make([]*product.Product, 0, len(dtos))
	for _, dto := range dtos {
		p, pErr := toDomain(dto)
		if pErr != nil {
			return nil, pErr
		}
		products = append(products, p)
	}

	return products, nil
}

// ReserveStock decrements stock by qty in a single conditional UPDATE.
// The `stock >= qty` predicate is the linearization point: of two
// concurrent reservations contending for the last units, exactly one
// matches the row.
func (r *GormProductRepository) ReserveStock(ctx context.Context, tenant kernel.TenantID, id kernel.UUID, qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("%d is not a positive quantity", qty))
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE products
		SET stock = stock - ?
		WHERE id = ? AND tenant = ? AND stock >= ?
	`, qty, id.Bytes(), tenant.String(), qty)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return product.ErrInsufficientStock
	}

	return nil
}

// ReleaseStock increments stock by qty, returning units reserved by a
// cancelled order.
func (r *GormProductRepository) ReleaseStock(ctx context.Context, tenant kernel.TenantID, id kernel.UUID, qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty",
			fmt.Errorf("%d is not a positive quantity", qty))
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE products
		SET stock = stock + ?
		WHERE id = ? AND tenant = ?
	`, qty, id.Bytes(), tenant.String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("product", id.String())
	}

	return nil
}

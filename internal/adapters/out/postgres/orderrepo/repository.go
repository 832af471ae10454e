package orderrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/pkg/errs"
)

// aggregateTracker records aggregates modified within the unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with its items and initial history entry.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
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

// Update saves an existing order. Items are frozen at placement and
// the history is append-only: only history entries beyond the persisted
// count are inserted, existing rows are never rewritten.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Omit("Items", "History").Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	var persisted int64
	err := r.db.WithContext(ctx).
		Model(&HistoryEntryDTO{}).
		Where("order_id = ?", dto.ID).
		Count(&persisted).Error
	if err != nil {
		return err
	}
	if int(persisted) < len(dto.History) {
		tail := dto.History[persisted:]
		if err = r.db.WithContext(ctx).Create(&tail).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID within the tenant, with its items and
// full history.
func (r *GormOrderRepository) Get(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		First(&dto, "id = ? AND tenant = ?", id.Bytes(), tenant.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllAwaitingRider retrieves unclaimed ready_for_pickup orders that
// have been ready since before the cutoff.
func (r *GormOrderRepository) GetAllAwaitingRider(ctx context.Context, tenant kernel.TenantID, waitingSince time.Time) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("tenant = ? AND status = ? AND rider_id IS NULL AND ready_at <= ?",
			tenant.String(), order.ReadyForPickup.String(), waitingSince).
		Order("ready_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, oErr := toDomain(dto)
		if oErr != nil {
			return nil, oErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// ClaimForRider sets the rider on an unclaimed ready_for_pickup order
// in a single conditional UPDATE. The `rider_id IS NULL` predicate is
// the linearization point of the assignment race: of any number of
// concurrent claims, exactly one matches the row.
func (r *GormOrderRepository) ClaimForRider(ctx context.Context, tenant kernel.TenantID, id kernel.UUID, riderID kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	if err := riderID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Exec(`
		UPDATE orders
		SET rider_id = ?
		WHERE id = ? AND tenant = ? AND rider_id IS NULL AND status = ?
	`, riderID.Bytes(), id.Bytes(), tenant.String(), order.ReadyForPickup.String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.ErrAlreadyAssigned
	}

	return nil
}

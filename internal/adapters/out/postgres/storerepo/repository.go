package storerepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/store"
	"hyperlocal/internal/pkg/errs"
)

// aggregateTracker records aggregates modified within the unit of work.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormStoreRepository implements ports.StoreRepository using GORM.
type GormStoreRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormStoreRepository creates a new GORM store repository.
func NewGormStoreRepository(db *gorm.DB, tracker aggregateTracker) *GormStoreRepository {
	return &GormStoreRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new store with its weekly schedule.
func (r *GormStoreRepository) Add(ctx context.Context, aggregate *store.Store) error {
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

// Update saves an existing store. Schedule rows are replaced so weekday
// removals take effect.
func (r *GormStoreRepository) Update(ctx context.Context, aggregate *store.Store) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Omit("Hours").Save(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	err := r.db.WithContext(ctx).
		Where("store_id = ?", dto.ID).
		Delete(&StoreHourDTO{}).Error
	if err != nil {
		return err
	}
	if len(dto.Hours) > 0 {
		if err = r.db.WithContext(ctx).Create(&dto.Hours).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a store by ID within the tenant.
func (r *GormStoreRepository) Get(ctx context.Context, tenant kernel.TenantID, id kernel.UUID) (*store.Store, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StoreDTO
	err := r.db.WithContext(ctx).
		Preload("Hours").
		First(&dto, "id = ? AND tenant = ?", id.Bytes(), tenant.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("store", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInZone retrieves every active store bound to the zone.
func (r *GormStoreRepository) GetAllInZone(ctx context.Context, tenant kernel.TenantID, zoneID kernel.UUID) ([]*store.Store, error) {
	if err := zoneID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StoreDTO
	err := r.db.WithContext(ctx).
		Preload("Hours").
		Where("tenant = ? AND zone_id = ? AND active", tenant.String(), zoneID.Bytes()).
		Order("name ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	stores := make([]*store.Store, 0, len(dtos))
	for _, dto := range dtos {
		s, sErr := toDomain(dto)
		if sErr != nil {
			return nil, sErr
		}
		stores = append(stores, s)
	}

	return stores, nil
}

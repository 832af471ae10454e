// Package storerepo maps store aggregates to their relational form. The
// weekly schedule lives in a child table keyed by weekday; weekdays
// without a row are closed all day.
package storerepo

import (
	"time"

	"github.com/google/uuid"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/store"
)

// StoreDTO is the database row for a store aggregate.
type StoreDTO struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Tenant                string         `gorm:"type:varchar(64);not null;index"`
	ZoneID                uuid.UUID      `gorm:"type:uuid;not null;index"`
	OwnerID               uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name                  string         `gorm:"type:varchar(255);not null"`
	LocationLat           float64        `gorm:"type:double precision;not null"`
	LocationLng           float64        `gorm:"type:double precision;not null"`
	CommissionRatePercent float64        `gorm:"type:double precision;not null"`
	PrepTimeMinutes       int            `gorm:"type:int;not null"`
	Open                  bool           `gorm:"type:boolean;not null"`
	ClosureReason         *string        `gorm:"type:varchar(255)"`
	ClosureUntil          *time.Time     `gorm:"type:timestamptz"`
	Rating                float64        `gorm:"type:double precision;not null"`
	Active                bool           `gorm:"type:boolean;not null"`
	Hours                 []StoreHourDTO `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default to "stores".
func (StoreDTO) TableName() string {
	return "stores"
}

// StoreHourDTO is one weekday's operating window, minutes since
// midnight, half-open [open, close).
type StoreHourDTO struct {
	StoreID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Weekday     int       `gorm:"type:int;primaryKey"`
	OpenMinute  int       `gorm:"type:int;not null"`
	CloseMinute int       `gorm:"type:int;not null"`
}

// TableName overrides GORM's default to "store_hours".
func (StoreHourDTO) TableName() string {
	return "store_hours"
}

func fromDomain(s *store.Store) StoreDTO {
	storeID := s.ID().Bytes()
	hours := make([]StoreHourDTO, 0, len(s.Schedule()))
	for weekday, window := range s.Schedule() {
		hours = append(hours, StoreHourDTO{
			StoreID:     storeID,
			Weekday:     int(weekday),
			OpenMinute:  window.OpenMinute(),
			CloseMinute: window.CloseMinute(),
		})
	}

	dto := StoreDTO{
		ID:                    storeID,
		Tenant:                s.Tenant().String(),
		ZoneID:                s.ZoneID().Bytes(),
		OwnerID:               s.OwnerID().Bytes(),
		Name:                  s.Name(),
		LocationLat:           s.Location().Lat(),
		LocationLng:           s.Location().Lng(),
		CommissionRatePercent: s.CommissionRatePercent(),
		PrepTimeMinutes:       s.PrepTimeMinutes(),
		Open:                  s.IsOpen(),
		Rating:                s.Rating(),
		Active:                s.IsActive(),
		Hours:                 hours,
	}

	if closure := s.Closure(); closure != nil {
		reason := closure.Reason
		until := closure.Until
		dto.ClosureReason = &reason
		dto.ClosureUntil = &until
	}

	return dto
}

func toDomain(dto StoreDTO) (*store.Store, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenant, err := kernel.NewTenantID(dto.Tenant)
	if err != nil {
		return nil, err
	}
	zoneID, err := kernel.UUIDFromBytes(dto.ZoneID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	location, err := kernel.NewGeoPoint(dto.LocationLat, dto.LocationLng)
	if err != nil {
		return nil, err
	}

	schedule := store.WeekSchedule{}
	for _, hour := range dto.Hours {
		window, windowErr := store.NewOperatingWindow(hour.OpenMinute, hour.CloseMinute)
		if windowErr != nil {
			return nil, windowErr
		}
		schedule[time.Weekday(hour.Weekday)] = window
	}

	var closure *store.TemporaryClosure
	if dto.ClosureUntil != nil {
		reason := ""
		if dto.ClosureReason != nil {
			reason = *dto.ClosureReason
		}
		closure = &store.TemporaryClosure{Reason: reason, Until: *dto.ClosureUntil}
	}

	return store.RestoreStore(id, tenant, zoneID, ownerID, dto.Name, location,
		schedule, dto.CommissionRatePercent, dto.PrepTimeMinutes,
		dto.Open, closure, dto.Rating, dto.Active)
}

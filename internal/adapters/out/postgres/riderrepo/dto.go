// Package riderrepo maps rider aggregates to their relational form.
// Served zones are stored as a uuid array column so the zone membership
// check stays a single indexed predicate.
package riderrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/rider"
)

// RiderDTO is the database row for a rider aggregate.
type RiderDTO struct {
	ID     uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Tenant string         `gorm:"type:varchar(64);not null;index"`
	Name   string         `gorm:"type:varchar(255);not null"`
	Phone  string         `gorm:"type:varchar(32);not null"`
	Zones  pq.StringArray `gorm:"type:uuid[];not null;index:,type:gin"`

	LocationLat *float64  `gorm:"type:double precision"`
	LocationLng *float64  `gorm:"type:double precision"`
	LocatedAt   time.Time `gorm:"type:timestamptz"`

	Availability string `gorm:"type:varchar(16);not null"`
	Verified     bool   `gorm:"type:boolean;not null"`
	Active       bool   `gorm:"type:boolean;not null"`

	EarningsBalance int64 `gorm:"type:bigint;not null"`
	EarningsToday   int64 `gorm:"type:bigint;not null"`
	EarningsWeek    int64 `gorm:"type:bigint;not null"`
	EarningsMonth   int64 `gorm:"type:bigint;not null"`

	TotalOrders     int     `gorm:"type:int;not null"`
	CompletedOrders int     `gorm:"type:int;not null"`
	CancelledOrders int     `gorm:"type:int;not null"`
	Rating          float64 `gorm:"type:double precision;not null"`
}

// TableName overrides GORM's default to "riders".
func (RiderDTO) TableName() string {
	return "riders"
}

func fromDomain(r *rider.Rider) RiderDTO {
	zones := make(pq.StringArray, 0, len(r.Zones()))
	for _, zoneID := range r.Zones() {
		zones = append(zones, zoneID.String())
	}

	dto := RiderDTO{
		ID:              r.ID().Bytes(),
		Tenant:          r.Tenant().String(),
		Name:            r.Name(),
		Phone:           r.Phone(),
		Zones:           zones,
		LocatedAt:       r.LocatedAt(),
		Availability:    r.Availability().String(),
		Verified:        r.IsVerified(),
		Active:          r.IsActive(),
		EarningsBalance: r.Earnings().Balance().Int64(),
		EarningsToday:   r.Earnings().Today().Int64(),
		EarningsWeek:    r.Earnings().Week().Int64(),
		EarningsMonth:   r.Earnings().Month().Int64(),
		TotalOrders:     r.TotalOrders(),
		CompletedOrders: r.CompletedOrders(),
		CancelledOrders: r.CancelledOrders(),
		Rating:          r.Rating(),
	}

	if location := r.Location(); location != nil {
		lat := location.Lat()
		lng := location.Lng()
		dto.LocationLat = &lat
		dto.LocationLng = &lng
	}

	return dto
}

func toDomain(dto RiderDTO) (*rider.Rider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	tenant, err := kernel.NewTenantID(dto.Tenant)
	if err != nil {
		return nil, err
	}

	zones := make([]kernel.UUID, 0, len(dto.Zones))
	for _, raw := range dto.Zones {
		zoneID, zoneErr := kernel.UUIDFromString(raw)
		if zoneErr != nil {
			return nil, zoneErr
		}
		zones = append(zones, zoneID)
	}

	var location *kernel.GeoPoint
	if dto.LocationLat != nil && dto.LocationLng != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.LocationLat, *dto.LocationLng)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	availability, err := rider.AvailabilityFromString(dto.Availability)
	if err != nil {
		return nil, err
	}

	earnings, err := rider.RestoreEarnings(
		kernel.Money(dto.EarningsBalance),
		kernel.Money(dto.EarningsToday),
		kernel.Money(dto.EarningsWeek),
		kernel.Money(dto.EarningsMonth),
	)
	if err != nil {
		return nil, err
	}

	return rider.RestoreRider(id, tenant, dto.Name, dto.Phone, zones,
		location, dto.LocatedAt, availability, dto.Verified, dto.Active,
		earnings, dto.TotalOrders, dto.CompletedOrders, dto.CancelledOrders,
		dto.Rating)
}

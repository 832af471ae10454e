// Package zonerepo maps zone aggregates to their relational form. The
// boundary ring lives in a child table ordered by vertex position so the
// polygon survives round trips unchanged.
package zonerepo

import (
	"time"

	"github.com/google/uuid"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/zone"
)

// ZoneDTO is the database row for a zone aggregate.
type ZoneDTO struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Tenant    string         `gorm:"type:varchar(64);not null;index"`
	Name      string         `gorm:"type:varchar(255);not null"`
	CenterLat float64        `gorm:"type:double precision;not null"`
	CenterLng float64        `gorm:"type:double precision;not null"`
	RadiusKm  float64        `gorm:"type:double precision;not null"`
	EtaMin    int            `gorm:"type:int;not null"`
	EtaMax    int            `gorm:"type:int;not null"`
	Active    bool           `gorm:"type:boolean;not null"`
	CreatedAt time.Time      `gorm:"type:timestamptz;not null"`
	Vertices  []ZoneVertexDTO `gorm:"foreignKey:ZoneID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default to "zones".
func (ZoneDTO) TableName() string {
	return "zones"
}

// ZoneVertexDTO is one vertex of a zone's boundary ring. Position keeps
// the ring order; the ring is implicitly closed.
type ZoneVertexDTO struct {
	ZoneID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position int       `gorm:"type:int;primaryKey"`
	Lat      float64   `gorm:"type:double precision;not null"`
	Lng      float64   `gorm:"type:double precision;not null"`
}

// TableName overrides GORM's default to "zone_vertices".
func (ZoneVertexDTO) TableName() string {
	return "zone_vertices"
}

func fromDomain(z *zone.Zone) ZoneDTO {
	zoneID := z.ID().Bytes()
	vertices := make([]ZoneVertexDTO, 0, len(z.Boundary().Vertices()))
	for i, v := range z.Boundary().Vertices() {
		vertices = append(vertices, ZoneVertexDTO{
			ZoneID:   zoneID,
			Position: i,
			Lat:      v.Lat(),
			Lng:      v.Lng(),
		})
	}

	etaMin, etaMax := z.ETAMinutes()
	return ZoneDTO{
		ID:        zoneID,
		Tenant:    z.Tenant().String(),
		Name:      z.Name(),
		CenterLat: z.Center().Lat(),
		CenterLng: z.Center().Lng(),
		RadiusKm:  z.RadiusKm(),
		EtaMin:    etaMin,
		EtaMax:    etaMax,
		Active:    z.IsActive(),
		CreatedAt: z.CreatedAt(),
		Vertices:  vertices,
	}
}

func toDomain(dto ZoneDTO) (*zone.Zone, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tenant, err := kernel.NewTenantID(dto.Tenant)
	if err != nil {
		return nil, err
	}

	vertices := make([]kernel.GeoPoint, 0, len(dto.Vertices))
	for _, v := range dto.Vertices {
		point, pointErr := kernel.NewGeoPoint(v.Lat, v.Lng)
		if pointErr != nil {
			return nil, pointErr
		}
		vertices = append(vertices, point)
	}
	boundary, err := kernel.NewPolygon(vertices)
	if err != nil {
		return nil, err
	}

	center, err := kernel.NewGeoPoint(dto.CenterLat, dto.CenterLng)
	if err != nil {
		return nil, err
	}

	return zone.RestoreZone(id, tenant, dto.Name, boundary, center,
		dto.RadiusKm, dto.EtaMin, dto.EtaMax, dto.Active, dto.CreatedAt)
}

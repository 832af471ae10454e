package zone

import (
	"errors"
	"fmt"
	"time"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/errs"
	"hyperlocal/internal/pkg/guard"
)

// Domain errors for zone operations.
var (
	// ErrZoneIsNotConstructed is returned when using an improperly
	// initialized Zone.
	ErrZoneIsNotConstructed = errors.New("Zone must be created via NewZone constructor")
	// ErrNameIsRequired is returned when attempting to create a zone
	// without a human-readable name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
)

// Zone is a polygonal geographic service area. It is an aggregate root
// owning an immutable boundary, a center point used for proximity ranking,
// and the delivery-time estimate advertised to customers.
//
// Invariants:
//   - The boundary polygon is fixed at construction and never mutated.
//   - The ETA range satisfies 0 < min ≤ max.
//   - The service radius is positive.
//   - Zones of one tenant are expected not to overlap; resolution remains
//     deterministic even if data violates that (see services.ZoneResolver).
type Zone struct {
	id       kernel.UUID
	tenant   kernel.TenantID
	name     string
	boundary kernel.Polygon
	center   kernel.GeoPoint
	// radiusKm bounds proximity searches around the center.
	radiusKm float64
	// etaMinMinutes and etaMaxMinutes form the advertised delivery window.
	etaMinMinutes int
	etaMaxMinutes int
	active        bool
	// createdAt is the deterministic tie-break key for overlap resolution.
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewZone creates an active Zone with a validated boundary and ETA range.
//
// Parameters:
//   - id: unique zone identifier
//   - tenant: partition key of the owning deployment
//   - name: human-readable zone name (non-empty)
//   - boundary: ordered vertex ring, implicitly closed
//   - center: reference point for proximity ranking
//   - radiusKm: positive service radius around the center
//   - etaMin, etaMax: advertised delivery window in minutes, 0 < min ≤ max
//   - createdAt: creation instant, used as the overlap tie-break key
func NewZone(
	id kernel.UUID,
	tenant kernel.TenantID,
	name string,
	boundary kernel.Polygon,
	center kernel.GeoPoint,
	radiusKm float64,
	etaMin, etaMax int,
	createdAt time.Time,
) (*Zone, error) {
	z := &Zone{
		active: true,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		z.setID(id),
		z.setTenant(tenant),
		z.setName(name),
		z.setBoundary(boundary),
		z.setCenter(center),
		z.setRadiusKm(radiusKm),
		z.setETARange(etaMin, etaMax),
		z.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return z, nil
}

// RestoreZone reconstructs a Zone from persistence, including its active
// flag. Behaves identically to a zone created through NewZone.
func RestoreZone(
	id kernel.UUID,
	tenant kernel.TenantID,
	name string,
	boundary kernel.Polygon,
	center kernel.GeoPoint,
	radiusKm float64,
	etaMin, etaMax int,
	active bool,
	createdAt time.Time,
) (*Zone, error) {
	z, err := NewZone(id, tenant, name, boundary, center, radiusKm, etaMin, etaMax, createdAt)
	if err != nil {
		return nil, err
	}
	z.active = active
	return z, nil
}

// Validate ensures the Zone was built through its constructor.
func (z *Zone) Validate() error {
	if z == nil {
		return ErrZoneIsNotConstructed
	}
	return z.guard.Validate(ErrZoneIsNotConstructed)
}

// IsEqual compares zones by identifier.
func (z *Zone) IsEqual(other *Zone) bool {
	return other != nil && z.id.IsEqual(other.id)
}

// ID returns the zone's unique identifier.
func (z *Zone) ID() kernel.UUID {
	return z.id
}

// Tenant returns the owning partition key.
func (z *Zone) Tenant() kernel.TenantID {
	return z.tenant
}

// Name returns the human-readable zone name.
func (z *Zone) Name() string {
	return z.name
}

// Boundary returns the immutable service polygon.
func (z *Zone) Boundary() kernel.Polygon {
	return z.boundary
}

// Center returns the proximity reference point.
func (z *Zone) Center() kernel.GeoPoint {
	return z.center
}

// RadiusKm returns the service radius around the center.
func (z *Zone) RadiusKm() float64 {
	return z.radiusKm
}

// ETAMinutes returns the advertised delivery window (min, max).
func (z *Zone) ETAMinutes() (int, int) {
	return z.etaMinMinutes, z.etaMaxMinutes
}

// IsActive reports whether the zone currently serves traffic.
func (z *Zone) IsActive() bool {
	return z.active
}

// CreatedAt returns the creation instant used as the overlap tie-break key.
func (z *Zone) CreatedAt() time.Time {
	return z.createdAt
}

// Deactivate takes the zone out of service. Existing orders keep their
// zone snapshot; only resolution of new coordinates is affected.
func (z *Zone) Deactivate() {
	z.active = false
}

// Activate returns the zone to service.
func (z *Zone) Activate() {
	z.active = true
}

// Contains reports whether the point lies inside the zone boundary.
func (z *Zone) Contains(point kernel.GeoPoint) (bool, error) {
	if err := z.Validate(); err != nil {
		return false, err
	}
	return z.boundary.Contains(point)
}

func (z *Zone) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	z.id = id
	return nil
}

func (z *Zone) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	z.tenant = tenant
	return nil
}

func (z *Zone) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	z.name = name
	return nil
}

func (z *Zone) setBoundary(boundary kernel.Polygon) error {
	if err := boundary.Validate(); err != nil {
		return err
	}
	z.boundary = boundary
	return nil
}

func (z *Zone) setCenter(center kernel.GeoPoint) error {
	if err := center.Validate(); err != nil {
		return err
	}
	z.center = center
	return nil
}

func (z *Zone) setRadiusKm(radiusKm float64) error {
	if radiusKm <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("radiusKm",
			fmt.Errorf("%g is not greater than 0", radiusKm))
	}
	z.radiusKm = radiusKm
	return nil
}

func (z *Zone) setETARange(etaMin, etaMax int) error {
	if etaMin <= 0 || etaMax < etaMin {
		return errs.NewValueIsInvalidErrorWithCause("etaRange",
			fmt.Errorf("[%d, %d] is not a valid delivery window", etaMin, etaMax))
	}
	z.etaMinMinutes = etaMin
	z.etaMaxMinutes = etaMax
	return nil
}

func (z *Zone) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	z.createdAt = createdAt
	return nil
}

package store

import (
	"errors"
	"fmt"
	"time"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/errs"
	"hyperlocal/internal/pkg/guard"
)

// Domain errors for store operations.
var (
	// ErrStoreIsNotConstructed is returned when using an improperly
	// initialized Store.
	ErrStoreIsNotConstructed = errors.New("Store must be created via NewStore constructor")
	// ErrNameIsRequired is returned when attempting to create a store
	// without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrStoreUnavailable is returned when an operation requires the store
	// to be currently open and it is not.
	ErrStoreUnavailable = errors.New("store is closed or unavailable")
)

// maxCommissionRatePercent caps the platform commission a store can carry.
const maxCommissionRatePercent = 100.0

// TemporaryClosure is a short-lived override that keeps an otherwise open
// store out of service until its expiry.
type TemporaryClosure struct {
	Reason string
	Until  time.Time
}

// Store is an aggregate root describing a merchant location bound to a
// service zone. Many stores belong to one zone; each store exclusively
// owns its products.
//
// "Currently open" is a derived property: the store must be active, have
// its transient open flag set, carry no unexpired temporary closure, and
// the queried instant must fall inside that weekday's operating window.
type Store struct {
	id       kernel.UUID
	tenant   kernel.TenantID
	zoneID   kernel.UUID
	ownerID  kernel.UUID
	name     string
	location kernel.GeoPoint
	schedule WeekSchedule
	// open is the merchant-controlled transient flag, flipped from the
	// store dashboard independently of the schedule.
	open    bool
	closure *TemporaryClosure
	// commissionRatePercent is applied to order subtotals.
	commissionRatePercent float64
	prepTimeMinutes       int
	rating                float64
	active                bool

	guard guard.ConstructorGuard
}

// NewStore creates an active, open Store.
//
// The schedule is copied; weekdays without a window are closed all day.
// Commission rate is a percentage in [0, 100]; prep time must be
// non-negative.
func NewStore(
	id kernel.UUID,
	tenant kernel.TenantID,
	zoneID kernel.UUID,
	ownerID kernel.UUID,
	name string,
	location kernel.GeoPoint,
	schedule WeekSchedule,
	commissionRatePercent float64,
	prepTimeMinutes int,
) (*Store, error) {
	s := &Store{
		open:   true,
		active: true,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setTenant(tenant),
		s.setZoneID(zoneID),
		s.setOwnerID(ownerID),
		s.setName(name),
		s.setLocation(location),
		s.setSchedule(schedule),
		s.setCommissionRate(commissionRatePercent),
		s.setPrepTime(prepTimeMinutes),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreStore reconstructs a Store from persistence with its full
// transient state: open flag, closure override, rating, and active flag.
func RestoreStore(
	id kernel.UUID,
	tenant kernel.TenantID,
	zoneID kernel.UUID,
	ownerID kernel.UUID,
	name string,
	location kernel.GeoPoint,
	schedule WeekSchedule,
	commissionRatePercent float64,
	prepTimeMinutes int,
	open bool,
	closure *TemporaryClosure,
	rating float64,
	active bool,
) (*Store, error) {
	s, err := NewStore(id, tenant, zoneID, ownerID, name, location, schedule,
		commissionRatePercent, prepTimeMinutes)
	if err != nil {
		return nil, err
	}
	s.open = open
	s.closure = closure
	s.rating = rating
	s.active = active
	return s, nil
}

// Validate ensures the Store was built through its constructor.
func (s *Store) Validate() error {
	if s == nil {
		return ErrStoreIsNotConstructed
	}
	return s.guard.Validate(ErrStoreIsNotConstructed)
}

// IsEqual compares stores by identifier.
func (s *Store) IsEqual(other *Store) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the store's unique identifier.
func (s *Store) ID() kernel.UUID {
	return s.id
}

// Tenant returns the owning partition key.
func (s *Store) Tenant() kernel.TenantID {
	return s.tenant
}

// ZoneID returns the service zone this store belongs to.
func (s *Store) ZoneID() kernel.UUID {
	return s.zoneID
}

// OwnerID returns the merchant account that controls this store.
func (s *Store) OwnerID() kernel.UUID {
	return s.ownerID
}

// Name returns the store name.
func (s *Store) Name() string {
	return s.name
}

// Location returns the store's coordinate.
func (s *Store) Location() kernel.GeoPoint {
	return s.location
}

// Schedule returns a copy of the weekly operating windows.
func (s *Store) Schedule() WeekSchedule {
	return s.schedule.clone()
}

// CommissionRatePercent returns the platform commission rate.
func (s *Store) CommissionRatePercent() float64 {
	return s.commissionRatePercent
}

// PrepTimeMinutes returns the estimated preparation time.
func (s *Store) PrepTimeMinutes() int {
	return s.prepTimeMinutes
}

// Rating returns the store's current rating snapshot.
func (s *Store) Rating() float64 {
	return s.rating
}

// IsActive reports whether the store is enabled on the platform.
func (s *Store) IsActive() bool {
	return s.active
}

// IsOpen reports the merchant-controlled open flag. It ignores the
// schedule and closures; IsOpenAt combines all of them.
func (s *Store) IsOpen() bool {
	return s.open
}

// Closure returns the temporary-closure override, nil when none is set.
func (s *Store) Closure() *TemporaryClosure {
	if s.closure == nil {
		return nil
	}
	c := *s.closure
	return &c
}

// SetOpen flips the merchant-controlled open flag.
func (s *Store) SetOpen(open bool) {
	s.open = open
}

// CloseTemporarily records a closure override lasting until the given
// instant.
func (s *Store) CloseTemporarily(reason string, until time.Time) error {
	if until.IsZero() {
		return errs.NewValueIsRequiredError("until")
	}
	s.closure = &TemporaryClosure{Reason: reason, Until: until}
	return nil
}

// ReopenFromClosure clears the closure override.
func (s *Store) ReopenFromClosure() {
	s.closure = nil
}

// IsOpenAt reports the derived "currently open" property at the given
// instant: active AND open AND no unexpired closure AND inside the
// weekday's operating window.
func (s *Store) IsOpenAt(t time.Time) bool {
	if !s.active || !s.open {
		return false
	}
	if s.closure != nil && t.Before(s.closure.Until) {
		return false
	}
	return s.schedule.IsOpenAt(t)
}

func (s *Store) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Store) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	s.tenant = tenant
	return nil
}

func (s *Store) setZoneID(zoneID kernel.UUID) error {
	if err := zoneID.Validate(); err != nil {
		return err
	}
	s.zoneID = zoneID
	return nil
}

func (s *Store) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}
	s.ownerID = ownerID
	return nil
}

func (s *Store) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	s.name = name
	return nil
}

func (s *Store) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	s.location = location
	return nil
}

func (s *Store) setSchedule(schedule WeekSchedule) error {
	if len(schedule) == 0 {
		return errs.NewValueIsRequiredError("schedule")
	}
	s.schedule = schedule.clone()
	return nil
}

func (s *Store) setCommissionRate(rate float64) error {
	if rate < 0 || rate > maxCommissionRatePercent {
		return errs.NewValueIsOutOfRangeError("commissionRatePercent", rate, 0, maxCommissionRatePercent)
	}
	s.commissionRatePercent = rate
	return nil
}

func (s *Store) setPrepTime(minutes int) error {
	if minutes < 0 {
		return errs.NewValueIsInvalidErrorWithCause("prepTimeMinutes",
			fmt.Errorf("%d is negative", minutes))
	}
	s.prepTimeMinutes = minutes
	return nil
}

package rider

import (
	"errors"
	"fmt"
	"time"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/errs"
	"hyperlocal/internal/pkg/guard"
)

// Domain errors for rider operations.
var (
	// ErrRiderIsNotConstructed is returned when using an improperly
	// initialized Rider.
	ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider constructor")
	// ErrNameIsRequired is returned when attempting to create a rider
	// without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrZonesAreRequired is returned when a rider has no service zones.
	ErrZonesAreRequired = errs.NewValueIsRequiredError("zones")
	// ErrRiderNotEligible is returned when an operation needs an
	// eligible rider and this one is not.
	ErrRiderNotEligible = errors.New("rider is not eligible for assignments")
)

// Rider is the aggregate root for a delivery rider: their service zone
// set, last known location, duty state, earnings ledger, and
// performance counters.
//
// A rider is eligible for new assignments only when active, verified,
// and online. Accepting an assignment flips them to busy; completing
// the delivery credits earnings and puts them back online.
type Rider struct {
	id     kernel.UUID
	tenant kernel.TenantID
	name   string
	phone  string

	// zones is the set of zone IDs the rider serves.
	zones map[kernel.UUID]struct{}

	location *kernel.GeoPoint
	// locatedAt is the freshness stamp of the last location ping.
	locatedAt time.Time

	availability Availability
	verified     bool
	active       bool

	earnings Earnings

	totalOrders     int
	completedOrders int
	cancelledOrders int
	rating          float64

	guard guard.ConstructorGuard
}

// NewRider creates an active, unverified, offline Rider serving the
// given zones. Verification is a back-office step that happens before
// the first shift.
func NewRider(
	id kernel.UUID,
	tenant kernel.TenantID,
	name string,
	phone string,
	zones []kernel.UUID,
) (*Rider, error) {
	r := &Rider{
		availability: Offline,
		active:       true,
		earnings:     NewEarnings(),
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setTenant(tenant),
		r.setName(name),
		r.setPhone(phone),
		r.setZones(zones),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreRider reconstructs a Rider from persistence with its full
// duty, ledger, and counter state.
func RestoreRider(
	id kernel.UUID,
	tenant kernel.TenantID,
	name string,
	phone string,
	zones []kernel.UUID,
	location *kernel.GeoPoint,
	locatedAt time.Time,
	availability Availability,
	verified bool,
	active bool,
	earnings Earnings,
	totalOrders int,
	completedOrders int,
	cancelledOrders int,
	rating float64,
) (*Rider, error) {
	r, err := NewRider(id, tenant, name, phone, zones)
	if err != nil {
		return nil, err
	}
	if err := availability.Validate(); err != nil {
		return nil, err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
		loc := *location
		r.location = &loc
	}

	r.locatedAt = locatedAt
	r.availability = availability
	r.verified = verified
	r.active = active
	r.earnings = earnings
	r.totalOrders = totalOrders
	r.completedOrders = completedOrders
	r.cancelledOrders = cancelledOrders
	r.rating = rating
	return r, nil
}

// Validate ensures the Rider was built through its constructor.
func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

// IsEqual compares riders by identifier.
func (r *Rider) IsEqual(other *Rider) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the rider's unique identifier.
func (r *Rider) ID() kernel.UUID {
	return r.id
}

// Tenant returns the owning partition key.
func (r *Rider) Tenant() kernel.TenantID {
	return r.tenant
}

// Name returns the rider's display name.
func (r *Rider) Name() string {
	return r.name
}

// Phone returns the rider's contact number.
func (r *Rider) Phone() string {
	return r.phone
}

// Zones returns the rider's service zone IDs in unspecified order.
func (r *Rider) Zones() []kernel.UUID {
	out := make([]kernel.UUID, 0, len(r.zones))
	for zoneID := range r.zones {
		out = append(out, zoneID)
	}
	return out
}

// ServesZone reports whether the rider's zone set includes zoneID.
func (r *Rider) ServesZone(zoneID kernel.UUID) bool {
	_, ok := r.zones[zoneID]
	return ok
}

// Location returns the last pinged coordinate, nil before any ping.
func (r *Rider) Location() *kernel.GeoPoint {
	if r.location == nil {
		return nil
	}
	loc := *r.location
	return &loc
}

// LocatedAt returns the freshness stamp of the last location ping.
func (r *Rider) LocatedAt() time.Time {
	return r.locatedAt
}

// Availability returns the current duty state.
func (r *Rider) Availability() Availability {
	return r.availability
}

// IsVerified reports whether back-office verification completed.
func (r *Rider) IsVerified() bool {
	return r.verified
}

// IsActive reports whether the rider account is enabled.
func (r *Rider) IsActive() bool {
	return r.active
}

// Earnings returns the earnings ledger snapshot.
func (r *Rider) Earnings() Earnings {
	return r.earnings
}

// TotalOrders returns the count of assignments ever accepted.
func (r *Rider) TotalOrders() int {
	return r.totalOrders
}

// CompletedOrders returns the count of deliveries completed.
func (r *Rider) CompletedOrders() int {
	return r.completedOrders
}

// CancelledOrders returns the count of assignments that fell through.
func (r *Rider) CancelledOrders() int {
	return r.cancelledOrders
}

// Rating returns the rider's current rating snapshot.
func (r *Rider) Rating() float64 {
	return r.rating
}

// IsEligible reports whether the rider can receive new assignments:
// active, verified, and online.
func (r *Rider) IsEligible() bool {
	return r.active && r.verified && r.availability == Online
}

// Verify marks back-office verification complete.
func (r *Rider) Verify() {
	r.verified = true
}

// Deactivate disables the rider account.
func (r *Rider) Deactivate() {
	r.active = false
	r.availability = Offline
}

// SetAvailability changes the duty state. Busy is reserved for the
// assignment flow and cannot be self-reported.
func (r *Rider) SetAvailability(availability Availability) error {
	if err := availability.Validate(); err != nil {
		return err
	}
	if availability == Busy {
		return errs.NewValueIsInvalidErrorWithCause("availability",
			errors.New("busy is set by accepting an assignment"))
	}
	r.availability = availability
	return nil
}

// UpdateLocation records a location ping with its freshness stamp.
func (r *Rider) UpdateLocation(location kernel.GeoPoint, at time.Time) error {
	if err := location.Validate(); err != nil {
		return err
	}
	if at.IsZero() {
		return errs.NewValueIsRequiredError("at")
	}
	r.location = &location
	r.locatedAt = at
	return nil
}

// StartDelivery flips an eligible rider to busy and counts the
// assignment.
func (r *Rider) StartDelivery() error {
	if !r.IsEligible() {
		return fmt.Errorf("%w: %s", ErrRiderNotEligible, r.availability)
	}
	r.availability = Busy
	r.totalOrders++
	return nil
}

// RecordDelivery credits the payout, counts the completion, and puts
// the rider back online.
func (r *Rider) RecordDelivery(payout kernel.Money) error {
	credited, err := r.earnings.Credit(payout)
	if err != nil {
		return err
	}
	r.earnings = credited
	r.completedOrders++
	if r.availability == Busy {
		r.availability = Online
	}
	return nil
}

// RecordCancellation counts an assignment that fell through and frees
// the rider.
func (r *Rider) RecordCancellation() {
	r.cancelledOrders++
	if r.availability == Busy {
		r.availability = Online
	}
}

func (r *Rider) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rider) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	r.tenant = tenant
	return nil
}

func (r *Rider) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	r.name = name
	return nil
}

func (r *Rider) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	r.phone = phone
	return nil
}

func (r *Rider) setZones(zones []kernel.UUID) error {
	if len(zones) == 0 {
		return ErrZonesAreRequired
	}
	set := make(map[kernel.UUID]struct{}, len(zones))
	for _, zoneID := range zones {
		if err := zoneID.Validate(); err != nil {
			return err
		}
		set[zoneID] = struct{}{}
	}
	r.zones = set
	return nil
}

package order

import (
	"errors"
	"fmt"
	"time"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/errs"
	"hyperlocal/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrOrderIsNotConstructed is returned when using an improperly
	// initialized Order.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
	// ErrItemsAreRequired is returned when placing an order with no lines.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
	// ErrCancellationNotAllowed is returned when cancelling an order a
	// rider has already claimed.
	ErrCancellationNotAllowed = errors.New("order can no longer be cancelled")
	// ErrFeedbackNotAllowed is returned when rating an undelivered order.
	ErrFeedbackNotAllowed = errors.New("feedback is only accepted for delivered orders")
)

// HistoryEntry is one line of the append-only status audit trail.
type HistoryEntry struct {
	Status Status
	At     time.Time
	Note   string
	Actor  Actor
}

// CancellationRecord captures who cancelled the order, why, and when.
type CancellationRecord struct {
	Reason      string
	CancelledBy Actor
	CancelledAt time.Time
}

// Feedback is the customer's post-delivery rating.
type Feedback struct {
	Rating  int
	Comment string
	LeftAt  time.Time
}

// Order is the aggregate root for a customer purchase. It owns the line
// items, the frozen pricing breakdown, and the append-only status
// history, and it is the only place status transitions happen.
//
// All mutating methods take the acting party and an explicit instant so
// the audit trail never depends on ambient wall-clock reads.
type Order struct {
	id         kernel.UUID
	tenant     kernel.TenantID
	customerID kernel.UUID
	storeID    kernel.UUID
	// zoneID snapshots the store's zone at placement.
	zoneID kernel.UUID
	// riderID stays nil until a rider claims the order; the claim happens
	// at most once.
	riderID *kernel.UUID

	items   []Item
	pricing Pricing
	address DeliveryAddress

	status  Status
	history []HistoryEntry

	paymentMethod PaymentMethod
	paymentStatus PaymentStatus

	cancellation *CancellationRecord
	feedback     *Feedback

	placedAt    time.Time
	deliveredAt *time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an Order in the placed state with its first history
// entry. Stock for the items must already be reserved by the caller.
func NewOrder(
	id kernel.UUID,
	tenant kernel.TenantID,
	customerID kernel.UUID,
	storeID kernel.UUID,
	zoneID kernel.UUID,
	items []Item,
	pricing Pricing,
	address DeliveryAddress,
	paymentMethod PaymentMethod,
	placedAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Placed,
		paymentStatus: PaymentPending,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setTenant(tenant),
		o.setCustomerID(customerID),
		o.setStoreID(storeID),
		o.setZoneID(zoneID),
		o.setItems(items),
		o.setAddress(address),
		o.setPaymentMethod(paymentMethod),
		o.setPlacedAt(placedAt),
	); err != nil {
		return nil, err
	}
	o.pricing = pricing

	customer, err := NewActor(customerID, RoleCustomer)
	if err != nil {
		return nil, err
	}
	o.appendHistory(Placed, placedAt, "order placed", customer)

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence with its full
// lifecycle state, bypassing the placed-state initialization.
func RestoreOrder(
	id kernel.UUID,
	tenant kernel.TenantID,
	customerID kernel.UUID,
	storeID kernel.UUID,
	zoneID kernel.UUID,
	riderID *kernel.UUID,
	items []Item,
	pricing Pricing,
	address DeliveryAddress,
	status Status,
	history []HistoryEntry,
	paymentMethod PaymentMethod,
	paymentStatus PaymentStatus,
	cancellation *CancellationRecord,
	feedback *Feedback,
	placedAt time.Time,
	deliveredAt *time.Time,
) (*Order, error) {
	o, err := NewOrder(id, tenant, customerID, storeID, zoneID, items, pricing,
		address, paymentMethod, placedAt)
	if err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	if err := paymentStatus.Validate(); err != nil {
		return nil, err
	}
	if riderID != nil {
		if err := riderID.Validate(); err != nil {
			return nil, err
		}
		rid := *riderID
		o.riderID = &rid
	}

	o.status = status
	o.history = append([]HistoryEntry(nil), history...)
	o.paymentStatus = paymentStatus
	o.cancellation = cancellation
	o.feedback = feedback
	o.deliveredAt = deliveredAt
	return o, nil
}

// Validate ensures the Order was built through its constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Tenant returns the owning partition key.
func (o *Order) Tenant() kernel.TenantID {
	return o.tenant
}

// CustomerID returns the ordering customer.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// StoreID returns the fulfilling store.
func (o *Order) StoreID() kernel.UUID {
	return o.storeID
}

// ZoneID returns the store's zone as snapshotted at placement.
func (o *Order) ZoneID() kernel.UUID {
	return o.zoneID
}

// Rider returns the assigned rider's ID, nil until assignment.
func (o *Order) Rider() *kernel.UUID {
	if o.riderID == nil {
		return nil
	}
	rid := *o.riderID
	return &rid
}

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	return append([]Item(nil), o.items...)
}

// Pricing returns the frozen money breakdown.
func (o *Order) Pricing() Pricing {
	return o.pricing
}

// Address returns the delivery drop point.
func (o *Order) Address() DeliveryAddress {
	return o.address
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// History returns a copy of the append-only audit trail.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// PaymentMethod returns how the customer chose to pay.
func (o *Order) PaymentMethod() PaymentMethod {
	return o.paymentMethod
}

// PaymentStatus returns the settlement state.
func (o *Order) PaymentStatus() PaymentStatus {
	return o.paymentStatus
}

// Cancellation returns the cancellation record, nil unless cancelled.
func (o *Order) Cancellation() *CancellationRecord {
	if o.cancellation == nil {
		return nil
	}
	c := *o.cancellation
	return &c
}

// CustomerFeedback returns the post-delivery rating, nil until left.
func (o *Order) CustomerFeedback() *Feedback {
	if o.feedback == nil {
		return nil
	}
	f := *o.feedback
	return &f
}

// PlacedAt returns the placement instant.
func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

// DeliveredAt returns the delivery instant, nil until delivered.
func (o *Order) DeliveredAt() *time.Time {
	if o.deliveredAt == nil {
		return nil
	}
	d := *o.deliveredAt
	return &d
}

// Transition moves the order along the lifecycle table and appends a
// history entry.
//
// Assignment and cancellation have dedicated methods with their own
// side effects, so rider_assigned and cancelled are rejected here even
// where the table allows them. Entering delivered stamps the delivery
// time; cash orders settle on delivery.
func (o *Order) Transition(next Status, note string, actor Actor, at time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if next == RiderAssigned || next == Cancelled {
		return fmt.Errorf("%w: %s -> %s requires a dedicated operation", ErrInvalidTransition, o.status, next)
	}

	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	if newStatus == Delivered {
		deliveredAt := at
		o.deliveredAt = &deliveredAt
		if o.paymentMethod == PaymentCashOnDelivery {
			o.paymentStatus = PaymentPaid
		}
	}
	o.appendHistory(newStatus, at, note, actor)
	return nil
}

// AssignRider claims the order for a rider. The claim succeeds at most
// once: a second rider gets ErrAlreadyAssigned regardless of status.
func (o *Order) AssignRider(riderID kernel.UUID, at time.Time) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	if o.riderID != nil {
		return ErrAlreadyAssigned
	}

	newStatus, err := o.status.TransitionTo(RiderAssigned)
	if err != nil {
		return err
	}

	rider, err := NewActor(riderID, RoleRider)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.riderID = &riderID
	o.appendHistory(newStatus, at, "rider accepted assignment", rider)
	return nil
}

// Cancel moves a pre-pickup order to cancelled and records who asked
// and why. The caller must release the reserved stock in the same
// transaction.
func (o *Order) Cancel(reason string, actor Actor, at time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	if !o.status.IsPrePickup() {
		return fmt.Errorf("%w: order is %s", ErrCancellationNotAllowed, o.status)
	}

	newStatus, err := o.status.TransitionTo(Cancelled)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.cancellation = &CancellationRecord{
		Reason:      reason,
		CancelledBy: actor,
		CancelledAt: at,
	}
	if o.paymentStatus == PaymentPaid {
		o.paymentStatus = PaymentRefunded
	}
	o.appendHistory(newStatus, at, reason, actor)
	return nil
}

// LeaveFeedback records the customer's rating after delivery.
func (o *Order) LeaveFeedback(rating int, comment string, at time.Time) error {
	if o.status != Delivered {
		return ErrFeedbackNotAllowed
	}
	if rating < 1 || rating > 5 {
		return errs.NewValueIsOutOfRangeError("rating", rating, 1, 5)
	}
	o.feedback = &Feedback{Rating: rating, Comment: comment, LeftAt: at}
	return nil
}

func (o *Order) appendHistory(status Status, at time.Time, note string, actor Actor) {
	o.history = append(o.history, HistoryEntry{
		Status: status,
		At:     at,
		Note:   note,
		Actor:  actor,
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	o.tenant = tenant
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	o.storeID = storeID
	return nil
}

func (o *Order) setZoneID(zoneID kernel.UUID) error {
	if err := zoneID.Validate(); err != nil {
		return err
	}
	o.zoneID = zoneID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = append([]Item(nil), items...)
	return nil
}

func (o *Order) setAddress(address DeliveryAddress) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setPaymentMethod(method PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	o.paymentMethod = method
	return nil
}

func (o *Order) setPlacedAt(placedAt time.Time) error {
	if placedAt.IsZero() {
		return errs.NewValueIsRequiredError("placedAt")
	}
	o.placedAt = placedAt
	return nil
}

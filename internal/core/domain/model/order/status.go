package order

import (
	"errors"
	"fmt"

	"hyperlocal/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	placed ──> accepted ──> preparing ──> ready_for_pickup ──> rider_assigned ──> out_for_delivery ──> delivered
//	   │           │            │                │                    │                   │
//	   └───────────┴────────────┴── cancelled ◄──┘                    └──── failed ◄──────┘
//
// Store actors drive the pre-pickup chain and may cancel anywhere in it.
// Rider assignment claims a ready_for_pickup order; pickup and delivery
// follow. Cancellation after assignment is not permitted.
type Status int

const (
	// Unknown catches uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial state after successful creation with stock
	// reserved.
	Placed

	// Accepted means the store confirmed the order.
	Accepted

	// Preparing means the store is working on the order.
	Preparing

	// ReadyForPickup means the order is packed and waiting for a rider.
	// This is the only state from which a rider can be assigned, and the
	// last state from which cancellation is permitted.
	ReadyForPickup

	// RiderAssigned means exactly one rider has claimed the order.
	RiderAssigned

	// OutForDelivery means the rider picked the order up.
	OutForDelivery

	// Delivered is a terminal state: the order reached the customer.
	Delivered

	// Cancelled is a terminal state: the order was cancelled pre-pickup
	// and its stock released.
	Cancelled

	// Failed is a terminal state: the delivery attempt did not complete.
	Failed
)

// Domain errors for status transitions.
var (
	// ErrInvalidTransition is returned for any status change not present
	// in the allowed-transition table.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrAlreadyAssigned is returned when a rider tries to claim an order
	// that already has one.
	ErrAlreadyAssigned = errors.New("order already has a rider assigned")
)

// getStatusStrings returns the persistence/display form of every status.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "unknown",
		Placed:         "placed",
		Accepted:       "accepted",
		Preparing:      "preparing",
		ReadyForPickup: "ready_for_pickup",
		RiderAssigned:  "rider_assigned",
		OutForDelivery: "out_for_delivery",
		Delivered:      "delivered",
		Cancelled:      "cancelled",
		Failed:         "failed",
	}
}

// getAllowedTransitions returns the closed transition table. A status
// absent from the map is terminal.
func getAllowedTransitions() map[Status][]Status {
	return map[Status][]Status{
		Placed:         {Accepted, Cancelled},
		Accepted:       {Preparing, Cancelled},
		Preparing:      {ReadyForPickup, Cancelled},
		ReadyForPickup: {RiderAssigned, Cancelled},
		RiderAssigned:  {OutForDelivery, Failed},
		OutForDelivery: {Delivered, Failed},
	}
}

// StatusFromString parses the persistence form of a status.
func StatusFromString(value string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == value {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", value))
}

// Validate checks that the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s <= Unknown || s > Failed {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase snake form used in persistence and APIs.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// CanTransitionTo reports whether the table allows moving to next.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range getAllowedTransitions()[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// TransitionTo validates the move against the table and returns next.
func (s Status) TransitionTo(next Status) (Status, error) {
	if err := next.Validate(); err != nil {
		return Unknown, err
	}
	if !s.CanTransitionTo(next) {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
	}
	return next, nil
}

// IsTerminal reports whether no further transitions exist.
func (s Status) IsTerminal() bool {
	return len(getAllowedTransitions()[s]) == 0 && s.Validate() == nil
}

// IsPrePickup reports whether the order has not yet been claimed by a
// rider. Cancellation is permitted only in pre-pickup states.
func (s Status) IsPrePickup() bool {
	switch s {
	case Placed, Accepted, Preparing, ReadyForPickup:
		return true
	default:
		return false
	}
}

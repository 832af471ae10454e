package rider

import (
	"fmt"

	"hyperlocal/internal/pkg/errs"
)

// Availability is a rider's self-reported duty state. Only online
// riders receive new assignments; accepting one flips them to busy
// until the delivery completes.
type Availability int

const (
	// AvailabilityUnknown catches uninitialized values.
	AvailabilityUnknown Availability = iota
	// Offline means the rider is off duty.
	Offline
	// Online means the rider is on duty and can receive assignments.
	Online
	// Busy means the rider is carrying an active delivery.
	Busy
	// OnLeave means the rider is on extended leave.
	OnLeave
)

func getAvailabilityStrings() map[Availability]string {
	return map[Availability]string{
		AvailabilityUnknown: "unknown",
		Offline:             "offline",
		Online:              "online",
		Busy:                "busy",
		OnLeave:             "on_leave",
	}
}

// AvailabilityFromString parses the persistence form of an availability.
func AvailabilityFromString(value string) (Availability, error) {
	for availability, str := range getAvailabilityStrings() {
		if availability != AvailabilityUnknown && str == value {
			return availability, nil
		}
	}
	return AvailabilityUnknown, errs.NewValueIsInvalidErrorWithCause("availability",
		fmt.Errorf("%q is not a valid availability", value))
}

// Validate checks the value is one of the defined duty states.
func (a Availability) Validate() error {
	if a <= AvailabilityUnknown || a > OnLeave {
		return errs.NewValueIsInvalidErrorWithCause("availability",
			fmt.Errorf("%d is not a valid availability", a))
	}
	return nil
}

// String returns the lowercase snake form used in persistence and APIs.
func (a Availability) String() string {
	if str, ok := getAvailabilityStrings()[a]; ok {
		return str
	}
	return "unknown"
}

package order

import (
	"fmt"

	"hyperlocal/internal/pkg/errs"
)

// PaymentMethod is how the customer chose to pay.
type PaymentMethod int

const (
	// PaymentMethodUnknown catches uninitialized values.
	PaymentMethodUnknown PaymentMethod = iota
	// PaymentCashOnDelivery settles with the rider at the door.
	PaymentCashOnDelivery
	// PaymentUPI settles through a UPI handle at placement.
	PaymentUPI
	// PaymentCard settles through a saved card at placement.
	PaymentCard
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentMethodUnknown:  "unknown",
		PaymentCashOnDelivery: "cash_on_delivery",
		PaymentUPI:            "upi",
		PaymentCard:           "card",
	}
}

// PaymentMethodFromString parses the persistence form of a method.
func PaymentMethodFromString(value string) (PaymentMethod, error) {
	for method, str := range getPaymentMethodStrings() {
		if method != PaymentMethodUnknown && str == value {
			return method, nil
		}
	}
	return PaymentMethodUnknown, errs.NewValueIsInvalidErrorWithCause("paymentMethod",
		fmt.Errorf("%q is not a valid payment method", value))
}

// Validate checks the method is one of the defined values.
func (m PaymentMethod) Validate() error {
	if m <= PaymentMethodUnknown || m > PaymentCard {
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the lowercase snake form used in persistence and APIs.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "unknown"
}

// PaymentStatus tracks settlement separately from the order lifecycle.
type PaymentStatus int

const (
	// PaymentStatusUnknown catches uninitialized values.
	PaymentStatusUnknown PaymentStatus = iota
	// PaymentPending means payment has not settled yet. Cash orders stay
	// pending until delivery.
	PaymentPending
	// PaymentPaid means payment settled.
	PaymentPaid
	// PaymentRefunded means a settled payment was returned after
	// cancellation.
	PaymentRefunded
	// PaymentFailed means the settlement attempt did not go through.
	PaymentFailed
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentStatusUnknown: "unknown",
		PaymentPending:       "pending",
		PaymentPaid:          "paid",
		PaymentRefunded:      "refunded",
		PaymentFailed:        "failed",
	}
}

// PaymentStatusFromString parses the persistence form of a status.
func PaymentStatusFromString(value string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if status != PaymentStatusUnknown && str == value {
			return status, nil
		}
	}
	return PaymentStatusUnknown, errs.NewValueIsInvalidErrorWithCause("paymentStatus",
		fmt.Errorf("%q is not a valid payment status", value))
}

// Validate checks the status is one of the defined values.
func (s PaymentStatus) Validate() error {
	if s <= PaymentStatusUnknown || s > PaymentFailed {
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus",
			fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the lowercase snake form used in persistence and APIs.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

package kernel

import (
	"fmt"
	"math"

	"hyperlocal/internal/pkg/errs"
)

// Money is an amount in the smallest currency unit, e.g. paise or cents.
// Arithmetic on Money never loses precision; percentages round half away
// from zero at the point of application.
//
// Money is a plain value: the zero value is a legitimate zero amount, so no
// constructor guard is needed. Negative amounts are rejected where a domain
// rule requires it (prices, fees), not by the type itself, because pricing
// breakdowns legitimately subtract discounts.
type Money int64

// NewMoney creates a Money amount, rejecting negative values. Use this for
// fields that must never be negative, such as prices and fees.
func NewMoney(amount int64) (Money, error) {
	if amount < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", amount))
	}
	return Money(amount), nil
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return m + other
}

// Sub returns the difference of two amounts. The result may be negative;
// callers enforce their own floors.
func (m Money) Sub(other Money) Money {
	return m - other
}

// MulQty returns the amount multiplied by an item quantity.
func (m Money) MulQty(qty int) Money {
	return m * Money(qty)
}

// Percent returns rate% of the amount, rounded half away from zero.
// Used for commission and tax: round(subtotal × rate%).
func (m Money) Percent(rate float64) Money {
	return Money(math.Round(float64(m) * rate / 100))
}

// Int64 returns the raw amount in minor units.
func (m Money) Int64() int64 {
	return int64(m)
}

package order

import (
	"fmt"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/errs"
)

// Pricing is the frozen money breakdown computed at placement.
//
// Total = subtotal + deliveryFee + tax - discount. Commission is what
// the platform withholds from the store; it is tracked in the breakdown
// but never added to the customer's total.
type Pricing struct {
	subtotal    kernel.Money
	deliveryFee kernel.Money
	commission  kernel.Money
	tax         kernel.Money
	discount    kernel.Money
	total       kernel.Money
}

// NewPricing derives the total from its parts. The discount may not
// exceed what the customer would otherwise pay.
func NewPricing(subtotal, deliveryFee, commission, tax, discount kernel.Money) (Pricing, error) {
	for name, amount := range map[string]kernel.Money{
		"subtotal":    subtotal,
		"deliveryFee": deliveryFee,
		"commission":  commission,
		"tax":         tax,
		"discount":    discount,
	} {
		if amount < 0 {
			return Pricing{}, errs.NewValueIsInvalidErrorWithCause(name,
				fmt.Errorf("%d is negative", amount.Int64()))
		}
	}

	total := subtotal.Add(deliveryFee).Add(tax).Sub(discount)
	if total < 0 {
		return Pricing{}, errs.NewValueIsInvalidErrorWithCause("discount",
			fmt.Errorf("%d exceeds the amount payable", discount.Int64()))
	}

	return Pricing{
		subtotal:    subtotal,
		deliveryFee: deliveryFee,
		commission:  commission,
		tax:         tax,
		discount:    discount,
		total:       total,
	}, nil
}

// Subtotal returns the sum of all line totals.
func (p Pricing) Subtotal() kernel.Money {
	return p.subtotal
}

// DeliveryFee returns the flat per-deployment delivery fee.
func (p Pricing) DeliveryFee() kernel.Money {
	return p.deliveryFee
}

// Commission returns the platform's cut of the subtotal.
func (p Pricing) Commission() kernel.Money {
	return p.commission
}

// Tax returns the tax applied to the subtotal.
func (p Pricing) Tax() kernel.Money {
	return p.tax
}

// Discount returns the amount subtracted from the customer's total.
func (p Pricing) Discount() kernel.Money {
	return p.discount
}

// Total returns what the customer pays.
func (p Pricing) Total() kernel.Money {
	return p.total
}

package rider

import (
	"fmt"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/errs"
)

// Earnings is a rider's running balance plus rolling period aggregates.
// Every credit lands in the balance and all three aggregates at once;
// period rollover (resetting today/week/month) is a persistence-side
// concern and happens outside the aggregate.
type Earnings struct {
	balance kernel.Money
	today   kernel.Money
	week    kernel.Money
	month   kernel.Money
}

// NewEarnings creates a zeroed ledger.
func NewEarnings() Earnings {
	return Earnings{}
}

// RestoreEarnings reconstructs a ledger from persistence.
func RestoreEarnings(balance, today, week, month kernel.Money) (Earnings, error) {
	for name, amount := range map[string]kernel.Money{
		"balance": balance,
		"today":   today,
		"week":    week,
		"month":   month,
	} {
		if amount < 0 {
			return Earnings{}, errs.NewValueIsInvalidErrorWithCause(name,
				fmt.Errorf("%d is negative", amount.Int64()))
		}
	}
	return Earnings{balance: balance, today: today, week: week, month: month}, nil
}

// Credit adds a delivery payout to the balance and every period
// aggregate.
func (e Earnings) Credit(amount kernel.Money) (Earnings, error) {
	if amount < 0 {
		return Earnings{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%d is negative", amount.Int64()))
	}
	return Earnings{
		balance: e.balance.Add(amount),
		today:   e.today.Add(amount),
		week:    e.week.Add(amount),
		month:   e.month.Add(amount),
	}, nil
}

// Balance returns the running payable balance.
func (e Earnings) Balance() kernel.Money {
	return e.balance
}

// Today returns the current day's aggregate.
func (e Earnings) Today() kernel.Money {
	return e.today
}

// Week returns the current week's aggregate.
func (e Earnings) Week() kernel.Money {
	return e.week
}

// Month returns the current month's aggregate.
func (e Earnings) Month() kernel.Money {
	return e.month
}

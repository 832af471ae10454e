package commands

import (
	"errors"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/errs"
	"hyperlocal/internal/pkg/guard"
)

// ErrLeaveFeedbackCommandIsNotConstructed is returned when a
// LeaveFeedbackCommand bypassed its constructor.
var ErrLeaveFeedbackCommandIsNotConstructed = errors.New(
	"LeaveFeedbackCommand must be created via NewLeaveFeedbackCommand constructor",
)

// LeaveFeedbackCommand is the customer rating a delivered order.
type LeaveFeedbackCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	tenant     kernel.TenantID
	customerID kernel.UUID
	rating     int
	comment    string

	guard guard.ConstructorGuard
}

// NewLeaveFeedbackCommand creates a feedback submission with a rating
// from 1 to 5.
func NewLeaveFeedbackCommand(
	orderID kernel.UUID,
	tenant kernel.TenantID,
	customerID kernel.UUID,
	rating int,
	comment string,
) (LeaveFeedbackCommand, error) {
	cmd := LeaveFeedbackCommand{
		comment: comment,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTenant(tenant),
		cmd.setCustomerID(customerID),
		cmd.setRating(rating),
	); err != nil {
		return LeaveFeedbackCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c LeaveFeedbackCommand) Validate() error {
	return c.guard.Validate(ErrLeaveFeedbackCommandIsNotConstructed)
}

// OrderID returns the rated order.
func (c LeaveFeedbackCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Tenant returns the partition the order belongs to.
func (c LeaveFeedbackCommand) Tenant() kernel.TenantID {
	return c.tenant
}

// CustomerID returns the submitting customer.
func (c LeaveFeedbackCommand) CustomerID() kernel.UUID {
	return c.customerID
}

// Rating returns the 1-5 star rating.
func (c LeaveFeedbackCommand) Rating() int {
	return c.rating
}

// Comment returns the optional free-text comment.
func (c LeaveFeedbackCommand) Comment() string {
	return c.comment
}

func (c *LeaveFeedbackCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *LeaveFeedbackCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	c.tenant = tenant
	return nil
}

func (c *LeaveFeedbackCommand) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	c.customerID = customerID
	return nil
}

func (c *LeaveFeedbackCommand) setRating(rating int) error {
	if rating < 1 || rating > 5 {
		return errs.NewValueIsOutOfRangeError("rating", rating, 1, 5)
	}
	c.rating = rating
	return nil
}

package commands

import (
	"errors"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/guard"
)

// ErrAcceptAssignmentCommandIsNotConstructed is returned when an
// AcceptAssignmentCommand bypassed its constructor.
var ErrAcceptAssignmentCommandIsNotConstructed = errors.New(
	"AcceptAssignmentCommand must be created via NewAcceptAssignmentCommand constructor",
)

// AcceptAssignmentCommand is a rider's claim on a ready_for_pickup
// order.
type AcceptAssignmentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	tenant  kernel.TenantID
	riderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptAssignmentCommand creates a claim request.
func NewAcceptAssignmentCommand(
	orderID kernel.UUID,
	tenant kernel.TenantID,
	riderID kernel.UUID,
) (AcceptAssignmentCommand, error) {
	cmd := AcceptAssignmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTenant(tenant),
		cmd.setRiderID(riderID),
	); err != nil {
		return AcceptAssignmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrAcceptAssignmentCommandIsNotConstructed)
}

// OrderID returns the order being claimed.
func (c AcceptAssignmentCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Tenant returns the partition the order belongs to.
func (c AcceptAssignmentCommand) Tenant() kernel.TenantID {
	return c.tenant
}

// RiderID returns the claiming rider.
func (c AcceptAssignmentCommand) RiderID() kernel.UUID {
	return c.riderID
}

func (c *AcceptAssignmentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AcceptAssignmentCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	c.tenant = tenant
	return nil
}

func (c *AcceptAssignmentCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	c.riderID = riderID
	return nil
}

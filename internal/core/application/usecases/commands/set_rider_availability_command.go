package commands

import (
	"errors"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/rider"
	"hyperlocal/internal/pkg/guard"
)

// ErrSetRiderAvailabilityCommandIsNotConstructed is returned when a
// SetRiderAvailabilityCommand bypassed its constructor.
var ErrSetRiderAvailabilityCommandIsNotConstructed = errors.New(
	"SetRiderAvailabilityCommand must be created via NewSetRiderAvailabilityCommand constructor",
)

// SetRiderAvailabilityCommand is a rider toggling their duty state.
type SetRiderAvailabilityCommand struct { //nolint:recvcheck //using for validation
	riderID      kernel.UUID
	tenant       kernel.TenantID
	availability rider.Availability

	guard guard.ConstructorGuard
}

// NewSetRiderAvailabilityCommand creates a duty state toggle.
func NewSetRiderAvailabilityCommand(
	riderID kernel.UUID,
	tenant kernel.TenantID,
	availability rider.Availability,
) (SetRiderAvailabilityCommand, error) {
	cmd := SetRiderAvailabilityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRiderID(riderID),
		cmd.setTenant(tenant),
		cmd.setAvailability(availability),
	); err != nil {
		return SetRiderAvailabilityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetRiderAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetRiderAvailabilityCommandIsNotConstructed)
}

// RiderID returns the toggling rider.
func (c SetRiderAvailabilityCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Tenant returns the partition the rider belongs to.
func (c SetRiderAvailabilityCommand) Tenant() kernel.TenantID {
	return c.tenant
}

// Availability returns the requested duty state.
func (c SetRiderAvailabilityCommand) Availability() rider.Availability {
	return c.availability
}

func (c *SetRiderAvailabilityCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	c.riderID = riderID
	return nil
}

func (c *SetRiderAvailabilityCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	c.tenant = tenant
	return nil
}

func (c *SetRiderAvailabilityCommand) setAvailability(availability rider.Availability) error {
	if err := availability.Validate(); err != nil {
		return err
	}
	c.availability = availability
	return nil
}

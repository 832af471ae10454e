package commands

import (
	"errors"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/guard"
)

// ErrUpdateRiderLocationCommandIsNotConstructed is returned when an
// UpdateRiderLocationCommand bypassed its constructor.
var ErrUpdateRiderLocationCommandIsNotConstructed = errors.New(
	"UpdateRiderLocationCommand must be created via NewUpdateRiderLocationCommand constructor",
)

// UpdateRiderLocationCommand is a rider location ping.
type UpdateRiderLocationCommand struct { //nolint:recvcheck //using for validation
	riderID  kernel.UUID
	tenant   kernel.TenantID
	location kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateRiderLocationCommand creates a location ping.
func NewUpdateRiderLocationCommand(
	riderID kernel.UUID,
	tenant kernel.TenantID,
	location kernel.GeoPoint,
) (UpdateRiderLocationCommand, error) {
	cmd := UpdateRiderLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRiderID(riderID),
		cmd.setTenant(tenant),
		cmd.setLocation(location),
	); err != nil {
		return UpdateRiderLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateRiderLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateRiderLocationCommandIsNotConstructed)
}

// RiderID returns the pinging rider.
func (c UpdateRiderLocationCommand) RiderID() kernel.UUID {
	return c.riderID
}

// Tenant returns the partition the rider belongs to.
func (c UpdateRiderLocationCommand) Tenant() kernel.TenantID {
	return c.tenant
}

// Location returns the reported coordinate.
func (c UpdateRiderLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *UpdateRiderLocationCommand) setRiderID(riderID kernel.UUID) error {
	if err := riderID.Validate(); err != nil {
		return err
	}
	c.riderID = riderID
	return nil
}

func (c *UpdateRiderLocationCommand) setTenant(tenant kernel.TenantID) error {
	if err := tenant.Validate(); err != nil {
		return err
	}
	c.tenant = tenant
	return nil
}

func (c *UpdateRiderLocationCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}

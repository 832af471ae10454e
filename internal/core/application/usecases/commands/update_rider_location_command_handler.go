package commands

import (
	"context"

	"hyperlocal/internal/pkg/clock"
)

// UpdateRiderLocationCommandHandler records rider location pings with a
// freshness stamp used by the matcher's tie-break.
type UpdateRiderLocationCommandHandler struct {
	uowFactory RiderUoWFactory
	clock      clock.Clock
}

// NewUpdateRiderLocationCommandHandler creates a handler for location
// pings.
func NewUpdateRiderLocationCommandHandler(uowFactory RiderUoWFactory, clk clock.Clock) UpdateRiderLocationCommandHandler {
	return UpdateRiderLocationCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

// Handle processes the ping.
func (h *UpdateRiderLocationCommandHandler) Handle(ctx context.Context, cmd UpdateRiderLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	r, err := uow.RiderRepository().Get(ctx, cmd.Tenant(), cmd.RiderID())
	if err != nil {
		return err
	}

	if err = r.UpdateLocation(cmd.Location(), h.clock.Now()); err != nil {
		return err
	}

	if err = uow.RiderRepository().Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

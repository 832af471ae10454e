package commands

import (
	"context"
)

// SetRiderAvailabilityCommandHandler toggles a rider's duty state. The
// domain rejects self-reported busy, which only the assignment flow
// sets.
type SetRiderAvailabilityCommandHandler struct {
	uowFactory RiderUoWFactory
}

// NewSetRiderAvailabilityCommandHandler creates a handler for duty
// toggles.
func NewSetRiderAvailabilityCommandHandler(uowFactory RiderUoWFactory) SetRiderAvailabilityCommandHandler {
	return SetRiderAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the toggle.
func (h *SetRiderAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetRiderAvailabilityCommand) error {
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

	if err = r.SetAvailability(cmd.Availability()); err != nil {
		return err
	}

	if err = uow.RiderRepository().Update(ctx, r); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

package commands

import (
	"context"

	"hyperlocal/internal/pkg/clock"
)

// LeaveFeedbackCommandHandler attaches a customer rating to a
// delivered order. Only the customer who placed the order may rate it.
type LeaveFeedbackCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
}

// NewLeaveFeedbackCommandHandler creates a handler for feedback
// submissions.
func NewLeaveFeedbackCommandHandler(uowFactory OrderUoWFactory, clk clock.Clock) LeaveFeedbackCommandHandler {
	return LeaveFeedbackCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
	}
}

// Handle processes the feedback submission.
func (h *LeaveFeedbackCommandHandler) Handle(ctx context.Context, cmd LeaveFeedbackCommand) error {
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

	o, err := uow.OrderRepository().Get(ctx, cmd.Tenant(), cmd.OrderID())
	if err != nil {
		return err
	}
	if !o.CustomerID().IsEqual(cmd.CustomerID()) {
		return ErrAccessDenied
	}

	if err = o.LeaveFeedback(cmd.Rating(), cmd.Comment(), h.clock.Now()); err != nil {
		return err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

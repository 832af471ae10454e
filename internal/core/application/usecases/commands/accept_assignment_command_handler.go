package commands

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/core/domain/services"
	"hyperlocal/internal/core/ports"
	"hyperlocal/internal/metrics"
	"hyperlocal/internal/pkg/clock"
)

// AcceptAssignmentCommandHandler finalizes rider assignment exactly
// once per order.
//
// The conditional claim in the order repository is the linearization
// point: it sets the rider only where the rider column is still null
// and the order is still ready_for_pickup. When two riders race, one
// claim matches zero rows and surfaces order.ErrAlreadyAssigned.
type AcceptAssignmentCommandHandler struct {
	uowFactory AssignmentUoWFactory
	clock      clock.Clock
	publisher  ports.EventPublisher
	logger     *zap.Logger
}

// NewAcceptAssignmentCommandHandler creates a handler for rider claims.
func NewAcceptAssignmentCommandHandler(
	uowFactory AssignmentUoWFactory,
	clk clock.Clock,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) AcceptAssignmentCommandHandler {
	return AcceptAssignmentCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the claim and returns the assigned order.
func (h *AcceptAssignmentCommandHandler) Handle(ctx context.Context, cmd AcceptAssignmentCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.Tenant(), cmd.OrderID())
	if err != nil {
		return nil, err
	}

	r, err := uow.RiderRepository().Get(ctx, cmd.Tenant(), cmd.RiderID())
	if err != nil {
		return nil, err
	}
	if !r.ServesZone(o.ZoneID()) {
		return nil, services.ErrOutOfServiceArea
	}

	// The conditional update decides the race before any aggregate
	// state changes.
	if err = uow.OrderRepository().ClaimForRider(ctx, cmd.Tenant(), cmd.OrderID(), cmd.RiderID()); err != nil {
		if errors.Is(err, order.ErrAlreadyAssigned) {
			metrics.AssignmentConflicts.Inc()
		}
		return nil, err
	}

	if err = o.AssignRider(cmd.RiderID(), h.clock.Now()); err != nil {
		return nil, err
	}
	if err = r.StartDelivery(); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.RiderRepository().Update(ctx, r); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publish(ctx, o)
	return o, nil
}

func (h *AcceptAssignmentCommandHandler) publish(ctx context.Context, o *order.Order) {
	event := ports.OrderEvent{
		OrderID:    o.ID().String(),
		Tenant:     o.Tenant().String(),
		Status:     o.Status().String(),
		OccurredAt: h.clock.Now(),
	}
	if o.Rider() != nil {
		event.RiderID = o.Rider().String()
	}
	if err := h.publisher.PublishOrderEvent(ctx, event); err != nil {
		h.logger.Warn("order event not published",
			zap.String("order_id", o.ID().String()), zap.Error(err))
	}
}

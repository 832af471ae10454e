package commands

import (
	"context"

	"go.uber.org/zap"

	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/core/ports"
	"hyperlocal/internal/metrics"
	"hyperlocal/internal/pkg/clock"
)

// CompleteDeliveryCommandHandler closes out a delivery: the order
// enters delivered with its delivery time stamped, and the rider's
// earnings ledger is credited with the order's delivery fee in the
// same transaction.
type CompleteDeliveryCommandHandler struct {
	uowFactory AssignmentUoWFactory
	clock      clock.Clock
	publisher  ports.EventPublisher
	notifier   ports.Notifier
	logger     *zap.Logger
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery
// completion.
func NewCompleteDeliveryCommandHandler(
	uowFactory AssignmentUoWFactory,
	clk clock.Clock,
	publisher ports.EventPublisher,
	notifier ports.Notifier,
	logger *zap.Logger,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		publisher:  publisher,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the completion and returns the delivered order.
func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) (*order.Order, error) {
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
	if o.Rider() == nil || !o.Rider().IsEqual(cmd.RiderID()) {
		return nil, ErrAccessDenied
	}

	r, err := uow.RiderRepository().Get(ctx, cmd.Tenant(), cmd.RiderID())
	if err != nil {
		return nil, err
	}

	rider, err := order.NewActor(cmd.RiderID(), order.RoleRider)
	if err != nil {
		return nil, err
	}
	if err = o.Transition(order.Delivered, "delivered to customer", rider, h.clock.Now()); err != nil {
		return nil, err
	}

	if err = r.RecordDelivery(o.Pricing().DeliveryFee()); err != nil {
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

	metrics.OrdersDelivered.Inc()
	h.announce(ctx, o)
	return o, nil
}

func (h *CompleteDeliveryCommandHandler) announce(ctx context.Context, o *order.Order) {
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

	if err := h.notifier.NotifyOrderStatus(ctx, o.ID().String(), o.Status().String()); err != nil {
		h.logger.Warn("status notification not sent",
			zap.String("order_id", o.ID().String()), zap.Error(err))
	}
}

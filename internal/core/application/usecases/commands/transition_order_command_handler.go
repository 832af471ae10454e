package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/core/ports"
	"hyperlocal/internal/pkg/clock"
)

// TransitionOrderCommandHandler moves orders along the store-driven
// chain (accepted, preparing, ready_for_pickup) and the rider's pickup
// step (out_for_delivery).
//
// Targets with their own commands are refused here: assignment,
// cancellation, and delivery carry side effects beyond a status write.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
	publisher  ports.EventPublisher
	notifier   ports.Notifier
	logger     *zap.Logger
}

// NewTransitionOrderCommandHandler creates a handler for lifecycle
// transitions.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	clk clock.Clock,
	publisher ports.EventPublisher,
	notifier ports.Notifier,
	logger *zap.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		publisher:  publisher,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the transition command and returns the updated order.
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	switch cmd.Next() {
	case order.RiderAssigned, order.Cancelled, order.Delivered:
		return nil, fmt.Errorf("%w: %s requires a dedicated operation",
			order.ErrInvalidTransition, cmd.Next())
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

	if err = h.authorize(ctx, uow, cmd, o); err != nil {
		return nil, err
	}

	if err = o.Transition(cmd.Next(), cmd.Note(), cmd.Actor(), h.clock.Now()); err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.announce(ctx, o)
	return o, nil
}

// authorize enforces who may drive which part of the lifecycle: the
// owning store (or an admin) runs the pre-pickup chain, the assigned
// rider (or an admin) runs pickup and failure.
func (h *TransitionOrderCommandHandler) authorize(
	ctx context.Context,
	uow OrderUoW,
	cmd TransitionOrderCommand,
	o *order.Order,
) error {
	actor := cmd.Actor()
	if actor.Role() == order.RoleAdmin || actor.Role() == order.RoleSystem {
		return nil
	}

	switch cmd.Next() {
	case order.Accepted, order.Preparing, order.ReadyForPickup:
		if actor.Role() != order.RoleStoreOwner {
			return ErrAccessDenied
		}
		s, err := uow.StoreRepository().Get(ctx, cmd.Tenant(), o.StoreID())
		if err != nil {
			return err
		}
		if !s.OwnerID().IsEqual(actor.ID()) {
			return ErrAccessDenied
		}
	case order.OutForDelivery, order.Failed:
		if actor.Role() != order.RoleRider {
			return ErrAccessDenied
		}
		if o.Rider() == nil || !o.Rider().IsEqual(actor.ID()) {
			return ErrAccessDenied
		}
	default:
		return ErrAccessDenied
	}
	return nil
}

func (h *TransitionOrderCommandHandler) announce(ctx context.Context, o *order.Order) {
	err := h.publisher.PublishOrderEvent(ctx, ports.OrderEvent{
		OrderID:    o.ID().String(),
		Tenant:     o.Tenant().String(),
		Status:     o.Status().String(),
		OccurredAt: h.clock.Now(),
	})
	if err != nil {
		h.logger.Warn("order event not published",
			zap.String("order_id", o.ID().String()), zap.Error(err))
	}

	if err = h.notifier.NotifyOrderStatus(ctx, o.ID().String(), o.Status().String()); err != nil {
		h.logger.Warn("status notification not sent",
			zap.String("order_id", o.ID().String()), zap.Error(err))
	}
}

package commands

import (
	"context"

	"go.uber.org/zap"

	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/core/ports"
	"hyperlocal/internal/metrics"
	"hyperlocal/internal/pkg/clock"
)

// CancelOrderCommandHandler cancels pre-pickup orders. The status
// write and every stock release happen in the same transaction, so a
// cancelled order always restores exactly what it reserved.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      clock.Clock
	publisher  ports.EventPublisher
	notifier   ports.Notifier
	logger     *zap.Logger
}

// NewCancelOrderCommandHandler creates a handler for cancellations.
func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	clk clock.Clock,
	publisher ports.EventPublisher,
	notifier ports.Notifier,
	logger *zap.Logger,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		publisher:  publisher,
		notifier:   notifier,
		logger:     logger,
	}
}

// Handle processes the cancellation and returns the updated order.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
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

	if err = h.authorize(ctx, uow, cmd, o); err != nil {
		return nil, err
	}

	if err = o.Cancel(cmd.Reason(), cmd.Actor(), h.clock.Now()); err != nil {
		return nil, err
	}

	for _, item := range o.Items() {
		if err = uow.ProductRepository().ReleaseStock(ctx, cmd.Tenant(), item.ProductID(), item.Quantity()); err != nil {
			return nil, err
		}
	}

	if err = uow.OrderRepository().Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrdersCancelled.Inc()
	h.announce(ctx, o)
	return o, nil
}

// authorize permits the customer who placed the order, the owning
// store, and platform operators.
func (h *CancelOrderCommandHandler) authorize(
	ctx context.Context,
	uow OrderUoW,
	cmd CancelOrderCommand,
	o *order.Order,
) error {
	actor := cmd.Actor()
	switch actor.Role() {
	case order.RoleAdmin, order.RoleSystem:
		return nil
	case order.RoleCustomer:
		if !o.CustomerID().IsEqual(actor.ID()) {
			return ErrAccessDenied
		}
		return nil
	case order.RoleStoreOwner:
		s, err := uow.StoreRepository().Get(ctx, cmd.Tenant(), o.StoreID())
		if err != nil {
			return err
		}
		if !s.OwnerID().IsEqual(actor.ID()) {
			return ErrAccessDenied
		}
		return nil
	default:
		return ErrAccessDenied
	}
}

func (h *CancelOrderCommandHandler) announce(ctx context.Context, o *order.Order) {
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

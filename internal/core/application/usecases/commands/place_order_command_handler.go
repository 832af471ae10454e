package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/core/domain/model/store"
	"hyperlocal/internal/core/domain/services"
	"hyperlocal/internal/core/ports"
	"hyperlocal/internal/metrics"
	"hyperlocal/internal/pkg/clock"
	"hyperlocal/internal/pkg/errs"
)

// PlaceOrderCommandHandler creates orders with all-or-nothing stock
// reservation.
//
// The store check, delivery point resolution, every stock decrement,
// and the order insert run in one transaction: if any item cannot be
// reserved, the rollback restores the stock of every item reserved
// earlier in the same request.
type PlaceOrderCommandHandler struct {
	uowFactory PlaceOrderUoWFactory
	resolver   services.ZoneResolver
	clock      clock.Clock
	publisher  ports.EventPublisher
	notifier   ports.Notifier
	logger     *zap.Logger

	// deliveryFee and taxRatePercent are fixed per deployment.
	deliveryFee    kernel.Money
	taxRatePercent float64
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(
	uowFactory PlaceOrderUoWFactory,
	resolver services.ZoneResolver,
	clk clock.Clock,
	publisher ports.EventPublisher,
	notifier ports.Notifier,
	logger *zap.Logger,
	deliveryFee kernel.Money,
	taxRatePercent float64,
) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory:     uowFactory,
		resolver:       resolver,
		clock:          clk,
		publisher:      publisher,
		notifier:       notifier,
		logger:         logger,
		deliveryFee:    deliveryFee,
		taxRatePercent: taxRatePercent,
	}
}

// Handle processes the placement command and returns the created order.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock.Now()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	fulfillingStore, err := uow.StoreRepository().Get(ctx, cmd.Tenant(), cmd.StoreID())
	if err != nil {
		return nil, err
	}
	if !fulfillingStore.IsOpenAt(now) {
		return nil, store.ErrStoreUnavailable
	}

	// The delivery point must land in some active zone; the order itself
	// snapshots the store's zone.
	zones, err := uow.ZoneRepository().GetAllActive(ctx, cmd.Tenant())
	if err != nil {
		return nil, err
	}
	if _, err = h.resolver.Resolve(cmd.Address().Location(), zones); err != nil {
		return nil, err
	}

	items, subtotal, err := h.reserveItems(ctx, uow, cmd, fulfillingStore)
	if err != nil {
		return nil, err
	}

	pricing, err := order.NewPricing(
		subtotal,
		h.deliveryFee,
		subtotal.Percent(fulfillingStore.CommissionRatePercent()),
		subtotal.Percent(h.taxRatePercent),
		0,
	)
	if err != nil {
		return nil, err
	}

	placed, err := order.NewOrder(
		cmd.OrderID(), cmd.Tenant(), cmd.CustomerID(), cmd.StoreID(),
		fulfillingStore.ZoneID(), items, pricing, cmd.Address(),
		cmd.PaymentMethod(), now,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.OrderRepository().Add(ctx, placed); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.OrdersPlaced.Inc()
	h.announce(ctx, placed)
	return placed, nil
}

// reserveItems decrements stock for every requested line and builds the
// order items with frozen prices. Any failure aborts the whole request;
// the caller's rollback undoes earlier reservations.
func (h *PlaceOrderCommandHandler) reserveItems(
	ctx context.Context,
	uow PlaceOrderUoW,
	cmd PlaceOrderCommand,
	fulfillingStore *store.Store,
) ([]order.Item, kernel.Money, error) {
	products := uow.ProductRepository()

	items := make([]order.Item, 0, len(cmd.Items()))
	var subtotal kernel.Money
	for _, line := range cmd.Items() {
		p, err := products.Get(ctx, cmd.Tenant(), line.ProductID)
		if err != nil {
			return nil, 0, err
		}
		if !p.StoreID().IsEqual(fulfillingStore.ID()) {
			return nil, 0, errs.NewObjectNotFoundError("productID", line.ProductID)
		}
		// Domain checks first (active flag, per-order cap), then the
		// linearized decrement against the persisted stock.
		if err = p.Reserve(line.Quantity); err != nil {
			return nil, 0, err
		}
		if err = products.ReserveStock(ctx, cmd.Tenant(), line.ProductID, line.Quantity); err != nil {
			return nil, 0, err
		}

		item, err := order.NewItem(p.ID(), p.Name(), line.Quantity, p.Price(), line.Substitution)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, item)
		subtotal = subtotal.Add(item.LineTotal())
	}
	return items, subtotal, nil
}

func (h *PlaceOrderCommandHandler) announce(ctx context.Context, placed *order.Order) {
	err := h.publisher.PublishOrderEvent(ctx, ports.OrderEvent{
		OrderID:    placed.ID().String(),
		Tenant:     placed.Tenant().String(),
		Status:     placed.Status().String(),
		OccurredAt: placed.PlacedAt(),
	})
	if err != nil {
		h.logger.Warn("order event not published",
			zap.String("order_id", placed.ID().String()),
			zap.Error(fmt.Errorf("publish placed event: %w", err)))
	}

	if err = h.notifier.NotifyOrderStatus(ctx, placed.ID().String(), placed.Status().String()); err != nil {
		h.logger.Warn("status notification not sent",
			zap.String("order_id", placed.ID().String()), zap.Error(err))
	}
}

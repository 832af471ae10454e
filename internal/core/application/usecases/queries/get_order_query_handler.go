package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/errs"
)

// GetOrderQueryHandler reads one order's tracking view from the
// database: the summary row plus its status timeline. The commission
// column is deliberately not part of the read model; it is a
// store-facing figure.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for order tracking queries.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query and returns the tracking view.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (*GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var id uuid.UUID
	var riderID *uuid.UUID
	var deliveredAt *time.Time
	response := &GetOrderQueryResponse{}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			rider_id,
			subtotal,
			delivery_fee,
			tax,
			discount,
			total,
			payment_method,
			payment_status,
			placed_at,
			delivered_at
		FROM orders
		WHERE id = ? AND tenant = ?
	`, query.OrderID().Bytes(), query.Tenant().String()).Row()

	err := row.Scan(
		&id,
		&response.Status,
		&riderID,
		&response.Subtotal,
		&response.DeliveryFee,
		&response.Tax,
		&response.Discount,
		&response.Total,
		&response.PaymentMethod,
		&response.PaymentStatus,
		&response.PlacedAt,
		&deliveredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	response.ID = orderID

	if riderID != nil {
		rid, ridErr := kernel.UUIDFromBytes((*riderID)[:])
		if ridErr != nil {
			return nil, ridErr
		}
		response.RiderID = &rid
	}
	response.DeliveredAt = deliveredAt

	timeline, err := h.loadTimeline(ctx, query)
	if err != nil {
		return nil, err
	}
	response.Timeline = timeline

	return response, nil
}

func (h GetOrderQueryHandler) loadTimeline(ctx context.Context, query GetOrderQuery) ([]OrderTimelineEntry, error) {
	timeline := make([]OrderTimelineEntry, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			at,
			note
		FROM order_history
		WHERE order_id = ?
		ORDER BY id ASC
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry OrderTimelineEntry
		if err = rows.Scan(&entry.Status, &entry.At, &entry.Note); err != nil {
			return nil, err
		}
		timeline = append(timeline, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return timeline, nil
}

package queries

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/errs"
)

// GetRiderEarningsQueryHandler reads a rider's ledger row from the
// database.
type GetRiderEarningsQueryHandler struct {
	db *gorm.DB
}

// NewGetRiderEarningsQueryHandler creates a handler for earnings
// queries.
func NewGetRiderEarningsQueryHandler(db *gorm.DB) GetRiderEarningsQueryHandler {
	return GetRiderEarningsQueryHandler{db: db}
}

// Handle executes the query and returns the earnings read model.
func (h GetRiderEarningsQueryHandler) Handle(
	ctx context.Context,
	query GetRiderEarningsQuery,
) (*GetRiderEarningsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var id uuid.UUID
	response := &GetRiderEarningsQueryResponse{}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			earnings_balance,
			earnings_today,
			earnings_week,
			earnings_month,
			total_orders,
			completed_orders,
			cancelled_orders
		FROM riders
		WHERE id = ? AND tenant = ?
	`, query.RiderID().Bytes(), query.Tenant().String()).Row()

	err := row.Scan(
		&id,
		&response.Balance,
		&response.Today,
		&response.Week,
		&response.Month,
		&response.TotalOrders,
		&response.CompletedOrders,
		&response.CancelledOrders,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("rider", query.RiderID().String())
		}
		return nil, err
	}

	riderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	response.RiderID = riderID

	return response, nil
}

package queries

import (
	"errors"
	"time"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/pkg/guard"
)

// ErrGetOrderQueryIsNotConstructed is returned when using an improperly
// initialized GetOrderQuery.
var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery fetches the tracking view of one order: its status,
// pricing breakdown, assigned rider, and the full status timeline.
type GetOrderQuery struct {
	tenant  kernel.TenantID
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderQuery creates a query for one order's tracking view.
func NewGetOrderQuery(tenant kernel.TenantID, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := tenant.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}

	return GetOrderQuery{
		tenant:  tenant,
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Tenant returns the tenant scope of the query.
func (q GetOrderQuery) Tenant() kernel.TenantID {
	return q.tenant
}

// OrderID returns the order being tracked.
func (q GetOrderQuery) OrderID() kernel.UUID {
	return q.orderID
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// GetOrderQueryResponse is the tracking read model of one order.
// Amounts are in minor currency units.
type GetOrderQueryResponse struct {
	ID            kernel.UUID
	Status        string
	RiderID       *kernel.UUID
	Subtotal      int64
	DeliveryFee   int64
	Tax           int64
	Discount      int64
	Total         int64
	PaymentMethod string
	PaymentStatus string
	PlacedAt      time.Time
	DeliveredAt   *time.Time
	Timeline      []OrderTimelineEntry
}

// OrderTimelineEntry is one step of the order's status timeline.
type OrderTimelineEntry struct {
	Status string
	At     time.Time
	Note   string
}

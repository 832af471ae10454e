package ports

import (
	"context"
	"time"
)

// OrderEvent is the integration event emitted on every order lifecycle
// change. Downstream consumers (analytics, settlement) key on OrderID.
type OrderEvent struct {
	OrderID    string    `json:"order_id"`
	Tenant     string    `json:"tenant"`
	Status     string    `json:"status"`
	RiderID    string    `json:"rider_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher emits order lifecycle events to the message broker
// after the owning transaction commits.
type EventPublisher interface {
	// PublishOrderEvent sends one event. Errors are for the caller to
	// log; the order flow has already committed and does not roll back.
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}

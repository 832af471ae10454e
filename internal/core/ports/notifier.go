package ports

import "context"

// Notifier sends order status messages to the deployment's configured
/// recipient. Calls are fire-and-forget from the caller's point of view:
// failures are logged, never surfaced to the order flow.
type Notifier interface {
	// NotifyOrderStatus announces an order's new status.
	NotifyOrderStatus(ctx context.Context, orderID, status string) error
}

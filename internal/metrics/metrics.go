// Package metrics declares the process-wide Prometheus collectors.
// Collectors are registered once at init through promauto and shared by
// handlers, middleware, and jobs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersPlaced counts orders that committed in placed state.
	OrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hyperlocal_orders_placed_total",
		Help: "Orders successfully placed.",
	})

	// OrdersCancelled counts orders that reached cancelled state.
	OrdersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hyperlocal_orders_cancelled_total",
		Help: "Orders cancelled before pickup.",
	})

	// OrdersDelivered counts orders that reached delivered state.
	OrdersDelivered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hyperlocal_orders_delivered_total",
		Help: "Orders delivered to the customer.",
	})

	// AssignmentConflicts counts rider claims that lost the
	// exactly-once race for an order.
	AssignmentConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hyperlocal_assignment_conflicts_total",
		Help: "Rider assignment attempts rejected because another rider won the race.",
	})

	// SweeperReoffers counts stale ready_for_pickup orders the
	// assignment sweeper re-announced to riders.
	SweeperReoffers = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hyperlocal_sweeper_reoffers_total",
		Help: "Waiting orders re-announced by the assignment sweeper.",
	})

	// HTTPRequests counts handled HTTP requests by method, path, and
	// status class.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hyperlocal_http_requests_total",
		Help: "HTTP requests handled.",
	}, []string{"method", "path", "status"})

	// HTTPDuration observes request latency by method and path.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hyperlocal_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

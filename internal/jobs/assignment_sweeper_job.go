// Package jobs provides the scheduled background tasks, built on
// github.com/robfig/cron/v3. Jobs are coordinated through JobManager.
package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/core/domain/model/rider"
	"hyperlocal/internal/core/domain/services"
	"hyperlocal/internal/core/ports"
	"hyperlocal/internal/metrics"
	"hyperlocal/internal/pkg/clock"
)

// Repository slices the sweeper reads from.
type (
	awaitingOrdersFinder interface {
		GetAllAwaitingRider(ctx context.Context, tenant kernel.TenantID, waitingSince time.Time) ([]*order.Order, error)
	}
	zoneRidersFinder interface {
		GetAllServingZone(ctx context.Context, tenant kernel.TenantID, zoneID kernel.UUID) ([]*rider.Rider, error)
	}
)

// AssignmentSweeperJob periodically re-announces ready_for_pickup
// orders that no rider has claimed within the configured wait. The
// re-offer names the nearest available rider when one exists, but
// assignment itself stays with the claim race; the sweeper never
// force-assigns.
type AssignmentSweeperJob struct {
	orders    awaitingOrdersFinder
	riders    zoneRidersFinder
	matcher   services.RiderMatcher
	publisher ports.EventPublisher
	clock     clock.Clock
	tenants   []kernel.TenantID
	interval  time.Duration
	maxWait   time.Duration
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewAssignmentSweeperJob creates a sweeper over the deployment's
// tenants.
func NewAssignmentSweeperJob(
	orders awaitingOrdersFinder,
	riders zoneRidersFinder,
	matcher services.RiderMatcher,
	publisher ports.EventPublisher,
	clk clock.Clock,
	tenants []kernel.TenantID,
	interval time.Duration,
	maxWait time.Duration,
	logger *zap.Logger,
) *AssignmentSweeperJob {
	return &AssignmentSweeperJob{
		orders:    orders,
		riders:    riders,
		matcher:   matcher,
		publisher: publisher,
		clock:     clk,
		tenants:   tenants,
		interval:  interval,
		maxWait:   maxWait,
		cron:      cron.New(),
		logger:    logger.With(zap.String("component", "assignment_sweeper_job")),
	}
}

// Start schedules the sweep at the configured interval.
func (j *AssignmentSweeperJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("assignment sweeper started",
		zap.Duration("interval", j.interval),
		zap.Duration("max_wait", j.maxWait))
	return nil
}

// Stop stops the scheduled sweeps.
func (j *AssignmentSweeperJob) Stop() {
	j.cron.Stop()
	j.logger.Info("assignment sweeper stopped")
}

// RunOnce executes a single sweep across all tenants. Exposed so the
// scheduler and tests share the same entry point.
func (j *AssignmentSweeperJob) RunOnce(ctx context.Context) {
	cutoff := j.clock.Now().Add(-j.maxWait)

	for _, tenant := range j.tenants {
		waiting, err := j.orders.GetAllAwaitingRider(ctx, tenant, cutoff)
		if err != nil {
			j.logger.Error("failed to load waiting orders",
				zap.String("tenant", tenant.String()),
				zap.Error(err))
			continue
		}

		for _, o := range waiting {
			event := ports.OrderEvent{
				OrderID:    o.ID().String(),
				Tenant:     tenant.String(),
				Status:     o.Status().String(),
				OccurredAt: j.clock.Now(),
			}
			if candidate := j.nominate(ctx, tenant, o); candidate != nil {
				event.RiderID = candidate.ID().String()
			}

			if err := j.publisher.PublishOrderEvent(ctx, event); err != nil {
				j.logger.Error("failed to re-announce waiting order",
					zap.String("order_id", o.ID().String()),
					zap.Error(err))
				continue
			}

			metrics.SweeperReoffers.Inc()
			j.logger.Info("re-announced waiting order",
				zap.String("tenant", tenant.String()),
				zap.String("order_id", o.ID().String()),
				zap.String("candidate_rider", event.RiderID))
		}
	}
}

// nominate picks the nearest available rider for the re-offer, or nil
// when no rider qualifies. Lookup failures degrade to an untargeted
// offer rather than skipping the order.
func (j *AssignmentSweeperJob) nominate(ctx context.Context, tenant kernel.TenantID, o *order.Order) *rider.Rider {
	candidates, err := j.riders.GetAllServingZone(ctx, tenant, o.ZoneID())
	if err != nil {
		j.logger.Warn("failed to load zone riders",
			zap.String("order_id", o.ID().String()),
			zap.Error(err))
		return nil
	}

	best, err := j.matcher.NearestAvailable(o.Address().Location(), o.ZoneID(), candidates)
	if err != nil {
		if !errors.Is(err, services.ErrRiderNotFound) {
			j.logger.Warn("rider matching failed",
				zap.String("order_id", o.ID().String()),
				zap.Error(err))
		}
		return nil
	}
	return best
}

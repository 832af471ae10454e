package cmd

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	adapterhttp "hyperlocal/internal/adapters/in/http"
	"hyperlocal/internal/adapters/out/postgres"
	"hyperlocal/internal/core/application/usecases/commands"
	"hyperlocal/internal/core/application/usecases/queries"
	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/core/domain/model/rider"
	"hyperlocal/internal/core/domain/services"
	"hyperlocal/internal/core/ports"
	"hyperlocal/internal/jobs"
	"hyperlocal/internal/pkg/clock"
)

// CompositionRoot wires adapters into use case handlers. Every Create
// method returns a fully configured handler; the root itself owns the
// shared dependencies.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	notifier   ports.Notifier
	clock      clock.Clock
	logger     *zap.Logger
}

// NewCompositionRoot creates the root over the shared infrastructure.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	notifier ports.Notifier,
	logger *zap.Logger,
) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  publisher,
		notifier:   notifier,
		clock:      clock.NewSystem(),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	var f commands.PlaceOrderUoWFactory = FuncPlaceOrderUoWFactory(func() commands.PlaceOrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPlaceOrderCommandHandler(f, services.NewZoneResolver(),
		c.clock, c.publisher, c.notifier, c.logger,
		kernel.Money(c.config.DeliveryFee), c.config.TaxRatePercent)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(),
		c.clock, c.publisher, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(),
		c.clock, c.publisher, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateAcceptAssignmentCommandHandler() commands.AcceptAssignmentCommandHandler {
	return commands.NewAcceptAssignmentCommandHandler(c.assignmentUoWFactory(),
		c.clock, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCompleteDeliveryCommandHandler() commands.CompleteDeliveryCommandHandler {
	return commands.NewCompleteDeliveryCommandHandler(c.assignmentUoWFactory(),
		c.clock, c.publisher, c.notifier, c.logger)
}

func (c *CompositionRoot) CreateLeaveFeedbackCommandHandler() commands.LeaveFeedbackCommandHandler {
	return commands.NewLeaveFeedbackCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateUpdateRiderLocationCommandHandler() commands.UpdateRiderLocationCommandHandler {
	return commands.NewUpdateRiderLocationCommandHandler(c.riderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateSetRiderAvailabilityCommandHandler() commands.SetRiderAvailabilityCommandHandler {
	return commands.NewSetRiderAvailabilityCommandHandler(c.riderUoWFactory())
}

func (c *CompositionRoot) CreateGetNearbyZonesQueryHandler() queries.GetNearbyZonesQueryHandler {
	return queries.NewGetNearbyZonesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetServiceableStoresQueryHandler() queries.GetServiceableStoresQueryHandler {
	return queries.NewGetServiceableStoresQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetEligibleRidersQueryHandler() queries.GetEligibleRidersQueryHandler {
	return queries.NewGetEligibleRidersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRiderEarningsQueryHandler() queries.GetRiderEarningsQueryHandler {
	return queries.NewGetRiderEarningsQueryHandler(c.gormDB)
}

// CreateHTTPServer builds the REST server over all handlers.
func (c *CompositionRoot) CreateHTTPServer() *adapterhttp.Server {
	placeOrder := c.CreatePlaceOrderCommandHandler()
	transitionOrder := c.CreateTransitionOrderCommandHandler()
	cancelOrder := c.CreateCancelOrderCommandHandler()
	acceptAssignment := c.CreateAcceptAssignmentCommandHandler()
	completeDelivery := c.CreateCompleteDeliveryCommandHandler()
	leaveFeedback := c.CreateLeaveFeedbackCommandHandler()
	updateRiderLocation := c.CreateUpdateRiderLocationCommandHandler()
	setRiderAvailability := c.CreateSetRiderAvailabilityCommandHandler()

	return adapterhttp.NewServer(
		&placeOrder,
		&transitionOrder,
		&cancelOrder,
		&acceptAssignment,
		&completeDelivery,
		&leaveFeedback,
		&updateRiderLocation,
		&setRiderAvailability,
		c.CreateGetNearbyZonesQueryHandler(),
		c.CreateGetServiceableStoresQueryHandler(),
		c.CreateGetEligibleRidersQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetRiderEarningsQueryHandler(),
		c.clock,
	)
}

// CreateJobManager builds the background jobs for the given tenants.
func (c *CompositionRoot) CreateJobManager(tenants []kernel.TenantID) *jobs.JobManager {
	store := sweeperStore{factory: c.uowFactory}
	sweeper := jobs.NewAssignmentSweeperJob(store, store,
		services.NewRiderMatcher(c.config.RiderSearchRadiusKm),
		c.publisher, c.clock, tenants,
		c.config.SweepInterval, c.config.SweepMaxWait, c.logger)
	return jobs.NewJobManager(sweeper)
}

// sweeperStore gives the sweeper read access through short-lived units
// of work, so aggregate tracking never accumulates across sweeps.
type sweeperStore struct {
	factory *postgres.GormUnitOfWorkFactory
}

func (s sweeperStore) GetAllAwaitingRider(ctx context.Context, tenant kernel.TenantID, waitingSince time.Time) ([]*order.Order, error) {
	return s.factory.Create().OrderRepository().GetAllAwaitingRider(ctx, tenant, waitingSince)
}

func (s sweeperStore) GetAllServingZone(ctx context.Context, tenant kernel.TenantID, zoneID kernel.UUID) ([]*rider.Rider, error) {
	return s.factory.Create().RiderRepository().GetAllServingZone(ctx, tenant, zoneID)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) assignmentUoWFactory() commands.AssignmentUoWFactory {
	return FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) riderUoWFactory() commands.RiderUoWFactory {
	return FuncRiderUoWFactory(func() commands.RiderUoW {
		return c.uowFactory.Create()
	})
}

type FuncPlaceOrderUoWFactory func() commands.PlaceOrderUoW

func (f FuncPlaceOrderUoWFactory) Create() commands.PlaceOrderUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncRiderUoWFactory func() commands.RiderUoW

func (f FuncRiderUoWFactory) Create() commands.RiderUoW {
	return f()
}

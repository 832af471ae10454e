// Package http is the inbound REST adapter. Handlers translate JSON
// requests into commands and queries, and domain errors into status
// codes; all authorization beyond role gating lives in the core.
package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"hyperlocal/internal/core/application/usecases/commands"
	"hyperlocal/internal/core/application/usecases/queries"
	"hyperlocal/internal/core/domain/model/kernel"
	"hyperlocal/internal/core/domain/model/order"
	"hyperlocal/internal/core/domain/model/rider"
	"hyperlocal/internal/pkg/clock"
)

// Command handler contracts, one per route. Narrow interfaces let
// handler tests substitute mocks without standing up a database.
type (
	placeOrderHandler interface {
		Handle(ctx context.Context, cmd commands.PlaceOrderCommand) (*order.Order, error)
	}
	transitionOrderHandler interface {
		Handle(ctx context.Context, cmd commands.TransitionOrderCommand) (*order.Order, error)
	}
	cancelOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CancelOrderCommand) (*order.Order, error)
	}
	acceptAssignmentHandler interface {
		Handle(ctx context.Context, cmd commands.AcceptAssignmentCommand) (*order.Order, error)
	}
	completeDeliveryHandler interface {
		Handle(ctx context.Context, cmd commands.CompleteDeliveryCommand) (*order.Order, error)
	}
	leaveFeedbackHandler interface {
		Handle(ctx context.Context, cmd commands.LeaveFeedbackCommand) error
	}
	updateRiderLocationHandler interface {
		Handle(ctx context.Context, cmd commands.UpdateRiderLocationCommand) error
	}
	setRiderAvailabilityHandler interface {
		Handle(ctx context.Context, cmd commands.SetRiderAvailabilityCommand) error
	}

	getNearbyZonesHandler interface {
		Handle(ctx context.Context, query queries.GetNearbyZonesQuery) ([]queries.GetNearbyZonesQueryResponse, error)
	}
	getServiceableStoresHandler interface {
		Handle(ctx context.Context, query queries.GetServiceableStoresQuery) ([]queries.GetServiceableStoresQueryResponse, error)
	}
	getEligibleRidersHandler interface {
		Handle(ctx context.Context, query queries.GetEligibleRidersQuery) ([]queries.GetEligibleRidersQueryResponse, error)
	}
	getOrderHandler interface {
		Handle(ctx context.Context, query queries.GetOrderQuery) (*queries.GetOrderQueryResponse, error)
	}
	getRiderEarningsHandler interface {
		Handle(ctx context.Context, query queries.GetRiderEarningsQuery) (*queries.GetRiderEarningsQueryResponse, error)
	}
)

// Server wires HTTP routes to application use cases.
type Server struct {
	placeOrder           placeOrderHandler
	transitionOrder      transitionOrderHandler
	cancelOrder          cancelOrderHandler
	acceptAssignment     acceptAssignmentHandler
	completeDelivery     completeDeliveryHandler
	leaveFeedback        leaveFeedbackHandler
	updateRiderLocation  updateRiderLocationHandler
	setRiderAvailability setRiderAvailabilityHandler

	getNearbyZones       getNearbyZonesHandler
	getServiceableStores getServiceableStoresHandler
	getEligibleRiders    getEligibleRidersHandler
	getOrder             getOrderHandler
	getRiderEarnings     getRiderEarningsHandler

	clock clock.Clock
}

// NewServer creates the HTTP server over the given use case handlers.
func NewServer(
	placeOrder placeOrderHandler,
	transitionOrder transitionOrderHandler,
	cancelOrder cancelOrderHandler,
	acceptAssignment acceptAssignmentHandler,
	completeDelivery completeDeliveryHandler,
	leaveFeedback leaveFeedbackHandler,
	updateRiderLocation updateRiderLocationHandler,
	setRiderAvailability setRiderAvailabilityHandler,
	getNearbyZones getNearbyZonesHandler,
	getServiceableStores getServiceableStoresHandler,
	getEligibleRiders getEligibleRidersHandler,
	getOrder getOrderHandler,
	getRiderEarnings getRiderEarningsHandler,
	clk clock.Clock,
) *Server {
	return &Server{
		placeOrder:           placeOrder,
		transitionOrder:      transitionOrder,
		cancelOrder:          cancelOrder,
		acceptAssignment:     acceptAssignment,
		completeDelivery:     completeDelivery,
		leaveFeedback:        leaveFeedback,
		updateRiderLocation:  updateRiderLocation,
		setRiderAvailability: setRiderAvailability,
		getNearbyZones:       getNearbyZones,
		getServiceableStores: getServiceableStores,
		getEligibleRiders:    getEligibleRiders,
		getOrder:             getOrder,
		getRiderEarnings:     getRiderEarnings,
		clock:                clk,
	}
}

// RegisterRoutes mounts all API routes. Tenant-scoped routes sit behind
// the auth middleware; health stays open for probes.
func (s *Server) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1", auth)

	api.POST("/orders", s.PlaceOrder)
	api.GET("/orders/:orderID", s.GetOrder)
	api.POST("/orders/:orderID/transition", s.TransitionOrder)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)
	api.POST("/orders/:orderID/accept", s.AcceptAssignment)
	api.POST("/orders/:orderID/complete", s.CompleteDelivery)
	api.POST("/orders/:orderID/feedback", s.LeaveFeedback)

	api.PUT("/riders/me/location", s.UpdateRiderLocation)
	api.PUT("/riders/me/availability", s.SetRiderAvailability)
	api.GET("/riders/me/earnings", s.GetRiderEarnings)

	api.GET("/zones/nearby", s.GetNearbyZones)
	api.GET("/zones/:zoneID/stores", s.GetServiceableStores)
	api.GET("/zones/:zoneID/riders", s.GetEligibleRiders)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type placeOrderItemRequest struct {
	ProductID    string `json:"product_id"`
	Quantity     int    `json:"quantity"`
	Substitution string `json:"substitution"`
}

type addressRequest struct {
	Text string  `json:"text"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type placeOrderRequest struct {
	StoreID       string                  `json:"store_id"`
	Items         []placeOrderItemRequest `json:"items"`
	Address       addressRequest          `json:"address"`
	PaymentMethod string                  `json:"payment_method"`
}

// PlaceOrder handles POST /api/v1/orders.
func (s *Server) PlaceOrder(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}
	if principal.Role != order.RoleCustomer {
		return writeError(ctx, commands.ErrAccessDenied)
	}

	var request placeOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	storeID, err := kernel.UUIDFromString(request.StoreID)
	if err != nil {
		return writeError(ctx, err)
	}

	items := make([]commands.PlaceOrderItem, 0, len(request.Items))
	for _, it := range request.Items {
		productID, err := kernel.UUIDFromString(it.ProductID)
		if err != nil {
			return writeError(ctx, err)
		}
		substitution, err := order.SubstitutionPolicyFromString(it.Substitution)
		if err != nil {
			return writeError(ctx, err)
		}
		items = append(items, commands.PlaceOrderItem{
			ProductID:    productID,
			Quantity:     it.Quantity,
			Substitution: substitution,
		})
	}

	point, err := kernel.NewGeoPoint(request.Address.Lat, request.Address.Lng)
	if err != nil {
		return writeError(ctx, err)
	}
	address, err := order.NewDeliveryAddress(request.Address.Text, point)
	if err != nil {
		return writeError(ctx, err)
	}
	paymentMethod, err := order.PaymentMethodFromString(request.PaymentMethod)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), principal.Tenant,
		principal.ActorID, storeID, items, address, paymentMethod)
	if err != nil {
		return writeError(ctx, err)
	}

	placed, err := s.placeOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, newOrderResponse(placed))
}

// GetOrder handles GET /api/v1/orders/:orderID.
func (s *Server) GetOrder(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(principal.Tenant, orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.getOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newTrackingResponse(result))
}

type transitionOrderRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// TransitionOrder handles POST /api/v1/orders/:orderID/transition.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request transitionOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	next, err := order.StatusFromString(request.Status)
	if err != nil {
		return writeError(ctx, err)
	}
	actor, err := principal.Actor()
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, principal.Tenant,
		next, request.Note, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	updated, err := s.transitionOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newOrderResponse(updated))
}

type cancelOrderRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request cancelOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	actor, err := principal.Actor()
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, principal.Tenant,
		request.Reason, actor)
	if err != nil {
		return writeError(ctx, err)
	}

	cancelled, err := s.cancelOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newOrderResponse(cancelled))
}

// AcceptAssignment handles POST /api/v1/orders/:orderID/accept. The
// accepting rider is the authenticated caller.
func (s *Server) AcceptAssignment(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}
	if principal.Role != order.RoleRider {
		return writeError(ctx, commands.ErrAccessDenied)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewAcceptAssignmentCommand(orderID, principal.Tenant, principal.ActorID)
	if err != nil {
		return writeError(ctx, err)
	}

	assigned, err := s.acceptAssignment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newOrderResponse(assigned))
}

// CompleteDelivery handles POST /api/v1/orders/:orderID/complete.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}
	if principal.Role != order.RoleRider {
		return writeError(ctx, commands.ErrAccessDenied)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCompleteDeliveryCommand(orderID, principal.Tenant, principal.ActorID)
	if err != nil {
		return writeError(ctx, err)
	}

	delivered, err := s.completeDelivery.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newOrderResponse(delivered))
}

type leaveFeedbackRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// LeaveFeedback handles POST /api/v1/orders/:orderID/feedback.
func (s *Server) LeaveFeedback(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}
	if principal.Role != order.RoleCustomer {
		return writeError(ctx, commands.ErrAccessDenied)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return writeError(ctx, err)
	}

	var request leaveFeedbackRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	cmd, err := commands.NewLeaveFeedbackCommand(orderID, principal.Tenant,
		principal.ActorID, request.Rating, request.Comment)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.leaveFeedback.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type riderLocationRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// UpdateRiderLocation handles PUT /api/v1/riders/me/location.
func (s *Server) UpdateRiderLocation(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}
	if principal.Role != order.RoleRider {
		return writeError(ctx, commands.ErrAccessDenied)
	}

	var request riderLocationRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	location, err := kernel.NewGeoPoint(request.Lat, request.Lng)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewUpdateRiderLocationCommand(principal.ActorID,
		principal.Tenant, location)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.updateRiderLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type riderAvailabilityRequest struct {
	Availability string `json:"availability"`
}

// SetRiderAvailability handles PUT /api/v1/riders/me/availability.
func (s *Server) SetRiderAvailability(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}
	if principal.Role != order.RoleRider {
		return writeError(ctx, commands.ErrAccessDenied)
	}

	var request riderAvailabilityRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	availability, err := rider.AvailabilityFromString(request.Availability)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewSetRiderAvailabilityCommand(principal.ActorID,
		principal.Tenant, availability)
	if err != nil {
		return writeError(ctx, err)
	}

	if err := s.setRiderAvailability.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetRiderEarnings handles GET /api/v1/riders/me/earnings.
func (s *Server) GetRiderEarnings(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}
	if principal.Role != order.RoleRider {
		return writeError(ctx, commands.ErrAccessDenied)
	}

	query, err := queries.NewGetRiderEarningsQuery(principal.Tenant, principal.ActorID)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.getRiderEarnings.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, earningsResponse{
		RiderID:         result.RiderID.String(),
		Balance:         result.Balance,
		Today:           result.Today,
		Week:            result.Week,
		Month:           result.Month,
		TotalOrders:     result.TotalOrders,
		CompletedOrders: result.CompletedOrders,
		CancelledOrders: result.CancelledOrders,
	})
}

// GetNearbyZones handles GET /api/v1/zones/nearby.
func (s *Server) GetNearbyZones(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	lat, err := strconv.ParseFloat(ctx.QueryParam("lat"), 64)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "lat must be a number",
		})
	}
	lng, err := strconv.ParseFloat(ctx.QueryParam("lng"), 64)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "lng must be a number",
		})
	}
	maxKm, err := strconv.ParseFloat(ctx.QueryParam("max_distance_km"), 64)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "max_distance_km must be a number",
		})
	}

	point, err := kernel.NewGeoPoint(lat, lng)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetNearbyZonesQuery(principal.Tenant, point, maxKm)
	if err != nil {
		return writeError(ctx, err)
	}

	zones, err := s.getNearbyZones.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]zoneResponse, len(zones))
	for i, z := range zones {
		response[i] = zoneResponse{
			ID:            z.ID.String(),
			Name:          z.Name,
			CenterLat:     z.Center.Lat(),
			CenterLng:     z.Center.Lng(),
			DistanceKm:    z.DistanceKm,
			EtaMinMinutes: z.EtaMinMinutes,
			EtaMaxMinutes: z.EtaMaxMinutes,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetServiceableStores handles GET /api/v1/zones/:zoneID/stores. The
// optional "at" parameter (RFC 3339) defaults to the current time.
func (s *Server) GetServiceableStores(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	zoneID, err := kernel.UUIDFromString(ctx.Param("zoneID"))
	if err != nil {
		return writeError(ctx, err)
	}

	at := s.clock.Now()
	if raw := ctx.QueryParam("at"); raw != "" {
		at, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, errorResponse{
				Code:    http.StatusBadRequest,
				Message: "at must be an RFC 3339 timestamp",
			})
		}
	}

	query, err := queries.NewGetServiceableStoresQuery(principal.Tenant, zoneID, at)
	if err != nil {
		return writeError(ctx, err)
	}

	stores, err := s.getServiceableStores.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]storeResponse, len(stores))
	for i, st := range stores {
		response[i] = storeResponse{
			ID:              st.ID.String(),
			Name:            st.Name,
			Lat:             st.Location.Lat(),
			Lng:             st.Location.Lng(),
			Rating:          st.Rating,
			PrepTimeMinutes: st.PrepTimeMinutes,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetEligibleRiders handles GET /api/v1/zones/:zoneID/riders.
func (s *Server) GetEligibleRiders(ctx echo.Context) error {
	principal, ok := principalFrom(ctx)
	if !ok {
		return echo.ErrUnauthorized
	}

	zoneID, err := kernel.UUIDFromString(ctx.Param("zoneID"))
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewGetEligibleRidersQuery(principal.Tenant, zoneID)
	if err != nil {
		return writeError(ctx, err)
	}

	riders, err := s.getEligibleRiders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]riderResponse, len(riders))
	for i, r := range riders {
		response[i] = riderResponse{
			ID:   r.ID.String(),
			Name: r.Name,
			Lat:  r.Location.Lat(),
			Lng:  r.Location.Lng(),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

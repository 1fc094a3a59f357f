// Package http exposes the dispatch use cases over a REST API built on
// github.com/labstack/echo/v4. Handlers translate between wire DTOs and
// commands or queries; all business rules stay in the core.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const defaultLeaderboardLimit = 10

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	assignCourierHandler   commands.AssignCourierCommandHandler
	createCourierHandler   commands.CreateCourierCommandHandler
	reviewCourierHandler   commands.ReviewCourierCommandHandler
	setWorkStateHandler    commands.SetCourierWorkStateCommandHandler
	updateLocationHandler  commands.UpdateCourierLocationCommandHandler
	recordRatingHandler    commands.RecordRatingCommandHandler

	// Query handlers
	trackOrderHandler  queries.TrackOrderQueryHandler
	leaderboardHandler queries.CourierLeaderboardQueryHandler
}

// NewServer creates an HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	createCourierHandler commands.CreateCourierCommandHandler,
	reviewCourierHandler commands.ReviewCourierCommandHandler,
	setWorkStateHandler commands.SetCourierWorkStateCommandHandler,
	updateLocationHandler commands.UpdateCourierLocationCommandHandler,
	recordRatingHandler commands.RecordRatingCommandHandler,
	trackOrderHandler queries.TrackOrderQueryHandler,
	leaderboardHandler queries.CourierLeaderboardQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:     createOrderHandler,
		transitionOrderHandler: transitionOrderHandler,
		assignCourierHandler:   assignCourierHandler,
		createCourierHandler:   createCourierHandler,
		reviewCourierHandler:   reviewCourierHandler,
		setWorkStateHandler:    setWorkStateHandler,
		updateLocationHandler:  updateLocationHandler,
		recordRatingHandler:    recordRatingHandler,
		trackOrderHandler:      trackOrderHandler,
		leaderboardHandler:     leaderboardHandler,
	}
}

// RegisterRoutes mounts all endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/transitions", s.TransitionOrder)
	api.POST("/orders/:id/assign", s.AssignCourier)
	api.GET("/orders/track/:code", s.TrackOrder)

	api.POST("/couriers", s.RegisterCourier)
	api.POST("/couriers/:id/review", s.ReviewCourier)
	api.PUT("/couriers/:id/work-state", s.SetWorkState)
	api.PUT("/couriers/:id/location", s.UpdateLocation)
	api.POST("/couriers/:id/ratings", s.RecordRating)
	api.GET("/couriers/leaderboard", s.Leaderboard)
}

// CreateOrder handles POST /api/v1/orders - quotes and opens a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return badRequest(ctx, "Invalid customer id: "+err.Error())
	}

	pickup, err := kernel.NewGeoPoint(req.Pickup.Latitude, req.Pickup.Longitude)
	if err != nil {
		return badRequest(ctx, "Invalid pickup: "+err.Error())
	}
	dropoff, err := kernel.NewGeoPoint(req.Dropoff.Latitude, req.Dropoff.Longitude)
	if err != nil {
		return badRequest(ctx, "Invalid dropoff: "+err.Error())
	}

	packageSize, err := order.PackageSizeFromString(req.PackageSize)
	if err != nil {
		return badRequest(ctx, "Invalid package size: "+err.Error())
	}
	urgency, err := order.UrgencyFromString(req.Urgency)
	if err != nil {
		return badRequest(ctx, "Invalid urgency: "+err.Error())
	}
	riskClass, err := order.RiskClassFromString(req.RiskClass)
	if err != nil {
		return badRequest(ctx, "Invalid risk class: "+err.Error())
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		customerID,
		pickup,
		dropoff,
		packageSize,
		req.WeightKg,
		urgency,
		riskClass,
		req.InsuranceValue,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	// Best-effort synchronous allocation. Any failure leaves the order
	// pending for the sweep, so the outcome is not part of the response.
	if assignCmd, cmdErr := commands.NewAssignCourierCommandForOrder(created.ID()); cmdErr == nil {
		_ = s.assignCourierHandler.Handle(ctx.Request().Context(), assignCmd)
	}

	price := created.Price()
	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		OrderID:          created.ID().String(),
		TrackingCode:     created.TrackingCode(),
		Status:           created.Status().String(),
		VerificationCode: created.VerificationCode(),
		Price: PriceBreakdown{
			DistanceKm:        price.DistanceKm,
			DistanceCost:      price.DistanceCost,
			SizeMultiplier:    price.SizeMultiplier,
			UrgencyMultiplier: price.UrgencyMultiplier,
			RiskMultiplier:    price.RiskMultiplier,
			WeightSurcharge:   price.WeightSurcharge,
			InsuranceFee:      price.InsuranceFee,
			Total:             price.Total,
		},
	})
}

// TransitionOrder handles POST /api/v1/orders/:id/transitions - drives one
// lifecycle transition on behalf of an actor.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	var req TransitionOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actor, target, meta, err := decodeTransition(req)
	if err != nil {
		return badRequest(ctx, "Invalid transition: "+err.Error())
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, actor, target, meta)
	if err != nil {
		return badRequest(ctx, "Invalid transition: "+err.Error())
	}

	updated, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}

// AssignCourier handles POST /api/v1/orders/:id/assign - runs an allocation
// pass for one specific order.
func (s *Server) AssignCourier(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	cmd, err := commands.NewAssignCourierCommandForOrder(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid order id: "+err.Error())
	}

	if err := s.assignCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TrackOrder handles GET /api/v1/orders/track/:code - the public tracking
// lookup.
func (s *Server) TrackOrder(ctx echo.Context) error {
	query, err := queries.NewTrackOrderQuery(ctx.Param("code"))
	if err != nil {
		return badRequest(ctx, "Invalid tracking code: "+err.Error())
	}

	view, err := s.trackOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	history := make([]TrackOrderHistoryEntry, len(view.History))
	for i, entry := range view.History {
		history[i] = TrackOrderHistoryEntry{
			From:      entry.From,
			To:        entry.To,
			ActorRole: entry.ActorRole,
			Note:      entry.Note,
			At:        entry.At,
		}
	}

	var courierID *string
	if view.CourierID != nil {
		id := view.CourierID.String()
		courierID = &id
	}

	return ctx.JSON(http.StatusOK, TrackOrderResponse{
		TrackingCode:        view.TrackingCode,
		Status:              view.Status,
		CourierID:           courierID,
		PriceTotal:          view.PriceTotal,
		EstimatedPickupAt:   view.EstimatedPickupAt,
		EstimatedDeliveryAt: view.EstimatedDeliveryAt,
		ActualPickupAt:      view.ActualPickupAt,
		ActualDeliveryAt:    view.ActualDeliveryAt,
		History:             history,
	})
}

// RegisterCourier handles POST /api/v1/couriers - registers a courier
// pending vetting.
func (s *Server) RegisterCourier(ctx echo.Context) error {
	var req RegisterCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	vehicleClass, err := courier.VehicleClassFromString(req.VehicleClass)
	if err != nil {
		return badRequest(ctx, "Invalid vehicle class: "+err.Error())
	}

	courierID := kernel.NewUUID()
	cmd, err := commands.NewCreateCourierCommand(courierID, req.Name, vehicleClass)
	if err != nil {
		return badRequest(ctx, "Invalid courier data: "+err.Error())
	}

	if err := s.createCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, RegisterCourierResponse{
		CourierID: courierID.String(),
		Status:    courier.OnboardingPending.String(),
	})
}

// ReviewCourier handles POST /api/v1/couriers/:id/review - applies the
// onboarding decision.
func (s *Server) ReviewCourier(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid courier id: "+err.Error())
	}

	var req ReviewCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReviewCourierCommand(courierID, req.Approved)
	if err != nil {
		return badRequest(ctx, "Invalid review: "+err.Error())
	}

	if err := s.reviewCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SetWorkState handles PUT /api/v1/couriers/:id/work-state - flips the
// online and availability flags.
func (s *Server) SetWorkState(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid courier id: "+err.Error())
	}

	var req WorkStateRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetCourierWorkStateCommand(courierID, req.Online, req.Available)
	if err != nil {
		return badRequest(ctx, "Invalid work state: "+err.Error())
	}

	if err := s.setWorkStateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateLocation handles PUT /api/v1/couriers/:id/location - records the
// courier's position.
func (s *Server) UpdateLocation(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid courier id: "+err.Error())
	}

	var req LocationRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	position, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return badRequest(ctx, "Invalid position: "+err.Error())
	}

	cmd, err := commands.NewUpdateCourierLocationCommand(courierID, position)
	if err != nil {
		return badRequest(ctx, "Invalid position: "+err.Error())
	}

	if err := s.updateLocationHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RecordRating handles POST /api/v1/couriers/:id/ratings - records a
// customer rating.
func (s *Server) RecordRating(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid courier id: "+err.Error())
	}

	var req RatingRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewRecordRatingCommand(courierID, req.Rating)
	if err != nil {
		return badRequest(ctx, "Invalid rating: "+err.Error())
	}

	if err := s.recordRatingHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusAccepted)
}

// Leaderboard handles GET /api/v1/couriers/leaderboard - the approved
// couriers ranked by performance index.
func (s *Server) Leaderboard(ctx echo.Context) error {
	limit := defaultLeaderboardLimit
	if raw := ctx.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "Invalid limit: "+err.Error())
		}
		limit = parsed
	}

	query, err := queries.NewCourierLeaderboardQuery(limit)
	if err != nil {
		return badRequest(ctx, "Invalid limit: "+err.Error())
	}

	ranked, err := s.leaderboardHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]LeaderboardEntry, len(ranked))
	for i, entry := range ranked {
		response[i] = LeaderboardEntry{
			CourierID:           entry.ID.String(),
			Name:                entry.Name,
			Rating:              entry.Rating,
			CompletedDeliveries: entry.CompletedDeliveries,
			PerformanceIndex:    entry.PerformanceIndex,
			Tier:                string(entry.Tier),
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// decodeTransition maps the wire transition request onto domain values.
func decodeTransition(req TransitionOrderRequest) (order.Actor, order.Status, order.TransitionMeta, error) {
	role, err := order.RoleFromString(req.ActorRole)
	if err != nil {
		return order.Actor{}, 0, order.TransitionMeta{}, err
	}

	// Admins may act without an identity; the engine itself transitions
	// orders this way.
	var actor order.Actor
	if role == order.RoleAdmin && req.ActorID == "" {
		actor = order.SystemActor()
	} else {
		actorID, err := kernel.UUIDFromString(req.ActorID)
		if err != nil {
			return order.Actor{}, 0, order.TransitionMeta{}, err
		}
		actor, err = order.NewActor(role, actorID)
		if err != nil {
			return order.Actor{}, 0, order.TransitionMeta{}, err
		}
	}

	target, err := order.StatusFromString(req.Target)
	if err != nil {
		return order.Actor{}, 0, order.TransitionMeta{}, err
	}

	meta := order.TransitionMeta{
		VerificationCode: req.VerificationCode,
		Note:             req.Note,
	}
	if req.Proof != nil {
		proof := order.ProofOfDelivery{
			SignatureRef: req.Proof.SignatureRef,
			PhotoRef:     req.Proof.PhotoRef,
		}
		if req.Proof.RecipientID != "" {
			recipientID, err := kernel.UUIDFromString(req.Proof.RecipientID)
			if err != nil {
				return order.Actor{}, 0, order.TransitionMeta{}, err
			}
			proof.RecipientID = &recipientID
		}
		meta.Proof = proof
	}

	return actor, target, meta, nil
}

func toOrderResponse(o *order.Order) OrderResponse {
	var courierID *string
	if o.Courier() != nil {
		id := o.Courier().String()
		courierID = &id
	}

	return OrderResponse{
		OrderID:             o.ID().String(),
		TrackingCode:        o.TrackingCode(),
		Status:              o.Status().String(),
		CourierID:           courierID,
		EstimatedPickupAt:   o.EstimatedPickupAt(),
		EstimatedDeliveryAt: o.EstimatedDeliveryAt(),
		ActualPickupAt:      o.ActualPickupAt(),
		ActualDeliveryAt:    o.ActualDeliveryAt(),
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// respondError maps domain and application errors onto HTTP statuses. The
// raw error text is surfaced: these messages are written for API consumers
// and carry no internals.
func respondError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, errs.ErrObjectNotFound),
		errors.Is(err, commands.ErrNoOrderFound):
		status = http.StatusNotFound
	case errors.Is(err, order.ErrUnauthorized):
		status = http.StatusForbidden
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, ports.ErrStaleWrite),
		errors.Is(err, services.ErrNoCandidateCourier),
		errors.Is(err, courier.ErrCourierNotApproved),
		errors.Is(err, courier.ErrOnboardingAlreadyDecided):
		status = http.StatusConflict
	case errors.Is(err, order.ErrDeliveryNotVerified),
		errors.Is(err, order.ErrRecipientVerificationRequired):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusBadRequest
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}

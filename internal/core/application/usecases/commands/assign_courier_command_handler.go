package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrNoOrderFound is returned when no pending order awaits allocation.
	ErrNoOrderFound = errors.New("no order found")
)

// Schedule estimation constants. The promise made at allocation assumes the
// courier rides to the pickup point and on to the drop-off point at an
// average urban speed, plus a fixed handling window at the pickup.
const (
	averageSpeedKmPerHour = 30.0
	handlingTime          = 15 * time.Minute
)

// AssignCourierCommandHandler orchestrates one allocation pass: it loads the
// target order, snapshots the candidate couriers, lets the allocation engine
// pick the best match and atomically claims the order for it.
//
// The claim is a conditional write on the order row (expected prior status
// pending). Scoring holds no locks, so a concurrent transition can win the
// race; the loser surfaces ports.ErrStaleWrite and the sweep simply retries
// later.
type AssignCourierCommandHandler struct {
	uowFactory UoWFactory
	allocation services.AllocationEngine
	locations  ports.LocationStore
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewAssignCourierCommandHandler creates a handler for allocation passes.
func NewAssignCourierCommandHandler(
	uowFactory UoWFactory,
	allocation services.AllocationEngine,
	locations ports.LocationStore,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{
		uowFactory: uowFactory,
		allocation: allocation,
		locations:  locations,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes one allocation pass.
// Returns ErrNoOrderFound when nothing is pending, and
// services.ErrNoCandidateCourier when no courier qualifies; both leave the
// order untouched.
func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	var pending *order.Order
	var err error
	if id := cmd.OrderID(); id != nil {
		pending, err = ordersRepo.Get(ctx, *id)
	} else {
		pending, err = ordersRepo.GetFirstInPendingStatus(ctx)
	}
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoOrderFound
	}
	if err != nil {
		return err
	}
	if pending.Status() != order.StatusPending {
		return order.NewInvalidTransitionError(pending.Status(), order.StatusAssigned)
	}

	candidates, err := uow.CourierRepository().GetAllAvailable(ctx)
	if err != nil {
		return err
	}
	h.refreshLocations(ctx, candidates)

	match, err := h.allocation.BestMatch(pending.Pickup(), pending.PackageSize(), candidates)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	pickupETA, deliveryETA := estimateSchedule(now, match.DistanceKm,
		pending.Pickup().DistanceKm(pending.Dropoff()))

	courierID := match.Courier.ID()
	err = pending.Transition(order.SystemActor(), order.StatusAssigned, order.TransitionMeta{
		CourierID:           &courierID,
		EstimatedPickupAt:   &pickupETA,
		EstimatedDeliveryAt: &deliveryETA,
	}, now)
	if err != nil {
		return err
	}

	if err = ordersRepo.Update(ctx, pending, order.StatusPending); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.publisher, h.logger, pending)

	return nil
}

// refreshLocations overlays each candidate's last known position with the
// latest read from the low-latency location store, so scoring works on where
// couriers are now rather than where the last row write left them. A store
// miss or read failure keeps the row position; the store is an overlay, not
// the source of truth.
func (h AssignCourierCommandHandler) refreshLocations(ctx context.Context, candidates []*courier.Courier) {
	for _, candidate := range candidates {
		position, found, err := h.locations.Get(ctx, candidate.ID())
		if err != nil {
			h.logger.WarnContext(ctx, "failed to read courier position from location store",
				"courier_id", candidate.ID().String(), "error", err)
			continue
		}
		if !found {
			continue
		}
		if err = candidate.UpdateLocation(position); err != nil {
			h.logger.WarnContext(ctx, "location store returned an unusable position",
				"courier_id", candidate.ID().String(), "error", err)
		}
	}
}

// estimateSchedule derives the pickup and delivery promises from the
// courier-to-pickup and pickup-to-dropoff distances.
func estimateSchedule(now time.Time, toPickupKm, toDropoffKm float64) (time.Time, time.Time) {
	toPickup := time.Duration(toPickupKm / averageSpeedKmPerHour * float64(time.Hour))
	toDropoff := time.Duration(toDropoffKm / averageSpeedKmPerHour * float64(time.Hour))

	pickupETA := now.Add(toPickup).Add(handlingTime)
	return pickupETA, pickupETA.Add(toDropoff)
}

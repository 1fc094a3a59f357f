package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/ports"
)

// UpdateCourierLocationCommandHandler records courier positions. Location
// updates are high-frequency independent writes: the position lands in the
// low-latency store first, then on the courier row used by allocation
// snapshots. The two may briefly disagree, which allocation tolerates.
type UpdateCourierLocationCommandHandler struct {
	uowFactory    CourierUoWFactory
	locationStore ports.LocationStore
	logger        *slog.Logger
}

// NewUpdateCourierLocationCommandHandler creates a handler for location
// updates.
func NewUpdateCourierLocationCommandHandler(
	uowFactory CourierUoWFactory,
	locationStore ports.LocationStore,
	logger *slog.Logger,
) UpdateCourierLocationCommandHandler {
	return UpdateCourierLocationCommandHandler{
		uowFactory:    uowFactory,
		locationStore: locationStore,
		logger:        logger,
	}
}

// Handle processes the location update command.
func (h UpdateCourierLocationCommandHandler) Handle(ctx context.Context, cmd UpdateCourierLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.locationStore.Set(ctx, cmd.CourierID(), cmd.Position()); err != nil {
		// The durable row below is the fallback source, so a cache miss
		// is not fatal.
		h.logger.WarnContext(ctx, "failed to cache courier position",
			slog.String("courier_id", cmd.CourierID().String()),
			slog.String("error", err.Error()),
		)
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	located, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = located.UpdateLocation(cmd.Position()); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, located); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

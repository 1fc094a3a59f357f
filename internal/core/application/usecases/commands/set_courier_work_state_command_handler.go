package commands

import (
	"context"
)

// SetCourierWorkStateCommandHandler applies shift and availability changes.
// Going offline implicitly withdraws availability; the aggregate enforces
// that only approved couriers change work state.
type SetCourierWorkStateCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewSetCourierWorkStateCommandHandler creates a handler for work state
// changes.
func NewSetCourierWorkStateCommandHandler(uowFactory CourierUoWFactory) SetCourierWorkStateCommandHandler {
	return SetCourierWorkStateCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the work state command.
func (h SetCourierWorkStateCommandHandler) Handle(ctx context.Context, cmd SetCourierWorkStateCommand) error {
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

	courierRepo := uow.CourierRepository()
	updated, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if err = updated.SetOnline(cmd.Online()); err != nil {
		return err
	}
	if cmd.Online() {
		if err = updated.SetAvailability(cmd.Available()); err != nil {
			return err
		}
	}

	if err = courierRepo.Update(ctx, updated); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

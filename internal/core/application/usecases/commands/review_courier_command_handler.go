package commands

import (
	"context"
)

// ReviewCourierCommandHandler concludes courier vetting.
type ReviewCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewReviewCourierCommandHandler creates a handler for onboarding decisions.
func NewReviewCourierCommandHandler(uowFactory CourierUoWFactory) ReviewCourierCommandHandler {
	return ReviewCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the onboarding decision to the courier.
func (h ReviewCourierCommandHandler) Handle(ctx context.Context, cmd ReviewCourierCommand) error {
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
	reviewed, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	if cmd.Approved() {
		err = reviewed.Approve()
	} else {
		err = reviewed.Reject()
	}
	if err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, reviewed); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

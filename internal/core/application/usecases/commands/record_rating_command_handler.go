package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/ports"
)

// RecordRatingCommandHandler persists a customer rating and enqueues the
// scoring pass that will fold it into the courier's service score and
// displayed rating.
type RecordRatingCommandHandler struct {
	uowFactory   CourierUoWFactory
	scoringQueue ports.ScoringQueue
	logger       *slog.Logger
}

// NewRecordRatingCommandHandler creates a handler for rating submissions.
func NewRecordRatingCommandHandler(
	uowFactory CourierUoWFactory,
	scoringQueue ports.ScoringQueue,
	logger *slog.Logger,
) RecordRatingCommandHandler {
	return RecordRatingCommandHandler{
		uowFactory:   uowFactory,
		scoringQueue: scoringQueue,
		logger:       logger,
	}
}

// Handle processes the rating command.
func (h RecordRatingCommandHandler) Handle(ctx context.Context, cmd RecordRatingCommand) error {
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

	// Ensure the courier exists before recording.
	if _, err := courierRepo.Get(ctx, cmd.CourierID()); err != nil {
		return err
	}

	record := courier.RatingRecord{
		Value:   cmd.Rating(),
		RatedAt: time.Now().UTC(),
	}
	if err := courierRepo.AddRating(ctx, cmd.CourierID(), record); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	if err := h.scoringQueue.Enqueue(ctx, cmd.CourierID(), ports.ScoringTriggerRating); err != nil {
		h.logger.WarnContext(ctx, "failed to enqueue scoring pass",
			slog.String("courier_id", cmd.CourierID().String()),
			slog.String("error", err.Error()),
		)
	}

	return nil
}

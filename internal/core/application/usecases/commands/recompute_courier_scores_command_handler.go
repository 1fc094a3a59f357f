package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// RecomputeCourierScoresCommandHandler runs one scoring pass: it assembles
// the courier's history, recomputes the performance scores and the displayed
// rating, persists them and publishes the scores-updated event after commit.
type RecomputeCourierScoresCommandHandler struct {
	uowFactory  CourierUoWFactory
	performance services.PerformanceCalculator
	publisher   ports.EventPublisher
	logger      *slog.Logger
}

// NewRecomputeCourierScoresCommandHandler creates a handler for scoring
// passes.
func NewRecomputeCourierScoresCommandHandler(
	uowFactory CourierUoWFactory,
	performance services.PerformanceCalculator,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) RecomputeCourierScoresCommandHandler {
	return RecomputeCourierScoresCommandHandler{
		uowFactory:  uowFactory,
		performance: performance,
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle processes the scoring pass.
func (h RecomputeCourierScoresCommandHandler) Handle(ctx context.Context, cmd RecomputeCourierScoresCommand) error {
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
	scored, err := courierRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	history, err := courierRepo.GetHistory(ctx, cmd.CourierID())
	if err != nil {
		return err
	}

	scores, newRating, err := h.performance.Calculate(history, scored.Rating())
	if err != nil {
		return err
	}

	if err = scored.ApplyScores(scores, newRating); err != nil {
		return err
	}

	if err = courierRepo.Update(ctx, scored); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishEvents(ctx, h.publisher, h.logger, scored)

	return nil
}

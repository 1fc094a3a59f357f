package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// TransitionOrderCommandHandler drives one order lifecycle transition. It
// owns the transaction and the concurrency discipline: the order is written
// back conditionally on the status it was loaded with, so of two concurrent
// transitions exactly one commits and the loser observes
// ports.ErrStaleWrite.
//
// A transition to delivered additionally credits the courier's lifetime
// delivery counter and enqueues an asynchronous scoring pass; the transition
// itself never blocks on the recomputation.
type TransitionOrderCommandHandler struct {
	uowFactory   UoWFactory
	publisher    ports.EventPublisher
	scoringQueue ports.ScoringQueue
	logger       *slog.Logger
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
func NewTransitionOrderCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	scoringQueue ports.ScoringQueue,
	logger *slog.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory:   uowFactory,
		publisher:    publisher,
		scoringQueue: scoringQueue,
		logger:       logger,
	}
}

// Handle processes the transition command and returns the updated order.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()
	target, err := ordersRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	priorStatus := target.Status()
	if err = target.Transition(cmd.Actor(), cmd.Target(), cmd.Meta(), time.Now().UTC()); err != nil {
		return nil, err
	}

	if err = ordersRepo.Update(ctx, target, priorStatus); err != nil {
		return nil, err
	}

	if cmd.Target() == order.StatusDelivered && target.Courier() != nil {
		courierRepo := uow.CourierRepository()
		deliveredBy, courierErr := courierRepo.Get(ctx, *target.Courier())
		if courierErr != nil {
			return nil, courierErr
		}
		deliveredBy.RecordCompletedDelivery()
		if courierErr = courierRepo.Update(ctx, deliveredBy); courierErr != nil {
			return nil, courierErr
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishEvents(ctx, h.publisher, h.logger, target)

	if cmd.Target() == order.StatusDelivered && target.Courier() != nil {
		if err = h.scoringQueue.Enqueue(ctx, *target.Courier(), ports.ScoringTriggerDelivery); err != nil {
			h.logger.WarnContext(ctx, "failed to enqueue scoring pass",
				slog.String("courier_id", target.Courier().String()),
				slog.String("error", err.Error()),
			)
		}
	}

	return target, nil
}

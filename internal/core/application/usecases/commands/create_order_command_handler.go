package commands

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation:
// it quotes the price, generates the tracking and handover codes, opens the
// order in the pending status and publishes the creation event after commit.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	pricing    services.PricingEngine
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation
// operations.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	pricing services.PricingEngine,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		pricing:    pricing,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle processes the order creation command and returns the created order,
// including the quoted price breakdown surfaced to the payer.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	price, err := h.pricing.Calculate(
		cmd.Pickup().DistanceKm(cmd.Dropoff()),
		cmd.PackageSize(),
		cmd.Urgency(),
		cmd.RiskClass(),
		cmd.WeightKg(),
		cmd.InsuranceValue(),
	)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	trackingCode, err := generateTrackingCode(now)
	if err != nil {
		return nil, err
	}
	verificationCode, err := generateVerificationCode()
	if err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(), trackingCode, cmd.CustomerID(),
		cmd.Pickup(), cmd.Dropoff(),
		cmd.PackageSize(), cmd.WeightKg(), cmd.Urgency(), cmd.RiskClass(),
		cmd.InsuranceValue(), price, verificationCode, now,
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishEvents(ctx, h.publisher, h.logger, newOrder)

	return newOrder, nil
}

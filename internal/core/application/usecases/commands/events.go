package commands

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// eventSource is implemented by aggregates that accumulate domain events.
type eventSource interface {
	Events() []kernel.DomainEvent
	ClearEvents()
}

// publishEvents drains the aggregate's events and hands them to the
// publisher. It runs after the owning transaction committed; a failed
// publish is logged and never fails the command.
func publishEvents(ctx context.Context, publisher ports.EventPublisher, logger *slog.Logger, source eventSource) {
	events := source.Events()
	if len(events) == 0 {
		return
	}
	source.ClearEvents()

	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.WarnContext(ctx, "failed to publish domain events",
			slog.Int("count", len(events)),
			slog.String("error", err.Error()),
		)
	}
}

package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// EventPublisher delivers domain events to the outside world after the
// owning transaction committed. Publishing is best effort: a failed publish
// is logged by the caller and never fails the command that raised the event.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}

package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// ScoringTrigger names what caused a scoring pass to be requested.
type ScoringTrigger string

const (
	// ScoringTriggerDelivery is enqueued after a delivery completes.
	ScoringTriggerDelivery ScoringTrigger = "delivery"

	// ScoringTriggerRating is enqueued after a customer rating arrives.
	ScoringTriggerRating ScoringTrigger = "rating"
)

// ScoringQueue decouples performance recomputation from the transition that
// triggers it. Enqueue must not block on the recomputation itself; the
// recompute is a full pass over history, so at-least-once delivery with
// idempotent processing is acceptable.
type ScoringQueue interface {
	Enqueue(ctx context.Context, courierID kernel.UUID, trigger ScoringTrigger) error
}

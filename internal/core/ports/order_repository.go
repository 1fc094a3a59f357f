package ports

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// ErrStaleWrite is returned by OrderRepository.Update when the stored status
// no longer matches the expected prior status: a concurrent transition won
// the race. The caller should reload the order and re-decide.
var ErrStaleWrite = errors.New("order was modified concurrently")

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// expectedPriorStatus is the status the order held when it was
	// loaded; the write fails with ErrStaleWrite if the stored status
	// no longer matches, so two concurrent transitions can never both
	// commit.
	Update(ctx context.Context, aggregate *order.Order, expectedPriorStatus order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetByTrackingCode retrieves an order by its customer-facing
	// tracking code.
	GetByTrackingCode(ctx context.Context, trackingCode string) (*order.Order, error)

	// GetFirstInPendingStatus retrieves the oldest order awaiting
	// allocation. Used by the assignment sweep.
	GetFirstInPendingStatus(ctx context.Context) (*order.Order, error)
}

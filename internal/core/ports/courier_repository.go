package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierRepository defines the persistence contract for courier aggregates
// and their scoring inputs.
type CourierRepository interface {
	// Add persists a new courier aggregate to storage.
	Add(ctx context.Context, aggregate *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, aggregate *courier.Courier) error

	// Get retrieves a courier aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// GetAllAvailable retrieves the allocation candidate snapshot:
	// approved couriers that are on shift and accepting orders.
	GetAllAvailable(ctx context.Context) ([]*courier.Courier, error)

	// GetHistory assembles the scoring input for one courier: its
	// delivered orders and most recent ratings.
	GetHistory(ctx context.Context, id kernel.UUID) (courier.History, error)

	// AddRating records one customer rating of a courier.
	AddRating(ctx context.Context, id kernel.UUID, rating courier.RatingRecord) error
}

package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
)

// LocationStore is the low-latency store for courier positions. Location
// updates are high-frequency independent writes; reads during allocation
// scoring may be a few seconds stale, which is an accepted tolerance.
type LocationStore interface {
	// Set records a courier's latest position.
	Set(ctx context.Context, courierID kernel.UUID, position kernel.GeoPoint) error

	// Get returns a courier's last known position. The second return
	// value is false when no position was ever recorded.
	Get(ctx context.Context, courierID kernel.UUID) (kernel.GeoPoint, bool, error)
}

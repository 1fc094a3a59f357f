package order

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// HistoryEntry is one audit record in an order's status history. Entries are
// append-only and their timestamps never decrease within an order.
type HistoryEntry struct {
	// From is the status the order left. For the creation entry it is
	// StatusUnknown.
	From Status

	// To is the status the order entered.
	To Status

	// ActorRole identifies who drove the transition.
	ActorRole Role

	// ActorID is the identity of the acting party, when one exists.
	// System-driven transitions leave it nil.
	ActorID *kernel.UUID

	// Note is an optional free-form annotation, such as a cancellation
	// or failure reason.
	Note string

	// At is the transition timestamp, clamped so history stays
	// monotonically non-decreasing.
	At time.Time
}

package courier

import "dispatch/internal/core/domain/model/kernel"

// ScoresUpdatedEvent is raised when a scoring pass changes a courier's
// performance scores.
type ScoresUpdatedEvent struct {
	CourierID        kernel.UUID
	PerformanceIndex float64
	Tier             Tier
}

// EventName implements kernel.DomainEvent.
func (ScoresUpdatedEvent) EventName() string { return "courier.scores_updated" }

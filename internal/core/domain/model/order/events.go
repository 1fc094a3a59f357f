package order

import "dispatch/internal/core/domain/model/kernel"

// CreatedEvent is raised when a new order enters the system in the
// pending status.
type CreatedEvent struct {
	OrderID    kernel.UUID
	CustomerID kernel.UUID
	Total      float64
}

// EventName implements kernel.DomainEvent.
func (CreatedEvent) EventName() string { return "order.created" }

// AssignedEvent is raised when a courier is allocated to the order.
type AssignedEvent struct {
	OrderID   kernel.UUID
	CourierID kernel.UUID
}

// EventName implements kernel.DomainEvent.
func (AssignedEvent) EventName() string { return "order.assigned" }

// StatusChangedEvent is raised on every status transition.
type StatusChangedEvent struct {
	OrderID kernel.UUID
	From    Status
	To      Status
}

// EventName implements kernel.DomainEvent.
func (StatusChangedEvent) EventName() string { return "order.status_changed" }

// RejectedByCourierEvent is raised when an assigned courier hands the order
// back to the pending pool.
type RejectedByCourierEvent struct {
	OrderID   kernel.UUID
	CourierID kernel.UUID
}

// EventName implements kernel.DomainEvent.
func (RejectedByCourierEvent) EventName() string { return "order.rejected_by_courier" }

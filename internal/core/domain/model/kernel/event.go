package kernel

// DomainEvent is raised by an aggregate when something business-relevant
// happens to it. Events are accumulated on the aggregate and published
// after the owning transaction commits.
type DomainEvent interface {
	// EventName returns the stable dotted name of the event,
	// for example "order.created".
	EventName() string
}

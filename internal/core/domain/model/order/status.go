package order

import (
	"encoding/json"
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// ErrInvalidTransition is the sentinel for illegal lifecycle transitions.
// Use errors.Is to classify; the concrete InvalidTransitionError carries the
// offending edge.
var ErrInvalidTransition = errors.New("invalid status transition")

// Status represents the lifecycle state of a delivery order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Assigned ──> PickedUp ──> InTransit ──> Delivered
//	   ▲            │            │
//	   └────────────┘            └──────> Delivered
//	 (courier reject)
//
// Cancelled and Failed are terminal failure states reachable from any
// non-terminal status. Delivered, Cancelled and Failed permit no further
// transitions.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status: the order awaits courier allocation.
	StatusPending

	// StatusAssigned indicates a courier has been matched to the order.
	StatusAssigned

	// StatusPickedUp indicates the courier has collected the package.
	StatusPickedUp

	// StatusInTransit indicates the package is on its way to the drop-off point.
	StatusInTransit

	// StatusDelivered is the terminal success state.
	StatusDelivered

	// StatusCancelled is a terminal failure state reached by customer or admin action.
	StatusCancelled

	// StatusFailed is a terminal failure state for undeliverable orders.
	StatusFailed
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusPending:   "pending",
		StatusAssigned:  "assigned",
		StatusPickedUp:  "picked_up",
		StatusInTransit: "in_transit",
		StatusDelivered: "delivered",
		StatusCancelled: "cancelled",
		StatusFailed:    "failed",
	}
}

// getLegalTransitions returns the legal-successor table of the state machine.
// The table is the single source of truth for transition legality; role guards
// and effects are layered on top of it by Order.Transition.
func getLegalTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:   {StatusAssigned, StatusCancelled, StatusFailed},
		StatusAssigned:  {StatusPickedUp, StatusPending, StatusCancelled, StatusFailed},
		StatusPickedUp:  {StatusInTransit, StatusDelivered, StatusCancelled, StatusFailed},
		StatusInTransit: {StatusDelivered, StatusCancelled, StatusFailed},
		StatusDelivered: {},
		StatusCancelled: {},
		StatusFailed:    {},
	}
}

// StatusFromString parses a persisted or user-provided status string.
// Returns an error for unrecognized values, including "unknown".
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is a known lifecycle status.
// StatusUnknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getLegalTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name of the status.
// It implements the fmt.Stringer interface and is safe to call on any
// Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// MarshalJSON serializes the status as its snake_case name, so domain events
// carrying statuses produce readable wire payloads.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	successors, ok := getLegalTransitions()[s]
	return ok && len(successors) == 0
}

// CanTransitionTo reports whether target is a legal successor of the current
// status according to the transition table.
func (s Status) CanTransitionTo(target Status) bool {
	for _, successor := range getLegalTransitions()[s] {
		if successor == target {
			return true
		}
	}
	return false
}

// InvalidTransitionError describes an attempted transition along an edge the
// state machine does not permit. It unwraps to ErrInvalidTransition so callers
// can classify it with errors.Is.
type InvalidTransitionError struct {
	From Status
	To   Status
}

// NewInvalidTransitionError creates an InvalidTransitionError for the given edge.
func NewInvalidTransitionError(from, to Status) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

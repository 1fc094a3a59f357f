package order

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// ErrUnauthorized is the sentinel for transitions attempted by an actor the
// guard does not permit. Use errors.Is to classify; the concrete
// UnauthorizedError names the role and the attempted action.
var ErrUnauthorized = errors.New("actor is not authorized")

// Role is the closed enumeration of actor roles recognized by the transition
// guards. Every guard switches exhaustively over this type so that an
// unhandled role can never slip through authorization.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer is the order owner.
	RoleCustomer

	// RoleCourier is a delivery agent; courier-only transitions additionally
	// require the actor to be the order's assigned courier.
	RoleCourier

	// RoleAdmin is an operator (or the engine itself) and may drive any
	// legal transition.
	RoleAdmin
)

// getRoleStrings returns a map of Role values to their string representations.
func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:  "unknown",
		RoleCustomer: "customer",
		RoleCourier:  "courier",
		RoleAdmin:    "admin",
	}
}

// RoleFromString parses a role string. Returns an error for unrecognized
// values, including "unknown".
func RoleFromString(s string) (Role, error) {
	for role, str := range getRoleStrings() {
		if str == s && role != RoleUnknown {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role",
		fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role is one of the closed set of valid roles.
func (r Role) Validate() error {
	switch r {
	case RoleCustomer, RoleCourier, RoleAdmin:
		return nil
	case RoleUnknown:
		fallthrough
	default:
		return errs.NewValueIsInvalidErrorWithCause("role",
			fmt.Errorf("%d is not a valid role", r))
	}
}

// String returns the lowercase name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Actor identifies who is driving a transition: a role plus, for customers
// and couriers, the identity the guard checks against the order.
// Admin actors may act without an identity (system-driven transitions such as
// automatic assignment).
type Actor struct {
	role Role
	id   kernel.UUID
}

// NewActor creates an actor with the given role and identity.
// Customers and couriers must carry a valid identity; admins may omit it.
func NewActor(role Role, id kernel.UUID) (Actor, error) {
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	if role != RoleAdmin {
		if err := id.Validate(); err != nil {
			return Actor{}, err
		}
	}
	return Actor{role: role, id: id}, nil
}

// SystemActor returns the identity-less admin actor used by the engine for
// automated transitions (allocation, sweeps).
func SystemActor() Actor {
	return Actor{role: RoleAdmin}
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// ID returns the actor's identity. For system actors this is the zero UUID.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Validate checks that the actor carries a valid role, and an identity when
// the role requires one.
func (a Actor) Validate() error {
	if err := a.role.Validate(); err != nil {
		return err
	}
	if a.role != RoleAdmin {
		return a.id.Validate()
	}
	return nil
}

// UnauthorizedError describes a transition attempt by an actor the guard
// rejected. It unwraps to ErrUnauthorized.
type UnauthorizedError struct {
	Role   Role
	Action string
}

// NewUnauthorizedError creates an UnauthorizedError for the given role and action.
func NewUnauthorizedError(role Role, action string) *UnauthorizedError {
	return &UnauthorizedError{Role: role, Action: action}
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("%s: role %s may not %s", ErrUnauthorized, e.Role, e.Action)
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

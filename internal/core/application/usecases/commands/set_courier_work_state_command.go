package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrSetCourierWorkStateCommandIsNotConstructed = errors.New(
	"SetCourierWorkStateCommand must be created via NewSetCourierWorkStateCommand constructor",
)

// SetCourierWorkStateCommand toggles a courier's shift and availability
// flags.
type SetCourierWorkStateCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	online    bool
	available bool

	guard guard.ConstructorGuard
}

// NewSetCourierWorkStateCommand creates a command setting a courier's work
// state.
func NewSetCourierWorkStateCommand(courierID kernel.UUID, online, available bool) (SetCourierWorkStateCommand, error) {
	cmd := SetCourierWorkStateCommand{
		online:    online,
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	if err := cmd.setCourierID(courierID); err != nil {
		return SetCourierWorkStateCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCourierWorkStateCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierWorkStateCommandIsNotConstructed)
}

// CourierID returns the courier whose work state changes.
func (c SetCourierWorkStateCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Online reports whether the courier's shift should be active.
func (c SetCourierWorkStateCommand) Online() bool {
	return c.online
}

// Available reports whether the courier should accept new orders.
func (c SetCourierWorkStateCommand) Available() bool {
	return c.available
}

func (c *SetCourierWorkStateCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}

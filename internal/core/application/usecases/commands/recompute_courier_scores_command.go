package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRecomputeCourierScoresCommandIsNotConstructed = errors.New(
	"RecomputeCourierScoresCommand must be created via NewRecomputeCourierScoresCommand constructor",
)

// RecomputeCourierScoresCommand requests a full scoring pass over one
// courier's history. The recompute is idempotent, so replaying the command
// is harmless.
type RecomputeCourierScoresCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRecomputeCourierScoresCommand creates a command requesting a scoring
// pass.
func NewRecomputeCourierScoresCommand(courierID kernel.UUID) (RecomputeCourierScoresCommand, error) {
	cmd := RecomputeCourierScoresCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setCourierID(courierID); err != nil {
		return RecomputeCourierScoresCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecomputeCourierScoresCommand) Validate() error {
	return c.guard.Validate(ErrRecomputeCourierScoresCommandIsNotConstructed)
}

// CourierID returns the courier being rescored.
func (c RecomputeCourierScoresCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *RecomputeCourierScoresCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}

package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReviewCourierCommandIsNotConstructed = errors.New(
	"ReviewCourierCommand must be created via NewReviewCourierCommand constructor",
)

// ReviewCourierCommand concludes a courier's vetting with an approval or a
// rejection.
type ReviewCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	approved  bool

	guard guard.ConstructorGuard
}

// NewReviewCourierCommand creates a command deciding a courier's onboarding.
func NewReviewCourierCommand(courierID kernel.UUID, approved bool) (ReviewCourierCommand, error) {
	cmd := ReviewCourierCommand{
		approved: approved,
		guard:    guard.NewConstructorGuard(),
	}

	if err := cmd.setCourierID(courierID); err != nil {
		return ReviewCourierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewCourierCommand) Validate() error {
	return c.guard.Validate(ErrReviewCourierCommandIsNotConstructed)
}

// CourierID returns the courier under review.
func (c ReviewCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Approved reports whether vetting concluded positively.
func (c ReviewCourierCommand) Approved() bool {
	return c.approved
}

func (c *ReviewCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}

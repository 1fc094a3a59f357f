package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRecordRatingCommandIsNotConstructed = errors.New(
	"RecordRatingCommand must be created via NewRecordRatingCommand constructor",
)

// RecordRatingCommand records one customer rating of a courier on the 1 to 5
// scale.
type RecordRatingCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	rating    int

	guard guard.ConstructorGuard
}

// NewRecordRatingCommand creates a command recording a courier rating.
func NewRecordRatingCommand(courierID kernel.UUID, rating int) (RecordRatingCommand, error) {
	cmd := RecordRatingCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCourierID(courierID),
		cmd.setRating(rating),
	); err != nil {
		return RecordRatingCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordRatingCommand) Validate() error {
	return c.guard.Validate(ErrRecordRatingCommandIsNotConstructed)
}

// CourierID returns the rated courier.
func (c RecordRatingCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Rating returns the star rating.
func (c RecordRatingCommand) Rating() int {
	return c.rating
}

func (c *RecordRatingCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	c.courierID = courierID
	return nil
}

func (c *RecordRatingCommand) setRating(rating int) error {
	if rating < 1 || rating > 5 {
		return errs.NewValueIsOutOfRangeError("rating", rating, 1, 5)
	}
	c.rating = rating
	return nil
}

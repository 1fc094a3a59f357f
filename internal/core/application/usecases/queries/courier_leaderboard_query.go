package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCourierLeaderboardQueryIsNotConstructed = errors.New(
	"CourierLeaderboardQuery must be created via NewCourierLeaderboardQuery constructor",
)

// maxLeaderboardSize bounds how many couriers a single leaderboard request
// may return.
const maxLeaderboardSize = 100

// CourierLeaderboardQuery retrieves the approved couriers ranked by their
// composite performance index.
type CourierLeaderboardQuery struct {
	limit int

	guard guard.ConstructorGuard
}

// NewCourierLeaderboardQuery creates a leaderboard query returning at most
// limit couriers.
func NewCourierLeaderboardQuery(limit int) (CourierLeaderboardQuery, error) {
	if limit < 1 || limit > maxLeaderboardSize {
		return CourierLeaderboardQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, maxLeaderboardSize)
	}

	return CourierLeaderboardQuery{
		limit: limit,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q CourierLeaderboardQuery) Validate() error {
	return q.guard.Validate(ErrCourierLeaderboardQueryIsNotConstructed)
}

// Limit returns the maximum number of couriers to return.
func (q CourierLeaderboardQuery) Limit() int {
	return q.limit
}

// CourierLeaderboardQueryResponse is one ranked courier in the leaderboard
// read model.
type CourierLeaderboardQueryResponse struct {
	ID                  kernel.UUID
	Name                string
	Rating              float64
	CompletedDeliveries int
	PerformanceIndex    float64
	Tier                courier.Tier
}

package queries

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourierLeaderboardQueryHandler ranks approved couriers by performance
// index directly in the database.
type CourierLeaderboardQueryHandler struct {
	db *gorm.DB
}

// NewCourierLeaderboardQueryHandler creates a handler for leaderboard
// queries.
func NewCourierLeaderboardQueryHandler(db *gorm.DB) CourierLeaderboardQueryHandler {
	return CourierLeaderboardQueryHandler{db: db}
}

// Handle executes the leaderboard query. Ties on the index break on the
// displayed rating, then on name for a stable ordering.
func (h CourierLeaderboardQueryHandler) Handle(
	ctx context.Context,
	query CourierLeaderboardQuery,
) ([]CourierLeaderboardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			rating,
			completed_deliveries,
			performance_index
		FROM couriers
		WHERE onboarding = ?
		ORDER BY performance_index DESC, rating DESC, name
		LIMIT ?
	`, int(courier.OnboardingApproved), query.Limit()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leaderboard := make([]CourierLeaderboardQueryResponse, 0, query.Limit())
	for rows.Next() {
		var (
			entry CourierLeaderboardQueryResponse
			id    uuid.UUID
		)

		err = rows.Scan(
			&id,
			&entry.Name,
			&entry.Rating,
			&entry.CompletedDeliveries,
			&entry.PerformanceIndex,
		)
		if err != nil {
			return nil, err
		}

		courierID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.ID = courierID
		entry.Tier = courier.TierForIndex(entry.PerformanceIndex)
		leaderboard = append(leaderboard, entry)
	}

	return leaderboard, rows.Err()
}

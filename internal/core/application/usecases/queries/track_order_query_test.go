package queries_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrackOrderQuery(t *testing.T) {
	t.Run("should construct with a tracking code", func(t *testing.T) {
		query, err := queries.NewTrackOrderQuery("DSP-20260828-4K7MNP")
		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, "DSP-20260828-4K7MNP", query.TrackingCode())
	})

	t.Run("should reject blank tracking code", func(t *testing.T) {
		_, err := queries.NewTrackOrderQuery("")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject unconstructed query", func(t *testing.T) {
		assert.ErrorIs(t,
			queries.TrackOrderQuery{}.Validate(),
			queries.ErrTrackOrderQueryIsNotConstructed,
		)
	})
}

func TestNewCourierLeaderboardQuery(t *testing.T) {
	t.Run("should construct within bounds", func(t *testing.T) {
		query, err := queries.NewCourierLeaderboardQuery(10)
		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, 10, query.Limit())
	})

	t.Run("should reject out of range limits", func(t *testing.T) {
		for _, limit := range []int{0, -1, 101} {
			_, err := queries.NewCourierLeaderboardQuery(limit)
			assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		}
	})

	t.Run("should reject unconstructed query", func(t *testing.T) {
		assert.ErrorIs(t,
			queries.CourierLeaderboardQuery{}.Validate(),
			queries.ErrCourierLeaderboardQueryIsNotConstructed,
		)
	})
}

package courier_test

import (
	"testing"

	"dispatch/internal/core/domain/model/courier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPerformanceScores(t *testing.T) {
	t.Run("should compute the weighted index", func(t *testing.T) {
		scores, err := courier.NewPerformanceScores(0.9, 0.8, 0.7, 1)

		require.NoError(t, err)
		// 100 * (0.40*0.9 + 0.30*0.8 + 0.20*0.7 + 0.10*1.0) = 84.0
		assert.Equal(t, 84.0, scores.Index())
	})

	t.Run("perfect components should yield index 100", func(t *testing.T) {
		scores, err := courier.NewPerformanceScores(1, 1, 1, 1)

		require.NoError(t, err)
		assert.Equal(t, 100.0, scores.Index())
		assert.Equal(t, courier.TierTop, scores.Tier())
	})

	t.Run("should round the index to one decimal place", func(t *testing.T) {
		scores, err := courier.NewPerformanceScores(0.955, 0.875, 0.5, 1)

		require.NoError(t, err)
		// 100 * (0.382 + 0.2625 + 0.1 + 0.1) = 84.45 -> 84.5
		assert.Equal(t, 84.5, scores.Index())
	})

	t.Run("should reject components outside the unit interval", func(t *testing.T) {
		_, err := courier.NewPerformanceScores(1.1, 1, 1, 1)
		require.Error(t, err)

		_, err = courier.NewPerformanceScores(1, -0.1, 1, 1)
		require.Error(t, err)
	})

	t.Run("zero value should fail validation", func(t *testing.T) {
		var scores courier.PerformanceScores

		assert.ErrorIs(t, scores.Validate(), courier.ErrPerformanceScoresAreNotConstructed)
	})
}

func TestDefaultPerformanceScores(t *testing.T) {
	scores := courier.DefaultPerformanceScores()

	require.NoError(t, scores.Validate())
	assert.Equal(t, 1.0, scores.Reliability())
	assert.Equal(t, 1.0, scores.Service())
	assert.Equal(t, 0.5, scores.Efficiency())
	assert.Equal(t, 1.0, scores.Integrity())
	assert.Equal(t, 90.0, scores.Index())
	assert.Equal(t, courier.TierElite, scores.Tier())
}

func TestPerformanceScores_Tier(t *testing.T) {
	cases := []struct {
		reliability, service, efficiency, integrity float64
		expected                                    courier.Tier
	}{
		{1, 1, 1, 1, courier.TierTop},                  // 100.0
		{1, 1, 0.75, 1, courier.TierTop},               // 95.0, boundary
		{1, 1, 0.5, 1, courier.TierElite},              // 90.0
		{0.85, 0.85, 0.85, 0.85, courier.TierElite},    // 85.0, boundary
		{0.8, 0.8, 0.8, 0.8, courier.TierProfessional}, // 80.0
		{0.7, 0.7, 0.7, 0.7, courier.TierProfessional}, // 70.0, boundary
		{0.5, 0.5, 0.5, 0.5, courier.TierStandard},     // 50.0
	}

	for _, c := range cases {
		scores, err := courier.NewPerformanceScores(c.reliability, c.service, c.efficiency, c.integrity)

		require.NoError(t, err)
		assert.Equal(t, c.expected, scores.Tier(), "index %v", scores.Index())
	}
}

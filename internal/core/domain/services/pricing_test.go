package services_test

import (
	"testing"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestPricingEngine_Calculate(t *testing.T) {
	engine := services.NewPricingEngine()

	t.Run("short standard delivery should hit the minimum charge", func(t *testing.T) {
		breakdown, err := engine.Calculate(
			5, order.PackageSizeSmall, order.UrgencyStandard,
			order.RiskClassStandard, 0, 0,
		)

		require.NoError(t, err)
		assert.Equal(t, 45.00, breakdown.DistanceCost)
		assert.Equal(t, 1.0, breakdown.SizeMultiplier)
		assert.Equal(t, 1.0, breakdown.UrgencyMultiplier)
		assert.Equal(t, 1.0, breakdown.RiskMultiplier)
		assert.Equal(t, 0.0, breakdown.WeightSurcharge)
		assert.Equal(t, 0.0, breakdown.InsuranceFee)
		assert.Equal(t, 45.00, breakdown.Total)
	})

	t.Run("long valuable express delivery should stack every component", func(t *testing.T) {
		// 50×4 + 10×3 = 230, ×1.4 ×1.5 ×1.5 = 724.50,
		// + (15−10)×5 = 25, + max(2000×0.015, 10) = 30.
		breakdown, err := engine.Calculate(
			60, order.PackageSizeLarge, order.UrgencyExpress,
			order.RiskClassValuable, 15, 2000,
		)

		require.NoError(t, err)
		assert.Equal(t, 230.00, breakdown.DistanceCost)
		assert.Equal(t, 1.4, breakdown.SizeMultiplier)
		assert.Equal(t, 1.5, breakdown.UrgencyMultiplier)
		assert.Equal(t, 1.5, breakdown.RiskMultiplier)
		assert.Equal(t, 25.00, breakdown.WeightSurcharge)
		assert.Equal(t, 30.00, breakdown.InsuranceFee)
		assert.Equal(t, 779.50, breakdown.Total)
	})

	t.Run("small insurance values should pay the minimum fee", func(t *testing.T) {
		breakdown, err := engine.Calculate(
			5, order.PackageSizeSmall, order.UrgencyStandard,
			order.RiskClassStandard, 0, 100,
		)

		require.NoError(t, err)
		assert.Equal(t, 10.00, breakdown.InsuranceFee)
		assert.Equal(t, 55.00, breakdown.Total)
	})

	t.Run("weight within the allowance should cost nothing extra", func(t *testing.T) {
		breakdown, err := engine.Calculate(
			5, order.PackageSizeSmall, order.UrgencyStandard,
			order.RiskClassStandard, 10, 0,
		)

		require.NoError(t, err)
		assert.Equal(t, 0.0, breakdown.WeightSurcharge)
	})

	t.Run("economy urgency should discount the distance cost", func(t *testing.T) {
		// 20×4 = 80, ×0.8 = 64.
		breakdown, err := engine.Calculate(
			20, order.PackageSizeSmall, order.UrgencyEconomy,
			order.RiskClassStandard, 0, 0,
		)

		require.NoError(t, err)
		assert.Equal(t, 64.00, breakdown.Total)
	})

	t.Run("should reject negative inputs", func(t *testing.T) {
		_, err := engine.Calculate(-1, order.PackageSizeSmall,
			order.UrgencyStandard, order.RiskClassStandard, 0, 0)
		require.Error(t, err)

		_, err = engine.Calculate(5, order.PackageSizeSmall,
			order.UrgencyStandard, order.RiskClassStandard, -1, 0)
		require.Error(t, err)

		_, err = engine.Calculate(5, order.PackageSizeSmall,
			order.UrgencyStandard, order.RiskClassStandard, 0, -1)
		require.Error(t, err)
	})

	t.Run("should reject unknown classification values", func(t *testing.T) {
		_, err := engine.Calculate(5, order.PackageSizeUnknown,
			order.UrgencyStandard, order.RiskClassStandard, 0, 0)
		require.Error(t, err)

		_, err = engine.Calculate(5, order.PackageSizeSmall,
			order.UrgencyUnknown, order.RiskClassStandard, 0, 0)
		require.Error(t, err)

		_, err = engine.Calculate(5, order.PackageSizeSmall,
			order.UrgencyStandard, order.RiskClassUnknown, 0, 0)
		require.Error(t, err)
	})
}

func TestPricingEngine_Properties(t *testing.T) {
	engine := services.NewPricingEngine()

	sizes := []order.PackageSize{
		order.PackageSizeEnvelope, order.PackageSizeSmall, order.PackageSizeMedium,
		order.PackageSizeLarge, order.PackageSizeXLarge, order.PackageSizeCustom,
	}
	urgencies := []order.Urgency{
		order.UrgencyEconomy, order.UrgencyStandard,
		order.UrgencyExpress, order.UrgencySameDay,
	}
	risks := []order.RiskClass{
		order.RiskClassStandard, order.RiskClassLegalDocument, order.RiskClassValuable,
	}

	rapid.Check(t, func(t *rapid.T) {
		distanceKm := rapid.Float64Range(0, 1000).Draw(t, "distanceKm")
		size := rapid.SampledFrom(sizes).Draw(t, "size")
		urgency := rapid.SampledFrom(urgencies).Draw(t, "urgency")
		risk := rapid.SampledFrom(risks).Draw(t, "risk")
		weightKg := rapid.Float64Range(0, 200).Draw(t, "weightKg")
		insuranceValue := rapid.Float64Range(0, 100000).Draw(t, "insuranceValue")

		first, err := engine.Calculate(distanceKm, size, urgency, risk, weightKg, insuranceValue)
		require.NoError(t, err)

		// Deterministic: identical inputs yield an identical breakdown.
		second, err := engine.Calculate(distanceKm, size, urgency, risk, weightKg, insuranceValue)
		require.NoError(t, err)
		require.Equal(t, first, second)

		// The total never drops below the floor times the smallest
		// multiplier combination (economy urgency, 0.8).
		require.GreaterOrEqual(t, first.Total, 36.0)

		// Every component is non-negative.
		require.GreaterOrEqual(t, first.DistanceCost, services.MinimumCharge)
		require.GreaterOrEqual(t, first.WeightSurcharge, 0.0)
		require.GreaterOrEqual(t, first.InsuranceFee, 0.0)

		if insuranceValue > 0 {
			require.GreaterOrEqual(t, first.InsuranceFee, services.MinimumInsuranceFee)
		} else {
			require.Zero(t, first.InsuranceFee)
		}
	})
}

package services

import (
	"math"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// Tariff constants of the pricing engine. Quoted prices are stored on the
// order, so changing these never alters an already-quoted price.
const (
	// BaseRatePerKm applies to the first BaseRateDistanceKm kilometers.
	BaseRatePerKm = 4.00

	// ExtendedRatePerKm applies beyond BaseRateDistanceKm.
	ExtendedRatePerKm = 3.00

	// BaseRateDistanceKm is the distance covered by the base rate.
	BaseRateDistanceKm = 50.0

	// MinimumCharge is the floor of the distance cost.
	MinimumCharge = 45.00

	// FreeWeightAllowanceKg is the weight included in the base price.
	FreeWeightAllowanceKg = 10.0

	// WeightSurchargePerKg is charged per kilogram over the allowance.
	WeightSurchargePerKg = 5.00

	// InsuranceRate is the premium fraction of the declared value.
	InsuranceRate = 0.015

	// MinimumInsuranceFee is the floor of the premium when insurance is
	// requested.
	MinimumInsuranceFee = 10.00
)

func getSizeMultipliers() map[order.PackageSize]float64 {
	return map[order.PackageSize]float64{
		order.PackageSizeEnvelope: 1.0,
		order.PackageSizeSmall:    1.0,
		order.PackageSizeMedium:   1.2,
		order.PackageSizeLarge:    1.4,
		order.PackageSizeXLarge:   1.8,
		order.PackageSizeCustom:   2.0,
	}
}

func getUrgencyMultipliers() map[order.Urgency]float64 {
	return map[order.Urgency]float64{
		order.UrgencyEconomy:  0.8,
		order.UrgencyStandard: 1.0,
		order.UrgencyExpress:  1.5,
		order.UrgencySameDay:  2.5,
	}
}

func getRiskMultipliers() map[order.RiskClass]float64 {
	return map[order.RiskClass]float64{
		order.RiskClassStandard:      1.0,
		order.RiskClassLegalDocument: 1.3,
		order.RiskClassValuable:      1.5,
	}
}

// PricingEngine is a stateless domain service that quotes delivery prices.
//
// The quote is a pure function of its inputs: identical inputs always produce
// an identical breakdown, with no dependency on wall-clock time or external
// configuration beyond the tariff constants above.
type PricingEngine struct{}

// NewPricingEngine creates a new PricingEngine instance.
func NewPricingEngine() PricingEngine {
	return PricingEngine{}
}

// Calculate quotes the price for a prospective delivery and returns the full
// itemized breakdown.
//
// The computation, with every intermediate rounded to two decimal places:
//  1. Distance cost: BaseRatePerKm for the first BaseRateDistanceKm
//     kilometers, ExtendedRatePerKm beyond, floored at MinimumCharge.
//  2. The distance cost is scaled by the size, urgency and risk multipliers.
//  3. Weight over FreeWeightAllowanceKg adds WeightSurchargePerKg per
//     kilogram.
//  4. A declared insurance value adds InsuranceRate of the value, floored at
//     MinimumInsuranceFee; no declared value means no fee.
func (PricingEngine) Calculate(
	distanceKm float64,
	size order.PackageSize,
	urgency order.Urgency,
	risk order.RiskClass,
	weightKg float64,
	insuranceValue float64,
) (order.PriceBreakdown, error) {
	if distanceKm < 0 {
		return order.PriceBreakdown{}, errs.NewValueIsOutOfRangeError(
			"distance", distanceKm, 0.0, math.Inf(1))
	}
	if weightKg < 0 {
		return order.PriceBreakdown{}, errs.NewValueIsOutOfRangeError(
			"weight", weightKg, 0.0, math.Inf(1))
	}
	if insuranceValue < 0 {
		return order.PriceBreakdown{}, errs.NewValueIsOutOfRangeError(
			"insurance value", insuranceValue, 0.0, math.Inf(1))
	}
	if err := size.Validate(); err != nil {
		return order.PriceBreakdown{}, err
	}
	if err := urgency.Validate(); err != nil {
		return order.PriceBreakdown{}, err
	}
	if err := risk.Validate(); err != nil {
		return order.PriceBreakdown{}, err
	}

	baseDistance := math.Min(distanceKm, BaseRateDistanceKm)
	extraDistance := math.Max(0, distanceKm-BaseRateDistanceKm)
	distanceCost := round2(baseDistance*BaseRatePerKm + extraDistance*ExtendedRatePerKm)
	if distanceCost < MinimumCharge {
		distanceCost = MinimumCharge
	}

	sizeMultiplier := getSizeMultipliers()[size]
	urgencyMultiplier := getUrgencyMultipliers()[urgency]
	riskMultiplier := getRiskMultipliers()[risk]

	scaled := round2(distanceCost * sizeMultiplier * urgencyMultiplier * riskMultiplier)

	weightSurcharge := round2(math.Max(0, weightKg-FreeWeightAllowanceKg) * WeightSurchargePerKg)

	var insuranceFee float64
	if insuranceValue > 0 {
		insuranceFee = round2(math.Max(insuranceValue*InsuranceRate, MinimumInsuranceFee))
	}

	return order.PriceBreakdown{
		DistanceKm:        round2(distanceKm),
		DistanceCost:      distanceCost,
		SizeMultiplier:    sizeMultiplier,
		UrgencyMultiplier: urgencyMultiplier,
		RiskMultiplier:    riskMultiplier,
		WeightSurcharge:   weightSurcharge,
		InsuranceFee:      insuranceFee,
		Total:             round2(scaled + weightSurcharge + insuranceFee),
	}, nil
}

// round2 rounds to two decimal places, the resolution of the platform
// currency.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

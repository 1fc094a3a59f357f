package order

// PriceBreakdown itemizes the quoted price of an order. All monetary amounts
// are rounded to two decimal places and expressed in the platform currency.
//
// The breakdown is computed once at order creation and stored with the order,
// so a later tariff change never alters a quoted price.
type PriceBreakdown struct {
	// DistanceKm is the great-circle pickup-to-dropoff distance.
	DistanceKm float64

	// DistanceCost is the per-kilometer cost before multipliers,
	// already floored at the minimum charge.
	DistanceCost float64

	// SizeMultiplier scales the cost by package size class.
	SizeMultiplier float64

	// UrgencyMultiplier scales the cost by delivery speed tier.
	UrgencyMultiplier float64

	// RiskMultiplier scales the cost by handling risk class.
	RiskMultiplier float64

	// WeightSurcharge is the flat surcharge for packages over the
	// free weight allowance.
	WeightSurcharge float64

	// InsuranceFee is the premium charged for the declared value.
	InsuranceFee float64

	// Total is the final amount charged to the customer.
	Total float64
}

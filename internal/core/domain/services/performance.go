package services

import (
	"math"

	"dispatch/internal/core/domain/model/courier"
)

// Scoring constants of the performance calculator.
const (
	// RatingWindowSize bounds how many recent ratings feed the service
	// score and the displayed rating.
	RatingWindowSize = 50

	// EfficiencyTargetDeliveries is the lifetime delivery count at which
	// the efficiency score saturates.
	EfficiencyTargetDeliveries = 500.0
)

// PerformanceCalculator is a stateless domain service that recomputes a
// courier's performance scores from its delivery and rating history. The
// computation is a full recompute, so re-running it for the same history is
// idempotent.
type PerformanceCalculator struct{}

// NewPerformanceCalculator creates a new PerformanceCalculator instance.
func NewPerformanceCalculator() PerformanceCalculator {
	return PerformanceCalculator{}
}

// Calculate derives a fresh score set and the courier's new displayed rating
// from its history.
//
//   - Reliability is the on-time fraction of deliveries that carry both an
//     estimate and an actual time; it defaults to 1.0 without qualifying
//     history.
//   - Service is the average of the most recent RatingWindowSize ratings
//     normalized to [0, 1]; that same raw average becomes the displayed
//     rating. Without ratings, service defaults to 1.0 and the rating to
//     currentRating.
//   - Efficiency rewards lifetime volume with diminishing returns,
//     saturating at EfficiencyTargetDeliveries.
//   - Integrity is fixed at 1.0 pending an incident-tracking input.
func (PerformanceCalculator) Calculate(
	history courier.History,
	currentRating float64,
) (courier.PerformanceScores, float64, error) {
	reliability := reliabilityScore(history.Deliveries)
	service, newRating := serviceScore(history.Ratings, currentRating)
	efficiency := 0.5 + 0.5*math.Min(float64(history.CompletedDeliveries)/EfficiencyTargetDeliveries, 1)
	integrity := 1.0

	scores, err := courier.NewPerformanceScores(reliability, service, efficiency, integrity)
	if err != nil {
		return courier.PerformanceScores{}, 0, err
	}
	return scores, newRating, nil
}

// reliabilityScore returns the on-time fraction of deliveries with a recorded
// estimate, or 1.0 when none qualify.
func reliabilityScore(deliveries []courier.DeliveryRecord) float64 {
	qualifying := 0
	onTime := 0
	for _, delivery := range deliveries {
		if delivery.EstimatedDeliveryAt == nil {
			continue
		}
		qualifying++
		if delivery.IsOnTime() {
			onTime++
		}
	}
	if qualifying == 0 {
		return 1.0
	}
	return float64(onTime) / float64(qualifying)
}

// serviceScore averages the most recent ratings (the slice is most recent
// first) and returns both the normalized score and the raw average that
// becomes the displayed rating.
func serviceScore(ratings []courier.RatingRecord, currentRating float64) (float64, float64) {
	if len(ratings) == 0 {
		return 1.0, currentRating
	}

	window := ratings
	if len(window) > RatingWindowSize {
		window = window[:RatingWindowSize]
	}

	sum := 0
	for _, rating := range window {
		sum += rating.Value
	}
	average := float64(sum) / float64(len(window))

	return average / 5, average
}

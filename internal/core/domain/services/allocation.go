package services

import (
	"errors"
	"math"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// ErrNoCandidateCourier is returned when no courier survives the allocation
// filters. The order stays pending; re-invocation is driven by the caller.
var ErrNoCandidateCourier = errors.New("no candidate courier")

// Allocation constants. MaxSearchRadiusKm bounds the candidate search;
// the weights blend the three score components and sum to 1.0.
const (
	MaxSearchRadiusKm = 30.0

	DistanceScoreWeight = 0.45
	RatingScoreWeight   = 0.35
	ActivityScoreWeight = 0.20
)

// Match is the result of an allocation pass: the winning courier, its
// composite score and its distance to the pickup point.
type Match struct {
	Courier    *courier.Courier
	Score      float64
	DistanceKm float64
}

// AllocationEngine is a domain service that picks the best courier for an
// order. It is read-only: scoring never mutates courier state, and the caller
// is responsible for atomically claiming the returned courier.
//
// The engine scans the candidate set linearly. The expected set size is small
// (tens to low hundreds of active couriers per search), so no spatial index
// is needed; one could replace the distance filter without changing the
// scoring contract.
type AllocationEngine struct{}

// NewAllocationEngine creates a new AllocationEngine instance.
func NewAllocationEngine() AllocationEngine {
	return AllocationEngine{}
}

// BestMatch returns the single best courier for a pickup point and package
// size, or ErrNoCandidateCourier when nobody qualifies.
//
// Candidates must be eligible for offers (approved, on shift, available,
// located), able to carry the size class, and within MaxSearchRadiusKm of the
// pickup point. Survivors are scored in [0, 100]:
//
//	distance score = max(0, 100 − distance/radius × 100), weight 0.45
//	rating score   = rating × 20,                         weight 0.35
//	activity score = min(100, completed deliveries / 5),  weight 0.20
//
// The strictly highest score wins; ties break on lower distance, then on
// lower courier ID, so repeated calls over an identical snapshot always
// return the same courier.
func (e AllocationEngine) BestMatch(
	pickup kernel.GeoPoint,
	size order.PackageSize,
	candidates []*courier.Courier,
) (Match, error) {
	if err := pickup.Validate(); err != nil {
		return Match{}, err
	}
	if err := size.Validate(); err != nil {
		return Match{}, err
	}

	var best Match
	found := false

	for _, candidate := range candidates {
		if candidate == nil || candidate.Validate() != nil {
			continue
		}
		if !candidate.IsEligibleForOffers() || !candidate.CanCarry(size) {
			continue
		}

		distanceKm := candidate.Location().DistanceKm(pickup)
		if distanceKm > MaxSearchRadiusKm {
			continue
		}

		match := Match{
			Courier:    candidate,
			Score:      e.score(candidate, distanceKm),
			DistanceKm: distanceKm,
		}

		if !found || e.beats(match, best) {
			best = match
			found = true
		}
	}

	if !found {
		return Match{}, ErrNoCandidateCourier
	}
	return best, nil
}

// score computes the weighted composite score of one candidate.
func (AllocationEngine) score(candidate *courier.Courier, distanceKm float64) float64 {
	distanceScore := math.Max(0, 100-(distanceKm/MaxSearchRadiusKm)*100)
	ratingScore := candidate.Rating() * 20
	activityScore := math.Min(100, float64(candidate.CompletedDeliveries())/5)

	return DistanceScoreWeight*distanceScore +
		RatingScoreWeight*ratingScore +
		ActivityScoreWeight*activityScore
}

// beats reports whether a should replace b as the current winner.
func (AllocationEngine) beats(a, b Match) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.DistanceKm != b.DistanceKm {
		return a.DistanceKm < b.DistanceKm
	}
	return a.Courier.ID().String() < b.Courier.ID().String()
}

package courier

import (
	"errors"
	"math"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Weights of the performance components in the composite index.
// They sum to 1.0.
const (
	ReliabilityWeight = 0.40
	ServiceWeight     = 0.30
	EfficiencyWeight  = 0.20
	IntegrityWeight   = 0.10
)

// Tier thresholds on the composite performance index.
const (
	TierTopThreshold          = 95.0
	TierEliteThreshold        = 85.0
	TierProfessionalThreshold = 70.0
)

// Tier is the courier's standing band derived from the performance index.
type Tier string

const (
	TierTop          Tier = "top"
	TierElite        Tier = "elite"
	TierProfessional Tier = "professional"
	TierStandard     Tier = "standard"
)

// ErrPerformanceScoresAreNotConstructed is returned when a PerformanceScores
// instance was not created via NewPerformanceScores.
var ErrPerformanceScoresAreNotConstructed = errors.New(
	"PerformanceScores must be created via NewPerformanceScores constructor")

// PerformanceScores is the immutable result of a scoring pass over a
// courier's delivery and rating history. Each component is a fraction in
// [0, 1]; the composite index is their weighted sum scaled to [0, 100] and
// rounded to one decimal place.
type PerformanceScores struct {
	reliability float64
	service     float64
	efficiency  float64
	integrity   float64
	index       float64

	guard guard.ConstructorGuard
}

// NewPerformanceScores creates a validated score set and computes the
// composite index from the component weights.
func NewPerformanceScores(reliability, service, efficiency, integrity float64) (PerformanceScores, error) {
	components := []struct {
		name  string
		value float64
	}{
		{"reliability", reliability},
		{"service", service},
		{"efficiency", efficiency},
		{"integrity", integrity},
	}
	for _, c := range components {
		if c.value < 0 || c.value > 1 {
			return PerformanceScores{}, errs.NewValueIsOutOfRangeError(c.name, c.value, 0.0, 1.0)
		}
	}

	index := 100 * (ReliabilityWeight*reliability +
		ServiceWeight*service +
		EfficiencyWeight*efficiency +
		IntegrityWeight*integrity)

	return PerformanceScores{
		reliability: reliability,
		service:     service,
		efficiency:  efficiency,
		integrity:   integrity,
		index:       math.Round(index*10) / 10,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// DefaultPerformanceScores returns the score set of a courier with no
// history: perfect reliability, service and integrity, baseline efficiency.
func DefaultPerformanceScores() PerformanceScores {
	scores, _ := NewPerformanceScores(1, 1, 0.5, 1)
	return scores
}

// Reliability returns the on-time delivery fraction.
func (s PerformanceScores) Reliability() float64 {
	return s.reliability
}

// Service returns the normalized customer rating fraction.
func (s PerformanceScores) Service() float64 {
	return s.service
}

// Efficiency returns the throughput fraction derived from delivery volume.
func (s PerformanceScores) Efficiency() float64 {
	return s.efficiency
}

// Integrity returns the compliance fraction.
func (s PerformanceScores) Integrity() float64 {
	return s.integrity
}

// Index returns the composite performance index in [0, 100], rounded to one
// decimal place.
func (s PerformanceScores) Index() float64 {
	return s.index
}

// Tier returns the standing band the index falls into.
func (s PerformanceScores) Tier() Tier {
	return TierForIndex(s.index)
}

// TierForIndex maps a composite performance index to its standing band.
func TierForIndex(index float64) Tier {
	switch {
	case index >= TierTopThreshold:
		return TierTop
	case index >= TierEliteThreshold:
		return TierElite
	case index >= TierProfessionalThreshold:
		return TierProfessional
	default:
		return TierStandard
	}
}

// Validate ensures the scores were created via NewPerformanceScores.
func (s PerformanceScores) Validate() error {
	return s.guard.Validate(ErrPerformanceScoresAreNotConstructed)
}

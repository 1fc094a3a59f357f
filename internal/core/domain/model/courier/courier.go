package courier

import (
	"errors"
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrCourierNotApproved is returned when an operation requires an
	// approved courier.
	ErrCourierNotApproved = errors.New("courier is not approved")

	// ErrOnboardingAlreadyDecided is returned when approving or rejecting
	// a courier whose vetting already concluded.
	ErrOnboardingAlreadyDecided = errors.New("onboarding was already decided")
)

// DefaultRating is the displayed rating of a courier nobody has rated yet.
const DefaultRating = 5.0

// Courier is the aggregate root for a delivery agent. It owns the courier's
// vetting state, work state (online and availability flags plus last known
// location), lifetime delivery counter, displayed rating and the performance
// scores computed by the scoring engine.
//
// A courier participates in allocation only while approved, online, available
// and with a known location.
type Courier struct {
	id           kernel.UUID
	name         string
	vehicleClass VehicleClass

	location  *kernel.GeoPoint
	available bool
	online    bool

	onboarding          OnboardingStatus
	completedDeliveries int
	rating              float64
	scores              PerformanceScores

	events []kernel.DomainEvent

	guard guard.ConstructorGuard
}

// NewCourier registers a new courier awaiting vetting. The courier starts
// offline and unavailable, with the default rating and baseline scores.
func NewCourier(id kernel.UUID, name string, vehicleClass VehicleClass) (*Courier, error) {
	c := &Courier{
		onboarding: OnboardingPending,
		rating:     DefaultRating,
		scores:     DefaultPerformanceScores(),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setVehicleClass(vehicleClass),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a courier from persistence.
func RestoreCourier(
	id kernel.UUID,
	name string,
	vehicleClass VehicleClass,
	location *kernel.GeoPoint,
	available bool,
	online bool,
	onboarding OnboardingStatus,
	completedDeliveries int,
	rating float64,
	scores PerformanceScores,
) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setVehicleClass(vehicleClass),
		c.setRating(rating),
		c.setScores(scores),
		onboarding.Validate(),
	); err != nil {
		return nil, err
	}

	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
		loc := *location
		c.location = &loc
	}

	if completedDeliveries < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("completed deliveries",
			fmt.Errorf("%d is negative", completedDeliveries))
	}

	c.available = available
	c.online = online
	c.onboarding = onboarding
	c.completedDeliveries = completedDeliveries

	return c, nil
}

// Validate ensures the Courier was created through NewCourier or
// RestoreCourier.
func (c *Courier) Validate() error {
	if c == nil {
		return guard.ErrDefaultConstructorGuard
	}
	return c.guard.Validate(nil)
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// VehicleClass returns the courier's vehicle class.
func (c *Courier) VehicleClass() VehicleClass {
	return c.vehicleClass
}

// Location returns the last known position, or nil if never reported.
func (c *Courier) Location() *kernel.GeoPoint {
	return c.location
}

// IsAvailable reports whether the courier accepts new orders.
func (c *Courier) IsAvailable() bool {
	return c.available
}

// IsOnline reports whether the courier's shift is active.
func (c *Courier) IsOnline() bool {
	return c.online
}

// Onboarding returns the vetting status.
func (c *Courier) Onboarding() OnboardingStatus {
	return c.onboarding
}

// CompletedDeliveries returns the lifetime delivery count.
func (c *Courier) CompletedDeliveries() int {
	return c.completedDeliveries
}

// Rating returns the displayed customer rating on the 1 to 5 scale.
func (c *Courier) Rating() float64 {
	return c.rating
}

// Scores returns the current performance scores.
func (c *Courier) Scores() PerformanceScores {
	return c.scores
}

// Tier returns the standing band of the current performance index.
func (c *Courier) Tier() Tier {
	return c.scores.Tier()
}

// Events returns the domain events accumulated since the last ClearEvents.
func (c *Courier) Events() []kernel.DomainEvent {
	return c.events
}

// ClearEvents drops the accumulated events. Called after they were published.
func (c *Courier) ClearEvents() {
	c.events = nil
}

// Approve concludes vetting positively. Only a pending courier can be
// approved.
func (c *Courier) Approve() error {
	if c.onboarding != OnboardingPending {
		return fmt.Errorf("%w: courier is %s", ErrOnboardingAlreadyDecided, c.onboarding)
	}
	c.onboarding = OnboardingApproved
	return nil
}

// Reject concludes vetting negatively. Only a pending courier can be
// rejected.
func (c *Courier) Reject() error {
	if c.onboarding != OnboardingPending {
		return fmt.Errorf("%w: courier is %s", ErrOnboardingAlreadyDecided, c.onboarding)
	}
	c.onboarding = OnboardingRejected
	return nil
}

// SetOnline toggles the courier's shift. Going offline also withdraws
// availability.
func (c *Courier) SetOnline(online bool) error {
	if c.onboarding != OnboardingApproved {
		return ErrCourierNotApproved
	}
	c.online = online
	if !online {
		c.available = false
	}
	return nil
}

// SetAvailability toggles whether the courier accepts new orders. The courier
// must be approved and, to become available, on shift.
func (c *Courier) SetAvailability(available bool) error {
	if c.onboarding != OnboardingApproved {
		return ErrCourierNotApproved
	}
	if available && !c.online {
		return errs.NewValueIsInvalidErrorWithCause("availability",
			errors.New("courier is not online"))
	}
	c.available = available
	return nil
}

// UpdateLocation records the courier's latest reported position.
func (c *Courier) UpdateLocation(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}
	c.location = &position
	return nil
}

// RecordCompletedDelivery increments the lifetime delivery counter.
func (c *Courier) RecordCompletedDelivery() {
	c.completedDeliveries++
}

// ApplyScores installs the result of a scoring pass: the new performance
// scores and the recomputed displayed rating. Raises a ScoresUpdatedEvent.
func (c *Courier) ApplyScores(scores PerformanceScores, newRating float64) error {
	if err := errors.Join(
		c.setScores(scores),
		c.setRating(newRating),
	); err != nil {
		return err
	}

	c.recordEvent(ScoresUpdatedEvent{
		CourierID:        c.id,
		PerformanceIndex: c.scores.Index(),
		Tier:             c.scores.Tier(),
	})

	return nil
}

// CanCarry reports whether the courier's vehicle is eligible for the given
// package size class.
func (c *Courier) CanCarry(size order.PackageSize) bool {
	return c.vehicleClass.CanCarry(size)
}

// IsEligibleForOffers reports whether allocation may consider this courier:
// approved, on shift, available and with a known location.
func (c *Courier) IsEligibleForOffers() bool {
	return c.onboarding == OnboardingApproved &&
		c.online && c.available && c.location != nil
}

func (c *Courier) recordEvent(event kernel.DomainEvent) {
	c.events = append(c.events, event)
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Courier) setVehicleClass(vehicleClass VehicleClass) error {
	if err := vehicleClass.Validate(); err != nil {
		return err
	}
	c.vehicleClass = vehicleClass
	return nil
}

func (c *Courier) setRating(rating float64) error {
	if rating < 1 || rating > 5 {
		return errs.NewValueIsOutOfRangeError("rating", rating, 1.0, 5.0)
	}
	c.rating = rating
	return nil
}

func (c *Courier) setScores(scores PerformanceScores) error {
	if err := scores.Validate(); err != nil {
		return err
	}
	c.scores = scores
	return nil
}

package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrDeliveryNotVerified is returned when a delivery transition carries
	// neither a matching one-time verification code nor a signature or
	// photo reference.
	ErrDeliveryNotVerified = errors.New("delivery requires a matching verification code or proof of delivery")

	// ErrRecipientVerificationRequired is returned when a legal document or
	// valuable shipment is delivered without a verified recipient identity.
	ErrRecipientVerificationRequired = errors.New("recipient verification is required for this risk class")
)

// TransitionMeta carries the per-transition payload of Order.Transition.
// Which fields are consulted depends on the target status: assignment reads
// CourierID and the estimates, delivery reads VerificationCode and Proof,
// cancellation and failure read Note.
type TransitionMeta struct {
	// CourierID is the courier being allocated. Required when the target
	// status is StatusAssigned, ignored otherwise.
	CourierID *kernel.UUID

	// EstimatedPickupAt and EstimatedDeliveryAt are the schedule computed
	// at allocation time.
	EstimatedPickupAt   *time.Time
	EstimatedDeliveryAt *time.Time

	// VerificationCode is the one-time handover code presented by the
	// recipient.
	VerificationCode string

	// Proof is the handover evidence captured by the courier.
	Proof ProofOfDelivery

	// Note is an optional annotation, such as a cancellation reason.
	Note string
}

// Order is the aggregate root of the dispatch domain. It owns the order
// lifecycle: the status state machine, its audit history, the quoted price
// breakdown, the courier assignment and the handover evidence.
//
// Order maintains these invariants:
//   - Status transitions follow the legal-successor table exactly.
//   - The courier reference is set while the order is assigned, picked up,
//     in transit or delivered, and nil otherwise.
//   - History is append-only with non-decreasing timestamps.
//   - The verification code can be consumed at most once.
//
// All mutation goes through Transition; the struct exposes no setters.
type Order struct {
	id           kernel.UUID
	trackingCode string
	customerID   kernel.UUID
	courierID    *kernel.UUID

	pickup  kernel.GeoPoint
	dropoff kernel.GeoPoint

	packageSize    PackageSize
	weightKg       float64
	urgency        Urgency
	riskClass      RiskClass
	insuranceValue float64
	price          PriceBreakdown

	status  Status
	history []HistoryEntry

	estimatedPickupAt   *time.Time
	estimatedDeliveryAt *time.Time
	actualPickupAt      *time.Time
	actualDeliveryAt    *time.Time

	proof                ProofOfDelivery
	verificationCode     string
	verificationCodeUsed bool

	events []kernel.DomainEvent

	guard guard.ConstructorGuard
}

// NewOrder creates a new pending order with validation. The price breakdown
// is computed by the pricing service beforehand and stored verbatim, so a
// later tariff change never alters a quoted price.
//
// The creation is recorded as the first history entry and raises a
// CreatedEvent on the aggregate.
func NewOrder(
	id kernel.UUID,
	trackingCode string,
	customerID kernel.UUID,
	pickup kernel.GeoPoint,
	dropoff kernel.GeoPoint,
	packageSize PackageSize,
	weightKg float64,
	urgency Urgency,
	riskClass RiskClass,
	insuranceValue float64,
	price PriceBreakdown,
	verificationCode string,
	at time.Time,
) (*Order, error) {
	o := &Order{
		status: StatusPending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setTrackingCode(trackingCode),
		o.setCustomerID(customerID),
		o.setPickup(pickup),
		o.setDropoff(dropoff),
		o.setPackageSize(packageSize),
		o.setWeightKg(weightKg),
		o.setUrgency(urgency),
		o.setRiskClass(riskClass),
		o.setInsuranceValue(insuranceValue),
		o.setPrice(price),
		o.setVerificationCode(verificationCode),
	); err != nil {
		return nil, err
	}

	o.history = append(o.history, HistoryEntry{
		From:      StatusUnknown,
		To:        StatusPending,
		ActorRole: RoleCustomer,
		ActorID:   &o.customerID,
		At:        at,
	})

	o.recordEvent(CreatedEvent{
		OrderID:    o.id,
		CustomerID: o.customerID,
		Total:      o.price.Total,
	})

	return o, nil
}

// RestoreOrder reconstructs an order from persistence. It runs the same field
// validation as NewOrder but accepts the full persisted state and raises no
// events.
func RestoreOrder(
	id kernel.UUID,
	trackingCode string,
	customerID kernel.UUID,
	courierID *kernel.UUID,
	pickup kernel.GeoPoint,
	dropoff kernel.GeoPoint,
	packageSize PackageSize,
	weightKg float64,
	urgency Urgency,
	riskClass RiskClass,
	insuranceValue float64,
	price PriceBreakdown,
	status Status,
	history []HistoryEntry,
	estimatedPickupAt *time.Time,
	estimatedDeliveryAt *time.Time,
	actualPickupAt *time.Time,
	actualDeliveryAt *time.Time,
	proof ProofOfDelivery,
	verificationCode string,
	verificationCodeUsed bool,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setTrackingCode(trackingCode),
		o.setCustomerID(customerID),
		o.setPickup(pickup),
		o.setDropoff(dropoff),
		o.setPackageSize(packageSize),
		o.setWeightKg(weightKg),
		o.setUrgency(urgency),
		o.setRiskClass(riskClass),
		o.setInsuranceValue(insuranceValue),
		o.setPrice(price),
		o.setVerificationCode(verificationCode),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		cID := *courierID
		o.courierID = &cID
	}

	o.status = status
	o.history = history
	o.estimatedPickupAt = estimatedPickupAt
	o.estimatedDeliveryAt = estimatedDeliveryAt
	o.actualPickupAt = actualPickupAt
	o.actualDeliveryAt = actualDeliveryAt
	o.proof = proof
	o.verificationCodeUsed = verificationCodeUsed

	return o, nil
}

// Validate ensures the Order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return guard.ErrDefaultConstructorGuard
	}
	return o.guard.Validate(nil)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TrackingCode returns the customer-facing tracking code.
func (o *Order) TrackingCode() string {
	return o.trackingCode
}

// CustomerID returns the order owner's identifier.
func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Courier returns the assigned courier's ID, or nil if unassigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// Pickup returns the pickup coordinates.
func (o *Order) Pickup() kernel.GeoPoint {
	return o.pickup
}

// Dropoff returns the drop-off coordinates.
func (o *Order) Dropoff() kernel.GeoPoint {
	return o.dropoff
}

// PackageSize returns the package size class.
func (o *Order) PackageSize() PackageSize {
	return o.packageSize
}

// WeightKg returns the package weight in kilograms.
func (o *Order) WeightKg() float64 {
	return o.weightKg
}

// Urgency returns the delivery speed tier.
func (o *Order) Urgency() Urgency {
	return o.urgency
}

// RiskClass returns the handling risk class.
func (o *Order) RiskClass() RiskClass {
	return o.riskClass
}

// InsuranceValue returns the declared value of the shipment.
func (o *Order) InsuranceValue() float64 {
	return o.insuranceValue
}

// Price returns the immutable price breakdown quoted at creation.
func (o *Order) Price() PriceBreakdown {
	return o.price
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// History returns the append-only status history, oldest first.
func (o *Order) History() []HistoryEntry {
	return o.history
}

// EstimatedPickupAt returns the pickup estimate set at allocation.
func (o *Order) EstimatedPickupAt() *time.Time {
	return o.estimatedPickupAt
}

// EstimatedDeliveryAt returns the delivery estimate set at allocation.
func (o *Order) EstimatedDeliveryAt() *time.Time {
	return o.estimatedDeliveryAt
}

// ActualPickupAt returns the time the package was collected.
func (o *Order) ActualPickupAt() *time.Time {
	return o.actualPickupAt
}

// ActualDeliveryAt returns the time the package was handed over.
func (o *Order) ActualDeliveryAt() *time.Time {
	return o.actualDeliveryAt
}

// Proof returns the handover evidence recorded at delivery.
func (o *Order) Proof() ProofOfDelivery {
	return o.proof
}

// VerificationCode returns the one-time handover code.
func (o *Order) VerificationCode() string {
	return o.verificationCode
}

// VerificationCodeUsed reports whether the handover code was consumed.
func (o *Order) VerificationCodeUsed() bool {
	return o.verificationCodeUsed
}

// Events returns the domain events accumulated since creation or the last
// ClearEvents call.
func (o *Order) Events() []kernel.DomainEvent {
	return o.events
}

// ClearEvents drops the accumulated events. Called after they were published.
func (o *Order) ClearEvents() {
	o.events = nil
}

// Transition moves the order to the target status on behalf of the given
// actor. It is the single mutation path of the aggregate and applies, in
// order: the legality check against the transition table, the role-based
// authorization guard, and the target-specific effects.
//
// Rules enforced:
//   - Couriers may pick up, move and deliver only orders assigned to them,
//     and may reject (StatusAssigned back to StatusPending) only their own
//     assignment.
//   - Customers may cancel only their own order and only while it is pending.
//   - Admins may drive any legal transition.
//   - StatusAssigned requires meta.CourierID and stores the schedule.
//   - StatusDelivered requires a matching verification code or proof of
//     delivery, and a recipient identity for risk classes that demand it.
//
// On success the transition is appended to the history (with its timestamp
// clamped so history stays monotonic) and a StatusChangedEvent is raised.
func (o *Order) Transition(actor Actor, target Status, meta TransitionMeta, at time.Time) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	if !o.status.CanTransitionTo(target) {
		return NewInvalidTransitionError(o.status, target)
	}

	if err := o.authorize(actor, target); err != nil {
		return err
	}

	if err := o.applyEffects(target, meta, o.effectiveTime(at)); err != nil {
		return err
	}

	from := o.status
	o.status = target

	var actorID *kernel.UUID
	if id := actor.ID(); id.Validate() == nil {
		actorID = &id
	}

	o.history = append(o.history, HistoryEntry{
		From:      from,
		To:        target,
		ActorRole: actor.Role(),
		ActorID:   actorID,
		Note:      meta.Note,
		At:        o.effectiveTime(at),
	})

	o.recordEvent(StatusChangedEvent{OrderID: o.id, From: from, To: target})

	return nil
}

// authorize applies the role guard for an already-legal transition.
func (o *Order) authorize(actor Actor, target Status) error {
	action := fmt.Sprintf("move order to %s", target)

	switch actor.Role() {
	case RoleAdmin:
		return nil

	case RoleCourier:
		switch target {
		case StatusPickedUp, StatusInTransit, StatusDelivered, StatusPending:
			// StatusPending here is the courier handing back an assignment.
			if o.courierID == nil || !o.courierID.IsEqual(actor.ID()) {
				return NewUnauthorizedError(actor.Role(), action)
			}
			return nil
		default:
			return NewUnauthorizedError(actor.Role(), action)
		}

	case RoleCustomer:
		if target != StatusCancelled || o.status != StatusPending {
			return NewUnauthorizedError(actor.Role(), action)
		}
		if !o.customerID.IsEqual(actor.ID()) {
			return NewUnauthorizedError(actor.Role(), action)
		}
		return nil

	case RoleUnknown:
		fallthrough
	default:
		return NewUnauthorizedError(actor.Role(), action)
	}
}

// applyEffects performs the target-specific state changes of the transition.
func (o *Order) applyEffects(target Status, meta TransitionMeta, at time.Time) error {
	switch target {
	case StatusAssigned:
		if meta.CourierID == nil {
			return errs.NewValueIsRequiredError("courier id")
		}
		if err := meta.CourierID.Validate(); err != nil {
			return err
		}
		cID := *meta.CourierID
		o.courierID = &cID
		o.estimatedPickupAt = meta.EstimatedPickupAt
		o.estimatedDeliveryAt = meta.EstimatedDeliveryAt
		o.recordEvent(AssignedEvent{OrderID: o.id, CourierID: cID})

	case StatusPickedUp:
		pickedUpAt := at
		o.actualPickupAt = &pickedUpAt

	case StatusDelivered:
		if err := o.verifyHandover(meta); err != nil {
			return err
		}
		deliveredAt := at
		o.actualDeliveryAt = &deliveredAt
		o.proof = meta.Proof

	case StatusPending:
		// Courier rejection: the order returns to the allocation pool.
		if o.courierID != nil {
			o.recordEvent(RejectedByCourierEvent{OrderID: o.id, CourierID: *o.courierID})
		}
		o.courierID = nil
		o.estimatedPickupAt = nil
		o.estimatedDeliveryAt = nil

	case StatusCancelled, StatusFailed:
		o.courierID = nil

	case StatusInTransit:
		// No extra effects.
	}

	return nil
}

// verifyHandover checks the delivery evidence against the order's handover
// requirements and consumes the verification code when it matches.
func (o *Order) verifyHandover(meta TransitionMeta) error {
	if o.riskClass.RequiresRecipientVerification() && meta.Proof.RecipientID == nil {
		return ErrRecipientVerificationRequired
	}

	if meta.VerificationCode != "" && !o.verificationCodeUsed &&
		meta.VerificationCode == o.verificationCode {
		o.verificationCodeUsed = true
		return nil
	}

	if meta.Proof.SignatureRef != "" || meta.Proof.PhotoRef != "" {
		return nil
	}

	return ErrDeliveryNotVerified
}

// effectiveTime clamps a transition timestamp so the history never goes
// backwards, which protects ordering against clock skew between callers.
func (o *Order) effectiveTime(at time.Time) time.Time {
	if n := len(o.history); n > 0 && at.Before(o.history[n-1].At) {
		return o.history[n-1].At
	}
	return at
}

func (o *Order) recordEvent(event kernel.DomainEvent) {
	o.events = append(o.events, event)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setTrackingCode(trackingCode string) error {
	if strings.TrimSpace(trackingCode) == "" {
		return errs.NewValueIsRequiredError("tracking code")
	}
	o.trackingCode = trackingCode
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setPickup(pickup kernel.GeoPoint) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	o.pickup = pickup
	return nil
}

func (o *Order) setDropoff(dropoff kernel.GeoPoint) error {
	if err := dropoff.Validate(); err != nil {
		return err
	}
	o.dropoff = dropoff
	return nil
}

func (o *Order) setPackageSize(packageSize PackageSize) error {
	if err := packageSize.Validate(); err != nil {
		return err
	}
	o.packageSize = packageSize
	return nil
}

func (o *Order) setWeightKg(weightKg float64) error {
	// Zero is a legal declared weight: envelopes ship without weighing.
	if weightKg < 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%v is negative", weightKg))
	}
	o.weightKg = weightKg
	return nil
}

func (o *Order) setUrgency(urgency Urgency) error {
	if err := urgency.Validate(); err != nil {
		return err
	}
	o.urgency = urgency
	return nil
}

func (o *Order) setRiskClass(riskClass RiskClass) error {
	if err := riskClass.Validate(); err != nil {
		return err
	}
	o.riskClass = riskClass
	return nil
}

func (o *Order) setInsuranceValue(insuranceValue float64) error {
	if insuranceValue < 0 {
		return errs.NewValueIsInvalidErrorWithCause("insurance value",
			fmt.Errorf("%v is negative", insuranceValue))
	}
	o.insuranceValue = insuranceValue
	return nil
}

func (o *Order) setPrice(price PriceBreakdown) error {
	if price.Total <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("total %v is not greater than 0", price.Total))
	}
	o.price = price
	return nil
}

func (o *Order) setVerificationCode(verificationCode string) error {
	if strings.TrimSpace(verificationCode) == "" {
		return errs.NewValueIsRequiredError("verification code")
	}
	o.verificationCode = verificationCode
	return nil
}

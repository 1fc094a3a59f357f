package courier

import "time"

// DeliveryRecord is one completed delivery as seen by the scoring engine.
type DeliveryRecord struct {
	// EstimatedDeliveryAt is the promise made at allocation, nil when no
	// estimate was recorded.
	EstimatedDeliveryAt *time.Time

	// ActualDeliveryAt is the recorded handover time.
	ActualDeliveryAt time.Time
}

// IsOnTime reports whether the delivery met its estimate. Deliveries without
// an estimate count as on time.
func (r DeliveryRecord) IsOnTime() bool {
	return r.EstimatedDeliveryAt == nil || !r.ActualDeliveryAt.After(*r.EstimatedDeliveryAt)
}

// RatingRecord is one customer rating of a courier.
type RatingRecord struct {
	// Value is the star rating on the 1 to 5 scale.
	Value int

	// RatedAt is when the rating was submitted.
	RatedAt time.Time
}

// History is the scoring input assembled for one courier: recent deliveries,
// recent ratings (most recent first) and the lifetime delivery count.
type History struct {
	Deliveries          []DeliveryRecord
	Ratings             []RatingRecord
	CompletedDeliveries int
}

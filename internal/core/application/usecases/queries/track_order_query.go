// Package queries contains read operations for retrieving system state.
// Implements the Query side of the CQRS split: handlers read the database
// directly and return read models shaped for their consumers, bypassing the
// aggregates.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrTrackOrderQueryIsNotConstructed = errors.New(
	"TrackOrderQuery must be created via NewTrackOrderQuery constructor",
)

// TrackOrderQuery retrieves the customer-facing view of one order by its
// tracking code: current status, schedule and the full status history.
type TrackOrderQuery struct {
	trackingCode string

	guard guard.ConstructorGuard
}

// NewTrackOrderQuery creates a query to track an order by its tracking code.
func NewTrackOrderQuery(trackingCode string) (TrackOrderQuery, error) {
	if trackingCode == "" {
		return TrackOrderQuery{}, errs.NewValueIsRequiredError("trackingCode")
	}

	return TrackOrderQuery{
		trackingCode: trackingCode,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q TrackOrderQuery) Validate() error {
	return q.guard.Validate(ErrTrackOrderQueryIsNotConstructed)
}

// TrackingCode returns the tracking code being looked up.
func (q TrackOrderQuery) TrackingCode() string {
	return q.trackingCode
}

// TrackOrderQueryResponse is the tracking read model. The verification code
// is deliberately absent: it travels to the customer out of band and must
// never appear on the public tracking surface.
type TrackOrderQueryResponse struct {
	TrackingCode        string
	Status              string
	CourierID           *kernel.UUID
	PriceTotal          float64
	EstimatedPickupAt   *time.Time
	EstimatedDeliveryAt *time.Time
	ActualPickupAt      *time.Time
	ActualDeliveryAt    *time.Time
	History             []TrackOrderHistoryEntry
}

// TrackOrderHistoryEntry is one audit record in the tracking read model.
type TrackOrderHistoryEntry struct {
	From      string
	To        string
	ActorRole string
	Note      string
	At        time.Time
}

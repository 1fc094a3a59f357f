package http

import (
	"time"
)

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GeoPoint is the wire form of a coordinate pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	CustomerID     string   `json:"customer_id"`
	Pickup         GeoPoint `json:"pickup"`
	Dropoff        GeoPoint `json:"dropoff"`
	PackageSize    string   `json:"package_size"`
	WeightKg       float64  `json:"weight_kg"`
	Urgency        string   `json:"urgency"`
	RiskClass      string   `json:"risk_class"`
	InsuranceValue float64  `json:"insurance_value"`
}

// PriceBreakdown itemizes the quoted price on the wire.
type PriceBreakdown struct {
	DistanceKm        float64 `json:"distance_km"`
	DistanceCost      float64 `json:"distance_cost"`
	SizeMultiplier    float64 `json:"size_multiplier"`
	UrgencyMultiplier float64 `json:"urgency_multiplier"`
	RiskMultiplier    float64 `json:"risk_multiplier"`
	WeightSurcharge   float64 `json:"weight_surcharge"`
	InsuranceFee      float64 `json:"insurance_fee"`
	Total             float64 `json:"total"`
}

// CreateOrderResponse returns the opened order. The verification code is
// included here once, for the customer placing the order; it never appears
// on the tracking surface.
type CreateOrderResponse struct {
	OrderID          string         `json:"order_id"`
	TrackingCode     string         `json:"tracking_code"`
	Status           string         `json:"status"`
	VerificationCode string         `json:"verification_code"`
	Price            PriceBreakdown `json:"price"`
}

// ProofOfDelivery is the handover evidence attached to a delivery
// transition.
type ProofOfDelivery struct {
	SignatureRef string `json:"signature_ref,omitempty"`
	PhotoRef     string `json:"photo_ref,omitempty"`
	RecipientID  string `json:"recipient_id,omitempty"`
}

// TransitionOrderRequest is the body of POST /api/v1/orders/:id/transitions.
type TransitionOrderRequest struct {
	ActorRole        string           `json:"actor_role"`
	ActorID          string           `json:"actor_id,omitempty"`
	Target           string           `json:"target"`
	VerificationCode string           `json:"verification_code,omitempty"`
	Note             string           `json:"note,omitempty"`
	Proof            *ProofOfDelivery `json:"proof,omitempty"`
}

// OrderResponse is the post-transition view of an order.
type OrderResponse struct {
	OrderID             string     `json:"order_id"`
	TrackingCode        string     `json:"tracking_code"`
	Status              string     `json:"status"`
	CourierID           *string    `json:"courier_id,omitempty"`
	EstimatedPickupAt   *time.Time `json:"estimated_pickup_at,omitempty"`
	EstimatedDeliveryAt *time.Time `json:"estimated_delivery_at,omitempty"`
	ActualPickupAt      *time.Time `json:"actual_pickup_at,omitempty"`
	ActualDeliveryAt    *time.Time `json:"actual_delivery_at,omitempty"`
}

// TrackOrderHistoryEntry is one audit record on the tracking surface.
type TrackOrderHistoryEntry struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	ActorRole string    `json:"actor_role"`
	Note      string    `json:"note,omitempty"`
	At        time.Time `json:"at"`
}

// TrackOrderResponse is the customer-facing tracking view.
type TrackOrderResponse struct {
	TrackingCode        string                   `json:"tracking_code"`
	Status              string                   `json:"status"`
	CourierID           *string                  `json:"courier_id,omitempty"`
	PriceTotal          float64                  `json:"price_total"`
	EstimatedPickupAt   *time.Time               `json:"estimated_pickup_at,omitempty"`
	EstimatedDeliveryAt *time.Time               `json:"estimated_delivery_at,omitempty"`
	ActualPickupAt      *time.Time               `json:"actual_pickup_at,omitempty"`
	ActualDeliveryAt    *time.Time               `json:"actual_delivery_at,omitempty"`
	History             []TrackOrderHistoryEntry `json:"history"`
}

// RegisterCourierRequest is the body of POST /api/v1/couriers.
type RegisterCourierRequest struct {
	Name         string `json:"name"`
	VehicleClass string `json:"vehicle_class"`
}

// RegisterCourierResponse returns the registered courier awaiting vetting.
type RegisterCourierResponse struct {
	CourierID string `json:"courier_id"`
	Status    string `json:"status"`
}

// ReviewCourierRequest is the body of POST /api/v1/couriers/:id/review.
type ReviewCourierRequest struct {
	Approved bool `json:"approved"`
}

// WorkStateRequest is the body of PUT /api/v1/couriers/:id/work-state.
type WorkStateRequest struct {
	Online    bool `json:"online"`
	Available bool `json:"available"`
}

// LocationRequest is the body of PUT /api/v1/couriers/:id/location.
type LocationRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// RatingRequest is the body of POST /api/v1/couriers/:id/ratings.
type RatingRequest struct {
	Rating int `json:"rating"`
}

// LeaderboardEntry is one ranked courier.
type LeaderboardEntry struct {
	CourierID           string  `json:"courier_id"`
	Name                string  `json:"name"`
	Rating              float64 `json:"rating"`
	CompletedDeliveries int     `json:"completed_deliveries"`
	PerformanceIndex    float64 `json:"performance_index"`
	Tier                string  `json:"tier"`
}

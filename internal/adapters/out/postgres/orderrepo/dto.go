// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the repository pattern for the order
// aggregate, converting between domain entities and their relational
// representation, including the append-only status history child table.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The status column doubles as the optimistic concurrency token: conditional
// updates compare it against the status the aggregate was loaded with.
type OrderDTO struct {
	ID                   uuid.UUID   `gorm:"type:uuid;primaryKey"`
	TrackingCode         string      `gorm:"type:varchar(32);uniqueIndex;not null"`
	CustomerID           uuid.UUID   `gorm:"type:uuid;index;not null"`
	CourierID            *uuid.UUID  `gorm:"type:uuid;index"`
	Pickup               GeoPointDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Dropoff              GeoPointDTO `gorm:"embedded;embeddedPrefix:dropoff_"`
	PackageSize          int         `gorm:"not null"`
	WeightKg             float64     `gorm:"not null"`
	Urgency              int         `gorm:"not null"`
	RiskClass            int         `gorm:"not null"`
	InsuranceValue       float64     `gorm:"not null"`
	Price                PriceDTO    `gorm:"embedded;embeddedPrefix:price_"`
	Status               int         `gorm:"index;not null"`
	VerificationCode     string      `gorm:"type:varchar(16);not null"`
	VerificationCodeUsed bool        `gorm:"not null"`
	ProofSignatureRef    string
	ProofPhotoRef        string
	ProofRecipientID     *uuid.UUID `gorm:"type:uuid"`
	EstimatedPickupAt    *time.Time
	EstimatedDeliveryAt  *time.Time
	ActualPickupAt       *time.Time
	ActualDeliveryAt     *time.Time
	CreatedAt            time.Time `gorm:"index"`
	UpdatedAt            time.Time
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// GeoPointDTO represents embedded WGS84 coordinates within the order table.
type GeoPointDTO struct {
	Lat float64 `gorm:"type:double precision;not null"`
	Lng float64 `gorm:"type:double precision;not null"`
}

// PriceDTO represents the embedded immutable price breakdown computed at
// order creation.
type PriceDTO struct {
	DistanceKm        float64 `gorm:"not null"`
	DistanceCost      float64 `gorm:"not null"`
	SizeMultiplier    float64 `gorm:"not null"`
	UrgencyMultiplier float64 `gorm:"not null"`
	RiskMultiplier    float64 `gorm:"not null"`
	WeightSurcharge   float64 `gorm:"not null"`
	InsuranceFee      float64 `gorm:"not null"`
	Total             float64 `gorm:"not null"`
}

// HistoryEntryDTO represents one audit record in an order's status history.
// The (order_id, seq) composite key makes re-inserting already persisted
// entries a no-op, so repositories can write the full in-memory history on
// every update.
type HistoryEntryDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq        int       `gorm:"primaryKey;autoIncrement:false"`
	FromStatus int       `gorm:"not null"`
	ToStatus   int       `gorm:"not null"`
	ActorRole  int       `gorm:"not null"`
	ActorID    *uuid.UUID `gorm:"type:uuid"`
	Note       string
	At         time.Time `gorm:"not null"`
}

// TableName specifies the database table name for order history entries.
func (HistoryEntryDTO) TableName() string {
	return "order_history"
}

// fromDomain converts an order domain aggregate to its database
// representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	proof := aggregate.Proof()
	price := aggregate.Price()

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		TrackingCode: aggregate.TrackingCode(),
		CustomerID:   aggregate.CustomerID().Bytes(),
		CourierID:    uuidPtrFromDomain(aggregate.Courier()),
		Pickup: GeoPointDTO{
			Lat: aggregate.Pickup().Latitude(),
			Lng: aggregate.Pickup().Longitude(),
		},
		Dropoff: GeoPointDTO{
			Lat: aggregate.Dropoff().Latitude(),
			Lng: aggregate.Dropoff().Longitude(),
		},
		PackageSize:    int(aggregate.PackageSize()),
		WeightKg:       aggregate.WeightKg(),
		Urgency:        int(aggregate.Urgency()),
		RiskClass:      int(aggregate.RiskClass()),
		InsuranceValue: aggregate.InsuranceValue(),
		Price: PriceDTO{
			DistanceKm:        price.DistanceKm,
			DistanceCost:      price.DistanceCost,
			SizeMultiplier:    price.SizeMultiplier,
			UrgencyMultiplier: price.UrgencyMultiplier,
			RiskMultiplier:    price.RiskMultiplier,
			WeightSurcharge:   price.WeightSurcharge,
			InsuranceFee:      price.InsuranceFee,
			Total:             price.Total,
		},
		Status:               int(aggregate.Status()),
		VerificationCode:     aggregate.VerificationCode(),
		VerificationCodeUsed: aggregate.VerificationCodeUsed(),
		ProofSignatureRef:    proof.SignatureRef,
		ProofPhotoRef:        proof.PhotoRef,
		ProofRecipientID:     uuidPtrFromDomain(proof.RecipientID),
		EstimatedPickupAt:    aggregate.EstimatedPickupAt(),
		EstimatedDeliveryAt:  aggregate.EstimatedDeliveryAt(),
		ActualPickupAt:       aggregate.ActualPickupAt(),
		ActualDeliveryAt:     aggregate.ActualDeliveryAt(),
	}
}

// historyFromDomain converts an order's in-memory history into child table
// rows keyed by position.
func historyFromDomain(orderID uuid.UUID, history []order.HistoryEntry) []HistoryEntryDTO {
	entries := make([]HistoryEntryDTO, 0, len(history))
	for seq, entry := range history {
		entries = append(entries, HistoryEntryDTO{
			OrderID:    orderID,
			Seq:        seq,
			FromStatus: int(entry.From),
			ToStatus:   int(entry.To),
			ActorRole:  int(entry.ActorRole),
			ActorID:    uuidPtrFromDomain(entry.ActorID),
			Note:       entry.Note,
			At:         entry.At,
		})
	}
	return entries
}

// toDomain converts a database DTO plus its history rows back into an order
// aggregate using RestoreOrder.
func toDomain(dto OrderDTO, historyRows []HistoryEntryDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	courierID, err := uuidPtrToDomain(dto.CourierID)
	if err != nil {
		return nil, err
	}

	pickup, err := kernel.NewGeoPoint(dto.Pickup.Lat, dto.Pickup.Lng)
	if err != nil {
		return nil, err
	}

	dropoff, err := kernel.NewGeoPoint(dto.Dropoff.Lat, dto.Dropoff.Lng)
	if err != nil {
		return nil, err
	}

	recipientID, err := uuidPtrToDomain(dto.ProofRecipientID)
	if err != nil {
		return nil, err
	}

	history := make([]order.HistoryEntry, 0, len(historyRows))
	for _, row := range historyRows {
		actorID, actorErr := uuidPtrToDomain(row.ActorID)
		if actorErr != nil {
			return nil, actorErr
		}
		history = append(history, order.HistoryEntry{
			From:      order.Status(row.FromStatus),
			To:        order.Status(row.ToStatus),
			ActorRole: order.Role(row.ActorRole),
			ActorID:   actorID,
			Note:      row.Note,
			At:        row.At,
		})
	}

	return order.RestoreOrder(
		id,
		dto.TrackingCode,
		customerID,
		courierID,
		pickup,
		dropoff,
		order.PackageSize(dto.PackageSize),
		dto.WeightKg,
		order.Urgency(dto.Urgency),
		order.RiskClass(dto.RiskClass),
		dto.InsuranceValue,
		order.PriceBreakdown{
			DistanceKm:        dto.Price.DistanceKm,
			DistanceCost:      dto.Price.DistanceCost,
			SizeMultiplier:    dto.Price.SizeMultiplier,
			UrgencyMultiplier: dto.Price.UrgencyMultiplier,
			RiskMultiplier:    dto.Price.RiskMultiplier,
			WeightSurcharge:   dto.Price.WeightSurcharge,
			InsuranceFee:      dto.Price.InsuranceFee,
			Total:             dto.Price.Total,
		},
		order.Status(dto.Status),
		history,
		dto.EstimatedPickupAt,
		dto.EstimatedDeliveryAt,
		dto.ActualPickupAt,
		dto.ActualDeliveryAt,
		order.ProofOfDelivery{
			SignatureRef: dto.ProofSignatureRef,
			PhotoRef:     dto.ProofPhotoRef,
			RecipientID:  recipientID,
		},
		dto.VerificationCode,
		dto.VerificationCodeUsed,
	)
}

func uuidPtrFromDomain(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func uuidPtrToDomain(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	converted, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}

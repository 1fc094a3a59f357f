// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence. Besides the courier row itself it owns the ratings
// child table and assembles the scoring history consumed by the performance
// calculator.
package courierrepo

import (
	"time"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CourierDTO represents the database structure for persisting courier
// aggregates. The location columns are nullable because a courier has no
// position until the first location update arrives.
type CourierDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                string    `gorm:"type:varchar(255);not null"`
	VehicleClass        int       `gorm:"not null"`
	Lat                 *float64  `gorm:"type:double precision"`
	Lng                 *float64  `gorm:"type:double precision"`
	Available           bool      `gorm:"index;not null"`
	Online              bool      `gorm:"index;not null"`
	Onboarding          int       `gorm:"index;not null"`
	CompletedDeliveries int       `gorm:"not null"`
	Rating              float64   `gorm:"not null"`
	ScoreReliability    float64   `gorm:"not null"`
	ScoreService        float64   `gorm:"not null"`
	ScoreEfficiency     float64   `gorm:"not null"`
	ScoreIntegrity      float64   `gorm:"not null"`
	PerformanceIndex    float64   `gorm:"index;not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// RatingDTO represents one customer rating of a courier.
type RatingDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	CourierID uuid.UUID `gorm:"type:uuid;index;not null"`
	Value     int       `gorm:"not null"`
	RatedAt   time.Time `gorm:"index;not null"`
}

// TableName specifies the database table name for courier ratings.
func (RatingDTO) TableName() string {
	return "courier_ratings"
}

// fromDomain converts a courier domain aggregate to its database
// representation.
func fromDomain(aggregate *courier.Courier) CourierDTO {
	var lat, lng *float64
	if location := aggregate.Location(); location != nil {
		latValue := location.Latitude()
		lngValue := location.Longitude()
		lat = &latValue
		lng = &lngValue
	}

	scores := aggregate.Scores()

	return CourierDTO{
		ID:                  aggregate.ID().Bytes(),
		Name:                aggregate.Name(),
		VehicleClass:        int(aggregate.VehicleClass()),
		Lat:                 lat,
		Lng:                 lng,
		Available:           aggregate.IsAvailable(),
		Online:              aggregate.IsOnline(),
		Onboarding:          int(aggregate.Onboarding()),
		CompletedDeliveries: aggregate.CompletedDeliveries(),
		Rating:              aggregate.Rating(),
		ScoreReliability:    scores.Reliability(),
		ScoreService:        scores.Service(),
		ScoreEfficiency:     scores.Efficiency(),
		ScoreIntegrity:      scores.Integrity(),
		PerformanceIndex:    scores.Index(),
	}
}

// toDomain converts a database DTO to a courier aggregate using
// RestoreCourier.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Lng != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	scores, err := courier.NewPerformanceScores(
		dto.ScoreReliability,
		dto.ScoreService,
		dto.ScoreEfficiency,
		dto.ScoreIntegrity,
	)
	if err != nil {
		return nil, err
	}

	return courier.RestoreCourier(
		id,
		dto.Name,
		courier.VehicleClass(dto.VehicleClass),
		location,
		dto.Available,
		dto.Online,
		courier.OnboardingStatus(dto.Onboarding),
		dto.CompletedDeliveries,
		dto.Rating,
		scores,
	)
}

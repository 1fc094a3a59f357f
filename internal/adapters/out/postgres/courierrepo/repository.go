package courierrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCourierRepository implements ports.CourierRepository using GORM.
type GormCourierRepository struct {
	db *gorm.DB
}

// NewGormCourierRepository creates a new GORM courier repository.
func NewGormCourierRepository(db *gorm.DB) *GormCourierRepository {
	return &GormCourierRepository{db: db}
}

// Add saves a new courier to the database.
func (r *GormCourierRepository) Add(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing courier to the database.
func (r *GormCourierRepository) Update(ctx context.Context, aggregate *courier.Courier) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("courier", aggregate.ID().String())
	}

	return nil
}

// Get retrieves a courier by ID.
func (r *GormCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CourierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllAvailable retrieves the allocation candidate snapshot: approved
// couriers that are on shift, accepting orders and have reported a position.
func (r *GormCourierRepository) GetAllAvailable(ctx context.Context) ([]*courier.Courier, error) {
	var dtos []CourierDTO
	if err := r.db.WithContext(ctx).
		Where("onboarding = ? AND online AND available AND lat IS NOT NULL", int(courier.OnboardingApproved)).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	couriers := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, c)
	}

	return couriers, nil
}

// GetHistory assembles the scoring input for one courier: the delivery
// punctuality records of its delivered orders, its most recent ratings and
// its lifetime delivery count.
func (r *GormCourierRepository) GetHistory(ctx context.Context, id kernel.UUID) (courier.History, error) {
	if err := id.Validate(); err != nil {
		return courier.History{}, err
	}

	var dto CourierDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return courier.History{}, errs.NewObjectNotFoundError("courier", id.String())
		}
		return courier.History{}, err
	}

	deliveries, err := r.deliveryRecords(ctx, dto)
	if err != nil {
		return courier.History{}, err
	}

	// The performance calculator only looks at the most recent window of
	// ratings, so fetching beyond it is wasted work.
	var ratingRows []RatingDTO
	if err = r.db.WithContext(ctx).
		Order("rated_at DESC").
		Limit(services.RatingWindowSize).
		Find(&ratingRows, "courier_id = ?", dto.ID).Error; err != nil {
		return courier.History{}, err
	}

	ratings := make([]courier.RatingRecord, 0, len(ratingRows))
	for _, row := range ratingRows {
		ratings = append(ratings, courier.RatingRecord{
			Value:   row.Value,
			RatedAt: row.RatedAt,
		})
	}

	return courier.History{
		Deliveries:          deliveries,
		Ratings:             ratings,
		CompletedDeliveries: dto.CompletedDeliveries,
	}, nil
}

// AddRating records one customer rating of a courier.
func (r *GormCourierRepository) AddRating(ctx context.Context, id kernel.UUID, rating courier.RatingRecord) error {
	if err := id.Validate(); err != nil {
		return err
	}

	row := RatingDTO{
		CourierID: id.Bytes(),
		Value:     rating.Value,
		RatedAt:   rating.RatedAt,
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// deliveryRecords reads the punctuality evidence of the courier's delivered
// orders from the orders table.
func (r *GormCourierRepository) deliveryRecords(ctx context.Context, dto CourierDTO) ([]courier.DeliveryRecord, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT
			estimated_delivery_at,
			actual_delivery_at
		FROM orders
		WHERE courier_id = ?
		  AND status = ?
		  AND actual_delivery_at IS NOT NULL
		ORDER BY actual_delivery_at DESC
	`, dto.ID, int(order.StatusDelivered)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]courier.DeliveryRecord, 0)
	for rows.Next() {
		var record courier.DeliveryRecord
		if err = rows.Scan(&record.EstimatedDeliveryAt, &record.ActualDeliveryAt); err != nil {
			return nil, err
		}
		deliveries = append(deliveries, record)
	}

	return deliveries, rows.Err()
}

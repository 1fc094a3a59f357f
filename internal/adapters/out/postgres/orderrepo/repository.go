package orderrepo

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add saves a new order and its creation history entry to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return r.appendHistory(ctx, dto.ID, aggregate.History())
}

// Update conditionally saves an existing order. The write carries a status
// guard: it only lands if the stored status still equals expectedPriorStatus,
// so of two concurrent transitions exactly one commits and the loser gets
// ports.ErrStaleWrite.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order, expectedPriorStatus order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expectedPriorStatus)).
		Updates(map[string]any{
			"courier_id":             dto.CourierID,
			"status":                 dto.Status,
			"verification_code_used": dto.VerificationCodeUsed,
			"proof_signature_ref":    dto.ProofSignatureRef,
			"proof_photo_ref":        dto.ProofPhotoRef,
			"proof_recipient_id":     dto.ProofRecipientID,
			"estimated_pickup_at":    dto.EstimatedPickupAt,
			"estimated_delivery_at":  dto.EstimatedDeliveryAt,
			"actual_pickup_at":       dto.ActualPickupAt,
			"actual_delivery_at":     dto.ActualDeliveryAt,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", aggregate.ID().String())
		}
		return ports.ErrStaleWrite
	}

	return r.appendHistory(ctx, dto.ID, aggregate.History())
}

// Get retrieves an order by ID, including its status history.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return r.restore(ctx, dto)
}

// GetByTrackingCode retrieves an order by its customer-facing tracking code.
func (r *GormOrderRepository) GetByTrackingCode(ctx context.Context, trackingCode string) (*order.Order, error) {
	if trackingCode == "" {
		return nil, errs.NewValueIsRequiredError("trackingCode")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_code = ?", trackingCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", trackingCode)
		}
		return nil, err
	}

	return r.restore(ctx, dto)
}

// GetFirstInPendingStatus retrieves the oldest order awaiting allocation.
func (r *GormOrderRepository) GetFirstInPendingStatus(ctx context.Context) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).
		Order("created_at").
		First(&dto, "status = ?", int(order.StatusPending)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", "first in pending status")
		}
		return nil, err
	}

	return r.restore(ctx, dto)
}

// appendHistory writes the aggregate's full in-memory history. Rows already
// persisted collide on the (order_id, seq) key and are skipped.
func (r *GormOrderRepository) appendHistory(ctx context.Context, orderID uuid.UUID, history []order.HistoryEntry) error {
	entries := historyFromDomain(orderID, history)
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entries).Error
}

func (r *GormOrderRepository) restore(ctx context.Context, dto OrderDTO) (*order.Order, error) {
	var historyRows []HistoryEntryDTO
	if err := r.db.WithContext(ctx).
		Order("seq").
		Find(&historyRows, "order_id = ?", dto.ID).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, historyRows)
}

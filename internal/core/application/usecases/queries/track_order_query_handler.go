package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackOrderQueryHandler serves the public tracking lookup. It reads the
// order row and its history directly for read performance; no aggregate is
// reconstructed.
type TrackOrderQueryHandler struct {
	db *gorm.DB
}

// NewTrackOrderQueryHandler creates a handler for tracking lookups.
func NewTrackOrderQueryHandler(db *gorm.DB) TrackOrderQueryHandler {
	return TrackOrderQueryHandler{db: db}
}

// Handle executes the tracking lookup. Returns an ObjectNotFoundError when
// no order carries the tracking code.
func (h TrackOrderQueryHandler) Handle(
	ctx context.Context,
	query TrackOrderQuery,
) (TrackOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return TrackOrderQueryResponse{}, err
	}

	var (
		response  TrackOrderQueryResponse
		status    int
		courierID *uuid.UUID
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			tracking_code,
			status,
			courier_id,
			price_total,
			estimated_pickup_at,
			estimated_delivery_at,
			actual_pickup_at,
			actual_delivery_at
		FROM orders
		WHERE tracking_code = ?
	`, query.TrackingCode()).Row()

	err := row.Scan(
		&response.TrackingCode,
		&status,
		&courierID,
		&response.PriceTotal,
		&response.EstimatedPickupAt,
		&response.EstimatedDeliveryAt,
		&response.ActualPickupAt,
		&response.ActualDeliveryAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TrackOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.TrackingCode())
		}
		return TrackOrderQueryResponse{}, err
	}

	response.Status = order.Status(status).String()
	if courierID != nil {
		id, idErr := kernel.UUIDFromBytes((*courierID)[:])
		if idErr != nil {
			return TrackOrderQueryResponse{}, idErr
		}
		response.CourierID = &id
	}

	history, err := h.history(ctx, query.TrackingCode())
	if err != nil {
		return TrackOrderQueryResponse{}, err
	}
	response.History = history

	return response, nil
}

func (h TrackOrderQueryHandler) history(ctx context.Context, trackingCode string) ([]TrackOrderHistoryEntry, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			h.from_status,
			h.to_status,
			h.actor_role,
			h.note,
			h.at
		FROM order_history h
		JOIN orders o ON o.id = h.order_id
		WHERE o.tracking_code = ?
		ORDER BY h.seq
	`, trackingCode).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]TrackOrderHistoryEntry, 0)
	for rows.Next() {
		var (
			entry      TrackOrderHistoryEntry
			fromStatus int
			toStatus   int
			actorRole  int
		)

		if err = rows.Scan(&fromStatus, &toStatus, &actorRole, &entry.Note, &entry.At); err != nil {
			return nil, err
		}

		entry.From = order.Status(fromStatus).String()
		entry.To = order.Status(toStatus).String()
		entry.ActorRole = order.Role(actorRole).String()
		history = append(history, entry)
	}

	return history, rows.Err()
}

package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetShipmentByTrackingQueryHandler reads one shipment's tracking detail
// from the database. The jsonb history and stage duration columns are
// decoded directly into the response.
type GetShipmentByTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentByTrackingQueryHandler creates a handler for tracking detail
// queries.
func NewGetShipmentByTrackingQueryHandler(db *gorm.DB) GetShipmentByTrackingQueryHandler {
	return GetShipmentByTrackingQueryHandler{db: db}
}

// Handle executes the detail query. An unknown tracking number is reported
// as errs.ErrObjectNotFound.
func (h GetShipmentByTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentByTrackingQuery,
) (GetShipmentByTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentByTrackingQueryResponse{}, err
	}

	var resp GetShipmentByTrackingQueryResponse
	var currentStage int
	var historyRaw, durationsRaw []byte

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			tracking_number,
			client,
			quantity,
			destination,
			status,
			current_stage,
			stage_durations,
			time_in_stage,
			history,
			on_hold,
			finished,
			archived,
			created_at
		FROM shipments
		WHERE tracking_number = ?
	`, query.Tracking().String()).Row()

	err := row.Scan(
		&resp.TrackingNumber,
		&resp.Client,
		&resp.Quantity,
		&resp.Destination,
		&resp.Status,
		&currentStage,
		&durationsRaw,
		&resp.TimeInStage,
		&historyRaw,
		&resp.OnHold,
		&resp.Finished,
		&resp.Archived,
		&resp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetShipmentByTrackingQueryResponse{},
				errs.NewObjectNotFoundError("trackingID", query.Tracking().String())
		}
		return GetShipmentByTrackingQueryResponse{}, err
	}

	resp.CurrentStage = shipment.Stage(currentStage).Label()

	if err := json.Unmarshal(durationsRaw, &resp.StageDurations); err != nil {
		return GetShipmentByTrackingQueryResponse{}, err
	}
	if err := json.Unmarshal(historyRaw, &resp.History); err != nil {
		return GetShipmentByTrackingQueryResponse{}, err
	}

	return resp, nil
}

package queries

import (
	"errors"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var ErrGetShipmentByTrackingQueryIsNotConstructed = errors.New(
	"GetShipmentByTrackingQuery must be created via NewGetShipmentByTrackingQuery constructor",
)

// GetShipmentByTrackingQuery retrieves the full tracking detail of one
// shipment, archived or not: current status, stage, timing and the complete
// status history.
type GetShipmentByTrackingQuery struct {
	tracking kernel.TrackingID

	guard guard.ConstructorGuard
}

// NewGetShipmentByTrackingQuery creates a detail query for one tracking
// number.
func NewGetShipmentByTrackingQuery(tracking kernel.TrackingID) (GetShipmentByTrackingQuery, error) {
	if err := tracking.Validate(); err != nil {
		return GetShipmentByTrackingQuery{}, err
	}

	return GetShipmentByTrackingQuery{
		tracking: tracking,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Tracking returns the queried tracking number.
func (q GetShipmentByTrackingQuery) Tracking() kernel.TrackingID {
	return q.tracking
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentByTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentByTrackingQueryIsNotConstructed)
}

// HistoryEntryResponse is one status change in the tracking detail.
type HistoryEntryResponse struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

// GetShipmentByTrackingQueryResponse is the full tracking detail of one
// shipment.
type GetShipmentByTrackingQueryResponse struct {
	TrackingNumber string
	Client         string
	Quantity       int
	Destination    string

	Status         string
	CurrentStage   string
	StageDurations []int
	TimeInStage    float64
	History        []HistoryEntryResponse

	OnHold    bool
	Finished  bool
	Archived  bool
	CreatedAt time.Time
}

// Package shipmentrepo provides data transfer objects and mapping functions
// for shipment persistence. It implements the repository pattern for the
// shipment aggregate, converting between the domain model and its relational
// representation.
package shipmentrepo

import (
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment
// aggregates. The tracking number carries a unique index; the insert path
// relies on it to detect collisions of randomly drawn numbers.
type ShipmentDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingNumber string    `gorm:"type:varchar(8);uniqueIndex"`
	Client         string
	Quantity       int
	Destination    string

	Status         string
	History        []HistoryEntryDTO `gorm:"serializer:json;type:jsonb"`
	CurrentStage   int
	StageDurations []int `gorm:"serializer:json;type:jsonb"`
	TimeInStage    float64

	OnHold           bool
	IncidentDecision bool
	IncidentChecked  bool
	Finished         bool `gorm:"index"`
	Archived         bool

	CreatedAt time.Time
}

// TableName specifies the database table name for shipment entities.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// HistoryEntryDTO is one status history record inside the jsonb history
// column.
type HistoryEntryDTO struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

// fromDomain converts a shipment aggregate to its database representation.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	snap := aggregate.Snapshot()

	history := make([]HistoryEntryDTO, 0, len(snap.History))
	for _, entry := range snap.History {
		history = append(history, HistoryEntryDTO{Status: entry.Status, At: entry.At})
	}

	return ShipmentDTO{
		ID:             snap.ID.Bytes(),
		TrackingNumber: snap.Tracking.String(),
		Client:         snap.Client,
		Quantity:       snap.Quantity,
		Destination:    snap.Destination,

		Status:         snap.Status,
		History:        history,
		CurrentStage:   int(snap.CurrentStage),
		StageDurations: snap.Plan.Slice(),
		TimeInStage:    snap.TimeInStage,

		OnHold:           snap.OnHold,
		IncidentDecision: snap.IncidentDecision,
		IncidentChecked:  snap.IncidentChecked,
		Finished:         snap.Finished,
		Archived:         snap.Archived,

		CreatedAt: snap.CreatedAt,
	}
}

// toDomain converts a database DTO back into a shipment aggregate via
// RestoreShipment.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	tracking, err := kernel.TrackingIDFromString(dto.TrackingNumber)
	if err != nil {
		return nil, err
	}

	plan, err := shipment.StagePlanFromSlice(dto.StageDurations)
	if err != nil {
		return nil, err
	}

	history := make([]shipment.HistoryEntry, 0, len(dto.History))
	for _, entry := range dto.History {
		history = append(history, shipment.HistoryEntry{Status: entry.Status, At: entry.At})
	}

	return shipment.RestoreShipment(shipment.Snapshot{
		ID:          id,
		Tracking:    tracking,
		Client:      dto.Client,
		Quantity:    dto.Quantity,
		Destination: dto.Destination,

		Status:       dto.Status,
		History:      history,
		CurrentStage: shipment.Stage(dto.CurrentStage),
		Plan:         plan,
		TimeInStage:  dto.TimeInStage,

		OnHold:           dto.OnHold,
		IncidentDecision: dto.IncidentDecision,
		IncidentChecked:  dto.IncidentChecked,
		Finished:         dto.Finished,
		Archived:         dto.Archived,

		CreatedAt: dto.CreatedAt,
	})
}

package ports

import (
	"context"
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
)

// ErrDuplicateTracking is returned by Add when the drawn tracking number is
// already taken. The 8-digit tracking space makes collisions possible at
// scale; the create handler regenerates and retries on this error.
var ErrDuplicateTracking = errors.New("tracking number already exists")

// ShipmentRepository defines the persistence contract for shipment
// aggregates. Lookups use the external tracking identifier, which carries a
// uniqueness constraint in every adapter.
type ShipmentRepository interface {
	// Add persists a new shipment. Returns ErrDuplicateTracking when the
	// tracking number is already in use.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment by tracking number. A missing shipment yields
	// an errs.ObjectNotFoundError; concurrent archival makes this a normal
	// outcome for incident resolvers, not only an error path.
	Get(ctx context.Context, tracking kernel.TrackingID) (*shipment.Shipment, error)

	// GetAllActive retrieves every shipment the scheduler must tick:
	// not finished and not archived.
	GetAllActive(ctx context.Context) ([]*shipment.Shipment, error)
}

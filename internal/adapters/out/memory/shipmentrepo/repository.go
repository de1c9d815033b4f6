package shipmentrepo

import (
	"context"
	"sort"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/core/ports"
	"tracking/internal/pkg/errs"
)

// Repository implements ShipmentRepository over the in-memory store. All
// reads see staged writes of the owning unit of work first, then the
// committed state.
type Repository struct {
	uow *UnitOfWork
}

// Add stages a new shipment. A tracking number already present, committed
// or staged, is reported as ports.ErrDuplicateTracking.
func (r *Repository) Add(_ context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	tracking := aggregate.Tracking().String()
	if _, ok := r.uow.staged[tracking]; ok {
		return ports.ErrDuplicateTracking
	}
	if _, ok := r.uow.store.byTracking[tracking]; ok {
		return ports.ErrDuplicateTracking
	}

	r.uow.staged[tracking] = aggregate.Snapshot()
	return nil
}

// Update stages the new state of an existing shipment.
func (r *Repository) Update(_ context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	tracking := aggregate.Tracking().String()
	if _, ok := r.uow.staged[tracking]; !ok {
		if _, ok := r.uow.store.byTracking[tracking]; !ok {
			return errs.NewObjectNotFoundError("trackingID", tracking)
		}
	}

	r.uow.staged[tracking] = aggregate.Snapshot()
	return nil
}

// Get retrieves a shipment by tracking number.
func (r *Repository) Get(_ context.Context, tracking kernel.TrackingID) (*shipment.Shipment, error) {
	if err := tracking.Validate(); err != nil {
		return nil, err
	}

	key := tracking.String()
	if snap, ok := r.uow.staged[key]; ok {
		return shipment.RestoreShipment(snap)
	}
	if snap, ok := r.uow.store.byTracking[key]; ok {
		return shipment.RestoreShipment(snap)
	}

	return nil, errs.NewObjectNotFoundError("trackingID", key)
}

// GetAllActive retrieves every shipment that is neither finished nor
// archived, ordered by tracking number for stable iteration.
func (r *Repository) GetAllActive(_ context.Context) ([]*shipment.Shipment, error) {
	merged := make(map[string]shipment.Snapshot, len(r.uow.store.byTracking))
	for tracking, snap := range r.uow.store.byTracking {
		merged[tracking] = snap
	}
	for tracking, snap := range r.uow.staged {
		merged[tracking] = snap
	}

	keys := make([]string, 0, len(merged))
	for tracking := range merged {
		keys = append(keys, tracking)
	}
	sort.Strings(keys)

	shipments := make([]*shipment.Shipment, 0, len(keys))
	for _, key := range keys {
		snap := merged[key]
		if snap.Finished || snap.Archived {
			continue
		}
		s, err := shipment.RestoreShipment(snap)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}

	return shipments, nil
}

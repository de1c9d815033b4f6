package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
)

// incidentEligibilityPercent is the chance (out of 100) that a freshly
// created shipment is marked for an incident during transit.
const incidentEligibilityPercent = 15

// maxTrackingAttempts bounds the retries on tracking number collisions.
const maxTrackingAttempts = 5

// CreateShipmentCommandHandler registers a new shipment: allocates its
// per-stage duration plan, draws incident eligibility and assigns a unique
// tracking number.
//
// Example:
//
//	handler := NewCreateShipmentCommandHandler(uowFactory, allocator, random)
//	cmd, _ := NewCreateShipmentCommand("ACME Corp", 12, "456 Oak Avenue")
//
//	tracking, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("shipment creation failed: %w", err)
//	}
//	// The shipment now progresses on every scheduler tick.
type CreateShipmentCommandHandler struct {
	uowFactory UnitOfWorkFactory
	allocator  *services.DurationAllocator
	random     RandomSource
}

// NewCreateShipmentCommandHandler creates a handler for shipment registration.
func NewCreateShipmentCommandHandler(
	uowFactory UnitOfWorkFactory,
	allocator *services.DurationAllocator,
	random RandomSource,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		allocator:  allocator,
		random:     random,
	}
}

// Handle processes the shipment creation command. Tracking numbers are drawn
// at random, so a collision with an existing shipment is possible; the insert
// is retried with a fresh number a bounded number of times.
func (h *CreateShipmentCommandHandler) Handle(
	ctx context.Context, cmd CreateShipmentCommand,
) (kernel.TrackingID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.TrackingID{}, err
	}

	plan := h.allocator.Allocate()
	incidentDecision := h.random.IntN(100)+1 <= incidentEligibilityPercent

	for attempt := 0; attempt < maxTrackingAttempts; attempt++ {
		tracking := kernel.NewRandomTrackingID()

		newShipment, err := shipment.NewShipment(
			kernel.NewUUID(),
			tracking,
			cmd.Client(),
			cmd.Quantity(),
			cmd.Destination(),
			plan,
			incidentDecision,
			time.Now(),
		)
		if err != nil {
			return kernel.TrackingID{}, err
		}

		saved, err := h.save(ctx, newShipment)
		if err != nil {
			return kernel.TrackingID{}, err
		}
		if saved {
			return tracking, nil
		}
	}

	return kernel.TrackingID{}, fmt.Errorf(
		"no unique tracking number after %d attempts: %w",
		maxTrackingAttempts, ports.ErrDuplicateTracking)
}

// save runs a single insert attempt in its own transaction. A duplicate
// tracking number reports saved=false so the caller can retry with a
// fresh number.
func (h *CreateShipmentCommandHandler) save(
	ctx context.Context, newShipment *shipment.Shipment,
) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.ShipmentRepository().Add(ctx, newShipment); err != nil {
		if errors.Is(err, ports.ErrDuplicateTracking) {
			return false, nil
		}
		return false, err
	}

	if err := uow.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/shipment"
	"tracking/internal/pkg/errs"
)

// AdvanceShipmentsCommandHandler applies one scheduler tick to the whole
// fleet: accrues time, advances stages whose budget is spent and declares
// incidents on eligible shipments entering transit.
type AdvanceShipmentsCommandHandler struct {
	uowFactory UnitOfWorkFactory
	dispatcher IncidentDispatcher
	random     RandomSource
	logger     *slog.Logger
}

// NewAdvanceShipmentsCommandHandler creates a handler for scheduler ticks.
// The dispatcher receives declared incidents for background resolution.
func NewAdvanceShipmentsCommandHandler(
	uowFactory UnitOfWorkFactory,
	dispatcher IncidentDispatcher,
	random RandomSource,
	logger *slog.Logger,
) AdvanceShipmentsCommandHandler {
	return AdvanceShipmentsCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		random:     random,
		logger:     logger.With("component", "AdvanceShipmentsCommandHandler"),
	}
}

// Handle advances every active shipment by the command's delta. Each
// shipment is processed in its own transaction, so one broken shipment
// does not stall the rest of the fleet.
func (h *AdvanceShipmentsCommandHandler) Handle(ctx context.Context, cmd AdvanceShipmentsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	active, err := h.activeShipments(ctx)
	if err != nil {
		return err
	}

	for _, current := range active {
		tracking := current.Tracking()
		if err := h.advanceOne(ctx, tracking, cmd.Delta()); err != nil {
			h.logger.ErrorContext(ctx, "shipment advance failed",
				"tracking", tracking.String(), "error", err)
		}
	}

	return nil
}

func (h *AdvanceShipmentsCommandHandler) activeShipments(ctx context.Context) ([]*shipment.Shipment, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.ShipmentRepository().GetAllActive(ctx)
}

// advanceOne re-reads the shipment under its own transaction and applies a
// single tick. The re-read matters: a resolver goroutine may have cancelled
// or resumed the shipment since the active set was listed.
func (h *AdvanceShipmentsCommandHandler) advanceOne(
	ctx context.Context, tracking kernel.TrackingID, delta float64,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()

	current, err := shipmentRepo.Get(ctx, tracking)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}

	if current.IsFinished() || current.IsArchived() || current.IsOnHold() {
		return nil
	}

	// a shipment restored at the terminal stage without the finished flag is
	// closed out immediately, before any time accounting
	if current.CurrentStage().IsLast() {
		if err := current.CloseOut(); err != nil {
			return err
		}
		if err := shipmentRepo.Update(ctx, current); err != nil {
			return err
		}
		return uow.Commit(ctx)
	}

	if current.IncidentDue() {
		days := shipment.MinIncidentDelayDays +
			h.random.IntN(shipment.MaxIncidentDelayDays-shipment.MinIncidentDelayDays+1)

		if err := current.DeclareIncident(days, time.Now()); err != nil {
			return err
		}
		if err := shipmentRepo.Update(ctx, current); err != nil {
			return err
		}
		if err := uow.Commit(ctx); err != nil {
			return err
		}

		// Dispatch only after the hold is durable, otherwise the resolver
		// could race a shipment that still looks active.
		h.dispatcher.Dispatch(tracking, days)

		h.logger.InfoContext(ctx, "incident declared",
			"tracking", tracking.String(), "delayDays", days)
		return nil
	}

	if err := current.AccrueTime(delta); err != nil {
		return err
	}

	if current.StageComplete() {
		if err := current.AdvanceStage(time.Now()); err != nil {
			return err
		}
	}

	if err := shipmentRepo.Update(ctx, current); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tracking/internal/pkg/errs"
)

// Cancellation odds grow with the incident delay: 10% for a one day delay
// plus 5% per extra day, capped at certainty.
const (
	baseCancellationChance   = 10
	perDayCancellationChance = 5
	maxCancellationChance    = 100
)

// ResolveIncidentCommandHandler settles a declared incident once its delay
// has elapsed: the shipment either resumes transit or gets cancelled, with
// odds driven by the delay length.
type ResolveIncidentCommandHandler struct {
	uowFactory UnitOfWorkFactory
	random     RandomSource
	logger     *slog.Logger
}

// NewResolveIncidentCommandHandler creates a handler for incident outcomes.
func NewResolveIncidentCommandHandler(
	uowFactory UnitOfWorkFactory,
	random RandomSource,
	logger *slog.Logger,
) ResolveIncidentCommandHandler {
	return ResolveIncidentCommandHandler{
		uowFactory: uowFactory,
		random:     random,
		logger:     logger.With("component", "ResolveIncidentCommandHandler"),
	}
}

// CancellationChance returns the percent chance that an incident with the
// given delay ends in cancellation.
func CancellationChance(delayDays int) int {
	chance := baseCancellationChance + (delayDays-1)*perDayCancellationChance
	if chance > maxCancellationChance {
		chance = maxCancellationChance
	}
	return chance
}

// Handle draws the outcome and applies it. A missing shipment is not an
// error: it may have been removed while the resolver was waiting, so the
// resolution is logged and dropped.
func (h *ResolveIncidentCommandHandler) Handle(ctx context.Context, cmd ResolveIncidentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	chance := CancellationChance(cmd.DelayDays())
	draw := h.random.IntN(100) + 1
	cancelled := draw <= chance

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()

	current, err := shipmentRepo.Get(ctx, cmd.Tracking())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			h.logger.WarnContext(ctx, "no shipment for incident resolution",
				"tracking", cmd.Tracking().String())
			return nil
		}
		return err
	}

	if cancelled {
		err = current.ResolveCancelled(time.Now())
	} else {
		err = current.ResolveResumed(time.Now())
	}
	if err != nil {
		return err
	}

	if err := shipmentRepo.Update(ctx, current); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "incident resolved",
		"tracking", cmd.Tracking().String(),
		"delayDays", cmd.DelayDays(),
		"chance", chance,
		"cancelled", cancelled)
	return nil
}

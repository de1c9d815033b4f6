package jobs

import (
	"context"
	"log/slog"
	"time"

	"tracking/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ShipmentProgressionJob drives the delivery simulation clock. It runs every
// second and advances all active shipments by the wall time elapsed since
// the previous tick, so progression stays accurate even when a tick is
// delayed.
type ShipmentProgressionJob struct {
	handler commands.AdvanceShipmentsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger

	started    bool
	registered bool
	lastTick   time.Time
}

// NewShipmentProgressionJob creates the scheduler job around the advance
// handler. Overlapping runs are skipped rather than stacked: a slow tick
// must not race a second tick over the same shipments.
func NewShipmentProgressionJob(handler commands.AdvanceShipmentsCommandHandler, logger *slog.Logger) *ShipmentProgressionJob {
	return &ShipmentProgressionJob{
		handler: handler,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger.With("component", "shipment_progression_job"),
	}
}

// Start begins ticking every second. Calling Start on a running job is a
// no-op, so the job never registers a second schedule.
func (j *ShipmentProgressionJob) Start() error {
	if j.started {
		return nil
	}
	j.lastTick = time.Now()

	// cron.Stop keeps registered entries, so a restarted job must not add
	// a second schedule for the same tick
	if !j.registered {
		if _, err := j.cron.AddFunc("* * * * * *", j.tick); err != nil {
			return err
		}
		j.registered = true
	}

	j.cron.Start()
	j.started = true
	j.logger.InfoContext(context.Background(), "Shipment progression job started (running every second)")
	return nil
}

func (j *ShipmentProgressionJob) tick() {
	ctx := context.Background()

	now := time.Now()
	delta := now.Sub(j.lastTick).Seconds()
	j.lastTick = now
	if delta <= 0 {
		return
	}

	cmd, err := commands.NewAdvanceShipmentsCommand(delta)
	if err != nil {
		j.logger.ErrorContext(ctx, "Shipment progression tick rejected", "error", err)
		return
	}

	if err := j.handler.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "Shipment progression job failed", "error", err)
	}
}

// Stop stops the shipment progression job. Stopping a job that is not
// running is a no-op.
func (j *ShipmentProgressionJob) Stop() {
	if !j.started {
		return
	}
	j.started = false
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Shipment progression job stopped")
}

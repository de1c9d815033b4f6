// Package jobs provides the background machinery of the tracking engine.
//
// This package implements cron-based scheduling using github.com/robfig/cron/v3
// plus the goroutine pool that resolves declared incidents.
//
// # Components
//
// 1. ShipmentProgressionJob - runs every second and advances all active shipments
// by the wall time elapsed since the previous tick
// 2. IncidentResolverPool - one goroutine per declared incident, waiting out the
// delay before settling the outcome
//
// # Usage
//
// Both are managed through JobManager:
//
//	pool := jobs.NewIncidentResolverPool(resolveHandler, jobs.DefaultIncidentWaitPerDay, logger)
//	job := jobs.NewShipmentProgressionJob(advanceHandler, logger)
//	jobManager := jobs.NewJobManager(job, pool)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The progression job uses the cron expression "* * * * * *", running every
// second. Overlapping runs are skipped so a slow tick never races the next one.
//
// # Error Handling
//
// - Progression failures of a single shipment are logged and skipped inside the
// advance handler; the job itself only fails when the active set cannot be read
// - Resolver failures are logged; the affected shipment stays on hold and can be
// inspected via its tracking number
package jobs

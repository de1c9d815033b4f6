package jobs

import (
	"fmt"
)

// JobManager coordinates the background machinery of the progression engine:
// the every-second progression job and the incident resolver pool. Provides
// a unified interface to start and stop both.
type JobManager struct {
	progressionJob *ShipmentProgressionJob
	resolverPool   *IncidentResolverPool
}

// NewJobManager creates a job manager over an already constructed
// progression job and resolver pool. The composition root builds both, since
// the progression handler needs the pool as its incident dispatcher.
func NewJobManager(progressionJob *ShipmentProgressionJob, resolverPool *IncidentResolverPool) *JobManager {
	return &JobManager{
		progressionJob: progressionJob,
		resolverPool:   resolverPool,
	}
}

// StartAll starts the scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.progressionJob.Start(); err != nil {
		return fmt.Errorf("failed to start shipment progression job: %w", err)
	}
	return nil
}

// StopAll stops the progression ticks first, then drains the resolver pool,
// so no new incidents get dispatched while the pool is shutting down.
func (jm *JobManager) StopAll() {
	jm.progressionJob.Stop()
	jm.resolverPool.Stop()
}

package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/kernel"
)

// DefaultIncidentWaitPerDay is how long a resolver waits per day of declared
// delay before settling the incident.
const DefaultIncidentWaitPerDay = 5 * time.Second

// IncidentResolverPool resolves declared incidents in the background. Each
// dispatched incident gets its own goroutine that waits out the delay and
// then applies the outcome through the resolve handler. The pool keeps at
// most one resolver per tracking number and drains on Stop.
type IncidentResolverPool struct {
	handler    commands.ResolveIncidentCommandHandler
	waitPerDay time.Duration
	logger     *slog.Logger

	mu      sync.Mutex
	pending map[string]struct{}
	stopped bool

	quit chan struct{}
	wg   sync.WaitGroup
}

// NewIncidentResolverPool creates a resolver pool around the resolve
// handler. waitPerDay scales the simulated delay; pass
// DefaultIncidentWaitPerDay outside of tests.
func NewIncidentResolverPool(
	handler commands.ResolveIncidentCommandHandler,
	waitPerDay time.Duration,
	logger *slog.Logger,
) *IncidentResolverPool {
	return &IncidentResolverPool{
		handler:    handler,
		waitPerDay: waitPerDay,
		logger:     logger.With("component", "incident_resolver_pool"),
		pending:    make(map[string]struct{}),
		quit:       make(chan struct{}),
	}
}

// Dispatch launches a resolver for the declared incident. It returns
// immediately; duplicate dispatches for a tracking number already being
// resolved are dropped, as are dispatches after Stop.
func (p *IncidentResolverPool) Dispatch(tracking kernel.TrackingID, delayDays int) {
	key := tracking.String()

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	if _, ok := p.pending[key]; ok {
		p.mu.Unlock()
		return
	}
	p.pending[key] = struct{}{}
	p.wg.Add(1)
	p.mu.Unlock()

	go p.resolve(tracking, delayDays)
}

// Pending reports the number of incidents currently awaiting resolution.
func (p *IncidentResolverPool) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// Stop prevents new dispatches, aborts waiting resolvers and blocks until
// every resolver goroutine has exited. Incidents still waiting when Stop is
// called stay unresolved; their shipments remain on hold in storage.
func (p *IncidentResolverPool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	p.mu.Unlock()

	close(p.quit)
	p.wg.Wait()
	p.logger.InfoContext(context.Background(), "Incident resolver pool stopped")
}

func (p *IncidentResolverPool) resolve(tracking kernel.TrackingID, delayDays int) {
	defer p.wg.Done()
	defer func() {
		p.mu.Lock()
		delete(p.pending, tracking.String())
		p.mu.Unlock()
	}()

	ctx := context.Background()

	timer := time.NewTimer(time.Duration(delayDays) * p.waitPerDay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-p.quit:
		return
	}

	cmd, err := commands.NewResolveIncidentCommand(tracking, delayDays)
	if err != nil {
		p.logger.ErrorContext(ctx, "Incident resolution rejected",
			"tracking", tracking.String(), "error", err)
		return
	}

	if err := p.handler.Handle(ctx, cmd); err != nil {
		p.logger.ErrorContext(ctx, "Incident resolution failed",
			"tracking", tracking.String(), "error", err)
	}
}

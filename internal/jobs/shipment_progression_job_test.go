package jobs_test

import (
	"sync/atomic"
	"testing"
	"time"

	memshipmentrepo "tracking/internal/adapters/out/memory/shipmentrepo"
	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopDispatcher struct{}

func (nopDispatcher) Dispatch(kernel.TrackingID, int) {}

func TestShipmentProgressionJob_RestartKeepsSingleSchedule(t *testing.T) {
	store := memshipmentrepo.NewStore()

	// an empty store makes each tick exactly one unit of work
	var ticks atomic.Int32
	factory := funcUoWFactory(func() commands.UnitOfWork {
		ticks.Add(1)
		return memshipmentrepo.NewFactory(store).Create()
	})
	handler := commands.NewAdvanceShipmentsCommandHandler(
		factory,
		nopDispatcher{},
		commands.FuncRandomSource(func(int) int { return 0 }),
		testLogger(),
	)
	job := jobs.NewShipmentProgressionJob(handler, testLogger())

	require.NoError(t, job.Start())
	// Start on a running job is a no-op
	require.NoError(t, job.Start())
	job.Stop()

	// a restart must reuse the registered schedule, not add a second one
	require.NoError(t, job.Start())
	time.Sleep(3100 * time.Millisecond)
	job.Stop()

	counted := ticks.Load()
	assert.GreaterOrEqual(t, counted, int32(2))
	assert.LessOrEqual(t, counted, int32(4))
}

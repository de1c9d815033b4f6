package cmd

import (
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"tracking/internal/adapters/out/postgres"
	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/services"
	"tracking/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	allocator  *services.DurationAllocator
	logger     *slog.Logger

	incidentWaitPerDay time.Duration
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) CompositionRoot {
	waitPerDay := config.IncidentWaitPerDay
	if waitPerDay <= 0 {
		waitPerDay = jobs.DefaultIncidentWaitPerDay
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		allocator: services.NewDurationAllocator(
			rand.NewPCG(rand.Uint64(), rand.Uint64()),
		),
		logger:             slog.New(slog.NewJSONHandler(os.Stdout, nil)),
		incidentWaitPerDay: waitPerDay,
	}
}

func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(
		c.createUoWFactory(),
		c.allocator,
		c.createRandomSource(),
	)
}

func (c *CompositionRoot) CreateArchiveShipmentCommandHandler() commands.ArchiveShipmentCommandHandler {
	return commands.NewArchiveShipmentCommandHandler(c.createUoWFactory())
}

func (c *CompositionRoot) CreateAdvanceShipmentsCommandHandler(dispatcher commands.IncidentDispatcher) commands.AdvanceShipmentsCommandHandler {
	return commands.NewAdvanceShipmentsCommandHandler(
		c.createUoWFactory(),
		dispatcher,
		c.createRandomSource(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateResolveIncidentCommandHandler() commands.ResolveIncidentCommandHandler {
	return commands.NewResolveIncidentCommandHandler(
		c.createUoWFactory(),
		c.createRandomSource(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetShipmentsQueryHandler() queries.GetShipmentsQueryHandler {
	return queries.NewGetShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentByTrackingQueryHandler() queries.GetShipmentByTrackingQueryHandler {
	return queries.NewGetShipmentByTrackingQueryHandler(c.gormDB)
}

// CreateJobManager wires the background machinery: the resolver pool settles
// incidents dispatched by the progression handler, which in turn drives all
// active shipments every second.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	resolverPool := jobs.NewIncidentResolverPool(
		c.CreateResolveIncidentCommandHandler(),
		c.incidentWaitPerDay,
		c.logger,
	)
	progressionJob := jobs.NewShipmentProgressionJob(
		c.CreateAdvanceShipmentsCommandHandler(resolverPool),
		c.logger,
	)
	return jobs.NewJobManager(progressionJob, resolverPool)
}

func (c *CompositionRoot) createUoWFactory() commands.UnitOfWorkFactory {
	return FuncUoWFactory(func() commands.UnitOfWork {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) createRandomSource() commands.RandomSource {
	return commands.FuncRandomSource(func(n int) int {
		return rand.IntN(n)
	})
}

type FuncUoWFactory func() commands.UnitOfWork

func (f FuncUoWFactory) Create() commands.UnitOfWork {
	return f()
}

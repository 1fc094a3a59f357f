package cmd

import (
	"log/slog"

	httpin "dispatch/internal/adapters/in/http"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires adapters, domain services and use cases together.
// Every handler gets a fresh unit of work per command; the outbound
// adapters are shared.
type CompositionRoot struct {
	gormDB        *gorm.DB
	uowFactory    *postgres.GormUnitOfWorkFactory
	publisher     ports.EventPublisher
	locationStore ports.LocationStore
	scoringWorker *jobs.ScoringWorker
	logger        *slog.Logger
}

func NewCompositionRoot(
	gormDB *gorm.DB,
	publisher ports.EventPublisher,
	locationStore ports.LocationStore,
	logger *slog.Logger,
) *CompositionRoot {
	root := &CompositionRoot{
		gormDB:        gormDB,
		uowFactory:    postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:     publisher,
		locationStore: locationStore,
		logger:        logger,
	}
	root.scoringWorker = jobs.NewScoringWorker(root.CreateRecomputeCourierScoresCommandHandler(), logger)
	return root
}

// ScoringWorker returns the queue that delivery and rating commands enqueue
// scoring triggers to. It is also a managed job.
func (c *CompositionRoot) ScoringWorker() *jobs.ScoringWorker {
	return c.scoringWorker
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, services.NewPricingEngine(), c.publisher, c.logger)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(f, c.publisher, c.scoringWorker, c.logger)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignCourierCommandHandler(f, services.NewAllocationEngine(), c.locationStore, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateCreateCourierCommandHandler() commands.CreateCourierCommandHandler {
	return commands.NewCreateCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateReviewCourierCommandHandler() commands.ReviewCourierCommandHandler {
	return commands.NewReviewCourierCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateSetCourierWorkStateCommandHandler() commands.SetCourierWorkStateCommandHandler {
	return commands.NewSetCourierWorkStateCommandHandler(c.courierUoWFactory())
}

func (c *CompositionRoot) CreateUpdateCourierLocationCommandHandler() commands.UpdateCourierLocationCommandHandler {
	return commands.NewUpdateCourierLocationCommandHandler(c.courierUoWFactory(), c.locationStore, c.logger)
}

func (c *CompositionRoot) CreateRecordRatingCommandHandler() commands.RecordRatingCommandHandler {
	return commands.NewRecordRatingCommandHandler(c.courierUoWFactory(), c.scoringWorker, c.logger)
}

func (c *CompositionRoot) CreateRecomputeCourierScoresCommandHandler() commands.RecomputeCourierScoresCommandHandler {
	return commands.NewRecomputeCourierScoresCommandHandler(
		c.courierUoWFactory(),
		services.NewPerformanceCalculator(),
		c.publisher,
		c.logger,
	)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateCourierLeaderboardQueryHandler() queries.CourierLeaderboardQueryHandler {
	return queries.NewCourierLeaderboardQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateAssignCourierCommandHandler(), c.scoringWorker, c.logger)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateTransitionOrderCommandHandler(),
		c.CreateAssignCourierCommandHandler(),
		c.CreateCreateCourierCommandHandler(),
		c.CreateReviewCourierCommandHandler(),
		c.CreateSetCourierWorkStateCommandHandler(),
		c.CreateUpdateCourierLocationCommandHandler(),
		c.CreateRecordRatingCommandHandler(),
		c.CreateTrackOrderQueryHandler(),
		c.CreateCourierLeaderboardQueryHandler(),
	)
}

func (c *CompositionRoot) courierUoWFactory() commands.CourierUoWFactory {
	return FuncCourierUoWFactory(func() commands.CourierUoW {
		return c.uowFactory.Create()
	})
}

type FuncCourierUoWFactory func() commands.CourierUoW

func (f FuncCourierUoWFactory) Create() commands.CourierUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

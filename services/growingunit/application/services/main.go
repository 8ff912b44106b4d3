package services

import (
	"github.com/ghuser/gardenhub/pkg/app"
	"github.com/ghuser/gardenhub/pkg/cache"
	"github.com/ghuser/gardenhub/services/growingunit/application/commands"
	"github.com/ghuser/gardenhub/services/growingunit/application/queries"
	"github.com/ghuser/gardenhub/services/growingunit/application/readmodel"
	"github.com/ghuser/gardenhub/services/growingunit/application/workflows"
	domainsvcs "github.com/ghuser/gardenhub/services/growingunit/domain/services"
	"github.com/ghuser/gardenhub/services/growingunit/infrastructure/persistence/mongo"
	"github.com/ghuser/gardenhub/services/growingunit/infrastructure/persistence/postgres"
)

// ViewCachePrefix namespaces growing unit views in Redis.
const ViewCachePrefix = "growing_unit_view"

// Services is the application-layer service container for this bounded context.
// It wires command handlers, queries and the read side with their
// infrastructure implementations.
type Services struct {
	AssertExists *domainsvcs.GrowingUnitAssertExists

	Create          *commands.GrowingUnitCreateHandler
	Update          *commands.GrowingUnitUpdateHandler
	Delete          *commands.GrowingUnitDeleteHandler
	PlantAdd        *commands.PlantAddHandler
	PlantUpdate     *commands.PlantUpdateHandler
	PlantRemove     *commands.PlantRemoveHandler
	PlantTransplant *commands.PlantTransplantHandler

	FindByID        *queries.FindGrowingUnitByID
	FindByCriteria  *queries.FindGrowingUnitsByCriteria
	CountByLocation *queries.CountGrowingUnitsByLocation
	FindOverview    *queries.FindOverview

	Views     readmodel.GrowingUnitViewRepository
	Overviews readmodel.OverviewRepository
	Overview  *readmodel.OverviewService
	cache     *cache.ViewCache[readmodel.GrowingUnitViewModel]
}

// New wires all growing unit services with infrastructure from the
// Application container. locations may be nil to skip location checks.
func New(a *app.Application, locations commands.LocationChecker) *Services {
	repo := postgres.NewGrowingUnitRepository(a.Db, a.Outbox())
	views := mongo.NewGrowingUnitViewRepository(a.Mongo.Database())
	overviews := mongo.NewOverviewRepository(a.Mongo.Database())
	publisher := a.Publisher()
	assertExists := domainsvcs.NewGrowingUnitAssertExists(repo)

	s := &Services{
		AssertExists: assertExists,

		Create:          commands.NewGrowingUnitCreateHandler(repo, publisher, locations),
		Update:          commands.NewGrowingUnitUpdateHandler(assertExists, repo, publisher, locations),
		Delete:          commands.NewGrowingUnitDeleteHandler(assertExists, repo, publisher),
		PlantAdd:        commands.NewPlantAddHandler(assertExists, repo, publisher),
		PlantUpdate:     commands.NewPlantUpdateHandler(assertExists, repo, publisher),
		PlantRemove:     commands.NewPlantRemoveHandler(assertExists, repo, publisher),
		PlantTransplant: commands.NewPlantTransplantHandler(assertExists, domainsvcs.NewPlantTransplantService(), repo, publisher),

		FindByCriteria:  queries.NewFindGrowingUnitsByCriteria(views),
		CountByLocation: queries.NewCountGrowingUnitsByLocation(views),
		FindOverview:    queries.NewFindOverview(overviews),

		Views:     views,
		Overviews: overviews,
		Overview:  readmodel.NewOverviewService(views, overviews, a.Config.OverviewBatchSize, a.Logger),
	}

	if a.Redis != nil {
		s.cache = cache.NewViewCache[readmodel.GrowingUnitViewModel](a.Redis, ViewCachePrefix)
		s.FindByID = queries.NewFindGrowingUnitByID(views, s.cache, a.Logger)
	} else {
		s.FindByID = queries.NewFindGrowingUnitByID(views, nil, a.Logger)
	}
	return s
}

// NewGrowingUnitCounter builds the dependent-unit counter the location
// context consults before deleting a location.
func NewGrowingUnitCounter(a *app.Application) *queries.CountGrowingUnitsByLocation {
	return queries.NewCountGrowingUnitsByLocation(mongo.NewGrowingUnitViewRepository(a.Mongo.Database()))
}

// OverviewScheduler picks the Temporal scheduler when a Temporal client is
// configured and refreshes inline otherwise.
func (s *Services) OverviewScheduler(a *app.Application) readmodel.OverviewScheduler {
	if a.Config.TemporalEnabled && a.TemporalClient != nil {
		return workflows.NewTemporalOverviewScheduler(a.TemporalClient.Client, a.Config.TemporalTaskQueue)
	}
	return readmodel.NewInlineOverviewScheduler(s.Overview)
}

// Projector builds the read-model projector used by the worker.
func (s *Services) Projector(a *app.Application) *readmodel.GrowingUnitProjector {
	var viewCache readmodel.ViewCache
	if s.cache != nil {
		viewCache = s.cache
	}
	return readmodel.NewGrowingUnitProjector(s.AssertExists, s.Views, viewCache, s.OverviewScheduler(a), a.Logger)
}

package services

import (
	"github.com/ghuser/gardenhub/pkg/app"
	"github.com/ghuser/gardenhub/services/location/application/commands"
	"github.com/ghuser/gardenhub/services/location/application/queries"
	"github.com/ghuser/gardenhub/services/location/application/readmodel"
	domainsvcs "github.com/ghuser/gardenhub/services/location/domain/services"
	"github.com/ghuser/gardenhub/services/location/infrastructure/persistence/mongo"
	"github.com/ghuser/gardenhub/services/location/infrastructure/persistence/postgres"
)

// Services wires the location context.
type Services struct {
	AssertExists *domainsvcs.LocationAssertExists

	Create *commands.LocationCreateHandler
	Update *commands.LocationUpdateHandler
	Delete *commands.LocationDeleteHandler

	FindByID       *queries.FindLocationByID
	FindByCriteria *queries.FindLocationsByCriteria

	Projector *readmodel.LocationProjector
}

// New builds the location services. dependents answers how many growing
// units reference a location and is consulted before deletes.
func New(a *app.Application, dependents commands.DependentGrowingUnitCounter) *Services {
	repo := postgres.NewLocationRepository(a.Db, a.Outbox())
	views := mongo.NewLocationViewRepository(a.Mongo.Database())
	publisher := a.Publisher()
	assertExists := domainsvcs.NewLocationAssertExists(repo)

	return &Services{
		AssertExists: assertExists,

		Create: commands.NewLocationCreateHandler(repo, publisher),
		Update: commands.NewLocationUpdateHandler(assertExists, repo, publisher),
		Delete: commands.NewLocationDeleteHandler(assertExists, dependents, repo, publisher),

		FindByID:       queries.NewFindLocationByID(views),
		FindByCriteria: queries.NewFindLocationsByCriteria(views),

		Projector: readmodel.NewLocationProjector(assertExists, views, a.Logger),
	}
}

package services

import (
	"github.com/ghuser/gardenhub/pkg/app"
	"github.com/ghuser/gardenhub/services/plantspecies/application/commands"
	"github.com/ghuser/gardenhub/services/plantspecies/application/queries"
	"github.com/ghuser/gardenhub/services/plantspecies/application/readmodel"
	domainsvcs "github.com/ghuser/gardenhub/services/plantspecies/domain/services"
	"github.com/ghuser/gardenhub/services/plantspecies/infrastructure/persistence/mongo"
	"github.com/ghuser/gardenhub/services/plantspecies/infrastructure/persistence/postgres"
)

type Services struct {
	Create *commands.PlantSpeciesCreateHandler
	Update *commands.PlantSpeciesUpdateHandler
	Delete *commands.PlantSpeciesDeleteHandler

	FindByID       *queries.FindPlantSpeciesByID
	FindByCriteria *queries.FindPlantSpeciesByCriteria

	Projector *readmodel.PlantSpeciesProjector
}

func New(a *app.Application) *Services {
	repo := postgres.NewPlantSpeciesRepository(a.Db, a.Outbox())
	views := mongo.NewPlantSpeciesViewRepository(a.Mongo.Database())
	publisher := a.Publisher()
	assertExists := domainsvcs.NewPlantSpeciesAssertExists(repo)
	names := domainsvcs.NewScientificNameUniqueness(repo)

	return &Services{
		Create: commands.NewPlantSpeciesCreateHandler(names, repo, publisher),
		Update: commands.NewPlantSpeciesUpdateHandler(assertExists, names, repo, publisher),
		Delete: commands.NewPlantSpeciesDeleteHandler(assertExists, repo, publisher),

		FindByID:       queries.NewFindPlantSpeciesByID(views),
		FindByCriteria: queries.NewFindPlantSpeciesByCriteria(views),

		Projector: readmodel.NewPlantSpeciesProjector(assertExists, views, a.Logger),
	}
}

package services

import (
	"github.com/ghuser/gardenhub/pkg/app"
	"github.com/ghuser/gardenhub/services/plant/application/commands"
	"github.com/ghuser/gardenhub/services/plant/application/queries"
	"github.com/ghuser/gardenhub/services/plant/application/readmodel"
	domainsvcs "github.com/ghuser/gardenhub/services/plant/domain/services"
	"github.com/ghuser/gardenhub/services/plant/infrastructure/persistence/mongo"
	"github.com/ghuser/gardenhub/services/plant/infrastructure/persistence/postgres"
)

type Services struct {
	Create       *commands.PlantCreateHandler
	Update       *commands.PlantUpdateHandler
	ChangeStatus *commands.PlantChangeStatusHandler
	Delete       *commands.PlantDeleteHandler

	FindByID       *queries.FindPlantByID
	FindByCriteria *queries.FindPlantsByCriteria

	Projector *readmodel.PlantProjector
}

func New(a *app.Application) *Services {
	repo := postgres.NewPlantRepository(a.Db, a.Outbox())
	views := mongo.NewPlantViewRepository(a.Mongo.Database())
	publisher := a.Publisher()
	assertExists := domainsvcs.NewPlantAssertExists(repo)

	return &Services{
		Create:       commands.NewPlantCreateHandler(repo, publisher),
		Update:       commands.NewPlantUpdateHandler(assertExists, repo, publisher),
		ChangeStatus: commands.NewPlantChangeStatusHandler(assertExists, repo, publisher),
		Delete:       commands.NewPlantDeleteHandler(assertExists, repo, publisher),

		FindByID:       queries.NewFindPlantByID(views),
		FindByCriteria: queries.NewFindPlantsByCriteria(views),

		Projector: readmodel.NewPlantProjector(assertExists, views, a.Logger),
	}
}

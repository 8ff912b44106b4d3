package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/gardenhub/services/growingunit/application/handlers"
	appsvcs "github.com/ghuser/gardenhub/services/growingunit/application/services"
)

// GrowingUnitRoutes registers growing unit, plant and overview endpoints on
// the provided chi router.
func GrowingUnitRoutes(r chi.Router, svcs *appsvcs.Services) {
	r.Route("/growing-units", func(r chi.Router) {
		r.Post("/", handlers.NewPostGrowingUnitHandler(svcs).Execute)
		r.Get("/", handlers.NewListGrowingUnitsHandler(svcs).Execute)
		r.Post("/transplants", handlers.NewPostTransplantHandler(svcs).Execute)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.NewGetGrowingUnitHandler(svcs).Execute)
			r.Patch("/", handlers.NewPatchGrowingUnitHandler(svcs).Execute)
			r.Delete("/", handlers.NewDeleteGrowingUnitHandler(svcs).Execute)
			r.Post("/plants", handlers.NewPostPlantHandler(svcs).Execute)
			r.Patch("/plants/{plantId}", handlers.NewPatchPlantHandler(svcs).Execute)
			r.Delete("/plants/{plantId}", handlers.NewDeletePlantHandler(svcs).Execute)
		})
	})
	r.Get("/overview", handlers.NewGetOverviewHandler(svcs).Execute)
}

package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/gardenhub/services/plantspecies/application/handlers"
	appsvcs "github.com/ghuser/gardenhub/services/plantspecies/application/services"
)

func PlantSpeciesRoutes(r chi.Router, svcs *appsvcs.Services) {
	h := handlers.NewPlantSpeciesHandlers(svcs)
	r.Route("/plant-species", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

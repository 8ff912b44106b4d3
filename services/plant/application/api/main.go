package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/gardenhub/services/plant/application/handlers"
	appsvcs "github.com/ghuser/gardenhub/services/plant/application/services"
)

// PlantRoutes registers the container-based plant endpoints on r.
func PlantRoutes(r chi.Router, svcs *appsvcs.Services) {
	h := handlers.NewPlantHandlers(svcs)
	r.Route("/plants", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Update)
		r.Put("/{id}/status", h.ChangeStatus)
		r.Delete("/{id}", h.Delete)
	})
}

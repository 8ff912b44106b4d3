package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/ghuser/gardenhub/services/location/application/handlers"
	appsvcs "github.com/ghuser/gardenhub/services/location/application/services"
)

// LocationRoutes registers the location endpoints on r.
func LocationRoutes(r chi.Router, svcs *appsvcs.Services) {
	h := handlers.NewLocationHandlers(svcs)
	r.Route("/locations", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

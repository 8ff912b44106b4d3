package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/gardenhub/pkg/errhttp"
	"github.com/ghuser/gardenhub/pkg/httpx"
	"github.com/ghuser/gardenhub/pkg/kernel"
	pkgvalidator "github.com/ghuser/gardenhub/pkg/validator"
	"github.com/ghuser/gardenhub/services/location/application/commands"
	appsvcs "github.com/ghuser/gardenhub/services/location/application/services"
)

type CreateLocationRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=255" example:"Back garden"`
	Type        string  `json:"type" validate:"required,oneof=ROOM BALCONY GARDEN GREENHOUSE TERRACE OUTDOOR" example:"GARDEN"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000" example:"Raised beds along the fence"`
} // @name CreateLocationRequest

type LocationIDResponse struct {
	ID string `json:"id"`
} // @name LocationIDResponse

type LocationHandlers struct {
	svc *appsvcs.Services
}

func NewLocationHandlers(svc *appsvcs.Services) *LocationHandlers {
	return &LocationHandlers{svc: svc}
}

// Create creates a location.
//
//	@Summary	Create location
//	@Tags		locations
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreateLocationRequest	true	"Location"
//	@Success	201		{object}	LocationIDResponse
//	@Failure	400		{object}	map[string]string
//	@Failure	422		{object}	map[string]string
//	@Router		/locations [post]
func (h *LocationHandlers) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateLocationRequest](w, r)
	if !ok {
		return
	}
	cmd, err := commands.NewLocationCreateCommand(commands.LocationCreateInput{
		Name:        req.Name,
		Type:        req.Type,
		Description: req.Description,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	id, err := h.svc.Create.Handle(r.Context(), cmd)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, LocationIDResponse{ID: id.String()})
}

// List pages through locations.
//
//	@Summary	List locations
//	@Tags		locations
//	@Produce	json
//	@Param		page	query		int		false	"Page (1-based)"
//	@Param		perPage	query		int		false	"Items per page"
//	@Param		filter	query		string	false	"Filter, e.g. type:EQUALS:ROOM"
//	@Success	200		{object}	object
//	@Router		/locations [get]
func (h *LocationHandlers) List(w http.ResponseWriter, r *http.Request) {
	criteria, err := httpx.ParseCriteria(r)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	page, err := h.svc.FindByCriteria.Execute(r.Context(), criteria)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, page)
}

// Get returns one location.
//
//	@Summary	Get location
//	@Tags		locations
//	@Produce	json
//	@Param		id	path		string	true	"Location id"
//	@Success	200	{object}	readmodel.LocationViewModel
//	@Failure	404	{object}	map[string]string
//	@Router		/locations/{id} [get]
func (h *LocationHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := kernel.ParseLocationID(chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	vm, err := h.svc.FindByID.Execute(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, vm)
}

// Update partially updates a location.
//
//	@Summary	Update location
//	@Tags		locations
//	@Accept		json
//	@Param		id		path	string							true	"Location id"
//	@Param		request	body	commands.LocationUpdateInput	true	"Fields to change"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Failure	422	{object}	map[string]string
//	@Router		/locations/{id} [patch]
func (h *LocationHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var in commands.LocationUpdateInput
	if !httpx.DecodeJSON(w, r, &in) {
		return
	}
	in.ID = chi.URLParam(r, "id")
	cmd, err := commands.NewLocationUpdateCommand(in)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if err := h.svc.Update.Handle(r.Context(), cmd); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a location that no growing unit references.
//
//	@Summary	Delete location
//	@Tags		locations
//	@Param		id	path	string	true	"Location id"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Failure	409	{object}	map[string]string
//	@Router		/locations/{id} [delete]
func (h *LocationHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	cmd, err := commands.NewLocationDeleteCommand(chi.URLParam(r, "id"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if err := h.svc.Delete.Handle(r.Context(), cmd); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

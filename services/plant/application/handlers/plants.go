package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/gardenhub/pkg/errhttp"
	"github.com/ghuser/gardenhub/pkg/httpx"
	"github.com/ghuser/gardenhub/pkg/kernel"
	pkgvalidator "github.com/ghuser/gardenhub/pkg/validator"
	"github.com/ghuser/gardenhub/services/plant/application/commands"
	appsvcs "github.com/ghuser/gardenhub/services/plant/application/services"
)

type CreatePlantRequest struct {
	ContainerID string     `json:"containerId" validate:"required,uuid"`
	Name        string     `json:"name" validate:"required,notblank,max=255" example:"Cherry tomato"`
	Species     string     `json:"species" validate:"required,max=255" example:"Solanum lycopersicum"`
	PlantedDate *time.Time `json:"plantedDate,omitempty"`
	Notes       *string    `json:"notes,omitempty"`
	Status      string     `json:"status,omitempty" validate:"omitempty,plant_status"`
} // @name CreatePlantRequest

type ChangePlantStatusRequest struct {
	Status string `json:"status" validate:"required,plant_status" example:"GROWING"`
} // @name ChangePlantStatusRequest

type PlantIDResponse struct {
	ID string `json:"id"`
} // @name PlantIDResponse

type PlantHandlers struct {
	svc *appsvcs.Services
}

func NewPlantHandlers(svc *appsvcs.Services) *PlantHandlers {
	return &PlantHandlers{svc: svc}
}

// Create adds a container-based plant.
//
//	@Summary	Create plant
//	@Tags		container-plants
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreatePlantRequest	true	"Plant"
//	@Success	201		{object}	PlantIDResponse
//	@Failure	422		{object}	map[string]string
//	@Router		/plants [post]
func (h *PlantHandlers) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreatePlantRequest](w, r)
	if !ok {
		return
	}
	cmd, err := commands.NewPlantCreateCommand(commands.PlantCreateInput{
		ContainerID: req.ContainerID,
		Name:        req.Name,
		Species:     req.Species,
		PlantedDate: req.PlantedDate,
		Notes:       req.Notes,
		Status:      req.Status,
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
	httpx.JSON(w, http.StatusCreated, PlantIDResponse{ID: id.String()})
}

// List pages through container-based plants.
//
//	@Summary	List plants
//	@Tags		container-plants
//	@Produce	json
//	@Param		filter	query		string	false	"Filter, e.g. containerId:EQUALS:<uuid>"
//	@Success	200		{object}	object
//	@Router		/plants [get]
func (h *PlantHandlers) List(w http.ResponseWriter, r *http.Request) {
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

// Get returns one plant.
//
//	@Summary	Get plant
//	@Tags		container-plants
//	@Produce	json
//	@Param		id	path		string	true	"Plant id"
//	@Success	200	{object}	readmodel.PlantViewModel
//	@Failure	404	{object}	map[string]string
//	@Router		/plants/{id} [get]
func (h *PlantHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := kernel.ParsePlantID(chi.URLParam(r, "id"))
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

// Update partially updates a plant.
//
//	@Summary	Update plant
//	@Tags		container-plants
//	@Accept		json
//	@Param		id		path	string						true	"Plant id"
//	@Param		request	body	commands.PlantUpdateInput	true	"Fields to change"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/plants/{id} [patch]
func (h *PlantHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var in commands.PlantUpdateInput
	if !httpx.DecodeJSON(w, r, &in) {
		return
	}
	in.ID = chi.URLParam(r, "id")
	cmd, err := commands.NewPlantUpdateCommand(in)
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

// ChangeStatus moves a plant to a new lifecycle status.
//
//	@Summary	Change plant status
//	@Tags		container-plants
//	@Accept		json
//	@Param		id		path	string						true	"Plant id"
//	@Param		request	body	ChangePlantStatusRequest	true	"Status"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/plants/{id}/status [put]
func (h *PlantHandlers) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[ChangePlantStatusRequest](w, r)
	if !ok {
		return
	}
	cmd, err := commands.NewPlantChangeStatusCommand(chi.URLParam(r, "id"), req.Status)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if err := h.svc.ChangeStatus.Handle(r.Context(), cmd); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Delete removes a plant.
//
//	@Summary	Delete plant
//	@Tags		container-plants
//	@Param		id	path	string	true	"Plant id"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/plants/{id} [delete]
func (h *PlantHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	cmd, err := commands.NewPlantDeleteCommand(chi.URLParam(r, "id"))
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

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/gardenhub/pkg/errhttp"
	"github.com/ghuser/gardenhub/pkg/httpx"
	"github.com/ghuser/gardenhub/pkg/kernel"
	pkgvalidator "github.com/ghuser/gardenhub/pkg/validator"
	"github.com/ghuser/gardenhub/services/plantspecies/application/commands"
	appsvcs "github.com/ghuser/gardenhub/services/plantspecies/application/services"
)

type CreatePlantSpeciesRequest struct {
	CommonName     string  `json:"commonName" validate:"required,notblank,max=255" example:"Basil"`
	ScientificName string  `json:"scientificName" validate:"required,notblank,max=255" example:"Ocimum basilicum"`
	Family         *string `json:"family,omitempty" validate:"omitempty,max=255" example:"Lamiaceae"`
	Description    *string `json:"description,omitempty"`
} // @name CreatePlantSpeciesRequest

type PlantSpeciesIDResponse struct {
	ID string `json:"id"`
} // @name PlantSpeciesIDResponse

type PlantSpeciesHandlers struct {
	svc *appsvcs.Services
}

func NewPlantSpeciesHandlers(svc *appsvcs.Services) *PlantSpeciesHandlers {
	return &PlantSpeciesHandlers{svc: svc}
}

// Create registers a plant species.
//
//	@Summary	Create plant species
//	@Tags		plant-species
//	@Accept		json
//	@Produce	json
//	@Param		request	body		CreatePlantSpeciesRequest	true	"Species"
//	@Success	201		{object}	PlantSpeciesIDResponse
//	@Failure	409		{object}	map[string]string
//	@Failure	422		{object}	map[string]string
//	@Router		/plant-species [post]
func (h *PlantSpeciesHandlers) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreatePlantSpeciesRequest](w, r)
	if !ok {
		return
	}
	cmd, err := commands.NewPlantSpeciesCreateCommand(commands.PlantSpeciesCreateInput{
		CommonName:     req.CommonName,
		ScientificName: req.ScientificName,
		Family:         req.Family,
		Description:    req.Description,
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
	httpx.JSON(w, http.StatusCreated, PlantSpeciesIDResponse{ID: id.String()})
}

// List pages through plant species.
//
//	@Summary	List plant species
//	@Tags		plant-species
//	@Produce	json
//	@Param		filter	query		string	false	"Filter, e.g. family:EQUALS:Lamiaceae"
//	@Success	200		{object}	object
//	@Router		/plant-species [get]
func (h *PlantSpeciesHandlers) List(w http.ResponseWriter, r *http.Request) {
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

// Get returns one plant species.
//
//	@Summary	Get plant species
//	@Tags		plant-species
//	@Produce	json
//	@Param		id	path		string	true	"Plant species id"
//	@Success	200	{object}	readmodel.PlantSpeciesViewModel
//	@Failure	404	{object}	map[string]string
//	@Router		/plant-species/{id} [get]
func (h *PlantSpeciesHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := kernel.ParsePlantSpeciesID(chi.URLParam(r, "id"))
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

// Update partially updates a plant species.
//
//	@Summary	Update plant species
//	@Tags		plant-species
//	@Accept		json
//	@Param		id		path	string								true	"Plant species id"
//	@Param		request	body	commands.PlantSpeciesUpdateInput	true	"Fields to change"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Failure	409	{object}	map[string]string
//	@Router		/plant-species/{id} [patch]
func (h *PlantSpeciesHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var in commands.PlantSpeciesUpdateInput
	if !httpx.DecodeJSON(w, r, &in) {
		return
	}
	in.ID = chi.URLParam(r, "id")
	cmd, err := commands.NewPlantSpeciesUpdateCommand(in)
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

// Delete removes a plant species.
//
//	@Summary	Delete plant species
//	@Tags		plant-species
//	@Param		id	path	string	true	"Plant species id"
//	@Success	204
//	@Failure	404	{object}	map[string]string
//	@Router		/plant-species/{id} [delete]
func (h *PlantSpeciesHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	cmd, err := commands.NewPlantSpeciesDeleteCommand(chi.URLParam(r, "id"))
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

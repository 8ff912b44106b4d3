package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/gardenhub/pkg/errhttp"
	"github.com/ghuser/gardenhub/pkg/httpx"
	pkgvalidator "github.com/ghuser/gardenhub/pkg/validator"
	"github.com/ghuser/gardenhub/services/growingunit/application/commands"
	appsvcs "github.com/ghuser/gardenhub/services/growingunit/application/services"
)

// AddPlantRequest is the request body for POST /api/growing-units/{id}/plants.
type AddPlantRequest struct {
	Name        string     `json:"name" validate:"required,notblank,max=255" example:"Genovese basil"`
	Species     string     `json:"species" validate:"required,max=255" example:"Ocimum basilicum"`
	PlantedDate *time.Time `json:"plantedDate,omitempty" example:"2024-04-01T00:00:00Z"`
	Notes       *string    `json:"notes,omitempty" example:"Pinch flowers weekly"`
	Status      string     `json:"status,omitempty" validate:"omitempty,plant_status" example:"PLANTED"`
} // @name AddPlantRequest

// TransplantRequest is the request body for POST /api/growing-units/transplants.
type TransplantRequest struct {
	SourceGrowingUnitID string `json:"sourceGrowingUnitId" validate:"required,uuid"`
	TargetGrowingUnitID string `json:"targetGrowingUnitId" validate:"required,uuid"`
	PlantID             string `json:"plantId" validate:"required,uuid"`
} // @name TransplantRequest

// PostPlantHandler handles POST /api/growing-units/{id}/plants.
type PostPlantHandler struct {
	svc *appsvcs.Services
}

func NewPostPlantHandler(svc *appsvcs.Services) *PostPlantHandler {
	return &PostPlantHandler{svc: svc}
}

// Execute adds a plant to a growing unit.
//
//	@Summary		Add plant
//	@Description	Adds a plant; fails when the unit is at full capacity
//	@Tags			plants
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Growing unit id"
//	@Param			request	body		AddPlantRequest	true	"Plant"
//	@Success		201		{object}	IDResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/growing-units/{id}/plants [post]
func (h *PostPlantHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[AddPlantRequest](w, r)
	if !ok {
		return
	}
	cmd, err := commands.NewPlantAddCommand(chi.URLParam(r, "id"), commands.PlantInput{
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
	plantID, err := h.svc.PlantAdd.Handle(r.Context(), cmd)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, IDResponse{ID: plantID.String()})
}

// PatchPlantHandler handles PATCH /api/growing-units/{id}/plants/{plantId}.
type PatchPlantHandler struct {
	svc *appsvcs.Services
}

func NewPatchPlantHandler(svc *appsvcs.Services) *PatchPlantHandler {
	return &PatchPlantHandler{svc: svc}
}

// Execute partially updates a plant held by a growing unit.
//
//	@Summary	Update plant
//	@Tags		plants
//	@Accept		json
//	@Param		id		path	string					true	"Growing unit id"
//	@Param		plantId	path	string					true	"Plant id"
//	@Param		request	body	commands.PlantPatchInput	true	"Fields to change"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	422	{object}	ErrorResponse
//	@Router		/growing-units/{id}/plants/{plantId} [patch]
func (h *PatchPlantHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var in commands.PlantPatchInput
	if !httpx.DecodeJSON(w, r, &in) {
		return
	}
	cmd, err := commands.NewPlantUpdateCommand(chi.URLParam(r, "id"), chi.URLParam(r, "plantId"), in)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if err := h.svc.PlantUpdate.Handle(r.Context(), cmd); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeletePlantHandler handles DELETE /api/growing-units/{id}/plants/{plantId}.
type DeletePlantHandler struct {
	svc *appsvcs.Services
}

func NewDeletePlantHandler(svc *appsvcs.Services) *DeletePlantHandler {
	return &DeletePlantHandler{svc: svc}
}

// Execute removes a plant from a growing unit.
//
//	@Summary	Remove plant
//	@Tags		plants
//	@Param		id		path	string	true	"Growing unit id"
//	@Param		plantId	path	string	true	"Plant id"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/growing-units/{id}/plants/{plantId} [delete]
func (h *DeletePlantHandler) Execute(w http.ResponseWriter, r *http.Request) {
	cmd, err := commands.NewPlantRemoveCommand(chi.URLParam(r, "id"), chi.URLParam(r, "plantId"))
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if err := h.svc.PlantRemove.Handle(r.Context(), cmd); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostTransplantHandler handles POST /api/growing-units/transplants.
type PostTransplantHandler struct {
	svc *appsvcs.Services
}

func NewPostTransplantHandler(svc *appsvcs.Services) *PostTransplantHandler {
	return &PostTransplantHandler{svc: svc}
}

// Execute moves a plant between two growing units.
//
//	@Summary		Transplant plant
//	@Description	Moves a plant from the source unit into the target unit. Both units are saved atomically.
//	@Tags			plants
//	@Accept			json
//	@Param			request	body	TransplantRequest	true	"Transplant"
//	@Success		204
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Failure		422	{object}	ErrorResponse
//	@Router			/growing-units/transplants [post]
func (h *PostTransplantHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[TransplantRequest](w, r)
	if !ok {
		return
	}
	cmd, err := commands.NewPlantTransplantCommand(commands.PlantTransplantInput{
		SourceGrowingUnitID: req.SourceGrowingUnitID,
		TargetGrowingUnitID: req.TargetGrowingUnitID,
		PlantID:             req.PlantID,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	if err := h.svc.PlantTransplant.Handle(r.Context(), cmd); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

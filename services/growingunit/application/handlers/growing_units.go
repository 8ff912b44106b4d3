package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/gardenhub/pkg/errhttp"
	"github.com/ghuser/gardenhub/pkg/httpx"
	"github.com/ghuser/gardenhub/pkg/kernel"
	pkgvalidator "github.com/ghuser/gardenhub/pkg/validator"
	"github.com/ghuser/gardenhub/services/growingunit/application/commands"
	appsvcs "github.com/ghuser/gardenhub/services/growingunit/application/services"
	"github.com/ghuser/gardenhub/services/growingunit/domain/models"
)

// CreateGrowingUnitRequest is the request body for POST /api/growing-units.
type CreateGrowingUnitRequest struct {
	LocationID *string                      `json:"locationId,omitempty" validate:"omitempty,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Name       string                       `json:"name" validate:"required,notblank,max=255" example:"Herb bed"`
	Type       string                       `json:"type" validate:"required,oneof=POT GARDEN_BED HANGING_BASKET WINDOW_BOX" example:"GARDEN_BED"`
	Capacity   int                          `json:"capacity" validate:"required,gt=0" example:"12"`
	Dimensions *models.DimensionsPrimitives `json:"dimensions,omitempty"`
} // @name CreateGrowingUnitRequest

// PostGrowingUnitHandler handles POST /api/growing-units.
type PostGrowingUnitHandler struct {
	svc *appsvcs.Services
}

func NewPostGrowingUnitHandler(svc *appsvcs.Services) *PostGrowingUnitHandler {
	return &PostGrowingUnitHandler{svc: svc}
}

// Execute creates a new growing unit.
//
//	@Summary		Create growing unit
//	@Description	Creates an empty growing unit, optionally placed at a location
//	@Tags			growing-units
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateGrowingUnitRequest	true	"Growing unit"
//	@Success		201		{object}	IDResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Failure		422		{object}	ErrorResponse
//	@Router			/growing-units [post]
func (h *PostGrowingUnitHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CreateGrowingUnitRequest](w, r)
	if !ok {
		return
	}

	cmd, err := commands.NewGrowingUnitCreateCommand(commands.GrowingUnitCreateInput{
		LocationID: req.LocationID,
		Name:       req.Name,
		Type:       req.Type,
		Capacity:   req.Capacity,
		Dimensions: req.Dimensions,
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
	httpx.JSON(w, http.StatusCreated, IDResponse{ID: id.String()})
}

// ListGrowingUnitsHandler handles GET /api/growing-units.
type ListGrowingUnitsHandler struct {
	svc *appsvcs.Services
}

func NewListGrowingUnitsHandler(svc *appsvcs.Services) *ListGrowingUnitsHandler {
	return &ListGrowingUnitsHandler{svc: svc}
}

// Execute lists growing unit views.
//
//	@Summary		List growing units
//	@Description	Pages through growing units. Filters use field:OPERATOR:value.
//	@Tags			growing-units
//	@Produce		json
//	@Param			page	query		int		false	"Page (1-based)"
//	@Param			perPage	query		int		false	"Items per page"
//	@Param			filter	query		string	false	"Filter, e.g. type:EQUALS:POT"
//	@Param			sort	query		string	false	"Sort, e.g. name:asc"
//	@Success		200		{object}	object
//	@Failure		422		{object}	ErrorResponse
//	@Router			/growing-units [get]
func (h *ListGrowingUnitsHandler) Execute(w http.ResponseWriter, r *http.Request) {
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

// GetGrowingUnitHandler handles GET /api/growing-units/{id}.
type GetGrowingUnitHandler struct {
	svc *appsvcs.Services
}

func NewGetGrowingUnitHandler(svc *appsvcs.Services) *GetGrowingUnitHandler {
	return &GetGrowingUnitHandler{svc: svc}
}

// Execute returns one growing unit view.
//
//	@Summary	Get growing unit
//	@Tags		growing-units
//	@Produce	json
//	@Param		id	path		string	true	"Growing unit id"
//	@Success	200	{object}	readmodel.GrowingUnitViewModel
//	@Failure	404	{object}	ErrorResponse
//	@Failure	422	{object}	ErrorResponse
//	@Router		/growing-units/{id} [get]
func (h *GetGrowingUnitHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, err := kernel.ParseGrowingUnitID(chi.URLParam(r, "id"))
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

// PatchGrowingUnitHandler handles PATCH /api/growing-units/{id}.
type PatchGrowingUnitHandler struct {
	svc *appsvcs.Services
}

func NewPatchGrowingUnitHandler(svc *appsvcs.Services) *PatchGrowingUnitHandler {
	return &PatchGrowingUnitHandler{svc: svc}
}

// Execute partially updates a growing unit. Omitted fields are unchanged;
// null clears locationId or dimensions.
//
//	@Summary	Update growing unit
//	@Tags		growing-units
//	@Accept		json
//	@Param		id		path	string						true	"Growing unit id"
//	@Param		request	body	commands.GrowingUnitUpdateInput	true	"Fields to change"
//	@Success	204
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Failure	409	{object}	ErrorResponse
//	@Failure	422	{object}	ErrorResponse
//	@Router		/growing-units/{id} [patch]
func (h *PatchGrowingUnitHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var in commands.GrowingUnitUpdateInput
	if !httpx.DecodeJSON(w, r, &in) {
		return
	}
	in.ID = chi.URLParam(r, "id")

	cmd, err := commands.NewGrowingUnitUpdateCommand(in)
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

// DeleteGrowingUnitHandler handles DELETE /api/growing-units/{id}.
type DeleteGrowingUnitHandler struct {
	svc *appsvcs.Services
}

func NewDeleteGrowingUnitHandler(svc *appsvcs.Services) *DeleteGrowingUnitHandler {
	return &DeleteGrowingUnitHandler{svc: svc}
}

// Execute deletes a growing unit and its plants.
//
//	@Summary	Delete growing unit
//	@Tags		growing-units
//	@Param		id	path	string	true	"Growing unit id"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Router		/growing-units/{id} [delete]
func (h *DeleteGrowingUnitHandler) Execute(w http.ResponseWriter, r *http.Request) {
	cmd, err := commands.NewGrowingUnitDeleteCommand(chi.URLParam(r, "id"))
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

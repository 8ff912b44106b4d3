package handlers

import (
	"net/http"

	"github.com/ghuser/gardenhub/pkg/errhttp"
	"github.com/ghuser/gardenhub/pkg/httpx"
	appsvcs "github.com/ghuser/gardenhub/services/growingunit/application/services"
)

// GetOverviewHandler handles GET /api/overview.
type GetOverviewHandler struct {
	svc *appsvcs.Services
}

func NewGetOverviewHandler(svc *appsvcs.Services) *GetOverviewHandler {
	return &GetOverviewHandler{svc: svc}
}

// Execute returns garden-wide statistics.
//
//	@Summary		Garden overview
//	@Description	Counts and averages across all growing units and plants. Eventually consistent.
//	@Tags			overview
//	@Produce		json
//	@Success		200	{object}	readmodel.OverviewViewModel
//	@Router			/overview [get]
func (h *GetOverviewHandler) Execute(w http.ResponseWriter, r *http.Request) {
	vm, err := h.svc.FindOverview.Execute(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, vm)
}

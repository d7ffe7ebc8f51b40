package handlers

import (
	"net/http"

	"github.com/ghuser/sweetshop/pkg/errhttp"
	"github.com/ghuser/sweetshop/pkg/httpx"
	appsvcs "github.com/ghuser/sweetshop/services/sweet/application/services"
)

// GetSalesHandler handles GET /sweets/{id}/sales requests.
type GetSalesHandler struct{ handler }

// NewGetSalesHandler returns a GetSalesHandler backed by the given services.
func NewGetSalesHandler(svc *appsvcs.Services, errs *errhttp.Writer) *GetSalesHandler {
	return &GetSalesHandler{handler{svc: svc, errs: errs}}
}

// Execute returns the units sold of a sweet as tallied from purchase events.
//
//	@Summary		Sales of a sweet
//	@Tags			sweets
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Sweet ID"
//	@Success		200	{object}	SalesResponse
//	@Failure		401	{object}	httpx.ErrorBody
//	@Failure		403	{object}	httpx.ErrorBody
//	@Failure		404	{object}	httpx.ErrorBody
//	@Router			/sweets/{id}/sales [get]
func (h *GetSalesHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := sweetID(w, r, h.errs)
	if !ok {
		return
	}
	stats, err := h.svc.Sweet.SalesStats(r.Context(), id)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, SalesResponse{SweetID: stats.SweetID, UnitsSold: stats.UnitsSold})
}

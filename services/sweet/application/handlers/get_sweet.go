package handlers

import (
	"net/http"

	"github.com/ghuser/sweetshop/pkg/errhttp"
	"github.com/ghuser/sweetshop/pkg/httpx"
	appsvcs "github.com/ghuser/sweetshop/services/sweet/application/services"
)

// GetSweetHandler handles GET /sweets/{id} requests.
type GetSweetHandler struct{ handler }

// NewGetSweetHandler returns a GetSweetHandler backed by the given services.
func NewGetSweetHandler(svc *appsvcs.Services, errs *errhttp.Writer) *GetSweetHandler {
	return &GetSweetHandler{handler{svc: svc, errs: errs}}
}

// Execute returns one sweet.
//
//	@Summary		Get sweet
//	@Tags			sweets
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Sweet ID"
//	@Success		200	{object}	SweetResponse
//	@Failure		401	{object}	httpx.ErrorBody
//	@Failure		404	{object}	httpx.ErrorBody
//	@Router			/sweets/{id} [get]
func (h *GetSweetHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := sweetID(w, r, h.errs)
	if !ok {
		return
	}
	s, err := h.svc.Sweet.Get(r.Context(), id)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(s))
}

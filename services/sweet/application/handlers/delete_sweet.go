package handlers

import (
	"net/http"

	"github.com/ghuser/sweetshop/pkg/errhttp"
	"github.com/ghuser/sweetshop/pkg/httpx"
	appsvcs "github.com/ghuser/sweetshop/services/sweet/application/services"
)

// DeleteSweetHandler handles DELETE /sweets/{id} requests.
type DeleteSweetHandler struct{ handler }

// NewDeleteSweetHandler returns a DeleteSweetHandler backed by the given services.
func NewDeleteSweetHandler(svc *appsvcs.Services, errs *errhttp.Writer) *DeleteSweetHandler {
	return &DeleteSweetHandler{handler{svc: svc, errs: errs}}
}

// Execute removes a sweet.
//
//	@Summary		Delete sweet
//	@Tags			sweets
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Sweet ID"
//	@Success		204
//	@Failure		401	{object}	httpx.ErrorBody
//	@Failure		403	{object}	httpx.ErrorBody
//	@Failure		404	{object}	httpx.ErrorBody
//	@Router			/sweets/{id} [delete]
func (h *DeleteSweetHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := sweetID(w, r, h.errs)
	if !ok {
		return
	}
	if err := h.svc.Sweet.Delete(r.Context(), id); err != nil {
		h.errs.WriteError(w, r, err)
		return
	}
	httpx.NoContent(w, http.StatusNoContent)
}

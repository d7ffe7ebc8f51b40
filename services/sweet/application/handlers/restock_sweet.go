package handlers

import (
	"net/http"

	"github.com/ghuser/sweetshop/pkg/errhttp"
	"github.com/ghuser/sweetshop/pkg/httpx"
	pkgvalidator "github.com/ghuser/sweetshop/pkg/validator"
	appsvcs "github.com/ghuser/sweetshop/services/sweet/application/services"
)

// RestockSweetHandler handles POST /sweets/{id}/restock requests.
type RestockSweetHandler struct{ handler }

// NewRestockSweetHandler returns a RestockSweetHandler backed by the given services.
func NewRestockSweetHandler(svc *appsvcs.Services, errs *errhttp.Writer) *RestockSweetHandler {
	return &RestockSweetHandler{handler{svc: svc, errs: errs}}
}

// Execute adds units to a sweet's stock.
//
//	@Summary		Restock sweet
//	@Tags			sweets
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string			true	"Sweet ID"
//	@Param			request	body		RestockRequest	true	"Units to add"
//	@Success		200		{object}	SweetResponse
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		401		{object}	httpx.ErrorBody
//	@Failure		403		{object}	httpx.ErrorBody
//	@Failure		404		{object}	httpx.ErrorBody
//	@Router			/sweets/{id}/restock [post]
func (h *RestockSweetHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := sweetID(w, r, h.errs)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[RestockRequest](w, r)
	if !ok {
		return
	}

	s, err := h.svc.Sweet.Restock(r.Context(), id, req.Quantity)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(s))
}

package handlers

import (
	"net/http"

	"github.com/ghuser/sweetshop/pkg/errhttp"
	"github.com/ghuser/sweetshop/pkg/httpx"
	pkgvalidator "github.com/ghuser/sweetshop/pkg/validator"
	appsvcs "github.com/ghuser/sweetshop/services/sweet/application/services"
)

// PutSweetHandler handles PUT /sweets/{id} requests.
type PutSweetHandler struct{ handler }

// NewPutSweetHandler returns a PutSweetHandler backed by the given services.
func NewPutSweetHandler(svc *appsvcs.Services, errs *errhttp.Writer) *PutSweetHandler {
	return &PutSweetHandler{handler{svc: svc, errs: errs}}
}

// Execute replaces a sweet's name, category and price. Stock is left unchanged.
//
//	@Summary		Update sweet
//	@Tags			sweets
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string				true	"Sweet ID"
//	@Param			request	body		SweetUpdateRequest	true	"New details"
//	@Success		200		{object}	SweetResponse
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		401		{object}	httpx.ErrorBody
//	@Failure		403		{object}	httpx.ErrorBody
//	@Failure		404		{object}	httpx.ErrorBody
//	@Router			/sweets/{id} [put]
func (h *PutSweetHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := sweetID(w, r, h.errs)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[SweetUpdateRequest](w, r)
	if !ok {
		return
	}

	s, err := h.svc.Sweet.Update(r.Context(), id, appsvcs.SweetInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    *req.Price,
	})
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(s))
}

package handlers

import (
	"net/http"

	"github.com/ghuser/sweetshop/pkg/errhttp"
	"github.com/ghuser/sweetshop/pkg/httpx"
	pkgvalidator "github.com/ghuser/sweetshop/pkg/validator"
	appsvcs "github.com/ghuser/sweetshop/services/sweet/application/services"
)

// PurchaseSweetHandler handles POST /sweets/{id}/purchase requests.
type PurchaseSweetHandler struct{ handler }

// NewPurchaseSweetHandler returns a PurchaseSweetHandler backed by the given services.
func NewPurchaseSweetHandler(svc *appsvcs.Services, errs *errhttp.Writer) *PurchaseSweetHandler {
	return &PurchaseSweetHandler{handler{svc: svc, errs: errs}}
}

// Execute buys units of a sweet; the body is optional and defaults to one unit.
//
//	@Summary		Purchase sweet
//	@Tags			sweets
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string			true	"Sweet ID"
//	@Param			request	body		PurchaseRequest	false	"Units to buy"
//	@Success		200		{object}	SweetResponse
//	@Failure		400		{object}	httpx.ErrorBody	"sold out"
//	@Failure		401		{object}	httpx.ErrorBody
//	@Failure		404		{object}	httpx.ErrorBody
//	@Router			/sweets/{id}/purchase [post]
func (h *PurchaseSweetHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := sweetID(w, r, h.errs)
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateOptionalRequest[PurchaseRequest](w, r)
	if !ok {
		return
	}
	units := int64(1)
	if req.Quantity != nil {
		units = *req.Quantity
	}

	s, err := h.svc.Sweet.Purchase(r.Context(), id, units)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponse(s))
}

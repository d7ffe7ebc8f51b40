package handlers

import (
	"net/http"

	"github.com/ghuser/sweetshop/pkg/errhttp"
	"github.com/ghuser/sweetshop/pkg/httpx"
	pkgvalidator "github.com/ghuser/sweetshop/pkg/validator"
	appsvcs "github.com/ghuser/sweetshop/services/sweet/application/services"
)

// PostSweetHandler handles POST /sweets requests.
type PostSweetHandler struct{ handler }

// NewPostSweetHandler returns a PostSweetHandler backed by the given services.
func NewPostSweetHandler(svc *appsvcs.Services, errs *errhttp.Writer) *PostSweetHandler {
	return &PostSweetHandler{handler{svc: svc, errs: errs}}
}

// Execute adds a sweet to the inventory.
//
//	@Summary		Add sweet
//	@Description	Adds a sweet with an initial stock. Requires a privileged account.
//	@Tags			sweets
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		SweetRequest	true	"Sweet to add"
//	@Success		201		{object}	SweetResponse
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		401		{object}	httpx.ErrorBody
//	@Failure		403		{object}	httpx.ErrorBody
//	@Router			/sweets [post]
func (h *PostSweetHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[SweetRequest](w, r)
	if !ok {
		return
	}

	s, err := h.svc.Sweet.Add(r.Context(), appsvcs.SweetInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    *req.Price,
	}, *req.Quantity)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toResponse(s))
}

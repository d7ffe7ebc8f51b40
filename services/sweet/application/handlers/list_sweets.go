package handlers

import (
	"net/http"

	"github.com/ghuser/sweetshop/pkg/errhttp"
	"github.com/ghuser/sweetshop/pkg/httpx"
	appsvcs "github.com/ghuser/sweetshop/services/sweet/application/services"
)

// ListSweetsHandler handles GET /sweets requests.
type ListSweetsHandler struct{ handler }

// NewListSweetsHandler returns a ListSweetsHandler backed by the given services.
func NewListSweetsHandler(svc *appsvcs.Services, errs *errhttp.Writer) *ListSweetsHandler {
	return &ListSweetsHandler{handler{svc: svc, errs: errs}}
}

// Execute lists every sweet in insertion order.
//
//	@Summary		List sweets
//	@Tags			sweets
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		SweetResponse
//	@Failure		401	{object}	httpx.ErrorBody
//	@Router			/sweets [get]
func (h *ListSweetsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.Sweet.List(r.Context())
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponses(items))
}

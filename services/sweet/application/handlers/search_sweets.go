package handlers

import (
	"net/http"

	"github.com/ghuser/sweetshop/pkg/errhttp"
	"github.com/ghuser/sweetshop/pkg/httpx"
	appsvcs "github.com/ghuser/sweetshop/services/sweet/application/services"
	"github.com/ghuser/sweetshop/services/sweet/domain/search"
)

// SearchSweetsHandler handles GET /sweets/search requests.
type SearchSweetsHandler struct{ handler }

// NewSearchSweetsHandler returns a SearchSweetsHandler backed by the given services.
func NewSearchSweetsHandler(svc *appsvcs.Services, errs *errhttp.Writer) *SearchSweetsHandler {
	return &SearchSweetsHandler{handler{svc: svc, errs: errs}}
}

// Execute returns the sweets whose name contains the name parameter and whose
// category equals the category parameter, ignoring case. Omitted parameters match everything.
//
//	@Summary		Search sweets
//	@Tags			sweets
//	@Produce		json
//	@Security		BearerAuth
//	@Param			name		query		string	false	"Name substring"
//	@Param			category	query		string	false	"Exact category"
//	@Success		200			{array}		SweetResponse
//	@Failure		401			{object}	httpx.ErrorBody
//	@Router			/sweets/search [get]
func (h *SearchSweetsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	items, err := h.svc.Sweet.Search(r.Context(), search.Query{
		Name:     q.Get("name"),
		Category: q.Get("category"),
	})
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toResponses(items))
}

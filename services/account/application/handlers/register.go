package handlers

import (
	"net/http"

	"github.com/ghuser/sweetshop/pkg/errhttp"
	"github.com/ghuser/sweetshop/pkg/httpx"
	pkgvalidator "github.com/ghuser/sweetshop/pkg/validator"
	appsvcs "github.com/ghuser/sweetshop/services/account/application/services"
)

// CredentialsRequest is the request body for POST /auth/register and POST /auth/login.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50,username" example:"alice"`
	Password string `json:"password" validate:"required,min=8,max=72"          example:"correct-horse"`
} // @name CredentialsRequest

// MessageResponse is a plain confirmation.
type MessageResponse struct {
	Message string `json:"message" example:"User created successfully"`
} // @name MessageResponse

// RegisterHandler handles POST /auth/register requests.
type RegisterHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Writer
}

// NewRegisterHandler returns a RegisterHandler backed by the given services.
func NewRegisterHandler(svc *appsvcs.Services, errs *errhttp.Writer) *RegisterHandler {
	return &RegisterHandler{svc: svc, errs: errs}
}

// Execute registers a new user.
//
//	@Summary		Register
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CredentialsRequest	true	"New account"
//	@Success		201		{object}	MessageResponse
//	@Failure		400		{object}	httpx.ErrorBody
//	@Router			/auth/register [post]
func (h *RegisterHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[CredentialsRequest](w, r)
	if !ok {
		return
	}
	if _, err := h.svc.Account.Register(r.Context(), req.Username, req.Password); err != nil {
		h.errs.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, MessageResponse{Message: "User created successfully"})
}

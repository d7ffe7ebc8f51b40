package handlers

import (
	"net/http"
	"time"

	"github.com/ghuser/sweetshop/pkg/errhttp"
	"github.com/ghuser/sweetshop/pkg/httpx"
	pkgvalidator "github.com/ghuser/sweetshop/pkg/validator"
	appsvcs "github.com/ghuser/sweetshop/services/account/application/services"
)

// LoginRequest is the request body for POST /auth/login. Rules are looser than
// registration so a bad password format reads as wrong credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=50" example:"alice"`
	Password string `json:"password" validate:"required,max=72" example:"correct-horse"`
} // @name LoginRequest

// TokenResponse is returned on successful login.
type TokenResponse struct {
	AccessToken string    `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	TokenType   string    `json:"token_type"   example:"bearer"`
	ExpiresAt   time.Time `json:"expires_at"   example:"2024-01-15T11:00:00Z"`
} // @name TokenResponse

// LoginHandler handles POST /auth/login requests.
type LoginHandler struct {
	svc  *appsvcs.Services
	errs *errhttp.Writer
}

// NewLoginHandler returns a LoginHandler backed by the given services.
func NewLoginHandler(svc *appsvcs.Services, errs *errhttp.Writer) *LoginHandler {
	return &LoginHandler{svc: svc, errs: errs}
}

// Execute exchanges credentials for a bearer token.
//
//	@Summary		Login
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequest	true	"Credentials"
//	@Success		200		{object}	TokenResponse
//	@Failure		400		{object}	httpx.ErrorBody
//	@Failure		401		{object}	httpx.ErrorBody
//	@Failure		429		{object}	httpx.ErrorBody
//	@Router			/auth/login [post]
func (h *LoginHandler) Execute(w http.ResponseWriter, r *http.Request) {
	req, ok := pkgvalidator.ValidateRequest[LoginRequest](w, r)
	if !ok {
		return
	}
	tok, err := h.svc.Account.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.errs.WriteError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, TokenResponse{
		AccessToken: tok.Token,
		TokenType:   "bearer",
		ExpiresAt:   tok.ExpiresAt,
	})
}

package auth

import (
	"net/http"
	"strings"

	"github.com/ghuser/sweetshop/pkg/httpx"
	"github.com/ghuser/sweetshop/pkg/logger"
)

const bearerPrefix = "bearer "

// RequireBearer is a chi middleware that enforces authentication via an
// "Authorization: Bearer <token>" header. The verified Account is injected
// into the request context; handlers read it with AccountFromCtx.
//
// Returns 401 with a WWW-Authenticate challenge when the header is missing,
// malformed, or the token does not verify.
func RequireBearer(verifier TokenVerifier, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w)
				return
			}

			acc, err := verifier.Verify(token)
			if err != nil {
				log.WarnContext(r.Context(), "bearer token rejected", "error", err)
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), acc)))
		})
	}
}

// RequirePrivileged rejects callers without the privilege flag before the
// request body or path is looked at. Mount it after RequireBearer.
// Returns 401 when no Account is in the context and 403 for unprivileged callers.
func RequirePrivileged(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			acc, err := AccountFromCtx(r.Context())
			if err != nil {
				unauthorized(w)
				return
			}
			if !acc.IsPrivileged {
				log.WarnContext(r.Context(), "privileged route denied",
					"username", acc.Username, "path", r.URL.Path)
				httpx.JSONError(w, http.StatusForbidden, ErrForbidden.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the token from the Authorization header. The scheme is case-insensitive.
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if len(h) <= len(bearerPrefix) || !strings.EqualFold(h[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(h[len(bearerPrefix):])
	return token, token != ""
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	httpx.JSONError(w, http.StatusUnauthorized, ErrUnauthenticated.Error())
}

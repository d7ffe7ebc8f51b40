// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapError for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ghuser/sweetshop/pkg/auth"
	"github.com/ghuser/sweetshop/pkg/httpx"
	"github.com/ghuser/sweetshop/pkg/logger"
	accountdomain "github.com/ghuser/sweetshop/services/account/domain"
	sweetdomain "github.com/ghuser/sweetshop/services/sweet/domain"
)

// Writer turns service errors into {"detail": ...} responses.
type Writer struct {
	log          logger.Logger
	isProduction bool
}

// New returns a Writer. In production the message of unmapped errors is
// replaced with the generic status text.
func New(log logger.Logger, isProduction bool) *Writer {
	return &Writer{log: log, isProduction: isProduction}
}

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors, which are logged.
func (e *Writer) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := mapError(err)
	switch status {
	case http.StatusInternalServerError:
		e.log.ErrorContext(r.Context(), "request failed", "error", err)
		detail = httpx.SafeError(err, status, e.isProduction)
	case http.StatusUnauthorized:
		if errors.Is(err, auth.ErrUnauthenticated) {
			w.Header().Set("WWW-Authenticate", "Bearer")
		}
	}
	httpx.JSONError(w, status, detail)
}

// mapError returns the status and the client-facing detail for err.
// Validation errors keep their full message so the caller sees which rule failed.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized, auth.ErrUnauthenticated.Error() // 401
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden, auth.ErrForbidden.Error() // 403
	case errors.Is(err, sweetdomain.ErrSweetNotFound):
		return http.StatusNotFound, sweetdomain.ErrSweetNotFound.Error() // 404
	case errors.Is(err, sweetdomain.ErrInsufficientStock):
		return http.StatusBadRequest, sweetdomain.ErrInsufficientStock.Error() // 400
	case errors.Is(err, sweetdomain.ErrInvalidSweet),
		errors.Is(err, sweetdomain.ErrInvalidQuantity),
		errors.Is(err, accountdomain.ErrInvalidAccount):
		return http.StatusBadRequest, err.Error() // 400
	case errors.Is(err, accountdomain.ErrUsernameTaken):
		return http.StatusBadRequest, accountdomain.ErrUsernameTaken.Error() // 400
	case errors.Is(err, accountdomain.ErrInvalidCredentials):
		return http.StatusUnauthorized, accountdomain.ErrInvalidCredentials.Error() // 401
	case errors.Is(err, accountdomain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, accountdomain.ErrTooManyAttempts.Error() // 429
	default:
		return http.StatusInternalServerError, err.Error() // 500
	}
}

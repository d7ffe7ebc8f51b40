package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/sweetshop/pkg/auth"
	"github.com/ghuser/sweetshop/pkg/logger"
	accountdomain "github.com/ghuser/sweetshop/services/account/domain"
	sweetdomain "github.com/ghuser/sweetshop/services/sweet/domain"
)

func write(t *testing.T, ew *Writer, err error) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/sweets", nil)
	ew.WriteError(w, r, err)
	return w
}

func detail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	d, ok := body["detail"]
	if !ok {
		t.Fatal("response body missing 'detail' key")
	}
	return d
}

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{"unauthenticated", auth.ErrUnauthenticated, http.StatusUnauthorized, "not authenticated"},
		{"forbidden", fmt.Errorf("delete sweet: %w", auth.ErrForbidden), http.StatusForbidden, "not enough privileges"},
		{"not found", fmt.Errorf("get sweet: %w", sweetdomain.ErrSweetNotFound), http.StatusNotFound, "sweet not found"},
		{"sold out", fmt.Errorf("purchase: %w", sweetdomain.ErrInsufficientStock), http.StatusBadRequest, "sold out"},
		{"invalid sweet keeps reason", fmt.Errorf("%w: price must not be negative", sweetdomain.ErrInvalidSweet), http.StatusBadRequest, "invalid sweet: price must not be negative"},
		{"invalid quantity", fmt.Errorf("%w: quantity must be at least 1, got 0", sweetdomain.ErrInvalidQuantity), http.StatusBadRequest, "invalid quantity: quantity must be at least 1, got 0"},
		{"invalid account", fmt.Errorf("%w: password too short", accountdomain.ErrInvalidAccount), http.StatusBadRequest, "invalid account: password too short"},
		{"username taken", accountdomain.ErrUsernameTaken, http.StatusBadRequest, "username already registered"},
		{"invalid credentials", accountdomain.ErrInvalidCredentials, http.StatusUnauthorized, "incorrect username or password"},
		{"too many attempts", accountdomain.ErrTooManyAttempts, http.StatusTooManyRequests, accountdomain.ErrTooManyAttempts.Error()},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError, "something unexpected"},
	}

	ew := New(logger.Nop(), false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := write(t, ew, tt.err)
			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if got := detail(t, w); got != tt.wantDetail {
				t.Fatalf("expected detail %q, got %q", tt.wantDetail, got)
			}
		})
	}
}

func TestWriteError_ProductionHidesInternalErrors(t *testing.T) {
	w := write(t, New(logger.Nop(), true), errors.New("pq: connection refused"))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if got := detail(t, w); got != http.StatusText(http.StatusInternalServerError) {
		t.Fatalf("expected generic detail, got %q", got)
	}
}

func TestWriteError_UnauthenticatedChallenge(t *testing.T) {
	w := write(t, New(logger.Nop(), false), auth.ErrUnauthenticated)
	if got := w.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Fatalf("expected WWW-Authenticate Bearer, got %q", got)
	}

	w = write(t, New(logger.Nop(), false), accountdomain.ErrInvalidCredentials)
	if got := w.Header().Get("WWW-Authenticate"); got != "" {
		t.Fatalf("unexpected challenge on login failure: %q", got)
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := write(t, New(logger.Nop(), false), sweetdomain.ErrSweetNotFound)
	if ct := w.Header().Get("Content-Type"); ct == "" {
		t.Fatal("Content-Type header not set")
	}
}

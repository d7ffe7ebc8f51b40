package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/sweetshop/pkg/logger"
)

func TestRequireBearer_ValidToken(t *testing.T) {
	tokens := NewTokenService(testSecret, "sweetshop", time.Minute)
	acc := Account{SubjectID: uuid.New(), Username: "alice"}
	token, _, err := tokens.Issue(acc)
	if err != nil {
		t.Fatalf("Issue() failed: %v", err)
	}

	var captured Account
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured, _ = AccountFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	r := httptest.NewRequest(http.MethodGet, "/api/sweets", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	RequireBearer(tokens, logger.Nop())(next).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if captured != acc {
		t.Fatalf("expected account %+v in context, got %+v", acc, captured)
	}
}

func TestRequireBearer_SchemeIsCaseInsensitive(t *testing.T) {
	tokens := NewTokenService(testSecret, "sweetshop", time.Minute)
	token, _, _ := tokens.Issue(Account{SubjectID: uuid.New(), Username: "bob"})

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r := httptest.NewRequest(http.MethodGet, "/api/sweets", nil)
	r.Header.Set("Authorization", "bearer "+token)
	w := httptest.NewRecorder()
	RequireBearer(tokens, logger.Nop())(next).ServeHTTP(w, r)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}

func TestRequireBearer_Rejects(t *testing.T) {
	tokens := NewTokenService(testSecret, "sweetshop", time.Minute)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"basic scheme", "Basic dXNlcjpwYXNz"},
		{"scheme only", "Bearer "},
		{"garbage token", "Bearer invalid.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Fatal("next handler should not be called")
			})

			r := httptest.NewRequest(http.MethodGet, "/api/sweets", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			RequireBearer(tokens, logger.Nop())(next).ServeHTTP(w, r)

			if w.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", w.Code)
			}
			if got := w.Header().Get("WWW-Authenticate"); got != "Bearer" {
				t.Errorf("expected WWW-Authenticate Bearer, got %q", got)
			}
			var body map[string]string
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["detail"] != "not authenticated" {
				t.Errorf("expected detail 'not authenticated', got %q", body["detail"])
			}
		})
	}
}

func TestRequirePrivileged(t *testing.T) {
	tests := []struct {
		name       string
		ctx        func(*http.Request) *http.Request
		wantStatus int
	}{
		{"privileged passes", func(r *http.Request) *http.Request {
			return r.WithContext(WithAccount(r.Context(), Account{SubjectID: uuid.New(), Username: "admin", IsPrivileged: true}))
		}, http.StatusNoContent},
		{"customer forbidden", func(r *http.Request) *http.Request {
			return r.WithContext(WithAccount(r.Context(), Account{SubjectID: uuid.New(), Username: "alice"}))
		}, http.StatusForbidden},
		{"no account", func(r *http.Request) *http.Request { return r }, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})
			r := tt.ctx(httptest.NewRequest(http.MethodDelete, "/api/sweets/not-a-uuid", nil))
			w := httptest.NewRecorder()
			RequirePrivileged(logger.Nop())(next).ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, w.Code)
			}
			if tt.wantStatus == http.StatusForbidden {
				var body map[string]string
				_ = json.NewDecoder(w.Body).Decode(&body)
				if body["detail"] != "not enough privileges" {
					t.Errorf("expected detail 'not enough privileges', got %q", body["detail"])
				}
			}
		})
	}
}

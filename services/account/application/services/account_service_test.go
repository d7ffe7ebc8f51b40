package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ghuser/sweetshop/pkg/auth"
	"github.com/ghuser/sweetshop/pkg/logger"
	accountdomain "github.com/ghuser/sweetshop/services/account/domain"
	"github.com/ghuser/sweetshop/services/account/infrastructure/persistence/memory"
)

const testSecret = "account-test-secret-long-enough!!"

// countingLimiter mirrors cache.LoginLimiter without Redis.
type countingLimiter struct {
	mu       sync.Mutex
	max      int
	failures map[string]int
	err      error
}

func newCountingLimiter(max int) *countingLimiter {
	return &countingLimiter{max: max, failures: make(map[string]int)}
}

func (l *countingLimiter) Blocked(_ context.Context, username string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return false, l.err
	}
	return l.failures[strings.ToLower(username)] >= l.max, nil
}

func (l *countingLimiter) Fail(_ context.Context, username string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[strings.ToLower(username)]++
	return l.err
}

func (l *countingLimiter) Reset(_ context.Context, username string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, strings.ToLower(username))
	return l.err
}

func newTestService(limiter LoginLimiter) (*AccountService, *auth.TokenService) {
	tokens := auth.NewTokenService(testSecret, "sweetshop", time.Hour)
	svc := NewAccountService(memory.NewUserRepository(), tokens, limiter, []string{"admin"}, logger.Nop())
	return svc, tokens
}

func TestAccountService_Register(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "correct-horse")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.PasswordHash == "correct-horse" || u.PasswordHash == "" {
		t.Fatal("password must be stored hashed")
	}

	tests := []struct {
		name     string
		username string
		password string
		want     error
	}{
		{"duplicate", "alice", "another-password", accountdomain.ErrUsernameTaken},
		{"duplicate different case", "ALICE", "another-password", accountdomain.ErrUsernameTaken},
		{"short username", "al", "long-enough", accountdomain.ErrInvalidAccount},
		{"bad characters", "al ice", "long-enough", accountdomain.ErrInvalidAccount},
		{"short password", "bob", "short", accountdomain.ErrInvalidAccount},
		{"long password", "bob", strings.Repeat("x", 73), accountdomain.ErrInvalidAccount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tt.username, tt.password); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAccountService_LoginIssuesVerifiableToken(t *testing.T) {
	svc, tokens := newTestService(nil)
	ctx := context.Background()
	_, _ = svc.Register(ctx, "admin", "admin-password")
	_, _ = svc.Register(ctx, "alice", "alice-password")

	tests := []struct {
		username   string
		password   string
		privileged bool
	}{
		{"admin", "admin-password", true},
		{"Admin", "admin-password", true},
		{"alice", "alice-password", false},
	}
	for _, tt := range tests {
		t.Run(tt.username, func(t *testing.T) {
			tok, err := svc.Login(ctx, tt.username, tt.password)
			if err != nil {
				t.Fatalf("Login: %v", err)
			}
			if !tok.ExpiresAt.After(time.Now()) {
				t.Fatalf("token already expired at %v", tok.ExpiresAt)
			}
			acc, err := tokens.Verify(tok.Token)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if acc.IsPrivileged != tt.privileged {
				t.Fatalf("privileged = %v, want %v", acc.IsPrivileged, tt.privileged)
			}
		})
	}
}

func TestAccountService_LoginFailures(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()
	_, _ = svc.Register(ctx, "alice", "alice-password")

	if _, err := svc.Login(ctx, "alice", "wrong-password"); !errors.Is(err, accountdomain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody", "whatever-pass"); !errors.Is(err, accountdomain.ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_LockoutAfterRepeatedFailures(t *testing.T) {
	limiter := newCountingLimiter(3)
	svc, _ := newTestService(limiter)
	ctx := context.Background()
	_, _ = svc.Register(ctx, "alice", "alice-password")

	for i := 0; i < 3; i++ {
		if _, err := svc.Login(ctx, "alice", "wrong-password"); !errors.Is(err, accountdomain.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}
	if _, err := svc.Login(ctx, "alice", "alice-password"); !errors.Is(err, accountdomain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts even with the right password, got %v", err)
	}

	_ = limiter.Reset(ctx, "alice")
	if _, err := svc.Login(ctx, "alice", "alice-password"); err != nil {
		t.Fatalf("login after window: %v", err)
	}
}

func TestAccountService_SuccessResetsFailures(t *testing.T) {
	limiter := newCountingLimiter(3)
	svc, _ := newTestService(limiter)
	ctx := context.Background()
	_, _ = svc.Register(ctx, "alice", "alice-password")

	_, _ = svc.Login(ctx, "alice", "wrong-password")
	_, _ = svc.Login(ctx, "alice", "wrong-password")
	if _, err := svc.Login(ctx, "alice", "alice-password"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if blocked, _ := limiter.Blocked(ctx, "alice"); blocked || limiter.failures["alice"] != 0 {
		t.Fatalf("successful login must reset the counter, got %d", limiter.failures["alice"])
	}
}

func TestAccountService_LimiterOutageFailsOpen(t *testing.T) {
	limiter := newCountingLimiter(1)
	limiter.err = errors.New("redis down")
	svc, _ := newTestService(limiter)
	ctx := context.Background()
	_, _ = svc.Register(ctx, "alice", "alice-password")

	if _, err := svc.Login(ctx, "alice", "alice-password"); err != nil {
		t.Fatalf("expected login to succeed while the limiter is down, got %v", err)
	}
}

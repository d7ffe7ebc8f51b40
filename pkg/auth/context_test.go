package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestWithAccount_AccountFromCtx(t *testing.T) {
	acc := Account{SubjectID: uuid.New(), Username: "alice"}
	ctx := WithAccount(context.Background(), acc)

	got, err := AccountFromCtx(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != acc {
		t.Fatalf("expected %+v, got %+v", acc, got)
	}
}

func TestAccountFromCtx_EmptyContext(t *testing.T) {
	_, err := AccountFromCtx(context.Background())
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAccountFromCtx_NilSubject(t *testing.T) {
	ctx := WithAccount(context.Background(), Account{Username: "ghost"})
	_, err := AccountFromCtx(ctx)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for uuid.Nil subject, got %v", err)
	}
}

func TestPrivilegedFromCtx(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		_, err := PrivilegedFromCtx(context.Background())
		if !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("expected ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("not privileged", func(t *testing.T) {
		ctx := WithAccount(context.Background(), Account{SubjectID: uuid.New(), Username: "bob"})
		_, err := PrivilegedFromCtx(ctx)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
	})

	t.Run("privileged", func(t *testing.T) {
		acc := Account{SubjectID: uuid.New(), Username: "admin", IsPrivileged: true}
		got, err := PrivilegedFromCtx(WithAccount(context.Background(), acc))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != acc {
			t.Fatalf("expected %+v, got %+v", acc, got)
		}
	})
}

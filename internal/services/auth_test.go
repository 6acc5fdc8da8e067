package services

import (
	"context"
	"errors"
	"testing"

	"github.com/UPTUZOVER/iiv-talim/internal/domain"
	"github.com/UPTUZOVER/iiv-talim/internal/pkg/apperr"
	"github.com/UPTUZOVER/iiv-talim/internal/requestdata"
)

func TestRegisterLoginRoundTrip(t *testing.T) {
	b := newBundle(t)
	ctx := context.Background()

	created, err := b.auth.Register(ctx, &domain.User{
		HemisID:   "hemis-auth-1",
		Password:  "secret123",
		FirstName: "Ali",
		LastName:  "Valiyev",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if created.Role != domain.RoleStudent {
		t.Fatalf("default role should be student, got %q", created.Role)
	}
	if created.Password == "secret123" {
		t.Fatalf("password must be stored hashed")
	}

	access, refresh, err := b.auth.Login(ctx, "hemis-auth-1", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if access == "" || refresh == "" {
		t.Fatalf("expected both tokens")
	}

	authedCtx, err := b.auth.SetContextFromToken(ctx, access)
	if err != nil {
		t.Fatalf("set context: %v", err)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd == nil || rd.UserID != created.ID || rd.Role != domain.RoleStudent {
		t.Fatalf("request data mismatch: %+v", rd)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	b := newBundle(t)
	ctx := context.Background()

	if _, err := b.auth.Register(ctx, &domain.User{HemisID: "hemis-auth-2", Password: "right"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := b.auth.Login(ctx, "hemis-auth-2", "wrong"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("wrong password should be unauthorized, got %v", err)
	}
	if _, _, err := b.auth.Login(ctx, "no-such-user", "x"); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("unknown user should be unauthorized, got %v", err)
	}
}

func TestRegisterDuplicateHemisID(t *testing.T) {
	b := newBundle(t)
	ctx := context.Background()

	if _, err := b.auth.Register(ctx, &domain.User{HemisID: "hemis-auth-3", Password: "pw"}); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := b.auth.Register(ctx, &domain.User{HemisID: "hemis-auth-3", Password: "pw"}); !errors.Is(err, apperr.ErrInvalidArgument) {
		t.Fatalf("duplicate hemis_id should be rejected, got %v", err)
	}
}

func TestRefreshTokenTypeEnforced(t *testing.T) {
	b := newBundle(t)
	ctx := context.Background()

	if _, err := b.auth.Register(ctx, &domain.User{HemisID: "hemis-auth-4", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	access, refresh, err := b.auth.Login(ctx, "hemis-auth-4", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// An access token is not usable for refreshing, and a refresh token
	// is not usable as an access token.
	if _, _, err := b.auth.Refresh(ctx, access); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("refresh with access token should fail, got %v", err)
	}
	if _, err := b.auth.SetContextFromToken(ctx, refresh); !errors.Is(err, apperr.ErrUnauthorized) {
		t.Fatalf("authenticating with refresh token should fail, got %v", err)
	}

	if _, _, err := b.auth.Refresh(ctx, refresh); err != nil {
		t.Fatalf("refresh with refresh token: %v", err)
	}
}

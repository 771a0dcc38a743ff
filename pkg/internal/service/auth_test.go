package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yeisme/artvault/pkg/internal/storage/kv"
)

func newTestAuth(t *testing.T) *AuthService {
	t.Helper()

	store, err := kv.NewKVStore(context.Background(), kv.KVTypeMemory, nil)
	if err != nil {
		t.Fatalf("memory kv: %v", err)
	}

	return newAuthServiceWith(store, "s3cret", time.Hour)
}

func TestLoginWrongPassword(t *testing.T) {
	auth := newTestAuth(t)

	if _, _, err := auth.Login(context.Background(), "wrong"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	auth := newTestAuth(t)
	ctx := context.Background()

	token, expiresIn, err := auth.Login(ctx, "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if token == "" {
		t.Fatal("empty token")
	}

	if expiresIn != 3600 {
		t.Errorf("expires_in = %d, want 3600", expiresIn)
	}

	if err := auth.Verify(ctx, token); err != nil {
		t.Errorf("verify: %v", err)
	}
}

func TestVerifyRejectsUnknownToken(t *testing.T) {
	auth := newTestAuth(t)
	ctx := context.Background()

	if err := auth.Verify(ctx, "bogus"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("unknown token err = %v, want ErrUnauthorized", err)
	}

	if err := auth.Verify(ctx, ""); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("empty token err = %v, want ErrUnauthorized", err)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	auth := newTestAuth(t)
	ctx := context.Background()

	token, _, err := auth.Login(ctx, "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := auth.Logout(ctx, token); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if err := auth.Verify(ctx, token); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("verify after logout err = %v, want ErrUnauthorized", err)
	}
}

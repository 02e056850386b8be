package auth_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dukandar/khata/internal/auth"
	"github.com/dukandar/khata/internal/storage/sqlite"
)

func newAuthenticator(t *testing.T) *auth.PasswordAuthenticator {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return auth.NewPasswordAuthenticator(store)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	reg := auth.Registration{
		Name:        "Demo User",
		Username:    "demo",
		Password:    "demo123",
		ShopName:    "Demo Shop",
		ShopAddress: "Demo Address",
	}

	user, err := a.Register(ctx, reg)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == 0 {
		t.Error("Expected user ID to be assigned")
	}
	if user.PasswordHash == reg.Password {
		t.Error("Password must not be stored in plain text")
	}

	t.Run("correct password", func(t *testing.T) {
		got, err := a.Authenticate(ctx, "demo", "demo123")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("Expected user %d, got %d", user.ID, got.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "demo", "wrong-pass"); !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "ghost", "demo123"); !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("duplicate username", func(t *testing.T) {
		if _, err := a.Register(ctx, reg); !errors.Is(err, auth.ErrUsernameExists) {
			t.Errorf("Expected ErrUsernameExists, got %v", err)
		}
	})
}

func TestRegisterValidation(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	t.Run("weak password", func(t *testing.T) {
		_, err := a.Register(ctx, auth.Registration{Username: "shorty", Password: "123"})
		if !errors.Is(err, auth.ErrWeakPassword) {
			t.Errorf("Expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("missing username", func(t *testing.T) {
		_, err := a.Register(ctx, auth.Registration{Username: "   ", Password: "demo123"})
		if !errors.Is(err, auth.ErrMissingUsername) {
			t.Errorf("Expected ErrMissingUsername, got %v", err)
		}
	})
}

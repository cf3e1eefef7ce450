package users

import (
	"context"
	"testing"

	"github.com/termination/collab-text-editor/internal/password"
)

func newTestService() *Service {
	return NewService(NewMemoryUserRepository(), password.NewBcryptHasher())
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "alice@example.com", "hunter2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected generated user id")
	}
	if u.Username != "alice" || u.Email != "alice@example.com" {
		t.Fatalf("unexpected identity fields: %+v", u)
	}
	if u.PasswordHash == "hunter2" || u.PasswordHash == "" {
		t.Fatalf("password must be stored hashed, got %q", u.PasswordHash)
	}
	if u.CreatedAt.IsZero() {
		t.Fatal("expected createdAt to be set")
	}

	got, err := svc.Login(ctx, "alice@example.com", "hunter2")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("login returned different user id: %s != %s", got.ID, u.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "dup@example.com", "pw1"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	_, err := svc.Register(ctx, "bob", "dup@example.com", "pw2")
	if err != ErrEmailInUse {
		t.Fatalf("expected ErrEmailInUse, got %v", err)
	}
}

func TestLoginFailures(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "alice@example.com", "hunter2"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	// wrong password
	if _, err := svc.Login(ctx, "alice@example.com", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	// unknown email
	if _, err := svc.Login(ctx, "nobody@example.com", "hunter2"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

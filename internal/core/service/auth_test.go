package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/retailcore/inventory-system/internal/core/domain"
	"github.com/retailcore/inventory-system/internal/infrastructure/db/memory"
	"github.com/retailcore/inventory-system/internal/infrastructure/queue"
)

func newTestAuthService(t *testing.T, users *stubUserRepo) (*AuthService, *SessionManager) {
	t.Helper()
	pool := queue.NewHashPool(2, zerolog.Nop())
	t.Cleanup(pool.Close)

	creds := NewCredentialStore(bcrypt.MinCost, pool, zerolog.Nop())
	registry := NewRoleRegistry(newStubRoleRepo(
		&domain.Role{ID: "clerk", Name: "Clerk", Permissions: domain.PermissionSet{domain.CapOrdersView: true}},
	))
	index := NewStoreAssignmentIndex(newStubAssignmentRepo())
	sessions := NewSessionManager(memory.NewSessionStore(), time.Hour, false)

	return NewAuthService(users, registry, index, sessions, creds, zerolog.Nop()), sessions
}

func mustHash(t *testing.T, plaintext string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(hash)
}

func TestAuthService_Login_Success(t *testing.T) {
	users := newStubUserRepo(&domain.User{
		ID: "u1", Username: "carol", RoleID: "clerk", PasswordHash: mustHash(t, "s3cret"),
	})
	svc, sessions := newTestAuthService(t, users)
	ctx := context.Background()

	session, user, err := svc.Login(ctx, "carol", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user == nil || user.ID != "u1" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if session.Token == "" {
		t.Fatalf("expected session token")
	}

	got, err := sessions.Validate(ctx, session.Token)
	if err != nil {
		t.Fatalf("issued session does not validate: %v", err)
	}
	if got.UserID != "u1" {
		t.Fatalf("session bound to wrong user: %s", got.UserID)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := newStubUserRepo(&domain.User{
		ID: "u1", Username: "carol", RoleID: "clerk", PasswordHash: mustHash(t, "s3cret"),
	})
	svc, _ := newTestAuthService(t, users)

	if _, _, err := svc.Login(context.Background(), "carol", "nope"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser_SameError(t *testing.T) {
	users := newStubUserRepo()
	svc, _ := newTestAuthService(t, users)

	// Unknown username must be indistinguishable from a wrong password.
	if _, _, err := svc.Login(context.Background(), "nobody", "whatever"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	svc, _ := newTestAuthService(t, newStubUserRepo())

	for _, tc := range [][2]string{{"", "pw"}, {"user", ""}, {"", ""}} {
		if _, _, err := svc.Login(context.Background(), tc[0], tc[1]); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("Login(%q, %q): expected ErrInvalidCredentials, got %v", tc[0], tc[1], err)
		}
	}
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	users := newStubUserRepo(&domain.User{
		ID: "u1", Username: "carol", RoleID: "clerk", PasswordHash: mustHash(t, "s3cret"),
	})
	svc, sessions := newTestAuthService(t, users)
	ctx := context.Background()

	session, _, err := svc.Login(ctx, "carol", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := svc.Logout(ctx, session.Token); err != nil {
			t.Fatalf("Logout #%d: %v", i, err)
		}
	}
	if _, err := sessions.Validate(ctx, session.Token); !errors.Is(err, domain.ErrSessionInvalid) {
		t.Fatalf("session must be invalid after logout, got %v", err)
	}
}

func TestAuthService_Summary(t *testing.T) {
	users := newStubUserRepo(&domain.User{
		ID: "u1", Username: "carol", RoleID: "clerk", PasswordHash: mustHash(t, "s3cret"),
	})
	svc, _ := newTestAuthService(t, users)
	ctx := context.Background()

	session, _, err := svc.Login(ctx, "carol", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	summary, err := svc.Summary(ctx, session.Token)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.User.Username != "carol" || summary.RoleName != "Clerk" {
		t.Fatalf("unexpected summary identity: %+v", summary)
	}
	if summary.IsSystemAdmin {
		t.Fatalf("clerk reported as system admin")
	}
	if len(summary.Capabilities) != 1 || summary.Capabilities[0] != domain.CapOrdersView {
		t.Fatalf("unexpected capabilities: %v", summary.Capabilities)
	}

	if _, err := svc.Summary(ctx, "bogus"); !errors.Is(err, domain.ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
}

func TestAuthService_ResetPassword(t *testing.T) {
	users := newStubUserRepo(&domain.User{
		ID: "u1", Username: "carol", RoleID: "clerk", PasswordHash: mustHash(t, "old-pw"),
	})
	svc, _ := newTestAuthService(t, users)
	ctx := context.Background()

	if err := svc.ResetPassword(ctx, "carol", "new-pw"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}

	if _, _, err := svc.Login(ctx, "carol", "old-pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("old password must stop working, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "carol", "new-pw"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}

	if err := svc.ResetPassword(ctx, "ghost", "pw"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

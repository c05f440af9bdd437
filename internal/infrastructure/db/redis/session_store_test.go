package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/retailcore/inventory-system/internal/core/domain"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSessionStore(client), mr
}

func testSession(token string, ttl time.Duration) *domain.Session {
	now := time.Now().UTC()
	return &domain.Session{
		Token:      token,
		UserID:     "u1",
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
		LastSeenAt: now,
	}
}

func TestSessionStore_SaveFindDelete(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testSession("tok", time.Hour)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Find(ctx, "tok")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.UserID != "u1" || got.Token != "tok" {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := store.Delete(ctx, "tok"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Find(ctx, "tok"); !errors.Is(err, domain.ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid after delete, got %v", err)
	}

	// Deleting again is a no-op.
	if err := store.Delete(ctx, "tok"); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
}

func TestSessionStore_Find_ExpiredKeyEvicted(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, testSession("tok", time.Hour)); err != nil {
		t.Fatalf("Save: %v", err)
	}

	mr.FastForward(2 * time.Hour)
	if _, err := store.Find(ctx, "tok"); !errors.Is(err, domain.ErrSessionInvalid) {
		t.Fatalf("expected expired session invalid, got %v", err)
	}
}

func TestSessionStore_Refresh_UnknownToken(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Refresh(context.Background(), testSession("never-saved", time.Hour))
	if !errors.Is(err, domain.ErrSessionInvalid) {
		t.Fatalf("expected ErrSessionInvalid, got %v", err)
	}
}

func TestSessionStore_Refresh_DeletedTokenStaysDeleted(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	session := testSession("tok", time.Hour)
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, "tok"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if err := store.Refresh(ctx, session); !errors.Is(err, domain.ErrSessionInvalid) {
		t.Fatalf("refresh of deleted token must fail, got %v", err)
	}
	if _, err := store.Find(ctx, "tok"); !errors.Is(err, domain.ErrSessionInvalid) {
		t.Fatalf("deleted token re-appeared, got %v", err)
	}
}

func TestSessionStore_Refresh_ExtendsExpiry(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	first := testSession("tok", time.Hour)
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	slid := testSession("tok", 2*time.Hour)
	if err := store.Refresh(ctx, slid); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	got, err := store.Find(ctx, "tok")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if !got.ExpiresAt.After(first.ExpiresAt) {
		t.Fatalf("refresh did not extend expiry: %v", got.ExpiresAt)
	}
}

func TestSessionStore_Refresh_NeverMovesExpiryBackwards(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	late := testSession("tok", 2*time.Hour)
	if err := store.Save(ctx, late); err != nil {
		t.Fatalf("Save: %v", err)
	}

	early := testSession("tok", time.Hour)
	if err := store.Refresh(ctx, early); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	got, err := store.Find(ctx, "tok")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if got.ExpiresAt.Before(late.ExpiresAt) {
		t.Fatalf("refresh moved expiry backwards: %v < %v", got.ExpiresAt, late.ExpiresAt)
	}
}

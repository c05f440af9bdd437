package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/retailcore/inventory-system/internal/core/domain"
	"github.com/retailcore/inventory-system/internal/infrastructure/queue"
)

func newTestCredentialStore(t *testing.T) *CredentialStore {
	t.Helper()
	pool := queue.NewHashPool(2, zerolog.Nop())
	t.Cleanup(pool.Close)
	return NewCredentialStore(bcrypt.MinCost, pool, zerolog.Nop())
}

func TestCredentialStore_HashVerify_Roundtrip(t *testing.T) {
	creds := newTestCredentialStore(t)
	ctx := context.Background()

	hash, err := creds.Hash(ctx, "s3cret")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "s3cret" || hash == "" {
		t.Fatalf("unexpected hash output: %q", hash)
	}

	ok, err := creds.Verify(ctx, "s3cret", hash)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if !ok {
		t.Fatalf("expected matching password to verify")
	}

	ok, err = creds.Verify(ctx, "wrong", hash)
	if err != nil {
		t.Fatalf("Verify returned error for wrong password: %v", err)
	}
	if ok {
		t.Fatalf("wrong password must not verify")
	}
}

func TestCredentialStore_Hash_SaltUniqueness(t *testing.T) {
	creds := newTestCredentialStore(t)
	ctx := context.Background()

	h1, err := creds.Hash(ctx, "same-input")
	if err != nil {
		t.Fatalf("first Hash: %v", err)
	}
	h2, err := creds.Hash(ctx, "same-input")
	if err != nil {
		t.Fatalf("second Hash: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("two hashes of the same input must differ (random salt)")
	}
}

func TestCredentialStore_Verify_MalformedCredential(t *testing.T) {
	creds := newTestCredentialStore(t)

	ok, err := creds.Verify(context.Background(), "anything", "not-a-bcrypt-hash")
	if ok {
		t.Fatalf("malformed credential must not verify")
	}
	if !errors.Is(err, domain.ErrIntegrity) {
		t.Fatalf("expected ErrIntegrity, got %v", err)
	}
}

func TestCredentialStore_Hash_CancelledContext(t *testing.T) {
	creds := newTestCredentialStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := creds.Hash(ctx, "s3cret"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

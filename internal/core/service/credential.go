package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/retailcore/inventory-system/internal/core/domain"
	"github.com/retailcore/inventory-system/internal/infrastructure/queue"
)

// CredentialStore hashes and verifies user passwords with bcrypt. The hash
// string is self-describing: algorithm tag, cost and per-call random salt are
// embedded, so two hashes of the same plaintext never match byte-for-byte.
// All bcrypt work runs on the shared worker pool so request goroutines are
// never pinned by key stretching.
type CredentialStore struct {
	cost int
	pool *queue.HashPool
	log  zerolog.Logger
}

// NewCredentialStore builds a CredentialStore with the given bcrypt cost.
// Costs outside bcrypt's valid range fall back to bcrypt.DefaultCost.
func NewCredentialStore(cost int, pool *queue.HashPool, log zerolog.Logger) *CredentialStore {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &CredentialStore{cost: cost, pool: pool, log: log}
}

// Hash produces a salted, algorithm-tagged credential for plaintext.
func (s *CredentialStore) Hash(ctx context.Context, plaintext string) (string, error) {
	var (
		hash []byte
		err  error
	)
	if runErr := s.pool.Run(ctx, func() {
		hash, err = bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	}); runErr != nil {
		return "", fmt.Errorf("hash password: %w", runErr)
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify recomputes the hash using the salt and cost embedded in credential
// and compares in constant time. A wrong password is (false, nil), never an
// error. A malformed stored credential is a data-integrity failure: it is
// logged in full and returned wrapped in domain.ErrIntegrity.
func (s *CredentialStore) Verify(ctx context.Context, plaintext, credential string) (bool, error) {
	var err error
	if runErr := s.pool.Run(ctx, func() {
		err = bcrypt.CompareHashAndPassword([]byte(credential), []byte(plaintext))
	}); runErr != nil {
		return false, fmt.Errorf("verify password: %w", runErr)
	}

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		// Anything else means the stored record is not a valid bcrypt
		// credential (truncated hash, unknown version tag, bad cost).
		s.log.Error().Err(err).Msg("stored credential is malformed")
		return false, fmt.Errorf("verify credential: %w", domain.ErrIntegrity)
	}
}

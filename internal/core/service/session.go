package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/retailcore/inventory-system/internal/api/metrics"
	"github.com/retailcore/inventory-system/internal/core/domain"
	"github.com/retailcore/inventory-system/internal/core/ports"
)

const tokenBytes = 32

// SessionManager issues, validates and revokes sessions. Tokens are 256-bit
// crypto-random values, never reused, so a deleted entry and a revoked one
// are observationally identical: both make Validate fail forever after.
type SessionManager struct {
	store   ports.SessionStore
	ttl     time.Duration
	sliding bool
	now     ports.Clock
}

// NewSessionManager builds a manager issuing sessions with the given TTL.
// When sliding is true, each successful Validate pushes expiry out by a full
// TTL from the moment of activity.
func NewSessionManager(store ports.SessionStore, ttl time.Duration, sliding bool) *SessionManager {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionManager{store: store, ttl: ttl, sliding: sliding, now: time.Now}
}

// Create issues a fresh session for userID. Multiple concurrent sessions per
// user are allowed and fully independent.
func (m *SessionManager) Create(ctx context.Context, userID string) (*domain.Session, error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	now := m.now().UTC()
	session := &domain.Session{
		Token:      token,
		UserID:     userID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(m.ttl),
		LastSeenAt: now,
	}
	if err := m.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	metrics.SessionsIssuedTotal.Inc()
	return session, nil
}

// Validate resolves token to its session. Unknown, expired and revoked
// tokens all return domain.ErrSessionInvalid. On success the last-activity
// timestamp is refreshed, and expiry extended when sliding expiration is on.
func (m *SessionManager) Validate(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrSessionInvalid
	}

	session, err := m.store.Find(ctx, token)
	if err != nil {
		return nil, err
	}

	now := m.now().UTC()
	if session.Expired(now) {
		// Expired is irreversible; drop the entry so the store does not
		// accumulate dead sessions.
		_ = m.store.Delete(ctx, token)
		return nil, domain.ErrSessionInvalid
	}

	session.LastSeenAt = now
	if m.sliding {
		session.ExpiresAt = now.Add(m.ttl)
	}
	// Refresh is conditional on the token still being present, so a Revoke
	// racing this call wins: the refresh fails instead of re-inserting the
	// session, and revocation stays final.
	if err := m.store.Refresh(ctx, session); err != nil {
		if errors.Is(err, domain.ErrSessionInvalid) {
			return nil, domain.ErrSessionInvalid
		}
		return nil, fmt.Errorf("refresh session: %w", err)
	}
	return session, nil
}

// Revoke transitions the session to Revoked. Idempotent: revoking an unknown
// or already-revoked token is a no-op.
func (m *SessionManager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.store.Delete(ctx, token); err != nil {
		if errors.Is(err, domain.ErrSessionInvalid) {
			return nil
		}
		return fmt.Errorf("revoke session: %w", err)
	}
	metrics.SessionsRevokedTotal.Inc()
	return nil
}

func newToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/retailcore/inventory-system/internal/core/domain"
)

const sessionKeyPrefix = "session:"

// SessionStore persists sessions in Redis so they survive application
// restarts, bounded by their TTL. Every operation touches a single key, and
// single-key Redis commands are atomic, which gives the required per-token
// linearizability without any cross-token coordination.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

type sessionRecord struct {
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
	// ExpiresAtMS duplicates ExpiresAt as unix milliseconds so the refresh
	// script can compare expiries without parsing RFC 3339 in Lua.
	ExpiresAtMS int64 `json:"expires_at_ms"`
}

// refreshScript updates a session only while its key still exists, keeping
// whichever record expires later. Scripts run atomically in Redis, so a DEL
// interleaved with a refresh can never be undone and two concurrent sliding
// refreshes can never move expiry backwards.
var refreshScript = redis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if not cur then
	return 0
end
if tonumber(cjson.decode(cur)['expires_at_ms']) > tonumber(ARGV[2]) then
	return 1
end
redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
return 1
`)

// Save inserts a fresh session. The key's TTL tracks the session expiry so
// Redis evicts dead sessions on its own.
func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return s.Delete(ctx, session.Token)
	}

	payload, err := encodeSession(session)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key(session.Token), payload, ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Refresh updates a live session, or returns domain.ErrSessionInvalid when
// the key is gone (revoked or evicted since it was read).
func (s *SessionStore) Refresh(ctx context.Context, session *domain.Session) error {
	ttlMS := time.Until(session.ExpiresAt).Milliseconds()
	if ttlMS <= 0 {
		return domain.ErrSessionInvalid
	}

	payload, err := encodeSession(session)
	if err != nil {
		return err
	}

	n, err := refreshScript.Run(ctx, s.client, []string{s.key(session.Token)},
		payload, session.ExpiresAt.UnixMilli(), ttlMS).Int()
	if err != nil {
		return fmt.Errorf("refresh session: %w", err)
	}
	if n == 0 {
		return domain.ErrSessionInvalid
	}
	return nil
}

func encodeSession(session *domain.Session) ([]byte, error) {
	payload, err := json.Marshal(sessionRecord{
		UserID:      session.UserID,
		CreatedAt:   session.CreatedAt,
		ExpiresAt:   session.ExpiresAt,
		LastSeenAt:  session.LastSeenAt,
		ExpiresAtMS: session.ExpiresAt.UnixMilli(),
	})
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return payload, nil
}

// Find loads the session for token, or domain.ErrSessionInvalid when the key
// is absent or already evicted by TTL. A record that exists but does not
// decode is corrupt stored data, not a client problem.
func (s *SessionStore) Find(ctx context.Context, token string) (*domain.Session, error) {
	payload, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionInvalid
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode session record: %w", domain.ErrIntegrity)
	}

	return &domain.Session{
		Token:      token,
		UserID:     rec.UserID,
		CreatedAt:  rec.CreatedAt,
		ExpiresAt:  rec.ExpiresAt,
		LastSeenAt: rec.LastSeenAt,
	}, nil
}

// Delete removes the session. DEL on a missing key is a no-op, which makes
// revocation idempotent for free.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(token string) string {
	return sessionKeyPrefix + token
}

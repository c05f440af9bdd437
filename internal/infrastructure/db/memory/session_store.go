// Package memory provides the in-process session store used when no Redis
// address is configured. Sessions held here do not survive a restart; that
// trade-off is deliberate and documented for the development setup.
package memory

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/retailcore/inventory-system/internal/core/domain"
)

const shardCount = 16

// SessionStore is a sharded map of token to session. Sharding keeps
// contention per-token in practice: tokens hash across shards and each shard
// has its own lock, so there is no global lock over the session table.
type SessionStore struct {
	shards [shardCount]shard
}

type shard struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func NewSessionStore() *SessionStore {
	s := &SessionStore{}
	for i := range s.shards {
		s.shards[i].sessions = make(map[string]*domain.Session)
	}
	return s
}

// Save inserts a fresh session.
func (s *SessionStore) Save(_ context.Context, session *domain.Session) error {
	sh := s.shard(session.Token)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	cp := *session
	sh.sessions[session.Token] = &cp
	return nil
}

// Refresh updates a live session. A token that was deleted since it was
// read stays deleted: refreshing it returns domain.ErrSessionInvalid rather
// than re-inserting the entry. A concurrent refresh of the same token never
// moves expiry or last-activity backwards.
func (s *SessionStore) Refresh(_ context.Context, session *domain.Session) error {
	sh := s.shard(session.Token)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	existing, ok := sh.sessions[session.Token]
	if !ok {
		return domain.ErrSessionInvalid
	}

	cp := *session
	if existing.ExpiresAt.After(cp.ExpiresAt) {
		cp.ExpiresAt = existing.ExpiresAt
	}
	if existing.LastSeenAt.After(cp.LastSeenAt) {
		cp.LastSeenAt = existing.LastSeenAt
	}
	sh.sessions[session.Token] = &cp
	return nil
}

// Find returns the session for token. Entries past their expiry are evicted
// lazily and reported as invalid.
func (s *SessionStore) Find(_ context.Context, token string) (*domain.Session, error) {
	sh := s.shard(token)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	session, ok := sh.sessions[token]
	if !ok {
		return nil, domain.ErrSessionInvalid
	}
	if session.Expired(time.Now().UTC()) {
		delete(sh.sessions, token)
		return nil, domain.ErrSessionInvalid
	}
	cp := *session
	return &cp, nil
}

// Delete removes the session; unknown tokens are a no-op.
func (s *SessionStore) Delete(_ context.Context, token string) error {
	sh := s.shard(token)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	delete(sh.sessions, token)
	return nil
}

func (s *SessionStore) shard(token string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(token))
	return &s.shards[h.Sum32()%shardCount]
}

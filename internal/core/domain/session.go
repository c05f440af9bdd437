package domain

import "time"

// Session binds an opaque token to a user identity for a bounded time.
// A session only moves forward: Active to Expired (clock) or Active to
// Revoked (logout, administrative revocation). Neither transition reverses.
type Session struct {
	Token      string    `json:"-"`
	UserID     string    `json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// Expired reports whether the session has passed its expiry at the given
// instant.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionSummary is the resolved identity and permission view returned to an
// authenticated client asking about its own session.
type SessionSummary struct {
	User          *User        `json:"user"`
	RoleName      string       `json:"role"`
	IsSystemAdmin bool         `json:"is_system_admin"`
	Capabilities  []Capability `json:"capabilities"`
	StoreIDs      []string     `json:"store_ids"`
	ExpiresAt     time.Time    `json:"expires_at"`
}

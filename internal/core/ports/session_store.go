package ports

import (
	"context"
	"time"

	"github.com/retailcore/inventory-system/internal/core/domain"
)

// SessionStore holds live sessions keyed by token. Implementations must make
// operations on a single token atomic with respect to each other; operations
// on different tokens are independent and need no shared lock.
type SessionStore interface {
	// Save inserts a session. Tokens are never reused, so Save only ever
	// sees fresh tokens; it must not be used to update a live one.
	Save(ctx context.Context, session *domain.Session) error
	// Refresh updates an existing session and returns
	// domain.ErrSessionInvalid when the token is no longer present, so a
	// concurrent Delete can never be undone by an in-flight refresh. A
	// refresh must never move expiry or last-activity backwards relative
	// to a concurrent refresh of the same token.
	Refresh(ctx context.Context, session *domain.Session) error
	// Find returns the session for token, or domain.ErrSessionInvalid when
	// the token is unknown or already evicted.
	Find(ctx context.Context, token string) (*domain.Session, error)
	// Delete removes the session. Unknown tokens are a no-op.
	Delete(ctx context.Context, token string) error
}

// Clock abstracts time.Now for session arithmetic so expiry is testable.
type Clock func() time.Time

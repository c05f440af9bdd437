package ports

import (
	"context"

	"github.com/retailcore/inventory-system/internal/core/domain"
)

// AuthService is the login-boundary surface consumed by HTTP handlers.
type AuthService interface {
	// Login verifies credentials and issues a session. Wrong username and
	// wrong password are both domain.ErrInvalidCredentials.
	Login(ctx context.Context, username, password string) (*domain.Session, *domain.User, error)
	// Logout revokes the session behind token; idempotent.
	Logout(ctx context.Context, token string) error
	// Summary resolves the identity and permission view for a live session.
	Summary(ctx context.Context, token string) (*domain.SessionSummary, error)
}

// Authorizer is the single authorization decision point. storeID may be
// empty for operations without store scope.
type Authorizer interface {
	Authorize(ctx context.Context, token string, capability domain.Capability, storeID string) (domain.Decision, error)
}

// AssignmentIndex answers and mutates user-store membership. Assign and
// Unassign are idempotent; IsAssigned is constant-time.
type AssignmentIndex interface {
	Assign(ctx context.Context, userID, storeID string) error
	Unassign(ctx context.Context, userID, storeID string) error
	UnassignAll(ctx context.Context, userID string) error
	StoresFor(userID string) []string
	IsAssigned(userID, storeID string) bool
}

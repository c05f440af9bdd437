package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/retailcore/inventory-system/internal/api/metrics"
	"github.com/retailcore/inventory-system/internal/core/domain"
	"github.com/retailcore/inventory-system/internal/core/ports"
)

// AuthorizationGuard is the single decision point for every protected
// operation: identity comes from the session manager, the capability check
// from the role registry, store scope from the assignment index.
type AuthorizationGuard struct {
	sessions    *SessionManager
	users       ports.UserRepository
	roles       *RoleRegistry
	assignments ports.AssignmentIndex
}

func NewAuthorizationGuard(sessions *SessionManager, users ports.UserRepository, roles *RoleRegistry, assignments ports.AssignmentIndex) *AuthorizationGuard {
	return &AuthorizationGuard{
		sessions:    sessions,
		users:       users,
		roles:       roles,
		assignments: assignments,
	}
}

// Authorize decides whether the session behind token may perform capability,
// optionally scoped to storeID (empty means no store scope). The check order
// is fixed: authentication, system-admin override, capability, store scope.
// Capability denial is reported before scope denial so a caller lacking the
// capability learns nothing about store assignments. The returned error is
// reserved for infrastructure failures; a denial is a Decision, not an error.
func (g *AuthorizationGuard) Authorize(ctx context.Context, token string, capability domain.Capability, storeID string) (domain.Decision, error) {
	session, err := g.sessions.Validate(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionInvalid) {
			return g.deny(domain.DenyUnauthenticated), nil
		}
		return domain.Decision{}, err
	}

	user, err := g.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Session outlived its user; treat as unauthenticated.
			return g.deny(domain.DenyUnauthenticated), nil
		}
		return domain.Decision{}, err
	}

	role, err := g.roles.Resolve(ctx, user.RoleID)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			// A user pointing at a missing role is corrupt reference data,
			// not a client mistake.
			return domain.Decision{}, fmt.Errorf("user %s references missing role %s: %w", user.ID, user.RoleID, domain.ErrIntegrity)
		}
		return domain.Decision{}, err
	}

	// Explicit override branch: admins skip both the capability lookup and
	// the store-scope check.
	if role.IsSystemAdmin {
		return g.allow(user.ID, true), nil
	}

	if !g.roles.HasCapability(role, capability) {
		return g.deny(domain.DenyForbidden), nil
	}

	if storeID != "" && !g.assignments.IsAssigned(user.ID, storeID) {
		return g.deny(domain.DenyOutOfScope), nil
	}

	return g.allow(user.ID, false), nil
}

func (g *AuthorizationGuard) allow(userID string, admin bool) domain.Decision {
	metrics.AuthzDecisionsTotal.WithLabelValues("allowed").Inc()
	return domain.Decision{Allowed: true, UserID: userID, IsSystemAdmin: admin}
}

func (g *AuthorizationGuard) deny(reason domain.DenyReason) domain.Decision {
	metrics.AuthzDecisionsTotal.WithLabelValues(string(reason)).Inc()
	return domain.Decision{Reason: reason}
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/retailcore/inventory-system/internal/api/metrics"
	"github.com/retailcore/inventory-system/internal/core/domain"
	"github.com/retailcore/inventory-system/internal/core/ports"
)

// timingDecoy is a valid bcrypt credential for a throwaway input. When a
// login names an unknown user we still verify against it, so the response
// time does not reveal whether the username exists.
const timingDecoy = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService implements the login boundary: credential verification,
// session issuance and revocation, and the self-service session summary.
type AuthService struct {
	users       ports.UserRepository
	roles       *RoleRegistry
	assignments ports.AssignmentIndex
	sessions    *SessionManager
	creds       *CredentialStore
	log         zerolog.Logger
}

func NewAuthService(users ports.UserRepository, roles *RoleRegistry, assignments ports.AssignmentIndex, sessions *SessionManager, creds *CredentialStore, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:       users,
		roles:       roles,
		assignments: assignments,
		sessions:    sessions,
		creds:       creds,
		log:         log,
	}
}

// Login verifies username/password and issues a session. Unknown username
// and wrong password are indistinguishable to the caller: both surface as
// domain.ErrInvalidCredentials after comparable work.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Session, *domain.User, error) {
	if username == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn the same bcrypt cost as a real verification.
			_, _ = s.creds.Verify(ctx, password, timingDecoy)
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := s.creds.Verify(ctx, password, user.PasswordHash)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, nil, domain.ErrInvalidCredentials
	}

	session, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", user.ID).Time("expires_at", session.ExpiresAt).Msg("session issued")
	return session, user, nil
}

// Logout revokes the session behind token. Always succeeds for unknown or
// already-revoked tokens.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// Summary resolves the authenticated identity and its effective permissions
// for a live session.
func (s *AuthService) Summary(ctx context.Context, token string) (*domain.SessionSummary, error) {
	session, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrSessionInvalid
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	role, err := s.roles.Resolve(ctx, user.RoleID)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return nil, fmt.Errorf("user %s references missing role %s: %w", user.ID, user.RoleID, domain.ErrIntegrity)
		}
		return nil, err
	}

	return &domain.SessionSummary{
		User:          user,
		RoleName:      role.Name,
		IsSystemAdmin: role.IsSystemAdmin,
		Capabilities:  s.roles.Effective(role).Granted(),
		StoreIDs:      s.assignments.StoresFor(user.ID),
		ExpiresAt:     session.ExpiresAt,
	}, nil
}

// ResetPassword rehashes and stores a new password for username. Used by the
// administrative reset tool; existing sessions stay valid.
func (s *AuthService) ResetPassword(ctx context.Context, username, newPassword string) error {
	if username == "" || newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	hash, err := s.creds.Hash(ctx, newPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	s.log.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}

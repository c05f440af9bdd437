package ports

import (
	"context"

	"github.com/retailcore/inventory-system/internal/core/domain"
)

// UserRepository is the persistence interface for user records.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// RoleRepository resolves role documents by id.
type RoleRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Role, error)
}

// StoreRepository resolves store records by id.
type StoreRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Store, error)
}

// AssignmentRepository persists the user-store junction. Upsert and Delete
// are idempotent; ListAll exists so the in-memory index can warm up at boot.
type AssignmentRepository interface {
	Upsert(ctx context.Context, userID, storeID string) error
	Delete(ctx context.Context, userID, storeID string) error
	DeleteForUser(ctx context.Context, userID string) error
	ListAll(ctx context.Context) ([]domain.StoreAssignment, error)
}

package service

import (
	"context"
	"sync"

	"github.com/retailcore/inventory-system/internal/core/domain"
)

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User // keyed by id
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		clone := *u
		r.users[u.ID] = &clone
	}
	return r
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

type stubRoleRepo struct {
	roles map[string]*domain.Role
}

func newStubRoleRepo(roles ...*domain.Role) *stubRoleRepo {
	r := &stubRoleRepo{roles: make(map[string]*domain.Role)}
	for _, role := range roles {
		r.roles[role.ID] = role
	}
	return r
}

func (r *stubRoleRepo) FindByID(_ context.Context, id string) (*domain.Role, error) {
	role, ok := r.roles[id]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return role, nil
}

type stubAssignmentRepo struct {
	mu    sync.Mutex
	pairs map[[2]string]struct{}
}

func newStubAssignmentRepo(assignments ...domain.StoreAssignment) *stubAssignmentRepo {
	r := &stubAssignmentRepo{pairs: make(map[[2]string]struct{})}
	for _, a := range assignments {
		r.pairs[[2]string{a.UserID, a.StoreID}] = struct{}{}
	}
	return r
}

func (r *stubAssignmentRepo) Upsert(_ context.Context, userID, storeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pairs[[2]string{userID, storeID}] = struct{}{}
	return nil
}

func (r *stubAssignmentRepo) Delete(_ context.Context, userID, storeID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pairs, [2]string{userID, storeID})
	return nil
}

func (r *stubAssignmentRepo) DeleteForUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for pair := range r.pairs {
		if pair[0] == userID {
			delete(r.pairs, pair)
		}
	}
	return nil
}

func (r *stubAssignmentRepo) ListAll(_ context.Context) ([]domain.StoreAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.StoreAssignment, 0, len(r.pairs))
	for pair := range r.pairs {
		out = append(out, domain.StoreAssignment{UserID: pair[0], StoreID: pair[1]})
	}
	return out, nil
}

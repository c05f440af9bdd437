package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/retailcore/inventory-system/internal/core/ports"
)

// StoreAssignmentIndex keeps the user-store junction in memory for
// constant-time membership checks on the authorization hot path, writing
// every mutation through to the repository. Admin users never consult the
// index; it only constrains non-admin roles.
type StoreAssignmentIndex struct {
	repo ports.AssignmentRepository

	mu     sync.RWMutex
	byUser map[string]map[string]struct{}
}

func NewStoreAssignmentIndex(repo ports.AssignmentRepository) *StoreAssignmentIndex {
	return &StoreAssignmentIndex{
		repo:   repo,
		byUser: make(map[string]map[string]struct{}),
	}
}

// Load warms the index from the repository. Call once at startup before
// serving requests.
func (i *StoreAssignmentIndex) Load(ctx context.Context) error {
	assignments, err := i.repo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load store assignments: %w", err)
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	i.byUser = make(map[string]map[string]struct{}, len(assignments))
	for _, a := range assignments {
		stores, ok := i.byUser[a.UserID]
		if !ok {
			stores = make(map[string]struct{})
			i.byUser[a.UserID] = stores
		}
		stores[a.StoreID] = struct{}{}
	}
	return nil
}

// Assign records that userID may operate in storeID. Re-assigning an
// existing pair is a no-op.
func (i *StoreAssignmentIndex) Assign(ctx context.Context, userID, storeID string) error {
	if err := i.repo.Upsert(ctx, userID, storeID); err != nil {
		return fmt.Errorf("assign store: %w", err)
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	stores, ok := i.byUser[userID]
	if !ok {
		stores = make(map[string]struct{})
		i.byUser[userID] = stores
	}
	stores[storeID] = struct{}{}
	return nil
}

// Unassign removes the pair. Removing an absent pair is a no-op.
func (i *StoreAssignmentIndex) Unassign(ctx context.Context, userID, storeID string) error {
	if err := i.repo.Delete(ctx, userID, storeID); err != nil {
		return fmt.Errorf("unassign store: %w", err)
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if stores, ok := i.byUser[userID]; ok {
		delete(stores, storeID)
		if len(stores) == 0 {
			delete(i.byUser, userID)
		}
	}
	return nil
}

// UnassignAll drops every assignment for userID, mirroring the cascade that
// accompanies user removal.
func (i *StoreAssignmentIndex) UnassignAll(ctx context.Context, userID string) error {
	if err := i.repo.DeleteForUser(ctx, userID); err != nil {
		return fmt.Errorf("unassign all stores: %w", err)
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	delete(i.byUser, userID)
	return nil
}

// StoresFor returns the ids of stores userID may operate in, sorted. Empty
// slice when none.
func (i *StoreAssignmentIndex) StoresFor(userID string) []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	stores := i.byUser[userID]
	out := make([]string, 0, len(stores))
	for id := range stores {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// IsAssigned reports membership of the (userID, storeID) pair.
func (i *StoreAssignmentIndex) IsAssigned(userID, storeID string) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.byUser[userID][storeID]
	return ok
}

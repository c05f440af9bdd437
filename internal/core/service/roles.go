package service

import (
	"context"

	"github.com/retailcore/inventory-system/internal/core/domain"
	"github.com/retailcore/inventory-system/internal/core/ports"
)

// RoleRegistry resolves role definitions and answers capability checks.
type RoleRegistry struct {
	repo ports.RoleRepository
}

func NewRoleRegistry(repo ports.RoleRepository) *RoleRegistry {
	return &RoleRegistry{repo: repo}
}

// Resolve returns the role for roleID, or domain.ErrRoleNotFound.
func (r *RoleRegistry) Resolve(ctx context.Context, roleID string) (*domain.Role, error) {
	return r.repo.FindByID(ctx, roleID)
}

// PermissionsOf returns the resolved capability set for roleID. System-admin
// roles report every known capability as granted.
func (r *RoleRegistry) PermissionsOf(ctx context.Context, roleID string) (domain.PermissionSet, error) {
	role, err := r.Resolve(ctx, roleID)
	if err != nil {
		return nil, err
	}
	return r.Effective(role), nil
}

// Effective expands a role into its full capability set, materialising the
// system-admin override as an explicit grant of every known capability.
func (r *RoleRegistry) Effective(role *domain.Role) domain.PermissionSet {
	if !role.IsSystemAdmin {
		return role.Permissions
	}
	all := make(domain.PermissionSet, len(allCapabilities))
	for _, c := range allCapabilities {
		all[c] = true
	}
	return all
}

// HasCapability reports whether role grants capability. The system-admin
// flag short-circuits; otherwise absent and unknown keys are denied.
func (r *RoleRegistry) HasCapability(role *domain.Role, capability domain.Capability) bool {
	return role.Allows(capability)
}

var allCapabilities = []domain.Capability{
	domain.CapOrdersCreate,
	domain.CapOrdersView,
	domain.CapInventoryView,
	domain.CapInventoryEdit,
	domain.CapInventoryDelete,
	domain.CapReportsView,
	domain.CapStoresAssign,
	domain.CapUsersManage,
}

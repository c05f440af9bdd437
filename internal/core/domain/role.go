package domain

import "sort"

// Capability names one (resource, action) pair. The set of capabilities is
// closed: only the constants below exist, and any other key is denied.
type Capability string

const (
	CapOrdersCreate    Capability = "orders.create"
	CapOrdersView      Capability = "orders.view"
	CapInventoryView   Capability = "inventory.view"
	CapInventoryEdit   Capability = "inventory.edit"
	CapInventoryDelete Capability = "inventory.delete"
	CapReportsView     Capability = "reports.view"
	CapStoresAssign    Capability = "stores.assign"
	CapUsersManage     Capability = "users.manage"
)

var knownCapabilities = map[Capability]struct{}{
	CapOrdersCreate:    {},
	CapOrdersView:      {},
	CapInventoryView:   {},
	CapInventoryEdit:   {},
	CapInventoryDelete: {},
	CapReportsView:     {},
	CapStoresAssign:    {},
	CapUsersManage:     {},
}

// Known reports whether c is a declared capability.
func (c Capability) Known() bool {
	_, ok := knownCapabilities[c]
	return ok
}

// PermissionSet maps capabilities to explicit grants. Absent keys are denied.
type PermissionSet map[Capability]bool

// Granted returns the explicitly granted capabilities in stable order.
func (p PermissionSet) Granted() []Capability {
	out := make([]Capability, 0, len(p))
	for c, ok := range p {
		if ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Role groups a permission set under a name. IsSystemAdmin is an override,
// not an extra permission entry: when set, every capability check succeeds
// and store scoping does not apply.
type Role struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Permissions   PermissionSet `json:"permissions"`
	IsSystemAdmin bool          `json:"is_system_admin"`
}

// Allows reports whether the role grants c. System admins are allowed
// unconditionally; everything else is default-deny, including capability
// names that are not part of the closed set.
func (r *Role) Allows(c Capability) bool {
	if r.IsSystemAdmin {
		return true
	}
	return r.Permissions[c]
}

// Package rbac implements typed role-based access control. Permissions keep
// the external `resource.action` vocabulary but are carried in code as a
// (Resource, Action) pair rather than free-form strings.
package rbac

import (
	"fmt"
	"strings"
)

// Resource enumerates the protected resource families.
type Resource string

const (
	ResVilles        Resource = "villes"
	ResSecteurs      Resource = "secteurs"
	ResMarques       Resource = "brands"
	ResCategories    Resource = "categories"
	ResProduits      Resource = "products"
	ResClients       Resource = "clients"
	ResCommerciaux   Resource = "commerciaux"
	ResTransporteurs Resource = "transporteurs"
	ResLivreurs      Resource = "livreurs"
	ResPromotions    Resource = "promotions"
	ResEntrers       Resource = "entrers"
	ResRoles         Resource = "roles"
)

// Action enumerates the operations a permission can grant.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Permission is an atomic capability on a resource.
type Permission struct {
	Resource Resource
	Action   Action
}

// String renders the external `resource.action` form.
func (p Permission) String() string {
	return string(p.Resource) + "." + string(p.Action)
}

// Parse converts a `resource.action` name into a Permission.
func Parse(name string) (Permission, error) {
	parts := strings.SplitN(strings.ToLower(strings.TrimSpace(name)), ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Permission{}, fmt.Errorf("rbac: malformed permission %q", name)
	}
	return Permission{Resource: Resource(parts[0]), Action: Action(parts[1])}, nil
}

// View, Create, Edit and Delete build the standard permissions of a resource.
func View(r Resource) Permission   { return Permission{Resource: r, Action: ActionView} }
func Create(r Resource) Permission { return Permission{Resource: r, Action: ActionCreate} }
func Edit(r Resource) Permission   { return Permission{Resource: r, Action: ActionEdit} }
func Delete(r Resource) Permission { return Permission{Resource: r, Action: ActionDelete} }

// PermissionSet holds the granted permissions of a principal.
type PermissionSet map[Permission]struct{}

// NewPermissionSet parses permission names, skipping malformed entries.
func NewPermissionSet(names []string) PermissionSet {
	set := make(PermissionSet, len(names))
	for _, name := range names {
		if p, err := Parse(name); err == nil {
			set[p] = struct{}{}
		}
	}
	return set
}

// Has reports whether the set grants p.
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// Principal is the authenticated actor, resolved once per request and
// carried in the request context.
type Principal struct {
	UserID      int64
	Permissions PermissionSet
}

// Can reports whether the principal holds the permission.
func (p *Principal) Can(perm Permission) bool {
	return p != nil && p.Permissions.Has(perm)
}

package routing

import (
	"strings"

	"github.com/parkside-pos/ordering-terminal/internal/session"
)

// Navigable destination paths.
const (
	PathRoot       = "/"
	PathLogin      = "/login"
	PathStaffLogin = "/staff/login"
	PathMenu       = "/menu"
	PathMyOrders   = "/my-orders"
	PathAdmin      = "/admin"
)

// Descriptor is the static auth metadata of a navigable destination.
type Descriptor struct {
	Path         string
	RequiresAuth bool
	AllowedRoles []session.RoleTag
	GuestOnly    bool
	AdminRoot    bool
}

// adminRooted reports whether the destination is decided against the admin
// slot: either it lives under the admin root or it requires the admin tag.
func (d Descriptor) adminRooted() bool {
	if d.AdminRoot {
		return true
	}
	for _, tag := range d.AllowedRoles {
		if tag == session.TagAdmin {
			return true
		}
	}
	return false
}

// Table holds the terminal's destination descriptors.
type Table struct {
	byPath map[string]Descriptor
}

// DefaultTable mirrors the terminal's navigable surface: public menu and
// order pages, guest-only login pages, and the role-gated admin root.
func DefaultTable() *Table {
	return NewTable(
		Descriptor{Path: PathLogin, GuestOnly: true},
		Descriptor{Path: PathStaffLogin, GuestOnly: true},
		Descriptor{Path: PathMenu},
		Descriptor{Path: PathMyOrders},
		Descriptor{Path: PathAdmin, RequiresAuth: true, AdminRoot: true, AllowedRoles: []session.RoleTag{session.TagAdmin}},
	)
}

// NewTable builds a lookup table from descriptors.
func NewTable(descriptors ...Descriptor) *Table {
	byPath := make(map[string]Descriptor, len(descriptors))
	for _, d := range descriptors {
		byPath[d.Path] = d
	}
	return &Table{byPath: byPath}
}

// Lookup resolves a path to its descriptor. Paths under the admin root
// inherit the admin descriptor; unknown paths are treated as public.
func (t *Table) Lookup(path string) Descriptor {
	if path == PathRoot {
		return t.byPath[PathMenu]
	}
	if d, ok := t.byPath[path]; ok {
		return d
	}
	if strings.HasPrefix(path, PathAdmin+"/") {
		if d, ok := t.byPath[PathAdmin]; ok {
			d.Path = path
			return d
		}
	}
	return Descriptor{Path: path}
}

package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parkside-pos/ordering-terminal/internal/session"
)

func customer(tags ...session.RoleTag) session.ActorIdentity {
	return session.ActorIdentity{Role: session.RoleCustomer, Capabilities: tags, Subject: "customer-1"}
}

func admin(tags ...session.RoleTag) session.ActorIdentity {
	return session.ActorIdentity{Role: session.RoleAdmin, Capabilities: tags, Subject: "staff-1"}
}

func adminDest() Descriptor {
	return Descriptor{Path: PathAdmin, RequiresAuth: true, AdminRoot: true, AllowedRoles: []session.RoleTag{session.TagAdmin}}
}

func TestDecideAdminRootWithoutAdminIdentity(t *testing.T) {
	decision := Decide(adminDest(), session.Guest(), session.Guest(), false)
	assert.Equal(t, Redirect(PathStaffLogin, ReasonStaffLoginRequired), decision)
}

func TestDecideAdminRootIgnoresCustomerSlot(t *testing.T) {
	// Varying the customer identity must never change an admin-root decision.
	customers := []session.ActorIdentity{
		session.Guest(),
		customer(session.TagGuest),
		customer(session.TagAdmin),
		admin(session.TagAdmin),
	}

	for _, cust := range customers {
		denied := Decide(adminDest(), cust, session.Guest(), false)
		assert.Equal(t, Redirect(PathStaffLogin, ReasonStaffLoginRequired), denied)

		allowed := Decide(adminDest(), cust, admin(session.TagAdmin), false)
		assert.Equal(t, Allow(), allowed)
	}
}

func TestDecideAdminRoleDisjoint(t *testing.T) {
	// Admin identity present but without the required tag.
	weakAdmin := session.ActorIdentity{Role: session.RoleAdmin, Capabilities: []session.RoleTag{"ROLE_KITCHEN"}}
	decision := Decide(adminDest(), session.Guest(), weakAdmin, false)
	assert.Equal(t, Redirect(PathStaffLogin, ReasonStaffRoleDenied), decision)
}

func TestDecideRequiresAuthAsGuest(t *testing.T) {
	dest := Descriptor{Path: "/my-account", RequiresAuth: true}
	decision := Decide(dest, session.Guest(), session.Guest(), false)
	assert.Equal(t, Redirect(PathLogin, ReasonLoginRequired), decision)
}

func TestDecideRequiresAuthRoleDisjoint(t *testing.T) {
	dest := Descriptor{Path: "/vip-lounge", RequiresAuth: true, AllowedRoles: []session.RoleTag{"ROLE_VIP"}}
	decision := Decide(dest, customer(session.TagCustomer), session.Guest(), false)
	assert.Equal(t, Redirect(PathMenu, ReasonRoleDenied), decision)
}

func TestDecideGuestOnly(t *testing.T) {
	dest := Descriptor{Path: PathLogin, GuestOnly: true}

	assert.Equal(t, Allow(), Decide(dest, session.Guest(), session.Guest(), false))

	decision := Decide(dest, customer(session.TagGuest), session.Guest(), false)
	assert.Equal(t, Redirect(PathMenu, ReasonGuestOnly), decision)
}

func TestDecideGuestOnlyModeSwitchOverride(t *testing.T) {
	dest := Descriptor{Path: PathLogin, GuestOnly: true}
	decision := Decide(dest, customer(session.TagGuest), session.Guest(), true)
	assert.Equal(t, Allow(), decision)
}

func TestDecidePublicDestination(t *testing.T) {
	dest := Descriptor{Path: PathMenu}
	assert.Equal(t, Allow(), Decide(dest, session.Guest(), session.Guest(), false))
	assert.Equal(t, Allow(), Decide(dest, customer(session.TagCustomer), admin(session.TagAdmin), false))
}

func TestDefaultLanding(t *testing.T) {
	assert.Equal(t, PathLogin, DefaultLanding(session.Guest()))
	assert.Equal(t, PathMenu, DefaultLanding(customer(session.TagCustomer)))
	assert.Equal(t, PathAdmin, DefaultLanding(admin(session.TagAdmin)))
	assert.Equal(t, PathAdmin, DefaultLanding(customer(session.TagAdmin)))
}

func TestTableLookup(t *testing.T) {
	table := DefaultTable()

	assert.Equal(t, PathMenu, table.Lookup(PathRoot).Path)
	assert.True(t, table.Lookup(PathLogin).GuestOnly)
	assert.True(t, table.Lookup(PathAdmin).AdminRoot)

	// Paths under the admin root inherit the admin descriptor.
	nested := table.Lookup("/admin/orders")
	assert.True(t, nested.AdminRoot)
	assert.Equal(t, "/admin/orders", nested.Path)

	// Unknown paths are public.
	unknown := table.Lookup("/daily-special")
	assert.False(t, unknown.RequiresAuth)
	assert.False(t, unknown.AdminRoot)
}

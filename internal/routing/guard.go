package routing

import (
	"github.com/parkside-pos/ordering-terminal/internal/session"
)

// Reason explains a redirect decision.
type Reason string

const (
	ReasonStaffLoginRequired Reason = "staff_login_required"
	ReasonStaffRoleDenied    Reason = "staff_role_denied"
	ReasonLoginRequired      Reason = "login_required"
	ReasonRoleDenied         Reason = "role_denied"
	ReasonGuestOnly          Reason = "guest_only"
)

// Decision is the outcome of a navigation check: either allowed, or a
// redirect with the reason.
type Decision struct {
	Allowed    bool   `json:"allowed"`
	RedirectTo string `json:"redirect_to,omitempty"`
	Reason     Reason `json:"reason,omitempty"`
}

// Allow permits the navigation.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Redirect denies the navigation and names the destination to go to instead.
func Redirect(path string, reason Reason) Decision {
	return Decision{RedirectTo: path, Reason: reason}
}

// Decide arbitrates a navigation against the two identity slots. Admin-
// rooted destinations consult only the admin slot and customer-rooted
// destinations only the customer slot; the slots never cross-read.
// modeSwitch is the explicit re-authentication signal that lets an already
// authenticated customer back onto a guest-only page to change dining mode.
// Decide is pure and total: every input yields exactly one Decision.
func Decide(dest Descriptor, customer, admin session.ActorIdentity, modeSwitch bool) Decision {
	if dest.adminRooted() {
		if admin.Role != session.RoleAdmin {
			return Redirect(PathStaffLogin, ReasonStaffLoginRequired)
		}
		if len(dest.AllowedRoles) > 0 && !hasAny(admin, dest.AllowedRoles) {
			return Redirect(PathStaffLogin, ReasonStaffRoleDenied)
		}
		return Allow()
	}

	if dest.RequiresAuth {
		if customer.Role == session.RoleGuest {
			return Redirect(PathLogin, ReasonLoginRequired)
		}
		if len(dest.AllowedRoles) > 0 && !hasAny(customer, dest.AllowedRoles) {
			return Redirect(DefaultLanding(customer), ReasonRoleDenied)
		}
	}

	if dest.GuestOnly && customer.Role != session.RoleGuest {
		if modeSwitch {
			return Allow()
		}
		return Redirect(DefaultLanding(customer), ReasonGuestOnly)
	}

	return Allow()
}

// DefaultLanding is the highest-privilege destination the actor is entitled
// to, falling back to the login page for guests.
func DefaultLanding(actor session.ActorIdentity) string {
	switch {
	case actor.Role == session.RoleAdmin || actor.Has(session.TagAdmin):
		return PathAdmin
	case actor.Role == session.RoleGuest:
		return PathLogin
	default:
		return PathMenu
	}
}

func hasAny(actor session.ActorIdentity, allowed []session.RoleTag) bool {
	for _, tag := range allowed {
		if actor.Has(tag) {
			return true
		}
	}
	return false
}

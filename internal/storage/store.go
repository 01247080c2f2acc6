package storage

import "context"

// Store is the key/value port behind all persisted terminal state:
// credentials, role lists, dining info, the cart snapshot, and theme
// preferences. Implementations must make Set durable before returning.
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes the given keys; absent keys are ignored.
	Remove(ctx context.Context, keys ...string) error
}

// Persisted key names. Customer and admin slots never share keys.
const (
	KeyCustomerCredential = "token"
	KeyCustomerRoles      = "roles"
	KeyAdminCredential    = "admin_token"
	KeyAdminRoles         = "admin_roles"
	KeyDiningInfo         = "diningInfo"
	KeyCartSnapshot       = "cart"
	KeyCustomerTheme      = "customer-theme"
	KeyAdminTheme         = "theme"
)

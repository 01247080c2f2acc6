package session

// Role classifies the resolved actor of one identity slot.
type Role string

const (
	RoleGuest    Role = "GUEST"
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// RoleTag is a capability tag carried in credential claims.
type RoleTag string

const (
	TagAdmin    RoleTag = "ROLE_ADMIN"
	TagCustomer RoleTag = "ROLE_CUSTOMER"
	TagGuest    RoleTag = "ROLE_GUEST"
)

// ActorIdentity is the resolved actor for one slot. It is derived from a
// credential (or its absence) and never persisted directly.
type ActorIdentity struct {
	Role         Role
	Capabilities []RoleTag
	Subject      string
}

// Guest is the unauthenticated identity.
func Guest() ActorIdentity {
	return ActorIdentity{Role: RoleGuest}
}

// Has reports whether the identity carries the given capability tag.
func (a ActorIdentity) Has(tag RoleTag) bool {
	for _, cap := range a.Capabilities {
		if cap == tag {
			return true
		}
	}
	return false
}

// Authenticated reports whether the slot holds a resolved credential.
func (a ActorIdentity) Authenticated() bool {
	return a.Role != RoleGuest
}

package session

import (
	"github.com/parkside-pos/ordering-terminal/internal/credential"
)

// Resolve turns a raw credential (possibly empty) and the persisted dining
// fallback into an actor identity and its dining session. It never fails:
// a missing or undecodable credential resolves to the guest identity, so
// callers always receive a usable actor.
func Resolve(rawCredential string, fallback *DiningRecord) (ActorIdentity, DiningSession) {
	if rawCredential == "" {
		return Guest(), DiningSession{Mode: ModeUnset}
	}

	claims, err := credential.Decode(rawCredential)
	if err != nil {
		// Fail open to unauthenticated. The server re-validates every
		// credential, so a garbage token only costs the holder their UI state.
		return Guest(), DiningSession{Mode: ModeUnset}
	}

	identity := ActorIdentity{
		Role:         RoleCustomer,
		Capabilities: tags(claims.Roles),
		Subject:      claims.Subject,
	}

	if claims.HasRole(string(TagAdmin)) {
		identity.Role = RoleAdmin
		// Dining mode does not apply to the admin slot.
		return identity, DiningSession{Mode: ModeUnset}
	}

	return identity, resolveDining(claims, fallback)
}

func resolveDining(claims *credential.Claims, fallback *DiningRecord) DiningSession {
	if claims.DiningMode != "" {
		return DiningSession{
			Mode:   Mode(claims.DiningMode),
			Table:  claims.TableNumber,
			Source: SourceToken,
		}
	}
	if fallback != nil && fallback.Mode != ModeUnset {
		return DiningSession{
			Mode:   fallback.Mode,
			Table:  fallback.Table,
			Source: SourceLocalFallback,
		}
	}
	return DiningSession{Mode: ModeUnknown, Source: SourceUnknown}
}

func tags(roles []string) []RoleTag {
	if len(roles) == 0 {
		return nil
	}
	out := make([]RoleTag, len(roles))
	for i, role := range roles {
		out[i] = RoleTag(role)
	}
	return out
}

package credential

import (
	"fmt"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Claims is the decoded credential payload. Decoding is advisory: the
// terminal uses it for routing decisions only, and the server re-validates
// the signature on every request that carries the credential.
type Claims struct {
	Roles       []string `json:"roles"`
	DiningMode  string   `json:"diningMode,omitempty"`
	TableNumber string   `json:"tableNumber,omitempty"`
	jwt.RegisteredClaims
}

// HasRole reports whether the claim set carries the given role tag.
func (c *Claims) HasRole(tag string) bool {
	for _, role := range c.Roles {
		if role == tag {
			return true
		}
	}
	return false
}

// DecodeError reports a missing or malformed credential. Callers treat a
// decode failure as "no credential" rather than propagating it.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode credential: %s: %v", e.Reason, e.Err)
	}
	return "decode credential: " + e.Reason
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode extracts the structured claims from a raw credential string
// without verifying its signature. It is a pure parse: the payload segment
// is base64-decoded and unmarshalled, nothing else. Expiry is carried in
// the claims but not enforced here.
func Decode(raw string) (*Claims, error) {
	if raw == "" {
		return nil, &DecodeError{Reason: "missing credential"}
	}

	claims := &Claims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return nil, &DecodeError{Reason: "malformed credential", Err: err}
	}
	return claims, nil
}

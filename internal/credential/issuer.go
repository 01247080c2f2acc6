package credential

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Issuer mints guest credentials locally. Staff credentials are issued by
// the upstream auth service; only guests receive terminal-signed tokens
// carrying their dining selection.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer builds a new issuer.
func NewIssuer(secret string, ttlMinutes int) *Issuer {
	if ttlMinutes <= 0 {
		ttlMinutes = 240
	}
	return &Issuer{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// IssueGuest builds and signs a guest credential for the subject (the
// diner's phone number) with the selected dining mode and table.
func (i *Issuer) IssueGuest(subject string, roles []string, diningMode, tableNumber string) (string, time.Time, error) {
	expiresAt := time.Now().Add(i.ttl)
	claims := &Claims{
		Roles:       roles,
		DiningMode:  diningMode,
		TableNumber: tableNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

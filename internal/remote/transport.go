package remote

import (
	"context"
	"net/http"

	"github.com/parkside-pos/ordering-terminal/internal/credential"
)

// CredentialSource supplies the current raw customer credential, or an
// empty string when the slot is unauthenticated.
type CredentialSource func(ctx context.Context) string

// Transport augments every outbound request with the customer bearer token
// and, when the credential decodes, the derived subject header the backend
// gateway normally injects.
type Transport struct {
	Base        http.RoundTripper
	Credentials CredentialSource
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	raw := ""
	if t.Credentials != nil {
		raw = t.Credentials(req.Context())
	}
	if raw == "" {
		return base.RoundTrip(req)
	}

	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+raw)
	if claims, err := credential.Decode(raw); err == nil && claims.Subject != "" {
		clone.Header.Set("X-User-Id", claims.Subject)
	}
	return base.RoundTrip(clone)
}

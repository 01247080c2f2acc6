package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parkside-pos/ordering-terminal/internal/credential"
)

func TestTransportAddsBearerAndSubject(t *testing.T) {
	issuer := credential.NewIssuer("transport-test-secret", 60)
	token, _, err := issuer.IssueGuest("0912345678", []string{"ROLE_GUEST"}, "TAKEOUT", "")
	require.NoError(t, err)

	var gotAuth, gotSubject string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotSubject = r.Header.Get("X-User-Id")
	}))
	defer server.Close()

	client := &http.Client{Transport: &Transport{
		Credentials: func(context.Context) string { return token },
	}}
	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer "+token, gotAuth)
	assert.Equal(t, "0912345678", gotSubject)
}

func TestTransportWithoutCredential(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer server.Close()

	client := &http.Client{Transport: &Transport{
		Credentials: func(context.Context) string { return "" },
	}}
	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Empty(t, gotAuth)
}

func TestTransportUndecodableCredentialStillSendsBearer(t *testing.T) {
	var gotAuth, gotSubject string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotSubject = r.Header.Get("X-User-Id")
	}))
	defer server.Close()

	client := &http.Client{Transport: &Transport{
		Credentials: func(context.Context) string { return "opaque-but-not-jwt" },
	}}
	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "Bearer opaque-but-not-jwt", gotAuth)
	assert.Empty(t, gotSubject)
}

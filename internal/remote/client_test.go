package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parkside-pos/ordering-terminal/internal/config"
	"github.com/parkside-pos/ordering-terminal/internal/observability"
)

func newTestClient(authBase, ordersBase string) *Client {
	cfg := config.UpstreamConfig{
		AuthBaseURL:         authBase,
		OrdersBaseURL:       ordersBase,
		FetchTimeoutSeconds: 2,
	}
	return NewClient(cfg, nil, zap.NewNop(), observability.NewMetrics())
}

func TestPublicKeySingleFlight(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		_, _ = w.Write([]byte("-----BEGIN PUBLIC KEY-----\nabc\n-----END PUBLIC KEY-----"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key, err := client.PublicKey(ctx)
			assert.NoError(t, err)
			assert.Contains(t, key, "BEGIN PUBLIC KEY")
		}()
	}
	wg.Wait()

	// Cached for the process lifetime afterwards.
	_, err := client.PublicKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), atomic.LoadInt64(&hits))
}

func TestPublicKeyRetriesAfterFailure(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&hits, 1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("key-material"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)
	ctx := context.Background()

	_, err := client.PublicKey(ctx)
	require.Error(t, err)

	key, err := client.PublicKey(ctx)
	require.NoError(t, err)
	assert.Equal(t, "key-material", key)
	assert.Equal(t, int64(2), atomic.LoadInt64(&hits))
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"signed-token","roles":["ROLE_ADMIN"]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)
	result, err := client.Login(context.Background(), "manager", "encrypted")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", result.Token)
	assert.Equal(t, []string{"ROLE_ADMIN"}, result.Roles)
}

func TestLoginUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)
	_, err := client.Login(context.Background(), "manager", "encrypted")
	assert.Error(t, err)
}

func TestSettingsCacheMergesRows(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&hits, 1)
		require.Equal(t, "/orders/settings/public", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"settingKey":"BRAND_NAME","settingValue":"Thai Corner"},{"settingKey":"TIMEZONE","settingValue":"Asia/Bangkok"}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)
	cache := NewSettingsCache(client, zap.NewNop(), observability.NewMetrics())
	ctx := context.Background()

	settings := cache.Get(ctx)
	assert.Equal(t, "Thai Corner", settings["BRAND_NAME"])
	// Unknown keys are added dynamically.
	assert.Equal(t, "Asia/Bangkok", settings["TIMEZONE"])

	// Second read serves the cache.
	_ = cache.Get(ctx)
	assert.Equal(t, int64(1), atomic.LoadInt64(&hits))
}

func TestSettingsCacheDegradesToDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)
	cache := NewSettingsCache(client, zap.NewNop(), observability.NewMetrics())

	settings := cache.Get(context.Background())
	assert.Equal(t, DefaultBrandName, settings["BRAND_NAME"])
}

func TestSettingsCacheRecoversAfterFailure(t *testing.T) {
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&hits, 1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"settingKey":"BRAND_NAME","settingValue":"Thai Corner"}]`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, server.URL)
	cache := NewSettingsCache(client, zap.NewNop(), observability.NewMetrics())
	ctx := context.Background()

	assert.Equal(t, DefaultBrandName, cache.Get(ctx)["BRAND_NAME"])
	assert.Equal(t, "Thai Corner", cache.Get(ctx)["BRAND_NAME"])
}

package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/parkside-pos/ordering-terminal/internal/config"
	"github.com/parkside-pos/ordering-terminal/internal/observability"
	"github.com/parkside-pos/ordering-terminal/pkg/util"
)

// Client talks to the upstream auth and order services. All fetches share
// one http.Client with the configured fixed deadline; exceeding it surfaces
// as an error the caller degrades on, never a process failure.
type Client struct {
	httpClient *http.Client
	authBase   string
	ordersBase string
	logger     *zap.Logger
	metrics    *observability.Metrics

	key flight[string]
}

// NewClient builds the upstream client. The transport, when non-nil, adds
// the customer bearer and subject headers to every outbound request.
func NewClient(cfg config.UpstreamConfig, transport http.RoundTripper, logger *zap.Logger, metrics *observability.Metrics) *Client {
	httpClient := &http.Client{Timeout: cfg.FetchTimeout()}
	if transport != nil {
		httpClient.Transport = transport
	}
	return &Client{
		httpClient: httpClient,
		authBase:   cfg.AuthBaseURL,
		ordersBase: cfg.OrdersBaseURL,
		logger:     logger,
		metrics:    metrics,
	}
}

// PublicKey fetches the server's public key material, single-flighted and
// cached for the process lifetime.
func (c *Client) PublicKey(ctx context.Context) (string, error) {
	key, err := c.key.Do(ctx, c.fetchPublicKey)
	if err != nil {
		c.logger.Warn("public key fetch failed", zap.Error(err))
		c.metrics.RecordFetchFailure("public_key")
		return "", err
	}
	return key, nil
}

func (c *Client) fetchPublicKey(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.authBase+"/auth/publicKey", nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", util.NewFetchFailed("public key", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", util.NewFetchFailed(fmt.Sprintf("public key: status %d", resp.StatusCode), nil)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", util.NewFetchFailed("public key", err)
	}
	return string(body), nil
}

// LoginResult is the upstream auth service's login response.
type LoginResult struct {
	Token string   `json:"token"`
	Roles []string `json:"roles"`
}

// Login authenticates staff against the upstream auth service. The
// password is already RSA-encrypted with the fetched public key.
func (c *Client) Login(ctx context.Context, username, encryptedPassword string) (*LoginResult, error) {
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": encryptedPassword,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authBase+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, util.NewFetchFailed("login", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, util.NewUnauthorized("invalid credentials")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, util.NewFetchFailed(fmt.Sprintf("login: status %d", resp.StatusCode), nil)
	}

	var result LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, util.NewFetchFailed("login: malformed response", err)
	}
	return &result, nil
}

// SettingRow is one key/value settings entry from the order service.
type SettingRow struct {
	SettingKey   string `json:"settingKey"`
	SettingValue string `json:"settingValue"`
}

// FetchSettings retrieves the public restaurant settings rows.
func (c *Client) FetchSettings(ctx context.Context) ([]SettingRow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ordersBase+"/orders/settings/public", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, util.NewFetchFailed("settings", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, util.NewFetchFailed(fmt.Sprintf("settings: status %d", resp.StatusCode), nil)
	}

	var rows []SettingRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, util.NewFetchFailed("settings: malformed response", err)
	}
	return rows, nil
}

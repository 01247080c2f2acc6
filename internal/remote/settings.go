package remote

import (
	"context"

	"go.uber.org/zap"

	"github.com/parkside-pos/ordering-terminal/internal/observability"
)

// DefaultBrandName is used until the restaurant's settings are fetched.
const DefaultBrandName = "Restaurant App"

// SettingsCache serves the restaurant's public settings map. The fetch is
// single-flighted and the merged result cached for the process lifetime; a
// failed fetch leaves the defaults in place and is retried on the next read.
type SettingsCache struct {
	client   *Client
	logger   *zap.Logger
	metrics  *observability.Metrics
	defaults map[string]string

	settings flight[map[string]string]
}

// NewSettingsCache builds the cache with the terminal's default settings.
func NewSettingsCache(client *Client, logger *zap.Logger, metrics *observability.Metrics) *SettingsCache {
	return &SettingsCache{
		client:  client,
		logger:  logger,
		metrics: metrics,
		defaults: map[string]string{
			"BRAND_NAME": DefaultBrandName,
		},
	}
}

// Get returns the merged settings map. Failures are invisible to the user:
// the defaults come back and a warning is logged.
func (s *SettingsCache) Get(ctx context.Context) map[string]string {
	merged, err := s.settings.Do(ctx, s.load)
	if err != nil {
		s.logger.Warn("settings fetch failed, using defaults", zap.Error(err))
		s.metrics.RecordFetchFailure("settings")
		return copyMap(s.defaults)
	}
	return merged
}

// load merges the fetched rows over the defaults. Unknown keys are added
// dynamically.
func (s *SettingsCache) load(ctx context.Context) (map[string]string, error) {
	rows, err := s.client.FetchSettings(ctx)
	if err != nil {
		return nil, err
	}
	merged := copyMap(s.defaults)
	for _, row := range rows {
		merged[row.SettingKey] = row.SettingValue
	}
	return merged, nil
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

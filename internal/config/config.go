package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the terminal gateway.
type Config struct {
	App      AppConfig
	Redis    RedisConfig
	Upstream UpstreamConfig
	Auth     AuthConfig
	Logger   LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	TerminalID            string
	RequestTimeoutSeconds int
}

// RedisConfig holds connection values for the terminal state store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// UpstreamConfig points at the auth and order services the terminal talks to.
type UpstreamConfig struct {
	AuthBaseURL         string
	OrdersBaseURL       string
	FetchTimeoutSeconds int
}

// AuthConfig defines credential parameters for guest sessions and the
// local staff override PIN.
type AuthConfig struct {
	GuestTokenSecret     string
	GuestTokenTTLMinutes int
	StaffOverridePINHash string
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "ordering-terminal"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			TerminalID:            getEnv("TERMINAL_ID", "terminal-1"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Upstream: UpstreamConfig{
			AuthBaseURL:         getEnv("UPSTREAM_AUTH_BASE_URL", "http://localhost:8081"),
			OrdersBaseURL:       getEnv("UPSTREAM_ORDERS_BASE_URL", "http://localhost:8082"),
			FetchTimeoutSeconds: getEnvAsInt("UPSTREAM_FETCH_TIMEOUT_SECONDS", 5),
		},
		Auth: AuthConfig{
			GuestTokenSecret:     getEnv("AUTH_GUEST_TOKEN_SECRET", "dev-secret"),
			GuestTokenTTLMinutes: getEnvAsInt("AUTH_GUEST_TOKEN_TTL_MINUTES", 240),
			StaffOverridePINHash: os.Getenv("AUTH_STAFF_OVERRIDE_PIN_HASH"),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// FetchTimeout returns the fixed deadline applied to upstream fetches.
func (u UpstreamConfig) FetchTimeout() time.Duration {
	if u.FetchTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(u.FetchTimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

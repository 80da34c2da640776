// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AuthMode selects how bearer tokens are verified
type AuthMode string

const (
	// AuthModeHTTP calls the hosted provider's user-info endpoint per token
	AuthModeHTTP AuthMode = "http"
	// AuthModeOIDC verifies tokens locally against the provider's JWKS
	AuthModeOIDC AuthMode = "oidc"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Auth    AuthConfig

	LogLevel string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string
	HealthAddr      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
	MaxBodyBytes    int64
}

// StorageConfig holds database and cache configuration
type StorageConfig struct {
	PostgresURL      string
	PostgresMaxConns int
	PostgresMinConns int
	PostgresTimeout  time.Duration

	// RedisURL enables the read cache when set
	RedisURL string
	CacheTTL time.Duration
}

// AuthConfig holds auth provider configuration
type AuthConfig struct {
	Mode AuthMode

	// http mode
	ProviderURL string
	APIKey      string

	// oidc mode
	IssuerURL string
	ClientID  string

	// token verification cache
	CacheSize int
	CacheTTL  time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Addr:            getEnv("SHOWBASE_ADDR", ":8080"),
			HealthAddr:      getEnv("SHOWBASE_HEALTH_ADDR", ":9090"),
			ReadTimeout:     getEnvDuration("SHOWBASE_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getEnvDuration("SHOWBASE_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getEnvDuration("SHOWBASE_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("SHOWBASE_SHUTDOWN_TIMEOUT", 30*time.Second),
			CORSOrigins:     getEnvList("SHOWBASE_CORS_ORIGINS", []string{"*"}),
			MaxBodyBytes:    int64(getEnvInt("SHOWBASE_MAX_BODY_BYTES", 1<<20)),
		},
		Storage: StorageConfig{
			PostgresURL:      getEnv("SHOWBASE_POSTGRES_URL", ""),
			PostgresMaxConns: getEnvInt("SHOWBASE_POSTGRES_MAX_CONNS", 20),
			PostgresMinConns: getEnvInt("SHOWBASE_POSTGRES_MIN_CONNS", 2),
			PostgresTimeout:  getEnvDuration("SHOWBASE_POSTGRES_TIMEOUT", 5*time.Second),
			RedisURL:         getEnv("SHOWBASE_REDIS_URL", ""),
			CacheTTL:         getEnvDuration("SHOWBASE_CACHE_TTL", 5*time.Minute),
		},
		Auth: AuthConfig{
			Mode:        AuthMode(getEnv("SHOWBASE_AUTH_MODE", string(AuthModeHTTP))),
			ProviderURL: getEnv("SHOWBASE_AUTH_URL", ""),
			APIKey:      getEnv("SHOWBASE_AUTH_API_KEY", ""),
			IssuerURL:   getEnv("SHOWBASE_AUTH_ISSUER", ""),
			ClientID:    getEnv("SHOWBASE_AUTH_CLIENT_ID", ""),
			CacheSize:   getEnvInt("SHOWBASE_AUTH_CACHE_SIZE", 1024),
			CacheTTL:    getEnvDuration("SHOWBASE_AUTH_CACHE_TTL", time.Minute),
		},
		LogLevel: getEnv("SHOWBASE_LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required settings are present and consistent
func (c *Config) Validate() error {
	if c.Storage.PostgresURL == "" {
		return fmt.Errorf("SHOWBASE_POSTGRES_URL is required")
	}

	switch c.Auth.Mode {
	case AuthModeHTTP:
		if c.Auth.ProviderURL == "" {
			return fmt.Errorf("SHOWBASE_AUTH_URL is required in http auth mode")
		}
	case AuthModeOIDC:
		if c.Auth.IssuerURL == "" {
			return fmt.Errorf("SHOWBASE_AUTH_ISSUER is required in oidc auth mode")
		}
	default:
		return fmt.Errorf("unknown auth mode: %s", c.Auth.Mode)
	}

	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func getEnvList(key string, defaultVal []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}

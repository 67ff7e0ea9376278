// Package config loads all environment variables for repochat.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration for the server and CLI.
type Config struct {
	// Server
	APIHost string
	APIPort string

	// Database
	DatabaseURL string

	// Clone working trees
	CloneBasePath string
	CloneStaleMin int

	// Context selection defaults
	MaxContextFiles  int
	MaxContextTokens int

	// LLM
	LLMProvider     string
	LLMModel        string
	AnthropicAPIKey string
	LLMMaxTokens    int

	// Auth
	AuthEnabled    bool
	JWTSecret      string
	JWTExpiryHours int

	// Timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		APIHost: envOr("API_HOST", "0.0.0.0"),
		APIPort: envOr("API_PORT", "8080"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		CloneBasePath: envOr("CLONE_BASE_PATH", filepath.Join(os.TempDir(), "repochat")),
		CloneStaleMin: envInt("CLONE_STALE_MIN", 30),

		MaxContextFiles:  envInt("MAX_CONTEXT_FILES", 20),
		MaxContextTokens: envInt("MAX_CONTEXT_TOKENS", 100000),

		LLMProvider:     envOr("LLM_PROVIDER", "anthropic"),
		LLMModel:        envOr("LLM_MODEL", "claude-3-opus-20240229"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		LLMMaxTokens:    envInt("LLM_MAX_TOKENS", 4000),

		AuthEnabled:    envBool("AUTH_ENABLED", false),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		JWTExpiryHours: envInt("JWT_EXPIRY_HOURS", 24),

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 300 * time.Second, // clone + LLM round trips are slow
		IdleTimeout:  60 * time.Second,
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.AuthEnabled && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required when AUTH_ENABLED=true")
	}

	return cfg, nil
}

// Addr returns the listen address as "host:port".
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.APIHost, c.APIPort)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

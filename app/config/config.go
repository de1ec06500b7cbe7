package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the auth client.
type Config struct {
	// Server
	Port     string
	Host     string
	LogLevel string

	// Identity provider (Ory Kratos)
	KratosPublicURL string

	// Backend account service
	AccountAPIURL string

	// Identity token minting
	TokenSecret   string
	TokenIssuer   string
	TokenAudience string
	TokenTTL      time.Duration

	// Federated provider catalog
	ProvidersFile string

	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	config := &Config{}

	// Server configuration
	config.Port = getEnvOrDefault("PORT", "9600")
	config.Host = getEnvOrDefault("HOST", "0.0.0.0")
	config.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")

	// Identity provider configuration
	config.KratosPublicURL = os.Getenv("KRATOS_PUBLIC_URL")
	if config.KratosPublicURL == "" {
		return nil, fmt.Errorf("KRATOS_PUBLIC_URL is required")
	}

	// Backend account service configuration
	config.AccountAPIURL = os.Getenv("ACCOUNT_API_URL")
	if config.AccountAPIURL == "" {
		return nil, fmt.Errorf("ACCOUNT_API_URL is required")
	}

	// Identity token configuration
	config.TokenSecret = os.Getenv("TOKEN_SECRET")
	if config.TokenSecret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET is required")
	}
	config.TokenIssuer = getEnvOrDefault("TOKEN_ISSUER", "auth-client")
	config.TokenAudience = getEnvOrDefault("TOKEN_AUDIENCE", "account-api")

	var err error
	tokenTTLStr := getEnvOrDefault("TOKEN_TTL", "2m")
	config.TokenTTL, err = time.ParseDuration(tokenTTLStr)
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	// Federated provider catalog
	config.ProvidersFile = getEnvOrDefault("PROVIDERS_FILE", "providers.yaml")

	// Rate limiting
	rpsStr := getEnvOrDefault("RATE_LIMIT_RPS", "10")
	config.RateLimitRPS, err = strconv.ParseFloat(rpsStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	burstStr := getEnvOrDefault("RATE_LIMIT_BURST", "20")
	burst, err := strconv.Atoi(burstStr)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BURST: %w", err)
	}
	config.RateLimitBurst = burst

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("invalid port: %s", c.Port)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535: %s", c.Port)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	// Minimum secret length for HS256 signing
	if len(c.TokenSecret) < 16 {
		return fmt.Errorf("token secret must be at least 16 characters, got: %d", len(c.TokenSecret))
	}

	if c.TokenTTL < time.Second {
		return fmt.Errorf("token TTL must be at least 1 second, got: %v", c.TokenTTL)
	}

	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("rate limit RPS must be positive, got: %v", c.RateLimitRPS)
	}
	if c.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit burst must be at least 1, got: %d", c.RateLimitBurst)
	}

	return nil
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

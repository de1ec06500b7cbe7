package integration_test

import (
	"context"
	"fmt"
	"time"

	"auth-client/app/config"
	"auth-client/app/driver/kratos"
	"auth-client/app/utils/logger"
)

const (
	// Test environment configuration
	TestKratosPublicURL = "http://localhost:4433"
	TestAccountAPIURL   = "http://localhost:9700"

	TestAuthClientURL = "http://localhost:9600"
)

// TestConfig creates a configuration for integration tests
func TestConfig() *config.Config {
	return &config.Config{
		// Server
		Port:     "9600",
		Host:     "0.0.0.0",
		LogLevel: "debug",

		// Upstreams
		KratosPublicURL: TestKratosPublicURL,
		AccountAPIURL:   TestAccountAPIURL,

		// Tokens
		TokenSecret:   "integration-test-secret",
		TokenIssuer:   "auth-client",
		TokenAudience: "account-api",
		TokenTTL:      2 * time.Minute,

		// Rate limiting
		RateLimitRPS:   100,
		RateLimitBurst: 100,
	}
}

// TestKratosClient creates a Kratos client for integration tests
func TestKratosClient() (*kratos.Client, error) {
	cfg := TestConfig()

	testLogger, err := logger.New("debug")
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return kratos.NewClient(cfg, testLogger)
}

// WaitForService waits for a service to be healthy
func WaitForService(ctx context.Context, healthCheckFunc func(context.Context) error, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		if err := healthCheckFunc(ctx); err == nil {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(1 * time.Second):
			// Continue waiting
		}
	}

	return fmt.Errorf("service did not become healthy within %v", timeout)
}

// WaitForKratos waits for Kratos to be ready
func WaitForKratos(ctx context.Context) error {
	return WaitForService(ctx, func(ctx context.Context) error {
		client, err := TestKratosClient()
		if err != nil {
			return err
		}
		return client.HealthCheck(ctx)
	}, 60*time.Second)
}

//go:build integration
// +build integration

package integration

import (
	"os"
	"testing"

	"github.com/relaypoint-io/relay-go/pkg/relay"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	APIBase  string
	APIID    string
	APIToken string
}

// LoadTestConfig loads configuration from environment variables.
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIBase:  os.Getenv("RELAY_TEST_API"),
		APIID:    os.Getenv("RELAY_TEST_API_ID"),
		APIToken: os.Getenv("RELAY_TEST_TOKEN"),
	}
}

// SkipIfMissingConfig skips the test when the environment is not configured.
func (c *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if c.APIBase == "" || c.APIToken == "" {
		t.Skip("integration test environment not configured; set RELAY_TEST_API and RELAY_TEST_TOKEN")
	}
}

// ClientConfig converts the test configuration into a client configuration
// with retries enabled.
func (c *TestConfig) ClientConfig() *relay.Config {
	config := relay.DefaultConfig()
	config.APIBase = c.APIBase
	config.APIID = c.APIID
	config.APIToken = c.APIToken
	config.MaxNetworkRetries = 2
	config.LogLevel = relay.LogLevelSilent

	return config
}

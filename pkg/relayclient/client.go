// Package relayclient provides the primary entry point for constructing a
// Relay API client that implements the relay.Client interface.
//
// It layers configuration defaults, transport, retry, and response caching on
// top of the types and interfaces defined in the relay package. Most
// applications should import relayclient to build a client, then use the
// returned relay.Client to access the resource clients, for example
// Customers(), Participants(), Transfers().
package relayclient

import (
	"fmt"
	"strings"

	"github.com/relaypoint-io/relay-go/internal/client"
	"github.com/relaypoint-io/relay-go/pkg/relay"
)

// New creates a new Relay API client from the given configuration. Zero-value
// fields fall back to the defaults of relay.DefaultConfig, and the API base
// is normalized (scheme added, trailing slash trimmed).
func New(config *relay.Config) (relay.Client, error) {
	if config == nil {
		return nil, relay.ErrConfigRequired
	}

	applyDefaults(config)

	config.APIBase = normalizeBase(config.APIBase)

	cli, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return cli, nil
}

// NewWithToken is a convenience constructor for the common case of an API id
// and secret token with default settings.
func NewWithToken(apiID, apiToken string) (relay.Client, error) {
	config := relay.DefaultConfig()
	config.APIID = apiID
	config.APIToken = apiToken

	return New(config)
}

// applyDefaults fills zero-value fields from the package defaults.
func applyDefaults(config *relay.Config) {
	defaults := relay.DefaultConfig()

	if config.APIBase == "" {
		config.APIBase = defaults.APIBase
	}

	if config.OpenTimeout == 0 {
		config.OpenTimeout = defaults.OpenTimeout
	}

	if config.ReadTimeout == 0 {
		config.ReadTimeout = defaults.ReadTimeout
	}

	if config.InitialRetryDelay == 0 {
		config.InitialRetryDelay = defaults.InitialRetryDelay
	}

	if config.MaxRetryDelay == 0 {
		config.MaxRetryDelay = defaults.MaxRetryDelay
	}

	if config.LogLevel == "" {
		config.LogLevel = defaults.LogLevel
	}
}

// normalizeBase trims a trailing slash and adds https:// when no scheme is
// present.
func normalizeBase(base string) string {
	base = strings.TrimSuffix(base, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}

	return base
}

// Package client implements the relay.Client interface on top of the request
// execution core in internal/http.
package client

import (
	"context"
	"fmt"

	internalhttp "github.com/relaypoint-io/relay-go/internal/http"
	"github.com/relaypoint-io/relay-go/pkg/relay"
)

// Client implements the relay.Client interface.
type Client struct {
	httpClient *internalhttp.Client
	config     *relay.Config

	customers        relay.CustomersClient
	participants     relay.ParticipantsClient
	transfers        relay.TransfersClient
	webhookEndpoints relay.WebhookEndpointsClient
	events           relay.EventsClient
}

// New creates a client from the given configuration. The configuration is
// validated eagerly so misconfiguration fails here, not at request time.
func New(config *relay.Config) (*Client, error) {
	if config == nil {
		return nil, relay.ErrConfigRequired
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	httpClient, err := buildHTTPClient(config)
	if err != nil {
		return nil, err
	}

	client := &Client{
		httpClient: httpClient,
		config:     config,
	}
	client.initializeResourceClients()

	return client, nil
}

// NewWithHTTPClient wires a prebuilt transport client. Intended for tests.
func NewWithHTTPClient(config *relay.Config, httpClient *internalhttp.Client) *Client {
	client := &Client{
		httpClient: httpClient,
		config:     config,
	}
	client.initializeResourceClients()

	return client
}

// buildHTTPClient translates the configuration into transport options.
func buildHTTPClient(config *relay.Config) (*internalhttp.Client, error) {
	logger := config.Logger
	if logger == nil && config.LogLevel != relay.LogLevelSilent {
		level := config.LogLevel
		if level == "" {
			level = relay.LogLevelError
		}

		logger = relay.DefaultLogger(level)
	}

	opts := []internalhttp.Option{
		internalhttp.WithTimeouts(config.OpenTimeout, config.ReadTimeout),
		internalhttp.WithTLSConfig(!config.SkipTLSVerify, config.CABundlePath),
		internalhttp.WithRetryConfig(config.MaxNetworkRetries, config.InitialRetryDelay, config.MaxRetryDelay),
	}

	if logger != nil {
		opts = append(opts, internalhttp.WithLogger(logger))
	}

	if config.LogLevel == relay.LogLevelDebug {
		opts = append(opts, internalhttp.WithDebug(true))
	}

	if config.APIVersion != "" {
		opts = append(opts, internalhttp.WithAPIVersion(config.APIVersion))
	}

	if config.AppInfo != nil {
		opts = append(opts, internalhttp.WithAppInfo(config.AppInfo))
	}

	if config.Cache != nil {
		cache, err := relay.NewCacheFromConfig(config.Cache)
		if err != nil {
			return nil, fmt.Errorf("building response cache: %w", err)
		}

		opts = append(opts, internalhttp.WithCache(cache, config.Cache.TTL))
	}

	baseURL := config.APIBase
	if baseURL == "" {
		baseURL = relay.DefaultAPIBase
	}

	creds := internalhttp.Credentials{APIID: config.APIID, APIToken: config.APIToken}

	return internalhttp.NewClient(baseURL, creds, opts...)
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.customers = newResourceClient(c, "customer")
	c.participants = newResourceClient(c, "participant")
	c.transfers = newResourceClient(c, "transfer")
	c.webhookEndpoints = newResourceClient(c, "webhook_endpoint")
	c.events = newResourceClient(c, "event")
}

// Customers implements relay.Client.Customers.
func (c *Client) Customers() relay.CustomersClient {
	return c.customers
}

// Participants implements relay.Client.Participants.
func (c *Client) Participants() relay.ParticipantsClient {
	return c.participants
}

// Transfers implements relay.Client.Transfers.
func (c *Client) Transfers() relay.TransfersClient {
	return c.transfers
}

// WebhookEndpoints implements relay.Client.WebhookEndpoints.
func (c *Client) WebhookEndpoints() relay.WebhookEndpointsClient {
	return c.webhookEndpoints
}

// Events implements relay.Client.Events.
func (c *Client) Events() relay.EventsClient {
	return c.events
}

// Raw implements relay.Client.Raw: an escape hatch for endpoints the typed
// clients do not cover.
func (c *Client) Raw(ctx context.Context, method, path string, params relay.Params) (*relay.Resource, error) {
	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method: method,
		Path:   path,
		Params: params,
	})
	if err != nil {
		return nil, err
	}

	resource, err := relay.ResourceFromJSON(resp.Body, c.config.APIID, resp.APIVersion)
	if err != nil {
		return nil, fmt.Errorf("parsing response for %s %s: %w", method, path, err)
	}

	return resource, nil
}

// Ping implements relay.Client.Ping.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.httpClient.Get(ctx, "/health", nil)
	if err != nil {
		return fmt.Errorf("pinging API: %w", err)
	}

	return nil
}

// Refresh implements relay.Client.Refresh: it re-fetches the resource via
// its own URL and swaps the fresh state in place.
func (c *Client) Refresh(ctx context.Context, resource *relay.Resource) error {
	path, err := resource.URL()
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("refreshing %s: %w", resource.Object(), err)
	}

	fetched, err := relay.ResourceFromJSON(resp.Body, c.config.APIID, resp.APIVersion)
	if err != nil {
		return fmt.Errorf("parsing %s response: %w", resource.Object(), err)
	}

	resource.ReplaceFrom(fetched)

	return nil
}

// Save implements relay.Client.Save: it transmits only the locally-changed
// fields (plus mutated save-with-parent nested data) to the resource's URL.
func (c *Client) Save(ctx context.Context, resource *relay.Resource) error {
	if !resource.HasChanges() {
		return nil
	}

	path, err := resource.URL()
	if err != nil {
		return err
	}

	schema, err := relay.SchemaFor(resource.Object())
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(ctx, &internalhttp.Request{
		Method: "POST",
		Path:   path,
		Params: resource.ChangedParams(),
		Schema: schema,
	})
	if err != nil {
		return fmt.Errorf("saving %s: %w", resource.Object(), err)
	}

	fetched, err := relay.ResourceFromJSON(resp.Body, c.config.APIID, resp.APIVersion)
	if err != nil {
		return fmt.Errorf("parsing %s response: %w", resource.Object(), err)
	}

	resource.ReplaceFrom(fetched)

	return nil
}

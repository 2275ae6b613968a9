package relay

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

// Default endpoints and tuning values.
const (
	// DefaultAPIBase is the production API endpoint.
	DefaultAPIBase = "https://api.relaypoint.io"

	// DefaultOpenTimeout bounds connection establishment.
	DefaultOpenTimeout = 30 * time.Second

	// DefaultReadTimeout bounds waiting for response headers.
	DefaultReadTimeout = 80 * time.Second

	// DefaultInitialRetryDelay is the first backoff interval.
	DefaultInitialRetryDelay = 500 * time.Millisecond

	// DefaultMaxRetryDelay caps the backoff interval.
	DefaultMaxRetryDelay = 2 * time.Second
)

// LogLevelEnvVar optionally sets the default log verbosity at process start.
const LogLevelEnvVar = "RELAY_LOG"

// CustomersClient manages customer resources.
type CustomersClient interface {
	Create(ctx context.Context, params Params) (*Resource, error)
	Get(ctx context.Context, customerID string) (*Resource, error)
	List(ctx context.Context, params Params) (*Collection, error)
	Update(ctx context.Context, customerID string, params Params) (*Resource, error)
	Delete(ctx context.Context, customerID string) error
}

// ParticipantsClient manages participant resources.
type ParticipantsClient interface {
	Create(ctx context.Context, params Params) (*Resource, error)
	Get(ctx context.Context, participantID string) (*Resource, error)
	List(ctx context.Context, params Params) (*Collection, error)
	Update(ctx context.Context, participantID string, params Params) (*Resource, error)
	Delete(ctx context.Context, participantID string) error
}

// TransfersClient manages transfer resources. Transfers are immutable once
// created, so there is no update or delete.
type TransfersClient interface {
	Create(ctx context.Context, params Params) (*Resource, error)
	Get(ctx context.Context, transferID string) (*Resource, error)
	List(ctx context.Context, params Params) (*Collection, error)
}

// WebhookEndpointsClient manages webhook endpoint resources.
type WebhookEndpointsClient interface {
	Create(ctx context.Context, params Params) (*Resource, error)
	Get(ctx context.Context, endpointID string) (*Resource, error)
	List(ctx context.Context, params Params) (*Collection, error)
	Update(ctx context.Context, endpointID string, params Params) (*Resource, error)
	Delete(ctx context.Context, endpointID string) error
}

// EventsClient reads event resources.
type EventsClient interface {
	Get(ctx context.Context, eventID string) (*Resource, error)
	List(ctx context.Context, params Params) (*Collection, error)
}

// Client is the public contract of the Relay API client. Every response is
// converted to a Resource/Collection value or a typed error from this
// package, never a raw transport failure.
type Client interface {
	Customers() CustomersClient
	Participants() ParticipantsClient
	Transfers() TransfersClient
	WebhookEndpoints() WebhookEndpointsClient
	Events() EventsClient

	// Raw issues a request against an endpoint the typed clients do not
	// cover. Params follow the same placement rules as everywhere else:
	// query string for GET/HEAD/DELETE, form-encoded body otherwise.
	Raw(ctx context.Context, method, path string, params Params) (*Resource, error)

	// Ping checks connectivity and credentials against the health endpoint.
	Ping(ctx context.Context) error

	// Refresh re-fetches a resource in place using its own URL.
	Refresh(ctx context.Context, resource *Resource) error

	// Save persists a resource's locally-changed fields via its own URL.
	Save(ctx context.Context, resource *Resource) error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// LogLevel controls which log lines the default logger emits.
type LogLevel string

const (
	// LogLevelSilent suppresses all output.
	LogLevelSilent LogLevel = "silent"

	// LogLevelError emits errors only.
	LogLevelError LogLevel = "error"

	// LogLevelInfo emits request/response lines and errors.
	LogLevelInfo LogLevel = "info"

	// LogLevelDebug emits everything.
	LogLevelDebug LogLevel = "debug"
)

// ParseLogLevel validates a level name. Unknown names fail immediately with
// ErrInvalidLogLevel rather than at request time.
func ParseLogLevel(name string) (LogLevel, error) {
	switch LogLevel(strings.ToLower(strings.TrimSpace(name))) {
	case LogLevelSilent:
		return LogLevelSilent, nil
	case LogLevelError:
		return LogLevelError, nil
	case LogLevelInfo:
		return LogLevelInfo, nil
	case LogLevelDebug:
		return LogLevelDebug, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLogLevel, name)
	}
}

// AppInfo identifies the calling application or plugin; when set it is echoed
// into the user agent of every request.
type AppInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	URL     string `json:"url,omitempty"`
}

// String formats the app info for a User-Agent header fragment.
func (a *AppInfo) String() string {
	if a == nil || a.Name == "" {
		return ""
	}

	str := a.Name
	if a.Version != "" {
		str += "/" + a.Version
	}

	if a.URL != "" {
		str += " (" + a.URL + ")"
	}

	return str
}

// Config represents client configuration for building a relay.Client.
//
// A Config is read by every request issued through the client built from it.
// It is not snapshotted: mutating a Config concurrently with in-flight
// requests is undefined behavior. Configure once at startup, before spawning
// concurrent work.
type Config struct {
	// APIBase is the base URL for the API. Defaults to DefaultAPIBase.
	APIBase string
	// APIID identifies the API account, sent as the X-API-ID header.
	APIID string
	// APIToken authenticates requests as a Bearer token. Required; every
	// call fails fast with an AuthenticationError when it is absent.
	APIToken string
	// APIVersion optionally pins the API version via the Relay-Version
	// header.
	APIVersion string

	// SkipTLSVerify disables TLS verification. Enabling it logs a one-time
	// prominent warning; never use it in production.
	SkipTLSVerify bool
	// CABundlePath optionally points at a PEM bundle used as the trust
	// store instead of the system roots.
	CABundlePath string

	// OpenTimeout bounds connection establishment per attempt.
	OpenTimeout time.Duration
	// ReadTimeout bounds waiting for response headers per attempt.
	ReadTimeout time.Duration

	// MaxNetworkRetries is the number of retries after the first attempt
	// for timeouts, connection failures, and 409 conflicts. Zero disables
	// retries entirely.
	MaxNetworkRetries int
	// InitialRetryDelay is the backoff floor and first interval.
	InitialRetryDelay time.Duration
	// MaxRetryDelay caps the backoff interval.
	MaxRetryDelay time.Duration

	// Logger receives structured request, response, and error lines. Nil
	// means the default stderr logger at LogLevel.
	Logger Logger
	// LogLevel filters the default logger. Defaults to the RELAY_LOG
	// environment variable, then "error".
	LogLevel LogLevel

	// AppInfo optionally identifies the calling application in the user
	// agent.
	AppInfo *AppInfo

	// Cache optionally layers a response cache over GET requests.
	Cache *CacheConfig
}

// DefaultConfig returns a Config populated with defaults. Credentials are
// left empty.
func DefaultConfig() *Config {
	level := LogLevelError
	if env := os.Getenv(LogLevelEnvVar); env != "" {
		if parsed, err := ParseLogLevel(env); err == nil {
			level = parsed
		}
	}

	return &Config{
		APIBase:           DefaultAPIBase,
		OpenTimeout:       DefaultOpenTimeout,
		ReadTimeout:       DefaultReadTimeout,
		MaxNetworkRetries: 0,
		InitialRetryDelay: DefaultInitialRetryDelay,
		MaxRetryDelay:     DefaultMaxRetryDelay,
		LogLevel:          level,
	}
}

// Validate checks the configuration for mistakes that should fail at
// construction rather than at request time.
func (c *Config) Validate() error {
	if c == nil {
		return ErrConfigRequired
	}

	if c.LogLevel != "" {
		if _, err := ParseLogLevel(string(c.LogLevel)); err != nil {
			return err
		}
	}

	if c.MaxNetworkRetries < 0 {
		return fmt.Errorf("max network retries must be >= 0, got %d", c.MaxNetworkRetries)
	}

	if c.InitialRetryDelay < 0 || c.MaxRetryDelay < 0 {
		return fmt.Errorf("retry delays must be >= 0, got initial=%s max=%s", c.InitialRetryDelay, c.MaxRetryDelay)
	}

	if c.CABundlePath != "" {
		if _, err := os.Stat(c.CABundlePath); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidCABundle, c.CABundlePath, err)
		}
	}

	return nil
}

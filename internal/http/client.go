// Package http implements the request execution core: it builds HTTP requests
// from resource operations, authenticates them, serializes payloads, retries
// idempotent-safe failures with capped exponential backoff and jitter, and
// classifies every failure into the typed taxonomy of the relay package.
package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/relaypoint-io/relay-go/pkg/relay"
)

// Credentials authenticate every request issued through a Client.
type Credentials struct {
	APIID    string
	APIToken string
}

// Overrides replace ambient client settings for a single call. Set fields
// take precedence over the client's configuration.
type Overrides struct {
	APIBase        string
	APIID          string
	APIToken       string
	IdempotencyKey string
	Headers        map[string]string
}

// Request describes one resource operation to execute.
type Request struct {
	Method string
	Path   string
	// Params are placed on the query string for GET/HEAD/DELETE and in a
	// form-encoded body otherwise.
	Params relay.Params
	// Schema drives nested-resource serialization for the params; may be
	// nil.
	Schema *relay.Schema
	// Headers are additional request headers.
	Headers map[string]string
	// Multipart forces a multipart/form-data body.
	Multipart bool
	// Overrides replace ambient settings for this call only.
	Overrides *Overrides
}

// Response is the immutable envelope handed back for every successful call.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	// RequestID is the server-assigned request id; it takes precedence over
	// anything generated client-side.
	RequestID string
	// APIVersion echoes the version header the server answered with.
	APIVersion string
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the structured logger.
func WithLogger(logger relay.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables verbose request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithAppInfo appends caller application identification to the user agent.
func WithAppInfo(info *relay.AppInfo) Option {
	return func(c *Client) {
		c.appInfo = info
	}
}

// WithAPIVersion pins the API version sent as the Relay-Version header.
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		c.apiVersion = version
	}
}

// WithRetryConfig tunes retry behavior: retryMax retries after the first
// attempt, backing off between initialDelay and maxDelay.
func WithRetryConfig(retryMax int, initialDelay, maxDelay time.Duration) Option {
	return func(c *Client) {
		c.retryMax = retryMax
		c.retryInitialDelay = initialDelay
		c.retryMaxDelay = maxDelay
	}
}

// WithTimeouts sets the connect and response-read timeouts.
func WithTimeouts(openTimeout, readTimeout time.Duration) Option {
	return func(c *Client) {
		c.openTimeout = openTimeout
		c.readTimeout = readTimeout
	}
}

// WithTLSConfig controls certificate verification and the trust bundle.
func WithTLSConfig(verify bool, caBundlePath string) Option {
	return func(c *Client) {
		c.verifyCerts = verify
		c.caBundlePath = caBundlePath
	}
}

// WithTransport injects the underlying round tripper. Intended for tests.
func WithTransport(transport http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = transport
	}
}

// WithCache layers a response cache over GET requests.
func WithCache(cache relay.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

// WithInterceptors attaches an interceptor chain.
func WithInterceptors(chain *relay.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// insecureWarning fires at most once per process.
var insecureWarning sync.Once

// Client executes requests against the API. It wraps one pooled HTTP client
// per instance; the pool scopes live connections per in-flight request, so a
// Client is safe for concurrent use.
type Client struct {
	baseURL    string
	creds      Credentials
	apiVersion string

	userAgent string
	appInfo   *relay.AppInfo

	retryMax          int
	retryInitialDelay time.Duration
	retryMaxDelay     time.Duration

	openTimeout  time.Duration
	readTimeout  time.Duration
	verifyCerts  bool
	caBundlePath string

	transport    http.RoundTripper
	logger       relay.Logger
	debug        bool
	cache        relay.Cache
	cacheTTL     time.Duration
	interceptors *relay.InterceptorChain

	retryClient *retryablehttp.Client
}

// NewClient creates a client for the given base URL and credentials.
func NewClient(baseURL string, creds Credentials, opts ...Option) (*Client, error) {
	client := &Client{
		baseURL:           strings.TrimSuffix(baseURL, "/"),
		creds:             creds,
		retryMax:          0,
		retryInitialDelay: relay.DefaultInitialRetryDelay,
		retryMaxDelay:     relay.DefaultMaxRetryDelay,
		openTimeout:       relay.DefaultOpenTimeout,
		readTimeout:       relay.DefaultReadTimeout,
		verifyCerts:       true,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.userAgent == "" {
		client.userAgent = defaultUserAgent(client.appInfo)
	}

	if client.transport == nil {
		transport, err := client.buildTransport()
		if err != nil {
			return nil, err
		}

		client.transport = transport
	}

	if !client.verifyCerts {
		insecureWarning.Do(func() {
			msg := "TLS certificate verification is DISABLED; connections are vulnerable to interception"
			if client.logger != nil {
				client.logger.Warn(msg, nil)
			} else {
				fmt.Fprintf(os.Stderr, "WARNING: %s\n", msg)
			}
		})
	}

	client.retryClient = client.buildRetryClient()

	return client, nil
}

// buildTransport assembles the pooled transport with TLS and timeout
// settings. The trust store is built here, once per client.
func (c *Client) buildTransport() (*http.Transport, error) {
	tlsConfig := &tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	if !c.verifyCerts {
		tlsConfig.InsecureSkipVerify = true // #nosec G402 -- opt-in, with a one-time warning at construction
	}

	if c.caBundlePath != "" {
		pem, err := os.ReadFile(c.caBundlePath)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", relay.ErrInvalidCABundle, c.caBundlePath, err)
		}

		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("%w: %s: no certificates found", relay.ErrInvalidCABundle, c.caBundlePath)
		}

		tlsConfig.RootCAs = pool
	}

	dialer := &net.Dialer{Timeout: c.openTimeout}

	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSClientConfig:       tlsConfig,
		TLSHandshakeTimeout:   c.openTimeout,
		ResponseHeaderTimeout: c.readTimeout,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
	}, nil
}

// buildRetryClient wires retryablehttp with this package's eligibility and
// backoff rules.
func (c *Client) buildRetryClient() *retryablehttp.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = &http.Client{Transport: c.transport}
	retryClient.RetryMax = c.retryMax
	retryClient.RetryWaitMin = c.retryInitialDelay
	retryClient.RetryWaitMax = c.retryMaxDelay
	retryClient.Logger = nil
	retryClient.CheckRetry = c.checkRetry
	retryClient.Backoff = retryBackoff
	// Hand back the last response instead of swallowing it, so exhausted
	// retries still flow through the classifier.
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	if c.logger != nil {
		retryClient.RequestLogHook = func(_ retryablehttp.Logger, req *http.Request, attempt int) {
			c.logger.Info("HTTP Request", map[string]interface{}{
				"method":  req.Method,
				"path":    req.URL.Path,
				"attempt": attempt + 1,
			})
		}
	}

	return retryClient
}

// checkRetry implements the eligibility policy: transport timeouts, transport
// connection failures, and 409 conflicts, while attempts remain. Everything
// else propagates immediately through the classifier.
func (c *Client) checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if c.retryMax == 0 {
		return false, nil
	}

	if err != nil {
		return retryableTransportError(err), nil
	}

	if resp != nil && resp.StatusCode == http.StatusConflict {
		return true, nil
	}

	return false, nil
}

// retryableTransportError reports whether a transport failure is worth
// retrying. Certificate failures are deterministic and are not.
func retryableTransportError(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return false
	}

	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)
}

// retryBackoff computes the sleep before retry attempt attemptNum (0-based):
// capped exponential growth from initialDelay, jittered by a uniform factor
// in [0.5, 1.0], floored at initialDelay so jitter never produces a
// near-zero first sleep.
func retryBackoff(initialDelay, maxDelay time.Duration, attemptNum int, _ *http.Response) time.Duration {
	delay := initialDelay << uint(attemptNum)
	if delay > maxDelay || delay <= 0 {
		delay = maxDelay
	}

	jitter := 0.5 + rand.Float64()*0.5 // #nosec G404 -- jitter does not need crypto randomness
	delay = time.Duration(float64(delay) * jitter)

	if delay < initialDelay {
		delay = initialDelay
	}

	return delay
}

// Do executes a request and returns its response envelope, or a typed error
// from the relay package. It never returns a raw transport failure.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()

	creds, err := c.resolveCredentials(req.Overrides)
	if err != nil {
		c.logError(err)

		return nil, err
	}

	httpReq, cacheKey, err := c.buildRequest(ctx, req, creds)
	if err != nil {
		c.logError(err)

		return nil, err
	}

	event := &relay.RequestEvent{
		Method:  req.Method,
		Path:    req.Path,
		Headers: httpReq.Header,
	}
	if err := c.interceptors.ExecuteRequestInterceptors(ctx, event); err != nil {
		return nil, err
	}

	if cacheKey != "" {
		if entry, cacheErr := c.cache.Get(ctx, cacheKey); cacheErr == nil {
			c.logDebug("cache hit", map[string]interface{}{"key": cacheKey})

			resp := &Response{StatusCode: http.StatusOK, Headers: http.Header{}, Body: entry.Data}
			c.logCompletion(req, resp, start)
			c.notifyInterceptors(ctx, event, resp, nil, start)

			return resp, nil
		}
	}

	httpResp, err := c.retryClient.Do(httpReq)
	if err != nil {
		connErr := c.connectionError(err)
		c.logError(connErr)
		c.notifyInterceptors(ctx, event, nil, connErr, start)

		return nil, connErr
	}

	resp, err := c.readResponse(httpResp)
	if err != nil {
		c.logError(err)
		c.notifyInterceptors(ctx, event, nil, err, start)

		return nil, err
	}

	c.logCompletion(req, resp, start)

	if resp.StatusCode >= http.StatusBadRequest {
		classified := relay.ClassifyResponse(resp.StatusCode, resp.Body, resp.Headers)
		c.logError(classified)
		c.notifyInterceptors(ctx, event, resp, classified, start)

		return resp, classified
	}

	if err := c.validateSuccessBody(resp); err != nil {
		c.logError(err)
		c.notifyInterceptors(ctx, event, resp, err, start)

		return nil, err
	}

	c.updateCache(ctx, req, cacheKey, resp)
	c.notifyInterceptors(ctx, event, resp, nil, start)

	return resp, nil
}

// Get issues a GET with params on the query string.
func (c *Client) Get(ctx context.Context, path string, params relay.Params) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Params: params})
}

// Post issues a form-encoded POST.
func (c *Client) Post(ctx context.Context, path string, params relay.Params) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Params: params})
}

// Put issues a form-encoded PUT.
func (c *Client) Put(ctx context.Context, path string, params relay.Params) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Params: params})
}

// Delete issues a DELETE with params on the query string.
func (c *Client) Delete(ctx context.Context, path string, params relay.Params) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path, Params: params})
}

// resolveCredentials applies per-call overrides and fails fast when no usable
// token is present, before any network activity.
func (c *Client) resolveCredentials(overrides *Overrides) (Credentials, error) {
	creds := c.creds
	if overrides != nil {
		if overrides.APIID != "" {
			creds.APIID = overrides.APIID
		}

		if overrides.APIToken != "" {
			creds.APIToken = overrides.APIToken
		}
	}

	if creds.APIToken == "" {
		return Credentials{}, &relay.AuthenticationError{ErrorEnvelope: relay.ErrorEnvelope{
			Message: "No API token provided. Set Config.APIToken to your secret key before issuing requests.",
		}}
	}

	if strings.ContainsAny(creds.APIToken, " \t\n\r") {
		return Credentials{}, &relay.AuthenticationError{ErrorEnvelope: relay.ErrorEnvelope{
			Message: "The provided API token contains whitespace. This usually indicates a copy-paste mistake; double-check your secret key.",
		}}
	}

	return creds, nil
}

// buildRequest assembles the outbound request: parameter placement, body
// encoding, and headers. The second return is the cache key, set only for
// cacheable GETs.
func (c *Client) buildRequest(ctx context.Context, req *Request, creds Credentials) (*retryablehttp.Request, string, error) {
	baseURL := c.baseURL
	if req.Overrides != nil && req.Overrides.APIBase != "" {
		baseURL = strings.TrimSuffix(req.Overrides.APIBase, "/")
	}

	fullURL := baseURL + req.Path
	contentType := ""
	cacheKey := ""

	var body []byte

	switch req.Method {
	case http.MethodGet, http.MethodHead, http.MethodDelete:
		values, err := relay.EncodeParams(req.Params, req.Schema)
		if err != nil {
			return nil, "", err
		}

		if encoded := values.Encode(); encoded != "" {
			fullURL += "?" + encoded
		}

		if req.Method == http.MethodGet && c.cache != nil {
			cacheKey = strings.TrimPrefix(fullURL, baseURL)
		}
	default:
		var err error

		body, contentType, err = encodeBody(req)
		if err != nil {
			return nil, "", err
		}
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, "", fmt.Errorf("building request: %w", err)
	}

	c.setHeaders(httpReq, req, creds, contentType)

	return httpReq, cacheKey, nil
}

// encodeBody produces the request body: multipart/form-data when requested,
// bracketed form encoding otherwise.
func encodeBody(req *Request) ([]byte, string, error) {
	if !req.Multipart {
		values, err := relay.EncodeParams(req.Params, req.Schema)
		if err != nil {
			return nil, "", err
		}

		return []byte(values.Encode()), "application/x-www-form-urlencoded", nil
	}

	files, fields := relay.FileFields(req.Params)

	values, err := relay.EncodeParams(fields, req.Schema)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for key, fieldValues := range values {
		for _, value := range fieldValues {
			if err := writer.WriteField(key, value); err != nil {
				return nil, "", fmt.Errorf("writing multipart field %q: %w", key, err)
			}
		}
	}

	for key, file := range files {
		part, err := writer.CreateFormFile(key, file.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("creating multipart file %q: %w", key, err)
		}

		if _, err := io.Copy(part, file.Reader); err != nil {
			return nil, "", fmt.Errorf("copying multipart file %q: %w", key, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finalizing multipart body: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

// setHeaders stamps authentication, version, idempotency, and diagnostic
// headers. The idempotency key is generated once here and therefore constant
// across every retry attempt of the logical call.
func (c *Client) setHeaders(httpReq *retryablehttp.Request, req *Request, creds Credentials, contentType string) {
	httpReq.Header.Set("Authorization", "Bearer "+creds.APIToken)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Relay-Client-User-Agent", clientUserAgentPayload(c.appInfo))

	if creds.APIID != "" {
		httpReq.Header.Set("X-API-ID", creds.APIID)
	}

	if c.apiVersion != "" {
		httpReq.Header.Set("Relay-Version", c.apiVersion)
	}

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	if key := c.idempotencyKey(req); key != "" {
		httpReq.Header.Set("Idempotency-Key", key)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	if req.Overrides != nil {
		for key, value := range req.Overrides.Headers {
			httpReq.Header.Set(key, value)
		}
	}
}

// idempotencyKey returns the key for this logical call: the caller-supplied
// one when present, otherwise a generated key for POST/DELETE whenever
// retries are enabled, so repeated attempts deduplicate server-side.
func (c *Client) idempotencyKey(req *Request) string {
	if req.Overrides != nil && req.Overrides.IdempotencyKey != "" {
		return req.Overrides.IdempotencyKey
	}

	if req.Headers != nil && req.Headers["Idempotency-Key"] != "" {
		return req.Headers["Idempotency-Key"]
	}

	if c.retryMax > 0 && (req.Method == http.MethodPost || req.Method == http.MethodDelete) {
		return uuid.NewString()
	}

	return ""
}

// readResponse drains the body and builds the immutable envelope. Server
// supplied correlation headers win over anything set client-side.
func (c *Client) readResponse(httpResp *http.Response) (*Response, error) {
	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &relay.APIConnectionError{
			ErrorEnvelope: relay.ErrorEnvelope{Message: "Error reading response body from the API."},
			Cause:         err,
		}
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
		RequestID:  httpResp.Header.Get("Request-Id"),
		APIVersion: httpResp.Header.Get("Relay-Version"),
	}, nil
}

// validateSuccessBody rejects malformed bodies on nominally successful
// responses as a generic API error instead of surfacing a parse failure.
func (c *Client) validateSuccessBody(resp *Response) error {
	if len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}

	if json.Valid(resp.Body) {
		return nil
	}

	return &relay.APIError{ErrorEnvelope: relay.ErrorEnvelope{
		Message:    "The API returned a malformed response body.",
		StatusCode: resp.StatusCode,
		Body:       resp.Body,
		Headers:    resp.Headers,
		RequestID:  resp.RequestID,
	}}
}

// connectionError maps a transport failure to an APIConnectionError with a
// human-readable diagnostic chosen by failure category.
func (c *Client) connectionError(err error) error {
	cause := err

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		cause = urlErr.Err
	}

	message := "Unexpected error communicating with the API."

	var (
		certErr          *tls.CertificateVerificationError
		unknownAuthority x509.UnknownAuthorityError
		dnsErr           *net.DNSError
		netErr           net.Error
	)

	switch {
	case errors.As(cause, &certErr), errors.As(cause, &unknownAuthority):
		message = "Could not verify the API server's SSL certificate. Check your CA bundle, or that your network is not intercepting TLS."
	case errors.As(cause, &dnsErr):
		message = fmt.Sprintf("Could not resolve the API host (%s). Check your DNS configuration and connectivity.", c.baseURL)
	case errors.As(cause, &netErr) && netErr.Timeout():
		message = "Request timed out waiting for the API. Check your connectivity, or raise the configured timeouts."
	case errors.As(cause, new(*net.OpError)):
		message = fmt.Sprintf("Could not connect to the API at %s. Check your internet connection and the endpoint's status.", c.baseURL)
	}

	// Retryable failures only surface after the policy is exhausted, so the
	// attempt count is exact. Non-retryable failures attempt once and get no
	// count.
	if c.retryMax > 0 && retryableTransportError(err) {
		message = fmt.Sprintf("%s Request was attempted %d time(s).", message, c.retryMax+1)
	}

	return &relay.APIConnectionError{
		ErrorEnvelope: relay.ErrorEnvelope{Message: message},
		Cause:         err,
	}
}

// updateCache stores successful GET bodies and invalidates written paths.
func (c *Client) updateCache(ctx context.Context, req *Request, cacheKey string, resp *Response) {
	if c.cache == nil {
		return
	}

	if cacheKey != "" && resp.StatusCode == http.StatusOK {
		entry := &relay.CacheEntry{
			Data:      resp.Body,
			ExpiresAt: time.Now().Add(c.cacheTTL),
			ETag:      resp.Headers.Get("ETag"),
		}
		_ = c.cache.Set(ctx, cacheKey, entry)

		return
	}

	if req.Method == http.MethodGet || req.Method == http.MethodHead {
		return
	}

	// Best-effort invalidation of the written resource and its collection.
	_ = c.cache.Delete(ctx, req.Path)

	if idx := strings.LastIndex(req.Path, "/"); idx > 0 {
		_ = c.cache.Delete(ctx, req.Path[:idx])
	}
}

func (c *Client) notifyInterceptors(ctx context.Context, event *relay.RequestEvent, resp *Response, callErr error, start time.Time) {
	respEvent := &relay.ResponseEvent{
		Duration: time.Since(start),
		Err:      callErr,
	}
	if resp != nil {
		respEvent.StatusCode = resp.StatusCode
		respEvent.RequestID = resp.RequestID
	}

	_ = c.interceptors.ExecuteResponseInterceptors(ctx, event, respEvent)
}

func (c *Client) logCompletion(req *Request, resp *Response, start time.Time) {
	if c.logger == nil {
		return
	}

	c.logger.Info("HTTP Response", map[string]interface{}{
		"method":      req.Method,
		"path":        req.Path,
		"status":      resp.StatusCode,
		"elapsed_ms":  time.Since(start).Milliseconds(),
		"request_id":  resp.RequestID,
		"api_version": resp.APIVersion,
	})

	if c.debug {
		c.logger.Debug("HTTP Response Body", map[string]interface{}{
			"body": string(resp.Body),
		})
	}
}

func (c *Client) logError(err error) {
	if c.logger == nil {
		return
	}

	c.logger.Error("API Error", map[string]interface{}{
		"error": err.Error(),
	})
}

func (c *Client) logDebug(msg string, fields map[string]interface{}) {
	if c.logger != nil && c.debug {
		c.logger.Debug(msg, fields)
	}
}

// defaultUserAgent builds the User-Agent header value.
func defaultUserAgent(info *relay.AppInfo) string {
	agent := "Relay/v1 GoBindings/" + relay.ClientVersion
	if app := info.String(); app != "" {
		agent += " " + app
	}

	return agent
}

// clientUserAgentPayload builds the diagnostic X-Relay-Client-User-Agent
// JSON payload describing the client runtime and platform.
func clientUserAgentPayload(info *relay.AppInfo) string {
	payload := map[string]interface{}{
		"bindings_version": relay.ClientVersion,
		"lang":             "go",
		"lang_version":     runtime.Version(),
		"publisher":        "relaypoint",
		"os":               runtime.GOOS,
		"arch":             runtime.GOARCH,
	}
	if info != nil && info.Name != "" {
		payload["application"] = info
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return ""
	}

	return string(encoded)
}

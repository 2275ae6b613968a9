package relay

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// RequestEvent is the view of an outbound request handed to interceptors
// before dispatch.
type RequestEvent struct {
	Method  string
	Path    string
	Headers http.Header
}

// ResponseEvent is the view of a completed call handed to interceptors.
type ResponseEvent struct {
	StatusCode int
	RequestID  string
	Duration   time.Duration
	Err        error
}

// RequestInterceptor is called before a request is sent. Returning an error
// aborts the call.
type RequestInterceptor func(ctx context.Context, req *RequestEvent) error

// ResponseInterceptor is called after a response (or classified error) is
// produced.
type ResponseInterceptor func(ctx context.Context, req *RequestEvent, resp *ResponseEvent) error

// InterceptorChain manages a chain of interceptors.
type InterceptorChain struct {
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// NewInterceptorChain creates a new interceptor chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{}
}

// AddRequestInterceptor adds a request interceptor to the chain.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) {
	c.requestInterceptors = append(c.requestInterceptors, interceptor)
}

// AddResponseInterceptor adds a response interceptor to the chain.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) {
	c.responseInterceptors = append(c.responseInterceptors, interceptor)
}

// ExecuteRequestInterceptors runs all request interceptors.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *RequestEvent) error {
	if c == nil {
		return nil
	}

	for _, interceptor := range c.requestInterceptors {
		if err := interceptor(ctx, req); err != nil {
			return fmt.Errorf("request interceptor failed: %w", err)
		}
	}

	return nil
}

// ExecuteResponseInterceptors runs all response interceptors.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, req *RequestEvent, resp *ResponseEvent) error {
	if c == nil {
		return nil
	}

	for _, interceptor := range c.responseInterceptors {
		if err := interceptor(ctx, req, resp); err != nil {
			return fmt.Errorf("response interceptor failed: %w", err)
		}
	}

	return nil
}

// Common interceptors.

// LoggingInterceptor logs outbound requests.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(ctx context.Context, req *RequestEvent) error {
		logger.Debug("API Request", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
		})

		return nil
	}
}

// LoggingResponseInterceptor logs completed calls.
func LoggingResponseInterceptor(logger Logger) ResponseInterceptor {
	return func(ctx context.Context, req *RequestEvent, resp *ResponseEvent) error {
		fields := map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status":      resp.StatusCode,
			"duration_ms": resp.Duration.Milliseconds(),
		}
		if resp.RequestID != "" {
			fields["request_id"] = resp.RequestID
		}

		if resp.Err != nil {
			fields["error"] = resp.Err.Error()
			logger.Error("API Response", fields)
		} else {
			logger.Debug("API Response", fields)
		}

		return nil
	}
}

// HeaderInterceptor stamps static headers onto every request.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	return func(ctx context.Context, req *RequestEvent) error {
		for key, value := range headers {
			req.Headers.Set(key, value)
		}

		return nil
	}
}

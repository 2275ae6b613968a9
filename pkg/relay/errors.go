package relay

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrInvalidLogLevel     = errors.New("invalid log level")
	ErrMissingCredentials  = errors.New("no API token provided")
	ErrMalformedCredential = errors.New("API token contains whitespace")
	ErrInvalidCABundle     = errors.New("unable to load CA bundle")
	ErrNoMoreItems         = errors.New("no more items")
	ErrSchemaNotRegistered = errors.New("no schema registered for object type")
	ErrResourceWithoutID   = errors.New("resource has no id")
)

// errorPayload is the wire shape of the API's "error" envelope.
type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Param   string `json:"param"`
	Code    string `json:"code"`
}

// ErrorEnvelope carries the HTTP context shared by every classified API
// error: status, raw body, headers, and the server-assigned request id used
// for correlation. It is always populated before an error surfaces.
type ErrorEnvelope struct {
	Message    string
	Type       string
	StatusCode int
	Body       []byte
	Headers    http.Header
	RequestID  string
}

// Error implements the error interface.
func (e *ErrorEnvelope) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unknown error"
	}

	if e.RequestID != "" {
		return fmt.Sprintf("%s (status %d, request %s)", msg, e.StatusCode, e.RequestID)
	}

	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}

	return msg
}

// APIError covers server-side anomalies and anything the classifier cannot
// name more precisely, including malformed bodies on otherwise-successful
// responses.
type APIError struct {
	ErrorEnvelope
}

// APIConnectionError reports a transport-level failure: the request never
// produced a structured HTTP response.
type APIConnectionError struct {
	ErrorEnvelope

	Cause error
}

func (e *APIConnectionError) Unwrap() error {
	return e.Cause
}

// AuthenticationError reports missing or rejected credentials (HTTP 401, or
// a fail-fast check before any network call).
type AuthenticationError struct {
	ErrorEnvelope
}

// PermissionError reports an HTTP 403.
type PermissionError struct {
	ErrorEnvelope
}

// RateLimitError reports an HTTP 429.
type RateLimitError struct {
	ErrorEnvelope
}

// IdempotencyError reports a reused idempotency key with different request
// parameters.
type IdempotencyError struct {
	ErrorEnvelope
}

// InvalidRequestError reports a request the server rejected as invalid,
// carrying the offending parameter when the API names one.
type InvalidRequestError struct {
	ErrorEnvelope

	Param string
}

// ParticipantError reports an actionable domain failure (HTTP 402), carrying
// the parameter and machine-readable code copied from the payload.
type ParticipantError struct {
	ErrorEnvelope

	Param string
	Code  string
}

// SignatureVerificationError reports that an inbound webhook payload failed
// signature verification. It is not produced by the request path.
type SignatureVerificationError struct {
	Message   string
	SigHeader string
	Payload   []byte
}

func (e *SignatureVerificationError) Error() string {
	return e.Message
}

const indeterminateErrorMessage = "Indeterminate error"

// ClassifyResponse maps an HTTP failure response to a typed error. It is a
// pure function of the status, body, and headers; the request id is extracted
// from the Request-Id header.
func ClassifyResponse(statusCode int, body []byte, headers http.Header) error {
	envelope := ErrorEnvelope{
		StatusCode: statusCode,
		Body:       body,
		Headers:    headers,
	}
	if headers != nil {
		envelope.RequestID = headers.Get("Request-Id")
	}

	payload, ok := parseErrorPayload(body)
	if !ok {
		envelope.Message = indeterminateErrorMessage

		return &APIError{ErrorEnvelope: envelope}
	}

	envelope.Message = payload.Message
	envelope.Type = payload.Type

	switch statusCode {
	case http.StatusBadRequest, http.StatusNotFound:
		if payload.Type == "idempotency_error" {
			return &IdempotencyError{ErrorEnvelope: envelope}
		}

		return &InvalidRequestError{ErrorEnvelope: envelope, Param: payload.Param}
	case http.StatusUnauthorized:
		return &AuthenticationError{ErrorEnvelope: envelope}
	case http.StatusPaymentRequired:
		return &ParticipantError{ErrorEnvelope: envelope, Param: payload.Param, Code: payload.Code}
	case http.StatusForbidden:
		return &PermissionError{ErrorEnvelope: envelope}
	case http.StatusTooManyRequests:
		return &RateLimitError{ErrorEnvelope: envelope}
	default:
		return &APIError{ErrorEnvelope: envelope}
	}
}

// parseErrorPayload extracts the "error" field from a failure body. The
// second return is false when the field is missing or unparseable, which the
// classifier reports as an indeterminate APIError.
func parseErrorPayload(body []byte) (*errorPayload, bool) {
	var wrapper struct {
		Error *errorPayload `json:"error"`
	}

	if err := json.Unmarshal(body, &wrapper); err != nil || wrapper.Error == nil {
		return nil, false
	}

	return wrapper.Error, true
}

// IsNotFound checks whether the error is an invalid-request error with a 404
// status.
func IsNotFound(err error) bool {
	invalidErr := &InvalidRequestError{}
	if errors.As(err, &invalidErr) {
		return invalidErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsAuthentication checks whether the error is an authentication failure.
func IsAuthentication(err error) bool {
	authErr := &AuthenticationError{}

	return errors.As(err, &authErr)
}

// IsRateLimit checks whether the error is a rate-limit rejection.
func IsRateLimit(err error) bool {
	rateErr := &RateLimitError{}

	return errors.As(err, &rateErr)
}

// IsConnection checks whether the error is a transport-level failure.
func IsConnection(err error) bool {
	connErr := &APIConnectionError{}

	return errors.As(err, &connErr)
}

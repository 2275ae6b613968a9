package relay_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaypoint-io/relay-go/pkg/relay"
)

func errBody(errType, message, param, code string) []byte {
	body := `{"error":{"type":"` + errType + `","message":"` + message + `"`
	if param != "" {
		body += `,"param":"` + param + `"`
	}

	if code != "" {
		body += `,"code":"` + code + `"`
	}

	return []byte(body + `}}`)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClassifyResponse(t *testing.T) {
	t.Parallel()
	t.Run("400 maps to invalid request with param", func(t *testing.T) {
		t.Parallel()

		err := relay.ClassifyResponse(400, errBody("invalid_request_error", "Missing name", "name", ""), nil)

		invalidErr := &relay.InvalidRequestError{}
		require.ErrorAs(t, err, &invalidErr)
		assert.Equal(t, "name", invalidErr.Param)
		assert.Equal(t, "Missing name", invalidErr.Message)
		assert.Equal(t, 400, invalidErr.StatusCode)
	})

	t.Run("400 idempotency type maps to idempotency error", func(t *testing.T) {
		t.Parallel()

		err := relay.ClassifyResponse(400, errBody("idempotency_error", "Key reused with different params", "", ""), nil)

		idemErr := &relay.IdempotencyError{}
		require.ErrorAs(t, err, &idemErr)

		invalidErr := &relay.InvalidRequestError{}
		assert.False(t, errors.As(err, &invalidErr))
	})

	t.Run("404 maps to invalid request", func(t *testing.T) {
		t.Parallel()

		err := relay.ClassifyResponse(404, errBody("invalid_request_error", "No such customer", "id", ""), nil)

		invalidErr := &relay.InvalidRequestError{}
		require.ErrorAs(t, err, &invalidErr)
		assert.True(t, relay.IsNotFound(err))
	})

	t.Run("401 maps to authentication error", func(t *testing.T) {
		t.Parallel()

		err := relay.ClassifyResponse(401, errBody("authentication_error", "Invalid token", "", ""), nil)
		assert.True(t, relay.IsAuthentication(err))
	})

	t.Run("402 maps to participant error with param and code", func(t *testing.T) {
		t.Parallel()

		err := relay.ClassifyResponse(402, errBody("participant_error", "Account frozen", "source", "account_frozen"), nil)

		participantErr := &relay.ParticipantError{}
		require.ErrorAs(t, err, &participantErr)
		assert.Equal(t, "source", participantErr.Param)
		assert.Equal(t, "account_frozen", participantErr.Code)
	})

	t.Run("403 maps to permission error", func(t *testing.T) {
		t.Parallel()

		err := relay.ClassifyResponse(403, errBody("permission_error", "Key lacks scope", "", ""), nil)

		permErr := &relay.PermissionError{}
		require.ErrorAs(t, err, &permErr)
	})

	t.Run("429 maps to rate limit error", func(t *testing.T) {
		t.Parallel()

		err := relay.ClassifyResponse(429, errBody("rate_limit_error", "Too many requests", "", ""), nil)
		assert.True(t, relay.IsRateLimit(err))
	})

	t.Run("500 maps to api error", func(t *testing.T) {
		t.Parallel()

		err := relay.ClassifyResponse(500, errBody("api_error", "Server exploded", "", ""), nil)

		apiErr := &relay.APIError{}
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Server exploded", apiErr.Message)
	})

	t.Run("unparseable body is indeterminate", func(t *testing.T) {
		t.Parallel()

		for _, body := range []string{"", "<html></html>", `{"no_error_field":true}`} {
			err := relay.ClassifyResponse(500, []byte(body), nil)

			apiErr := &relay.APIError{}
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, "Indeterminate error", apiErr.Message)
		}
	})

	t.Run("request id is extracted from headers", func(t *testing.T) {
		t.Parallel()

		headers := http.Header{}
		headers.Set("Request-Id", "req_abc")

		err := relay.ClassifyResponse(429, errBody("rate_limit_error", "Slow down", "", ""), headers)

		rateErr := &relay.RateLimitError{}
		require.ErrorAs(t, err, &rateErr)
		assert.Equal(t, "req_abc", rateErr.RequestID)
		assert.Contains(t, rateErr.Error(), "req_abc")
	})
}

func TestErrorEnvelopeError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		envelope relay.ErrorEnvelope
		want     string
	}{
		{
			name:     "message with status and request id",
			envelope: relay.ErrorEnvelope{Message: "Nope", StatusCode: 400, RequestID: "req_1"},
			want:     "Nope (status 400, request req_1)",
		},
		{
			name:     "message with status only",
			envelope: relay.ErrorEnvelope{Message: "Nope", StatusCode: 400},
			want:     "Nope (status 400)",
		},
		{
			name:     "bare message",
			envelope: relay.ErrorEnvelope{Message: "Nope"},
			want:     "Nope",
		},
		{
			name:     "empty message",
			envelope: relay.ErrorEnvelope{},
			want:     "unknown error",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, test.envelope.Error())
		})
	}
}

func TestIsConnection(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp: connection refused")
	err := &relay.APIConnectionError{
		ErrorEnvelope: relay.ErrorEnvelope{Message: "Could not connect"},
		Cause:         cause,
	}

	assert.True(t, relay.IsConnection(err))
	require.ErrorIs(t, err, cause)
	assert.False(t, relay.IsConnection(errors.New("plain")))
}

package relay_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaypoint-io/relay-go/pkg/relay"
)

var errInterceptorRejected = errors.New("rejected")

func TestInterceptorChain(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("request interceptors run in order", func(t *testing.T) {
		t.Parallel()

		var order []string

		chain := relay.NewInterceptorChain()
		chain.AddRequestInterceptor(func(ctx context.Context, req *relay.RequestEvent) error {
			order = append(order, "first")

			return nil
		})
		chain.AddRequestInterceptor(func(ctx context.Context, req *relay.RequestEvent) error {
			order = append(order, "second")

			return nil
		})

		err := chain.ExecuteRequestInterceptors(ctx, &relay.RequestEvent{Method: "GET", Path: "/v1/customers"})
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, order)
	})

	t.Run("failing interceptor aborts the chain", func(t *testing.T) {
		t.Parallel()

		ran := false

		chain := relay.NewInterceptorChain()
		chain.AddRequestInterceptor(func(ctx context.Context, req *relay.RequestEvent) error {
			return errInterceptorRejected
		})
		chain.AddRequestInterceptor(func(ctx context.Context, req *relay.RequestEvent) error {
			ran = true

			return nil
		})

		err := chain.ExecuteRequestInterceptors(ctx, &relay.RequestEvent{})
		require.ErrorIs(t, err, errInterceptorRejected)
		assert.False(t, ran)
	})

	t.Run("nil chain is a no-op", func(t *testing.T) {
		t.Parallel()

		var chain *relay.InterceptorChain

		require.NoError(t, chain.ExecuteRequestInterceptors(ctx, &relay.RequestEvent{}))
		require.NoError(t, chain.ExecuteResponseInterceptors(ctx, &relay.RequestEvent{}, &relay.ResponseEvent{}))
	})

	t.Run("header interceptor stamps headers", func(t *testing.T) {
		t.Parallel()

		event := &relay.RequestEvent{Headers: http.Header{}}
		interceptor := relay.HeaderInterceptor(map[string]string{"X-Team": "payments"})

		require.NoError(t, interceptor(ctx, event))
		assert.Equal(t, "payments", event.Headers.Get("X-Team"))
	})

	t.Run("response interceptors observe errors", func(t *testing.T) {
		t.Parallel()

		var observed error

		chain := relay.NewInterceptorChain()
		chain.AddResponseInterceptor(func(ctx context.Context, req *relay.RequestEvent, resp *relay.ResponseEvent) error {
			observed = resp.Err

			return nil
		})

		classified := &relay.RateLimitError{}
		err := chain.ExecuteResponseInterceptors(ctx, &relay.RequestEvent{}, &relay.ResponseEvent{
			StatusCode: 429,
			Err:        classified,
		})
		require.NoError(t, err)
		assert.Same(t, classified, observed.(*relay.RateLimitError))
	})
}

package relayclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaypoint-io/relay-go/pkg/relay"
	"github.com/relaypoint-io/relay-go/pkg/relayclient"
)

func TestNew(t *testing.T) {
	t.Parallel()
	t.Run("nil config fails", func(t *testing.T) {
		t.Parallel()

		_, err := relayclient.New(nil)
		require.ErrorIs(t, err, relay.ErrConfigRequired)
	})

	t.Run("defaults fill zero values", func(t *testing.T) {
		t.Parallel()

		config := &relay.Config{APIToken: "sk_test", LogLevel: relay.LogLevelSilent}
		_, err := relayclient.New(config)
		require.NoError(t, err)

		assert.Equal(t, relay.DefaultAPIBase, config.APIBase)
		assert.Equal(t, relay.DefaultOpenTimeout, config.OpenTimeout)
		assert.Equal(t, relay.DefaultInitialRetryDelay, config.InitialRetryDelay)
	})

	t.Run("base url is normalized", func(t *testing.T) {
		t.Parallel()

		config := &relay.Config{
			APIBase:  "api.example.com/",
			APIToken: "sk_test",
			LogLevel: relay.LogLevelSilent,
		}
		_, err := relayclient.New(config)
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com", config.APIBase)
	})
}

func TestNewWithToken(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "Bearer sk_test", request.Header.Get("Authorization"))
		assert.Equal(t, "acct_1", request.Header.Get("X-API-ID"))

		writer.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(writer).Encode(map[string]string{"status": "ok"})
	}))
	defer server.Close()

	created, err := relayclient.NewWithToken("acct_1", "sk_test")
	require.NoError(t, err)
	_ = created

	config := relay.DefaultConfig()
	config.APIBase = server.URL
	config.APIID = "acct_1"
	config.APIToken = "sk_test"
	config.LogLevel = relay.LogLevelSilent

	pinned, err := relayclient.New(config)
	require.NoError(t, err)
	require.NoError(t, pinned.Ping(context.Background()))
}

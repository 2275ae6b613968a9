package relay_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaypoint-io/relay-go/pkg/relay"
)

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		want    relay.LogLevel
		wantErr bool
	}{
		{"silent", relay.LogLevelSilent, false},
		{"error", relay.LogLevelError, false},
		{"info", relay.LogLevelInfo, false},
		{"debug", relay.LogLevelDebug, false},
		{"  DEBUG  ", relay.LogLevelDebug, false},
		{"verbose", "", true},
		{"", "", true},
	}

	for _, test := range tests {
		test := test
		t.Run(test.input, func(t *testing.T) {
			t.Parallel()

			level, err := relay.ParseLogLevel(test.input)
			if test.wantErr {
				require.ErrorIs(t, err, relay.ErrInvalidLogLevel)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.want, level)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()
	t.Run("defaults are valid", func(t *testing.T) {
		t.Parallel()

		config := relay.DefaultConfig()
		config.APIToken = "sk_test"
		require.NoError(t, config.Validate())
	})

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()

		var config *relay.Config

		require.ErrorIs(t, config.Validate(), relay.ErrConfigRequired)
	})

	t.Run("bad log level", func(t *testing.T) {
		t.Parallel()

		config := relay.DefaultConfig()
		config.LogLevel = "verbose"
		require.ErrorIs(t, config.Validate(), relay.ErrInvalidLogLevel)
	})

	t.Run("negative retries", func(t *testing.T) {
		t.Parallel()

		config := relay.DefaultConfig()
		config.MaxNetworkRetries = -1
		require.Error(t, config.Validate())
	})

	t.Run("negative delays", func(t *testing.T) {
		t.Parallel()

		config := relay.DefaultConfig()
		config.InitialRetryDelay = -time.Second
		require.Error(t, config.Validate())
	})

	t.Run("missing ca bundle", func(t *testing.T) {
		t.Parallel()

		config := relay.DefaultConfig()
		config.CABundlePath = "/nonexistent/bundle.pem"
		require.ErrorIs(t, config.Validate(), relay.ErrInvalidCABundle)
	})
}

func TestAppInfoString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info *relay.AppInfo
		want string
	}{
		{"nil", nil, ""},
		{"empty name", &relay.AppInfo{Version: "1.0"}, ""},
		{"name only", &relay.AppInfo{Name: "MyApp"}, "MyApp"},
		{"name and version", &relay.AppInfo{Name: "MyApp", Version: "1.0"}, "MyApp/1.0"},
		{
			"full",
			&relay.AppInfo{Name: "MyApp", Version: "1.0", URL: "https://example.com"},
			"MyApp/1.0 (https://example.com)",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, test.info.String())
		})
	}
}

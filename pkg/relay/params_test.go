package relay_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaypoint-io/relay-go/pkg/relay"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestEncodeParams(t *testing.T) {
	t.Parallel()
	t.Run("scalar values", func(t *testing.T) {
		t.Parallel()

		created := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

		values, err := relay.EncodeParams(relay.Params{
			"name":     "Alice",
			"active":   true,
			"limit":    25,
			"amount":   int64(1200),
			"rate":     0.035,
			"created":  created,
			"optional": nil,
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, "Alice", values.Get("name"))
		assert.Equal(t, "true", values.Get("active"))
		assert.Equal(t, "25", values.Get("limit"))
		assert.Equal(t, "1200", values.Get("amount"))
		assert.Equal(t, "0.035", values.Get("rate"))
		assert.Equal(t, "1785585600", values.Get("created"))
		assert.Equal(t, "", values.Get("optional"))
	})

	t.Run("slices use empty brackets", func(t *testing.T) {
		t.Parallel()

		values, err := relay.EncodeParams(relay.Params{
			"types":   []string{"created", "updated"},
			"amounts": []interface{}{100, 200},
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"created", "updated"}, values["types[]"])
		assert.Equal(t, []string{"100", "200"}, values["amounts[]"])
	})

	t.Run("nested maps use bracketed subkeys", func(t *testing.T) {
		t.Parallel()

		values, err := relay.EncodeParams(relay.Params{
			"metadata": map[string]interface{}{
				"color": "blue",
				"sizes": map[string]interface{}{"min": 1},
			},
		}, nil)
		require.NoError(t, err)

		assert.Equal(t, "blue", values.Get("metadata[color]"))
		assert.Equal(t, "1", values.Get("metadata[sizes][min]"))
	})

	t.Run("saved resource collapses to its id", func(t *testing.T) {
		t.Parallel()

		participant, err := relay.ResourceFromJSON(
			[]byte(`{"object":"participant","id":"prt_1","name":"Bob"}`), "", "")
		require.NoError(t, err)

		values, err := relay.EncodeParams(relay.Params{"default_participant": participant}, nil)
		require.NoError(t, err)

		assert.Equal(t, "prt_1", values.Get("default_participant"))
		assert.Empty(t, values.Get("default_participant[name]"))
	})

	t.Run("unsaved resource serializes inline", func(t *testing.T) {
		t.Parallel()

		profile := relay.NewResource("billing_profile")
		profile.Set("currency", "usd")

		values, err := relay.EncodeParams(relay.Params{"profile": profile}, nil)
		require.NoError(t, err)

		assert.Equal(t, "usd", values.Get("profile[currency]"))
	})

	t.Run("save with parent inlines changed fields only", func(t *testing.T) {
		t.Parallel()

		profile, err := relay.ResourceFromJSON(
			[]byte(`{"object":"billing_profile","id":"bp_1","currency":"usd","country":"US"}`), "", "")
		require.NoError(t, err)
		profile.Set("currency", "eur")

		schema, err := relay.SchemaFor("customer")
		require.NoError(t, err)

		values, err := relay.EncodeParams(relay.Params{"billing_profile": profile}, schema)
		require.NoError(t, err)

		assert.Equal(t, "eur", values.Get("billing_profile[currency]"))
		assert.Empty(t, values.Get("billing_profile[country]"), "unchanged fields stay home")
		assert.Empty(t, values.Get("billing_profile"), "save-with-parent never collapses to id")
	})

	t.Run("save with parent sends a pristine resource in full", func(t *testing.T) {
		t.Parallel()

		profile, err := relay.ResourceFromJSON(
			[]byte(`{"object":"billing_profile","id":"bp_1","currency":"usd","country":"US"}`), "", "")
		require.NoError(t, err)

		schema, err := relay.SchemaFor("customer")
		require.NoError(t, err)

		values, err := relay.EncodeParams(relay.Params{"billing_profile": profile}, schema)
		require.NoError(t, err)

		assert.Equal(t, "usd", values.Get("billing_profile[currency]"))
		assert.Equal(t, "US", values.Get("billing_profile[country]"))
		assert.Empty(t, values.Get("billing_profile"), "save-with-parent never collapses to id")
	})

	t.Run("file upload rejects form encoding", func(t *testing.T) {
		t.Parallel()

		_, err := relay.EncodeParams(relay.Params{
			"file": &relay.FileUpload{Filename: "a.pdf", Reader: strings.NewReader("x")},
		}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "multipart")
	})
}

func TestFileFields(t *testing.T) {
	t.Parallel()

	upload := &relay.FileUpload{Filename: "scan.pdf", Reader: strings.NewReader("x")}
	files, rest := relay.FileFields(relay.Params{
		"purpose": "identity_document",
		"file":    upload,
	})

	require.Len(t, files, 1)
	assert.Same(t, upload, files["file"])
	assert.Equal(t, relay.Params{"purpose": "identity_document"}, rest)
}

package commands

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaypoint-io/relay-go/pkg/relay"
)

func TestParseFieldArgs(t *testing.T) {
	t.Parallel()
	t.Run("scalar fields", func(t *testing.T) {
		t.Parallel()

		params, err := ParseFieldArgs([]string{"name=Alice", "amount=1200", "active=true"})
		require.NoError(t, err)

		assert.Equal(t, "Alice", params["name"])
		assert.Equal(t, int64(1200), params["amount"])
		assert.Equal(t, true, params["active"])
	})

	t.Run("dotted keys nest", func(t *testing.T) {
		t.Parallel()

		params, err := ParseFieldArgs([]string{"metadata.color=blue", "metadata.weight=10"})
		require.NoError(t, err)

		metadata, ok := params["metadata"].(relay.Params)
		require.True(t, ok)
		assert.Equal(t, "blue", metadata["color"])
		assert.Equal(t, int64(10), metadata["weight"])
	})

	t.Run("value may contain equals", func(t *testing.T) {
		t.Parallel()

		params, err := ParseFieldArgs([]string{"note=a=b"})
		require.NoError(t, err)
		assert.Equal(t, "a=b", params["note"])
	})

	t.Run("malformed field fails", func(t *testing.T) {
		t.Parallel()

		for _, field := range []string{"noequals", "=value"} {
			_, err := ParseFieldArgs([]string{field})
			require.ErrorIs(t, err, ErrInvalidField, "field %q", field)
		}
	})
}

func TestDisplayValue(t *testing.T) {
	t.Parallel()

	saved, err := relay.ResourceFromJSON([]byte(`{"object":"participant","id":"prt_1"}`), "", "")
	require.NoError(t, err)

	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"float drops exponent", float64(1200), "1200"},
		{"bool", true, "true"},
		{"resource shows id", saved, "prt_1"},
		{"unsaved resource shows object", relay.NewResource("billing_profile"), "billing_profile"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.want, displayValue(test.value))
		})
	}
}

// captureStdout runs fn with os.Stdout redirected to a pipe and returns what
// it wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	reader, writer, err := os.Pipe()
	require.NoError(t, err)

	saved := os.Stdout
	os.Stdout = writer

	defer func() { os.Stdout = saved }()

	fn()
	require.NoError(t, writer.Close())

	var buf bytes.Buffer
	_, err = io.Copy(&buf, reader)
	require.NoError(t, err)

	return buf.String()
}

func TestRenderCollectionTable(t *testing.T) {
	collection, err := relay.CollectionFromJSON([]byte(`{
		"object": "list",
		"url": "/v1/customers",
		"has_more": false,
		"data": [
			{"object": "customer", "id": "cus_1", "name": "Alice", "email": "alice@example.com"},
			{"object": "customer", "id": "cus_2", "name": "Bob", "email": "bob@example.com"}
		]
	}`), "", "")
	require.NoError(t, err)

	output := captureStdout(t, func() {
		require.NoError(t, renderCollectionTable(collection))
	})

	assert.Contains(t, output, "cus_1")
	assert.Contains(t, output, "Alice")
	assert.Contains(t, output, "bob@example.com")
}

func TestRenderResourceTable(t *testing.T) {
	resource, err := relay.ResourceFromJSON(
		[]byte(`{"object":"customer","id":"cus_1","name":"Alice"}`), "", "")
	require.NoError(t, err)

	output := captureStdout(t, func() {
		require.NoError(t, renderResourceTable(resource))
	})

	assert.Contains(t, output, "customer")
	assert.Contains(t, output, "Alice")
}

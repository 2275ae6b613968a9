package relay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relaypoint-io/relay-go/pkg/relay"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestValueFromJSON(t *testing.T) {
	t.Parallel()
	t.Run("object payload becomes a resource", func(t *testing.T) {
		t.Parallel()

		value, err := relay.ValueFromJSON(
			[]byte(`{"object":"customer","id":"cus_1","name":"Alice"}`), "acct_1", "2026-06-01")
		require.NoError(t, err)

		resource, ok := value.(*relay.Resource)
		require.True(t, ok)
		assert.Equal(t, "customer", resource.Object())
		assert.Equal(t, "cus_1", resource.ID())
		assert.Equal(t, "Alice", resource.GetString("name"))
		assert.Equal(t, "acct_1", resource.APIID())
		assert.Equal(t, "2026-06-01", resource.APIVersion())
		assert.False(t, resource.HasChanges())
	})

	t.Run("nested objects convert recursively", func(t *testing.T) {
		t.Parallel()

		resource, err := relay.ResourceFromJSON([]byte(`{
			"object": "customer",
			"id": "cus_1",
			"billing_profile": {"object": "billing_profile", "id": "bp_1", "currency": "usd"}
		}`), "", "")
		require.NoError(t, err)

		profile := resource.GetResource("billing_profile")
		require.NotNil(t, profile)
		assert.Equal(t, "bp_1", profile.ID())
		assert.Equal(t, "usd", profile.GetString("currency"))
	})

	t.Run("list payload becomes a collection", func(t *testing.T) {
		t.Parallel()

		collection, err := relay.CollectionFromJSON([]byte(`{
			"object": "list",
			"url": "/v1/customers",
			"has_more": true,
			"data": [
				{"object": "customer", "id": "cus_1"},
				{"object": "customer", "id": "cus_2"}
			]
		}`), "", "")
		require.NoError(t, err)

		assert.Equal(t, "/v1/customers", collection.URL)
		assert.True(t, collection.HasMore)
		require.Len(t, collection.Data, 2)
		assert.Equal(t, "cus_2", collection.Data[1].ID())
	})

	t.Run("resource helper rejects lists", func(t *testing.T) {
		t.Parallel()

		_, err := relay.ResourceFromJSON([]byte(`{"object":"list","data":[]}`), "", "")
		require.Error(t, err)
	})

	t.Run("invalid json fails", func(t *testing.T) {
		t.Parallel()

		_, err := relay.ValueFromJSON([]byte(`{broken`), "", "")
		require.Error(t, err)
	})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestResourceChangeTracking(t *testing.T) {
	t.Parallel()
	t.Run("set marks fields changed", func(t *testing.T) {
		t.Parallel()

		resource, err := relay.ResourceFromJSON(
			[]byte(`{"object":"customer","id":"cus_1","name":"Alice","email":"a@example.com"}`), "", "")
		require.NoError(t, err)
		require.False(t, resource.HasChanges())

		resource.Set("name", "Alicia")
		assert.True(t, resource.HasChanges())
		assert.Equal(t, relay.Params{"name": "Alicia"}, resource.ChangedParams())
	})

	t.Run("mark saved clears tracking", func(t *testing.T) {
		t.Parallel()

		resource := relay.NewResource("customer")
		resource.Set("name", "Alice")
		require.True(t, resource.HasChanges())

		resource.MarkSaved()
		assert.False(t, resource.HasChanges())
		assert.Empty(t, resource.ChangedParams())
		assert.Equal(t, "Alice", resource.GetString("name"))
	})

	t.Run("nested save-with-parent edits ride along", func(t *testing.T) {
		t.Parallel()

		resource, err := relay.ResourceFromJSON([]byte(`{
			"object": "customer",
			"id": "cus_1",
			"billing_profile": {"object": "billing_profile", "id": "bp_1", "currency": "usd"}
		}`), "", "")
		require.NoError(t, err)

		resource.GetResource("billing_profile").Set("currency", "eur")
		assert.True(t, resource.HasChanges())

		params := resource.ChangedParams()
		require.Contains(t, params, "billing_profile")
		assert.NotContains(t, params, "id")
	})

	t.Run("replace from resets state", func(t *testing.T) {
		t.Parallel()

		resource, err := relay.ResourceFromJSON(
			[]byte(`{"object":"customer","id":"cus_1","name":"Alice"}`), "", "")
		require.NoError(t, err)
		resource.Set("name", "Alicia")

		fresh, err := relay.ResourceFromJSON(
			[]byte(`{"object":"customer","id":"cus_1","name":"Alicia","email":"a@example.com"}`), "", "")
		require.NoError(t, err)

		resource.ReplaceFrom(fresh)
		assert.False(t, resource.HasChanges())
		assert.Equal(t, "a@example.com", resource.GetString("email"))
	})
}

func TestResourceURL(t *testing.T) {
	t.Parallel()

	resource, err := relay.ResourceFromJSON([]byte(`{"object":"customer","id":"cus_1"}`), "", "")
	require.NoError(t, err)

	url, err := resource.URL()
	require.NoError(t, err)
	assert.Equal(t, "/v1/customers/cus_1", url)

	unsaved := relay.NewResource("customer")
	_, err = unsaved.URL()
	require.ErrorIs(t, err, relay.ErrResourceWithoutID)

	unknown := relay.NewResource("mystery_object")
	_, err = unknown.URL()
	require.ErrorIs(t, err, relay.ErrSchemaNotRegistered)
}

func TestCollectionNextPageParams(t *testing.T) {
	t.Parallel()

	collection, err := relay.CollectionFromJSON([]byte(`{
		"object": "list",
		"has_more": true,
		"data": [{"object": "customer", "id": "cus_1"}, {"object": "customer", "id": "cus_2"}]
	}`), "", "")
	require.NoError(t, err)

	params, err := collection.NextPageParams()
	require.NoError(t, err)
	assert.Equal(t, relay.Params{"starting_after": "cus_2"}, params)

	exhausted, err := relay.CollectionFromJSON(
		[]byte(`{"object":"list","has_more":false,"data":[{"object":"customer","id":"cus_1"}]}`), "", "")
	require.NoError(t, err)

	_, err = exhausted.NextPageParams()
	require.ErrorIs(t, err, relay.ErrNoMoreItems)
}

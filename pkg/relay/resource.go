package relay

import (
	"encoding/json"
	"fmt"
)

// Resource is a generic remote entity: a key→value mapping tagged with its
// object type and the API identity it was fetched under. It holds enough
// context to address itself for refresh, save, and delete, and it tracks
// locally-mutated keys so a save transmits only changed fields.
type Resource struct {
	object     string
	apiID      string
	apiVersion string
	values     map[string]interface{}
	changed    map[string]struct{}
}

// NewResource creates an empty resource of the given object type. Values set
// afterwards count as changed.
func NewResource(object string) *Resource {
	return &Resource{
		object:  object,
		values:  make(map[string]interface{}),
		changed: make(map[string]struct{}),
	}
}

// Object returns the resource's object type name.
func (r *Resource) Object() string {
	return r.object
}

// APIID returns the API account the resource was fetched under.
func (r *Resource) APIID() string {
	return r.apiID
}

// APIVersion returns the API version the resource was fetched under.
func (r *Resource) APIVersion() string {
	return r.apiVersion
}

// ID returns the resource's identity value, using the schema's id field when
// one is registered.
func (r *Resource) ID() string {
	field := "id"
	if schema, err := SchemaFor(r.object); err == nil {
		field = schema.idField()
	}

	id, _ := r.values[field].(string)

	return id
}

// Get returns a field value.
func (r *Resource) Get(key string) (interface{}, bool) {
	v, ok := r.values[key]

	return v, ok
}

// GetString returns a field as a string, or "" when absent or non-string.
func (r *Resource) GetString(key string) string {
	s, _ := r.values[key].(string)

	return s
}

// GetResource returns an embedded resource field, or nil.
func (r *Resource) GetResource(key string) *Resource {
	nested, _ := r.values[key].(*Resource)

	return nested
}

// Set assigns a field locally and marks it changed for the next save.
func (r *Resource) Set(key string, value interface{}) {
	r.values[key] = value
	r.changed[key] = struct{}{}
}

// Keys returns the resource's field names in schema order first, then any
// undeclared keys.
func (r *Resource) Keys() []string {
	seen := make(map[string]bool, len(r.values))
	keys := make([]string, 0, len(r.values))

	if schema, err := SchemaFor(r.object); err == nil {
		for _, field := range schema.Fields {
			if _, ok := r.values[field.Name]; ok {
				keys = append(keys, field.Name)
				seen[field.Name] = true
			}
		}
	}

	for key := range r.values {
		if !seen[key] {
			keys = append(keys, key)
		}
	}

	return keys
}

// Values returns a shallow copy of all field values.
func (r *Resource) Values() map[string]interface{} {
	out := make(map[string]interface{}, len(r.values))
	for key, value := range r.values {
		out[key] = value
	}

	return out
}

// HasChanges reports whether any field was mutated since the resource was
// fetched or last saved.
func (r *Resource) HasChanges() bool {
	if len(r.changed) > 0 {
		return true
	}

	for _, value := range r.values {
		if nested, ok := value.(*Resource); ok && nested.HasChanges() {
			return true
		}
	}

	return false
}

// ChangedParams collects only the locally-changed fields, the payload of a
// save. Nested resources declared save-with-parent contribute their own
// changed fields inline under the parent key.
func (r *Resource) ChangedParams() Params {
	schema, _ := SchemaFor(r.object)
	params := make(Params, len(r.changed))

	for key := range r.changed {
		params[key] = r.values[key]
	}

	// Unchanged keys holding a mutated save-with-parent resource still ride
	// along so the nested edits are not dropped.
	for key, value := range r.values {
		if _, already := params[key]; already {
			continue
		}

		nested, ok := value.(*Resource)
		if !ok || !nested.HasChanges() {
			continue
		}

		if field := schema.Field(key); field != nil && field.SaveWithParent {
			params[key] = nested
		}
	}

	return params
}

// MarkSaved clears change tracking after a successful save.
func (r *Resource) MarkSaved() {
	r.changed = make(map[string]struct{})

	for _, value := range r.values {
		if nested, ok := value.(*Resource); ok {
			nested.MarkSaved()
		}
	}
}

// URL returns the instance path the resource addresses itself with.
func (r *Resource) URL() (string, error) {
	schema, err := SchemaFor(r.object)
	if err != nil {
		return "", err
	}

	id := r.ID()
	if id == "" {
		return "", fmt.Errorf("%w: object %q", ErrResourceWithoutID, r.object)
	}

	return schema.ResourcePath(id), nil
}

// ReplaceFrom swaps in the state of a freshly-fetched copy of the same
// object and resets change tracking. Used after refresh and save.
func (r *Resource) ReplaceFrom(other *Resource) {
	r.object = other.object
	r.apiID = other.apiID
	r.apiVersion = other.apiVersion
	r.values = other.values
	r.changed = make(map[string]struct{})
}

// Collection is a page of resources plus paging state.
type Collection struct {
	Data    []*Resource
	HasMore bool
	URL     string

	apiID      string
	apiVersion string
}

// NextPageParams returns the cursor params for the page after this one, or
// ErrNoMoreItems when the listing is exhausted.
func (c *Collection) NextPageParams() (Params, error) {
	if !c.HasMore || len(c.Data) == 0 {
		return nil, ErrNoMoreItems
	}

	last := c.Data[len(c.Data)-1]

	return Params{"starting_after": last.ID()}, nil
}

// ValueFromJSON deserializes an API payload into a domain value: a Resource
// for objects, a Collection for lists, or the raw primitive otherwise. The
// apiID and apiVersion tag fetched resources with the identity they were
// fetched under.
func ValueFromJSON(data []byte, apiID, apiVersion string) (interface{}, error) {
	var decoded interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}

	return convertValue(decoded, apiID, apiVersion), nil
}

// ResourceFromJSON deserializes a payload that must be a single resource.
func ResourceFromJSON(data []byte, apiID, apiVersion string) (*Resource, error) {
	value, err := ValueFromJSON(data, apiID, apiVersion)
	if err != nil {
		return nil, err
	}

	resource, ok := value.(*Resource)
	if !ok {
		return nil, fmt.Errorf("expected a resource object, got %T", value)
	}

	return resource, nil
}

// CollectionFromJSON deserializes a payload that must be a list.
func CollectionFromJSON(data []byte, apiID, apiVersion string) (*Collection, error) {
	value, err := ValueFromJSON(data, apiID, apiVersion)
	if err != nil {
		return nil, err
	}

	collection, ok := value.(*Collection)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", value)
	}

	return collection, nil
}

// convertValue walks decoded JSON, turning maps carrying an "object" tag into
// Resource or Collection values.
func convertValue(decoded interface{}, apiID, apiVersion string) interface{} {
	switch value := decoded.(type) {
	case map[string]interface{}:
		object, _ := value["object"].(string)
		if object == "list" {
			return convertCollection(value, apiID, apiVersion)
		}

		if object != "" {
			return convertResource(object, value, apiID, apiVersion)
		}

		for key, nested := range value {
			value[key] = convertValue(nested, apiID, apiVersion)
		}

		return value
	case []interface{}:
		for i, nested := range value {
			value[i] = convertValue(nested, apiID, apiVersion)
		}

		return value
	default:
		return decoded
	}
}

func convertResource(object string, raw map[string]interface{}, apiID, apiVersion string) *Resource {
	values := make(map[string]interface{}, len(raw))

	for key, nested := range raw {
		if key == "object" {
			continue
		}

		values[key] = convertValue(nested, apiID, apiVersion)
	}

	return &Resource{
		object:     object,
		apiID:      apiID,
		apiVersion: apiVersion,
		values:     values,
		changed:    make(map[string]struct{}),
	}
}

func convertCollection(raw map[string]interface{}, apiID, apiVersion string) *Collection {
	collection := &Collection{apiID: apiID, apiVersion: apiVersion}

	if url, ok := raw["url"].(string); ok {
		collection.URL = url
	}

	if hasMore, ok := raw["has_more"].(bool); ok {
		collection.HasMore = hasMore
	}

	items, _ := raw["data"].([]interface{})
	for _, item := range items {
		if resource, ok := convertValue(item, apiID, apiVersion).(*Resource); ok {
			collection.Data = append(collection.Data, resource)
		}
	}

	return collection
}

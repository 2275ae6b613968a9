package relay

import (
	"fmt"
	"net/url"
	"strings"
	"sync"
)

// FieldKind tags how the serializer treats a declared field.
type FieldKind int

const (
	// FieldPlain is an ordinary scalar, map, or list value.
	FieldPlain FieldKind = iota

	// FieldNestedResource holds an embedded Resource. On writes it collapses
	// to the embedded resource's id unless the field is marked
	// save-with-parent, in which case its data is serialized inline.
	FieldNestedResource
)

// FieldSpec declares one field of a resource schema.
type FieldSpec struct {
	Name           string
	Kind           FieldKind
	SaveWithParent bool
}

// Schema is the declarative descriptor for a resource type: its object name,
// URL convention, id field, and ordered field declarations. Schemas replace
// any runtime generation; the serializer consumes them generically.
type Schema struct {
	// Object is the type name as it appears in the payload "object" field.
	Object string
	// CollectionName overrides the derived (pluralized) collection segment.
	CollectionName string
	// IDField names the identity field; defaults to "id".
	IDField string
	// Fields is the ordered set of declared fields. Undeclared keys are
	// treated as plain.
	Fields []FieldSpec
}

// CollectionPath returns the collection URL for the schema, e.g.
// "/v1/customers".
func (s *Schema) CollectionPath() string {
	name := s.CollectionName
	if name == "" {
		name = pluralize(s.Object)
	}

	return "/v1/" + url.PathEscape(name)
}

// ResourcePath returns the instance URL for the given id.
func (s *Schema) ResourcePath(resourceID string) string {
	return s.CollectionPath() + "/" + url.PathEscape(resourceID)
}

// idField returns the identity field name, defaulting to "id".
func (s *Schema) idField() string {
	if s.IDField != "" {
		return s.IDField
	}

	return "id"
}

// Field looks up a declared field spec by name.
func (s *Schema) Field(name string) *FieldSpec {
	if s == nil {
		return nil
	}

	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}

	return nil
}

// pluralize derives the collection segment from a snake_cased object name.
func pluralize(object string) string {
	switch {
	case strings.HasSuffix(object, "y"):
		return object[:len(object)-1] + "ies"
	case strings.HasSuffix(object, "s"), strings.HasSuffix(object, "x"),
		strings.HasSuffix(object, "ch"), strings.HasSuffix(object, "sh"):
		return object + "es"
	default:
		return object + "s"
	}
}

// schemaRegistry holds the known schemas, keyed by object name. Registration
// normally happens at init time; reads are request-path hot.
type schemaRegistry struct {
	mu      sync.RWMutex
	schemas map[string]*Schema
}

var registry = &schemaRegistry{schemas: make(map[string]*Schema)}

// RegisterSchema adds or replaces the schema for an object type.
func RegisterSchema(schema *Schema) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	registry.schemas[schema.Object] = schema
}

// SchemaFor returns the registered schema for an object type.
func SchemaFor(object string) (*Schema, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	schema, ok := registry.schemas[object]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSchemaNotRegistered, object)
	}

	return schema, nil
}

// Built-in schemas for the resources the typed clients cover.
func init() {
	RegisterSchema(&Schema{
		Object: "customer",
		Fields: []FieldSpec{
			{Name: "name"},
			{Name: "email"},
			{Name: "metadata"},
			{Name: "billing_profile", Kind: FieldNestedResource, SaveWithParent: true},
			{Name: "default_participant", Kind: FieldNestedResource},
		},
	})
	RegisterSchema(&Schema{
		Object: "participant",
		Fields: []FieldSpec{
			{Name: "name"},
			{Name: "role"},
			{Name: "customer", Kind: FieldNestedResource},
			{Name: "bank_details", Kind: FieldNestedResource, SaveWithParent: true},
			{Name: "metadata"},
		},
	})
	RegisterSchema(&Schema{
		Object: "transfer",
		Fields: []FieldSpec{
			{Name: "amount"},
			{Name: "currency"},
			{Name: "source", Kind: FieldNestedResource},
			{Name: "destination", Kind: FieldNestedResource},
			{Name: "metadata"},
		},
	})
	RegisterSchema(&Schema{
		Object: "webhook_endpoint",
		Fields: []FieldSpec{
			{Name: "url"},
			{Name: "enabled_events"},
			{Name: "metadata"},
		},
	})
	RegisterSchema(&Schema{
		Object: "event",
		Fields: []FieldSpec{
			{Name: "type"},
			{Name: "data"},
		},
	})
	RegisterSchema(&Schema{Object: "billing_profile"})
	RegisterSchema(&Schema{Object: "bank_details", CollectionName: "bank_details"})
}

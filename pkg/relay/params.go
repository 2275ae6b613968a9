package relay

import (
	"fmt"
	"io"
	"net/url"
	"sort"
	"strconv"
	"time"
)

// Params is the free-form parameter map handed to every operation. Values may
// be scalars, nested maps, slices, or embedded Resource objects.
type Params map[string]interface{}

// FileUpload marks a parameter as file content for a multipart request.
type FileUpload struct {
	Filename    string
	ContentType string
	Reader      io.Reader
}

// EncodeParams flattens params into conventional bracketed form pairs:
// nested maps become key[subkey]=, slices become key[]=. Embedded resources
// collapse to their id, except fields the schema marks save-with-parent,
// which serialize inline. The schema may be nil for schemaless calls.
func EncodeParams(params Params, schema *Schema) (url.Values, error) {
	values := url.Values{}

	for _, key := range sortedParamKeys(params) {
		field := schema.Field(key)
		if err := appendFormValue(values, key, params[key], field); err != nil {
			return nil, err
		}
	}

	return values, nil
}

func sortedParamKeys(params Params) []string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// appendFormValue encodes one value under the given (possibly bracketed) key.
func appendFormValue(values url.Values, key string, value interface{}, field *FieldSpec) error {
	switch typed := value.(type) {
	case nil:
		values.Add(key, "")
	case *Resource:
		return appendResourceValue(values, key, typed, field)
	case Params:
		return appendMapValue(values, key, typed)
	case map[string]interface{}:
		return appendMapValue(values, key, typed)
	case []interface{}:
		for _, item := range typed {
			if err := appendFormValue(values, key+"[]", item, nil); err != nil {
				return err
			}
		}
	case []string:
		for _, item := range typed {
			values.Add(key+"[]", item)
		}
	case string:
		values.Add(key, typed)
	case bool:
		values.Add(key, strconv.FormatBool(typed))
	case int:
		values.Add(key, strconv.Itoa(typed))
	case int64:
		values.Add(key, strconv.FormatInt(typed, 10))
	case float64:
		values.Add(key, strconv.FormatFloat(typed, 'f', -1, 64))
	case time.Time:
		values.Add(key, strconv.FormatInt(typed.Unix(), 10))
	case *FileUpload:
		// File content never form-encodes; the transport strips uploads out
		// before encoding a multipart request.
		return fmt.Errorf("file upload field %q requires a multipart request", key)
	default:
		values.Add(key, fmt.Sprintf("%v", typed))
	}

	return nil
}

// appendResourceValue applies the nested-resource rules: save-with-parent
// fields inline the resource's data, everything else references it by id.
func appendResourceValue(values url.Values, key string, resource *Resource, field *FieldSpec) error {
	if field != nil && field.SaveWithParent {
		changed := resource.ChangedParams()
		if len(changed) == 0 && resource.ID() != "" {
			// A pristine fetched resource has no tracked changes; send its
			// full data rather than dropping it from the write.
			return appendMapValue(values, key, Params(resource.Values()))
		}

		return appendMapValue(values, key, changed)
	}

	id := resource.ID()
	if id == "" {
		// Unsaved resource with no id: nothing to reference, send inline.
		return appendMapValue(values, key, Params(resource.Values()))
	}

	values.Add(key, id)

	return nil
}

func appendMapValue(values url.Values, key string, nested map[string]interface{}) error {
	for _, subkey := range sortedParamKeys(nested) {
		if err := appendFormValue(values, key+"["+subkey+"]", nested[subkey], nil); err != nil {
			return err
		}
	}

	return nil
}

// FileFields splits params into file uploads and form fields for a multipart
// request.
func FileFields(params Params) (map[string]*FileUpload, Params) {
	files := make(map[string]*FileUpload)
	rest := make(Params, len(params))

	for key, value := range params {
		if file, ok := value.(*FileUpload); ok {
			files[key] = file

			continue
		}

		rest[key] = value
	}

	return files, rest
}

// Package commands implements the relay CLI command tree.
package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/relaypoint-io/relay-go/pkg/relay"
	"github.com/relaypoint-io/relay-go/pkg/relayclient"
)

// Output formats.
const (
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
	OutputFormatTable = "table"
)

// Common static errors used throughout the commands package.
var (
	ErrNoAPIToken   = errors.New("no API token configured; run 'relay login' or set RELAY_TOKEN")
	ErrInvalidField = errors.New("field must be key=value")
	ErrNotLoggedIn  = errors.New("not logged in")
)

// CreateClient builds a relay client from the effective CLI configuration:
// flags first, then environment, then the config file.
func CreateClient() (relay.Client, error) {
	token := viper.GetString("token")
	if token == "" {
		return nil, ErrNoAPIToken
	}

	config := relay.DefaultConfig()
	config.APIID = viper.GetString("api_id")
	config.APIToken = token
	config.APIVersion = viper.GetString("api_version")
	config.SkipTLSVerify = viper.GetBool("skip_ssl_validation")
	config.MaxNetworkRetries = viper.GetInt("max_retries")

	if api := viper.GetString("api"); api != "" {
		config.APIBase = api
	}

	if viper.GetBool("verbose") {
		config.LogLevel = relay.LogLevelDebug
	}

	client, err := relayclient.New(config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// ParseFieldArgs converts repeated --field key=value arguments into request
// params. Dotted keys nest: metadata.color=blue becomes metadata[color].
func ParseFieldArgs(fields []string) (relay.Params, error) {
	params := relay.Params{}

	for _, field := range fields {
		key, value, found := strings.Cut(field, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidField, field)
		}

		assignField(params, key, coerceValue(value))
	}

	return params, nil
}

func assignField(params relay.Params, key string, value interface{}) {
	parts := strings.Split(key, ".")
	for len(parts) > 1 {
		nested, ok := params[parts[0]].(relay.Params)
		if !ok {
			nested = relay.Params{}
			params[parts[0]] = nested
		}

		params = nested
		parts = parts[1:]
	}

	params[parts[0]] = value
}

// coerceValue turns numeric and boolean literals into typed values so the
// form encoder serializes them naturally.
func coerceValue(value string) interface{} {
	if number, err := strconv.ParseInt(value, 10, 64); err == nil {
		return number
	}

	if boolean, err := strconv.ParseBool(value); err == nil {
		return boolean
	}

	return value
}

// RenderResource prints one resource in the configured output format.
func RenderResource(resource *relay.Resource) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return renderJSON(resourceDocument(resource))
	case OutputFormatYAML:
		return renderYAML(resourceDocument(resource))
	default:
		return renderResourceTable(resource)
	}
}

// RenderCollection prints a page of resources in the configured output
// format, followed by a paging hint when more data exists.
func RenderCollection(collection *relay.Collection) error {
	switch viper.GetString("output") {
	case OutputFormatJSON:
		return renderJSON(collectionDocument(collection))
	case OutputFormatYAML:
		return renderYAML(collectionDocument(collection))
	default:
		return renderCollectionTable(collection)
	}
}

func resourceDocument(resource *relay.Resource) map[string]interface{} {
	doc := map[string]interface{}{"object": resource.Object()}
	for key, value := range resource.Values() {
		doc[key] = documentValue(value)
	}

	return doc
}

func collectionDocument(collection *relay.Collection) map[string]interface{} {
	items := make([]interface{}, 0, len(collection.Data))
	for _, resource := range collection.Data {
		items = append(items, resourceDocument(resource))
	}

	return map[string]interface{}{
		"object":   "list",
		"data":     items,
		"has_more": collection.HasMore,
	}
}

func documentValue(value interface{}) interface{} {
	switch typed := value.(type) {
	case *relay.Resource:
		return resourceDocument(typed)
	case *relay.Collection:
		return collectionDocument(typed)
	case []interface{}:
		out := make([]interface{}, len(typed))
		for i, item := range typed {
			out[i] = documentValue(item)
		}

		return out
	default:
		return value
	}
}

func renderJSON(doc interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}

	return nil
}

func renderYAML(doc interface{}) error {
	encoder := yaml.NewEncoder(os.Stdout)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}

	return encoder.Close()
}

func renderResourceTable(resource *relay.Resource) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Field", "Value")
	_ = table.Append("object", resource.Object())

	for _, key := range resource.Keys() {
		value, _ := resource.Get(key)
		_ = table.Append(key, displayValue(value))
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func renderCollectionTable(collection *relay.Collection) error {
	table := tablewriter.NewWriter(os.Stdout)
	columns := collectionColumns(collection)

	header := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		header = append(header, strings.ReplaceAll(column, "_", " "))
	}

	table.Header(header...)

	for _, resource := range collection.Data {
		row := make([]interface{}, 0, len(columns))
		for _, column := range columns {
			value, _ := resource.Get(column)
			row = append(row, displayValue(value))
		}

		_ = table.Append(row...)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	if collection.HasMore {
		if next, err := collection.NextPageParams(); err == nil {
			fmt.Printf("More results available: --starting-after %v\n", next["starting_after"])
		}
	}

	return nil
}

// collectionColumns picks the list columns: id first, then the declared
// schema fields present on the first item.
func collectionColumns(collection *relay.Collection) []string {
	columns := []string{"id"}

	if len(collection.Data) == 0 {
		return columns
	}

	first := collection.Data[0]
	if schema, err := relay.SchemaFor(first.Object()); err == nil {
		for _, field := range schema.Fields {
			if _, ok := first.Get(field.Name); ok {
				columns = append(columns, field.Name)
			}
		}

		return columns
	}

	for _, key := range first.Keys() {
		if key != "id" {
			columns = append(columns, key)
		}
	}

	return columns
}

func displayValue(value interface{}) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case *relay.Resource:
		if id := typed.ID(); id != "" {
			return id
		}

		return typed.Object()
	case *relay.Collection:
		return fmt.Sprintf("[%d items]", len(typed.Data))
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case string:
		return typed
	default:
		return fmt.Sprintf("%v", typed)
	}
}

package client

import (
	"context"
	"fmt"
	"net/http"

	internalhttp "github.com/relaypoint-io/relay-go/internal/http"
	"github.com/relaypoint-io/relay-go/pkg/relay"
)

// resourceClient is the generic CRUD adapter behind every typed resource
// client. The URL convention and serialization rules come entirely from the
// resource's registered schema, so one implementation serves all resource
// types. The typed interfaces narrow what each resource actually exposes.
type resourceClient struct {
	client *Client
	object string
}

func newResourceClient(c *Client, object string) *resourceClient {
	return &resourceClient{client: c, object: object}
}

func (r *resourceClient) schema() (*relay.Schema, error) {
	return relay.SchemaFor(r.object)
}

// Create issues a POST to the collection URL.
func (r *resourceClient) Create(ctx context.Context, params relay.Params) (*relay.Resource, error) {
	schema, err := r.schema()
	if err != nil {
		return nil, err
	}

	resp, err := r.client.httpClient.Do(ctx, &internalhttp.Request{
		Method: http.MethodPost,
		Path:   schema.CollectionPath(),
		Params: params,
		Schema: schema,
	})
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", r.object, err)
	}

	return r.parseResource(resp)
}

// Get fetches one resource by id.
func (r *resourceClient) Get(ctx context.Context, resourceID string) (*relay.Resource, error) {
	schema, err := r.schema()
	if err != nil {
		return nil, err
	}

	resp, err := r.client.httpClient.Get(ctx, schema.ResourcePath(resourceID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", r.object, err)
	}

	return r.parseResource(resp)
}

// List fetches a page of resources, with params on the query string.
func (r *resourceClient) List(ctx context.Context, params relay.Params) (*relay.Collection, error) {
	schema, err := r.schema()
	if err != nil {
		return nil, err
	}

	resp, err := r.client.httpClient.Do(ctx, &internalhttp.Request{
		Method: http.MethodGet,
		Path:   schema.CollectionPath(),
		Params: params,
		Schema: schema,
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", pluralLabel(r.object), err)
	}

	collection, err := relay.CollectionFromJSON(resp.Body, r.client.config.APIID, resp.APIVersion)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list response: %w", r.object, err)
	}

	return collection, nil
}

// Update issues a POST with the given fields to the instance URL.
func (r *resourceClient) Update(ctx context.Context, resourceID string, params relay.Params) (*relay.Resource, error) {
	schema, err := r.schema()
	if err != nil {
		return nil, err
	}

	resp, err := r.client.httpClient.Do(ctx, &internalhttp.Request{
		Method: http.MethodPost,
		Path:   schema.ResourcePath(resourceID),
		Params: params,
		Schema: schema,
	})
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", r.object, err)
	}

	return r.parseResource(resp)
}

// Delete removes one resource by id.
func (r *resourceClient) Delete(ctx context.Context, resourceID string) error {
	schema, err := r.schema()
	if err != nil {
		return err
	}

	_, err = r.client.httpClient.Delete(ctx, schema.ResourcePath(resourceID), nil)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", r.object, err)
	}

	return nil
}

func (r *resourceClient) parseResource(resp *internalhttp.Response) (*relay.Resource, error) {
	resource, err := relay.ResourceFromJSON(resp.Body, r.client.config.APIID, resp.APIVersion)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", r.object, err)
	}

	return resource, nil
}

// pluralLabel keeps error messages readable for multi-word object names.
func pluralLabel(object string) string {
	return object + "s"
}

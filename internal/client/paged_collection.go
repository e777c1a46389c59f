package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	internalhttp "github.com/edukit-io/canvas/internal/http"
	"github.com/edukit-io/canvas/pkg/canvas"
)

// PagedCollection is a generic client base for resources that are pure
// list/get collections. Most Canvas list endpoints return a bare JSON
// array; a few wrap the array in a single-key envelope object, named by
// envelopeKey.
type PagedCollection[T any] struct {
	httpClient  *internalhttp.Client
	what        string
	envelopeKey string
}

// NewPagedCollection creates a generic paged collection client. what names
// the resource in error messages; envelopeKey is empty for bare-array
// endpoints.
func NewPagedCollection[T any](httpClient *internalhttp.Client, what, envelopeKey string) *PagedCollection[T] {
	return &PagedCollection[T]{
		httpClient:  httpClient,
		what:        what,
		envelopeKey: envelopeKey,
	}
}

// ListPage retrieves one page of the collection at path. path may be a
// request path for the first page or the absolute next-page URL from a
// previous response.
func (c *PagedCollection[T]) ListPage(ctx context.Context, path string, params *canvas.ListParams) (*canvas.Page[T], error) {
	req := &internalhttp.Request{
		Method: "GET",
		Path:   path,
	}

	if params != nil {
		req.Query = params.ToValues()
	}

	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("listing %ss: %w", c.what, err)
	}

	items, err := c.decodeList(resp.Body)
	if err != nil {
		return nil, err
	}

	page := &canvas.Page[T]{
		Items: items,
		Links: canvas.ParseLinkHeader(resp.Headers.Get("Link")),
	}

	if raw := resp.Headers.Get(canvas.TotalCountHeader); raw != "" {
		if count, convErr := strconv.Atoi(raw); convErr == nil {
			page.TotalCount = count
		}
	}

	return page, nil
}

// GetOne retrieves a single resource at path.
func (c *PagedCollection[T]) GetOne(ctx context.Context, path string) (*T, error) {
	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", c.what, err)
	}

	return decodeResource[T](resp.Body, c.what)
}

func (c *PagedCollection[T]) decodeList(body []byte) ([]T, error) {
	if c.envelopeKey == "" {
		var items []T

		err := json.Unmarshal(body, &items)
		if err != nil {
			return nil, fmt.Errorf("parsing %s list response: %w", c.what, err)
		}

		return items, nil
	}

	var envelope map[string]json.RawMessage

	err := json.Unmarshal(body, &envelope)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list envelope: %w", c.what, err)
	}

	raw, ok := envelope[c.envelopeKey]
	if !ok {
		return nil, fmt.Errorf("parsing %s list envelope: missing %q key: %w", c.what, c.envelopeKey, canvas.ErrUnexpectedResponse)
	}

	var items []T

	err = json.Unmarshal(raw, &items)
	if err != nil {
		return nil, fmt.Errorf("parsing %s list response: %w", c.what, err)
	}

	return items, nil
}

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	internalhttp "github.com/edukit-io/canvas/internal/http"
	"github.com/edukit-io/canvas/pkg/canvas"
)

// fetchPage performs a list request and assembles a page from the bare JSON
// array body plus the Link and X-Total-Count response headers. pageURL may be
// a request path for the first page or the absolute next-page URL from a
// previous response.
func fetchPage[T any](ctx context.Context, httpClient *internalhttp.Client, pageURL string, params *canvas.ListParams) (*canvas.Page[T], error) {
	req := &internalhttp.Request{
		Method: "GET",
		Path:   pageURL,
	}

	if params != nil {
		req.Query = params.ToValues()
	}

	resp, err := httpClient.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	var items []T

	err = json.Unmarshal(resp.Body, &items)
	if err != nil {
		return nil, fmt.Errorf("parsing list response: %w", err)
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

// decodeResource unmarshals a single-resource response body.
func decodeResource[T any](body []byte, what string) (*T, error) {
	var resource T

	err := json.Unmarshal(body, &resource)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", what, err)
	}

	return &resource, nil
}

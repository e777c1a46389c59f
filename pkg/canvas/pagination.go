package canvas

import (
	"context"
	"fmt"
	"strings"

	"github.com/edukit-io/canvas/internal/constants"
)

// TotalCountHeader carries the total result count on list responses when the
// API can compute it cheaply. Absent on large collections.
const TotalCountHeader = "X-Total-Count"

// ParseLinkHeader extracts page URLs from an RFC 5988 Link header of the form
//
//	<https://lms.example.com/api/v1/courses?page=2>; rel="next", <...>; rel="last"
//
// Unknown relations are ignored. A malformed segment yields no link rather
// than an error; pagination simply stops.
func ParseLinkHeader(header string) PageLinks {
	var links PageLinks

	for _, segment := range strings.Split(header, ",") {
		parts := strings.Split(strings.TrimSpace(segment), ";")
		if len(parts) < 2 {
			continue
		}

		urlPart := strings.TrimSpace(parts[0])
		if !strings.HasPrefix(urlPart, "<") || !strings.HasSuffix(urlPart, ">") {
			continue
		}

		pageURL := strings.Trim(urlPart, "<>")

		for _, param := range parts[1:] {
			param = strings.TrimSpace(param)

			rel, ok := strings.CutPrefix(param, "rel=")
			if !ok {
				continue
			}

			switch strings.Trim(rel, `"`) {
			case "current":
				links.Current = pageURL
			case "next":
				links.Next = pageURL
			case "prev":
				links.Prev = pageURL
			case "first":
				links.First = pageURL
			case "last":
				links.Last = pageURL
			}
		}
	}

	return links
}

// PageFetcher fetches a single page of resources. pageURL is either the
// request path of the first page or the opaque next-page URL advertised by a
// previous response; params apply only to the first request since follow-up
// URLs already carry their query string.
type PageFetcher[T any] interface {
	FetchPage(ctx context.Context, pageURL string, params *ListParams) (*Page[T], error)
}

// PageFetcherFunc adapts a function to the PageFetcher interface.
type PageFetcherFunc[T any] func(ctx context.Context, pageURL string, params *ListParams) (*Page[T], error)

// FetchPage implements PageFetcher.
func (f PageFetcherFunc[T]) FetchPage(ctx context.Context, pageURL string, params *ListParams) (*Page[T], error) {
	return f(ctx, pageURL, params)
}

// PageIterator walks a paginated collection item by item, following next
// links until the API stops advertising one.
type PageIterator[T any] struct {
	ctx     context.Context
	fetcher PageFetcher[T]
	params  *ListParams
	nextURL string
	buffer  []T
	started bool
	done    bool
	err     error
}

// NewPageIterator creates an iterator over the collection at path.
func NewPageIterator[T any](ctx context.Context, fetcher PageFetcher[T], path string, params *ListParams) *PageIterator[T] {
	return &PageIterator[T]{
		ctx:     ctx,
		fetcher: fetcher,
		params:  params,
		nextURL: path,
	}
}

// HasNext reports whether another item is available. It may fetch the next
// page; a fetch error is surfaced by the following Next call.
func (it *PageIterator[T]) HasNext() bool {
	if len(it.buffer) > 0 {
		return true
	}

	if it.done {
		return false
	}

	it.fetchNext()

	return len(it.buffer) > 0 || it.err != nil
}

// Next returns the next item, fetching pages as needed.
func (it *PageIterator[T]) Next() (T, error) {
	var zero T

	if it.err != nil {
		err := it.err
		it.err = nil

		return zero, err
	}

	if len(it.buffer) == 0 {
		if it.done {
			return zero, ErrNoMoreItems
		}

		it.fetchNext()

		if it.err != nil {
			err := it.err
			it.err = nil

			return zero, err
		}

		if len(it.buffer) == 0 {
			return zero, ErrNoMoreItems
		}
	}

	item := it.buffer[0]
	it.buffer = it.buffer[1:]

	return item, nil
}

// All collects every remaining item.
func (it *PageIterator[T]) All() ([]T, error) {
	var items []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return items, err
		}

		items = append(items, item)
	}

	return items, nil
}

// ForEach applies fn to every remaining item, stopping at the first error.
func (it *PageIterator[T]) ForEach(fn func(item T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return nil
}

func (it *PageIterator[T]) fetchNext() {
	var (
		page *Page[T]
		err  error
	)

	if it.started {
		// Follow-up pages carry their query in the next URL.
		page, err = it.fetcher.FetchPage(it.ctx, it.nextURL, nil)
	} else {
		page, err = it.fetcher.FetchPage(it.ctx, it.nextURL, it.params)
		it.started = true
	}

	if err != nil {
		it.err = fmt.Errorf("fetching page: %w", err)
		it.done = true

		return
	}

	it.buffer = append(it.buffer, page.Items...)

	if page.Links.HasNext() {
		it.nextURL = page.Links.Next
	} else {
		it.done = true
	}
}

// PaginationOptions controls bulk page fetching.
type PaginationOptions struct {
	// PageSize is the per_page value applied when the caller supplies no
	// explicit params.
	PageSize int

	// MaxPages caps the number of pages fetched. Zero means no cap.
	MaxPages int
}

// DefaultPaginationOptions returns options suited to bulk collection.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{
		PageSize: constants.LargePageSize,
		MaxPages: constants.MaxPages,
	}
}

// FetchAllPages walks the collection at path and returns the concatenated
// items of every page, in order.
func FetchAllPages[T any](ctx context.Context, fetcher PageFetcher[T], path string, params *ListParams, options *PaginationOptions) ([]T, error) {
	if options == nil {
		options = &PaginationOptions{}
	}

	if params == nil && options.PageSize > 0 {
		params = NewListParams().WithPerPage(options.PageSize)
	}

	var (
		items   []T
		pageURL = path
		fetched = 0
	)

	for {
		var (
			page *Page[T]
			err  error
		)

		if fetched == 0 {
			page, err = fetcher.FetchPage(ctx, pageURL, params)
		} else {
			page, err = fetcher.FetchPage(ctx, pageURL, nil)
		}

		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", fetched+1, err)
		}

		items = append(items, page.Items...)
		fetched++

		if !page.Links.HasNext() {
			break
		}

		if options.MaxPages > 0 && fetched >= options.MaxPages {
			break
		}

		pageURL = page.Links.Next
	}

	return items, nil
}

// PageResult is one page delivered by StreamPages.
type PageResult[T any] struct {
	Items []T
	Err   error
}

// StreamPages fetches pages sequentially and delivers them over a channel.
// The channel is closed after the last page or the first error; callers must
// check Err on every result.
func StreamPages[T any](ctx context.Context, fetcher PageFetcher[T], path string, params *ListParams, options *PaginationOptions) <-chan PageResult[T] {
	if options == nil {
		options = &PaginationOptions{}
	}

	results := make(chan PageResult[T], constants.SmallBufferSize)

	go func() {
		defer close(results)

		var (
			pageURL = path
			fetched = 0
		)

		for {
			var (
				page *Page[T]
				err  error
			)

			if fetched == 0 {
				page, err = fetcher.FetchPage(ctx, pageURL, params)
			} else {
				page, err = fetcher.FetchPage(ctx, pageURL, nil)
			}

			if err != nil {
				select {
				case results <- PageResult[T]{Err: err}:
				case <-ctx.Done():
				}

				return
			}

			select {
			case results <- PageResult[T]{Items: page.Items}:
			case <-ctx.Done():
				return
			}

			fetched++

			if !page.Links.HasNext() {
				return
			}

			if options.MaxPages > 0 && fetched >= options.MaxPages {
				return
			}

			pageURL = page.Links.Next
		}
	}()

	return results
}

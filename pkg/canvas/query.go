package canvas

import (
	"net/url"
	"strconv"
)

// ListParams expresses the query options shared by list endpoints: paging,
// sorting, search, include expansion, masquerading, and per-resource filters.
type ListParams struct {
	Page       int
	PerPage    int
	SearchTerm string
	Sort       string
	Order      SortOrder
	Include    []string
	AsUserID   string
	Filters    map[string][]string
}

// NewListParams creates an empty ListParams ready for chaining.
func NewListParams() *ListParams {
	return &ListParams{
		Filters: make(map[string][]string),
	}
}

// WithPage sets the page number.
func (p *ListParams) WithPage(page int) *ListParams {
	p.Page = page

	return p
}

// WithPerPage sets the page size.
func (p *ListParams) WithPerPage(perPage int) *ListParams {
	p.PerPage = perPage

	return p
}

// WithSearchTerm sets the partial-match search term.
func (p *ListParams) WithSearchTerm(term string) *ListParams {
	p.SearchTerm = term

	return p
}

// WithSort sets the sort field.
func (p *ListParams) WithSort(field string) *ListParams {
	p.Sort = field

	return p
}

// WithOrder sets the sort direction.
func (p *ListParams) WithOrder(order SortOrder) *ListParams {
	p.Order = order

	return p
}

// WithInclude appends include expansions (e.g. "total_students", "term").
func (p *ListParams) WithInclude(includes ...string) *ListParams {
	p.Include = append(p.Include, includes...)

	return p
}

// WithAsUser sets the masquerade user for this request.
func (p *ListParams) WithAsUser(userID string) *ListParams {
	p.AsUserID = userID

	return p
}

// WithFilter appends values to a filter key. Keys ending in "[]" are sent as
// repeated parameters, matching the API's array convention.
func (p *ListParams) WithFilter(key string, values ...string) *ListParams {
	if p.Filters == nil {
		p.Filters = make(map[string][]string)
	}

	p.Filters[key] = append(p.Filters[key], values...)

	return p
}

// ToValues converts the params to url.Values for the request query string.
func (p *ListParams) ToValues() url.Values {
	values := url.Values{}

	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}

	if p.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(p.PerPage))
	}

	if p.SearchTerm != "" {
		values.Set("search_term", p.SearchTerm)
	}

	if p.Sort != "" {
		values.Set("sort", p.Sort)
	}

	if p.Order != "" {
		values.Set("order", string(p.Order))
	}

	for _, include := range p.Include {
		values.Add("include[]", include)
	}

	if p.AsUserID != "" {
		values.Set("as_user_id", p.AsUserID)
	}

	for key, filterValues := range p.Filters {
		for _, value := range filterValues {
			values.Add(key, value)
		}
	}

	return values
}

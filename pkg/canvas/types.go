package canvas

// PageLinks holds the page URLs extracted from an RFC 5988 Link response
// header. Empty fields mean the API did not advertise that relation.
type PageLinks struct {
	Current string `json:"current,omitempty" yaml:"current,omitempty"`
	Next    string `json:"next,omitempty"    yaml:"next,omitempty"`
	Prev    string `json:"prev,omitempty"    yaml:"prev,omitempty"`
	First   string `json:"first,omitempty"   yaml:"first,omitempty"`
	Last    string `json:"last,omitempty"    yaml:"last,omitempty"`
}

// HasNext reports whether another page is available.
func (l PageLinks) HasNext() bool {
	return l.Next != ""
}

// Page represents one page of a list response. The API returns list bodies
// as bare JSON arrays; pagination travels in the Link and X-Total-Count
// response headers.
type Page[T any] struct {
	Items      []T       `json:"items"       yaml:"items"`
	Links      PageLinks `json:"links"       yaml:"links"`
	TotalCount int       `json:"total_count" yaml:"total_count"`
}

// SortOrder is the direction applied to sorted list requests.
type SortOrder string

const (
	// SortAscending sorts results in ascending order.
	SortAscending SortOrder = "asc"

	// SortDescending sorts results in descending order.
	SortDescending SortOrder = "desc"
)

// Include represents include parameters for API requests.
type Include []string

// CoursesList represents one page of Course resources.
type CoursesList = Page[Course]

// AssignmentsList represents one page of Assignment resources.
type AssignmentsList = Page[Assignment]

// EnrollmentsList represents one page of Enrollment resources.
type EnrollmentsList = Page[Enrollment]

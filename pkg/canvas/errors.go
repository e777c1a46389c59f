package canvas

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a single error entry from the LMS error body.
type APIError struct {
	Message   string `json:"message"              yaml:"message"`
	ErrorCode string `json:"error_code,omitempty" yaml:"error_code,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("%s (%s)", e.Message, e.ErrorCode)
	}

	return e.Message
}

// ResponseError represents a failed API call: the remote HTTP status plus the
// parsed error body. The LMS reports errors as
//
//	{"errors": [{"message": "..."}], "error_report_id": 1234}
type ResponseError struct {
	StatusCode    int        `json:"-"                         yaml:"-"`
	Errors        []APIError `json:"errors"                    yaml:"errors"`
	ErrorReportID int64      `json:"error_report_id,omitempty" yaml:"error_report_id,omitempty"`
	RequestID     string     `json:"-"                         yaml:"-"`
}

// Error implements the error interface for ResponseError.
func (e *ResponseError) Error() string {
	switch len(e.Errors) {
	case 0:
		return fmt.Sprintf("API request failed with status %d", e.StatusCode)
	case 1:
		return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, e.Errors[0].Error())
	default:
		messages := make([]string, 0, len(e.Errors))
		for i := range e.Errors {
			messages = append(messages, e.Errors[i].Error())
		}

		return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, strings.Join(messages, "; "))
	}
}

// FirstError returns the first error entry or nil.
func (e *ResponseError) FirstError() *APIError {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// ParseResponseError builds a ResponseError from a non-2xx response body.
// Bodies that are not the standard error JSON (HTML error pages, plain text)
// are preserved as a single message entry.
func ParseResponseError(statusCode int, body []byte) *ResponseError {
	respErr := &ResponseError{StatusCode: statusCode}

	if len(body) == 0 {
		return respErr
	}

	if err := json.Unmarshal(body, respErr); err != nil || len(respErr.Errors) == 0 {
		respErr.Errors = []APIError{{Message: strings.TrimSpace(string(body))}}
	}

	return respErr
}

// rateLimitMessage is the body the LMS uses when throttling; it arrives with
// status 403 rather than 429.
const rateLimitMessage = "Rate Limit Exceeded"

// IsNotFound checks if the error represents a missing resource.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error represents missing or invalid credentials.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error represents insufficient permissions.
func IsForbidden(err error) bool {
	respErr := &ResponseError{}
	if !errors.As(err, &respErr) {
		return false
	}

	return respErr.StatusCode == http.StatusForbidden && !isThrottled(respErr)
}

// IsRateLimited checks if the error represents API throttling. The LMS
// signals throttling either with 429 or with 403 and a Rate Limit Exceeded
// message.
func IsRateLimited(err error) bool {
	respErr := &ResponseError{}
	if !errors.As(err, &respErr) {
		return false
	}

	if respErr.StatusCode == http.StatusTooManyRequests {
		return true
	}

	return respErr.StatusCode == http.StatusForbidden && isThrottled(respErr)
}

func hasStatus(err error, status int) bool {
	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.StatusCode == status
	}

	return false
}

func isThrottled(respErr *ResponseError) bool {
	first := respErr.FirstError()

	return first != nil && strings.Contains(first.Message, rateLimitMessage)
}

// Common static errors that can be wrapped with context.
var (
	ErrConfigRequired           = errors.New("config is required")
	ErrAPIEndpointRequired      = errors.New("API endpoint is required")
	ErrNoMoreItems              = errors.New("no more items")
	ErrCircuitBreakerOpen       = errors.New("circuit breaker is open")
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
	ErrNoTokenManagerConfigured = errors.New("no token manager configured")
	ErrProgressFailed           = errors.New("operation failed")
	ErrProgressTimeout          = errors.New("timed out waiting for operation to complete")
	ErrUploadRejected           = errors.New("file upload rejected by storage endpoint")
	ErrUnexpectedResponse       = errors.New("unexpected response shape")
)

// DTO validation errors.
var (
	ErrCourseNameRequired        = errors.New("course name is required")
	ErrAssignmentNameRequired    = errors.New("assignment name is required")
	ErrModuleNameRequired        = errors.New("module name is required")
	ErrModuleItemTypeRequired    = errors.New("module item type is required")
	ErrSectionNameRequired       = errors.New("section name is required")
	ErrRubricTitleRequired       = errors.New("rubric title is required")
	ErrEnrollmentUserRequired    = errors.New("enrollment user ID is required")
	ErrUserNameRequired          = errors.New("user name is required")
	ErrPseudonymUniqueIDRequired = errors.New("pseudonym unique ID is required")
	ErrFileNameRequired          = errors.New("file name is required")
	ErrSubmissionTypeRequired    = errors.New("submission type is required")
	ErrSubmissionBodyRequired    = errors.New("submission body is required for this submission type")
	ErrInvalidSubmissionType     = errors.New("invalid submission type")
	ErrInvalidGradingType        = errors.New("invalid grading type")
	ErrInvalidEnrollmentType     = errors.New("invalid enrollment type")
	ErrInvalidEnrollmentState    = errors.New("invalid enrollment state")
	ErrInvalidModuleItemType     = errors.New("invalid module item type")
	ErrInvalidWorkflowEvent      = errors.New("invalid workflow event")
	ErrInvalidEnrollmentTask     = errors.New("invalid enrollment task")
	ErrPointsPossibleNegative    = errors.New("points possible cannot be negative")
	ErrGradeOrExcuseRequired     = errors.New("a posted grade or excuse flag is required")
	ErrExternalURLRequired       = errors.New("external URL is required for this module item type")
	ErrContentIDRequired         = errors.New("content ID is required for this module item type")
	ErrRubricCriterionRequired   = errors.New("at least one rubric criterion is required")
	ErrFileSizeRequired          = errors.New("file size must be greater than zero")
)

// Identifier errors returned before a request is issued. Operations on
// nested resources fail fast when the parent ID argument is missing.
var (
	ErrAccountIDRequired    = errors.New("account ID is required")
	ErrCourseIDRequired     = errors.New("course ID is required")
	ErrModuleIDRequired     = errors.New("module ID is required")
	ErrModuleItemIDRequired = errors.New("module item ID is required")
	ErrAssignmentIDRequired = errors.New("assignment ID is required")
	ErrSectionIDRequired    = errors.New("section ID is required")
	ErrRubricIDRequired     = errors.New("rubric ID is required")
	ErrEnrollmentIDRequired = errors.New("enrollment ID is required")
	ErrUserIDRequired       = errors.New("user ID is required")
	ErrFileIDRequired       = errors.New("file ID is required")
	ErrTermIDRequired       = errors.New("term ID is required")
	ErrProgressIDRequired   = errors.New("progress ID is required")
)

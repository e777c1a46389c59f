package constants

import "errors"

// API and configuration errors.
var (
	ErrNoAPIsConfigured    = errors.New("no APIs configured, use 'canvas apis add' to add one")
	ErrNoDomainForAPI      = errors.New("could not determine API domain")
	ErrNoRefreshToken      = errors.New("no refresh token available for this API, please run 'canvas login' again")
	ErrFailedRetrieveToken = errors.New("failed to retrieve refreshed token")
	ErrAPIConfigNotFound   = errors.New("API configuration not found")
	ErrNotAuthenticated    = errors.New("not authenticated, run 'canvas login' first")
)

// Context errors. Nested resources refuse to issue requests without the
// identifier of the resource they hang off.
var (
	ErrCourseIDRequired     = errors.New("course ID is required")
	ErrAccountIDRequired    = errors.New("account ID is required")
	ErrUserIDRequired       = errors.New("user ID is required")
	ErrModuleIDRequired     = errors.New("module ID is required")
	ErrAssignmentIDRequired = errors.New("assignment ID is required")
	ErrSectionIDRequired    = errors.New("section ID is required")
	ErrRubricIDRequired     = errors.New("rubric ID is required")
	ErrEnrollmentIDRequired = errors.New("enrollment ID is required")
	ErrFileIDRequired       = errors.New("file ID is required")
	ErrProgressIDRequired   = errors.New("progress ID is required")
	ErrTermIDRequired       = errors.New("term ID is required")
	ErrItemIDRequired       = errors.New("module item ID is required")
)

// Operation errors.
var (
	ErrUnsupportedResource  = errors.New("unsupported resource type")
	ErrUnsupportedOperation = errors.New("unsupported operation")
	ErrResourceNotFound     = errors.New("resource not found")
	ErrInvalidResourceType  = errors.New("invalid resource type")
)

// File system errors.
var (
	ErrNotRegularFile             = errors.New("path is not a regular file")
	ErrDirectoryTraversalDetected = errors.New("directory traversal detected in file path")
)

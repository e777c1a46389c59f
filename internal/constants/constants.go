package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ExtendedHTTPTimeout is used for longer operations such as file uploads.
	ExtendedHTTPTimeout = 120 * time.Second

	// ShortHTTPTimeout is used for quick operations.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry and concurrency limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 5

	// LowRetryMax is used for operations that should retry fewer times.
	LowRetryMax = 3

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second

	// ExtendedRetryWaitMax is used for operations that need longer waits.
	ExtendedRetryWaitMax = 30 * time.Second

	// DefaultConcurrencyLimit limits concurrent batch operations.
	DefaultConcurrencyLimit = 3

	// BufferSize is the default buffer size for channels.
	BufferSize = 100

	// SmallBufferSize is used for smaller buffers.
	SmallBufferSize = 10
)

// Pagination and display limits.
const (
	// DefaultPageSize is the page size the API applies when none is given.
	DefaultPageSize = 10

	// StandardPageSize is the common page size for list requests.
	StandardPageSize = 50

	// LargePageSize is used for efficient bulk operations.
	LargePageSize = 100

	// MaxPages is used to prevent runaway pagination loops.
	MaxPages = 50
)

// Token handling.
const (
	// TokenExpirationBuffer is the buffer time before token expiration.
	TokenExpirationBuffer = 30 * time.Second

	// DefaultTokenValidity is the validity the API grants access tokens (1 hour).
	DefaultTokenValidity = 3600
)

// Time intervals and delays.
const (
	// DefaultPollInterval is used for progress polling.
	DefaultPollInterval = 2 * time.Second

	// QuickPollInterval is used for fast polling in tests.
	QuickPollInterval = 10 * time.Millisecond

	// DefaultProgressPollTimeout is the default timeout for progress polling.
	DefaultProgressPollTimeout = 5 * time.Minute
)

// Cache sizes and lifetimes.
const (
	// DefaultCacheSize is the default cache size limit.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default cache time-to-live.
	DefaultCacheTTL = 5 * time.Minute

	// CacheMinTTL is the minimum cache time-to-live.
	CacheMinTTL = 30 * time.Second

	// MaxCacheValueSize is the maximum size for cached values (1MB).
	MaxCacheValueSize = 1024 * 1024

	// DefaultCacheSetTTL is the default TTL when setting cache values.
	DefaultCacheSetTTL = 10 * time.Minute
)

// Circuit breaker defaults.
const (
	// CircuitBreakerThreshold is the failure threshold for the circuit breaker.
	CircuitBreakerThreshold = 5

	// CircuitBreakerSuccessThreshold is the success threshold to close again.
	CircuitBreakerSuccessThreshold = 2

	// CircuitBreakerTimeout is the open-state timeout for the circuit breaker.
	CircuitBreakerTimeout = 30 * time.Second
)

// State and status constants.
const (
	// StatusOpen indicates an open circuit state.
	StatusOpen = "open"

	// StatusHalfOpen indicates a half-open circuit state.
	StatusHalfOpen = "half-open"

	// StatusClosed indicates a closed circuit state.
	StatusClosed = "closed"
)

// Output format constants.
const (
	// FormatJSON for JSON output format.
	FormatJSON = "json"

	// FormatYAML for YAML output format.
	FormatYAML = "yaml"

	// FormatTable for tabular output format.
	FormatTable = "table"
)

// API path constants.
const (
	// APIPathCourses for the top-level courses endpoint.
	APIPathCourses = "/api/v1/courses"

	// APIPathAccounts for the top-level accounts endpoint.
	APIPathAccounts = "/api/v1/accounts"

	// APIPathUsers for the top-level users endpoint.
	APIPathUsers = "/api/v1/users"

	// APIPathProgress for the progress endpoint.
	APIPathProgress = "/api/v1/progress"

	// OAuthTokenPath is the path of the OAuth2 token endpoint.
	OAuthTokenPath = "/login/oauth2/token"
)

// Display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// MaskedSecret is used to hide sensitive information.
	MaskedSecret = "***"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)

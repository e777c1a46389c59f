package canvas

import (
	"context"
	"time"
)

// DirectoryClients provides access to account-level directory resources.
type DirectoryClients interface {
	Accounts() AccountsClient
	Users() UsersClient
	Terms() TermsClient
}

// CourseContentClients provides access to course content resources.
type CourseContentClients interface {
	Courses() CoursesClient
	Modules() ModulesClient
	Assignments() AssignmentsClient
	Sections() SectionsClient
	Rubrics() RubricsClient
}

// GradingClients provides access to grading and roster resources.
type GradingClients interface {
	Submissions() SubmissionsClient
	Enrollments() EnrollmentsClient
}

// UtilityClients provides access to files and asynchronous operations.
type UtilityClients interface {
	Files() FilesClient
	Progress() ProgressClient
}

// ResourceClients provides access to all resource-specific clients.
type ResourceClients interface {
	// Composite interfaces for resource groups
	DirectoryClients
	CourseContentClients
	GradingClients
	UtilityClients
}

// Client is the top-level LMS API client.
type Client interface {
	ResourceClients

	// GetSelf returns the user the current credentials authenticate as.
	// Convenience for Users().GetSelf.
	GetSelf(ctx context.Context) (*User, error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a canvas.Client.
//
// # Authentication precedence
//
// The following precedence is applied by the concrete client implementation
// (see pkg/canvasclient and internal/client):
//  1. AccessToken: if set, it is used directly as a static Bearer token.
//  2. AccessToken + RefreshToken + ClientID/ClientSecret: the token is tried
//     first; when it expires or fails with 401, the client falls back to the
//     refresh_token grant to obtain a fresh one.
//  3. RefreshToken + ClientID/ClientSecret: uses the OAuth2 refresh_token
//     grant immediately.
//  4. ClientID/ClientSecret: uses the OAuth2 client_credentials grant
//     (site-admin style developer keys).
//  5. No credentials: requests are sent without authentication. Most
//     endpoints will respond 401.
//
// # Token URL
//
// If authentication is required and TokenURL is not provided, canvasclient.New
// derives it from the API endpoint as "<endpoint>/login/oauth2/token".
//
// # Timeouts, retries, and TLS
//
// Per-request timeouts should generally be controlled via context passed to
// client methods. Retry behavior can be tuned via RetryMax/RetryWaitMin/
// RetryWaitMax; only 429 and 5xx responses are retried. SkipTLSVerify is
// intended for local development installs only.
type Config struct {
	// Required fields
	// APIEndpoint: base URL of the LMS instance (e.g., "https://school.instructure.com").
	// canvasclient.New normalizes this value by trimming a trailing slash and
	// adding "https://" if no scheme is present.
	APIEndpoint string

	// Authentication options (provide one)
	// AccessToken: if set, used directly as a Bearer token. When combined with
	// RefreshToken and ClientID/ClientSecret, the token is tried first and the
	// client falls back to the refresh_token grant on 401.
	AccessToken string
	// ClientID: OAuth2 developer key ID.
	ClientID string
	// ClientSecret: OAuth2 developer key secret used with ClientID.
	ClientSecret string
	// RefreshToken: refresh token used by the OAuth2 manager to renew access tokens.
	RefreshToken string
	// TokenURL: full OAuth2 token endpoint. If empty and authentication is
	// required, canvasclient.New derives it from APIEndpoint.
	TokenURL string

	// Optional configurations
	// ActAsUserID: when set, every request carries as_user_id so the API acts
	// on behalf of that user (masquerading). Requires admin permissions.
	ActAsUserID string
	// HTTPTimeout: optional default HTTP timeout where supported. Most client
	// calls should rely on context timeouts; this may be used by helpers.
	HTTPTimeout time.Duration
	// RetryMax: maximum number of retries for transient failures (>=500, 429,
	// and connection errors). If 0, a sensible default is used by the client.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration
	// Debug: enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by the HTTP layer and helpers.
	Logger Logger
	// SkipTLSVerify: skips TLS verification. Intended for local development
	// installs with self-signed certificates.
	SkipTLSVerify bool
	// UserAgent: overrides the default User-Agent header sent by the client.
	UserAgent string
}

// Package client contains the concrete implementation of the canvas.Client
// interface and its per-resource clients.
package client

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/edukit-io/canvas/internal/auth"
	"github.com/edukit-io/canvas/internal/constants"
	internalhttp "github.com/edukit-io/canvas/internal/http"
	"github.com/edukit-io/canvas/pkg/canvas"
)

// Static errors for err113 compliance.
var (
	ErrAPIEndpointRequired      = errors.New("API endpoint is required")
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
)

// Client implements the canvas.Client interface.
type Client struct {
	httpClient   *internalhttp.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       canvas.Logger

	// Resource clients
	accounts    canvas.AccountsClient
	courses     canvas.CoursesClient
	modules     canvas.ModulesClient
	assignments canvas.AssignmentsClient
	submissions canvas.SubmissionsClient
	rubrics     canvas.RubricsClient
	enrollments canvas.EnrollmentsClient
	users       canvas.UsersClient
	sections    canvas.SectionsClient
	files       canvas.FilesClient
	terms       canvas.TermsClient
	progress    canvas.ProgressClient
}

// createTokenManager creates the appropriate token manager for the
// credentials in config. The precedence is documented on canvas.Config.
func createTokenManager(config *canvas.Config) auth.TokenManager {
	hasOAuth := config.ClientID != "" && config.ClientSecret != ""

	if config.AccessToken != "" && hasOAuth && config.RefreshToken != "" {
		return createFallbackTokenManager(config)
	}

	if config.AccessToken != "" {
		return &staticTokenManager{token: config.AccessToken}
	}

	if hasOAuth {
		return auth.NewOAuth2TokenManager(&auth.OAuth2Config{
			TokenURL:     getTokenURL(config),
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			RefreshToken: config.RefreshToken,
		})
	}

	return nil // No authentication
}

// createFallbackTokenManager tries the configured access token first and
// falls back to the refresh_token grant when it stops working.
func createFallbackTokenManager(config *canvas.Config) auth.TokenManager {
	oauthManager := auth.NewOAuth2TokenManager(&auth.OAuth2Config{
		TokenURL:     getTokenURL(config),
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RefreshToken: config.RefreshToken,
	})

	return &fallbackTokenManager{
		staticToken:  config.AccessToken,
		oauthManager: oauthManager,
	}
}

// getTokenURL returns the token URL from config or derives it from the
// instance URL.
func getTokenURL(config *canvas.Config) string {
	if config.TokenURL != "" {
		return config.TokenURL
	}

	return config.APIEndpoint + constants.OAuthTokenPath
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *canvas.Config) []internalhttp.Option {
	var httpOpts []internalhttp.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, internalhttp.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, internalhttp.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, internalhttp.WithUserAgent(config.UserAgent))
	}

	if config.ActAsUserID != "" {
		httpOpts = append(httpOpts, internalhttp.WithActAsUser(config.ActAsUserID))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, internalhttp.WithHTTPTimeout(config.HTTPTimeout))
	}

	if config.SkipTLSVerify {
		httpOpts = append(httpOpts, internalhttp.WithSkipTLSVerify(true))
	}

	if config.RetryMax > 0 {
		retryWaitMin := 1 * time.Second
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, internalhttp.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// New creates a new API client.
func New(config *canvas.Config) (*Client, error) {
	if config.APIEndpoint == "" {
		return nil, ErrAPIEndpointRequired
	}

	tokenManager := createTokenManager(config)
	httpOpts := createHTTPClientOptions(config)
	httpClient := internalhttp.NewClient(config.APIEndpoint, tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.APIEndpoint,
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// NewWithTokenManager creates a new API client with a custom token manager.
func NewWithTokenManager(config *canvas.Config, tokenManager auth.TokenManager) (*Client, error) {
	if config.APIEndpoint == "" {
		return nil, ErrAPIEndpointRequired
	}

	httpOpts := createHTTPClientOptions(config)
	httpClient := internalhttp.NewClient(config.APIEndpoint, tokenManager, httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      config.APIEndpoint,
		logger:       config.Logger,
	}

	client.initializeResourceClients()

	return client, nil
}

// initializeResourceClients initializes all resource-specific clients.
func (c *Client) initializeResourceClients() {
	c.accounts = NewAccountsClient(c.httpClient)
	c.courses = NewCoursesClient(c.httpClient)
	c.modules = NewModulesClient(c.httpClient)
	c.assignments = NewAssignmentsClient(c.httpClient)
	c.submissions = NewSubmissionsClient(c.httpClient)
	c.rubrics = NewRubricsClient(c.httpClient)
	c.enrollments = NewEnrollmentsClient(c.httpClient)
	c.users = NewUsersClient(c.httpClient)
	c.sections = NewSectionsClient(c.httpClient)
	c.files = NewFilesClient(c.httpClient)
	c.terms = NewTermsClient(c.httpClient)
	c.progress = NewProgressClient(c.httpClient)
}

// GetTokenManager returns the token manager for this client.
func (c *Client) GetTokenManager() auth.TokenManager {
	return c.tokenManager
}

// GetSelf implements canvas.Client.GetSelf.
func (c *Client) GetSelf(ctx context.Context) (*canvas.User, error) {
	return c.users.GetSelf(ctx)
}

// Resource client accessors

// Accounts implements canvas.Client.Accounts.
func (c *Client) Accounts() canvas.AccountsClient {
	return c.accounts
}

// Courses implements canvas.Client.Courses.
func (c *Client) Courses() canvas.CoursesClient {
	return c.courses
}

// Modules implements canvas.Client.Modules.
func (c *Client) Modules() canvas.ModulesClient {
	return c.modules
}

// Assignments implements canvas.Client.Assignments.
func (c *Client) Assignments() canvas.AssignmentsClient {
	return c.assignments
}

// Submissions implements canvas.Client.Submissions.
func (c *Client) Submissions() canvas.SubmissionsClient {
	return c.submissions
}

// Rubrics implements canvas.Client.Rubrics.
func (c *Client) Rubrics() canvas.RubricsClient {
	return c.rubrics
}

// Enrollments implements canvas.Client.Enrollments.
func (c *Client) Enrollments() canvas.EnrollmentsClient {
	return c.enrollments
}

// Users implements canvas.Client.Users.
func (c *Client) Users() canvas.UsersClient {
	return c.users
}

// Sections implements canvas.Client.Sections.
func (c *Client) Sections() canvas.SectionsClient {
	return c.sections
}

// Files implements canvas.Client.Files.
func (c *Client) Files() canvas.FilesClient {
	return c.files
}

// Terms implements canvas.Client.Terms.
func (c *Client) Terms() canvas.TermsClient {
	return c.terms
}

// Progress implements canvas.Client.Progress.
func (c *Client) Progress() canvas.ProgressClient {
	return c.progress
}

// staticTokenManager provides a static token.
type staticTokenManager struct {
	token string
}

func (m *staticTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, nil
}

func (m *staticTokenManager) RefreshToken(ctx context.Context) error {
	return ErrStaticTokenCannotRefresh
}

func (m *staticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.token = token
}

// fallbackTokenManager serves the configured static token until a refresh is
// forced, then switches to the OAuth2 refresh flow for good.
type fallbackTokenManager struct {
	mutex        sync.Mutex
	staticToken  string
	oauthManager auth.TokenManager
	usingOAuth   bool
}

func (m *fallbackTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.usingOAuth && m.staticToken != "" {
		return m.staticToken, nil
	}

	m.usingOAuth = true

	token, err := m.oauthManager.GetToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get OAuth token: %w", err)
	}

	return token, nil
}

func (m *fallbackTokenManager) RefreshToken(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	// A static token cannot be renewed; switch to OAuth and fetch a fresh one
	if !m.usingOAuth {
		m.usingOAuth = true

		_, err := m.oauthManager.GetToken(ctx)
		if err != nil {
			return fmt.Errorf("failed to get OAuth token during refresh: %w", err)
		}

		return nil
	}

	err := m.oauthManager.RefreshToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh OAuth token: %w", err)
	}

	return nil
}

func (m *fallbackTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.usingOAuth {
		m.oauthManager.SetToken(token, expiresAt)
	} else {
		m.staticToken = token
	}
}

package canvasclient

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/edukit-io/canvas/internal/client"
	"github.com/edukit-io/canvas/internal/constants"
	"github.com/edukit-io/canvas/pkg/canvas"
)

// Static errors for err113 compliance.
var ErrSkipTLSOnlyInDev = errors.New("SkipTLSVerify is only allowed in development mode")

// New creates a new Canvas API client from the given configuration.
func New(config *canvas.Config) (canvas.Client, error) {
	if config == nil {
		return nil, canvas.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, canvas.ErrAPIEndpointRequired
	}

	// Normalize the instance URL
	apiEndpoint := strings.TrimSuffix(config.APIEndpoint, "/")
	if !strings.HasPrefix(apiEndpoint, "http://") && !strings.HasPrefix(apiEndpoint, "https://") {
		apiEndpoint = "https://" + apiEndpoint
	}

	config.APIEndpoint = apiEndpoint

	if config.SkipTLSVerify && !isDevelopmentEnvironment() {
		return nil, fmt.Errorf("%w (set CANVAS_DEV_MODE=true)", ErrSkipTLSOnlyInDev)
	}

	// Canvas serves its token endpoint from the instance itself, so no
	// discovery round trip is needed
	if needsAuth(config) && config.TokenURL == "" {
		config.TokenURL = apiEndpoint + constants.OAuthTokenPath
	}

	apiClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// needsAuth checks if the config requires the OAuth2 token endpoint.
func needsAuth(config *canvas.Config) bool {
	return config.ClientID != "" || config.RefreshToken != ""
}

// isDevelopmentEnvironment checks if we're in a development environment.
func isDevelopmentEnvironment() bool {
	devMode := os.Getenv("CANVAS_DEV_MODE")

	return devMode == "true" || devMode == "1"
}

// NewWithToken creates a client that authenticates with a manually issued
// access token.
func NewWithToken(endpoint, token string) (canvas.Client, error) {
	return New(&canvas.Config{
		APIEndpoint: endpoint,
		AccessToken: token,
	})
}

// NewWithClientCredentials creates a client that authenticates with the
// client_credentials grant.
func NewWithClientCredentials(endpoint, clientID, clientSecret string) (canvas.Client, error) {
	return New(&canvas.Config{
		APIEndpoint:  endpoint,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}

// NewWithRefreshToken creates a client that authenticates with the
// refresh_token grant.
func NewWithRefreshToken(endpoint, clientID, clientSecret, refreshToken string) (canvas.Client, error) {
	return New(&canvas.Config{
		APIEndpoint:  endpoint,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RefreshToken: refreshToken,
	})
}

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/edukit-io/canvas/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrNoValidCredentials = errors.New("no valid credentials available")
	ErrTokenRequestFailed = errors.New("token request failed")
)

// OAuth2Config holds the configuration for the OAuth2 token endpoint.
type OAuth2Config struct {
	// TokenURL is the full URL of the token endpoint,
	// e.g. https://canvas.example.edu/login/oauth2/token.
	TokenURL string

	// ClientID and ClientSecret identify the developer key.
	ClientID     string
	ClientSecret string

	// RefreshToken enables the refresh_token grant.
	RefreshToken string

	// Code and RedirectURI enable the authorization_code grant.
	Code        string
	RedirectURI string

	// AccessToken seeds the manager with an already issued token.
	AccessToken string

	// Scopes to request, for developer keys with scope enforcement.
	Scopes []string
}

// TokenManager manages access token lifecycle.
type TokenManager interface {
	// GetToken returns a valid access token, refreshing if necessary.
	GetToken(ctx context.Context) (string, error)
	// RefreshToken forces a token refresh.
	RefreshToken(ctx context.Context) error
	// SetToken manually sets the access token.
	SetToken(token string, expiresAt time.Time)
}

// OAuth2TokenManager implements TokenManager using the OAuth2 web flow
// grants the API supports: refresh_token, client_credentials, and
// authorization_code.
type OAuth2TokenManager struct {
	config     *OAuth2Config
	store      *TokenStore
	httpClient *http.Client
	mutex      sync.Mutex
}

// NewOAuth2TokenManager creates a new OAuth2 token manager.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	manager := &OAuth2TokenManager{
		config: config,
		store:  NewTokenStore(),
		httpClient: &http.Client{
			Timeout: constants.ShortHTTPTimeout,
		},
	}

	if config.AccessToken != "" {
		manager.store.Set(&Token{
			AccessToken:  config.AccessToken,
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		})
	}

	return manager
}

// NewCanvasTokenManager creates a token manager for an instance URL using
// client credentials, deriving the token endpoint from the instance URL.
func NewCanvasTokenManager(instanceURL, clientID, clientSecret string) *OAuth2TokenManager {
	return NewOAuth2TokenManager(&OAuth2Config{
		TokenURL:     strings.TrimSuffix(instanceURL, "/") + constants.OAuthTokenPath,
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}

// NewCanvasTokenManagerWithRefresh creates a token manager for an instance
// URL using a previously obtained refresh token.
func NewCanvasTokenManagerWithRefresh(instanceURL, clientID, clientSecret, refreshToken string) *OAuth2TokenManager {
	return NewOAuth2TokenManager(&OAuth2Config{
		TokenURL:     strings.TrimSuffix(instanceURL, "/") + constants.OAuthTokenPath,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RefreshToken: refreshToken,
	})
}

// GetToken returns a valid access token, obtaining or refreshing one first
// when the stored token is missing or expired.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	// Another goroutine may have refreshed while we waited
	token = m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	newToken, err := m.obtainToken(ctx, token)
	if err != nil {
		return "", err
	}

	m.store.Set(newToken)

	return newToken.AccessToken, nil
}

// RefreshToken forces a token refresh regardless of the stored token's state.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	newToken, err := m.obtainToken(ctx, m.store.Get())
	if err != nil {
		return err
	}

	m.store.Set(newToken)

	return nil
}

// SetToken manually sets the access token.
func (m *OAuth2TokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}

// obtainToken picks the first grant the configuration supports.
func (m *OAuth2TokenManager) obtainToken(ctx context.Context, current *Token) (*Token, error) {
	refreshToken := m.config.RefreshToken
	if current != nil && current.RefreshToken != "" {
		refreshToken = current.RefreshToken
	}

	switch {
	case refreshToken != "":
		return m.requestToken(ctx, url.Values{
			"grant_type":    []string{"refresh_token"},
			"refresh_token": []string{refreshToken},
		})
	case m.config.Code != "":
		values := url.Values{
			"grant_type": []string{"authorization_code"},
			"code":       []string{m.config.Code},
		}
		if m.config.RedirectURI != "" {
			values.Set("redirect_uri", m.config.RedirectURI)
		}

		return m.requestToken(ctx, values)
	case m.config.ClientID != "" && m.config.ClientSecret != "":
		values := url.Values{
			"grant_type": []string{"client_credentials"},
		}
		if len(m.config.Scopes) > 0 {
			values.Set("scope", strings.Join(m.config.Scopes, " "))
		}

		return m.requestToken(ctx, values)
	default:
		return nil, ErrNoValidCredentials
	}
}

// requestToken posts the grant to the token endpoint. Client credentials go
// in the form body, which is where the API expects them.
func (m *OAuth2TokenManager) requestToken(ctx context.Context, values url.Values) (*Token, error) {
	if m.config.ClientID != "" {
		values.Set("client_id", m.config.ClientID)
	}

	if m.config.ClientSecret != "" {
		values.Set("client_secret", m.config.ClientSecret)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.config.TokenURL, strings.NewReader(values.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute token request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var oauthErr struct {
			Error            string `json:"error"`
			ErrorDescription string `json:"error_description"`
		}

		if jsonErr := json.Unmarshal(body, &oauthErr); jsonErr == nil && oauthErr.Error != "" {
			return nil, fmt.Errorf("%w: %s: %s", ErrTokenRequestFailed, oauthErr.Error, oauthErr.ErrorDescription)
		}

		return nil, fmt.Errorf("%w: status %d", ErrTokenRequestFailed, resp.StatusCode)
	}

	var token Token

	err = json.Unmarshal(body, &token)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}

	if token.ExpiresIn > 0 {
		token.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	// The endpoint does not always echo the refresh token back
	if token.RefreshToken == "" {
		token.RefreshToken = m.config.RefreshToken
	}

	return &token, nil
}

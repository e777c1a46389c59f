package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOAuth2TokenManager_GetToken(t *testing.T) {
	t.Run("returns existing valid token", func(t *testing.T) {
		manager := NewOAuth2TokenManager(&OAuth2Config{
			AccessToken: "existing-token",
		})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "existing-token", token)
	})

	t.Run("refreshes expired token using refresh token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/login/oauth2/token", request.URL.Path)
			assert.Equal(t, "POST", request.Method)

			err := request.ParseForm()
			require.NoError(t, err)
			assert.Equal(t, "refresh_token", request.Form.Get("grant_type"))
			assert.Equal(t, "old-refresh-token", request.Form.Get("refresh_token"))
			assert.Equal(t, "client-id", request.Form.Get("client_id"))
			assert.Equal(t, "client-secret", request.Form.Get("client_secret"))

			response := Token{
				AccessToken: "new-access-token",
				ExpiresIn:   3600,
				TokenType:   "Bearer",
			}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		manager := NewOAuth2TokenManager(&OAuth2Config{
			TokenURL:     server.URL + "/login/oauth2/token",
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RefreshToken: "old-refresh-token",
		})

		// Set expired token
		manager.store.Set(&Token{
			AccessToken:  "expired-token",
			RefreshToken: "old-refresh-token",
			ExpiresAt:    time.Now().Add(-1 * time.Hour),
		})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "new-access-token", token)

		// Original refresh token is kept when the endpoint does not echo it
		stored := manager.store.Get()
		assert.Equal(t, "old-refresh-token", stored.RefreshToken)
	})

	t.Run("uses client credentials when no refresh token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)

			err := request.ParseForm()
			require.NoError(t, err)
			assert.Equal(t, "client_credentials", request.Form.Get("grant_type"))
			assert.Equal(t, "client-id", request.Form.Get("client_id"))
			assert.Equal(t, "client-secret", request.Form.Get("client_secret"))

			response := Token{
				AccessToken: "client-token",
				ExpiresIn:   3600,
				TokenType:   "Bearer",
			}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		manager := NewOAuth2TokenManager(&OAuth2Config{
			TokenURL:     server.URL + "/login/oauth2/token",
			ClientID:     "client-id",
			ClientSecret: "client-secret",
		})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "client-token", token)
	})

	t.Run("uses authorization code grant", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			err := request.ParseForm()
			require.NoError(t, err)
			assert.Equal(t, "authorization_code", request.Form.Get("grant_type"))
			assert.Equal(t, "auth-code", request.Form.Get("code"))
			assert.Equal(t, "https://app.example.com/callback", request.Form.Get("redirect_uri"))

			response := Token{
				AccessToken:  "code-token",
				RefreshToken: "code-refresh-token",
				ExpiresIn:    3600,
				TokenType:    "Bearer",
				User:         &TokenUser{ID: 42, Name: "Test Student"},
			}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		manager := NewOAuth2TokenManager(&OAuth2Config{
			TokenURL:     server.URL + "/login/oauth2/token",
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			Code:         "auth-code",
			RedirectURI:  "https://app.example.com/callback",
		})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "code-token", token)

		stored := manager.store.Get()
		require.NotNil(t, stored.User)
		assert.Equal(t, int64(42), stored.User.ID)
	})

	t.Run("handles token request error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusUnauthorized)

			response := map[string]string{
				"error":             "invalid_client",
				"error_description": "Client authentication failed",
			}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		manager := NewOAuth2TokenManager(&OAuth2Config{
			TokenURL:     server.URL + "/login/oauth2/token",
			ClientID:     "bad-client",
			ClientSecret: "bad-secret",
		})

		token, err := manager.GetToken(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid_client")
		assert.Contains(t, err.Error(), "Client authentication failed")
		assert.Equal(t, "", token)
	})

	t.Run("no credentials available", func(t *testing.T) {
		manager := NewOAuth2TokenManager(&OAuth2Config{
			TokenURL: "http://example.com/login/oauth2/token",
		})

		token, err := manager.GetToken(context.Background())
		require.ErrorIs(t, err, ErrNoValidCredentials)
		assert.Equal(t, "", token)
	})
}

func TestOAuth2TokenManager_SetToken(t *testing.T) {
	manager := NewOAuth2TokenManager(&OAuth2Config{})

	expiresAt := time.Now().Add(1 * time.Hour)
	manager.SetToken("manual-token", expiresAt)

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "manual-token", token)

	storedToken := manager.store.Get()
	assert.Equal(t, "manual-token", storedToken.AccessToken)
	assert.Equal(t, "Bearer", storedToken.TokenType)
	assert.Equal(t, expiresAt.Unix(), storedToken.ExpiresAt.Unix())
}

func TestOAuth2TokenManager_RefreshToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		response := Token{
			AccessToken: "refreshed-token",
			ExpiresIn:   3600,
			TokenType:   "Bearer",
		}
		_ = json.NewEncoder(writer).Encode(response)
	}))
	defer server.Close()

	manager := NewOAuth2TokenManager(&OAuth2Config{
		TokenURL:     server.URL + "/login/oauth2/token",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	})

	// Set a valid token
	manager.SetToken("current-token", time.Now().Add(1*time.Hour))

	// Force refresh
	err := manager.RefreshToken(context.Background())
	require.NoError(t, err)

	// Should have new token
	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refreshed-token", token)
}

func TestNewCanvasTokenManager(t *testing.T) {
	t.Run("derives token URL from instance URL", func(t *testing.T) {
		manager := NewCanvasTokenManager("https://canvas.example.edu", "client-id", "client-secret")
		assert.NotNil(t, manager)
		assert.Equal(t, "https://canvas.example.edu/login/oauth2/token", manager.config.TokenURL)
		assert.Equal(t, "client-id", manager.config.ClientID)
		assert.Equal(t, "client-secret", manager.config.ClientSecret)
	})

	t.Run("handles trailing slash in instance URL", func(t *testing.T) {
		manager := NewCanvasTokenManager("https://canvas.example.edu/", "client-id", "client-secret")
		assert.Equal(t, "https://canvas.example.edu/login/oauth2/token", manager.config.TokenURL)
	})
}

func TestNewCanvasTokenManagerWithRefresh(t *testing.T) {
	manager := NewCanvasTokenManagerWithRefresh(
		"https://canvas.example.edu",
		"client-id",
		"client-secret",
		"refresh-token",
	)

	assert.NotNil(t, manager)
	assert.Equal(t, "https://canvas.example.edu/login/oauth2/token", manager.config.TokenURL)
	assert.Equal(t, "refresh-token", manager.config.RefreshToken)
}

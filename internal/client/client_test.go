package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukit-io/canvas/internal/auth"
	"github.com/edukit-io/canvas/pkg/canvas"
)

func TestNew(t *testing.T) {
	t.Run("requires an API endpoint", func(t *testing.T) {
		_, err := New(&canvas.Config{})
		require.ErrorIs(t, err, ErrAPIEndpointRequired)
	})

	t.Run("wires all resource clients", func(t *testing.T) {
		client, err := New(&canvas.Config{APIEndpoint: "https://canvas.example.edu"})
		require.NoError(t, err)

		assert.NotNil(t, client.Accounts())
		assert.NotNil(t, client.Courses())
		assert.NotNil(t, client.Modules())
		assert.NotNil(t, client.Assignments())
		assert.NotNil(t, client.Submissions())
		assert.NotNil(t, client.Rubrics())
		assert.NotNil(t, client.Enrollments())
		assert.NotNil(t, client.Users())
		assert.NotNil(t, client.Sections())
		assert.NotNil(t, client.Files())
		assert.NotNil(t, client.Terms())
		assert.NotNil(t, client.Progress())
	})
}

func TestCreateTokenManager(t *testing.T) {
	tests := []struct {
		name   string
		config *canvas.Config
		check  func(t *testing.T, manager auth.TokenManager)
	}{
		{
			name:   "no credentials",
			config: &canvas.Config{APIEndpoint: "https://canvas.example.edu"},
			check: func(t *testing.T, manager auth.TokenManager) {
				t.Helper()
				assert.Nil(t, manager)
			},
		},
		{
			name: "access token only",
			config: &canvas.Config{
				APIEndpoint: "https://canvas.example.edu",
				AccessToken: "static-token",
			},
			check: func(t *testing.T, manager auth.TokenManager) {
				t.Helper()
				assert.IsType(t, &staticTokenManager{}, manager)
			},
		},
		{
			name: "client credentials only",
			config: &canvas.Config{
				APIEndpoint:  "https://canvas.example.edu",
				ClientID:     "client-id",
				ClientSecret: "client-secret",
			},
			check: func(t *testing.T, manager auth.TokenManager) {
				t.Helper()
				assert.IsType(t, &auth.OAuth2TokenManager{}, manager)
			},
		},
		{
			name: "access token with refresh fallback",
			config: &canvas.Config{
				APIEndpoint:  "https://canvas.example.edu",
				AccessToken:  "static-token",
				ClientID:     "client-id",
				ClientSecret: "client-secret",
				RefreshToken: "refresh-token",
			},
			check: func(t *testing.T, manager auth.TokenManager) {
				t.Helper()
				assert.IsType(t, &fallbackTokenManager{}, manager)
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.check(t, createTokenManager(testCase.config))
		})
	}
}

func TestStaticTokenManager(t *testing.T) {
	manager := &staticTokenManager{token: "static-token"}

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "static-token", token)

	require.ErrorIs(t, manager.RefreshToken(context.Background()), ErrStaticTokenCannotRefresh)

	manager.SetToken("replacement", time.Time{})

	token, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "replacement", token)
}

func TestFallbackTokenManager(t *testing.T) {
	var tokenRequests int

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		tokenRequests++

		require.NoError(t, request.ParseForm())
		assert.Equal(t, "refresh_token", request.Form.Get("grant_type"))

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"access_token": "oauth-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	defer server.Close()

	manager := createFallbackTokenManager(&canvas.Config{
		APIEndpoint:  server.URL,
		TokenURL:     server.URL + "/login/oauth2/token",
		AccessToken:  "static-token",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RefreshToken: "refresh-token",
	})

	// The static token is served without touching the token endpoint.
	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "static-token", token)
	assert.Equal(t, 0, tokenRequests)

	// A forced refresh switches to the OAuth flow permanently.
	require.NoError(t, manager.RefreshToken(context.Background()))

	token, err = manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "oauth-token", token)
	assert.Equal(t, 1, tokenRequests)
}

func TestGetTokenURL(t *testing.T) {
	t.Run("explicit token URL", func(t *testing.T) {
		url := getTokenURL(&canvas.Config{
			APIEndpoint: "https://canvas.example.edu",
			TokenURL:    "https://sso.example.edu/oauth2/token",
		})
		assert.Equal(t, "https://sso.example.edu/oauth2/token", url)
	})

	t.Run("derived from endpoint", func(t *testing.T) {
		url := getTokenURL(&canvas.Config{APIEndpoint: "https://canvas.example.edu"})
		assert.Equal(t, "https://canvas.example.edu/login/oauth2/token", url)
	})
}

func TestClient_GetSelf(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/users/self", request.URL.Path)

		_ = json.NewEncoder(writer).Encode(canvas.User{ID: 7, Name: "Current User"})
	}))
	defer server.Close()

	client, err := New(&canvas.Config{APIEndpoint: server.URL})
	require.NoError(t, err)

	user, err := client.GetSelf(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
}

func TestNewWithTokenManager(t *testing.T) {
	t.Run("requires an API endpoint", func(t *testing.T) {
		_, err := NewWithTokenManager(&canvas.Config{}, &staticTokenManager{token: "token"})
		require.ErrorIs(t, err, ErrAPIEndpointRequired)
	})

	t.Run("uses the provided manager", func(t *testing.T) {
		manager := &staticTokenManager{token: "token"}

		client, err := NewWithTokenManager(&canvas.Config{
			APIEndpoint: "https://canvas.example.edu",
		}, manager)
		require.NoError(t, err)
		assert.Same(t, manager, client.GetTokenManager())
	})
}

// An API 401 against the static token switches to the OAuth flow without an
// explicit refresh call.
func TestFallbackTokenManager_SwitchesOn401(t *testing.T) {
	var tokenRequests int

	tokenServer := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		tokenRequests++

		require.NoError(t, request.ParseForm())
		assert.Equal(t, "refresh_token", request.Form.Get("grant_type"))

		_ = json.NewEncoder(writer).Encode(map[string]interface{}{
			"access_token": "oauth-token",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	defer tokenServer.Close()

	var apiRequests int

	apiServer := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		apiRequests++

		if request.Header.Get("Authorization") == "Bearer expired-static-token" {
			writer.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"errors": []map[string]string{{"message": "Invalid access token."}},
			})

			return
		}

		assert.Equal(t, "Bearer oauth-token", request.Header.Get("Authorization"))
		_ = json.NewEncoder(writer).Encode(canvas.User{ID: 1, Name: "Test User"})
	}))
	defer apiServer.Close()

	client, err := New(&canvas.Config{
		APIEndpoint:  apiServer.URL,
		TokenURL:     tokenServer.URL + "/login/oauth2/token",
		AccessToken:  "expired-static-token",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RefreshToken: "refresh-token",
	})
	require.NoError(t, err)

	user, err := client.GetSelf(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, 2, apiRequests)
	assert.Equal(t, 1, tokenRequests)
}

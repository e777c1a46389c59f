package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	canvashttp "github.com/edukit-io/canvas/internal/http"
	"github.com/edukit-io/canvas/pkg/canvas"
)

var errTokenUnavailable = errors.New("token unavailable")

// MockTokenManager for testing.
type MockTokenManager struct {
	token string
	err   error
}

func (m *MockTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, m.err
}

func (m *MockTokenManager) RefreshToken(ctx context.Context) error {
	return nil
}

func (m *MockTokenManager) SetToken(token string, expiresAt time.Time) {
	m.token = token
}

// MockLogger for testing.
type MockLogger struct {
	logs []map[string]interface{}
}

func (l *MockLogger) Debug(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "debug", "msg": msg, "fields": fields})
}

func (l *MockLogger) Info(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "info", "msg": msg, "fields": fields})
}

func (l *MockLogger) Warn(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "warn", "msg": msg, "fields": fields})
}

func (l *MockLogger) Error(msg string, fields map[string]interface{}) {
	l.logs = append(l.logs, map[string]interface{}{"level": "error", "msg": msg, "fields": fields})
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_Do(t *testing.T) {
	t.Parallel()
	t.Run("successful request", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v1/courses/101", request.URL.Path)
			assert.Equal(t, "GET", request.Method)
			assert.Equal(t, "Bearer test-token", request.Header.Get("Authorization"))
			assert.Equal(t, "application/json", request.Header.Get("Accept"))

			response := map[string]interface{}{"id": 101, "name": "Biology 101"}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		tokenManager := &MockTokenManager{token: "test-token"}
		client := canvashttp.NewClient(server.URL, tokenManager)

		req := &canvashttp.Request{
			Method: "GET",
			Path:   "/api/v1/courses/101",
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result map[string]interface{}

		err = json.Unmarshal(resp.Body, &result)
		require.NoError(t, err)
		assert.InEpsilon(t, float64(101), result["id"], 0.001)
		assert.Equal(t, "Biology 101", result["name"])
	})

	t.Run("request with query parameters", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v1/courses", request.URL.Path)
			assert.Equal(t, "2", request.URL.Query().Get("page"))
			assert.Equal(t, "50", request.URL.Query().Get("per_page"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := canvashttp.NewClient(server.URL, nil)

		req := &canvashttp.Request{
			Method: "GET",
			Path:   "/api/v1/courses",
			Query:  url.Values{"page": []string{"2"}, "per_page": []string{"50"}},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("request with body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "POST", request.Method)
			assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

			var body map[string]map[string]string

			_ = json.NewDecoder(request.Body).Decode(&body)
			assert.Equal(t, "Biology 101", body["course"]["name"])

			writer.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		client := canvashttp.NewClient(server.URL, nil)

		req := &canvashttp.Request{
			Method: "POST",
			Path:   "/api/v1/accounts/1/courses",
			Body:   map[string]map[string]string{"course": {"name": "Biology 101"}},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)
	})

	t.Run("error response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)

			response := map[string]interface{}{
				"errors": []map[string]string{
					{"message": "The specified resource does not exist."},
				},
			}
			_ = json.NewEncoder(writer).Encode(response)
		}))
		defer server.Close()

		client := canvashttp.NewClient(server.URL, nil)

		req := &canvashttp.Request{
			Method: "GET",
			Path:   "/api/v1/courses/999",
		}

		resp, err := client.Do(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, 404, resp.StatusCode)

		errResp := &canvas.ResponseError{}
		ok := errors.As(err, &errResp)
		require.True(t, ok)
		assert.Len(t, errResp.Errors, 1)
		assert.Equal(t, "The specified resource does not exist.", errResp.Errors[0].Message)
		assert.True(t, canvas.IsNotFound(err))
	})

	t.Run("custom headers", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "custom-value", request.Header.Get("X-Custom-Header"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := canvashttp.NewClient(server.URL, nil)

		req := &canvashttp.Request{
			Method: "GET",
			Path:   "/api/v1/courses",
			Headers: map[string]string{
				"X-Custom-Header": "custom-value",
			},
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("absolute URL bypasses base URL", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/api/v1/courses", request.URL.Path)
			assert.Equal(t, "3", request.URL.Query().Get("page"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := canvashttp.NewClient("https://unused.example.edu", nil)

		req := &canvashttp.Request{
			Method: "GET",
			Path:   server.URL + "/api/v1/courses?page=3",
		}

		resp, err := client.Do(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("masquerade parameter", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "sis_user_id:jdoe", request.URL.Query().Get("as_user_id"))
			writer.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := canvashttp.NewClient(server.URL, nil, canvashttp.WithActAsUser("sis_user_id:jdoe"))

		resp, err := client.Get(context.Background(), "/api/v1/courses", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("with debug logging", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusOK)
			_ = json.NewEncoder(writer).Encode(map[string]string{"result": "ok"})
		}))
		defer server.Close()

		logger := &MockLogger{}
		client := canvashttp.NewClient(server.URL, nil, canvashttp.WithLogger(logger), canvashttp.WithDebug(true))

		req := &canvashttp.Request{
			Method: "GET",
			Path:   "/api/v1/courses",
		}

		_, err := client.Do(context.Background(), req)
		require.NoError(t, err)

		// Should have logged request and response
		assert.Len(t, logger.logs, 2)
		assert.Equal(t, "HTTP Request", logger.logs[0]["msg"])
		assert.Equal(t, "HTTP Response", logger.logs[1]["msg"])
	})

	t.Run("token manager error", func(t *testing.T) {
		t.Parallel()

		tokenManager := &MockTokenManager{err: errTokenUnavailable}
		client := canvashttp.NewClient("https://canvas.example.edu", tokenManager)

		_, err := client.Get(context.Background(), "/api/v1/courses", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get access token")
	})
}

func TestClient_Methods(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		fn     func(*canvashttp.Client, context.Context) (*canvashttp.Response, error)
	}{
		{
			name:   "GET",
			method: "GET",
			fn: func(c *canvashttp.Client, ctx context.Context) (*canvashttp.Response, error) {
				return c.Get(ctx, "/test", nil)
			},
		},
		{
			name:   "POST",
			method: "POST",
			fn: func(c *canvashttp.Client, ctx context.Context) (*canvashttp.Response, error) {
				return c.Post(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "PUT",
			method: "PUT",
			fn: func(c *canvashttp.Client, ctx context.Context) (*canvashttp.Response, error) {
				return c.Put(ctx, "/test", map[string]string{"key": "value"})
			},
		},
		{
			name:   "DELETE",
			method: "DELETE",
			fn: func(c *canvashttp.Client, ctx context.Context) (*canvashttp.Response, error) {
				return c.Delete(ctx, "/test")
			},
		},
		{
			name:   "DELETE with query",
			method: "DELETE",
			fn: func(c *canvashttp.Client, ctx context.Context) (*canvashttp.Response, error) {
				return c.DeleteWithQuery(ctx, "/test", url.Values{"event": []string{"conclude"}})
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.method, request.Method)
				assert.Equal(t, "/test", request.URL.Path)
				writer.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			client := canvashttp.NewClient(server.URL, nil)
			resp, err := testCase.fn(client, context.Background())
			require.NoError(t, err)
			assert.Equal(t, 200, resp.StatusCode)
		})
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClient_RetryLogic(t *testing.T) {
	t.Parallel()
	t.Run("retries on 5xx errors", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++
			if attempts < 3 {
				writer.WriteHeader(http.StatusInternalServerError)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := canvashttp.NewClient(server.URL, nil, canvashttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, 3, attempts)
	})

	t.Run("retries on rate limiting", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++
			if attempts < 2 {
				writer.WriteHeader(http.StatusTooManyRequests)
			} else {
				writer.WriteHeader(http.StatusOK)
			}
		}))
		defer server.Close()

		client := canvashttp.NewClient(server.URL, nil, canvashttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, 2, attempts)
	})

	t.Run("does not retry on client errors", func(t *testing.T) {
		t.Parallel()

		attempts := 0

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			attempts++

			writer.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := canvashttp.NewClient(server.URL, nil, canvashttp.WithRetryConfig(3, 10*time.Millisecond, 100*time.Millisecond))

		resp, err := client.Get(context.Background(), "/test", nil)
		require.Error(t, err)
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, 1, attempts) // Should not retry
	})
}

func TestClient_UploadMultipart(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)
		assert.Empty(t, request.Header.Get("Authorization"))
		assert.Contains(t, request.Header.Get("Content-Type"), "multipart/form-data")

		err := request.ParseMultipartForm(1 << 20)
		require.NoError(t, err)
		assert.Equal(t, "signed-value", request.FormValue("key"))

		file, header, err := request.FormFile("file")
		require.NoError(t, err)

		defer func() { _ = file.Close() }()

		assert.Equal(t, "essay.txt", header.Filename)

		contents, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "file contents", string(contents))

		writer.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(writer).Encode(map[string]interface{}{"id": 55, "display_name": "essay.txt"})
	}))
	defer server.Close()

	tokenManager := &MockTokenManager{token: "should-not-be-sent"}
	client := canvashttp.NewClient("https://canvas.example.edu", tokenManager)

	params := map[string]string{"key": "signed-value"}

	resp, err := client.UploadMultipart(context.Background(), server.URL+"/upload", params, "essay.txt", strings.NewReader("file contents"))
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
}

// refreshingTokenManager swaps to a fresh token when refreshed.
type refreshingTokenManager struct {
	token     string
	refreshed int
}

func (m *refreshingTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, nil
}

func (m *refreshingTokenManager) RefreshToken(ctx context.Context) error {
	m.refreshed++
	m.token = "fresh-token"

	return nil
}

func (m *refreshingTokenManager) SetToken(token string, expiresAt time.Time) {
	m.token = token
}

// pinnedTokenManager cannot obtain a new token.
type pinnedTokenManager struct {
	token string
}

func (m *pinnedTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, nil
}

func (m *pinnedTokenManager) RefreshToken(ctx context.Context) error {
	return errTokenUnavailable
}

func (m *pinnedTokenManager) SetToken(token string, expiresAt time.Time) {
	m.token = token
}

func TestClient_Do_RefreshOn401(t *testing.T) {
	t.Parallel()

	t.Run("expired token is refreshed and the request replayed", func(t *testing.T) {
		t.Parallel()

		var requests int

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requests++

			if request.Header.Get("Authorization") != "Bearer fresh-token" {
				writer.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(writer).Encode(map[string]interface{}{
					"errors": []map[string]string{{"message": "Invalid access token."}},
				})

				return
			}

			_ = json.NewEncoder(writer).Encode(map[string]interface{}{"id": 1})
		}))
		defer server.Close()

		manager := &refreshingTokenManager{token: "expired-token"}
		client := canvashttp.NewClient(server.URL, manager)

		resp, err := client.Do(context.Background(), &canvashttp.Request{
			Method: "GET",
			Path:   "/api/v1/users/self",
		})
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 2, requests)
		assert.Equal(t, 1, manager.refreshed)
	})

	t.Run("non-refreshable token surfaces the 401", func(t *testing.T) {
		t.Parallel()

		var requests int

		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requests++
			writer.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(writer).Encode(map[string]interface{}{
				"errors": []map[string]string{{"message": "Invalid access token."}},
			})
		}))
		defer server.Close()

		client := canvashttp.NewClient(server.URL, &pinnedTokenManager{token: "revoked-token"})

		_, err := client.Do(context.Background(), &canvashttp.Request{
			Method: "GET",
			Path:   "/api/v1/users/self",
		})
		require.Error(t, err)
		assert.True(t, canvas.IsUnauthorized(err))
		assert.Equal(t, 1, requests)
	})
}

package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukit-io/canvas/pkg/canvas"
)

func TestFilesClient_UploadToCourse(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)

	defer server.Close()

	// Step 1: declare the upload
	mux.HandleFunc("/api/v1/courses/101/files", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)

		var req canvas.FileUploadRequest

		_ = json.NewDecoder(request.Body).Decode(&req)
		assert.Equal(t, "essay.txt", req.Name)
		assert.Equal(t, int64(13), req.Size)

		_ = json.NewEncoder(writer).Encode(canvas.FileUploadTarget{
			UploadURL:    server.URL + "/storage/upload",
			UploadParams: map[string]string{"key": "signed-value"},
		})
	})

	// Step 2: receive the bytes
	mux.HandleFunc("/storage/upload", func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)
		assert.Empty(t, request.Header.Get("Authorization"))

		err := request.ParseMultipartForm(1 << 20)
		require.NoError(t, err)
		assert.Equal(t, "signed-value", request.FormValue("key"))

		file, header, err := request.FormFile("file")
		require.NoError(t, err)

		defer func() { _ = file.Close() }()

		assert.Equal(t, "essay.txt", header.Filename)

		contents, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "file contents\n", string(contents))

		writer.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(writer).Encode(canvas.File{ID: 55, DisplayName: "essay.txt", Size: 13})
	})

	client, err := New(&canvas.Config{APIEndpoint: server.URL, AccessToken: "test-token"})
	require.NoError(t, err)

	file, err := client.Files().UploadToCourse(context.Background(), 101, &canvas.FileUploadRequest{
		Name: "essay.txt",
		Size: 13,
	}, strings.NewReader("file contents\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(55), file.ID)
	assert.Equal(t, "essay.txt", file.DisplayName)
}

func TestFilesClient_UploadToUser_InvalidRequest(t *testing.T) {
	client, err := New(&canvas.Config{APIEndpoint: "https://canvas.example.edu"})
	require.NoError(t, err)

	_, err = client.Files().UploadToUser(context.Background(), 7, &canvas.FileUploadRequest{}, strings.NewReader(""))
	require.Error(t, err)
}

func TestFilesClient_ListForCourse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/courses/101/files", request.URL.Path)

		_ = json.NewEncoder(writer).Encode([]canvas.File{
			{ID: 55, DisplayName: "essay.txt", ContentType: "text/plain"},
		})
	}))
	defer server.Close()

	client, err := New(&canvas.Config{APIEndpoint: server.URL})
	require.NoError(t, err)

	page, err := client.Files().ListForCourse(context.Background(), 101, nil)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "text/plain", page.Items[0].ContentType)
}

func TestFilesClient_GetAndDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/files/55", request.URL.Path)

		_ = json.NewEncoder(writer).Encode(canvas.File{ID: 55, DisplayName: "essay.txt"})
	}))
	defer server.Close()

	client, err := New(&canvas.Config{APIEndpoint: server.URL})
	require.NoError(t, err)

	file, err := client.Files().Get(context.Background(), 55)
	require.NoError(t, err)
	assert.Equal(t, int64(55), file.ID)

	deleted, err := client.Files().Delete(context.Background(), 55)
	require.NoError(t, err)
	assert.Equal(t, "essay.txt", deleted.DisplayName)
}

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukit-io/canvas/pkg/canvas"
)

func TestSectionsClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/courses/101/sections", request.URL.Path)

		_ = json.NewEncoder(writer).Encode([]canvas.Section{
			{ID: 31, Name: "Section A", CourseID: 101},
			{ID: 32, Name: "Section B", CourseID: 101},
		})
	}))
	defer server.Close()

	client, err := New(&canvas.Config{APIEndpoint: server.URL})
	require.NoError(t, err)

	page, err := client.Sections().List(context.Background(), 101, nil)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, "Section B", page.Items[1].Name)
}

func TestSectionsClient_Create(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "POST", request.Method)
		assert.Equal(t, "/api/v1/courses/101/sections", request.URL.Path)

		var req canvas.SectionCreateRequest

		_ = json.NewDecoder(request.Body).Decode(&req)
		assert.Equal(t, "Section C", req.CourseSection.Name)

		_ = json.NewEncoder(writer).Encode(canvas.Section{ID: 33, Name: req.CourseSection.Name, CourseID: 101})
	}))
	defer server.Close()

	client, err := New(&canvas.Config{APIEndpoint: server.URL})
	require.NoError(t, err)

	section, err := client.Sections().Create(context.Background(), 101, &canvas.SectionCreateRequest{
		CourseSection: canvas.SectionParams{Name: "Section C"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(33), section.ID)
}

func TestSectionsClient_Create_MissingName(t *testing.T) {
	client, err := New(&canvas.Config{APIEndpoint: "https://canvas.example.edu"})
	require.NoError(t, err)

	_, err = client.Sections().Create(context.Background(), 101, &canvas.SectionCreateRequest{})
	require.ErrorIs(t, err, canvas.ErrSectionNameRequired)
}

func TestSectionsClient_GetUpdateDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/sections/31", request.URL.Path)

		switch request.Method {
		case "GET":
			_ = json.NewEncoder(writer).Encode(canvas.Section{ID: 31, Name: "Section A"})
		case "PUT":
			_ = json.NewEncoder(writer).Encode(canvas.Section{ID: 31, Name: "Section A (Lab)"})
		case "DELETE":
			_ = json.NewEncoder(writer).Encode(canvas.Section{ID: 31, Name: "Section A (Lab)"})
		default:
			t.Errorf("unexpected method %s", request.Method)
		}
	}))
	defer server.Close()

	client, err := New(&canvas.Config{APIEndpoint: server.URL})
	require.NoError(t, err)

	section, err := client.Sections().Get(context.Background(), 31)
	require.NoError(t, err)
	assert.Equal(t, "Section A", section.Name)

	section, err = client.Sections().Update(context.Background(), 31, &canvas.SectionUpdateRequest{
		CourseSection: canvas.SectionParams{Name: "Section A (Lab)"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Section A (Lab)", section.Name)

	deleted, err := client.Sections().Delete(context.Background(), 31)
	require.NoError(t, err)
	assert.Equal(t, int64(31), deleted.ID)
}

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

func TestModulesClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/courses/101/modules", request.URL.Path)

		_ = json.NewEncoder(writer).Encode([]canvas.Module{
			{ID: 11, Name: "Week 1", Position: 1},
			{ID: 12, Name: "Week 2", Position: 2},
		})
	}))
	defer server.Close()

	client, err := New(&canvas.Config{APIEndpoint: server.URL})
	require.NoError(t, err)

	page, err := client.Modules().List(context.Background(), 101, nil)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, "Week 1", page.Items[0].Name)
}

func TestModulesClient_CreateAndDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		switch request.Method {
		case "POST":
			assert.Equal(t, "/api/v1/courses/101/modules", request.URL.Path)

			var req canvas.ModuleCreateRequest

			_ = json.NewDecoder(request.Body).Decode(&req)
			assert.Equal(t, "Week 1", req.Module.Name)

			_ = json.NewEncoder(writer).Encode(canvas.Module{ID: 11, Name: req.Module.Name})
		case "DELETE":
			assert.Equal(t, "/api/v1/courses/101/modules/11", request.URL.Path)
			_ = json.NewEncoder(writer).Encode(canvas.Module{ID: 11})
		default:
			t.Errorf("unexpected method %s", request.Method)
		}
	}))
	defer server.Close()

	client, err := New(&canvas.Config{APIEndpoint: server.URL})
	require.NoError(t, err)

	module, err := client.Modules().Create(context.Background(), 101, &canvas.ModuleCreateRequest{
		Module: canvas.ModuleParams{Name: "Week 1"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), module.ID)

	require.NoError(t, client.Modules().Delete(context.Background(), 101, 11))
}

func TestModulesClient_CreateItem(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/courses/101/modules/11/items", request.URL.Path)
		assert.Equal(t, "POST", request.Method)

		var req canvas.ModuleItemCreateRequest

		_ = json.NewDecoder(request.Body).Decode(&req)
		assert.Equal(t, canvas.ModuleItemTypeAssignment, req.ModuleItem.Type)
		assert.Equal(t, int64(21), req.ModuleItem.ContentID)

		_ = json.NewEncoder(writer).Encode(canvas.ModuleItem{
			ID:        111,
			ModuleID:  11,
			Type:      canvas.ModuleItemTypeAssignment,
			ContentID: 21,
		})
	}))
	defer server.Close()

	client, err := New(&canvas.Config{APIEndpoint: server.URL})
	require.NoError(t, err)

	item, err := client.Modules().CreateItem(context.Background(), 101, 11, &canvas.ModuleItemCreateRequest{
		ModuleItem: canvas.ModuleItemParams{
			Type:      canvas.ModuleItemTypeAssignment,
			ContentID: 21,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(111), item.ID)
}

func TestModulesClient_CreateItem_MissingContent(t *testing.T) {
	client, err := New(&canvas.Config{APIEndpoint: "https://canvas.example.edu"})
	require.NoError(t, err)

	_, err = client.Modules().CreateItem(context.Background(), 101, 11, &canvas.ModuleItemCreateRequest{
		ModuleItem: canvas.ModuleItemParams{Type: canvas.ModuleItemTypeAssignment},
	})
	require.ErrorIs(t, err, canvas.ErrContentIDRequired)
}

func TestModulesClient_ListItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/courses/101/modules/11/items", request.URL.Path)

		_ = json.NewEncoder(writer).Encode([]canvas.ModuleItem{
			{ID: 111, Type: canvas.ModuleItemTypeAssignment},
			{ID: 112, Type: canvas.ModuleItemTypePage, PageURL: "syllabus"},
		})
	}))
	defer server.Close()

	client, err := New(&canvas.Config{APIEndpoint: server.URL})
	require.NoError(t, err)

	page, err := client.Modules().ListItems(context.Background(), 101, 11, nil)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, "syllabus", page.Items[1].PageURL)
}

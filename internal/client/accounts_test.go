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

func TestAccountsClient_List(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/accounts", request.URL.Path)

		_ = json.NewEncoder(writer).Encode([]canvas.Account{
			{ID: 1, Name: "Root Account"},
			{ID: 2, Name: "School of Science"},
		})
	}))
	defer server.Close()

	client, err := New(&canvas.Config{APIEndpoint: server.URL})
	require.NoError(t, err)

	page, err := client.Accounts().List(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, "Root Account", page.Items[0].Name)
}

func TestAccountsClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/accounts/2", request.URL.Path)

		parentID := int64(1)

		_ = json.NewEncoder(writer).Encode(canvas.Account{
			ID:              2,
			Name:            "School of Science",
			ParentAccountID: &parentID,
		})
	}))
	defer server.Close()

	client, err := New(&canvas.Config{APIEndpoint: server.URL})
	require.NoError(t, err)

	account, err := client.Accounts().Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "School of Science", account.Name)
	require.NotNil(t, account.ParentAccountID)
	assert.Equal(t, int64(1), *account.ParentAccountID)
}

func TestAccountsClient_Update(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "PUT", request.Method)
		assert.Equal(t, "/api/v1/accounts/2", request.URL.Path)

		var body map[string]map[string]string

		_ = json.NewDecoder(request.Body).Decode(&body)
		assert.Equal(t, "Renamed Account", body["account"]["name"])

		_ = json.NewEncoder(writer).Encode(canvas.Account{ID: 2, Name: body["account"]["name"]})
	}))
	defer server.Close()

	client, err := New(&canvas.Config{APIEndpoint: server.URL})
	require.NoError(t, err)

	account, err := client.Accounts().Update(context.Background(), 2, "Renamed Account")
	require.NoError(t, err)
	assert.Equal(t, "Renamed Account", account.Name)
}

func TestAccountsClient_ListSubAccounts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/accounts/1/sub_accounts", request.URL.Path)

		_ = json.NewEncoder(writer).Encode([]canvas.Account{{ID: 2, Name: "School of Science"}})
	}))
	defer server.Close()

	client, err := New(&canvas.Config{APIEndpoint: server.URL})
	require.NoError(t, err)

	page, err := client.Accounts().ListSubAccounts(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
}

func TestAccountsClient_GetTermsOfService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/accounts/1/terms_of_service", request.URL.Path)

		_ = json.NewEncoder(writer).Encode(canvas.TermsOfService{
			ID:        5,
			TermsType: "default",
			AccountID: 1,
		})
	}))
	defer server.Close()

	client, err := New(&canvas.Config{APIEndpoint: server.URL})
	require.NoError(t, err)

	terms, err := client.Accounts().GetTermsOfService(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "default", terms.TermsType)
}

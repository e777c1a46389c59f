package client

import (
	"context"
	"fmt"

	"github.com/edukit-io/canvas/internal/constants"
	internalhttp "github.com/edukit-io/canvas/internal/http"
	"github.com/edukit-io/canvas/pkg/canvas"
)

// AccountsClient implements canvas.AccountsClient.
type AccountsClient struct {
	httpClient *internalhttp.Client
}

// NewAccountsClient creates a new accounts client.
func NewAccountsClient(httpClient *internalhttp.Client) *AccountsClient {
	return &AccountsClient{httpClient: httpClient}
}

// List implements canvas.AccountsClient.List.
func (c *AccountsClient) List(ctx context.Context, params *canvas.ListParams) (*canvas.Page[canvas.Account], error) {
	page, err := fetchPage[canvas.Account](ctx, c.httpClient, constants.APIPathAccounts, params)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}

	return page, nil
}

// Get implements canvas.AccountsClient.Get.
func (c *AccountsClient) Get(ctx context.Context, accountID int64) (*canvas.Account, error) {
	if accountID <= 0 {
		return nil, canvas.ErrAccountIDRequired
	}

	path := fmt.Sprintf("%s/%d", constants.APIPathAccounts, accountID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting account: %w", err)
	}

	return decodeResource[canvas.Account](resp.Body, "account")
}

// Update implements canvas.AccountsClient.Update.
func (c *AccountsClient) Update(ctx context.Context, accountID int64, name string) (*canvas.Account, error) {
	if accountID <= 0 {
		return nil, canvas.ErrAccountIDRequired
	}

	path := fmt.Sprintf("%s/%d", constants.APIPathAccounts, accountID)
	body := map[string]map[string]string{"account": {"name": name}}

	resp, err := c.httpClient.Put(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("updating account: %w", err)
	}

	return decodeResource[canvas.Account](resp.Body, "account")
}

// ListSubAccounts implements canvas.AccountsClient.ListSubAccounts.
func (c *AccountsClient) ListSubAccounts(ctx context.Context, accountID int64, params *canvas.ListParams) (*canvas.Page[canvas.Account], error) {
	if accountID <= 0 {
		return nil, canvas.ErrAccountIDRequired
	}

	path := fmt.Sprintf("%s/%d/sub_accounts", constants.APIPathAccounts, accountID)

	page, err := fetchPage[canvas.Account](ctx, c.httpClient, path, params)
	if err != nil {
		return nil, fmt.Errorf("listing sub-accounts: %w", err)
	}

	return page, nil
}

// ListCourses implements canvas.AccountsClient.ListCourses.
func (c *AccountsClient) ListCourses(ctx context.Context, accountID int64, params *canvas.ListParams) (*canvas.Page[canvas.Course], error) {
	if accountID <= 0 {
		return nil, canvas.ErrAccountIDRequired
	}

	path := fmt.Sprintf("%s/%d/courses", constants.APIPathAccounts, accountID)

	page, err := fetchPage[canvas.Course](ctx, c.httpClient, path, params)
	if err != nil {
		return nil, fmt.Errorf("listing account courses: %w", err)
	}

	return page, nil
}

// GetTermsOfService implements canvas.AccountsClient.GetTermsOfService.
func (c *AccountsClient) GetTermsOfService(ctx context.Context, accountID int64) (*canvas.TermsOfService, error) {
	if accountID <= 0 {
		return nil, canvas.ErrAccountIDRequired
	}

	path := fmt.Sprintf("%s/%d/terms_of_service", constants.APIPathAccounts, accountID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting terms of service: %w", err)
	}

	return decodeResource[canvas.TermsOfService](resp.Body, "terms of service")
}

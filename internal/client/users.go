package client

import (
	"context"
	"fmt"

	"github.com/edukit-io/canvas/internal/constants"
	internalhttp "github.com/edukit-io/canvas/internal/http"
	"github.com/edukit-io/canvas/pkg/canvas"
)

// UsersClient implements canvas.UsersClient.
type UsersClient struct {
	httpClient *internalhttp.Client
}

// NewUsersClient creates a new users client.
func NewUsersClient(httpClient *internalhttp.Client) *UsersClient {
	return &UsersClient{httpClient: httpClient}
}

// GetSelf implements canvas.UsersClient.GetSelf.
func (c *UsersClient) GetSelf(ctx context.Context) (*canvas.User, error) {
	resp, err := c.httpClient.Get(ctx, constants.APIPathUsers+"/self", nil)
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	return decodeResource[canvas.User](resp.Body, "user")
}

// Get implements canvas.UsersClient.Get.
func (c *UsersClient) Get(ctx context.Context, userID int64) (*canvas.User, error) {
	if userID <= 0 {
		return nil, canvas.ErrUserIDRequired
	}

	path := fmt.Sprintf("%s/%d", constants.APIPathUsers, userID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return decodeResource[canvas.User](resp.Body, "user")
}

// ListForAccount implements canvas.UsersClient.ListForAccount.
func (c *UsersClient) ListForAccount(ctx context.Context, accountID int64, params *canvas.ListParams) (*canvas.Page[canvas.User], error) {
	if accountID <= 0 {
		return nil, canvas.ErrAccountIDRequired
	}

	path := fmt.Sprintf("%s/%d/users", constants.APIPathAccounts, accountID)

	page, err := fetchPage[canvas.User](ctx, c.httpClient, path, params)
	if err != nil {
		return nil, fmt.Errorf("listing account users: %w", err)
	}

	return page, nil
}

// Create implements canvas.UsersClient.Create.
func (c *UsersClient) Create(ctx context.Context, accountID int64, request *canvas.UserCreateRequest) (*canvas.User, error) {
	if accountID <= 0 {
		return nil, canvas.ErrAccountIDRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%d/users", constants.APIPathAccounts, accountID)

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return decodeResource[canvas.User](resp.Body, "user")
}

// Update implements canvas.UsersClient.Update.
func (c *UsersClient) Update(ctx context.Context, userID int64, request *canvas.UserUpdateRequest) (*canvas.User, error) {
	if userID <= 0 {
		return nil, canvas.ErrUserIDRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%d", constants.APIPathUsers, userID)

	resp, err := c.httpClient.Put(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return decodeResource[canvas.User](resp.Body, "user")
}

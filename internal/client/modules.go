package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/edukit-io/canvas/internal/constants"
	internalhttp "github.com/edukit-io/canvas/internal/http"
	"github.com/edukit-io/canvas/pkg/canvas"
)

// ModulesClient implements canvas.ModulesClient.
type ModulesClient struct {
	httpClient *internalhttp.Client
}

// NewModulesClient creates a new modules client.
func NewModulesClient(httpClient *internalhttp.Client) *ModulesClient {
	return &ModulesClient{httpClient: httpClient}
}

// List implements canvas.ModulesClient.List.
func (c *ModulesClient) List(ctx context.Context, courseID int64, params *canvas.ListParams) (*canvas.Page[canvas.Module], error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	path := fmt.Sprintf("%s/%d/modules", constants.APIPathCourses, courseID)

	page, err := fetchPage[canvas.Module](ctx, c.httpClient, path, params)
	if err != nil {
		return nil, fmt.Errorf("listing modules: %w", err)
	}

	return page, nil
}

// Get implements canvas.ModulesClient.Get.
func (c *ModulesClient) Get(ctx context.Context, courseID, moduleID int64, include ...string) (*canvas.Module, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	if moduleID <= 0 {
		return nil, canvas.ErrModuleIDRequired
	}

	path := fmt.Sprintf("%s/%d/modules/%d", constants.APIPathCourses, courseID, moduleID)

	var query url.Values

	if len(include) > 0 {
		query = url.Values{"include[]": include}
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting module: %w", err)
	}

	return decodeResource[canvas.Module](resp.Body, "module")
}

// Create implements canvas.ModulesClient.Create.
func (c *ModulesClient) Create(ctx context.Context, courseID int64, request *canvas.ModuleCreateRequest) (*canvas.Module, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%d/modules", constants.APIPathCourses, courseID)

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating module: %w", err)
	}

	return decodeResource[canvas.Module](resp.Body, "module")
}

// Update implements canvas.ModulesClient.Update.
func (c *ModulesClient) Update(ctx context.Context, courseID, moduleID int64, request *canvas.ModuleUpdateRequest) (*canvas.Module, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	if moduleID <= 0 {
		return nil, canvas.ErrModuleIDRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%d/modules/%d", constants.APIPathCourses, courseID, moduleID)

	resp, err := c.httpClient.Put(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating module: %w", err)
	}

	return decodeResource[canvas.Module](resp.Body, "module")
}

// Delete implements canvas.ModulesClient.Delete.
func (c *ModulesClient) Delete(ctx context.Context, courseID, moduleID int64) error {
	if courseID <= 0 {
		return canvas.ErrCourseIDRequired
	}

	if moduleID <= 0 {
		return canvas.ErrModuleIDRequired
	}

	path := fmt.Sprintf("%s/%d/modules/%d", constants.APIPathCourses, courseID, moduleID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting module: %w", err)
	}

	return nil
}

// ListItems implements canvas.ModulesClient.ListItems.
func (c *ModulesClient) ListItems(ctx context.Context, courseID, moduleID int64, params *canvas.ListParams) (*canvas.Page[canvas.ModuleItem], error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	if moduleID <= 0 {
		return nil, canvas.ErrModuleIDRequired
	}

	path := fmt.Sprintf("%s/%d/modules/%d/items", constants.APIPathCourses, courseID, moduleID)

	page, err := fetchPage[canvas.ModuleItem](ctx, c.httpClient, path, params)
	if err != nil {
		return nil, fmt.Errorf("listing module items: %w", err)
	}

	return page, nil
}

// GetItem implements canvas.ModulesClient.GetItem.
func (c *ModulesClient) GetItem(ctx context.Context, courseID, moduleID, itemID int64) (*canvas.ModuleItem, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	if moduleID <= 0 {
		return nil, canvas.ErrModuleIDRequired
	}

	if itemID <= 0 {
		return nil, canvas.ErrModuleItemIDRequired
	}

	path := fmt.Sprintf("%s/%d/modules/%d/items/%d", constants.APIPathCourses, courseID, moduleID, itemID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting module item: %w", err)
	}

	return decodeResource[canvas.ModuleItem](resp.Body, "module item")
}

// CreateItem implements canvas.ModulesClient.CreateItem.
func (c *ModulesClient) CreateItem(ctx context.Context, courseID, moduleID int64, request *canvas.ModuleItemCreateRequest) (*canvas.ModuleItem, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	if moduleID <= 0 {
		return nil, canvas.ErrModuleIDRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%d/modules/%d/items", constants.APIPathCourses, courseID, moduleID)

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating module item: %w", err)
	}

	return decodeResource[canvas.ModuleItem](resp.Body, "module item")
}

// UpdateItem implements canvas.ModulesClient.UpdateItem.
func (c *ModulesClient) UpdateItem(ctx context.Context, courseID, moduleID, itemID int64, request *canvas.ModuleItemUpdateRequest) (*canvas.ModuleItem, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	if moduleID <= 0 {
		return nil, canvas.ErrModuleIDRequired
	}

	if itemID <= 0 {
		return nil, canvas.ErrModuleItemIDRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%d/modules/%d/items/%d", constants.APIPathCourses, courseID, moduleID, itemID)

	resp, err := c.httpClient.Put(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating module item: %w", err)
	}

	return decodeResource[canvas.ModuleItem](resp.Body, "module item")
}

// DeleteItem implements canvas.ModulesClient.DeleteItem.
func (c *ModulesClient) DeleteItem(ctx context.Context, courseID, moduleID, itemID int64) error {
	if courseID <= 0 {
		return canvas.ErrCourseIDRequired
	}

	if moduleID <= 0 {
		return canvas.ErrModuleIDRequired
	}

	if itemID <= 0 {
		return canvas.ErrModuleItemIDRequired
	}

	path := fmt.Sprintf("%s/%d/modules/%d/items/%d", constants.APIPathCourses, courseID, moduleID, itemID)

	_, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return fmt.Errorf("deleting module item: %w", err)
	}

	return nil
}

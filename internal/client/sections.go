package client

import (
	"context"
	"fmt"

	"github.com/edukit-io/canvas/internal/constants"
	internalhttp "github.com/edukit-io/canvas/internal/http"
	"github.com/edukit-io/canvas/pkg/canvas"
)

// SectionsClient implements canvas.SectionsClient.
type SectionsClient struct {
	httpClient *internalhttp.Client
}

// NewSectionsClient creates a new sections client.
func NewSectionsClient(httpClient *internalhttp.Client) *SectionsClient {
	return &SectionsClient{httpClient: httpClient}
}

// List implements canvas.SectionsClient.List.
func (c *SectionsClient) List(ctx context.Context, courseID int64, params *canvas.ListParams) (*canvas.Page[canvas.Section], error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	path := fmt.Sprintf("%s/%d/sections", constants.APIPathCourses, courseID)

	page, err := fetchPage[canvas.Section](ctx, c.httpClient, path, params)
	if err != nil {
		return nil, fmt.Errorf("listing sections: %w", err)
	}

	return page, nil
}

// Get implements canvas.SectionsClient.Get.
func (c *SectionsClient) Get(ctx context.Context, sectionID int64) (*canvas.Section, error) {
	if sectionID <= 0 {
		return nil, canvas.ErrSectionIDRequired
	}

	path := fmt.Sprintf("/api/v1/sections/%d", sectionID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting section: %w", err)
	}

	return decodeResource[canvas.Section](resp.Body, "section")
}

// Create implements canvas.SectionsClient.Create.
func (c *SectionsClient) Create(ctx context.Context, courseID int64, request *canvas.SectionCreateRequest) (*canvas.Section, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%d/sections", constants.APIPathCourses, courseID)

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating section: %w", err)
	}

	return decodeResource[canvas.Section](resp.Body, "section")
}

// Update implements canvas.SectionsClient.Update.
func (c *SectionsClient) Update(ctx context.Context, sectionID int64, request *canvas.SectionUpdateRequest) (*canvas.Section, error) {
	if sectionID <= 0 {
		return nil, canvas.ErrSectionIDRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/api/v1/sections/%d", sectionID)

	resp, err := c.httpClient.Put(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating section: %w", err)
	}

	return decodeResource[canvas.Section](resp.Body, "section")
}

// Delete implements canvas.SectionsClient.Delete.
func (c *SectionsClient) Delete(ctx context.Context, sectionID int64) (*canvas.Section, error) {
	if sectionID <= 0 {
		return nil, canvas.ErrSectionIDRequired
	}

	path := fmt.Sprintf("/api/v1/sections/%d", sectionID)

	resp, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("deleting section: %w", err)
	}

	return decodeResource[canvas.Section](resp.Body, "section")
}

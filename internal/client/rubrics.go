package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/edukit-io/canvas/internal/constants"
	internalhttp "github.com/edukit-io/canvas/internal/http"
	"github.com/edukit-io/canvas/pkg/canvas"
)

// RubricsClient implements canvas.RubricsClient.
type RubricsClient struct {
	httpClient *internalhttp.Client
}

// NewRubricsClient creates a new rubrics client.
func NewRubricsClient(httpClient *internalhttp.Client) *RubricsClient {
	return &RubricsClient{httpClient: httpClient}
}

// List implements canvas.RubricsClient.List.
func (c *RubricsClient) List(ctx context.Context, courseID int64, params *canvas.ListParams) (*canvas.Page[canvas.Rubric], error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	path := fmt.Sprintf("%s/%d/rubrics", constants.APIPathCourses, courseID)

	page, err := fetchPage[canvas.Rubric](ctx, c.httpClient, path, params)
	if err != nil {
		return nil, fmt.Errorf("listing rubrics: %w", err)
	}

	return page, nil
}

// Get implements canvas.RubricsClient.Get.
func (c *RubricsClient) Get(ctx context.Context, courseID, rubricID int64, include ...string) (*canvas.Rubric, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	if rubricID <= 0 {
		return nil, canvas.ErrRubricIDRequired
	}

	path := fmt.Sprintf("%s/%d/rubrics/%d", constants.APIPathCourses, courseID, rubricID)

	var query url.Values

	if len(include) > 0 {
		query = url.Values{"include[]": include}
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting rubric: %w", err)
	}

	return decodeResource[canvas.Rubric](resp.Body, "rubric")
}

// Create implements canvas.RubricsClient.Create.
func (c *RubricsClient) Create(ctx context.Context, courseID int64, request *canvas.RubricCreateRequest) (*canvas.Rubric, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%d/rubrics", constants.APIPathCourses, courseID)

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating rubric: %w", err)
	}

	return decodeResource[canvas.Rubric](resp.Body, "rubric")
}

// Update implements canvas.RubricsClient.Update.
func (c *RubricsClient) Update(ctx context.Context, courseID, rubricID int64, request *canvas.RubricUpdateRequest) (*canvas.Rubric, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	if rubricID <= 0 {
		return nil, canvas.ErrRubricIDRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%d/rubrics/%d", constants.APIPathCourses, courseID, rubricID)

	resp, err := c.httpClient.Put(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating rubric: %w", err)
	}

	return decodeResource[canvas.Rubric](resp.Body, "rubric")
}

// Delete implements canvas.RubricsClient.Delete.
func (c *RubricsClient) Delete(ctx context.Context, courseID, rubricID int64) (*canvas.Rubric, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	if rubricID <= 0 {
		return nil, canvas.ErrRubricIDRequired
	}

	path := fmt.Sprintf("%s/%d/rubrics/%d", constants.APIPathCourses, courseID, rubricID)

	resp, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("deleting rubric: %w", err)
	}

	return decodeResource[canvas.Rubric](resp.Body, "rubric")
}

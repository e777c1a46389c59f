package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/edukit-io/canvas/internal/constants"
	internalhttp "github.com/edukit-io/canvas/internal/http"
	"github.com/edukit-io/canvas/pkg/canvas"
)

// AssignmentsClient implements canvas.AssignmentsClient.
type AssignmentsClient struct {
	httpClient *internalhttp.Client
}

// NewAssignmentsClient creates a new assignments client.
func NewAssignmentsClient(httpClient *internalhttp.Client) *AssignmentsClient {
	return &AssignmentsClient{httpClient: httpClient}
}

// List implements canvas.AssignmentsClient.List.
func (c *AssignmentsClient) List(ctx context.Context, courseID int64, params *canvas.ListParams) (*canvas.Page[canvas.Assignment], error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	path := fmt.Sprintf("%s/%d/assignments", constants.APIPathCourses, courseID)

	page, err := fetchPage[canvas.Assignment](ctx, c.httpClient, path, params)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}

	return page, nil
}

// Get implements canvas.AssignmentsClient.Get.
func (c *AssignmentsClient) Get(ctx context.Context, courseID, assignmentID int64, include ...string) (*canvas.Assignment, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	if assignmentID <= 0 {
		return nil, canvas.ErrAssignmentIDRequired
	}

	path := fmt.Sprintf("%s/%d/assignments/%d", constants.APIPathCourses, courseID, assignmentID)

	var query url.Values

	if len(include) > 0 {
		query = url.Values{"include[]": include}
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting assignment: %w", err)
	}

	return decodeResource[canvas.Assignment](resp.Body, "assignment")
}

// Create implements canvas.AssignmentsClient.Create.
func (c *AssignmentsClient) Create(ctx context.Context, courseID int64, request *canvas.AssignmentCreateRequest) (*canvas.Assignment, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%d/assignments", constants.APIPathCourses, courseID)

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating assignment: %w", err)
	}

	return decodeResource[canvas.Assignment](resp.Body, "assignment")
}

// Update implements canvas.AssignmentsClient.Update.
func (c *AssignmentsClient) Update(ctx context.Context, courseID, assignmentID int64, request *canvas.AssignmentUpdateRequest) (*canvas.Assignment, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	if assignmentID <= 0 {
		return nil, canvas.ErrAssignmentIDRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%d/assignments/%d", constants.APIPathCourses, courseID, assignmentID)

	resp, err := c.httpClient.Put(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating assignment: %w", err)
	}

	return decodeResource[canvas.Assignment](resp.Body, "assignment")
}

// Delete implements canvas.AssignmentsClient.Delete. The API echoes the
// deleted assignment back.
func (c *AssignmentsClient) Delete(ctx context.Context, courseID, assignmentID int64) (*canvas.Assignment, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	if assignmentID <= 0 {
		return nil, canvas.ErrAssignmentIDRequired
	}

	path := fmt.Sprintf("%s/%d/assignments/%d", constants.APIPathCourses, courseID, assignmentID)

	resp, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("deleting assignment: %w", err)
	}

	return decodeResource[canvas.Assignment](resp.Body, "assignment")
}

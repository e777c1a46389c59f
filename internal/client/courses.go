package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/edukit-io/canvas/internal/constants"
	internalhttp "github.com/edukit-io/canvas/internal/http"
	"github.com/edukit-io/canvas/pkg/canvas"
)

// CoursesClient implements canvas.CoursesClient.
type CoursesClient struct {
	httpClient *internalhttp.Client
}

// NewCoursesClient creates a new courses client.
func NewCoursesClient(httpClient *internalhttp.Client) *CoursesClient {
	return &CoursesClient{httpClient: httpClient}
}

// List implements canvas.CoursesClient.List.
func (c *CoursesClient) List(ctx context.Context, params *canvas.ListParams) (*canvas.Page[canvas.Course], error) {
	page, err := fetchPage[canvas.Course](ctx, c.httpClient, constants.APIPathCourses, params)
	if err != nil {
		return nil, fmt.Errorf("listing courses: %w", err)
	}

	return page, nil
}

// Get implements canvas.CoursesClient.Get.
func (c *CoursesClient) Get(ctx context.Context, courseID int64, include ...string) (*canvas.Course, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	path := fmt.Sprintf("%s/%d", constants.APIPathCourses, courseID)

	var query url.Values

	if len(include) > 0 {
		query = url.Values{"include[]": include}
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting course: %w", err)
	}

	return decodeResource[canvas.Course](resp.Body, "course")
}

// Create implements canvas.CoursesClient.Create.
func (c *CoursesClient) Create(ctx context.Context, accountID int64, request *canvas.CourseCreateRequest) (*canvas.Course, error) {
	if accountID <= 0 {
		return nil, canvas.ErrAccountIDRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%d/courses", constants.APIPathAccounts, accountID)

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating course: %w", err)
	}

	return decodeResource[canvas.Course](resp.Body, "course")
}

// Update implements canvas.CoursesClient.Update.
func (c *CoursesClient) Update(ctx context.Context, courseID int64, request *canvas.CourseUpdateRequest) (*canvas.Course, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%d", constants.APIPathCourses, courseID)

	resp, err := c.httpClient.Put(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("updating course: %w", err)
	}

	return decodeResource[canvas.Course](resp.Body, "course")
}

// Delete implements canvas.CoursesClient.Delete. event selects between
// deleting and concluding the course.
func (c *CoursesClient) Delete(ctx context.Context, courseID int64, event string) error {
	if courseID <= 0 {
		return canvas.ErrCourseIDRequired
	}

	err := canvas.ValidateCourseEvent(event)
	if err != nil {
		return err
	}

	path := fmt.Sprintf("%s/%d", constants.APIPathCourses, courseID)
	query := url.Values{"event": []string{event}}

	_, err = c.httpClient.DeleteWithQuery(ctx, path, query)
	if err != nil {
		return fmt.Errorf("deleting course: %w", err)
	}

	return nil
}

// ListUsers implements canvas.CoursesClient.ListUsers.
func (c *CoursesClient) ListUsers(ctx context.Context, courseID int64, params *canvas.ListParams) (*canvas.Page[canvas.User], error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	path := fmt.Sprintf("%s/%d/users", constants.APIPathCourses, courseID)

	page, err := fetchPage[canvas.User](ctx, c.httpClient, path, params)
	if err != nil {
		return nil, fmt.Errorf("listing course users: %w", err)
	}

	return page, nil
}

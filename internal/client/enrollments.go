package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/edukit-io/canvas/internal/constants"
	internalhttp "github.com/edukit-io/canvas/internal/http"
	"github.com/edukit-io/canvas/pkg/canvas"
)

// EnrollmentsClient implements canvas.EnrollmentsClient.
type EnrollmentsClient struct {
	httpClient *internalhttp.Client
}

// NewEnrollmentsClient creates a new enrollments client.
func NewEnrollmentsClient(httpClient *internalhttp.Client) *EnrollmentsClient {
	return &EnrollmentsClient{httpClient: httpClient}
}

// ListForCourse implements canvas.EnrollmentsClient.ListForCourse.
func (c *EnrollmentsClient) ListForCourse(ctx context.Context, courseID int64, params *canvas.ListParams) (*canvas.Page[canvas.Enrollment], error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	path := fmt.Sprintf("%s/%d/enrollments", constants.APIPathCourses, courseID)

	page, err := fetchPage[canvas.Enrollment](ctx, c.httpClient, path, params)
	if err != nil {
		return nil, fmt.Errorf("listing course enrollments: %w", err)
	}

	return page, nil
}

// ListForSection implements canvas.EnrollmentsClient.ListForSection.
func (c *EnrollmentsClient) ListForSection(ctx context.Context, sectionID int64, params *canvas.ListParams) (*canvas.Page[canvas.Enrollment], error) {
	if sectionID <= 0 {
		return nil, canvas.ErrSectionIDRequired
	}

	path := fmt.Sprintf("/api/v1/sections/%d/enrollments", sectionID)

	page, err := fetchPage[canvas.Enrollment](ctx, c.httpClient, path, params)
	if err != nil {
		return nil, fmt.Errorf("listing section enrollments: %w", err)
	}

	return page, nil
}

// ListForUser implements canvas.EnrollmentsClient.ListForUser.
func (c *EnrollmentsClient) ListForUser(ctx context.Context, userID int64, params *canvas.ListParams) (*canvas.Page[canvas.Enrollment], error) {
	if userID <= 0 {
		return nil, canvas.ErrUserIDRequired
	}

	path := fmt.Sprintf("%s/%d/enrollments", constants.APIPathUsers, userID)

	page, err := fetchPage[canvas.Enrollment](ctx, c.httpClient, path, params)
	if err != nil {
		return nil, fmt.Errorf("listing user enrollments: %w", err)
	}

	return page, nil
}

// Get implements canvas.EnrollmentsClient.Get. Single enrollments are read
// through the account scope.
func (c *EnrollmentsClient) Get(ctx context.Context, accountID, enrollmentID int64) (*canvas.Enrollment, error) {
	if accountID <= 0 {
		return nil, canvas.ErrAccountIDRequired
	}

	if enrollmentID <= 0 {
		return nil, canvas.ErrEnrollmentIDRequired
	}

	path := fmt.Sprintf("%s/%d/enrollments/%d", constants.APIPathAccounts, accountID, enrollmentID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting enrollment: %w", err)
	}

	return decodeResource[canvas.Enrollment](resp.Body, "enrollment")
}

// Create implements canvas.EnrollmentsClient.Create.
func (c *EnrollmentsClient) Create(ctx context.Context, courseID int64, request *canvas.EnrollmentCreateRequest) (*canvas.Enrollment, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%d/enrollments", constants.APIPathCourses, courseID)

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating enrollment: %w", err)
	}

	return decodeResource[canvas.Enrollment](resp.Body, "enrollment")
}

// Remove implements canvas.EnrollmentsClient.Remove. task selects between
// concluding, deleting, and deactivating.
func (c *EnrollmentsClient) Remove(ctx context.Context, courseID, enrollmentID int64, task string) (*canvas.Enrollment, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	if enrollmentID <= 0 {
		return nil, canvas.ErrEnrollmentIDRequired
	}

	err := canvas.ValidateEnrollmentTask(task)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%d/enrollments/%d", constants.APIPathCourses, courseID, enrollmentID)
	query := url.Values{"task": []string{task}}

	resp, err := c.httpClient.DeleteWithQuery(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("removing enrollment: %w", err)
	}

	return decodeResource[canvas.Enrollment](resp.Body, "enrollment")
}

// Accept implements canvas.EnrollmentsClient.Accept.
func (c *EnrollmentsClient) Accept(ctx context.Context, courseID, enrollmentID int64) error {
	if courseID <= 0 {
		return canvas.ErrCourseIDRequired
	}

	if enrollmentID <= 0 {
		return canvas.ErrEnrollmentIDRequired
	}

	path := fmt.Sprintf("%s/%d/enrollments/%d/accept", constants.APIPathCourses, courseID, enrollmentID)

	_, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("accepting enrollment: %w", err)
	}

	return nil
}

// Reject implements canvas.EnrollmentsClient.Reject.
func (c *EnrollmentsClient) Reject(ctx context.Context, courseID, enrollmentID int64) error {
	if courseID <= 0 {
		return canvas.ErrCourseIDRequired
	}

	if enrollmentID <= 0 {
		return canvas.ErrEnrollmentIDRequired
	}

	path := fmt.Sprintf("%s/%d/enrollments/%d/reject", constants.APIPathCourses, courseID, enrollmentID)

	_, err := c.httpClient.Post(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("rejecting enrollment: %w", err)
	}

	return nil
}

// Reactivate implements canvas.EnrollmentsClient.Reactivate.
func (c *EnrollmentsClient) Reactivate(ctx context.Context, courseID, enrollmentID int64) (*canvas.Enrollment, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	if enrollmentID <= 0 {
		return nil, canvas.ErrEnrollmentIDRequired
	}

	path := fmt.Sprintf("%s/%d/enrollments/%d/reactivate", constants.APIPathCourses, courseID, enrollmentID)

	resp, err := c.httpClient.Put(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("reactivating enrollment: %w", err)
	}

	return decodeResource[canvas.Enrollment](resp.Body, "enrollment")
}

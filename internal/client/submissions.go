package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/edukit-io/canvas/internal/constants"
	internalhttp "github.com/edukit-io/canvas/internal/http"
	"github.com/edukit-io/canvas/pkg/canvas"
)

// SubmissionsClient implements canvas.SubmissionsClient.
type SubmissionsClient struct {
	httpClient *internalhttp.Client
}

// NewSubmissionsClient creates a new submissions client.
func NewSubmissionsClient(httpClient *internalhttp.Client) *SubmissionsClient {
	return &SubmissionsClient{httpClient: httpClient}
}

// List implements canvas.SubmissionsClient.List.
func (c *SubmissionsClient) List(ctx context.Context, courseID, assignmentID int64, params *canvas.ListParams) (*canvas.Page[canvas.Submission], error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	if assignmentID <= 0 {
		return nil, canvas.ErrAssignmentIDRequired
	}

	path := fmt.Sprintf("%s/%d/assignments/%d/submissions", constants.APIPathCourses, courseID, assignmentID)

	page, err := fetchPage[canvas.Submission](ctx, c.httpClient, path, params)
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}

	return page, nil
}

// Get implements canvas.SubmissionsClient.Get. userID may be a numeric ID or
// the literal "self".
func (c *SubmissionsClient) Get(ctx context.Context, courseID, assignmentID int64, userID string, include ...string) (*canvas.Submission, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	if assignmentID <= 0 {
		return nil, canvas.ErrAssignmentIDRequired
	}

	if userID == "" {
		return nil, canvas.ErrUserIDRequired
	}

	path := fmt.Sprintf("%s/%d/assignments/%d/submissions/%s", constants.APIPathCourses, courseID, assignmentID, userID)

	var query url.Values

	if len(include) > 0 {
		query = url.Values{"include[]": include}
	}

	resp, err := c.httpClient.Get(ctx, path, query)
	if err != nil {
		return nil, fmt.Errorf("getting submission: %w", err)
	}

	return decodeResource[canvas.Submission](resp.Body, "submission")
}

// Submit implements canvas.SubmissionsClient.Submit.
func (c *SubmissionsClient) Submit(ctx context.Context, courseID, assignmentID int64, request *canvas.SubmissionRequest) (*canvas.Submission, error) {
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

	path := fmt.Sprintf("%s/%d/assignments/%d/submissions", constants.APIPathCourses, courseID, assignmentID)

	resp, err := c.httpClient.Post(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("creating submission: %w", err)
	}

	return decodeResource[canvas.Submission](resp.Body, "submission")
}

// Grade implements canvas.SubmissionsClient.Grade.
func (c *SubmissionsClient) Grade(ctx context.Context, courseID, assignmentID int64, userID string, request *canvas.GradeRequest) (*canvas.Submission, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	if assignmentID <= 0 {
		return nil, canvas.ErrAssignmentIDRequired
	}

	if userID == "" {
		return nil, canvas.ErrUserIDRequired
	}

	err := request.Validate()
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s/%d/assignments/%d/submissions/%s", constants.APIPathCourses, courseID, assignmentID, userID)

	resp, err := c.httpClient.Put(ctx, path, request)
	if err != nil {
		return nil, fmt.Errorf("grading submission: %w", err)
	}

	return decodeResource[canvas.Submission](resp.Body, "submission")
}

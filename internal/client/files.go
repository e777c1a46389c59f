package client

import (
	"context"
	"fmt"
	"io"

	"github.com/edukit-io/canvas/internal/constants"
	internalhttp "github.com/edukit-io/canvas/internal/http"
	"github.com/edukit-io/canvas/pkg/canvas"
)

// FilesClient implements canvas.FilesClient.
type FilesClient struct {
	httpClient *internalhttp.Client
}

// NewFilesClient creates a new files client.
func NewFilesClient(httpClient *internalhttp.Client) *FilesClient {
	return &FilesClient{httpClient: httpClient}
}

// ListForCourse implements canvas.FilesClient.ListForCourse.
func (c *FilesClient) ListForCourse(ctx context.Context, courseID int64, params *canvas.ListParams) (*canvas.Page[canvas.File], error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	path := fmt.Sprintf("%s/%d/files", constants.APIPathCourses, courseID)

	page, err := fetchPage[canvas.File](ctx, c.httpClient, path, params)
	if err != nil {
		return nil, fmt.Errorf("listing course files: %w", err)
	}

	return page, nil
}

// ListForUser implements canvas.FilesClient.ListForUser.
func (c *FilesClient) ListForUser(ctx context.Context, userID int64, params *canvas.ListParams) (*canvas.Page[canvas.File], error) {
	if userID <= 0 {
		return nil, canvas.ErrUserIDRequired
	}

	path := fmt.Sprintf("%s/%d/files", constants.APIPathUsers, userID)

	page, err := fetchPage[canvas.File](ctx, c.httpClient, path, params)
	if err != nil {
		return nil, fmt.Errorf("listing user files: %w", err)
	}

	return page, nil
}

// Get implements canvas.FilesClient.Get.
func (c *FilesClient) Get(ctx context.Context, fileID int64) (*canvas.File, error) {
	if fileID <= 0 {
		return nil, canvas.ErrFileIDRequired
	}

	path := fmt.Sprintf("/api/v1/files/%d", fileID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting file: %w", err)
	}

	return decodeResource[canvas.File](resp.Body, "file")
}

// Delete implements canvas.FilesClient.Delete.
func (c *FilesClient) Delete(ctx context.Context, fileID int64) (*canvas.File, error) {
	if fileID <= 0 {
		return nil, canvas.ErrFileIDRequired
	}

	path := fmt.Sprintf("/api/v1/files/%d", fileID)

	resp, err := c.httpClient.Delete(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("deleting file: %w", err)
	}

	return decodeResource[canvas.File](resp.Body, "file")
}

// UploadToCourse implements canvas.FilesClient.UploadToCourse.
func (c *FilesClient) UploadToCourse(ctx context.Context, courseID int64, request *canvas.FileUploadRequest, content io.Reader) (*canvas.File, error) {
	if courseID <= 0 {
		return nil, canvas.ErrCourseIDRequired
	}

	declarePath := fmt.Sprintf("%s/%d/files", constants.APIPathCourses, courseID)

	return c.upload(ctx, declarePath, request, content)
}

// UploadToUser implements canvas.FilesClient.UploadToUser.
func (c *FilesClient) UploadToUser(ctx context.Context, userID int64, request *canvas.FileUploadRequest, content io.Reader) (*canvas.File, error) {
	if userID <= 0 {
		return nil, canvas.ErrUserIDRequired
	}

	declarePath := fmt.Sprintf("%s/%d/files", constants.APIPathUsers, userID)

	return c.upload(ctx, declarePath, request, content)
}

// upload runs the two-step flow: declare the upload to get a pre-authorized
// target, then stream the bytes to it.
func (c *FilesClient) upload(ctx context.Context, declarePath string, request *canvas.FileUploadRequest, content io.Reader) (*canvas.File, error) {
	err := request.Validate()
	if err != nil {
		return nil, err
	}

	declareResp, err := c.httpClient.Post(ctx, declarePath, request)
	if err != nil {
		return nil, fmt.Errorf("declaring file upload: %w", err)
	}

	target, err := decodeResource[canvas.FileUploadTarget](declareResp.Body, "file upload target")
	if err != nil {
		return nil, err
	}

	uploadResp, err := c.httpClient.UploadMultipart(ctx, target.UploadURL, target.UploadParams, request.Name, content)
	if err != nil {
		return nil, fmt.Errorf("uploading file contents: %w", err)
	}

	return decodeResource[canvas.File](uploadResp.Body, "file")
}

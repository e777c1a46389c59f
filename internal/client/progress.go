package client

import (
	"context"
	"fmt"
	"time"

	"github.com/edukit-io/canvas/internal/constants"
	internalhttp "github.com/edukit-io/canvas/internal/http"
	"github.com/edukit-io/canvas/pkg/canvas"
)

// ProgressClient implements canvas.ProgressClient.
type ProgressClient struct {
	httpClient   *internalhttp.Client
	pollInterval time.Duration
}

// NewProgressClient creates a new progress client.
func NewProgressClient(httpClient *internalhttp.Client) *ProgressClient {
	return &ProgressClient{
		httpClient:   httpClient,
		pollInterval: constants.DefaultPollInterval,
	}
}

// Get implements canvas.ProgressClient.Get.
func (c *ProgressClient) Get(ctx context.Context, progressID int64) (*canvas.Progress, error) {
	if progressID <= 0 {
		return nil, canvas.ErrProgressIDRequired
	}

	path := fmt.Sprintf("%s/%d", constants.APIPathProgress, progressID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("getting progress: %w", err)
	}

	return decodeResource[canvas.Progress](resp.Body, "progress")
}

// Cancel implements canvas.ProgressClient.Cancel.
func (c *ProgressClient) Cancel(ctx context.Context, progressID int64, message string) (*canvas.Progress, error) {
	if progressID <= 0 {
		return nil, canvas.ErrProgressIDRequired
	}

	path := fmt.Sprintf("%s/%d/cancel", constants.APIPathProgress, progressID)
	body := map[string]string{}

	if message != "" {
		body["message"] = message
	}

	resp, err := c.httpClient.Post(ctx, path, body)
	if err != nil {
		return nil, fmt.Errorf("canceling progress: %w", err)
	}

	return decodeResource[canvas.Progress](resp.Body, "progress")
}

// PollUntilComplete implements canvas.ProgressClient.PollUntilComplete. It
// polls until the operation reaches a terminal state or ctx is done. Callers
// bound the wait with a context deadline.
func (c *ProgressClient) PollUntilComplete(ctx context.Context, progressID int64) (*canvas.Progress, error) {
	if progressID <= 0 {
		return nil, canvas.ErrProgressIDRequired
	}

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		progress, err := c.Get(ctx, progressID)
		if err != nil {
			return nil, err
		}

		if progress.Terminal() {
			return progress, nil
		}

		select {
		case <-ctx.Done():
			return progress, fmt.Errorf("waiting for progress %d: %w", progressID, ctx.Err())
		case <-ticker.C:
		}
	}
}

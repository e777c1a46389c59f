package client

import (
	"context"
	"fmt"

	"github.com/edukit-io/canvas/internal/constants"
	internalhttp "github.com/edukit-io/canvas/internal/http"
	"github.com/edukit-io/canvas/pkg/canvas"
)

// TermsClient implements canvas.TermsClient.
type TermsClient struct {
	collection *PagedCollection[canvas.EnrollmentTerm]
}

// NewTermsClient creates a new enrollment terms client. Unlike most list
// endpoints, the terms endpoint wraps the array in an envelope object.
func NewTermsClient(httpClient *internalhttp.Client) *TermsClient {
	return &TermsClient{
		collection: NewPagedCollection[canvas.EnrollmentTerm](httpClient, "enrollment term", "enrollment_terms"),
	}
}

// List implements canvas.TermsClient.List.
func (c *TermsClient) List(ctx context.Context, accountID int64, params *canvas.ListParams) (*canvas.Page[canvas.EnrollmentTerm], error) {
	if accountID <= 0 {
		return nil, canvas.ErrAccountIDRequired
	}

	path := fmt.Sprintf("%s/%d/terms", constants.APIPathAccounts, accountID)

	return c.collection.ListPage(ctx, path, params)
}

// Get implements canvas.TermsClient.Get.
func (c *TermsClient) Get(ctx context.Context, accountID, termID int64) (*canvas.EnrollmentTerm, error) {
	if accountID <= 0 {
		return nil, canvas.ErrAccountIDRequired
	}

	if termID <= 0 {
		return nil, canvas.ErrTermIDRequired
	}

	path := fmt.Sprintf("%s/%d/terms/%d", constants.APIPathAccounts, accountID, termID)

	return c.collection.GetOne(ctx, path)
}

package canvas

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/edukit-io/canvas/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrUnsupportedResourceType   = errors.New("unsupported resource type")
	ErrUnsupportedOperationType  = errors.New("unsupported operation type")
	ErrInvalidDataTypeCourse     = errors.New("invalid data type for course operation")
	ErrInvalidDataTypeAssignment = errors.New("invalid data type for assignment operation")
	ErrInvalidDataTypeModule     = errors.New("invalid data type for module operation")
	ErrInvalidDataTypeSection    = errors.New("invalid data type for section operation")
	ErrInvalidDataTypeEnrollment = errors.New("invalid data type for enrollment operation")
	ErrTransactionFailed         = errors.New("transaction failed")
)

// CourseScopedCreate wraps a create request with the course it targets.
type CourseScopedCreate[T any] struct {
	CourseID int64
	Request  *T
}

// CourseScopedUpdate wraps an update request with its course and resource IDs.
type CourseScopedUpdate[T any] struct {
	CourseID int64
	ID       int64
	Request  *T
}

// CourseScopedID identifies a resource within a course.
type CourseScopedID struct {
	CourseID int64
	ID       int64
}

// AccountScopedCreate wraps a create request with the account it targets.
type AccountScopedCreate[T any] struct {
	AccountID int64
	Request   *T
}

// UpdateDataWrapper wraps update data with an ID for consistent handling.
type UpdateDataWrapper[T any] struct {
	ID      int64
	Request *T
}

// handleCrudOperation is a helper that handles the common CRUD pattern.
func handleCrudOperation(
	operation BatchOperation,
	createFunc func() (interface{}, error),
	updateFunc func() (interface{}, error),
	deleteFunc func() (interface{}, error),
	getFunc func() (interface{}, error),
) *BatchResult {
	result := &BatchResult{ID: operation.ID}

	switch operation.Type {
	case "create":
		data, err := createFunc()
		result.Success = err == nil
		result.Data = data
		result.Error = err
	case "update":
		data, err := updateFunc()
		result.Success = err == nil
		result.Data = data
		result.Error = err
	case "delete":
		data, err := deleteFunc()
		result.Success = err == nil
		result.Data = data
		result.Error = err
	case "get":
		data, err := getFunc()
		result.Success = err == nil
		result.Data = data
		result.Error = err
	default:
		result.Error = fmt.Errorf("%w: %s", ErrUnsupportedOperationType, operation.Type)
	}

	return result
}

// BatchOperation represents a single operation in a batch.
type BatchOperation struct {
	ID       string
	Type     string // "create", "update", "delete", "get"
	Resource string // "course", "assignment", "module", etc.
	Data     interface{}
	Callback func(result *BatchResult)
}

// BatchResult represents the result of a batch operation.
type BatchResult struct {
	ID       string
	Success  bool
	Data     interface{}
	Error    error
	Duration time.Duration
}

// BatchExecutor executes batch operations against the API with bounded
// concurrency. Useful for term rollovers and bulk course provisioning.
type BatchExecutor struct {
	client      Client
	concurrency int
	timeout     time.Duration
}

// NewBatchExecutor creates a new batch executor.
func NewBatchExecutor(client Client, concurrency int) *BatchExecutor {
	if concurrency <= 0 {
		concurrency = constants.DefaultConcurrencyLimit
	}

	return &BatchExecutor{
		client:      client,
		concurrency: concurrency,
		timeout:     constants.DefaultHTTPTimeout,
	}
}

// SetTimeout sets the timeout for batch operations.
func (b *BatchExecutor) SetTimeout(timeout time.Duration) {
	b.timeout = timeout
}

// Execute runs a batch of operations.
func (b *BatchExecutor) Execute(ctx context.Context, operations []BatchOperation) ([]BatchResult, error) {
	results := make([]BatchResult, len(operations))

	var waitGroup sync.WaitGroup

	semaphore := make(chan struct{}, b.concurrency)

	for index, operation := range operations {
		waitGroup.Add(1)

		go func(index int, operation BatchOperation) {
			defer waitGroup.Done()

			// Acquire semaphore
			semaphore <- struct{}{}

			defer func() { <-semaphore }()

			// Execute operation with timeout
			opCtx, cancel := context.WithTimeout(ctx, b.timeout)
			defer cancel()

			start := time.Now()
			result := b.executeOperation(opCtx, operation)
			result.Duration = time.Since(start)
			results[index] = *result

			// Call callback if provided
			if operation.Callback != nil {
				operation.Callback(result)
			}
		}(index, operation)
	}

	waitGroup.Wait()

	return results, nil
}

// executeOperation executes a single operation.
func (b *BatchExecutor) executeOperation(ctx context.Context, operation BatchOperation) *BatchResult {
	result := &BatchResult{
		ID: operation.ID,
	}

	switch operation.Resource {
	case "course":
		result = b.executeCourseOperation(ctx, operation)
	case "assignment":
		result = b.executeAssignmentOperation(ctx, operation)
	case "module":
		result = b.executeModuleOperation(ctx, operation)
	case "section":
		result = b.executeSectionOperation(ctx, operation)
	case "enrollment":
		result = b.executeEnrollmentOperation(ctx, operation)
	default:
		result.Success = false
		result.Error = fmt.Errorf("%w: %s", ErrUnsupportedResourceType, operation.Resource)
	}

	return result
}

// executeCourseOperation handles course operations using the common CRUD helper.
func (b *BatchExecutor) executeCourseOperation(ctx context.Context, operation BatchOperation) *BatchResult {
	return handleCrudOperation(operation,
		func() (interface{}, error) {
			if data, ok := operation.Data.(*AccountScopedCreate[CourseCreateRequest]); ok {
				return b.client.Courses().Create(ctx, data.AccountID, data.Request)
			}

			return nil, fmt.Errorf("%w create", ErrInvalidDataTypeCourse)
		},
		func() (interface{}, error) {
			if data, ok := operation.Data.(*UpdateDataWrapper[CourseUpdateRequest]); ok {
				return b.client.Courses().Update(ctx, data.ID, data.Request)
			}

			return nil, fmt.Errorf("%w update", ErrInvalidDataTypeCourse)
		},
		func() (interface{}, error) {
			if courseID, ok := operation.Data.(int64); ok {
				err := b.client.Courses().Delete(ctx, courseID, CourseEventDelete)
				if err != nil {
					return nil, fmt.Errorf("failed to delete course: %w", err)
				}

				return nil, nil
			}

			return nil, fmt.Errorf("%w delete", ErrInvalidDataTypeCourse)
		},
		func() (interface{}, error) {
			if courseID, ok := operation.Data.(int64); ok {
				return b.client.Courses().Get(ctx, courseID)
			}

			return nil, fmt.Errorf("%w get", ErrInvalidDataTypeCourse)
		},
	)
}

// executeAssignmentOperation handles assignment operations.
func (b *BatchExecutor) executeAssignmentOperation(ctx context.Context, operation BatchOperation) *BatchResult {
	return handleCrudOperation(operation,
		func() (interface{}, error) {
			if data, ok := operation.Data.(*CourseScopedCreate[AssignmentCreateRequest]); ok {
				return b.client.Assignments().Create(ctx, data.CourseID, data.Request)
			}

			return nil, fmt.Errorf("%w create", ErrInvalidDataTypeAssignment)
		},
		func() (interface{}, error) {
			if data, ok := operation.Data.(*CourseScopedUpdate[AssignmentUpdateRequest]); ok {
				return b.client.Assignments().Update(ctx, data.CourseID, data.ID, data.Request)
			}

			return nil, fmt.Errorf("%w update", ErrInvalidDataTypeAssignment)
		},
		func() (interface{}, error) {
			if ids, ok := operation.Data.(*CourseScopedID); ok {
				return b.client.Assignments().Delete(ctx, ids.CourseID, ids.ID)
			}

			return nil, fmt.Errorf("%w delete", ErrInvalidDataTypeAssignment)
		},
		func() (interface{}, error) {
			if ids, ok := operation.Data.(*CourseScopedID); ok {
				return b.client.Assignments().Get(ctx, ids.CourseID, ids.ID)
			}

			return nil, fmt.Errorf("%w get", ErrInvalidDataTypeAssignment)
		},
	)
}

// executeModuleOperation handles module operations.
func (b *BatchExecutor) executeModuleOperation(ctx context.Context, operation BatchOperation) *BatchResult {
	return handleCrudOperation(operation,
		func() (interface{}, error) {
			if data, ok := operation.Data.(*CourseScopedCreate[ModuleCreateRequest]); ok {
				return b.client.Modules().Create(ctx, data.CourseID, data.Request)
			}

			return nil, fmt.Errorf("%w create", ErrInvalidDataTypeModule)
		},
		func() (interface{}, error) {
			if data, ok := operation.Data.(*CourseScopedUpdate[ModuleUpdateRequest]); ok {
				return b.client.Modules().Update(ctx, data.CourseID, data.ID, data.Request)
			}

			return nil, fmt.Errorf("%w update", ErrInvalidDataTypeModule)
		},
		func() (interface{}, error) {
			if ids, ok := operation.Data.(*CourseScopedID); ok {
				err := b.client.Modules().Delete(ctx, ids.CourseID, ids.ID)
				if err != nil {
					return nil, fmt.Errorf("failed to delete module: %w", err)
				}

				return nil, nil
			}

			return nil, fmt.Errorf("%w delete", ErrInvalidDataTypeModule)
		},
		func() (interface{}, error) {
			if ids, ok := operation.Data.(*CourseScopedID); ok {
				return b.client.Modules().Get(ctx, ids.CourseID, ids.ID)
			}

			return nil, fmt.Errorf("%w get", ErrInvalidDataTypeModule)
		},
	)
}

// executeSectionOperation handles section operations.
func (b *BatchExecutor) executeSectionOperation(ctx context.Context, operation BatchOperation) *BatchResult {
	return handleCrudOperation(operation,
		func() (interface{}, error) {
			if data, ok := operation.Data.(*CourseScopedCreate[SectionCreateRequest]); ok {
				return b.client.Sections().Create(ctx, data.CourseID, data.Request)
			}

			return nil, fmt.Errorf("%w create", ErrInvalidDataTypeSection)
		},
		func() (interface{}, error) {
			if data, ok := operation.Data.(*UpdateDataWrapper[SectionUpdateRequest]); ok {
				return b.client.Sections().Update(ctx, data.ID, data.Request)
			}

			return nil, fmt.Errorf("%w update", ErrInvalidDataTypeSection)
		},
		func() (interface{}, error) {
			if sectionID, ok := operation.Data.(int64); ok {
				return b.client.Sections().Delete(ctx, sectionID)
			}

			return nil, fmt.Errorf("%w delete", ErrInvalidDataTypeSection)
		},
		func() (interface{}, error) {
			if sectionID, ok := operation.Data.(int64); ok {
				return b.client.Sections().Get(ctx, sectionID)
			}

			return nil, fmt.Errorf("%w get", ErrInvalidDataTypeSection)
		},
	)
}

// executeEnrollmentOperation handles enrollment operations. Enrollments have
// no update; removal maps to the delete task.
func (b *BatchExecutor) executeEnrollmentOperation(ctx context.Context, operation BatchOperation) *BatchResult {
	return handleCrudOperation(operation,
		func() (interface{}, error) {
			if data, ok := operation.Data.(*CourseScopedCreate[EnrollmentCreateRequest]); ok {
				return b.client.Enrollments().Create(ctx, data.CourseID, data.Request)
			}

			return nil, fmt.Errorf("%w create", ErrInvalidDataTypeEnrollment)
		},
		func() (interface{}, error) {
			return nil, fmt.Errorf("%w update", ErrInvalidDataTypeEnrollment)
		},
		func() (interface{}, error) {
			if ids, ok := operation.Data.(*CourseScopedID); ok {
				return b.client.Enrollments().Remove(ctx, ids.CourseID, ids.ID, EnrollmentTaskDelete)
			}

			return nil, fmt.Errorf("%w delete", ErrInvalidDataTypeEnrollment)
		},
		func() (interface{}, error) {
			return nil, fmt.Errorf("%w get", ErrInvalidDataTypeEnrollment)
		},
	)
}

// BatchBuilder helps build batch operations.
type BatchBuilder struct {
	operations []BatchOperation
}

// NewBatchBuilder creates a new batch builder.
func NewBatchBuilder() *BatchBuilder {
	return &BatchBuilder{
		operations: make([]BatchOperation, 0),
	}
}

// AddCreateCourse adds a course creation operation.
func (b *BatchBuilder) AddCreateCourse(id string, accountID int64, request *CourseCreateRequest) *BatchBuilder {
	b.operations = append(b.operations, BatchOperation{
		ID:       id,
		Type:     "create",
		Resource: "course",
		Data: &AccountScopedCreate[CourseCreateRequest]{
			AccountID: accountID,
			Request:   request,
		},
	})

	return b
}

// AddUpdateCourse adds a course update operation.
func (b *BatchBuilder) AddUpdateCourse(id string, courseID int64, request *CourseUpdateRequest) *BatchBuilder {
	b.operations = append(b.operations, BatchOperation{
		ID:       id,
		Type:     "update",
		Resource: "course",
		Data: &UpdateDataWrapper[CourseUpdateRequest]{
			ID:      courseID,
			Request: request,
		},
	})

	return b
}

// AddDeleteCourse adds a course deletion operation.
func (b *BatchBuilder) AddDeleteCourse(id string, courseID int64) *BatchBuilder {
	b.operations = append(b.operations, BatchOperation{
		ID:       id,
		Type:     "delete",
		Resource: "course",
		Data:     courseID,
	})

	return b
}

// AddGetCourse adds a course get operation.
func (b *BatchBuilder) AddGetCourse(id string, courseID int64) *BatchBuilder {
	b.operations = append(b.operations, BatchOperation{
		ID:       id,
		Type:     "get",
		Resource: "course",
		Data:     courseID,
	})

	return b
}

// AddCreateAssignment adds an assignment creation operation.
func (b *BatchBuilder) AddCreateAssignment(id string, courseID int64, request *AssignmentCreateRequest) *BatchBuilder {
	b.operations = append(b.operations, BatchOperation{
		ID:       id,
		Type:     "create",
		Resource: "assignment",
		Data: &CourseScopedCreate[AssignmentCreateRequest]{
			CourseID: courseID,
			Request:  request,
		},
	})

	return b
}

// AddUpdateAssignment adds an assignment update operation.
func (b *BatchBuilder) AddUpdateAssignment(id string, courseID, assignmentID int64, request *AssignmentUpdateRequest) *BatchBuilder {
	b.operations = append(b.operations, BatchOperation{
		ID:       id,
		Type:     "update",
		Resource: "assignment",
		Data: &CourseScopedUpdate[AssignmentUpdateRequest]{
			CourseID: courseID,
			ID:       assignmentID,
			Request:  request,
		},
	})

	return b
}

// AddDeleteAssignment adds an assignment deletion operation.
func (b *BatchBuilder) AddDeleteAssignment(id string, courseID, assignmentID int64) *BatchBuilder {
	b.operations = append(b.operations, BatchOperation{
		ID:       id,
		Type:     "delete",
		Resource: "assignment",
		Data: &CourseScopedID{
			CourseID: courseID,
			ID:       assignmentID,
		},
	})

	return b
}

// AddCreateEnrollment adds an enrollment creation operation.
func (b *BatchBuilder) AddCreateEnrollment(id string, courseID int64, request *EnrollmentCreateRequest) *BatchBuilder {
	b.operations = append(b.operations, BatchOperation{
		ID:       id,
		Type:     "create",
		Resource: "enrollment",
		Data: &CourseScopedCreate[EnrollmentCreateRequest]{
			CourseID: courseID,
			Request:  request,
		},
	})

	return b
}

// AddOperation adds a custom operation.
func (b *BatchBuilder) AddOperation(operation BatchOperation) *BatchBuilder {
	b.operations = append(b.operations, operation)

	return b
}

// Build returns the built operations.
func (b *BatchBuilder) Build() []BatchOperation {
	return b.operations
}

// BatchTransaction represents a transactional batch of operations.
type BatchTransaction struct {
	operations []BatchOperation
	results    []BatchResult
	executor   *BatchExecutor
	rollback   bool
}

// NewBatchTransaction creates a new batch transaction.
func NewBatchTransaction(executor *BatchExecutor) *BatchTransaction {
	return &BatchTransaction{
		executor:   executor,
		operations: make([]BatchOperation, 0),
		rollback:   true,
	}
}

// Add adds an operation to the transaction.
func (t *BatchTransaction) Add(operation BatchOperation) *BatchTransaction {
	t.operations = append(t.operations, operation)

	return t
}

// SetRollback sets whether to rollback on failure.
func (t *BatchTransaction) SetRollback(rollback bool) *BatchTransaction {
	t.rollback = rollback

	return t
}

// Execute executes the transaction.
func (t *BatchTransaction) Execute(ctx context.Context) ([]BatchResult, error) {
	results, err := t.executor.Execute(ctx, t.operations)
	t.results = results

	// Check for failures
	var failedOps []string

	for _, result := range results {
		if !result.Success {
			failedOps = append(failedOps, result.ID)
		}
	}

	// If there were failures and rollback is enabled
	if len(failedOps) > 0 && t.rollback {
		// Attempt to rollback successful operations
		t.performRollback(ctx)

		return results, fmt.Errorf("%w, %d operations failed: %v", ErrTransactionFailed, len(failedOps), failedOps)
	}

	return results, err
}

// performRollback attempts to rollback successful create operations by
// deleting what they created. Deletes and updates cannot be undone without
// the original state, so they are left for manual intervention.
func (t *BatchTransaction) performRollback(ctx context.Context) {
	var rollbackOps []BatchOperation

	for i, result := range t.results {
		if !result.Success || t.operations[i].Type != "create" {
			continue
		}

		original := t.operations[i]

		switch original.Resource {
		case "course":
			if course, ok := result.Data.(*Course); ok {
				rollbackOps = append(rollbackOps, BatchOperation{
					ID:       "rollback_" + original.ID,
					Type:     "delete",
					Resource: "course",
					Data:     course.ID,
				})
			}
		case "assignment":
			if assignment, ok := result.Data.(*Assignment); ok {
				rollbackOps = append(rollbackOps, BatchOperation{
					ID:       "rollback_" + original.ID,
					Type:     "delete",
					Resource: "assignment",
					Data: &CourseScopedID{
						CourseID: assignment.CourseID,
						ID:       assignment.ID,
					},
				})
			}
		case "enrollment":
			if enrollment, ok := result.Data.(*Enrollment); ok {
				rollbackOps = append(rollbackOps, BatchOperation{
					ID:       "rollback_" + original.ID,
					Type:     "delete",
					Resource: "enrollment",
					Data: &CourseScopedID{
						CourseID: enrollment.CourseID,
						ID:       enrollment.ID,
					},
				})
			}
		}
	}

	// Execute rollback operations if any
	if len(rollbackOps) > 0 {
		_, _ = t.executor.Execute(ctx, rollbackOps)
	}
}

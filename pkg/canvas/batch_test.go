package canvas_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edukit-io/canvas/pkg/canvas"
)

var errCreateFailed = errors.New("create failed")

// MockClient implements canvas.Client for testing. Only the resource clients
// a test wires in are usable; the rest return nil.
type MockClient struct {
	courses     *MockCoursesClient
	assignments *MockAssignmentsClient
	enrollments *MockEnrollmentsClient
}

func (m *MockClient) Accounts() canvas.AccountsClient       { return nil }
func (m *MockClient) Users() canvas.UsersClient             { return nil }
func (m *MockClient) Terms() canvas.TermsClient             { return nil }
func (m *MockClient) Courses() canvas.CoursesClient         { return m.courses }
func (m *MockClient) Modules() canvas.ModulesClient         { return nil }
func (m *MockClient) Assignments() canvas.AssignmentsClient { return m.assignments }
func (m *MockClient) Sections() canvas.SectionsClient       { return nil }
func (m *MockClient) Rubrics() canvas.RubricsClient         { return nil }
func (m *MockClient) Submissions() canvas.SubmissionsClient { return nil }
func (m *MockClient) Enrollments() canvas.EnrollmentsClient { return m.enrollments }
func (m *MockClient) Files() canvas.FilesClient             { return nil }
func (m *MockClient) Progress() canvas.ProgressClient       { return nil }

func (m *MockClient) GetSelf(ctx context.Context) (*canvas.User, error) {
	return nil, nil
}

// MockCoursesClient implements canvas.CoursesClient for testing.
type MockCoursesClient struct {
	mock.Mock
}

func (m *MockCoursesClient) List(ctx context.Context, params *canvas.ListParams) (*canvas.Page[canvas.Course], error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*canvas.Page[canvas.Course]), args.Error(1)
}

func (m *MockCoursesClient) Get(ctx context.Context, courseID int64, include ...string) (*canvas.Course, error) {
	args := m.Called(ctx, courseID, include)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*canvas.Course), args.Error(1)
}

func (m *MockCoursesClient) Create(ctx context.Context, accountID int64, request *canvas.CourseCreateRequest) (*canvas.Course, error) {
	args := m.Called(ctx, accountID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*canvas.Course), args.Error(1)
}

func (m *MockCoursesClient) Update(ctx context.Context, courseID int64, request *canvas.CourseUpdateRequest) (*canvas.Course, error) {
	args := m.Called(ctx, courseID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*canvas.Course), args.Error(1)
}

func (m *MockCoursesClient) Delete(ctx context.Context, courseID int64, event string) error {
	args := m.Called(ctx, courseID, event)

	return args.Error(0)
}

func (m *MockCoursesClient) ListUsers(ctx context.Context, courseID int64, params *canvas.ListParams) (*canvas.Page[canvas.User], error) {
	args := m.Called(ctx, courseID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*canvas.Page[canvas.User]), args.Error(1)
}

// MockAssignmentsClient implements canvas.AssignmentsClient for testing.
type MockAssignmentsClient struct {
	mock.Mock
}

func (m *MockAssignmentsClient) List(ctx context.Context, courseID int64, params *canvas.ListParams) (*canvas.Page[canvas.Assignment], error) {
	args := m.Called(ctx, courseID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*canvas.Page[canvas.Assignment]), args.Error(1)
}

func (m *MockAssignmentsClient) Get(ctx context.Context, courseID, assignmentID int64, include ...string) (*canvas.Assignment, error) {
	args := m.Called(ctx, courseID, assignmentID, include)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*canvas.Assignment), args.Error(1)
}

func (m *MockAssignmentsClient) Create(ctx context.Context, courseID int64, request *canvas.AssignmentCreateRequest) (*canvas.Assignment, error) {
	args := m.Called(ctx, courseID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*canvas.Assignment), args.Error(1)
}

func (m *MockAssignmentsClient) Update(ctx context.Context, courseID, assignmentID int64, request *canvas.AssignmentUpdateRequest) (*canvas.Assignment, error) {
	args := m.Called(ctx, courseID, assignmentID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*canvas.Assignment), args.Error(1)
}

func (m *MockAssignmentsClient) Delete(ctx context.Context, courseID, assignmentID int64) (*canvas.Assignment, error) {
	args := m.Called(ctx, courseID, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*canvas.Assignment), args.Error(1)
}

// MockEnrollmentsClient implements canvas.EnrollmentsClient for testing.
type MockEnrollmentsClient struct {
	mock.Mock
}

func (m *MockEnrollmentsClient) ListForCourse(ctx context.Context, courseID int64, params *canvas.ListParams) (*canvas.Page[canvas.Enrollment], error) {
	args := m.Called(ctx, courseID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*canvas.Page[canvas.Enrollment]), args.Error(1)
}

func (m *MockEnrollmentsClient) ListForSection(ctx context.Context, sectionID int64, params *canvas.ListParams) (*canvas.Page[canvas.Enrollment], error) {
	args := m.Called(ctx, sectionID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*canvas.Page[canvas.Enrollment]), args.Error(1)
}

func (m *MockEnrollmentsClient) ListForUser(ctx context.Context, userID int64, params *canvas.ListParams) (*canvas.Page[canvas.Enrollment], error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*canvas.Page[canvas.Enrollment]), args.Error(1)
}

func (m *MockEnrollmentsClient) Get(ctx context.Context, accountID, enrollmentID int64) (*canvas.Enrollment, error) {
	args := m.Called(ctx, accountID, enrollmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*canvas.Enrollment), args.Error(1)
}

func (m *MockEnrollmentsClient) Create(ctx context.Context, courseID int64, request *canvas.EnrollmentCreateRequest) (*canvas.Enrollment, error) {
	args := m.Called(ctx, courseID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*canvas.Enrollment), args.Error(1)
}

func (m *MockEnrollmentsClient) Remove(ctx context.Context, courseID, enrollmentID int64, task string) (*canvas.Enrollment, error) {
	args := m.Called(ctx, courseID, enrollmentID, task)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*canvas.Enrollment), args.Error(1)
}

func (m *MockEnrollmentsClient) Accept(ctx context.Context, courseID, enrollmentID int64) error {
	args := m.Called(ctx, courseID, enrollmentID)

	return args.Error(0)
}

func (m *MockEnrollmentsClient) Reject(ctx context.Context, courseID, enrollmentID int64) error {
	args := m.Called(ctx, courseID, enrollmentID)

	return args.Error(0)
}

func (m *MockEnrollmentsClient) Reactivate(ctx context.Context, courseID, enrollmentID int64) (*canvas.Enrollment, error) {
	args := m.Called(ctx, courseID, enrollmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*canvas.Enrollment), args.Error(1)
}

func TestBatchExecutor_Execute(t *testing.T) {
	t.Parallel()

	courses := &MockCoursesClient{}
	assignments := &MockAssignmentsClient{}
	client := &MockClient{courses: courses, assignments: assignments}

	createReq := &canvas.CourseCreateRequest{Course: canvas.CourseParams{Name: "Biology 101"}}
	courses.On("Create", mock.Anything, int64(1), createReq).Return(&canvas.Course{ID: 7, Name: "Biology 101"}, nil)
	courses.On("Get", mock.Anything, int64(9), mock.Anything).Return(&canvas.Course{ID: 9}, nil)

	assignReq := &canvas.AssignmentCreateRequest{Assignment: canvas.AssignmentParams{Name: "Essay 1"}}
	assignments.On("Create", mock.Anything, int64(7), assignReq).Return(&canvas.Assignment{ID: 21, CourseID: 7}, nil)

	operations := canvas.NewBatchBuilder().
		AddCreateCourse("create-course", 1, createReq).
		AddGetCourse("get-course", 9).
		AddCreateAssignment("create-assignment", 7, assignReq).
		Build()

	executor := canvas.NewBatchExecutor(client, 2)

	results, err := executor.Execute(context.Background(), operations)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for _, result := range results {
		assert.True(t, result.Success, "operation %s failed: %v", result.ID, result.Error)
		assert.Positive(t, result.Duration)
	}

	courses.AssertExpectations(t)
	assignments.AssertExpectations(t)
}

func TestBatchExecutor_UnsupportedResource(t *testing.T) {
	t.Parallel()

	executor := canvas.NewBatchExecutor(&MockClient{}, 1)

	results, err := executor.Execute(context.Background(), []canvas.BatchOperation{
		{ID: "op1", Type: "create", Resource: "gradebook", Data: nil},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	require.ErrorIs(t, results[0].Error, canvas.ErrUnsupportedResourceType)
}

func TestBatchExecutor_InvalidDataType(t *testing.T) {
	t.Parallel()

	executor := canvas.NewBatchExecutor(&MockClient{courses: &MockCoursesClient{}}, 1)

	results, err := executor.Execute(context.Background(), []canvas.BatchOperation{
		{ID: "op1", Type: "create", Resource: "course", Data: "not a request"},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	require.ErrorIs(t, results[0].Error, canvas.ErrInvalidDataTypeCourse)
}

func TestBatchExecutor_Callback(t *testing.T) {
	t.Parallel()

	courses := &MockCoursesClient{}
	courses.On("Get", mock.Anything, int64(9), mock.Anything).Return(&canvas.Course{ID: 9}, nil)

	executor := canvas.NewBatchExecutor(&MockClient{courses: courses}, 1)

	var callbackResult *canvas.BatchResult

	operations := []canvas.BatchOperation{
		{
			ID:       "get-course",
			Type:     "get",
			Resource: "course",
			Data:     int64(9),
			Callback: func(result *canvas.BatchResult) {
				callbackResult = result
			},
		},
	}

	_, err := executor.Execute(context.Background(), operations)
	require.NoError(t, err)
	require.NotNil(t, callbackResult)
	assert.True(t, callbackResult.Success)
}

func TestBatchBuilder(t *testing.T) {
	t.Parallel()

	operations := canvas.NewBatchBuilder().
		AddCreateCourse("op1", 1, &canvas.CourseCreateRequest{}).
		AddUpdateCourse("op2", 7, &canvas.CourseUpdateRequest{}).
		AddDeleteCourse("op3", 7).
		AddCreateEnrollment("op4", 7, &canvas.EnrollmentCreateRequest{}).
		Build()

	require.Len(t, operations, 4)
	assert.Equal(t, "create", operations[0].Type)
	assert.Equal(t, "course", operations[0].Resource)
	assert.Equal(t, "update", operations[1].Type)
	assert.Equal(t, "delete", operations[2].Type)
	assert.Equal(t, "enrollment", operations[3].Resource)
}

func TestBatchTransaction_RollbackOnFailure(t *testing.T) {
	t.Parallel()

	courses := &MockCoursesClient{}
	assignments := &MockAssignmentsClient{}
	client := &MockClient{courses: courses, assignments: assignments}

	createReq := &canvas.CourseCreateRequest{Course: canvas.CourseParams{Name: "Biology 101"}}
	courses.On("Create", mock.Anything, int64(1), createReq).Return(&canvas.Course{ID: 7}, nil)

	assignReq := &canvas.AssignmentCreateRequest{Assignment: canvas.AssignmentParams{Name: "Essay 1"}}
	assignments.On("Create", mock.Anything, int64(7), assignReq).Return(nil, errCreateFailed)

	// Rollback should delete the course that was created
	courses.On("Delete", mock.Anything, int64(7), canvas.CourseEventDelete).Return(nil)

	executor := canvas.NewBatchExecutor(client, 1)
	transaction := canvas.NewBatchTransaction(executor).
		Add(canvas.BatchOperation{
			ID:       "create-course",
			Type:     "create",
			Resource: "course",
			Data:     &canvas.AccountScopedCreate[canvas.CourseCreateRequest]{AccountID: 1, Request: createReq},
		}).
		Add(canvas.BatchOperation{
			ID:       "create-assignment",
			Type:     "create",
			Resource: "assignment",
			Data:     &canvas.CourseScopedCreate[canvas.AssignmentCreateRequest]{CourseID: 7, Request: assignReq},
		})

	results, err := transaction.Execute(context.Background())
	require.Error(t, err)
	require.ErrorIs(t, err, canvas.ErrTransactionFailed)
	require.Len(t, results, 2)

	courses.AssertCalled(t, "Delete", mock.Anything, int64(7), canvas.CourseEventDelete)
}

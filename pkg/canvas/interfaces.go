package canvas

import (
	"context"
	"io"
)

// AccountsClient manages accounts and their sub-resources.
type AccountsClient interface {
	List(ctx context.Context, params *ListParams) (*Page[Account], error)
	Get(ctx context.Context, accountID int64) (*Account, error)
	Update(ctx context.Context, accountID int64, name string) (*Account, error)
	ListSubAccounts(ctx context.Context, accountID int64, params *ListParams) (*Page[Account], error)
	ListCourses(ctx context.Context, accountID int64, params *ListParams) (*Page[Course], error)
	GetTermsOfService(ctx context.Context, accountID int64) (*TermsOfService, error)
}

// CoursesClient manages courses.
type CoursesClient interface {
	// List returns the courses visible to the authenticated user.
	List(ctx context.Context, params *ListParams) (*Page[Course], error)
	Get(ctx context.Context, courseID int64, include ...string) (*Course, error)
	Create(ctx context.Context, accountID int64, request *CourseCreateRequest) (*Course, error)
	Update(ctx context.Context, courseID int64, request *CourseUpdateRequest) (*Course, error)
	// Delete removes or concludes a course depending on event
	// (CourseEventDelete or CourseEventConclude).
	Delete(ctx context.Context, courseID int64, event string) error
	ListUsers(ctx context.Context, courseID int64, params *ListParams) (*Page[User], error)
}

// ModulesClient manages modules and module items within a course.
type ModulesClient interface {
	List(ctx context.Context, courseID int64, params *ListParams) (*Page[Module], error)
	Get(ctx context.Context, courseID, moduleID int64, include ...string) (*Module, error)
	Create(ctx context.Context, courseID int64, request *ModuleCreateRequest) (*Module, error)
	Update(ctx context.Context, courseID, moduleID int64, request *ModuleUpdateRequest) (*Module, error)
	Delete(ctx context.Context, courseID, moduleID int64) error

	ListItems(ctx context.Context, courseID, moduleID int64, params *ListParams) (*Page[ModuleItem], error)
	GetItem(ctx context.Context, courseID, moduleID, itemID int64) (*ModuleItem, error)
	CreateItem(ctx context.Context, courseID, moduleID int64, request *ModuleItemCreateRequest) (*ModuleItem, error)
	UpdateItem(ctx context.Context, courseID, moduleID, itemID int64, request *ModuleItemUpdateRequest) (*ModuleItem, error)
	DeleteItem(ctx context.Context, courseID, moduleID, itemID int64) error
}

// AssignmentsClient manages assignments within a course.
type AssignmentsClient interface {
	List(ctx context.Context, courseID int64, params *ListParams) (*Page[Assignment], error)
	Get(ctx context.Context, courseID, assignmentID int64, include ...string) (*Assignment, error)
	Create(ctx context.Context, courseID int64, request *AssignmentCreateRequest) (*Assignment, error)
	Update(ctx context.Context, courseID, assignmentID int64, request *AssignmentUpdateRequest) (*Assignment, error)
	Delete(ctx context.Context, courseID, assignmentID int64) (*Assignment, error)
}

// SubmissionsClient manages submissions and grading for an assignment.
type SubmissionsClient interface {
	List(ctx context.Context, courseID, assignmentID int64, params *ListParams) (*Page[Submission], error)
	// Get returns a single user's submission. userID may be a numeric ID or
	// "self".
	Get(ctx context.Context, courseID, assignmentID int64, userID string, include ...string) (*Submission, error)
	// Submit creates a submission on behalf of the authenticated user.
	Submit(ctx context.Context, courseID, assignmentID int64, request *SubmissionRequest) (*Submission, error)
	// Grade updates the grade (or excuses) a user's submission.
	Grade(ctx context.Context, courseID, assignmentID int64, userID string, request *GradeRequest) (*Submission, error)
}

// RubricsClient manages rubrics within a course.
type RubricsClient interface {
	List(ctx context.Context, courseID int64, params *ListParams) (*Page[Rubric], error)
	Get(ctx context.Context, courseID, rubricID int64, include ...string) (*Rubric, error)
	Create(ctx context.Context, courseID int64, request *RubricCreateRequest) (*Rubric, error)
	Update(ctx context.Context, courseID, rubricID int64, request *RubricUpdateRequest) (*Rubric, error)
	Delete(ctx context.Context, courseID, rubricID int64) (*Rubric, error)
}

// EnrollmentsClient manages course, section, and user enrollments.
type EnrollmentsClient interface {
	ListForCourse(ctx context.Context, courseID int64, params *ListParams) (*Page[Enrollment], error)
	ListForSection(ctx context.Context, sectionID int64, params *ListParams) (*Page[Enrollment], error)
	ListForUser(ctx context.Context, userID int64, params *ListParams) (*Page[Enrollment], error)
	Get(ctx context.Context, accountID, enrollmentID int64) (*Enrollment, error)
	Create(ctx context.Context, courseID int64, request *EnrollmentCreateRequest) (*Enrollment, error)
	// Remove concludes, deletes, or deactivates an enrollment depending on
	// task (EnrollmentTaskConclude, EnrollmentTaskDelete, EnrollmentTaskDeactivate).
	Remove(ctx context.Context, courseID, enrollmentID int64, task string) (*Enrollment, error)
	// Accept and Reject act on a pending invitation as the invited user.
	Accept(ctx context.Context, courseID, enrollmentID int64) error
	Reject(ctx context.Context, courseID, enrollmentID int64) error
	Reactivate(ctx context.Context, courseID, enrollmentID int64) (*Enrollment, error)
}

// UsersClient manages users.
type UsersClient interface {
	// GetSelf returns the user the current credentials authenticate as.
	GetSelf(ctx context.Context) (*User, error)
	Get(ctx context.Context, userID int64) (*User, error)
	ListForAccount(ctx context.Context, accountID int64, params *ListParams) (*Page[User], error)
	Create(ctx context.Context, accountID int64, request *UserCreateRequest) (*User, error)
	Update(ctx context.Context, userID int64, request *UserUpdateRequest) (*User, error)
}

// SectionsClient manages course sections.
type SectionsClient interface {
	List(ctx context.Context, courseID int64, params *ListParams) (*Page[Section], error)
	Get(ctx context.Context, sectionID int64) (*Section, error)
	Create(ctx context.Context, courseID int64, request *SectionCreateRequest) (*Section, error)
	Update(ctx context.Context, sectionID int64, request *SectionUpdateRequest) (*Section, error)
	Delete(ctx context.Context, sectionID int64) (*Section, error)
}

// FilesClient manages files and the two-step upload flow.
type FilesClient interface {
	ListForCourse(ctx context.Context, courseID int64, params *ListParams) (*Page[File], error)
	ListForUser(ctx context.Context, userID int64, params *ListParams) (*Page[File], error)
	Get(ctx context.Context, fileID int64) (*File, error)
	Delete(ctx context.Context, fileID int64) (*File, error)
	// UploadToCourse declares the upload against the course files area, then
	// streams content to the storage endpoint it returns.
	UploadToCourse(ctx context.Context, courseID int64, request *FileUploadRequest, content io.Reader) (*File, error)
	// UploadToUser uploads into a user's personal files area.
	UploadToUser(ctx context.Context, userID int64, request *FileUploadRequest, content io.Reader) (*File, error)
}

// TermsClient provides read access to an account's enrollment terms.
type TermsClient interface {
	List(ctx context.Context, accountID int64, params *ListParams) (*Page[EnrollmentTerm], error)
	Get(ctx context.Context, accountID, termID int64) (*EnrollmentTerm, error)
}

// ProgressClient tracks asynchronous server-side operations.
type ProgressClient interface {
	Get(ctx context.Context, progressID int64) (*Progress, error)
	Cancel(ctx context.Context, progressID int64, message string) (*Progress, error)
	// PollUntilComplete polls until the operation reaches a terminal state or
	// ctx is done.
	PollUntilComplete(ctx context.Context, progressID int64) (*Progress, error)
}

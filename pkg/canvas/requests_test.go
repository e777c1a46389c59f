package canvas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukit-io/canvas/pkg/canvas"
)

func TestCourseCreateRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := &canvas.CourseCreateRequest{
		Course: canvas.CourseParams{Name: "Biology 101", CourseCode: "BIO101"},
	}
	require.NoError(t, valid.Validate())

	missing := &canvas.CourseCreateRequest{}
	require.ErrorIs(t, missing.Validate(), canvas.ErrCourseNameRequired)
}

func TestValidateCourseEvent(t *testing.T) {
	t.Parallel()

	require.NoError(t, canvas.ValidateCourseEvent(canvas.CourseEventDelete))
	require.NoError(t, canvas.ValidateCourseEvent(canvas.CourseEventConclude))
	require.ErrorIs(t, canvas.ValidateCourseEvent("archive"), canvas.ErrInvalidWorkflowEvent)
}

func TestAssignmentCreateRequest_Validate(t *testing.T) {
	t.Parallel()

	negativePoints := -5.0

	tests := []struct {
		name    string
		request *canvas.AssignmentCreateRequest
		wantErr error
	}{
		{
			name: "valid",
			request: &canvas.AssignmentCreateRequest{
				Assignment: canvas.AssignmentParams{
					Name:            "Essay 1",
					GradingType:     canvas.GradingTypePoints,
					SubmissionTypes: []string{canvas.SubmissionTypeOnlineTextEntry, canvas.SubmissionTypeOnlineUpload},
				},
			},
		},
		{
			name:    "missing name",
			request: &canvas.AssignmentCreateRequest{},
			wantErr: canvas.ErrAssignmentNameRequired,
		},
		{
			name: "negative points",
			request: &canvas.AssignmentCreateRequest{
				Assignment: canvas.AssignmentParams{Name: "Essay 1", PointsPossible: &negativePoints},
			},
			wantErr: canvas.ErrPointsPossibleNegative,
		},
		{
			name: "unknown grading type",
			request: &canvas.AssignmentCreateRequest{
				Assignment: canvas.AssignmentParams{Name: "Essay 1", GradingType: "stars"},
			},
			wantErr: canvas.ErrInvalidGradingType,
		},
		{
			name: "unknown submission type",
			request: &canvas.AssignmentCreateRequest{
				Assignment: canvas.AssignmentParams{Name: "Essay 1", SubmissionTypes: []string{"carrier_pigeon"}},
			},
			wantErr: canvas.ErrInvalidSubmissionType,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			err := testCase.request.Validate()
			if testCase.wantErr != nil {
				require.ErrorIs(t, err, testCase.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestAssignmentUpdateRequest_NameOptional(t *testing.T) {
	t.Parallel()

	update := &canvas.AssignmentUpdateRequest{
		Assignment: canvas.AssignmentParams{Description: "updated"},
	}
	require.NoError(t, update.Validate())
}

func TestModuleItemCreateRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  canvas.ModuleItemParams
		wantErr error
	}{
		{
			name:   "assignment item",
			params: canvas.ModuleItemParams{Title: "Week 1 Essay", Type: canvas.ModuleItemTypeAssignment, ContentID: 42},
		},
		{
			name:   "subheader needs no content",
			params: canvas.ModuleItemParams{Title: "Week 1", Type: canvas.ModuleItemTypeSubHeader},
		},
		{
			name:   "page item",
			params: canvas.ModuleItemParams{Title: "Syllabus", Type: canvas.ModuleItemTypePage, PageURL: "syllabus"},
		},
		{
			name:   "external url item",
			params: canvas.ModuleItemParams{Title: "Reading", Type: canvas.ModuleItemTypeExternalURL, ExternalURL: "https://example.com"},
		},
		{
			name:    "missing type",
			params:  canvas.ModuleItemParams{Title: "Week 1 Essay"},
			wantErr: canvas.ErrModuleItemTypeRequired,
		},
		{
			name:    "assignment without content id",
			params:  canvas.ModuleItemParams{Title: "Week 1 Essay", Type: canvas.ModuleItemTypeAssignment},
			wantErr: canvas.ErrContentIDRequired,
		},
		{
			name:    "external url without url",
			params:  canvas.ModuleItemParams{Title: "Reading", Type: canvas.ModuleItemTypeExternalURL},
			wantErr: canvas.ErrExternalURLRequired,
		},
		{
			name:    "unknown type",
			params:  canvas.ModuleItemParams{Title: "Mystery", Type: "Hologram"},
			wantErr: canvas.ErrInvalidModuleItemType,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			request := &canvas.ModuleItemCreateRequest{ModuleItem: testCase.params}

			err := request.Validate()
			if testCase.wantErr != nil {
				require.ErrorIs(t, err, testCase.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSubmissionRequest_Validate(t *testing.T) {
	t.Parallel()

	textEntry := &canvas.SubmissionRequest{
		Submission: canvas.SubmissionParams{
			SubmissionType: canvas.SubmissionTypeOnlineTextEntry,
			Body:           "my essay",
		},
	}
	require.NoError(t, textEntry.Validate())

	missingBody := &canvas.SubmissionRequest{
		Submission: canvas.SubmissionParams{SubmissionType: canvas.SubmissionTypeOnlineTextEntry},
	}
	require.ErrorIs(t, missingBody.Validate(), canvas.ErrSubmissionBodyRequired)

	missingURL := &canvas.SubmissionRequest{
		Submission: canvas.SubmissionParams{SubmissionType: canvas.SubmissionTypeOnlineURL},
	}
	require.ErrorIs(t, missingURL.Validate(), canvas.ErrSubmissionBodyRequired)

	missingFiles := &canvas.SubmissionRequest{
		Submission: canvas.SubmissionParams{SubmissionType: canvas.SubmissionTypeOnlineUpload},
	}
	require.ErrorIs(t, missingFiles.Validate(), canvas.ErrSubmissionBodyRequired)

	missingType := &canvas.SubmissionRequest{}
	require.ErrorIs(t, missingType.Validate(), canvas.ErrSubmissionTypeRequired)

	onPaper := &canvas.SubmissionRequest{
		Submission: canvas.SubmissionParams{SubmissionType: canvas.SubmissionTypeOnPaper},
	}
	require.ErrorIs(t, onPaper.Validate(), canvas.ErrInvalidSubmissionType)
}

func TestGradeRequest_Validate(t *testing.T) {
	t.Parallel()

	graded := &canvas.GradeRequest{Submission: canvas.GradeParams{PostedGrade: "95"}}
	require.NoError(t, graded.Validate())

	excused := true
	excuseOnly := &canvas.GradeRequest{Submission: canvas.GradeParams{Excuse: &excused}}
	require.NoError(t, excuseOnly.Validate())

	empty := &canvas.GradeRequest{}
	require.ErrorIs(t, empty.Validate(), canvas.ErrGradeOrExcuseRequired)
}

func TestEnrollmentCreateRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := &canvas.EnrollmentCreateRequest{
		Enrollment: canvas.EnrollmentParams{
			UserID:          "123",
			Type:            canvas.EnrollmentTypeStudent,
			EnrollmentState: canvas.EnrollmentStateActive,
		},
	}
	require.NoError(t, valid.Validate())

	missingUser := &canvas.EnrollmentCreateRequest{
		Enrollment: canvas.EnrollmentParams{Type: canvas.EnrollmentTypeStudent},
	}
	require.ErrorIs(t, missingUser.Validate(), canvas.ErrEnrollmentUserRequired)

	badType := &canvas.EnrollmentCreateRequest{
		Enrollment: canvas.EnrollmentParams{UserID: "123", Type: "AuditorEnrollment"},
	}
	require.ErrorIs(t, badType.Validate(), canvas.ErrInvalidEnrollmentType)

	badState := &canvas.EnrollmentCreateRequest{
		Enrollment: canvas.EnrollmentParams{
			UserID:          "123",
			Type:            canvas.EnrollmentTypeStudent,
			EnrollmentState: "pending",
		},
	}
	require.ErrorIs(t, badState.Validate(), canvas.ErrInvalidEnrollmentState)
}

func TestValidateEnrollmentTask(t *testing.T) {
	t.Parallel()

	require.NoError(t, canvas.ValidateEnrollmentTask(canvas.EnrollmentTaskConclude))
	require.NoError(t, canvas.ValidateEnrollmentTask(canvas.EnrollmentTaskDelete))
	require.NoError(t, canvas.ValidateEnrollmentTask(canvas.EnrollmentTaskDeactivate))
	require.ErrorIs(t, canvas.ValidateEnrollmentTask("expel"), canvas.ErrInvalidEnrollmentTask)
}

func TestRubricCreateRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := &canvas.RubricCreateRequest{
		Rubric: canvas.RubricParams{
			Title: "Essay Rubric",
			Criteria: []canvas.RubricCriterion{
				{Description: "Thesis", Points: 10},
			},
		},
	}
	require.NoError(t, valid.Validate())

	missingTitle := &canvas.RubricCreateRequest{
		Rubric: canvas.RubricParams{Criteria: []canvas.RubricCriterion{{Description: "Thesis", Points: 10}}},
	}
	require.ErrorIs(t, missingTitle.Validate(), canvas.ErrRubricTitleRequired)

	missingCriteria := &canvas.RubricCreateRequest{
		Rubric: canvas.RubricParams{Title: "Essay Rubric"},
	}
	require.ErrorIs(t, missingCriteria.Validate(), canvas.ErrRubricCriterionRequired)
}

func TestUserCreateRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := &canvas.UserCreateRequest{
		User:      canvas.UserParams{Name: "Jordan Doe"},
		Pseudonym: canvas.PseudonymParams{UniqueID: "jdoe@example.com"},
	}
	require.NoError(t, valid.Validate())

	missingName := &canvas.UserCreateRequest{
		Pseudonym: canvas.PseudonymParams{UniqueID: "jdoe@example.com"},
	}
	require.ErrorIs(t, missingName.Validate(), canvas.ErrUserNameRequired)

	missingLogin := &canvas.UserCreateRequest{
		User: canvas.UserParams{Name: "Jordan Doe"},
	}
	require.ErrorIs(t, missingLogin.Validate(), canvas.ErrPseudonymUniqueIDRequired)
}

func TestSectionCreateRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := &canvas.SectionCreateRequest{
		CourseSection: canvas.SectionParams{Name: "Section A"},
	}
	require.NoError(t, valid.Validate())

	missing := &canvas.SectionCreateRequest{}
	require.ErrorIs(t, missing.Validate(), canvas.ErrSectionNameRequired)
}

func TestFileUploadRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := &canvas.FileUploadRequest{Name: "syllabus.pdf", Size: 1024}
	require.NoError(t, valid.Validate())

	missingName := &canvas.FileUploadRequest{Size: 1024}
	require.ErrorIs(t, missingName.Validate(), canvas.ErrFileNameRequired)

	zeroSize := &canvas.FileUploadRequest{Name: "syllabus.pdf"}
	require.ErrorIs(t, zeroSize.Validate(), canvas.ErrFileSizeRequired)
}

func TestProgress_TerminalStates(t *testing.T) {
	t.Parallel()

	completed := &canvas.Progress{WorkflowState: canvas.ProgressStateCompleted}
	assert.True(t, completed.Completed())
	assert.False(t, completed.Failed())
	assert.True(t, completed.Terminal())

	failed := &canvas.Progress{WorkflowState: canvas.ProgressStateFailed}
	assert.True(t, failed.Failed())
	assert.True(t, failed.Terminal())

	running := &canvas.Progress{WorkflowState: canvas.ProgressStateRunning}
	assert.False(t, running.Terminal())
}

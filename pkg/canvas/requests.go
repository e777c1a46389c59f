package canvas

import (
	"fmt"
	"time"
)

// Request payloads are envelope-keyed: the API expects the resource fields
// nested under a key named after the resource ("course", "assignment", ...).
// Validate is called by the resource clients before anything goes on the wire
// so that required-field and enum mistakes fail fast without an HTTP round
// trip.

// CourseParams holds the writable fields of a course.
type CourseParams struct {
	Name                             string     `json:"name,omitempty"`
	CourseCode                       string     `json:"course_code,omitempty"`
	StartAt                          *time.Time `json:"start_at,omitempty"`
	EndAt                            *time.Time `json:"end_at,omitempty"`
	License                          string     `json:"license,omitempty"`
	IsPublic                         *bool      `json:"is_public,omitempty"`
	SyllabusBody                     string     `json:"syllabus_body,omitempty"`
	TermID                           int64      `json:"term_id,omitempty"`
	SISCourseID                      string     `json:"sis_course_id,omitempty"`
	RestrictEnrollmentsToCourseDates *bool      `json:"restrict_enrollments_to_course_dates,omitempty"`
}

// CourseCreateRequest creates a course under an account.
type CourseCreateRequest struct {
	Course   CourseParams `json:"course"`
	Offer    bool         `json:"offer,omitempty"`
	EnrollMe bool         `json:"enroll_me,omitempty"`
}

// Validate checks required fields.
func (r *CourseCreateRequest) Validate() error {
	if r.Course.Name == "" {
		return ErrCourseNameRequired
	}

	return nil
}

// CourseUpdateRequest updates an existing course. All fields are optional.
type CourseUpdateRequest struct {
	Course CourseParams `json:"course"`
}

// Validate checks required fields. Updates carry no required fields.
func (r *CourseUpdateRequest) Validate() error {
	return nil
}

// Course deletion events.
const (
	CourseEventDelete   = "delete"
	CourseEventConclude = "conclude"
)

// ValidateCourseEvent checks that event names a supported deletion mode.
func ValidateCourseEvent(event string) error {
	switch event {
	case CourseEventDelete, CourseEventConclude:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidWorkflowEvent, event)
	}
}

// ModuleParams holds the writable fields of a module.
type ModuleParams struct {
	Name                      string     `json:"name,omitempty"`
	Position                  int        `json:"position,omitempty"`
	UnlockAt                  *time.Time `json:"unlock_at,omitempty"`
	RequireSequentialProgress *bool      `json:"require_sequential_progress,omitempty"`
	PrerequisiteModuleIDs     []int64    `json:"prerequisite_module_ids,omitempty"`
	PublishFinalGrade         *bool      `json:"publish_final_grade,omitempty"`
	Published                 *bool      `json:"published,omitempty"`
}

// ModuleCreateRequest creates a module within a course.
type ModuleCreateRequest struct {
	Module ModuleParams `json:"module"`
}

// Validate checks required fields.
func (r *ModuleCreateRequest) Validate() error {
	if r.Module.Name == "" {
		return ErrModuleNameRequired
	}

	return nil
}

// ModuleUpdateRequest updates an existing module.
type ModuleUpdateRequest struct {
	Module ModuleParams `json:"module"`
}

// Validate checks required fields. Updates carry no required fields.
func (r *ModuleUpdateRequest) Validate() error {
	return nil
}

// ModuleItemParams holds the writable fields of a module item.
type ModuleItemParams struct {
	Title                 string                 `json:"title,omitempty"`
	Type                  string                 `json:"type,omitempty"`
	ContentID             int64                  `json:"content_id,omitempty"`
	Position              int                    `json:"position,omitempty"`
	Indent                int                    `json:"indent,omitempty"`
	PageURL               string                 `json:"page_url,omitempty"`
	ExternalURL           string                 `json:"external_url,omitempty"`
	NewTab                *bool                  `json:"new_tab,omitempty"`
	CompletionRequirement *CompletionRequirement `json:"completion_requirement,omitempty"`
	Published             *bool                  `json:"published,omitempty"`
}

// ModuleItemCreateRequest adds an item to a module.
type ModuleItemCreateRequest struct {
	ModuleItem ModuleItemParams `json:"module_item"`
}

// Validate checks the item type and its type-specific required fields.
func (r *ModuleItemCreateRequest) Validate() error {
	params := r.ModuleItem
	if params.Type == "" {
		return ErrModuleItemTypeRequired
	}

	switch params.Type {
	case ModuleItemTypeFile, ModuleItemTypeDiscussion, ModuleItemTypeAssignment, ModuleItemTypeQuiz:
		if params.ContentID == 0 {
			return fmt.Errorf("%w (type %s)", ErrContentIDRequired, params.Type)
		}
	case ModuleItemTypePage:
		if params.PageURL == "" {
			return fmt.Errorf("%w: page_url (type %s)", ErrContentIDRequired, params.Type)
		}
	case ModuleItemTypeExternalURL, ModuleItemTypeExternalTool:
		if params.ExternalURL == "" {
			return fmt.Errorf("%w (type %s)", ErrExternalURLRequired, params.Type)
		}
	case ModuleItemTypeSubHeader:
		// Only a title, nothing else to check.
	default:
		return fmt.Errorf("%w: %q", ErrInvalidModuleItemType, params.Type)
	}

	return nil
}

// ModuleItemUpdateRequest updates an existing module item.
type ModuleItemUpdateRequest struct {
	ModuleItem ModuleItemParams `json:"module_item"`
}

// Validate checks required fields. The type cannot be changed after creation
// so updates only reject unknown types.
func (r *ModuleItemUpdateRequest) Validate() error {
	if r.ModuleItem.Type == "" {
		return nil
	}

	switch r.ModuleItem.Type {
	case ModuleItemTypeFile, ModuleItemTypePage, ModuleItemTypeDiscussion,
		ModuleItemTypeAssignment, ModuleItemTypeQuiz, ModuleItemTypeSubHeader,
		ModuleItemTypeExternalURL, ModuleItemTypeExternalTool:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidModuleItemType, r.ModuleItem.Type)
	}
}

// AssignmentParams holds the writable fields of an assignment.
type AssignmentParams struct {
	Name            string     `json:"name,omitempty"`
	Description     string     `json:"description,omitempty"`
	Position        int        `json:"position,omitempty"`
	PointsPossible  *float64   `json:"points_possible,omitempty"`
	GradingType     string     `json:"grading_type,omitempty"`
	SubmissionTypes []string   `json:"submission_types,omitempty"`
	AllowedAttempts int        `json:"allowed_attempts,omitempty"`
	DueAt           *time.Time `json:"due_at,omitempty"`
	LockAt          *time.Time `json:"lock_at,omitempty"`
	UnlockAt        *time.Time `json:"unlock_at,omitempty"`
	Published       *bool      `json:"published,omitempty"`
}

func (p *AssignmentParams) validate(requireName bool) error {
	if requireName && p.Name == "" {
		return ErrAssignmentNameRequired
	}

	if p.PointsPossible != nil && *p.PointsPossible < 0 {
		return ErrPointsPossibleNegative
	}

	if p.GradingType != "" {
		switch p.GradingType {
		case GradingTypePassFail, GradingTypePercent, GradingTypeLetterGrade,
			GradingTypeGPAScale, GradingTypePoints, GradingTypeNotGraded:
		default:
			return fmt.Errorf("%w: %q", ErrInvalidGradingType, p.GradingType)
		}
	}

	for _, st := range p.SubmissionTypes {
		switch st {
		case SubmissionTypeOnlineTextEntry, SubmissionTypeOnlineURL, SubmissionTypeOnlineUpload,
			SubmissionTypeMediaRecording, SubmissionTypeStudentAnnotation, SubmissionTypeOnPaper,
			SubmissionTypeNone, SubmissionTypeExternalTool:
		default:
			return fmt.Errorf("%w: %q", ErrInvalidSubmissionType, st)
		}
	}

	return nil
}

// AssignmentCreateRequest creates an assignment within a course.
type AssignmentCreateRequest struct {
	Assignment AssignmentParams `json:"assignment"`
}

// Validate checks required fields and enum values.
func (r *AssignmentCreateRequest) Validate() error {
	return r.Assignment.validate(true)
}

// AssignmentUpdateRequest updates an existing assignment.
type AssignmentUpdateRequest struct {
	Assignment AssignmentParams `json:"assignment"`
}

// Validate checks enum values. The name is only required on create.
func (r *AssignmentUpdateRequest) Validate() error {
	return r.Assignment.validate(false)
}

// SubmissionParams holds the fields of a student submission.
type SubmissionParams struct {
	SubmissionType string  `json:"submission_type"`
	Body           string  `json:"body,omitempty"`
	URL            string  `json:"url,omitempty"`
	FileIDs        []int64 `json:"file_ids,omitempty"`
}

// CommentParams attaches a comment alongside a submission or grade.
type CommentParams struct {
	TextComment  string `json:"text_comment,omitempty"`
	GroupComment *bool  `json:"group_comment,omitempty"`
}

// SubmissionRequest submits work for an assignment on behalf of the caller.
type SubmissionRequest struct {
	Submission SubmissionParams `json:"submission"`
	Comment    *CommentParams   `json:"comment,omitempty"`
}

// Validate checks the submission type and its type-specific payload.
func (r *SubmissionRequest) Validate() error {
	params := r.Submission
	if params.SubmissionType == "" {
		return ErrSubmissionTypeRequired
	}

	switch params.SubmissionType {
	case SubmissionTypeOnlineTextEntry:
		if params.Body == "" {
			return ErrSubmissionBodyRequired
		}
	case SubmissionTypeOnlineURL:
		if params.URL == "" {
			return fmt.Errorf("%w: url", ErrSubmissionBodyRequired)
		}
	case SubmissionTypeOnlineUpload:
		if len(params.FileIDs) == 0 {
			return fmt.Errorf("%w: file_ids", ErrSubmissionBodyRequired)
		}
	case SubmissionTypeMediaRecording, SubmissionTypeStudentAnnotation:
		// Media and annotation payloads are referenced by ID elsewhere.
	default:
		return fmt.Errorf("%w: %q", ErrInvalidSubmissionType, params.SubmissionType)
	}

	return nil
}

// GradeParams holds the grading fields applied to a submission.
type GradeParams struct {
	PostedGrade string `json:"posted_grade,omitempty"`
	Excuse      *bool  `json:"excuse,omitempty"`
}

// GradeRequest grades or excuses a submission.
type GradeRequest struct {
	Submission GradeParams    `json:"submission"`
	Comment    *CommentParams `json:"comment,omitempty"`
}

// Validate requires either a posted grade or an excuse flag.
func (r *GradeRequest) Validate() error {
	if r.Submission.PostedGrade == "" && r.Submission.Excuse == nil {
		return ErrGradeOrExcuseRequired
	}

	return nil
}

// EnrollmentParams holds the writable fields of an enrollment. UserID is a
// string so SIS-style identifiers ("sis_user_id:...") pass through unchanged.
type EnrollmentParams struct {
	UserID                          string `json:"user_id"`
	Type                            string `json:"type"`
	EnrollmentState                 string `json:"enrollment_state,omitempty"`
	CourseSectionID                 int64  `json:"course_section_id,omitempty"`
	LimitPrivilegesToCourseSection  *bool  `json:"limit_privileges_to_course_section,omitempty"`
	Notify                          *bool  `json:"notify,omitempty"`
	StartAt                         *time.Time `json:"start_at,omitempty"`
	EndAt                           *time.Time `json:"end_at,omitempty"`
}

// EnrollmentCreateRequest enrolls a user in a course or section.
type EnrollmentCreateRequest struct {
	Enrollment EnrollmentParams `json:"enrollment"`
}

// Validate checks required fields and enum values.
func (r *EnrollmentCreateRequest) Validate() error {
	params := r.Enrollment
	if params.UserID == "" {
		return ErrEnrollmentUserRequired
	}

	switch params.Type {
	case EnrollmentTypeStudent, EnrollmentTypeTeacher, EnrollmentTypeTA,
		EnrollmentTypeObserver, EnrollmentTypeDesigner:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEnrollmentType, params.Type)
	}

	if params.EnrollmentState != "" {
		switch params.EnrollmentState {
		case EnrollmentStateActive, EnrollmentStateInvited, EnrollmentStateInactive:
		default:
			return fmt.Errorf("%w: %q", ErrInvalidEnrollmentState, params.EnrollmentState)
		}
	}

	return nil
}

// Enrollment removal tasks.
const (
	EnrollmentTaskConclude   = "conclude"
	EnrollmentTaskDelete     = "delete"
	EnrollmentTaskDeactivate = "deactivate"
)

// ValidateEnrollmentTask checks that task names a supported removal mode.
func ValidateEnrollmentTask(task string) error {
	switch task {
	case EnrollmentTaskConclude, EnrollmentTaskDelete, EnrollmentTaskDeactivate:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEnrollmentTask, task)
	}
}

// SectionParams holds the writable fields of a section.
type SectionParams struct {
	Name                              string     `json:"name,omitempty"`
	SISSectionID                      string     `json:"sis_section_id,omitempty"`
	StartAt                           *time.Time `json:"start_at,omitempty"`
	EndAt                             *time.Time `json:"end_at,omitempty"`
	RestrictEnrollmentsToSectionDates *bool      `json:"restrict_enrollments_to_section_dates,omitempty"`
}

// SectionCreateRequest creates a section within a course.
type SectionCreateRequest struct {
	CourseSection SectionParams `json:"course_section"`
}

// Validate checks required fields.
func (r *SectionCreateRequest) Validate() error {
	if r.CourseSection.Name == "" {
		return ErrSectionNameRequired
	}

	return nil
}

// SectionUpdateRequest updates an existing section.
type SectionUpdateRequest struct {
	CourseSection SectionParams `json:"course_section"`
}

// Validate checks required fields. Updates carry no required fields.
func (r *SectionUpdateRequest) Validate() error {
	return nil
}

// RubricParams holds the writable fields of a rubric.
type RubricParams struct {
	Title                     string            `json:"title,omitempty"`
	FreeFormCriterionComments *bool             `json:"free_form_criterion_comments,omitempty"`
	HideScoreTotal            *bool             `json:"hide_score_total,omitempty"`
	Criteria                  []RubricCriterion `json:"criteria,omitempty"`
}

// RubricAssociationParams links a rubric to an assignment or course.
type RubricAssociationParams struct {
	AssociationID   int64  `json:"association_id,omitempty"`
	AssociationType string `json:"association_type,omitempty"`
	UseForGrading   *bool  `json:"use_for_grading,omitempty"`
	Purpose         string `json:"purpose,omitempty"`
}

// RubricCreateRequest creates a rubric within a course.
type RubricCreateRequest struct {
	Rubric            RubricParams             `json:"rubric"`
	RubricAssociation *RubricAssociationParams `json:"rubric_association,omitempty"`
}

// Validate checks required fields.
func (r *RubricCreateRequest) Validate() error {
	if r.Rubric.Title == "" {
		return ErrRubricTitleRequired
	}

	if len(r.Rubric.Criteria) == 0 {
		return ErrRubricCriterionRequired
	}

	return nil
}

// RubricUpdateRequest updates an existing rubric.
type RubricUpdateRequest struct {
	Rubric RubricParams `json:"rubric"`
}

// Validate checks required fields. Updates carry no required fields.
func (r *RubricUpdateRequest) Validate() error {
	return nil
}

// UserParams holds the writable fields of a user.
type UserParams struct {
	Name         string `json:"name,omitempty"`
	ShortName    string `json:"short_name,omitempty"`
	SortableName string `json:"sortable_name,omitempty"`
	TimeZone     string `json:"time_zone,omitempty"`
	Locale       string `json:"locale,omitempty"`
	Email        string `json:"email,omitempty"`
}

// PseudonymParams holds the login credentials created alongside a user.
type PseudonymParams struct {
	UniqueID  string `json:"unique_id"`
	Password  string `json:"password,omitempty"`
	SISUserID string `json:"sis_user_id,omitempty"`
}

// UserCreateRequest creates a user under an account.
type UserCreateRequest struct {
	User      UserParams      `json:"user"`
	Pseudonym PseudonymParams `json:"pseudonym"`
}

// Validate checks required fields.
func (r *UserCreateRequest) Validate() error {
	if r.User.Name == "" {
		return ErrUserNameRequired
	}

	if r.Pseudonym.UniqueID == "" {
		return ErrPseudonymUniqueIDRequired
	}

	return nil
}

// UserUpdateRequest updates an existing user.
type UserUpdateRequest struct {
	User UserParams `json:"user"`
}

// Validate checks required fields. Updates carry no required fields.
func (r *UserUpdateRequest) Validate() error {
	return nil
}

// Duplicate handling modes for file uploads.
const (
	OnDuplicateOverwrite = "overwrite"
	OnDuplicateRename    = "rename"
)

// FileUploadRequest declares an upload: the first step of the two-step flow.
// The response tells the client where to POST the actual bytes.
type FileUploadRequest struct {
	Name             string `json:"name"`
	Size             int64  `json:"size"`
	ContentType      string `json:"content_type,omitempty"`
	ParentFolderPath string `json:"parent_folder_path,omitempty"`
	OnDuplicate      string `json:"on_duplicate,omitempty"`
}

// Validate checks required fields.
func (r *FileUploadRequest) Validate() error {
	if r.Name == "" {
		return ErrFileNameRequired
	}

	if r.Size <= 0 {
		return ErrFileSizeRequired
	}

	return nil
}

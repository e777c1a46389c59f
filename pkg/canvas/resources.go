package canvas

import (
	"time"
)

// Account represents an account (tenant) in the LMS. Accounts nest; courses
// always belong to exactly one account.
type Account struct {
	ID              int64  `json:"id"                          yaml:"id"`
	Name            string `json:"name"                        yaml:"name"`
	UUID            string `json:"uuid,omitempty"              yaml:"uuid,omitempty"`
	ParentAccountID *int64 `json:"parent_account_id,omitempty" yaml:"parent_account_id,omitempty"`
	RootAccountID   *int64 `json:"root_account_id,omitempty"   yaml:"root_account_id,omitempty"`
	WorkflowState   string `json:"workflow_state,omitempty"    yaml:"workflow_state,omitempty"`
	DefaultTimeZone string `json:"default_time_zone,omitempty" yaml:"default_time_zone,omitempty"`
	SISAccountID    string `json:"sis_account_id,omitempty"    yaml:"sis_account_id,omitempty"`
}

// Course represents a course.
type Course struct {
	ID               int64           `json:"id"                           yaml:"id"`
	Name             string          `json:"name"                         yaml:"name"`
	CourseCode       string          `json:"course_code,omitempty"        yaml:"course_code,omitempty"`
	WorkflowState    string          `json:"workflow_state,omitempty"     yaml:"workflow_state,omitempty"`
	AccountID        int64           `json:"account_id,omitempty"         yaml:"account_id,omitempty"`
	RootAccountID    int64           `json:"root_account_id,omitempty"    yaml:"root_account_id,omitempty"`
	EnrollmentTermID int64           `json:"enrollment_term_id,omitempty" yaml:"enrollment_term_id,omitempty"`
	UUID             string          `json:"uuid,omitempty"               yaml:"uuid,omitempty"`
	SISCourseID      string          `json:"sis_course_id,omitempty"      yaml:"sis_course_id,omitempty"`
	StartAt          *time.Time      `json:"start_at,omitempty"           yaml:"start_at,omitempty"`
	EndAt            *time.Time      `json:"end_at,omitempty"             yaml:"end_at,omitempty"`
	IsPublic         *bool           `json:"is_public,omitempty"          yaml:"is_public,omitempty"`
	SyllabusBody     string          `json:"syllabus_body,omitempty"      yaml:"syllabus_body,omitempty"`
	TotalStudents    int             `json:"total_students,omitempty"     yaml:"total_students,omitempty"`
	Term             *EnrollmentTerm `json:"term,omitempty"               yaml:"term,omitempty"`
	CreatedAt        *time.Time      `json:"created_at,omitempty"         yaml:"created_at,omitempty"`
}

// Course workflow states.
const (
	CourseStateUnpublished = "unpublished"
	CourseStateAvailable   = "available"
	CourseStateCompleted   = "completed"
	CourseStateDeleted     = "deleted"
)

// EnrollmentTerm represents a term within an account.
type EnrollmentTerm struct {
	ID            int64      `json:"id"                       yaml:"id"`
	Name          string     `json:"name"                     yaml:"name"`
	StartAt       *time.Time `json:"start_at,omitempty"       yaml:"start_at,omitempty"`
	EndAt         *time.Time `json:"end_at,omitempty"         yaml:"end_at,omitempty"`
	WorkflowState string     `json:"workflow_state,omitempty" yaml:"workflow_state,omitempty"`
	SISTermID     string     `json:"sis_term_id,omitempty"    yaml:"sis_term_id,omitempty"`
}

// Module represents a course module: an ordered collection of content items.
type Module struct {
	ID                        int64        `json:"id"                                    yaml:"id"`
	Name                      string       `json:"name"                                  yaml:"name"`
	Position                  int          `json:"position,omitempty"                    yaml:"position,omitempty"`
	WorkflowState             string       `json:"workflow_state,omitempty"              yaml:"workflow_state,omitempty"`
	UnlockAt                  *time.Time   `json:"unlock_at,omitempty"                   yaml:"unlock_at,omitempty"`
	RequireSequentialProgress bool         `json:"require_sequential_progress,omitempty" yaml:"require_sequential_progress,omitempty"`
	PrerequisiteModuleIDs     []int64      `json:"prerequisite_module_ids,omitempty"     yaml:"prerequisite_module_ids,omitempty"`
	ItemsCount                int          `json:"items_count,omitempty"                 yaml:"items_count,omitempty"`
	ItemsURL                  string       `json:"items_url,omitempty"                   yaml:"items_url,omitempty"`
	State                     string       `json:"state,omitempty"                       yaml:"state,omitempty"`
	Published                 *bool        `json:"published,omitempty"                   yaml:"published,omitempty"`
	Items                     []ModuleItem `json:"items,omitempty"                       yaml:"items,omitempty"`
}

// CompletionRequirement describes what a student must do with a module item.
type CompletionRequirement struct {
	Type      string   `json:"type"                yaml:"type"`
	MinScore  *float64 `json:"min_score,omitempty" yaml:"min_score,omitempty"`
	Completed *bool    `json:"completed,omitempty" yaml:"completed,omitempty"`
}

// ModuleItem represents one entry in a module.
type ModuleItem struct {
	ID                    int64                  `json:"id"                                yaml:"id"`
	ModuleID              int64                  `json:"module_id,omitempty"               yaml:"module_id,omitempty"`
	Position              int                    `json:"position,omitempty"                yaml:"position,omitempty"`
	Title                 string                 `json:"title"                             yaml:"title"`
	Indent                int                    `json:"indent,omitempty"                  yaml:"indent,omitempty"`
	Type                  string                 `json:"type"                              yaml:"type"`
	ContentID             int64                  `json:"content_id,omitempty"              yaml:"content_id,omitempty"`
	HTMLURL               string                 `json:"html_url,omitempty"                yaml:"html_url,omitempty"`
	URL                   string                 `json:"url,omitempty"                     yaml:"url,omitempty"`
	PageURL               string                 `json:"page_url,omitempty"                yaml:"page_url,omitempty"`
	ExternalURL           string                 `json:"external_url,omitempty"            yaml:"external_url,omitempty"`
	NewTab                *bool                  `json:"new_tab,omitempty"                 yaml:"new_tab,omitempty"`
	CompletionRequirement *CompletionRequirement `json:"completion_requirement,omitempty"  yaml:"completion_requirement,omitempty"`
	Published             *bool                  `json:"published,omitempty"               yaml:"published,omitempty"`
}

// Module item types.
const (
	ModuleItemTypeFile         = "File"
	ModuleItemTypePage         = "Page"
	ModuleItemTypeDiscussion   = "Discussion"
	ModuleItemTypeAssignment   = "Assignment"
	ModuleItemTypeQuiz         = "Quiz"
	ModuleItemTypeSubHeader    = "SubHeader"
	ModuleItemTypeExternalURL  = "ExternalUrl"
	ModuleItemTypeExternalTool = "ExternalTool"
)

// Assignment represents an assignment within a course.
type Assignment struct {
	ID              int64      `json:"id"                         yaml:"id"`
	Name            string     `json:"name"                       yaml:"name"`
	Description     string     `json:"description,omitempty"      yaml:"description,omitempty"`
	CourseID        int64      `json:"course_id,omitempty"        yaml:"course_id,omitempty"`
	HTMLURL         string     `json:"html_url,omitempty"         yaml:"html_url,omitempty"`
	Position        int        `json:"position,omitempty"         yaml:"position,omitempty"`
	DueAt           *time.Time `json:"due_at,omitempty"           yaml:"due_at,omitempty"`
	LockAt          *time.Time `json:"lock_at,omitempty"          yaml:"lock_at,omitempty"`
	UnlockAt        *time.Time `json:"unlock_at,omitempty"        yaml:"unlock_at,omitempty"`
	PointsPossible  *float64   `json:"points_possible,omitempty"  yaml:"points_possible,omitempty"`
	GradingType     string     `json:"grading_type,omitempty"     yaml:"grading_type,omitempty"`
	SubmissionTypes []string   `json:"submission_types,omitempty" yaml:"submission_types,omitempty"`
	AllowedAttempts int        `json:"allowed_attempts,omitempty" yaml:"allowed_attempts,omitempty"`
	Published       *bool      `json:"published,omitempty"        yaml:"published,omitempty"`
	CreatedAt       *time.Time `json:"created_at,omitempty"       yaml:"created_at,omitempty"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"       yaml:"updated_at,omitempty"`
}

// Assignment submission types.
const (
	SubmissionTypeOnlineTextEntry  = "online_text_entry"
	SubmissionTypeOnlineURL        = "online_url"
	SubmissionTypeOnlineUpload     = "online_upload"
	SubmissionTypeMediaRecording   = "media_recording"
	SubmissionTypeStudentAnnotation = "student_annotation"
	SubmissionTypeOnPaper          = "on_paper"
	SubmissionTypeNone             = "none"
	SubmissionTypeExternalTool     = "external_tool"
)

// Assignment grading types.
const (
	GradingTypePassFail    = "pass_fail"
	GradingTypePercent     = "percent"
	GradingTypeLetterGrade = "letter_grade"
	GradingTypeGPAScale    = "gpa_scale"
	GradingTypePoints      = "points"
	GradingTypeNotGraded   = "not_graded"
)

// Submission represents a student's submission for an assignment.
type Submission struct {
	ID             int64      `json:"id"                        yaml:"id"`
	AssignmentID   int64      `json:"assignment_id"             yaml:"assignment_id"`
	UserID         int64      `json:"user_id"                   yaml:"user_id"`
	Attempt        int        `json:"attempt,omitempty"         yaml:"attempt,omitempty"`
	Body           string     `json:"body,omitempty"            yaml:"body,omitempty"`
	URL            string     `json:"url,omitempty"             yaml:"url,omitempty"`
	Grade          string     `json:"grade,omitempty"           yaml:"grade,omitempty"`
	Score          *float64   `json:"score,omitempty"           yaml:"score,omitempty"`
	SubmittedAt    *time.Time `json:"submitted_at,omitempty"    yaml:"submitted_at,omitempty"`
	GradedAt       *time.Time `json:"graded_at,omitempty"       yaml:"graded_at,omitempty"`
	GraderID       int64      `json:"grader_id,omitempty"       yaml:"grader_id,omitempty"`
	Excused        *bool      `json:"excused,omitempty"         yaml:"excused,omitempty"`
	Late           bool       `json:"late,omitempty"            yaml:"late,omitempty"`
	Missing        bool       `json:"missing,omitempty"         yaml:"missing,omitempty"`
	WorkflowState  string     `json:"workflow_state,omitempty"  yaml:"workflow_state,omitempty"`
	SubmissionType string     `json:"submission_type,omitempty" yaml:"submission_type,omitempty"`

	// Populated when "submission_comments" is included.
	SubmissionComments []SubmissionComment `json:"submission_comments,omitempty" yaml:"submission_comments,omitempty"`

	// Populated when "user" is included.
	User *User `json:"user,omitempty" yaml:"user,omitempty"`
}

// SubmissionComment is a comment left on a submission.
type SubmissionComment struct {
	ID         int64      `json:"id"                   yaml:"id"`
	AuthorID   int64      `json:"author_id"            yaml:"author_id"`
	AuthorName string     `json:"author_name"          yaml:"author_name"`
	Comment    string     `json:"comment"              yaml:"comment"`
	CreatedAt  *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// Rubric represents a grading rubric attached to a course or account.
type Rubric struct {
	ID                        int64             `json:"id"                                     yaml:"id"`
	Title                     string            `json:"title"                                  yaml:"title"`
	ContextID                 int64             `json:"context_id,omitempty"                   yaml:"context_id,omitempty"`
	ContextType               string            `json:"context_type,omitempty"                 yaml:"context_type,omitempty"`
	PointsPossible            float64           `json:"points_possible,omitempty"              yaml:"points_possible,omitempty"`
	Reusable                  bool              `json:"reusable,omitempty"                     yaml:"reusable,omitempty"`
	ReadOnly                  bool              `json:"read_only,omitempty"                    yaml:"read_only,omitempty"`
	FreeFormCriterionComments bool              `json:"free_form_criterion_comments,omitempty" yaml:"free_form_criterion_comments,omitempty"`
	HideScoreTotal            bool              `json:"hide_score_total,omitempty"             yaml:"hide_score_total,omitempty"`
	Data                      []RubricCriterion `json:"data,omitempty"                         yaml:"data,omitempty"`
}

// RubricCriterion is one row of a rubric.
type RubricCriterion struct {
	ID                string         `json:"id,omitempty"                  yaml:"id,omitempty"`
	Description       string         `json:"description"                   yaml:"description"`
	LongDescription   string         `json:"long_description,omitempty"    yaml:"long_description,omitempty"`
	Points            float64        `json:"points"                        yaml:"points"`
	CriterionUseRange bool           `json:"criterion_use_range,omitempty" yaml:"criterion_use_range,omitempty"`
	Ratings           []RubricRating `json:"ratings,omitempty"             yaml:"ratings,omitempty"`
}

// RubricRating is one scoring level of a criterion.
type RubricRating struct {
	ID              string  `json:"id,omitempty"               yaml:"id,omitempty"`
	Description     string  `json:"description"                yaml:"description"`
	LongDescription string  `json:"long_description,omitempty" yaml:"long_description,omitempty"`
	Points          float64 `json:"points"                     yaml:"points"`
}

// Enrollment represents a user's membership in a course or section.
type Enrollment struct {
	ID                int64      `json:"id"                            yaml:"id"`
	CourseID          int64      `json:"course_id"                     yaml:"course_id"`
	CourseSectionID   int64      `json:"course_section_id,omitempty"   yaml:"course_section_id,omitempty"`
	EnrollmentState   string     `json:"enrollment_state,omitempty"    yaml:"enrollment_state,omitempty"`
	Type              string     `json:"type"                          yaml:"type"`
	UserID            int64      `json:"user_id"                       yaml:"user_id"`
	Role              string     `json:"role,omitempty"                yaml:"role,omitempty"`
	RoleID            int64      `json:"role_id,omitempty"             yaml:"role_id,omitempty"`
	CreatedAt         *time.Time `json:"created_at,omitempty"          yaml:"created_at,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"          yaml:"updated_at,omitempty"`
	StartAt           *time.Time `json:"start_at,omitempty"            yaml:"start_at,omitempty"`
	EndAt             *time.Time `json:"end_at,omitempty"              yaml:"end_at,omitempty"`
	LastActivityAt    *time.Time `json:"last_activity_at,omitempty"    yaml:"last_activity_at,omitempty"`
	TotalActivityTime int64      `json:"total_activity_time,omitempty" yaml:"total_activity_time,omitempty"`
	Grades            *Grades    `json:"grades,omitempty"              yaml:"grades,omitempty"`
	User              *User      `json:"user,omitempty"                yaml:"user,omitempty"`
}

// Grades carries the grade summary embedded in an enrollment.
type Grades struct {
	HTMLURL      string   `json:"html_url,omitempty"      yaml:"html_url,omitempty"`
	CurrentScore *float64 `json:"current_score,omitempty" yaml:"current_score,omitempty"`
	FinalScore   *float64 `json:"final_score,omitempty"   yaml:"final_score,omitempty"`
	CurrentGrade string   `json:"current_grade,omitempty" yaml:"current_grade,omitempty"`
	FinalGrade   string   `json:"final_grade,omitempty"   yaml:"final_grade,omitempty"`
}

// Enrollment types.
const (
	EnrollmentTypeStudent  = "StudentEnrollment"
	EnrollmentTypeTeacher  = "TeacherEnrollment"
	EnrollmentTypeTA       = "TaEnrollment"
	EnrollmentTypeObserver = "ObserverEnrollment"
	EnrollmentTypeDesigner = "DesignerEnrollment"
)

// Enrollment states.
const (
	EnrollmentStateActive   = "active"
	EnrollmentStateInvited  = "invited"
	EnrollmentStateInactive = "inactive"
)

// User represents an LMS user.
type User struct {
	ID           int64      `json:"id"                     yaml:"id"`
	Name         string     `json:"name"                   yaml:"name"`
	SortableName string     `json:"sortable_name,omitempty" yaml:"sortable_name,omitempty"`
	ShortName    string     `json:"short_name,omitempty"   yaml:"short_name,omitempty"`
	SISUserID    string     `json:"sis_user_id,omitempty"  yaml:"sis_user_id,omitempty"`
	LoginID      string     `json:"login_id,omitempty"     yaml:"login_id,omitempty"`
	Email        string     `json:"email,omitempty"        yaml:"email,omitempty"`
	AvatarURL    string     `json:"avatar_url,omitempty"   yaml:"avatar_url,omitempty"`
	Locale       string     `json:"locale,omitempty"       yaml:"locale,omitempty"`
	TimeZone     string     `json:"time_zone,omitempty"    yaml:"time_zone,omitempty"`
	CreatedAt    *time.Time `json:"created_at,omitempty"   yaml:"created_at,omitempty"`
}

// Section represents a course section.
type Section struct {
	ID                                int64      `json:"id"                                              yaml:"id"`
	Name                              string     `json:"name"                                            yaml:"name"`
	CourseID                          int64      `json:"course_id"                                       yaml:"course_id"`
	SISSectionID                      string     `json:"sis_section_id,omitempty"                        yaml:"sis_section_id,omitempty"`
	StartAt                           *time.Time `json:"start_at,omitempty"                              yaml:"start_at,omitempty"`
	EndAt                             *time.Time `json:"end_at,omitempty"                                yaml:"end_at,omitempty"`
	TotalStudents                     int        `json:"total_students,omitempty"                        yaml:"total_students,omitempty"`
	RestrictEnrollmentsToSectionDates bool       `json:"restrict_enrollments_to_section_dates,omitempty" yaml:"restrict_enrollments_to_section_dates,omitempty"`
}

// File represents an uploaded file.
type File struct {
	ID          int64      `json:"id"                     yaml:"id"`
	UUID        string     `json:"uuid,omitempty"         yaml:"uuid,omitempty"`
	FolderID    int64      `json:"folder_id,omitempty"    yaml:"folder_id,omitempty"`
	DisplayName string     `json:"display_name"           yaml:"display_name"`
	Filename    string     `json:"filename"               yaml:"filename"`
	ContentType string     `json:"content-type,omitempty" yaml:"content_type,omitempty"`
	URL         string     `json:"url,omitempty"          yaml:"url,omitempty"`
	Size        int64      `json:"size"                   yaml:"size"`
	Locked      bool       `json:"locked,omitempty"       yaml:"locked,omitempty"`
	Hidden      bool       `json:"hidden,omitempty"       yaml:"hidden,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"   yaml:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"   yaml:"updated_at,omitempty"`
	ModifiedAt  *time.Time `json:"modified_at,omitempty"  yaml:"modified_at,omitempty"`
}

// FileUploadTarget is the first-step response of the upload flow: where to
// send the bytes and which form fields must accompany them.
type FileUploadTarget struct {
	UploadURL    string            `json:"upload_url"    yaml:"upload_url"`
	UploadParams map[string]string `json:"upload_params" yaml:"upload_params"`
}

// Progress represents an asynchronous server-side operation.
type Progress struct {
	ID            int64      `json:"id"                      yaml:"id"`
	ContextID     int64      `json:"context_id,omitempty"    yaml:"context_id,omitempty"`
	ContextType   string     `json:"context_type,omitempty"  yaml:"context_type,omitempty"`
	UserID        int64      `json:"user_id,omitempty"       yaml:"user_id,omitempty"`
	Tag           string     `json:"tag,omitempty"           yaml:"tag,omitempty"`
	Completion    float64    `json:"completion,omitempty"    yaml:"completion,omitempty"`
	WorkflowState string     `json:"workflow_state"          yaml:"workflow_state"`
	Message       string     `json:"message,omitempty"       yaml:"message,omitempty"`
	URL           string     `json:"url,omitempty"           yaml:"url,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"    yaml:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"    yaml:"updated_at,omitempty"`
}

// Progress workflow states.
const (
	ProgressStateQueued    = "queued"
	ProgressStateRunning   = "running"
	ProgressStateCompleted = "completed"
	ProgressStateFailed    = "failed"
)

// Completed reports whether the operation finished successfully.
func (p *Progress) Completed() bool {
	return p.WorkflowState == ProgressStateCompleted
}

// Failed reports whether the operation failed.
func (p *Progress) Failed() bool {
	return p.WorkflowState == ProgressStateFailed
}

// Terminal reports whether the operation reached a final state.
func (p *Progress) Terminal() bool {
	return p.Completed() || p.Failed()
}

// TermsOfService represents an account's terms of service.
type TermsOfService struct {
	ID        int64  `json:"id"                 yaml:"id"`
	TermsType string `json:"terms_type"         yaml:"terms_type"`
	Passive   bool   `json:"passive"            yaml:"passive"`
	AccountID int64  `json:"account_id"         yaml:"account_id"`
	Content   string `json:"content,omitempty"  yaml:"content,omitempty"`
}

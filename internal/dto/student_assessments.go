package dto

import (
	"time"

	"github.com/ivaschool/portal-api/internal/models"
)

// StudentAssessmentsQuery is the inbound student results query.
type StudentAssessmentsQuery struct {
	StudentNumber int64  `validate:"required,min=100000,max=999999"`
	Grade         int    `validate:"required,min=1,max=12"`
	Cycle         *int   `validate:"omitempty,min=1"`
	Alias         string `validate:"omitempty,max=120"`
}

// MarkView is the student-facing projection of a mark. Obtained, Comments
// and Percentage are always nil while the mark is unpublished.
type MarkView struct {
	Obtained    *float64 `json:"obtained"`
	IsPublished bool     `json:"is_published"`
	Comments    *string  `json:"comments"`
	Percentage  *float64 `json:"percentage,omitempty"`
}

// AssessmentWithMark joins an assessment with the calling student's mark.
type AssessmentWithMark struct {
	ID          string    `json:"id"`
	SubjectID   string    `json:"subject_id"`
	SubjectName string    `json:"subject_name"`
	TeacherID   *string   `json:"teacher_id"`
	Title       string    `json:"title"`
	DueDate     time.Time `json:"due_date"`
	MaxMarks    *float64  `json:"max_marks"`
	Weighting   *float64  `json:"weighting"`
	IsTest      bool      `json:"is_test"`
	Cycle       int       `json:"cycle"`
	Mark        *MarkView `json:"mark"`
}

// SubjectAssessments groups one enrolled subject's assessments.
type SubjectAssessments struct {
	SubjectName      string               `json:"subject_name"`
	SubjectID        string               `json:"subject_id"`
	TimetableAliases []string             `json:"timetable_aliases"`
	Assessments      []AssessmentWithMark `json:"assessments"`
}

// Degraded sources reported alongside an otherwise valid payload.
const (
	DegradedEnrollment      = "enrollment"
	DegradedAliases         = "timetable_aliases"
	DegradedAliasResolution = "alias_resolution"
)

// StudentAssessments is the payload returned to the student portal.
// Degraded names soft-failed sources so a consumer can tell "nothing to
// show" apart from "partially unavailable".
type StudentAssessments struct {
	CurrentCycle    *models.Cycle        `json:"current_cycle"`
	Cycles          []models.Cycle       `json:"cycles"`
	Subjects        []SubjectAssessments `json:"subjects"`
	ResolvedSubject *string              `json:"resolved_subject"`
	Degraded        []string             `json:"degraded,omitempty"`
}

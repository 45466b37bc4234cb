package models

import "time"

// Assessment is one gradable event. Subjects are referenced by id; the
// subject name and grade are joined in for display.
type Assessment struct {
	ID          string    `db:"id" json:"id"`
	SubjectID   string    `db:"subject_id" json:"subject_id"`
	SubjectName string    `db:"subject_name" json:"subject_name"`
	Grade       int       `db:"grade" json:"grade"`
	TeacherID   *string   `db:"teacher_id" json:"teacher_id"`
	Title       string    `db:"title" json:"title"`
	DueDate     time.Time `db:"due_date" json:"due_date"`
	MaxMarks    *float64  `db:"max_marks" json:"max_marks"`
	Weighting   *float64  `db:"weighting" json:"weighting"`
	IsTest      bool      `db:"is_test" json:"is_test"`
	Cycle       int       `db:"cycle" json:"cycle"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// OwnedBy reports whether teacherID owns the assessment.
func (a Assessment) OwnedBy(teacherID string) bool {
	return a.TeacherID != nil && *a.TeacherID == teacherID
}

// AssessmentFilter scopes the teacher listing.
type AssessmentFilter struct {
	TeacherID string
	SubjectID string
	Cycle     *int
}

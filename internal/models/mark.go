package models

import "time"

// Mark is one student's result for one assessment, unique per
// (assessment, student number).
type Mark struct {
	ID            string    `db:"id" json:"id"`
	AssessmentID  string    `db:"assessment_id" json:"assessment_id"`
	StudentNumber int64     `db:"student_number" json:"student_number"`
	Obtained      *float64  `db:"mark_obtained" json:"mark_obtained"`
	Comments      *string   `db:"teacher_comments" json:"teacher_comments"`
	IsPublished   bool      `db:"is_published" json:"is_published"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// Student is a learner in the grade roster.
type Student struct {
	StudentNumber int64   `db:"student_number" json:"student_number"`
	Grade         int     `db:"grade" json:"grade"`
	FirstName     string  `db:"first_name" json:"first_name"`
	Surname       string  `db:"surname" json:"surname"`
	FullName      *string `db:"full_name" json:"full_name,omitempty"`
}

// DisplayName prefers the stored full name.
func (s Student) DisplayName() string {
	if s.FullName != nil && *s.FullName != "" {
		return *s.FullName
	}
	return s.FirstName + " " + s.Surname
}

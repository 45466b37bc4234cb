package models

import "github.com/lib/pq"

// Enrollment is the ordered list of subjects a student takes in a grade.
// SubjectNames[i] corresponds to SubjectIDs[i].
type Enrollment struct {
	StudentNumber int64          `db:"student_number" json:"student_number"`
	Grade         int            `db:"grade" json:"grade"`
	SubjectNames  pq.StringArray `db:"subject_names" json:"subject_names"`
	SubjectIDs    pq.StringArray `db:"subject_ids" json:"subject_ids"`
}

// SubjectID returns the id paired with the i-th subject name, or "" when the
// view carries fewer ids than names.
func (e Enrollment) SubjectID(i int) string {
	if i < 0 || i >= len(e.SubjectIDs) {
		return ""
	}
	return e.SubjectIDs[i]
}

// Empty reports whether the student has no enrolled subjects.
func (e Enrollment) Empty() bool {
	return len(e.SubjectNames) == 0
}

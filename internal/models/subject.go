package models

import "github.com/lib/pq"

// Subject is one taught course within a grade's catalog.
type Subject struct {
	ID               string         `db:"id" json:"id"`
	Grade            int            `db:"grade" json:"grade"`
	Name             string         `db:"name" json:"name"`
	TimetableAliases pq.StringArray `db:"timetable_aliases" json:"timetable_aliases"`
}

// Aliases returns the timetable aliases, never nil.
func (s Subject) Aliases() []string {
	if len(s.TimetableAliases) == 0 {
		return []string{}
	}
	return []string(s.TimetableAliases)
}

// TeacherSubject is a subject a teacher is assigned to.
type TeacherSubject struct {
	SubjectID   string `db:"subject_id" json:"subject_id"`
	SubjectName string `db:"subject_name" json:"subject_name"`
	Grade       int    `db:"grade" json:"grade"`
}

package models

import (
	"time"

	"github.com/lib/pq"
)

// AttendanceStatus classifies a student's presence for one submission.
type AttendanceStatus string

const (
	AttendancePresent   AttendanceStatus = "present"
	AttendanceAbsent    AttendanceStatus = "absent"
	AttendanceLate      AttendanceStatus = "late"
	AttendanceExcused   AttendanceStatus = "excused"
	AttendanceBlocked   AttendanceStatus = "blocked"
	AttendanceCycleTest AttendanceStatus = "cycle_test"
)

// AttendanceSubmission is a register taken by a teacher for one lesson.
type AttendanceSubmission struct {
	ID                string        `db:"id" json:"id"`
	Date              time.Time     `db:"date" json:"date"`
	SubjectName       *string       `db:"subject_name" json:"subject_name"`
	StudentNumbers    pq.Int64Array `db:"student_numbers" json:"-"`
	PresentStudents   pq.Int64Array `db:"present_students" json:"-"`
	AbsentStudents    pq.Int64Array `db:"absent_students" json:"-"`
	LateStudents      pq.Int64Array `db:"late_students" json:"-"`
	ExcusedStudents   pq.Int64Array `db:"excused_students" json:"-"`
	BlockedStudents   pq.Int64Array `db:"blocked_students" json:"-"`
	CycleTestStudents pq.Int64Array `db:"cycle_test_students" json:"-"`
}

// AttendanceRecord is one lesson's outcome for a student.
type AttendanceRecord struct {
	Date    time.Time        `json:"date"`
	Subject string           `json:"subject"`
	Status  AttendanceStatus `json:"status"`
}

// AttendanceSummary totals a student's records.
type AttendanceSummary struct {
	Total                int `json:"total"`
	Present              int `json:"present"`
	Absent               int `json:"absent"`
	Late                 int `json:"late"`
	Excused              int `json:"excused"`
	Blocked              int `json:"blocked"`
	CycleTest            int `json:"cycle_test"`
	AttendancePercentage int `json:"attendance_percentage"`
}

package dto

// Timetable layouts.
const (
	TimetableDetailed = "detailed"
	TimetableSimple   = "simple"
)

// TimetableQuery identifies the student whose timetable is read.
type TimetableQuery struct {
	StudentNumber int64 `validate:"required,min=100000,max=999999"`
	Grade         int   `validate:"required,min=1,max=12"`
}

// TimetableSlot is one period on a weekday. SubjectID is set when the cell
// label resolves to a subject of the grade.
type TimetableSlot struct {
	PeriodNumber int     `json:"period_number"`
	Code         string  `json:"code"`
	Subject      string  `json:"subject"`
	SubjectID    *string `json:"subject_id"`
	StartTime    string  `json:"start_time"`
	EndTime      string  `json:"end_time"`
}

// Timetable is either a per-weekday schedule or, for grades without period
// timetables, the grade's subject names.
type Timetable struct {
	Type          string                     `json:"type"`
	Grade         int                        `json:"grade"`
	StudentNumber int64                      `json:"student_number"`
	Schedule      map[string][]TimetableSlot `json:"schedule,omitempty"`
	Subjects      []string                   `json:"subjects,omitempty"`
	Degraded      []string                   `json:"degraded,omitempty"`
}

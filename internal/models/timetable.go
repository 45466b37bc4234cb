package models

// Weekdays lists the school days in timetable order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// TimetableHeader defines one period slot of the school week. Code links the
// slot to the cell of the same code in a student's timetable.
type TimetableHeader struct {
	Code         string `db:"code" json:"code"`
	Weekday      string `db:"weekday" json:"weekday"`
	PeriodNumber int    `db:"period_number" json:"period_number"`
	StartTime    string `db:"start_time" json:"start_time"`
	EndTime      string `db:"end_time" json:"end_time"`
}

// TimetableCell is the subject label printed in one of a student's periods.
// Labels are timetable aliases, not canonical subject names.
type TimetableCell struct {
	Code    string `db:"code" json:"code"`
	Subject string `db:"subject" json:"subject"`
}

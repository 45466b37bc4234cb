package models

import "time"

// Cycle is one grading period (a school term) scoped to a grade and year.
type Cycle struct {
	ID        string    `db:"id" json:"id"`
	Cycle     int       `db:"cycle" json:"cycle"`
	Grade     int       `db:"grade" json:"grade"`
	Year      int       `db:"year" json:"year"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
}

// Contains reports whether day falls inside the inclusive date range. Only
// the calendar date of each value is compared.
func (c Cycle) Contains(day time.Time) bool {
	d := DateOf(day)
	return !d.Before(DateOf(c.StartDate)) && !d.After(DateOf(c.EndDate))
}

// DateOf truncates t to its calendar date in its own location, expressed as
// midnight UTC so dates from different sources compare cleanly.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

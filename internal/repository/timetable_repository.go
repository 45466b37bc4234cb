package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ivaschool/portal-api/internal/models"
)

// TimetableRepository reads period headers and student timetables.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository constructs the repository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

// ListHeaders returns every period slot ordered by weekday then period.
func (r *TimetableRepository) ListHeaders(ctx context.Context) ([]models.TimetableHeader, error) {
	const query = `SELECT code, weekday, period_number,
            to_char(start_time, 'HH24:MI') AS start_time,
            to_char(end_time, 'HH24:MI') AS end_time
        FROM timetable_headers
        ORDER BY array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday'], weekday) ASC, period_number ASC`
	headers := []models.TimetableHeader{}
	if err := r.db.SelectContext(ctx, &headers, query); err != nil {
		return nil, fmt.Errorf("list timetable headers: %w", err)
	}
	return headers, nil
}

// ListCells returns the student's timetable cells for the grade.
func (r *TimetableRepository) ListCells(ctx context.Context, studentNumber int64, grade int) ([]models.TimetableCell, error) {
	const query = `SELECT code, subject FROM student_timetable_periods
        WHERE student_number = $1 AND grade = $2
        ORDER BY code ASC`
	cells := []models.TimetableCell{}
	if err := r.db.SelectContext(ctx, &cells, query, studentNumber, grade); err != nil {
		return nil, fmt.Errorf("list timetable cells: %w", err)
	}
	return cells, nil
}

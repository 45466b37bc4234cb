package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ivaschool/portal-api/internal/models"
)

// AttendanceRepository reads attendance submissions.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// ListByStudent returns every submission whose register includes the
// student, newest first.
func (r *AttendanceRepository) ListByStudent(ctx context.Context, studentNumber int64) ([]models.AttendanceSubmission, error) {
	const query = `SELECT id, date, subject_name, student_numbers, present_students, absent_students, late_students,
            excused_students, blocked_students, cycle_test_students
        FROM attendance_submissions
        WHERE student_numbers @> ARRAY[$1]::bigint[]
        ORDER BY date DESC`
	submissions := []models.AttendanceSubmission{}
	if err := r.db.SelectContext(ctx, &submissions, query, studentNumber); err != nil {
		return nil, fmt.Errorf("list attendance submissions: %w", err)
	}
	return submissions, nil
}

package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/ivaschool/portal-api/internal/models"
)

// EnrollmentRepository reads the enrolled-subjects view.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository creates a new repository instance.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// FindByStudent returns the student's enrollment for a grade. A missing row
// surfaces as sql.ErrNoRows.
func (r *EnrollmentRepository) FindByStudent(ctx context.Context, studentNumber int64, grade int) (*models.Enrollment, error) {
	const query = `SELECT student_number, grade, subject_names, subject_ids FROM student_enrolled_subjects WHERE student_number = $1 AND grade = $2`
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, studentNumber, grade); err != nil {
		return nil, err
	}
	return &enrollment, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ivaschool/portal-api/internal/models"
)

// TeacherSubjectRepository resolves the subjects a teacher teaches.
type TeacherSubjectRepository struct {
	db *sqlx.DB
}

// NewTeacherSubjectRepository creates the repository.
func NewTeacherSubjectRepository(db *sqlx.DB) *TeacherSubjectRepository {
	return &TeacherSubjectRepository{db: db}
}

// ListByTeacher reads the teacher_subjects view.
func (r *TeacherSubjectRepository) ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherSubject, error) {
	const query = `SELECT subject_id, subject_name, grade FROM teacher_subjects WHERE teacher_id = $1 ORDER BY grade ASC, subject_name ASC`
	subjects := []models.TeacherSubject{}
	if err := r.db.SelectContext(ctx, &subjects, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher subjects: %w", err)
	}
	return subjects, nil
}

// ListFromAssessments derives subjects from the teacher's own assessments.
func (r *TeacherSubjectRepository) ListFromAssessments(ctx context.Context, teacherID string) ([]models.TeacherSubject, error) {
	const query = `SELECT DISTINCT s.id AS subject_id, s.name AS subject_name, s.grade
        FROM assessments a
        JOIN subjects s ON s.id = a.subject_id
        WHERE a.teacher_id = $1
        ORDER BY s.grade ASC, s.name ASC`
	subjects := []models.TeacherSubject{}
	if err := r.db.SelectContext(ctx, &subjects, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher subjects from assessments: %w", err)
	}
	return subjects, nil
}

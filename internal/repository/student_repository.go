package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ivaschool/portal-api/internal/models"
)

// StudentRepository reads grade rosters.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// ListByGrade returns learners of a grade ordered by surname.
func (r *StudentRepository) ListByGrade(ctx context.Context, grade int) ([]models.Student, error) {
	const query = `SELECT student_number, grade, first_name, surname, full_name FROM students WHERE grade = $1 ORDER BY surname ASC, first_name ASC`
	students := []models.Student{}
	if err := r.db.SelectContext(ctx, &students, query, grade); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// ExistsInGrade reports whether the learner belongs to the grade.
func (r *StudentRepository) ExistsInGrade(ctx context.Context, studentNumber int64, grade int) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM students WHERE student_number = $1 AND grade = $2)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, studentNumber, grade); err != nil {
		return false, fmt.Errorf("check student grade: %w", err)
	}
	return exists, nil
}

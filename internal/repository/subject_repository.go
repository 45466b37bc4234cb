package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ivaschool/portal-api/internal/models"
)

const subjectColumns = "id, grade, name, timetable_aliases"

// SubjectRepository reads a grade's subject catalog.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a subject repository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// ListByGrade returns the full catalog in catalog order.
func (r *SubjectRepository) ListByGrade(ctx context.Context, grade int) ([]models.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE grade = $1 ORDER BY position ASC, name ASC`
	subjects := []models.Subject{}
	if err := r.db.SelectContext(ctx, &subjects, query, grade); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// ListByNames returns only the subjects with the given canonical names.
func (r *SubjectRepository) ListByNames(ctx context.Context, grade int, names []string) ([]models.Subject, error) {
	if len(names) == 0 {
		return []models.Subject{}, nil
	}
	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE grade = $1 AND name = ANY($2)`
	subjects := []models.Subject{}
	if err := r.db.SelectContext(ctx, &subjects, query, grade, pq.Array(names)); err != nil {
		return nil, fmt.Errorf("list subjects by name: %w", err)
	}
	return subjects, nil
}

// FindByID loads a subject by identifier.
func (r *SubjectRepository) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE id = $1`
	var subject models.Subject
	if err := r.db.GetContext(ctx, &subject, query, id); err != nil {
		return nil, err
	}
	return &subject, nil
}

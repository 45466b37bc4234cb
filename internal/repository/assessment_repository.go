package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ivaschool/portal-api/internal/models"
)

const assessmentSelect = `SELECT a.id, a.subject_id, s.name AS subject_name, s.grade, a.teacher_id, a.title, a.due_date, a.max_marks, a.weighting, a.is_test, a.cycle, a.created_at, a.updated_at
        FROM assessments a
        JOIN subjects s ON s.id = a.subject_id`

// AssessmentRepository handles assessment persistence.
type AssessmentRepository struct {
	db *sqlx.DB
}

// NewAssessmentRepository creates a new assessment repository.
func NewAssessmentRepository(db *sqlx.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// ListForSubjects returns the assessments of the given subjects within one
// cycle, ordered by due date ascending.
func (r *AssessmentRepository) ListForSubjects(ctx context.Context, subjectIDs []string, cycle int) ([]models.Assessment, error) {
	if len(subjectIDs) == 0 {
		return []models.Assessment{}, nil
	}
	query := assessmentSelect + ` WHERE a.subject_id = ANY($1) AND a.cycle = $2 ORDER BY a.due_date ASC, a.created_at ASC`
	assessments := []models.Assessment{}
	if err := r.db.SelectContext(ctx, &assessments, query, pq.Array(subjectIDs), cycle); err != nil {
		return nil, fmt.Errorf("list assessments for subjects: %w", err)
	}
	return assessments, nil
}

// List returns assessments matching the teacher filter, newest due first.
func (r *AssessmentRepository) List(ctx context.Context, filter models.AssessmentFilter) ([]models.Assessment, error) {
	var conditions []string
	var args []interface{}
	if filter.TeacherID != "" {
		args = append(args, filter.TeacherID)
		conditions = append(conditions, fmt.Sprintf("a.teacher_id = $%d", len(args)))
	}
	if filter.SubjectID != "" {
		args = append(args, filter.SubjectID)
		conditions = append(conditions, fmt.Sprintf("a.subject_id = $%d", len(args)))
	}
	if filter.Cycle != nil {
		args = append(args, *filter.Cycle)
		conditions = append(conditions, fmt.Sprintf("a.cycle = $%d", len(args)))
	}
	query := assessmentSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.due_date DESC"

	assessments := []models.Assessment{}
	if err := r.db.SelectContext(ctx, &assessments, query, args...); err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return assessments, nil
}

// FindByID loads an assessment by identifier.
func (r *AssessmentRepository) FindByID(ctx context.Context, id string) (*models.Assessment, error) {
	query := assessmentSelect + ` WHERE a.id = $1`
	var assessment models.Assessment
	if err := r.db.GetContext(ctx, &assessment, query, id); err != nil {
		return nil, err
	}
	return &assessment, nil
}

// Create inserts a new assessment.
func (r *AssessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	if assessment.ID == "" {
		assessment.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if assessment.CreatedAt.IsZero() {
		assessment.CreatedAt = now
	}
	assessment.UpdatedAt = now

	const query = `INSERT INTO assessments (id, subject_id, teacher_id, title, due_date, max_marks, weighting, is_test, cycle, created_at, updated_at)
        VALUES (:id, :subject_id, :teacher_id, :title, :due_date, :max_marks, :weighting, :is_test, :cycle, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, assessment); err != nil {
		return fmt.Errorf("create assessment: %w", err)
	}
	return nil
}

// Update modifies an existing assessment. Ownership is not editable.
func (r *AssessmentRepository) Update(ctx context.Context, assessment *models.Assessment) error {
	assessment.UpdatedAt = time.Now().UTC()
	const query = `UPDATE assessments SET subject_id = :subject_id, title = :title, due_date = :due_date, max_marks = :max_marks,
        weighting = :weighting, is_test = :is_test, cycle = :cycle, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, assessment)
	if err != nil {
		return fmt.Errorf("update assessment: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteCascade removes an assessment and every mark referencing it in one
// transaction. It returns the number of marks removed.
func (r *AssessmentRepository) DeleteCascade(ctx context.Context, id string) (marks int64, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin delete assessment tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `DELETE FROM assessment_marks WHERE assessment_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete assessment marks: %w", err)
	}
	marks, _ = res.RowsAffected()

	res, err = tx.ExecContext(ctx, `DELETE FROM assessments WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete assessment: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		err = sql.ErrNoRows
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit delete assessment tx: %w", err)
	}
	return marks, nil
}

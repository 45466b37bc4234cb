package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/ivaschool/portal-api/internal/models"
)

const markColumns = "id, assessment_id, student_number, mark_obtained, teacher_comments, is_published, created_at, updated_at"

// MarkRepository handles assessment mark persistence.
type MarkRepository struct {
	db *sqlx.DB
}

// NewMarkRepository creates a mark repository.
func NewMarkRepository(db *sqlx.DB) *MarkRepository {
	return &MarkRepository{db: db}
}

// ListForStudent returns the student's marks for the given assessments.
// An empty id set returns no rows without querying.
func (r *MarkRepository) ListForStudent(ctx context.Context, assessmentIDs []string, studentNumber int64) ([]models.Mark, error) {
	if len(assessmentIDs) == 0 {
		return []models.Mark{}, nil
	}
	query := `SELECT ` + markColumns + ` FROM assessment_marks WHERE assessment_id = ANY($1) AND student_number = $2`
	marks := []models.Mark{}
	if err := r.db.SelectContext(ctx, &marks, query, pq.Array(assessmentIDs), studentNumber); err != nil {
		return nil, fmt.Errorf("list student marks: %w", err)
	}
	return marks, nil
}

// ListByAssessment returns every mark recorded for an assessment.
func (r *MarkRepository) ListByAssessment(ctx context.Context, assessmentID string) ([]models.Mark, error) {
	query := `SELECT ` + markColumns + ` FROM assessment_marks WHERE assessment_id = $1`
	marks := []models.Mark{}
	if err := r.db.SelectContext(ctx, &marks, query, assessmentID); err != nil {
		return nil, fmt.Errorf("list assessment marks: %w", err)
	}
	return marks, nil
}

// Upsert records a score for (assessment, student), overwriting in place.
// A nil publish leaves the stored flag untouched (false on insert). It
// reports whether a new row was inserted.
func (r *MarkRepository) Upsert(ctx context.Context, mark *models.Mark, publish *bool) (bool, error) {
	if mark.ID == "" {
		mark.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	mark.UpdatedAt = now
	const query = `INSERT INTO assessment_marks (id, assessment_id, student_number, mark_obtained, teacher_comments, is_published, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, COALESCE($6::boolean, FALSE), $7, $7)
        ON CONFLICT (assessment_id, student_number)
        DO UPDATE SET mark_obtained = EXCLUDED.mark_obtained, teacher_comments = EXCLUDED.teacher_comments,
            is_published = COALESCE($6::boolean, assessment_marks.is_published), updated_at = EXCLUDED.updated_at
        RETURNING id, is_published, created_at, (xmax = 0) AS inserted`
	var inserted bool
	row := r.db.QueryRowxContext(ctx, query, mark.ID, mark.AssessmentID, mark.StudentNumber, mark.Obtained, mark.Comments, publish, now)
	if err := row.Scan(&mark.ID, &mark.IsPublished, &mark.CreatedAt, &inserted); err != nil {
		return false, fmt.Errorf("upsert mark: %w", err)
	}
	return inserted, nil
}

// SetPublished toggles publication for every mark of an assessment without
// touching scores or comments.
func (r *MarkRepository) SetPublished(ctx context.Context, assessmentID string, published bool) (int64, error) {
	const query = `UPDATE assessment_marks SET is_published = $2, updated_at = $3 WHERE assessment_id = $1`
	res, err := r.db.ExecContext(ctx, query, assessmentID, published, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("set marks published: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count published marks: %w", err)
	}
	return affected, nil
}

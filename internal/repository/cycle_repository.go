package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ivaschool/portal-api/internal/models"
)

// CycleRepository reads grading cycles.
type CycleRepository struct {
	db *sqlx.DB
}

// NewCycleRepository instantiates a cycle repository.
func NewCycleRepository(db *sqlx.DB) *CycleRepository {
	return &CycleRepository{db: db}
}

// ListByGrade returns every cycle of a grade ordered ascending by cycle number.
func (r *CycleRepository) ListByGrade(ctx context.Context, grade int) ([]models.Cycle, error) {
	const query = `SELECT id, cycle, grade, year, start_date, end_date FROM assessment_cycles WHERE grade = $1 ORDER BY cycle ASC`
	cycles := []models.Cycle{}
	if err := r.db.SelectContext(ctx, &cycles, query, grade); err != nil {
		return nil, fmt.Errorf("list cycles: %w", err)
	}
	return cycles, nil
}

package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivaschool/portal-api/internal/models"
)

var assessmentRowColumns = []string{"id", "subject_id", "subject_name", "grade", "teacher_id", "title", "due_date",
	"max_marks", "weighting", "is_test", "cycle", "created_at", "updated_at"}

func TestAssessmentRepositoryListForSubjects(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	due := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(assessmentRowColumns).
		AddRow("as-1", "sub-math", "Mathematics", 10, "teacher@school.test", "Algebra test", due, 100.0, 0.25, true, 1, due, due)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.subject_id = ANY($1) AND a.cycle = $2 ORDER BY a.due_date ASC")).
		WithArgs(sqlmock.AnyArg(), 1).
		WillReturnRows(rows)

	assessments, err := repo.ListForSubjects(context.Background(), []string{"sub-math"}, 1)
	require.NoError(t, err)
	require.Len(t, assessments, 1)
	assert.Equal(t, "Mathematics", assessments[0].SubjectName)
	assert.True(t, assessments[0].OwnedBy("teacher@school.test"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryListForSubjectsEmptySkipsQuery(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	assessments, err := repo.ListForSubjects(context.Background(), []string{}, 1)
	require.NoError(t, err)
	assert.NotNil(t, assessments)
	assert.Empty(t, assessments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryListFilter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	cycle := 2
	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.teacher_id = $1 AND a.cycle = $2 ORDER BY a.due_date DESC")).
		WithArgs("teacher@school.test", 2).
		WillReturnRows(sqlmock.NewRows(assessmentRowColumns))

	assessments, err := repo.List(context.Background(), models.AssessmentFilter{TeacherID: "teacher@school.test", Cycle: &cycle})
	require.NoError(t, err)
	assert.Empty(t, assessments)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	mock.ExpectExec("INSERT INTO assessments").
		WillReturnResult(sqlmock.NewResult(1, 1))

	assessment := &models.Assessment{SubjectID: "sub-math", Title: "Quiz", Cycle: 1, DueDate: time.Now()}
	require.NoError(t, repo.Create(context.Background(), assessment))
	assert.NotEmpty(t, assessment.ID)
	assert.False(t, assessment.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryUpdateMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	mock.ExpectExec("UPDATE assessments SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Assessment{ID: "missing"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryDeleteCascade(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assessment_marks WHERE assessment_id = $1")).
		WithArgs("as-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assessments WHERE id = $1")).
		WithArgs("as-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	removed, err := repo.DeleteCascade(context.Background(), "as-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssessmentRepositoryDeleteCascadeMissingRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAssessmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assessment_marks WHERE assessment_id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM assessments WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.DeleteCascade(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCycleRepositoryListByGrade(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCycleRepository(db)

	start := time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "cycle", "grade", "year", "start_date", "end_date"}).
		AddRow("c1", 1, 10, 2026, start, start.AddDate(0, 3, 0)).
		AddRow("c2", 2, 10, 2026, start.AddDate(0, 3, 14), start.AddDate(0, 6, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM assessment_cycles WHERE grade = $1 ORDER BY cycle ASC")).
		WithArgs(10).
		WillReturnRows(rows)

	cycles, err := repo.ListByGrade(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, cycles, 2)
	assert.Equal(t, 1, cycles[0].Cycle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCycleRepositoryListByGradeError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewCycleRepository(db)

	mock.ExpectQuery("FROM assessment_cycles").WithArgs(10).WillReturnError(errors.New("connection refused"))

	_, err := repo.ListByGrade(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list cycles")
}

func TestSubjectRepositoryListByGrade(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	rows := sqlmock.NewRows([]string{"id", "grade", "name", "timetable_aliases"}).
		AddRow("sub-afr", 10, "Afrikaans", "{\"Afr 1\",\"Afr 2\"}").
		AddRow("sub-math", 10, "Mathematics", nil)
	mock.ExpectQuery(regexp.QuoteMeta("FROM subjects WHERE grade = $1 ORDER BY position ASC, name ASC")).
		WithArgs(10).
		WillReturnRows(rows)

	subjects, err := repo.ListByGrade(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, []string{"Afr 1", "Afr 2"}, subjects[0].Aliases())
	assert.Equal(t, []string{}, subjects[1].Aliases())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryListByNamesEmptySkipsQuery(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	subjects, err := repo.ListByNames(context.Background(), 10, nil)
	require.NoError(t, err)
	assert.Empty(t, subjects)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryListByNames(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	rows := sqlmock.NewRows([]string{"id", "grade", "name", "timetable_aliases"}).
		AddRow("sub-eng", 10, "English", "{Eng}")
	mock.ExpectQuery(regexp.QuoteMeta("FROM subjects WHERE grade = $1 AND name = ANY($2)")).
		WithArgs(10, sqlmock.AnyArg()).
		WillReturnRows(rows)

	subjects, err := repo.ListByNames(context.Background(), 10, []string{"English"})
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "English", subjects[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherSubjectRepositoryListByTeacher(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherSubjectRepository(db)

	rows := sqlmock.NewRows([]string{"subject_id", "subject_name", "grade"}).
		AddRow("sub-math", "Mathematics", 10)
	mock.ExpectQuery(regexp.QuoteMeta("FROM teacher_subjects WHERE teacher_id = $1")).
		WithArgs("teacher@school.test").
		WillReturnRows(rows)

	subjects, err := repo.ListByTeacher(context.Background(), "teacher@school.test")
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "Mathematics", subjects[0].SubjectName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherSubjectRepositoryListFromAssessments(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherSubjectRepository(db)

	rows := sqlmock.NewRows([]string{"subject_id", "subject_name", "grade"}).
		AddRow("sub-eng", "English", 11)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT s.id AS subject_id")).
		WithArgs("teacher@school.test").
		WillReturnRows(rows)

	subjects, err := repo.ListFromAssessments(context.Background(), "teacher@school.test")
	require.NoError(t, err)
	assert.Len(t, subjects, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	rows := sqlmock.NewRows([]string{"id", "date", "subject_name", "student_numbers", "present_students", "absent_students",
		"late_students", "excused_students", "blocked_students", "cycle_test_students"}).
		AddRow("att-1", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), "Mathematics", "{123456,123457}", "{123457}", "{123456}", "{}", "{}", "{}", "{}")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE student_numbers @> ARRAY[$1]::bigint[]")).
		WithArgs(int64(123456)).
		WillReturnRows(rows)

	submissions, err := repo.ListByStudent(context.Background(), 123456)
	require.NoError(t, err)
	require.Len(t, submissions, 1)
	assert.Equal(t, []int64{123456}, []int64(submissions[0].AbsentStudents))
	assert.NoError(t, mock.ExpectationsWereMet())
}

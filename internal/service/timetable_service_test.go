package service

import (
	"context"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ivaschool/portal-api/internal/dto"
	"github.com/ivaschool/portal-api/internal/models"
	appErrors "github.com/ivaschool/portal-api/pkg/errors"
)

type timetableStub struct {
	headers    []models.TimetableHeader
	cells      []models.TimetableCell
	headersErr error
	cellsErr   error
	cellCalls  int
}

func (s *timetableStub) ListHeaders(ctx context.Context) ([]models.TimetableHeader, error) {
	return s.headers, s.headersErr
}

func (s *timetableStub) ListCells(ctx context.Context, studentNumber int64, grade int) ([]models.TimetableCell, error) {
	s.cellCalls++
	return s.cells, s.cellsErr
}

func timetableFixture() (*timetableStub, *catalogStub) {
	store := &timetableStub{
		headers: []models.TimetableHeader{
			{Code: "A3", Weekday: "Monday", PeriodNumber: 3, StartTime: "10:00", EndTime: "10:45"},
			{Code: "A1", Weekday: "Monday", PeriodNumber: 1, StartTime: "08:00", EndTime: "08:45"},
			{Code: "A2", Weekday: "Monday", PeriodNumber: 2, StartTime: "08:45", EndTime: "09:30"},
			{Code: "B1", Weekday: "Tuesday", PeriodNumber: 1, StartTime: "08:00", EndTime: "08:45"},
			{Code: "S1", Weekday: "Saturday", PeriodNumber: 1, StartTime: "08:00", EndTime: "08:45"},
		},
		cells: []models.TimetableCell{
			{Code: "A1", Subject: "Maths 2"},
			{Code: "A3", Subject: "english"},
			{Code: "B1", Subject: "Drama Club"},
			{Code: "S1", Subject: "Maths 2"},
		},
	}
	catalog := &catalogStub{subjects: []models.Subject{
		{ID: "s-math", Grade: 10, Name: "Mathematics", TimetableAliases: pq.StringArray{"Maths 2"}},
		{ID: "s-eng", Grade: 10, Name: "English"},
		{ID: "s-afr", Grade: 10, Name: "Afrikaans"},
	}}
	return store, catalog
}

func TestTimetableServiceDetailedSortsPeriods(t *testing.T) {
	store, catalog := timetableFixture()
	svc := NewTimetableService(store, catalog, []int{10, 11, 12}, nil, zap.NewNop())

	result, err := svc.Get(context.Background(), dto.TimetableQuery{StudentNumber: 100001, Grade: 10})
	require.NoError(t, err)
	assert.Equal(t, dto.TimetableDetailed, result.Type)
	assert.Nil(t, result.Subjects)
	assert.Empty(t, result.Degraded)
	require.Len(t, result.Schedule, len(models.Weekdays))
	assert.NotContains(t, result.Schedule, "Saturday")
	assert.Empty(t, result.Schedule["Friday"])

	monday := result.Schedule["Monday"]
	require.Len(t, monday, 2, "periods without a subject are skipped")
	assert.Equal(t, 1, monday[0].PeriodNumber)
	assert.Equal(t, "08:00", monday[0].StartTime)
	assert.Equal(t, 3, monday[1].PeriodNumber)
	require.NotNil(t, monday[0].SubjectID)
	assert.Equal(t, "s-math", *monday[0].SubjectID)
	require.NotNil(t, monday[1].SubjectID)
	assert.Equal(t, "s-eng", *monday[1].SubjectID)

	tuesday := result.Schedule["Tuesday"]
	require.Len(t, tuesday, 1)
	assert.Equal(t, "Drama Club", tuesday[0].Subject)
	assert.Nil(t, tuesday[0].SubjectID)
}

func TestTimetableServiceSimpleGradeListsSubjects(t *testing.T) {
	store, catalog := timetableFixture()
	svc := NewTimetableService(store, catalog, []int{10, 11, 12}, nil, zap.NewNop())

	result, err := svc.Get(context.Background(), dto.TimetableQuery{StudentNumber: 100001, Grade: 7})
	require.NoError(t, err)
	assert.Equal(t, dto.TimetableSimple, result.Type)
	assert.Equal(t, 7, result.Grade)
	assert.Equal(t, []string{"Afrikaans", "English", "Mathematics"}, result.Subjects)
	assert.Nil(t, result.Schedule)
	assert.Zero(t, store.cellCalls)
}

func TestTimetableServiceMissingTimetable(t *testing.T) {
	store, catalog := timetableFixture()
	store.cells = nil
	svc := NewTimetableService(store, catalog, []int{10}, nil, zap.NewNop())

	_, err := svc.Get(context.Background(), dto.TimetableQuery{StudentNumber: 100001, Grade: 10})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestTimetableServiceFailures(t *testing.T) {
	ctx := context.Background()
	query := dto.TimetableQuery{StudentNumber: 100001, Grade: 10}

	t.Run("cells", func(t *testing.T) {
		store, catalog := timetableFixture()
		store.cellsErr = errors.New("connection reset")
		_, err := NewTimetableService(store, catalog, []int{10}, nil, zap.NewNop()).Get(ctx, query)
		assert.ErrorIs(t, err, appErrors.ErrUpstreamUnavailable)
	})

	t.Run("headers", func(t *testing.T) {
		store, catalog := timetableFixture()
		store.headersErr = errors.New("connection reset")
		_, err := NewTimetableService(store, catalog, []int{10}, nil, zap.NewNop()).Get(ctx, query)
		assert.ErrorIs(t, err, appErrors.ErrUpstreamUnavailable)
	})

	t.Run("catalog degrades resolution", func(t *testing.T) {
		store, catalog := timetableFixture()
		catalog.subjectsErr = errors.New("connection reset")
		result, err := NewTimetableService(store, catalog, []int{10}, nil, zap.NewNop()).Get(ctx, query)
		require.NoError(t, err)
		assert.Equal(t, []string{dto.DegradedAliasResolution}, result.Degraded)
		require.NotEmpty(t, result.Schedule["Monday"])
		assert.Nil(t, result.Schedule["Monday"][0].SubjectID)
	})

	t.Run("catalog fails simple grade", func(t *testing.T) {
		store, catalog := timetableFixture()
		catalog.subjectsErr = errors.New("connection reset")
		_, err := NewTimetableService(store, catalog, []int{10}, nil, zap.NewNop()).Get(ctx, dto.TimetableQuery{StudentNumber: 100001, Grade: 5})
		assert.ErrorIs(t, err, appErrors.ErrUpstreamUnavailable)
	})
}

func TestTimetableServiceValidation(t *testing.T) {
	store, catalog := timetableFixture()
	svc := NewTimetableService(store, catalog, []int{10}, nil, zap.NewNop())
	_, err := svc.Get(context.Background(), dto.TimetableQuery{StudentNumber: 42, Grade: 10})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	assert.Zero(t, store.cellCalls)
}

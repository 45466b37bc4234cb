package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ivaschool/portal-api/internal/models"
	appErrors "github.com/ivaschool/portal-api/pkg/errors"
)

type memoryCache struct {
	values map[string]interface{}
	getErr error
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	if m.getErr != nil {
		return m.getErr
	}
	v, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	switch d := dest.(type) {
	case *[]models.Cycle:
		*d = v.([]models.Cycle)
	case *[]models.Subject:
		*d = v.([]models.Subject)
	}
	return nil
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.values[key] = value
	return nil
}

func (m *memoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

type countingCatalogRepo struct {
	cycles      []models.Cycle
	subjects    []models.Subject
	cycleCalls  int
	subjectCall int
	err         error
}

func (r *countingCatalogRepo) ListByGrade(ctx context.Context, grade int) ([]models.Cycle, error) {
	r.cycleCalls++
	return r.cycles, r.err
}

type countingSubjectRepo struct{ *countingCatalogRepo }

func (r countingSubjectRepo) ListByGrade(ctx context.Context, grade int) ([]models.Subject, error) {
	r.subjectCall++
	return r.subjects, r.err
}

func (r countingSubjectRepo) ListByNames(ctx context.Context, grade int, names []string) ([]models.Subject, error) {
	return r.subjects, r.err
}

func (r countingSubjectRepo) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	return &r.subjects[0], r.err
}

func TestCatalogServiceCachesCycles(t *testing.T) {
	repo := &countingCatalogRepo{
		cycles:   []models.Cycle{{Cycle: 1}},
		subjects: []models.Subject{{ID: "s-math", Name: "Mathematics"}},
	}
	cache := NewCacheService(&memoryCache{values: map[string]interface{}{}}, NewMetricsService(), time.Minute, zap.NewNop(), true)
	svc := NewCatalogService(repo, countingSubjectRepo{repo}, cache, time.Minute, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		cycles, err := svc.Cycles(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, cycles, 1)
		_, err = svc.Subjects(ctx, 10)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, repo.cycleCalls)
	assert.Equal(t, 1, repo.subjectCall)

	svc.Invalidate(ctx, 10)
	_, err := svc.Cycles(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.cycleCalls)

	byName, err := svc.SubjectsByName(ctx, 10, []string{"Mathematics"})
	require.NoError(t, err)
	assert.Equal(t, "s-math", byName["Mathematics"].ID)
}

func TestCatalogServiceCacheFailureFallsThrough(t *testing.T) {
	repo := &countingCatalogRepo{cycles: []models.Cycle{{Cycle: 1}}}
	cache := NewCacheService(&memoryCache{values: map[string]interface{}{}, getErr: errors.New("redis down")}, nil, time.Minute, zap.NewNop(), true)
	svc := NewCatalogService(repo, countingSubjectRepo{repo}, cache, time.Minute, nil)

	cycles, err := svc.Cycles(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, cycles, 1)
}

func TestCatalogServiceWithoutCache(t *testing.T) {
	repo := &countingCatalogRepo{err: errors.New("down")}
	svc := NewCatalogService(repo, countingSubjectRepo{repo}, nil, time.Minute, nil)
	_, err := svc.Cycles(context.Background(), 10)
	assert.Error(t, err)
}

package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ivaschool/portal-api/internal/models"
)

type cycleLister interface {
	ListByGrade(ctx context.Context, grade int) ([]models.Cycle, error)
}

type subjectCatalog interface {
	ListByGrade(ctx context.Context, grade int) ([]models.Subject, error)
	ListByNames(ctx context.Context, grade int, names []string) ([]models.Subject, error)
	FindByID(ctx context.Context, id string) (*models.Subject, error)
}

// CatalogService serves a grade's cycles and subjects, read through the
// cache when one is configured.
type CatalogService struct {
	cycles   cycleLister
	subjects subjectCatalog
	cache    *CacheService
	ttl      time.Duration
	logger   *zap.Logger
}

// NewCatalogService wires the catalog readers.
func NewCatalogService(cycles cycleLister, subjects subjectCatalog, cache *CacheService, ttl time.Duration, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{cycles: cycles, subjects: subjects, cache: cache, ttl: ttl, logger: logger}
}

func cyclesCacheKey(grade int) string   { return fmt.Sprintf("portal:cycles:%d", grade) }
func subjectsCacheKey(grade int) string { return fmt.Sprintf("portal:subjects:%d", grade) }

// Cycles lists the grade's cycles ascending by cycle number.
func (s *CatalogService) Cycles(ctx context.Context, grade int) ([]models.Cycle, error) {
	key := cyclesCacheKey(grade)
	var cached []models.Cycle
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}
	cycles, err := s.cycles.ListByGrade(ctx, grade)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, cycles, s.ttl)
	return cycles, nil
}

// Subjects lists the grade's full subject catalog in catalog order.
func (s *CatalogService) Subjects(ctx context.Context, grade int) ([]models.Subject, error) {
	key := subjectsCacheKey(grade)
	var cached []models.Subject
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return cached, nil
	}
	subjects, err := s.subjects.ListByGrade(ctx, grade)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Set(ctx, key, subjects, s.ttl)
	return subjects, nil
}

// SubjectsByName returns the subjects with exactly the requested names,
// keyed by canonical name.
func (s *CatalogService) SubjectsByName(ctx context.Context, grade int, names []string) (map[string]models.Subject, error) {
	subjects, err := s.subjects.ListByNames(ctx, grade, names)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]models.Subject, len(subjects))
	for _, subject := range subjects {
		byName[subject.Name] = subject
	}
	return byName, nil
}

// Subject loads one subject by id.
func (s *CatalogService) Subject(ctx context.Context, id string) (*models.Subject, error) {
	return s.subjects.FindByID(ctx, id)
}

// Invalidate drops the cached catalog of a grade.
func (s *CatalogService) Invalidate(ctx context.Context, grade int) {
	_ = s.cache.Invalidate(ctx, cyclesCacheKey(grade), subjectsCacheKey(grade))
}

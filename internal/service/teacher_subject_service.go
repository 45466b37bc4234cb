package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/ivaschool/portal-api/internal/models"
	appErrors "github.com/ivaschool/portal-api/pkg/errors"
)

type teacherSubjectReader interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherSubject, error)
	ListFromAssessments(ctx context.Context, teacherID string) ([]models.TeacherSubject, error)
}

// TeacherSubjectService lists the subjects a teacher teaches.
type TeacherSubjectService struct {
	repo   teacherSubjectReader
	logger *zap.Logger
}

// NewTeacherSubjectService constructs the service.
func NewTeacherSubjectService(repo teacherSubjectReader, logger *zap.Logger) *TeacherSubjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherSubjectService{repo: repo, logger: logger}
}

// List reads the teaching assignment view and falls back to the subjects of
// the teacher's own assessments when the view cannot be read.
func (s *TeacherSubjectService) List(ctx context.Context, claims *models.JWTClaims) ([]models.TeacherSubject, error) {
	teacherID := claims.TeacherID()
	if teacherID == "" {
		return nil, appErrors.ErrUnauthorized
	}
	subjects, err := s.repo.ListByTeacher(ctx, teacherID)
	if err == nil {
		return subjects, nil
	}
	s.logger.Warn("teacher subjects view failed, using assessments", zap.String("teacher_id", teacherID), zap.Error(err))

	subjects, err = s.repo.ListFromAssessments(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Upstream(err, "teacher subjects unavailable")
	}
	return subjects, nil
}

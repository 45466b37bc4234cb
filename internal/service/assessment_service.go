package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ivaschool/portal-api/internal/dto"
	"github.com/ivaschool/portal-api/internal/models"
	appErrors "github.com/ivaschool/portal-api/pkg/errors"
	"github.com/ivaschool/portal-api/pkg/validation"
)

const dateLayout = "2006-01-02"

type assessmentStore interface {
	List(ctx context.Context, filter models.AssessmentFilter) ([]models.Assessment, error)
	FindByID(ctx context.Context, id string) (*models.Assessment, error)
	Create(ctx context.Context, assessment *models.Assessment) error
	Update(ctx context.Context, assessment *models.Assessment) error
	DeleteCascade(ctx context.Context, id string) (int64, error)
}

type subjectFinder interface {
	FindByID(ctx context.Context, id string) (*models.Subject, error)
}

type assignmentReader interface {
	ListByTeacher(ctx context.Context, teacherID string) ([]models.TeacherSubject, error)
}

// AssessmentService implements the teacher assessment workflows.
type AssessmentService struct {
	repo        assessmentStore
	subjects    subjectFinder
	assignments assignmentReader
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAssessmentService constructs the service.
func NewAssessmentService(repo assessmentStore, subjects subjectFinder, assignments assignmentReader, validate *validator.Validate, logger *zap.Logger) *AssessmentService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{repo: repo, subjects: subjects, assignments: assignments, validator: validate, logger: logger}
}

// List returns the caller's assessments newest due first. Admins see every
// teacher's assessments.
func (s *AssessmentService) List(ctx context.Context, claims *models.JWTClaims, query dto.AssessmentListQuery) ([]models.Assessment, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Validation(err, "invalid assessment filter")
	}
	filter := models.AssessmentFilter{SubjectID: query.SubjectID, Cycle: query.Cycle}
	if claims.Role != models.RoleAdmin {
		filter.TeacherID = claims.TeacherID()
	}
	assessments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Upstream(err, "failed to list assessments")
	}
	return assessments, nil
}

// Create records a new assessment owned by the caller on a subject they teach.
func (s *AssessmentService) Create(ctx context.Context, claims *models.JWTClaims, req dto.AssessmentRequest) (*models.Assessment, error) {
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	assessment := &models.Assessment{}
	if err := s.apply(ctx, claims, assessment, req); err != nil {
		return nil, err
	}
	teacherID := claims.TeacherID()
	assessment.TeacherID = &teacherID

	if err := s.repo.Create(ctx, assessment); err != nil {
		return nil, appErrors.Upstream(err, "failed to create assessment")
	}
	s.logger.Info("assessment created",
		zap.String("assessment_id", assessment.ID),
		zap.String("subject_id", assessment.SubjectID),
		zap.String("teacher_id", teacherID))
	return assessment, nil
}

// Update edits an assessment the caller owns.
func (s *AssessmentService) Update(ctx context.Context, claims *models.JWTClaims, id string, req dto.AssessmentRequest) (*models.Assessment, error) {
	assessment, err := s.owned(ctx, claims, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, claims, assessment, req); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, assessment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assessment not found")
		}
		return nil, appErrors.Upstream(err, "failed to update assessment")
	}
	return assessment, nil
}

// Delete removes an assessment the caller owns together with its marks.
func (s *AssessmentService) Delete(ctx context.Context, claims *models.JWTClaims, id string) error {
	if _, err := s.owned(ctx, claims, id); err != nil {
		return err
	}
	removed, err := s.repo.DeleteCascade(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "assessment not found")
		}
		return appErrors.Upstream(err, "failed to delete assessment")
	}
	s.logger.Info("assessment deleted", zap.String("assessment_id", id), zap.Int64("marks_removed", removed))
	return nil
}

// owned loads an assessment and checks the caller may change it.
func (s *AssessmentService) owned(ctx context.Context, claims *models.JWTClaims, id string) (*models.Assessment, error) {
	return loadOwnedAssessment(ctx, s.repo, claims, id)
}

func (s *AssessmentService) apply(ctx context.Context, claims *models.JWTClaims, assessment *models.Assessment, req dto.AssessmentRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Validation(err, "invalid assessment payload")
	}
	due, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		return appErrors.Validation(err, "due_date must be YYYY-MM-DD")
	}
	subject, err := s.subjects.FindByID(ctx, req.SubjectID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrValidation, "unknown subject")
		}
		return appErrors.Upstream(err, "failed to load subject")
	}
	if err := s.checkTeaches(ctx, claims, subject.ID); err != nil {
		return err
	}

	assessment.SubjectID = subject.ID
	assessment.SubjectName = subject.Name
	assessment.Grade = subject.Grade
	assessment.Title = req.Title
	assessment.DueDate = due
	assessment.MaxMarks = req.MaxMarks
	assessment.Weighting = req.Weighting
	assessment.IsTest = req.IsTest
	assessment.Cycle = req.Cycle
	return nil
}

// checkTeaches rejects non-admin callers who are not assigned to the subject.
func (s *AssessmentService) checkTeaches(ctx context.Context, claims *models.JWTClaims, subjectID string) error {
	if claims.Role == models.RoleAdmin {
		return nil
	}
	teacherID := claims.TeacherID()
	subjects, err := s.assignments.ListByTeacher(ctx, teacherID)
	if err != nil {
		return appErrors.Upstream(err, "failed to load teaching assignments")
	}
	for _, subject := range subjects {
		if subject.SubjectID == subjectID {
			return nil
		}
	}
	s.logger.Warn("assessment rejected for unassigned subject",
		zap.String("teacher_id", teacherID),
		zap.String("subject_id", subjectID))
	return appErrors.Clone(appErrors.ErrForbidden, "you do not teach this subject")
}

type assessmentFinder interface {
	FindByID(ctx context.Context, id string) (*models.Assessment, error)
}

// loadOwnedAssessment returns the assessment when the caller owns it or is
// an admin.
func loadOwnedAssessment(ctx context.Context, repo assessmentFinder, claims *models.JWTClaims, id string) (*models.Assessment, error) {
	assessment, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assessment not found")
		}
		return nil, appErrors.Upstream(err, "failed to load assessment")
	}
	if claims == nil {
		return nil, appErrors.ErrUnauthorized
	}
	if claims.Role != models.RoleAdmin && !assessment.OwnedBy(claims.TeacherID()) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "assessment belongs to another teacher")
	}
	return assessment, nil
}

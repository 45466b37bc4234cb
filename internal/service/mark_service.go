package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ivaschool/portal-api/internal/dto"
	"github.com/ivaschool/portal-api/internal/models"
	appErrors "github.com/ivaschool/portal-api/pkg/errors"
	"github.com/ivaschool/portal-api/pkg/validation"
)

type markStore interface {
	ListByAssessment(ctx context.Context, assessmentID string) ([]models.Mark, error)
	Upsert(ctx context.Context, mark *models.Mark, publish *bool) (bool, error)
	SetPublished(ctx context.Context, assessmentID string, published bool) (int64, error)
}

type rosterReader interface {
	ListByGrade(ctx context.Context, grade int) ([]models.Student, error)
	ExistsInGrade(ctx context.Context, studentNumber int64, grade int) (bool, error)
}

// MarkService records scores and controls their publication.
type MarkService struct {
	assessments assessmentFinder
	marks       markStore
	students    rosterReader
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewMarkService constructs the service.
func NewMarkService(assessments assessmentFinder, marks markStore, students rosterReader, validate *validator.Validate, logger *zap.Logger) *MarkService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarkService{assessments: assessments, marks: marks, students: students, validator: validate, logger: logger}
}

// Upsert records or overwrites a student's score. It reports whether a new
// mark was created.
func (s *MarkService) Upsert(ctx context.Context, claims *models.JWTClaims, req dto.MarkRequest) (*models.Mark, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, appErrors.Validation(err, "invalid mark payload")
	}
	assessment, err := loadOwnedAssessment(ctx, s.assessments, claims, req.AssessmentID)
	if err != nil {
		return nil, false, err
	}
	if req.Obtained != nil && assessment.MaxMarks != nil && *req.Obtained > *assessment.MaxMarks {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("mark_obtained exceeds max marks of %g", *assessment.MaxMarks))
	}
	enrolled, err := s.students.ExistsInGrade(ctx, req.StudentNumber, assessment.Grade)
	if err != nil {
		return nil, false, appErrors.Upstream(err, "failed to check roster")
	}
	if !enrolled {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("student %d is not in grade %d", req.StudentNumber, assessment.Grade))
	}

	mark := &models.Mark{
		AssessmentID:  assessment.ID,
		StudentNumber: req.StudentNumber,
		Obtained:      req.Obtained,
		Comments:      normaliseComment(req.Comments),
	}
	created, err := s.marks.Upsert(ctx, mark, req.IsPublished)
	if err != nil {
		return nil, false, appErrors.Upstream(err, "failed to save mark")
	}
	return mark, created, nil
}

// Roster lists every student of the assessment's grade with their stored
// mark, unredacted.
func (s *MarkService) Roster(ctx context.Context, claims *models.JWTClaims, assessmentID string) ([]dto.RosterEntry, error) {
	assessment, err := loadOwnedAssessment(ctx, s.assessments, claims, assessmentID)
	if err != nil {
		return nil, err
	}
	students, err := s.students.ListByGrade(ctx, assessment.Grade)
	if err != nil {
		return nil, appErrors.Upstream(err, "failed to load roster")
	}
	marks, err := s.marks.ListByAssessment(ctx, assessment.ID)
	if err != nil {
		return nil, appErrors.Upstream(err, "failed to load marks")
	}

	byStudent := make(map[int64]models.Mark, len(marks))
	for _, mark := range marks {
		byStudent[mark.StudentNumber] = mark
	}
	roster := make([]dto.RosterEntry, 0, len(students))
	for _, student := range students {
		entry := dto.RosterEntry{StudentNumber: student.StudentNumber, StudentName: student.DisplayName()}
		if mark, ok := byStudent[student.StudentNumber]; ok {
			id := mark.ID
			entry.MarkID = &id
			entry.Obtained = mark.Obtained
			entry.Comments = mark.Comments
			entry.IsPublished = mark.IsPublished
		}
		roster = append(roster, entry)
	}
	return roster, nil
}

// Publish sets the publication flag on every mark of an assessment. Scores
// and comments are left untouched.
func (s *MarkService) Publish(ctx context.Context, claims *models.JWTClaims, assessmentID string, req dto.PublishRequest) (*dto.PublishResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid publish payload")
	}
	assessment, err := loadOwnedAssessment(ctx, s.assessments, claims, assessmentID)
	if err != nil {
		return nil, err
	}
	updated, err := s.marks.SetPublished(ctx, assessment.ID, *req.IsPublished)
	if err != nil {
		return nil, appErrors.Upstream(err, "failed to publish marks")
	}
	s.logger.Info("assessment marks publication changed",
		zap.String("assessment_id", assessment.ID),
		zap.Bool("is_published", *req.IsPublished),
		zap.Int64("updated", updated))
	return &dto.PublishResult{AssessmentID: assessment.ID, IsPublished: *req.IsPublished, Updated: updated}, nil
}

func normaliseComment(comment *string) *string {
	if comment == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*comment)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ivaschool/portal-api/internal/dto"
	"github.com/ivaschool/portal-api/internal/models"
	appErrors "github.com/ivaschool/portal-api/pkg/errors"
	"github.com/ivaschool/portal-api/pkg/export"
	"github.com/ivaschool/portal-api/pkg/validation"
)

type studentCatalog interface {
	Cycles(ctx context.Context, grade int) ([]models.Cycle, error)
	Subjects(ctx context.Context, grade int) ([]models.Subject, error)
	SubjectsByName(ctx context.Context, grade int, names []string) (map[string]models.Subject, error)
}

type enrollmentReader interface {
	FindByStudent(ctx context.Context, studentNumber int64, grade int) (*models.Enrollment, error)
}

type subjectAssessmentReader interface {
	ListForSubjects(ctx context.Context, subjectIDs []string, cycle int) ([]models.Assessment, error)
}

type studentMarkReader interface {
	ListForStudent(ctx context.Context, assessmentIDs []string, studentNumber int64) ([]models.Mark, error)
}

// StudentAssessmentService resolves a student's assessments and marks for
// one grading cycle.
type StudentAssessmentService struct {
	catalog     studentCatalog
	enrollments enrollmentReader
	assessments subjectAssessmentReader
	marks       studentMarkReader
	csv         tableRenderer
	pdf         tableRenderer
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
	location    *time.Location
	now         func() time.Time
}

// NewStudentAssessmentService constructs the service. "Today" is evaluated in
// loc.
func NewStudentAssessmentService(
	catalog studentCatalog,
	enrollments enrollmentReader,
	assessments subjectAssessmentReader,
	marks studentMarkReader,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	loc *time.Location,
) *StudentAssessmentService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &StudentAssessmentService{
		catalog:     catalog,
		enrollments: enrollments,
		assessments: assessments,
		marks:       marks,
		csv:         export.NewCSVExporter(),
		pdf:         export.NewPDFExporter(),
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
		location:    loc,
		now:         time.Now,
	}
}

// Get returns the student's cycles, the resolved cycle and the subject
// grouped assessments. A missing cycle or enrollment yields an empty but
// valid payload.
func (s *StudentAssessmentService) Get(ctx context.Context, query dto.StudentAssessmentsQuery) (*dto.StudentAssessments, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Validation(err, "invalid student assessments query")
	}
	start := time.Now()
	today := s.now().In(s.location)

	var (
		result        *dto.StudentAssessments
		resolved      *string
		aliasDegraded bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result, err = s.assemble(gctx, query, today)
		return err
	})
	if query.Alias != "" {
		g.Go(func() error {
			resolved, aliasDegraded = s.resolveAlias(gctx, query.Grade, query.Alias)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.metrics.ObserveAggregation("error", time.Since(start))
		return nil, err
	}

	result.ResolvedSubject = resolved
	if aliasDegraded {
		result.Degraded = append(result.Degraded, dto.DegradedAliasResolution)
	}
	outcome := "ok"
	if len(result.Degraded) > 0 {
		outcome = "degraded"
	}
	s.metrics.ObserveAggregation(outcome, time.Since(start))
	return result, nil
}

func (s *StudentAssessmentService) assemble(ctx context.Context, query dto.StudentAssessmentsQuery, today time.Time) (*dto.StudentAssessments, error) {
	cycles, err := s.catalog.Cycles(ctx, query.Grade)
	if err != nil {
		s.logger.Error("load cycles failed", zap.Int("grade", query.Grade), zap.Error(err))
		return nil, appErrors.Upstream(err, "grading cycles unavailable")
	}

	result := &dto.StudentAssessments{
		CurrentCycle: SelectCycle(cycles, query.Cycle, today),
		Cycles:       cycles,
		Subjects:     []dto.SubjectAssessments{},
	}
	if result.CurrentCycle == nil {
		return result, nil
	}

	enrollment, err := s.enrollments.FindByStudent(ctx, query.StudentNumber, query.Grade)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("enrollment lookup failed",
				zap.Int64("student_number", query.StudentNumber),
				zap.Int("grade", query.Grade),
				zap.Error(err))
			result.Degraded = append(result.Degraded, dto.DegradedEnrollment)
		}
		return result, nil
	}
	if enrollment.Empty() {
		return result, nil
	}

	names := []string(enrollment.SubjectNames)
	catalog, err := s.catalog.SubjectsByName(ctx, query.Grade, names)
	if err != nil {
		s.logger.Warn("timetable alias lookup failed", zap.Int("grade", query.Grade), zap.Error(err))
		result.Degraded = append(result.Degraded, dto.DegradedAliases)
		catalog = map[string]models.Subject{}
	}

	subjects, err := s.aggregate(ctx, enrollment, catalog, result.CurrentCycle.Cycle, query.StudentNumber)
	if err != nil {
		return nil, err
	}
	result.Subjects = subjects
	return result, nil
}

// aggregate joins the enrolled subjects with their assessments and the
// student's marks. Fetch failures are returned, never degraded.
func (s *StudentAssessmentService) aggregate(ctx context.Context, enrollment *models.Enrollment, catalog map[string]models.Subject, cycle int, studentNumber int64) ([]dto.SubjectAssessments, error) {
	ids := make([]string, len(enrollment.SubjectNames))
	query := make([]string, 0, len(ids))
	for i, name := range enrollment.SubjectNames {
		id := enrollment.SubjectID(i)
		if id == "" {
			id = catalog[name].ID
		}
		ids[i] = id
		if id != "" {
			query = append(query, id)
		}
	}

	assessments, err := s.assessments.ListForSubjects(ctx, query, cycle)
	if err != nil {
		s.logger.Error("load assessments failed", zap.Int("cycle", cycle), zap.Error(err))
		return nil, appErrors.Upstream(err, "assessments unavailable")
	}

	assessmentIDs := make([]string, 0, len(assessments))
	for _, assessment := range assessments {
		assessmentIDs = append(assessmentIDs, assessment.ID)
	}

	var marks []models.Mark
	if len(assessmentIDs) > 0 {
		marks, err = s.marks.ListForStudent(ctx, assessmentIDs, studentNumber)
		if err != nil {
			s.logger.Error("load marks failed", zap.Int64("student_number", studentNumber), zap.Error(err))
			return nil, appErrors.Upstream(err, "marks unavailable")
		}
	}

	return joinAssessments(enrollment.SubjectNames, ids, catalog, assessments, marks, studentNumber), nil
}

// joinAssessments emits one entry per enrolled subject, in enrollment order,
// with each assessment carrying the student's redacted mark.
func joinAssessments(names, ids []string, catalog map[string]models.Subject, assessments []models.Assessment, marks []models.Mark, studentNumber int64) []dto.SubjectAssessments {
	bySubject := make(map[string][]models.Assessment)
	for _, assessment := range assessments {
		bySubject[assessment.SubjectID] = append(bySubject[assessment.SubjectID], assessment)
	}
	byAssessment := make(map[string]models.Mark, len(marks))
	for _, mark := range marks {
		if mark.StudentNumber != studentNumber {
			continue
		}
		byAssessment[mark.AssessmentID] = mark
	}

	out := make([]dto.SubjectAssessments, 0, len(names))
	for i, name := range names {
		entry := dto.SubjectAssessments{
			SubjectName:      name,
			SubjectID:        ids[i],
			TimetableAliases: catalog[name].Aliases(),
			Assessments:      []dto.AssessmentWithMark{},
		}
		if ids[i] != "" {
			for _, assessment := range bySubject[ids[i]] {
				var view *dto.MarkView
				if mark, ok := byAssessment[assessment.ID]; ok {
					view = studentMarkView(mark, assessment.MaxMarks)
				}
				entry.Assessments = append(entry.Assessments, dto.AssessmentWithMark{
					ID:          assessment.ID,
					SubjectID:   assessment.SubjectID,
					SubjectName: assessment.SubjectName,
					TeacherID:   assessment.TeacherID,
					Title:       assessment.Title,
					DueDate:     assessment.DueDate,
					MaxMarks:    assessment.MaxMarks,
					Weighting:   assessment.Weighting,
					IsTest:      assessment.IsTest,
					Cycle:       assessment.Cycle,
					Mark:        view,
				})
			}
		}
		out = append(out, entry)
	}
	return out
}

// studentMarkView hides the score and comment until the mark is published.
func studentMarkView(mark models.Mark, maxMarks *float64) *dto.MarkView {
	view := &dto.MarkView{IsPublished: mark.IsPublished}
	if !mark.IsPublished {
		return view
	}
	view.Obtained = mark.Obtained
	view.Comments = mark.Comments
	if mark.Obtained != nil && maxMarks != nil && *maxMarks > 0 {
		pct := math.Round(*mark.Obtained / *maxMarks * 1000) / 10
		view.Percentage = &pct
	}
	return view
}

func (s *StudentAssessmentService) resolveAlias(ctx context.Context, grade int, alias string) (*string, bool) {
	subjects, err := s.catalog.Subjects(ctx, grade)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("alias resolution failed", zap.Int("grade", grade), zap.String("alias", alias), zap.Error(err))
		}
		return nil, true
	}
	return ResolveAlias(subjects, alias), false
}

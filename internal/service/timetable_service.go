package service

import (
	"context"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ivaschool/portal-api/internal/dto"
	"github.com/ivaschool/portal-api/internal/models"
	appErrors "github.com/ivaschool/portal-api/pkg/errors"
	"github.com/ivaschool/portal-api/pkg/validation"
)

type timetableStore interface {
	ListHeaders(ctx context.Context) ([]models.TimetableHeader, error)
	ListCells(ctx context.Context, studentNumber int64, grade int) ([]models.TimetableCell, error)
}

type gradeSubjects interface {
	Subjects(ctx context.Context, grade int) ([]models.Subject, error)
}

// TimetableService builds a student's weekly schedule.
type TimetableService struct {
	repo      timetableStore
	subjects  gradeSubjects
	detailed  map[int]bool
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTimetableService constructs the service. detailedGrades lists the grades
// that keep per-period timetables.
func NewTimetableService(repo timetableStore, subjects gradeSubjects, detailedGrades []int, validate *validator.Validate, logger *zap.Logger) *TimetableService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	detailed := make(map[int]bool, len(detailedGrades))
	for _, grade := range detailedGrades {
		detailed[grade] = true
	}
	return &TimetableService{repo: repo, subjects: subjects, detailed: detailed, validator: validate, logger: logger}
}

// Get returns the detailed schedule for grades with period timetables and
// the grade's subject names otherwise.
func (s *TimetableService) Get(ctx context.Context, query dto.TimetableQuery) (*dto.Timetable, error) {
	if err := s.validator.Struct(query); err != nil {
		return nil, appErrors.Validation(err, "invalid timetable query")
	}
	if !s.detailed[query.Grade] {
		return s.simple(ctx, query)
	}

	cells, err := s.repo.ListCells(ctx, query.StudentNumber, query.Grade)
	if err != nil {
		s.logger.Error("load timetable failed", zap.Int64("student_number", query.StudentNumber), zap.Error(err))
		return nil, appErrors.Upstream(err, "timetable unavailable")
	}
	if len(cells) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "timetable not found for student")
	}
	headers, err := s.repo.ListHeaders(ctx)
	if err != nil {
		s.logger.Error("load timetable headers failed", zap.Error(err))
		return nil, appErrors.Upstream(err, "timetable headers unavailable")
	}

	result := &dto.Timetable{
		Type:          dto.TimetableDetailed,
		Grade:         query.Grade,
		StudentNumber: query.StudentNumber,
		Schedule:      buildSchedule(headers, cells),
	}

	catalog, err := s.subjects.Subjects(ctx, query.Grade)
	if err != nil {
		s.logger.Warn("subject catalog unavailable, timetable cells left unresolved", zap.Int("grade", query.Grade), zap.Error(err))
		result.Degraded = append(result.Degraded, dto.DegradedAliasResolution)
		return result, nil
	}
	resolveSlots(result.Schedule, catalog)
	return result, nil
}

func (s *TimetableService) simple(ctx context.Context, query dto.TimetableQuery) (*dto.Timetable, error) {
	catalog, err := s.subjects.Subjects(ctx, query.Grade)
	if err != nil {
		s.logger.Error("load grade subjects failed", zap.Int("grade", query.Grade), zap.Error(err))
		return nil, appErrors.Upstream(err, "subjects unavailable")
	}
	names := make([]string, 0, len(catalog))
	for _, subject := range catalog {
		names = append(names, subject.Name)
	}
	sort.Strings(names)
	return &dto.Timetable{
		Type:          dto.TimetableSimple,
		Grade:         query.Grade,
		StudentNumber: query.StudentNumber,
		Subjects:      names,
	}, nil
}

// buildSchedule places each filled cell on its header's weekday, ordered by
// period number. Every weekday is present even when empty.
func buildSchedule(headers []models.TimetableHeader, cells []models.TimetableCell) map[string][]dto.TimetableSlot {
	byCode := make(map[string]string, len(cells))
	for _, cell := range cells {
		byCode[cell.Code] = cell.Subject
	}
	schedule := make(map[string][]dto.TimetableSlot, len(models.Weekdays))
	for _, day := range models.Weekdays {
		schedule[day] = []dto.TimetableSlot{}
	}
	for _, header := range headers {
		subject := byCode[header.Code]
		slots, ok := schedule[header.Weekday]
		if subject == "" || !ok {
			continue
		}
		schedule[header.Weekday] = append(slots, dto.TimetableSlot{
			PeriodNumber: header.PeriodNumber,
			Code:         header.Code,
			Subject:      subject,
			StartTime:    header.StartTime,
			EndTime:      header.EndTime,
		})
	}
	for _, slots := range schedule {
		sort.SliceStable(slots, func(i, j int) bool { return slots[i].PeriodNumber < slots[j].PeriodNumber })
	}
	return schedule
}

func resolveSlots(schedule map[string][]dto.TimetableSlot, catalog []models.Subject) {
	resolved := map[string]*string{}
	for _, slots := range schedule {
		for i := range slots {
			label := slots[i].Subject
			id, seen := resolved[label]
			if !seen {
				id = resolveSubjectID(catalog, label)
				resolved[label] = id
			}
			slots[i].SubjectID = id
		}
	}
}

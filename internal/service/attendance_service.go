package service

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/ivaschool/portal-api/internal/dto"
	"github.com/ivaschool/portal-api/internal/models"
	appErrors "github.com/ivaschool/portal-api/pkg/errors"
)

type attendanceReader interface {
	ListByStudent(ctx context.Context, studentNumber int64) ([]models.AttendanceSubmission, error)
}

// AttendanceService derives a student's attendance from lesson registers.
type AttendanceService struct {
	repo   attendanceReader
	logger *zap.Logger
}

// NewAttendanceService constructs the service.
func NewAttendanceService(repo attendanceReader, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, logger: logger}
}

const unknownSubject = "Unknown Subject"

// Report returns the student's records newest first plus totals.
func (s *AttendanceService) Report(ctx context.Context, studentNumber int64) (*dto.AttendanceReport, error) {
	if studentNumber < 100000 || studentNumber > 999999 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "studentNumber must be a 6 digit number")
	}
	submissions, err := s.repo.ListByStudent(ctx, studentNumber)
	if err != nil {
		s.logger.Error("load attendance failed", zap.Int64("student_number", studentNumber), zap.Error(err))
		return nil, appErrors.Upstream(err, "attendance unavailable")
	}

	records := make([]models.AttendanceRecord, 0, len(submissions))
	for _, submission := range submissions {
		subject := unknownSubject
		if submission.SubjectName != nil && *submission.SubjectName != "" {
			subject = *submission.SubjectName
		}
		records = append(records, models.AttendanceRecord{
			Date:    submission.Date,
			Subject: subject,
			Status:  attendanceStatus(submission, studentNumber),
		})
	}
	return &dto.AttendanceReport{Records: records, Summary: summarise(records)}, nil
}

// attendanceStatus applies the register precedence: absent, late, excused,
// blocked, cycle test, then present.
func attendanceStatus(submission models.AttendanceSubmission, studentNumber int64) models.AttendanceStatus {
	switch {
	case containsStudent(submission.AbsentStudents, studentNumber):
		return models.AttendanceAbsent
	case containsStudent(submission.LateStudents, studentNumber):
		return models.AttendanceLate
	case containsStudent(submission.ExcusedStudents, studentNumber):
		return models.AttendanceExcused
	case containsStudent(submission.BlockedStudents, studentNumber):
		return models.AttendanceBlocked
	case containsStudent(submission.CycleTestStudents, studentNumber):
		return models.AttendanceCycleTest
	default:
		return models.AttendancePresent
	}
}

func containsStudent(list []int64, studentNumber int64) bool {
	for _, n := range list {
		if n == studentNumber {
			return true
		}
	}
	return false
}

func summarise(records []models.AttendanceRecord) models.AttendanceSummary {
	summary := models.AttendanceSummary{Total: len(records)}
	for _, record := range records {
		switch record.Status {
		case models.AttendancePresent:
			summary.Present++
		case models.AttendanceAbsent:
			summary.Absent++
		case models.AttendanceLate:
			summary.Late++
		case models.AttendanceExcused:
			summary.Excused++
		case models.AttendanceBlocked:
			summary.Blocked++
		case models.AttendanceCycleTest:
			summary.CycleTest++
		}
	}
	summary.AttendancePercentage = 100
	if summary.Total > 0 {
		summary.AttendancePercentage = int(math.Round(float64(summary.Present) / float64(summary.Total) * 100))
	}
	return summary
}

package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ivaschool/portal-api/internal/dto"
	appErrors "github.com/ivaschool/portal-api/pkg/errors"
	"github.com/ivaschool/portal-api/pkg/export"
)

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

type tableRenderer interface {
	Render(table export.Table) ([]byte, error)
}

// ExportFile is a rendered results document.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

var exportHeaders = []string{"Subject", "Assessment", "Due date", "Type", "Max marks", "Obtained", "Percentage", "Status"}

// Export renders the student's results for the resolved cycle. Unpublished
// marks appear as pending without a score.
func (s *StudentAssessmentService) Export(ctx context.Context, query dto.StudentAssessmentsQuery, format string) (*ExportFile, error) {
	format = strings.ToLower(format)
	if format == "" {
		format = ExportFormatCSV
	}
	renderer, contentType := s.rendererFor(format)
	if renderer == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	query.Alias = ""
	result, err := s.Get(ctx, query)
	if err != nil {
		return nil, err
	}

	table := resultsTable(query.StudentNumber, result)
	body, err := renderer.Render(table)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render export")
	}

	cycle := "none"
	if result.CurrentCycle != nil {
		cycle = strconv.Itoa(result.CurrentCycle.Cycle)
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("results-%d-cycle-%s.%s", query.StudentNumber, cycle, format),
		ContentType: contentType,
		Body:        body,
	}, nil
}

func (s *StudentAssessmentService) rendererFor(format string) (tableRenderer, string) {
	switch format {
	case ExportFormatCSV:
		return s.csv, "text/csv"
	case ExportFormatPDF:
		return s.pdf, "application/pdf"
	default:
		return nil, ""
	}
}

func resultsTable(studentNumber int64, result *dto.StudentAssessments) export.Table {
	title := fmt.Sprintf("Results for student %d", studentNumber)
	if result.CurrentCycle != nil {
		title = fmt.Sprintf("%s, cycle %d (%d)", title, result.CurrentCycle.Cycle, result.CurrentCycle.Year)
	}
	table := export.Table{Title: title, Headers: exportHeaders}
	for _, subject := range result.Subjects {
		for _, assessment := range subject.Assessments {
			kind := "Assignment"
			if assessment.IsTest {
				kind = "Test"
			}
			status := "Not graded"
			var obtained, pct string
			if mark := assessment.Mark; mark != nil {
				status = "Pending"
				if mark.IsPublished {
					status = "Published"
					obtained = formatFloat(mark.Obtained)
					pct = formatFloat(mark.Percentage)
				}
			}
			table.Rows = append(table.Rows, []string{
				subject.SubjectName,
				assessment.Title,
				assessment.DueDate.Format("2006-01-02"),
				kind,
				formatFloat(assessment.MaxMarks),
				obtained,
				pct,
				status,
			})
		}
	}
	return table
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

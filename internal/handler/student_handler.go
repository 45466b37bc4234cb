package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ivaschool/portal-api/internal/dto"
	"github.com/ivaschool/portal-api/internal/service"
	"github.com/ivaschool/portal-api/pkg/response"
)

type studentAssessmentService interface {
	Get(ctx context.Context, query dto.StudentAssessmentsQuery) (*dto.StudentAssessments, error)
	Export(ctx context.Context, query dto.StudentAssessmentsQuery, format string) (*service.ExportFile, error)
}

type attendanceService interface {
	Report(ctx context.Context, studentNumber int64) (*dto.AttendanceReport, error)
}

type timetableService interface {
	Get(ctx context.Context, query dto.TimetableQuery) (*dto.Timetable, error)
}

// StudentHandler serves the student portal read endpoints.
type StudentHandler struct {
	assessments studentAssessmentService
	attendance  attendanceService
	timetable   timetableService
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(assessments studentAssessmentService, attendance attendanceService, timetable timetableService) *StudentHandler {
	return &StudentHandler{assessments: assessments, attendance: attendance, timetable: timetable}
}

// Assessments godoc
// @Summary Student assessments for a grading cycle
// @Description Resolves the current or requested cycle and returns the student's enrolled subjects with assessments and published marks.
// @Tags Student
// @Produce json
// @Param studentNumber query int false "Student number (defaults to the caller)"
// @Param grade query int false "Grade (defaults to the caller)"
// @Param cycle query int false "Explicit cycle number"
// @Param alias query string false "Timetable alias to resolve"
// @Success 200 {object} response.Envelope{data=dto.StudentAssessments}
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /student/assessments [get]
func (h *StudentHandler) Assessments(c *gin.Context) {
	query, err := studentQueryFromRequest(c, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.assessments.Get(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	var meta map[string]interface{}
	if len(result.Degraded) > 0 {
		meta = map[string]interface{}{"degraded": result.Degraded}
	}
	response.JSON(c, http.StatusOK, result, meta)
}

// Export godoc
// @Summary Export student results
// @Tags Student
// @Produce text/csv
// @Produce application/pdf
// @Param studentNumber query int false "Student number (defaults to the caller)"
// @Param grade query int false "Grade (defaults to the caller)"
// @Param cycle query int false "Explicit cycle number"
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /student/assessments/export [get]
func (h *StudentHandler) Export(c *gin.Context) {
	query, err := studentQueryFromRequest(c, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.assessments.Export(c.Request.Context(), query, c.DefaultQuery("format", service.ExportFormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// Attendance godoc
// @Summary Student attendance
// @Tags Student
// @Produce json
// @Param studentNumber query int false "Student number (defaults to the caller)"
// @Success 200 {object} response.Envelope{data=dto.AttendanceReport}
// @Router /student/attendance [get]
func (h *StudentHandler) Attendance(c *gin.Context) {
	query, err := studentQueryFromRequest(c, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.attendance.Report(c.Request.Context(), query.StudentNumber)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// Timetable godoc
// @Summary Student timetable
// @Description Per-weekday periods for grades with detailed timetables, otherwise the grade's subject list.
// @Tags Student
// @Produce json
// @Param studentNumber query int false "Student number (defaults to the caller)"
// @Param grade query int false "Grade (defaults to the caller)"
// @Success 200 {object} response.Envelope{data=dto.Timetable}
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /student/timetable [get]
func (h *StudentHandler) Timetable(c *gin.Context) {
	query, err := studentQueryFromRequest(c, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	timetable, err := h.timetable.Get(c.Request.Context(), dto.TimetableQuery{StudentNumber: query.StudentNumber, Grade: query.Grade})
	if err != nil {
		response.Error(c, err)
		return
	}
	var meta map[string]interface{}
	if len(timetable.Degraded) > 0 {
		meta = map[string]interface{}{"degraded": timetable.Degraded}
	}
	response.JSON(c, http.StatusOK, timetable, meta)
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ivaschool/portal-api/internal/dto"
	"github.com/ivaschool/portal-api/internal/models"
	"github.com/ivaschool/portal-api/pkg/response"
)

type teacherSubjectService interface {
	List(ctx context.Context, claims *models.JWTClaims) ([]models.TeacherSubject, error)
}

type assessmentService interface {
	List(ctx context.Context, claims *models.JWTClaims, query dto.AssessmentListQuery) ([]models.Assessment, error)
	Create(ctx context.Context, claims *models.JWTClaims, req dto.AssessmentRequest) (*models.Assessment, error)
	Update(ctx context.Context, claims *models.JWTClaims, id string, req dto.AssessmentRequest) (*models.Assessment, error)
	Delete(ctx context.Context, claims *models.JWTClaims, id string) error
}

type markService interface {
	Upsert(ctx context.Context, claims *models.JWTClaims, req dto.MarkRequest) (*models.Mark, bool, error)
	Roster(ctx context.Context, claims *models.JWTClaims, assessmentID string) ([]dto.RosterEntry, error)
	Publish(ctx context.Context, claims *models.JWTClaims, assessmentID string, req dto.PublishRequest) (*dto.PublishResult, error)
}

// TeacherHandler exposes assessment management and mark entry.
type TeacherHandler struct {
	subjects    teacherSubjectService
	assessments assessmentService
	marks       markService
}

// NewTeacherHandler constructs the handler.
func NewTeacherHandler(subjects teacherSubjectService, assessments assessmentService, marks markService) *TeacherHandler {
	return &TeacherHandler{subjects: subjects, assessments: assessments, marks: marks}
}

// Subjects godoc
// @Summary Subjects taught by the caller
// @Tags Teacher
// @Produce json
// @Success 200 {object} response.Envelope{data=[]models.TeacherSubject}
// @Router /teacher/subjects [get]
func (h *TeacherHandler) Subjects(c *gin.Context) {
	subjects, err := h.subjects.List(c.Request.Context(), claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, subjects)
}

// ListAssessments godoc
// @Summary List the caller's assessments
// @Tags Teacher
// @Produce json
// @Param subject query string false "Subject ID"
// @Param cycle query int false "Cycle number"
// @Success 200 {object} response.Envelope{data=[]models.Assessment}
// @Router /teacher/assessments [get]
func (h *TeacherHandler) ListAssessments(c *gin.Context) {
	var query dto.AssessmentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, bindError(err, "invalid assessment filter"))
		return
	}
	assessments, err := h.assessments.List(c.Request.Context(), claimsFromContext(c), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assessments, map[string]interface{}{"count": len(assessments)})
}

// CreateAssessment godoc
// @Summary Create an assessment
// @Tags Teacher
// @Accept json
// @Produce json
// @Param payload body dto.AssessmentRequest true "Assessment payload"
// @Success 201 {object} response.Envelope{data=models.Assessment}
// @Failure 400 {object} response.Envelope
// @Router /teacher/assessments [post]
func (h *TeacherHandler) CreateAssessment(c *gin.Context) {
	var req dto.AssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid assessment payload"))
		return
	}
	assessment, err := h.assessments.Create(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assessment)
}

// UpdateAssessment godoc
// @Summary Update an assessment
// @Tags Teacher
// @Accept json
// @Produce json
// @Param id path string true "Assessment ID"
// @Param payload body dto.AssessmentRequest true "Assessment payload"
// @Success 200 {object} response.Envelope{data=models.Assessment}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teacher/assessments/{id} [put]
func (h *TeacherHandler) UpdateAssessment(c *gin.Context) {
	var req dto.AssessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid assessment payload"))
		return
	}
	assessment, err := h.assessments.Update(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assessment)
}

// DeleteAssessment godoc
// @Summary Delete an assessment and its marks
// @Tags Teacher
// @Param id path string true "Assessment ID"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teacher/assessments/{id} [delete]
func (h *TeacherHandler) DeleteAssessment(c *gin.Context) {
	if err := h.assessments.Delete(c.Request.Context(), claimsFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Roster godoc
// @Summary Marking sheet for an assessment
// @Tags Teacher
// @Produce json
// @Param id path string true "Assessment ID"
// @Success 200 {object} response.Envelope{data=[]dto.RosterEntry}
// @Router /teacher/assessments/{id}/marks [get]
func (h *TeacherHandler) Roster(c *gin.Context) {
	roster, err := h.marks.Roster(c.Request.Context(), claimsFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, roster)
}

// UpsertMark godoc
// @Summary Record a student's mark
// @Tags Teacher
// @Accept json
// @Produce json
// @Param payload body dto.MarkRequest true "Mark payload"
// @Success 200 {object} response.Envelope{data=models.Mark}
// @Success 201 {object} response.Envelope{data=models.Mark}
// @Router /teacher/marks [post]
func (h *TeacherHandler) UpsertMark(c *gin.Context) {
	var req dto.MarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid mark payload"))
		return
	}
	mark, created, err := h.marks.Upsert(c.Request.Context(), claimsFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if created {
		response.Created(c, mark)
		return
	}
	response.JSON(c, http.StatusOK, mark)
}

// Publish godoc
// @Summary Publish or unpublish every mark of an assessment
// @Tags Teacher
// @Accept json
// @Produce json
// @Param id path string true "Assessment ID"
// @Param payload body dto.PublishRequest true "Publication flag"
// @Success 200 {object} response.Envelope{data=dto.PublishResult}
// @Router /teacher/assessments/{id}/publish [put]
func (h *TeacherHandler) Publish(c *gin.Context) {
	var req dto.PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, bindError(err, "invalid publish payload"))
		return
	}
	result, err := h.marks.Publish(c.Request.Context(), claimsFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

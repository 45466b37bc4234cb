package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/ivaschool/portal-api/internal/handler"
	"github.com/ivaschool/portal-api/internal/middleware"
	"github.com/ivaschool/portal-api/internal/models"
	"github.com/ivaschool/portal-api/internal/service"
	"github.com/ivaschool/portal-api/pkg/logger"
	corsmiddleware "github.com/ivaschool/portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/ivaschool/portal-api/pkg/middleware/requestid"
)

// Handlers groups the handler instances mounted by New.
type Handlers struct {
	Student   *handler.StudentHandler
	Teacher   *handler.TeacherHandler
	Assistant *handler.AssistantHandler
	Catalog   *handler.CatalogHandler
	Metrics   *handler.MetricsHandler
}

// Options carries the cross-cutting dependencies of the route tree.
type Options struct {
	APIPrefix      string
	AllowedOrigins []string
	Docs           bool

	Tokens  middleware.TokenValidator
	Limiter middleware.RateCounter
	Metrics *service.MetricsService
	Logger  *zap.Logger

	RateLimitWindow time.Duration
	RateLimitMax    int
	AssistantMax    int
}

// New builds the gin engine with every portal route.
func New(h Handlers, opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(log))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	r.Use(middleware.Metrics(opts.Metrics))

	r.GET("/health", h.Metrics.Health)
	r.GET("/ready", h.Metrics.Ready)
	r.GET("/metrics", h.Metrics.Prometheus)
	if opts.Docs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(opts.APIPrefix)
	api.Use(middleware.RateLimit(opts.Limiter, "api", opts.RateLimitMax, opts.RateLimitWindow, opts.Metrics, log))
	api.Use(middleware.JWT(opts.Tokens))

	student := api.Group("/student")
	student.Use(middleware.RequireRoles(models.RoleStudent, models.RoleTeacher, models.RoleAdmin))
	{
		student.GET("/assessments", h.Student.Assessments)
		student.GET("/assessments/export", h.Student.Export)
		student.GET("/attendance", h.Student.Attendance)
		student.GET("/timetable", h.Student.Timetable)
	}

	teacher := api.Group("/teacher")
	teacher.Use(middleware.RequireRoles(models.RoleTeacher, models.RoleAdmin))
	{
		teacher.GET("/subjects", h.Teacher.Subjects)
		teacher.GET("/assessments", h.Teacher.ListAssessments)
		teacher.POST("/assessments", h.Teacher.CreateAssessment)
		teacher.PUT("/assessments/:id", h.Teacher.UpdateAssessment)
		teacher.DELETE("/assessments/:id", h.Teacher.DeleteAssessment)
		teacher.GET("/assessments/:id/marks", h.Teacher.Roster)
		teacher.PUT("/assessments/:id/publish", h.Teacher.Publish)
		teacher.POST("/marks", h.Teacher.UpsertMark)
	}

	assistant := api.Group("/assistant")
	assistant.Use(middleware.RateLimit(opts.Limiter, "assistant", opts.AssistantMax, opts.RateLimitWindow, opts.Metrics, log))
	{
		assistant.POST("/chat", h.Assistant.Chat)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	{
		admin.POST("/catalog/:grade/refresh", h.Catalog.Refresh)
	}

	return r
}

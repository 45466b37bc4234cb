package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/ivaschool/portal-api/api/swagger"
	"github.com/ivaschool/portal-api/internal/handler"
	"github.com/ivaschool/portal-api/internal/middleware"
	"github.com/ivaschool/portal-api/internal/repository"
	"github.com/ivaschool/portal-api/internal/router"
	"github.com/ivaschool/portal-api/internal/service"
	"github.com/ivaschool/portal-api/pkg/assistant"
	"github.com/ivaschool/portal-api/pkg/cache"
	"github.com/ivaschool/portal-api/pkg/config"
	"github.com/ivaschool/portal-api/pkg/database"
	"github.com/ivaschool/portal-api/pkg/logger"
	"github.com/ivaschool/portal-api/pkg/validation"
)

// @title IVA School Portal API
// @version 1.0.0
// @description Assessment, grading cycle and study assistant endpoints for the student and teacher portals.
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	var redisClient *redis.Client
	if client, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Warn("redis unavailable, catalog cache disabled and rate limiting fails open", zap.Error(err))
	} else {
		redisClient = client
		defer redisClient.Close()
	}

	validate := validation.New()
	metrics := service.NewMetricsService()
	location := cfg.Portal.Location()

	cycleRepo := repository.NewCycleRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)
	markRepo := repository.NewMarkRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	teacherSubjectRepo := repository.NewTeacherSubjectRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)
	var limiter middleware.RateCounter
	if redisClient != nil {
		limiter = repository.NewRateLimitRepository(redisClient)
	}

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Portal.CatalogCacheTTL, logr, cfg.Portal.CacheEnabled && redisClient != nil)
	catalogSvc := service.NewCatalogService(cycleRepo, subjectRepo, cacheSvc, cfg.Portal.CatalogCacheTTL, logr)
	studentAssessmentSvc := service.NewStudentAssessmentService(catalogSvc, enrollmentRepo, assessmentRepo, markRepo, metrics, validate, logr, location)
	assessmentSvc := service.NewAssessmentService(assessmentRepo, subjectRepo, teacherSubjectRepo, validate, logr)
	markSvc := service.NewMarkService(assessmentRepo, markRepo, studentRepo, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, logr)
	timetableSvc := service.NewTimetableService(timetableRepo, catalogSvc, cfg.Portal.DetailedTimetableGrades, validate, logr)
	teacherSubjectSvc := service.NewTeacherSubjectService(teacherSubjectRepo, logr)
	authSvc := service.NewAuthService(service.AuthConfig{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer})

	assistantCfg := service.AssistantConfig{SystemPrompt: cfg.Assistant.SystemPrompt, Timeout: cfg.Assistant.Timeout}
	var assistantSvc *service.AssistantService
	if cfg.Assistant.Enabled() {
		gemini, err := assistant.NewGemini(context.Background(), cfg.Assistant.APIKey, cfg.Assistant.Model)
		if err != nil {
			logr.Fatal("failed to init assistant client", zap.Error(err))
		}
		assistantSvc = service.NewAssistantService(gemini, assistantCfg, metrics, validate, logr)
	} else {
		logr.Warn("ASSISTANT_API_KEY not set, assistant chat disabled")
		assistantSvc = service.NewAssistantService(nil, assistantCfg, metrics, validate, logr)
	}

	checks := map[string]handler.ReadinessCheck{"postgres": db.PingContext}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	engine := router.New(router.Handlers{
		Student:   handler.NewStudentHandler(studentAssessmentSvc, attendanceSvc, timetableSvc),
		Teacher:   handler.NewTeacherHandler(teacherSubjectSvc, assessmentSvc, markSvc),
		Assistant: handler.NewAssistantHandler(assistantSvc),
		Catalog:   handler.NewCatalogHandler(catalogSvc),
		Metrics:   handler.NewMetricsHandler(metrics, checks),
	}, router.Options{
		APIPrefix:       cfg.APIPrefix,
		AllowedOrigins:  cfg.CORS.AllowedOrigins,
		Docs:            cfg.Env != config.EnvProduction,
		Tokens:          authSvc,
		Limiter:         limiter,
		Metrics:         metrics,
		Logger:          logr,
		RateLimitWindow: cfg.RateLimit.Window,
		RateLimitMax:    cfg.RateLimit.Max,
		AssistantMax:    cfg.RateLimit.AssistantMax,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logr.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

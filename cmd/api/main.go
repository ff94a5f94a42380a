package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/campus-ops/uniadmin-api/internal/handler"
	"github.com/campus-ops/uniadmin-api/internal/middleware"
	"github.com/campus-ops/uniadmin-api/internal/models"
	"github.com/campus-ops/uniadmin-api/internal/repository"
	"github.com/campus-ops/uniadmin-api/internal/service"
	"github.com/campus-ops/uniadmin-api/pkg/cache"
	"github.com/campus-ops/uniadmin-api/pkg/config"
	"github.com/campus-ops/uniadmin-api/pkg/database"
	"github.com/campus-ops/uniadmin-api/pkg/export"
	"github.com/campus-ops/uniadmin-api/pkg/logger"
	corsmiddleware "github.com/campus-ops/uniadmin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/campus-ops/uniadmin-api/pkg/middleware/requestid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		// The API degrades to uncached reads when Redis is unreachable.
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()

	// Repositories.
	teacherRepo := repository.NewTeacherRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	slotAssignmentRepo := repository.NewSlotAssignmentRepository(db)
	specialScheduleRepo := repository.NewSpecialScheduleRepository(db)
	userRepo := repository.NewUserRepository(db)
	txManager := repository.NewTxManager(db)

	// Services.
	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if redisClient != nil {
		cacheRepo := repository.NewCacheRepository(redisClient)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Slots.CacheTTL, logr, cfg.Slots.CacheEnabled)
	} else {
		cacheSvc = service.NewCacheService(nil, metricsSvc, cfg.Slots.CacheTTL, logr, false)
	}

	workloadSvc := service.NewWorkloadService(teacherRepo, assignmentRepo, cfg.Workload.DefaultWeeklyHours, logr)
	quotaTracker := service.NewQuotaTracker(teacherRepo, slotAssignmentRepo, cfg.Workload.DeptQuotaRatio)
	assignmentSvc := service.NewAssignmentService(teacherRepo, courseRepo, assignmentRepo, workloadSvc, txManager, validate, logr)
	slotAssignmentSvc := service.NewSlotAssignmentService(teacherRepo, slotRepo, slotAssignmentRepo, quotaTracker, txManager, cfg.Workload.MaxWeekDays, validate, logr)
	specialScheduleSvc := service.NewSpecialScheduleService(teacherRepo, assignmentRepo, slotRepo, specialScheduleRepo, txManager, validate, logr)
	teacherSvc := service.NewTeacherService(teacherRepo, validate, logr)
	slotSvc := service.NewSlotService(slotRepo, cacheSvc, cfg.Slots.CacheTTL, logr)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})

	// Handlers.
	authHandler := handler.NewAuthHandler(authSvc)
	teacherHandler := handler.NewTeacherHandler(teacherSvc, workloadSvc, export.NewCSVExporter(), export.NewPDFExporter())
	slotHandler := handler.NewSlotHandler(slotSvc)
	assignmentHandler := handler.NewAssignmentHandler(assignmentSvc, metricsSvc)
	slotAssignmentHandler := handler.NewSlotAssignmentHandler(slotAssignmentSvc, metricsSvc)
	specialScheduleHandler := handler.NewSpecialScheduleHandler(specialScheduleSvc, metricsSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))

	staffOnly := middleware.RequireRoles(models.RoleSuperAdmin, models.RoleAdmin, models.RoleHod)

	teachers := authed.Group("/teachers")
	{
		teachers.GET("/:id", teacherHandler.Get)
		teachers.GET("/:id/availability", teacherHandler.ListAvailability)
		teachers.POST("/:id/availability", staffOnly, teacherHandler.CreateAvailability)
		teachers.GET("/:id/workload", teacherHandler.Workload)
		teachers.GET("/:id/workload/export", teacherHandler.ExportWorkload)

		teachers.GET("/:id/courses", assignmentHandler.List)
		teachers.POST("/:id/courses", staffOnly, middleware.Audit(userRepo, models.AuditActionCreate, "teacher_courses"), assignmentHandler.Create)
		teachers.PUT("/:id/courses/:aid", staffOnly, middleware.Audit(userRepo, models.AuditActionUpdate, "teacher_courses"), assignmentHandler.Update)
		teachers.DELETE("/:id/courses/:aid", staffOnly, middleware.Audit(userRepo, models.AuditActionDelete, "teacher_courses"), assignmentHandler.Delete)

		teachers.GET("/:id/slots", slotAssignmentHandler.List)
		teachers.POST("/:id/slots", staffOnly, middleware.Audit(userRepo, models.AuditActionCreate, "teacher_slots"), slotAssignmentHandler.Create)
		teachers.PUT("/:id/slots/:aid", staffOnly, middleware.Audit(userRepo, models.AuditActionUpdate, "teacher_slots"), slotAssignmentHandler.Update)
		teachers.DELETE("/:id/slots/:aid", staffOnly, middleware.Audit(userRepo, models.AuditActionDelete, "teacher_slots"), slotAssignmentHandler.Delete)
		teachers.POST("/:id/slots/batch", staffOnly, middleware.Audit(userRepo, models.AuditActionUpdate, "teacher_slots"), slotAssignmentHandler.Batch)

		teachers.GET("/:id/special-schedules", specialScheduleHandler.ListByTeacher)
	}

	slots := authed.Group("/slots")
	{
		slots.GET("", slotHandler.List)
		slots.GET("/:id", slotHandler.Get)
	}

	schedules := authed.Group("/special-schedules")
	{
		schedules.POST("", staffOnly, middleware.Audit(userRepo, models.AuditActionCreate, "special_schedules"), specialScheduleHandler.Create)
		schedules.PATCH("/:id/status", staffOnly, middleware.Audit(userRepo, models.AuditActionUpdate, "special_schedules"), specialScheduleHandler.UpdateStatus)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Sugar().Errorw("forced shutdown", "error", err)
	}
	logr.Sugar().Infow("server stopped")
}

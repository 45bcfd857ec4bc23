package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/campus-timetable-api/api/swagger"
	"github.com/noah-isme/campus-timetable-api/internal/allocator"
	"github.com/noah-isme/campus-timetable-api/internal/handler"
	"github.com/noah-isme/campus-timetable-api/internal/middleware"
	"github.com/noah-isme/campus-timetable-api/internal/models"
	"github.com/noah-isme/campus-timetable-api/internal/repository"
	"github.com/noah-isme/campus-timetable-api/internal/service"
	rediscache "github.com/noah-isme/campus-timetable-api/pkg/cache"
	"github.com/noah-isme/campus-timetable-api/pkg/config"
	"github.com/noah-isme/campus-timetable-api/pkg/database"
	"github.com/noah-isme/campus-timetable-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/campus-timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/campus-timetable-api/pkg/middleware/requestid"
)

// @title Campus Timetable API
// @version 1.0.0
// @description Room and timeslot allocation for a weekly campus timetable
// @BasePath /api/v1
// @schemes http

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := rediscache.NewRedis(cfg.Redis)
	if err != nil {
		// Caching is fail-open: the API serves uncached without Redis.
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		redisClient = nil
	}

	grid, err := allocator.NewGrid(allocator.GridConfig{
		Open:      cfg.Scheduler.DayOpen,
		Close:     cfg.Scheduler.DayClose,
		SlotWidth: cfg.Scheduler.SlotWidth,
	})
	if err != nil {
		logr.Fatal("invalid scheduler grid config", zap.Error(err))
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Timetable.CacheTTL, logr, redisClient != nil)

	roomRepo := repository.NewRoomRepository(db)
	departmentRepo := repository.NewDepartmentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	entryRepo := repository.NewScheduleEntryRepository(db)
	examRepo := repository.NewExamRepository(db)
	templateRepo := repository.NewTemplateRepository(db)
	userRepo := repository.NewUserRepository(db)

	// One mutex guards every validate-and-commit sequence, manual and auto.
	placementMu := &sync.Mutex{}

	roomSvc := service.NewRoomService(roomRepo, departmentRepo, cacheSvc, validate, logr)
	departmentSvc := service.NewDepartmentService(departmentRepo, validate, logr)
	courseSvc := service.NewCourseService(courseRepo, entryRepo, departmentRepo, cacheSvc, validate, logr)
	scheduleSvc := service.NewScheduleService(entryRepo, roomRepo, departmentRepo, courseRepo, examRepo, grid, cacheSvc, metricsSvc, placementMu, cfg.Timetable.CacheTTL, validate, logr)
	autoSvc := service.NewAutoScheduleService(roomRepo, departmentRepo, courseRepo, entryRepo, examRepo, entryRepo, grid, cfg.Scheduler.DayCap, cacheSvc, metricsSvc, placementMu, logr)
	examSvc := service.NewExamService(examRepo, roomRepo, departmentRepo, courseRepo, entryRepo, cacheSvc, metricsSvc, validate, logr)
	templateSvc := service.NewTemplateService(templateRepo, roomRepo, departmentRepo, courseRepo, entryRepo, examRepo, entryRepo, cacheSvc, validate, logr)
	exportSvc := service.NewExportService(roomRepo, departmentRepo, courseRepo, entryRepo, examRepo, entryRepo, grid, cfg.Export.InstitutionName, cacheSvc, logr)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: cfg.JWT.Issuer,
	})

	authHandler := handler.NewAuthHandler(authSvc)
	roomHandler := handler.NewRoomHandler(roomSvc)
	departmentHandler := handler.NewDepartmentHandler(departmentSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc, autoSvc)
	examHandler := handler.NewExamHandler(examSvc)
	templateHandler := handler.NewTemplateHandler(templateSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.JWT(authSvc))
	authed.GET("/auth/me", authHandler.Me)
	authed.POST("/auth/change-password", authHandler.ChangePassword)

	api.GET("/rooms", roomHandler.List)
	api.GET("/rooms/available", scheduleHandler.AvailableRooms)
	api.GET("/rooms/:id", roomHandler.Get)
	api.GET("/departments", departmentHandler.List)
	api.GET("/departments/:id", departmentHandler.Get)
	api.GET("/courses", courseHandler.List)
	api.GET("/courses/:id", courseHandler.Get)
	api.GET("/schedule", scheduleHandler.List)
	api.GET("/timetable", scheduleHandler.Timetable)
	api.GET("/exams", examHandler.List)
	api.GET("/exams/:id", examHandler.Get)
	api.GET("/templates", templateHandler.List)
	api.GET("/export/json", exportHandler.ExportJSON)
	api.GET("/export/csv", exportHandler.ExportCSV)
	api.GET("/export/pdf", exportHandler.ExportPDF)
	api.GET("/metrics/summary", metricsHandler.Snapshot)

	staff := api.Group("")
	staff.Use(middleware.JWT(authSvc), middleware.RBAC(models.RoleAdmin, models.RoleStaff))
	staff.POST("/rooms", roomHandler.Create)
	staff.PUT("/rooms/:id", roomHandler.Update)
	staff.POST("/departments", departmentHandler.Create)
	staff.PUT("/departments/:id", departmentHandler.Update)
	staff.POST("/courses", courseHandler.Create)
	staff.PUT("/courses/:id", courseHandler.Update)
	staff.POST("/schedule/manual", scheduleHandler.Place)
	staff.POST("/schedule/auto", scheduleHandler.AutoSchedule)
	staff.DELETE("/schedule/:id", scheduleHandler.Delete)
	staff.POST("/exams", examHandler.Create)
	staff.DELETE("/exams/:id", examHandler.Delete)
	staff.POST("/templates", templateHandler.Save)
	staff.POST("/templates/:id/restore", templateHandler.Restore)

	admin := api.Group("")
	admin.Use(middleware.JWT(authSvc), middleware.RBAC(models.RoleAdmin))
	admin.DELETE("/rooms/:id", roomHandler.Delete)
	admin.DELETE("/departments/:id", departmentHandler.Delete)
	admin.DELETE("/courses/:id", courseHandler.Delete)
	admin.DELETE("/templates/:id", templateHandler.Delete)
	admin.POST("/export/json", exportHandler.ImportJSON)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
}

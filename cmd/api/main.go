package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/campuseventhub/campus-event-hub/api/swagger"
	"github.com/campuseventhub/campus-event-hub/internal/handler"
	"github.com/campuseventhub/campus-event-hub/internal/middleware"
	"github.com/campuseventhub/campus-event-hub/internal/models"
	"github.com/campuseventhub/campus-event-hub/internal/repository"
	"github.com/campuseventhub/campus-event-hub/internal/service"
	"github.com/campuseventhub/campus-event-hub/pkg/cache"
	"github.com/campuseventhub/campus-event-hub/pkg/config"
	"github.com/campuseventhub/campus-event-hub/pkg/database"
	"github.com/campuseventhub/campus-event-hub/pkg/logger"
	corsmiddleware "github.com/campuseventhub/campus-event-hub/pkg/middleware/cors"
	reqidmiddleware "github.com/campuseventhub/campus-event-hub/pkg/middleware/requestid"
)

// @title CampusEventHub API
// @version 1.0.0
// @description Multi-tenant campus event registration platform
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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()
	metricsService := service.NewMetricsService()

	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	registrationRepo := repository.NewRegistrationRepository(db)
	adminLogRepo := repository.NewAdminLogRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)
	defer cacheRepo.Close()

	cacheService := service.NewCacheService(cacheRepo, metricsService, cfg.Cache.EventTTL, logr, cfg.Cache.Enabled && redisClient != nil)
	authService := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     "campus-event-hub",
	})
	userService := service.NewUserService(userRepo, validate, logr)
	eventService := service.NewEventService(eventRepo, adminLogRepo, cacheService, validate, logr)
	registrationService := service.NewRegistrationService(registrationRepo, eventRepo, adminLogRepo, logr)
	adminLogService := service.NewAdminLogService(adminLogRepo, logr)
	projectService := service.NewProjectService(projectRepo, validate, logr)
	taskService := service.NewTaskService(taskRepo, projectRepo, validate, logr)
	feedbackService := service.NewFeedbackService(feedbackRepo, eventRepo, validate, logr)
	exportService := service.NewExportService(registrationRepo, eventRepo, logr)

	cookie := handler.CookieSettings{
		Name:   cfg.JWT.CookieName,
		Domain: cfg.JWT.CookieDomain,
		MaxAge: cfg.JWT.Expiration,
		Secure: cfg.Env == config.EnvProduction,
	}

	authHandler := handler.NewAuthHandler(authService, cookie)
	userHandler := handler.NewUserHandler(userService)
	eventHandler := handler.NewEventHandler(eventService, exportService)
	registrationHandler := handler.NewRegistrationHandler(registrationService)
	adminLogHandler := handler.NewAdminLogHandler(adminLogService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsService.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authed := middleware.Authenticate(authService, cfg.JWT.CookieName)
	adminOnly := middleware.RequireRoles(models.RoleCollegeAdmin, models.RoleSuperAdmin)
	superOnly := middleware.RequireRoles(models.RoleSuperAdmin)

	api := r.Group(cfg.APIPrefix)
	{
		users := api.Group("/users")
		{
			users.POST("/signup", authHandler.Signup)
			users.POST("/login", authHandler.Login)
			users.POST("/logout", authHandler.Logout)
			users.GET("/me", authed, authHandler.Me)
			users.GET("", authed, adminOnly, userHandler.List)
			users.POST("", authed, superOnly, userHandler.Create)
			users.GET("/:id", authed, adminOnly, userHandler.Get)
		}

		events := api.Group("/events")
		{
			events.GET("", eventHandler.List)
			events.GET("/:id", eventHandler.Get)
			events.POST("", authed, adminOnly, eventHandler.Create)
			events.PATCH("/:id", authed, adminOnly, eventHandler.Update)
			events.DELETE("/:id", authed, adminOnly, eventHandler.Delete)
			events.GET("/:id/registrations/export", authed, adminOnly, eventHandler.ExportRegistrations)
			events.GET("/:id/feedback", feedbackHandler.ListByEvent)
			events.POST("/:id/feedback", authed, feedbackHandler.Create)
		}

		registrations := api.Group("/registrations", authed)
		{
			registrations.GET("", registrationHandler.List)
			registrations.POST("", registrationHandler.Create)
			registrations.PATCH("/:id", adminOnly, registrationHandler.UpdateStatus)
		}

		logs := api.Group("/logs", authed, adminOnly)
		{
			logs.GET("", adminLogHandler.List)
			logs.POST("", adminLogHandler.Create)
		}

		projects := api.Group("/projects", authed)
		{
			projects.GET("", projectHandler.List)
			projects.POST("", projectHandler.Create)
			projects.GET("/:id", projectHandler.Get)
			projects.PATCH("/:id", projectHandler.Update)
			projects.DELETE("/:id", projectHandler.Delete)
		}

		tasks := api.Group("/tasks", authed)
		{
			tasks.GET("", taskHandler.List)
			tasks.POST("", taskHandler.Create)
			tasks.GET("/:id", taskHandler.Get)
			tasks.PATCH("/:id", taskHandler.Update)
			tasks.DELETE("/:id", taskHandler.Delete)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

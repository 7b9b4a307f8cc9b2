package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/payroll-admin-api/api/swagger"
	"github.com/noah-isme/payroll-admin-api/internal/handler"
	"github.com/noah-isme/payroll-admin-api/internal/middleware"
	"github.com/noah-isme/payroll-admin-api/internal/models"
	"github.com/noah-isme/payroll-admin-api/internal/repository"
	"github.com/noah-isme/payroll-admin-api/internal/service"
	"github.com/noah-isme/payroll-admin-api/pkg/cache"
	"github.com/noah-isme/payroll-admin-api/pkg/config"
	"github.com/noah-isme/payroll-admin-api/pkg/database"
	"github.com/noah-isme/payroll-admin-api/pkg/jobs"
	"github.com/noah-isme/payroll-admin-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/payroll-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/payroll-admin-api/pkg/middleware/requestid"
)

// @title Payroll Admin API
// @version 0.1.0
// @description Configuration governance and payroll calculation backend
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
		logr.Sugar().Fatalw("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()

	validate := validator.New()

	configRepo := repository.NewConfigurationRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Payroll.CacheTTL, logr, cfg.Payroll.CacheEnabled)

	auditSvc := service.NewAuditService(auditRepo, logr, jobs.QueueConfig{
		Workers:    cfg.Audit.Workers,
		BufferSize: cfg.Audit.BufferSize,
		MaxRetries: cfg.Audit.MaxRetries,
		RetryDelay: cfg.Audit.RetryDelay,
		Logger:     logr,
	})
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	auditSvc.Start(ctx)
	defer auditSvc.Stop()

	lifecycleSvc := service.NewLifecycleService(configRepo, employeeRepo, auditSvc, cacheSvc, metricsSvc, validate, logr)
	contributionSvc := service.NewContributionService(lifecycleSvc, metricsSvc, validate, logr)
	terminationSvc := service.NewTerminationService(lifecycleSvc, metricsSvc, validate, logr)
	settingsSvc := service.NewSettingsService(settingsRepo, employeeRepo, auditSvc, validate, logr, service.SettingsDefaults{
		PayDate:  cfg.Payroll.DefaultPayDate,
		TimeZone: cfg.Payroll.DefaultTimeZone,
		Currency: cfg.Payroll.DefaultCurrency,
	})
	authSvc := service.NewAuthService(employeeRepo, auditSvc, validate, logr, service.AuthConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	configHandler := handler.NewConfigurationHandler(lifecycleSvc)
	calcHandler := handler.NewCalculationHandler(contributionSvc, terminationSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc)
	authHandler := handler.NewAuthHandler(authSvc)
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
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
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
	authed.GET("/metrics/snapshot", metricsHandler.Snapshot)

	manage := middleware.RBAC(models.RoleAdmin, models.RoleHRManager)

	cfgRoutes := authed.Group("/payroll-config/:kind")
	cfgRoutes.GET("", configHandler.List)
	cfgRoutes.GET("/:id", configHandler.Get)
	cfgRoutes.POST("", manage, configHandler.Create)
	cfgRoutes.PATCH("/:id", manage, configHandler.Update)
	cfgRoutes.DELETE("/:id", manage, configHandler.Delete)
	cfgRoutes.POST("/:id/approve", manage, configHandler.Approve)
	cfgRoutes.POST("/:id/reject", manage, configHandler.Reject)

	settings := authed.Group("/company-settings")
	settings.GET("", settingsHandler.Get)
	settings.PATCH("", manage, settingsHandler.Update)
	settings.POST("/approve", manage, settingsHandler.Approve)
	settings.POST("/reject", manage, settingsHandler.Reject)

	calc := authed.Group("/calculations")
	calc.POST("/insurance-contribution", calcHandler.InsuranceContribution)
	calc.POST("/termination-entitlements", calcHandler.TerminationEntitlements)
	calc.POST("/payslip-preview", calcHandler.PayslipPreview)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}

package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/report-card-api/api/swagger"
	"github.com/noah-isme/report-card-api/internal/handler"
	"github.com/noah-isme/report-card-api/internal/middleware"
	"github.com/noah-isme/report-card-api/internal/models"
	"github.com/noah-isme/report-card-api/internal/service"
	"github.com/noah-isme/report-card-api/internal/store"
	"github.com/noah-isme/report-card-api/pkg/config"
	"github.com/noah-isme/report-card-api/pkg/export"
	"github.com/noah-isme/report-card-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/report-card-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/report-card-api/pkg/middleware/requestid"
	"github.com/noah-isme/report-card-api/pkg/storage"
)

// @title Report Card API
// @version 1.0.0
// @description School report-card portal: teacher result entry and student report access
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

	metricsSvc := service.NewMetricsService()

	dataStore, err := store.Open(cfg.Store.DataDir, store.DefaultSeedAccounts, logr, metricsSvc)
	if err != nil {
		logr.Sugar().Fatalw("failed to open data store", "error", err)
	}

	assets, err := storage.NewAssetStore(cfg.Assets.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to open asset store", "error", err)
	}

	guard := service.NewConfirmGuard(cfg.Portal.ConfirmTTL)

	authSvc := service.NewAuthService(service.AuthConfig{
		TeacherUsername: cfg.Portal.TeacherUsername,
		TeacherPassword: cfg.Portal.TeacherPassword,
		TokenSecret:     cfg.JWT.Secret,
		TokenExpiry:     cfg.JWT.Expiration,
		Issuer:          "report-card-api",
	}, dataStore, logr)

	resultSvc := service.NewResultService(dataStore, cfg.Portal.DefaultStudentPassword, logr)
	profileSvc := service.NewProfileService(dataStore, guard, cfg.Portal.DefaultStudentPassword, logr)
	accountSvc := service.NewAccountService(dataStore, guard, cfg.Portal.TeacherUsername, logr)
	reportSvc := service.NewReportService(dataStore,
		export.NewReportCardPDF(assets), export.NewBroadsheet(), metricsSvc,
		cfg.Portal.SchoolName, cfg.Portal.SchoolMotto, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	resultHandler := handler.NewResultHandler(resultSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	accountHandler := handler.NewAccountHandler(accountSvc)
	reportHandler := handler.NewReportHandler(reportSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	authed := api.Group("", middleware.JWTAuth(authSvc))
	authed.POST("/auth/logout", authHandler.Logout)
	authed.GET("/auth/me", authHandler.Me)

	teacher := authed.Group("", middleware.RequireRoles(models.RoleTeacher))
	teacher.POST("/results/upload", resultHandler.Upload)
	teacher.POST("/results", resultHandler.Save)
	teacher.GET("/results", resultHandler.List)
	teacher.GET("/profiles", profileHandler.List)
	teacher.POST("/profiles", profileHandler.Create)
	teacher.GET("/profiles/:name", profileHandler.Get)
	teacher.PUT("/profiles/:name", profileHandler.Update)
	teacher.DELETE("/profiles/:name", profileHandler.Delete)
	teacher.GET("/accounts", accountHandler.List)
	teacher.POST("/accounts", accountHandler.Create)
	teacher.DELETE("/accounts/:username", accountHandler.Delete)
	teacher.GET("/export/results.csv", reportHandler.BroadsheetCSV)

	student := authed.Group("", middleware.RequireRoles(models.RoleStudent))
	student.GET("/me/report", reportHandler.MyReport)
	student.GET("/me/report/pdf", reportHandler.MyReportPDF)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "data_dir", cfg.Store.DataDir)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

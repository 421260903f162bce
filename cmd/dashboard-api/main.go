package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/maum-diary-api/internal/handler"
	"github.com/noah-isme/maum-diary-api/internal/middleware"
	"github.com/noah-isme/maum-diary-api/internal/repository"
	"github.com/noah-isme/maum-diary-api/internal/service"
	"github.com/noah-isme/maum-diary-api/pkg/cache"
	"github.com/noah-isme/maum-diary-api/pkg/config"
	"github.com/noah-isme/maum-diary-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/maum-diary-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/maum-diary-api/pkg/middleware/requestid"
	"github.com/noah-isme/maum-diary-api/pkg/sheets"
	"github.com/noah-isme/maum-diary-api/pkg/storage"
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if redisClient, err := cache.NewRedis(cfg.Redis); err != nil {
		logr.Sugar().Warnw("redis unavailable, using in-memory cache", "error", err)
		cacheRepo = repository.NewMemoryCacheRepository()
	} else {
		cacheRepo = repository.NewRedisCacheRepository(redisClient, logr)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Summary.CacheTTL, logr)

	sheetClient := sheets.NewHTTPClient(cfg.Sheets, logr)
	rosterRepo := repository.NewRosterRepository(sheetClient, cfg.Sheets.RosterLocator, logr)
	diaryRepo := repository.NewDiaryRepository(sheetClient, logr)

	rosterSvc := service.NewRosterService(rosterRepo, logr)
	summarySvc := service.NewSummaryService(rosterSvc, diaryRepo, cacheSvc, metricsSvc, logr, cfg.Summary.CacheTTL)
	diarySvc := service.NewDiaryService(rosterSvc, diaryRepo, diaryRepo, cacheSvc, metricsSvc, validate, logr)
	sessionSvc := service.NewSessionService(rosterSvc, summarySvc, diarySvc, logr)

	authSvc := service.NewAuthService(validate, logr, service.AuthConfig{
		Password:          cfg.Auth.Password,
		PasswordHash:      cfg.Auth.PasswordHash,
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            "maum-diary-api",
	}, sessionSvc)

	analysisSvc := service.NewAnalysisService(diarySvc, nil, logr)
	if cfg.Analysis.Enabled {
		if completer := service.NewAnthropicCompleter(cfg.Analysis.APIKey, cfg.Analysis.Model, cfg.Analysis.MaxTokens); completer != nil {
			analysisSvc = service.NewAnalysisService(diarySvc, completer, logr)
		} else {
			logr.Warn("analysis enabled but no API key configured")
		}
	}

	authHandler := handler.NewAuthHandler(authSvc)
	dashboardHandler := handler.NewDashboardHandler(summarySvc, sessionSvc)
	studentHandler := handler.NewStudentHandler(rosterSvc, diarySvc)
	analysisHandler := handler.NewAnalysisHandler(analysisSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	var exportHandler *handler.ExportHandler
	if cfg.Exports.Enabled {
		store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init export storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportHandler = handler.NewExportHandler(service.NewExportService(summarySvc, store, signer, logr))
	} else {
		exportHandler = handler.NewExportHandler(nil)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))
	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/students", studentHandler.List)
	protected.GET("/students/:name/diary", studentHandler.Diary)
	protected.PUT("/students/:name/note", studentHandler.SaveNote)
	protected.POST("/students/:name/analysis", analysisHandler.Entry)
	protected.POST("/students/:name/analysis/history", analysisHandler.History)
	protected.GET("/dashboard/daily", dashboardHandler.Daily)
	protected.POST("/dashboard/refresh", dashboardHandler.Refresh)
	protected.GET("/exports/daily", exportHandler.Daily)

	// download links carry their own signed token and must open in a browser
	r.GET("/exports/download", exportHandler.Download)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

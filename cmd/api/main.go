package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-marketplace-backend/config"
	_ "go-marketplace-backend/docs" // Important for Swagger
	v1 "go-marketplace-backend/internal/delivery/http/v1"
	"go-marketplace-backend/internal/repository/postgres"
	"go-marketplace-backend/internal/usecase"
	"go-marketplace-backend/pkg/auth"
	"go-marketplace-backend/pkg/database"
	"go-marketplace-backend/pkg/email"
	"go-marketplace-backend/pkg/logger"
	"go-marketplace-backend/pkg/redis"
	"go-marketplace-backend/pkg/security"
	"go-marketplace-backend/pkg/storage"

	"github.com/gin-gonic/gin"
)

// @title           Freelance Marketplace API
// @version         1.0
// @description     Backend for a freelance marketplace connecting workers and hirers.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Setup Loggers
	logger.Init(cfg.Environment)
	logger.Log.Info("Starting marketplace backend", "port", cfg.Port, "env", cfg.Environment)

	secLog := security.InitSecurityLogger("gigmarket-api", cfg.Environment)
	defer secLog.Flush()

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	applied, err := database.Migrate(ctx, dbPool)
	if err != nil {
		logger.Log.Error("Failed to apply migrations", "error", err)
		os.Exit(1)
	}
	if len(applied) > 0 {
		logger.Log.Info("Migrations applied", "versions", applied)
	}

	if cfg.SecurityLogToDB {
		secLog.SetPersistFunc(security.NewEventStore(dbPool).Persist)
	}

	// 4. Setup Redis (optional, everything degrades to in-memory or no-op)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, continuing without it", "error", err)
	}
	defer redis.Close()
	rdb := redis.Client()

	var searchCache usecase.SearchCache
	if rdb != nil {
		searchCache = redis.NewJSONCache(rdb, "cache:workers:", cfg.WorkerCacheTTL)
	}

	// 5. Setup Object Storage
	var objectStore usecase.ObjectStore
	var s3Store *storage.S3Store
	s3Store, err = storage.NewS3Store(ctx, storage.S3Config{
		Provider:        storage.Provider(cfg.S3Provider),
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		Endpoint:        cfg.S3Endpoint,
		PublicBaseURL:   cfg.S3PublicBaseURL,
	})
	if err != nil {
		logger.Log.Warn("Object storage not configured - uploads will be unavailable", "error", err)
		s3Store = nil
	} else {
		objectStore = s3Store
	}

	// 6. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - notifications will be skipped")
	}

	// 7. Setup Token Manager (optional external JWKS issuer)
	var keySet *auth.KeySet
	if cfg.JWKSURL != "" {
		keySet = auth.NewKeySet(cfg.JWKSURL)
	}
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL, keySet)

	trackerCfg := security.DefaultLoginTrackerConfig()
	trackerCfg.MaxAttempts = cfg.FailedLoginMaxAttempts
	trackerCfg.BlockDuration = time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute
	loginTracker := security.NewLoginTracker(rdb, trackerCfg, secLog)
	uploadLimiter := security.NewUploadLimiter(rdb, 50)

	// 8. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	workerRepo := postgres.NewWorkerRepository(dbPool)
	skillRepo := postgres.NewSkillRepository(dbPool)
	portfolioRepo := postgres.NewPortfolioRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	reviewRepo := postgres.NewReviewRepository(dbPool)
	availabilityRepo := postgres.NewAvailabilityRepository(dbPool)
	bookmarkRepo := postgres.NewBookmarkRepository(dbPool)
	earningRepo := postgres.NewEarningRepository(dbPool)
	documentRepo := postgres.NewDocumentRepository(dbPool)
	adminRepo := postgres.NewAdminRepository(dbPool)
	fraudRepo := postgres.NewFraudRepository(dbPool)

	// 9. Setup UseCases
	auditor := usecase.NewAuditor(adminRepo, secLog)
	uploader := usecase.NewMediaUploader(objectStore, uploadLimiter, secLog, cfg.MaxUploadBytes)
	workerDeps := usecase.WorkerDeps{
		Workers:      workerRepo,
		Skills:       skillRepo,
		Portfolio:    portfolioRepo,
		Reviews:      reviewRepo,
		Availability: availabilityRepo,
		Cache:        searchCache,
	}

	healthChecks := []usecase.HealthCheck{
		{Name: "database", Required: true, Check: dbPool.Ping},
		{Name: "redis", Check: redis.HealthCheck},
	}
	if s3Store != nil {
		healthChecks = append(healthChecks, usecase.HealthCheck{Name: "storage", Check: s3Store.Ping})
	}
	healthUC := usecase.NewHealthUsecase(healthChecks...)

	authUC := usecase.NewAuthUsecase(userRepo, usecase.NewProfileRefresher(workerDeps), tokens, loginTracker, emailService, secLog)
	workerUC := usecase.NewWorkerUsecase(workerDeps)
	skillUC := usecase.NewSkillUsecase(workerDeps, auditor)
	portfolioUC := usecase.NewPortfolioUsecase(workerDeps, uploader)
	jobUC := usecase.NewJobUsecase(jobRepo, skillRepo, workerRepo, searchCache)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, emailService)
	reviewUC := usecase.NewReviewUsecase(reviewRepo, jobRepo, workerRepo, searchCache)
	availabilityUC := usecase.NewAvailabilityUsecase(availabilityRepo)
	bookmarkUC := usecase.NewBookmarkUsecase(bookmarkRepo, workerRepo)
	earningUC := usecase.NewEarningUsecase(earningRepo, auditor)
	documentUC := usecase.NewDocumentUsecase(documentRepo, workerRepo, uploader, auditor, searchCache)
	fraudUC := usecase.NewFraudUsecase(fraudRepo, auditor, secLog)
	adminUC := usecase.NewAdminUsecase(usecase.AdminDeps{
		Admin:   adminRepo,
		Users:   userRepo,
		Workers: workerRepo,
		Reviews: reviewRepo,
		Jobs:    jobRepo,
		Fraud:   fraudRepo,
		Audit:   auditor,
		SecLog:  secLog,
		Cache:   searchCache,
		Health:  healthUC,
	})

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:         authUC,
		WorkerUC:       workerUC,
		SkillUC:        skillUC,
		PortfolioUC:    portfolioUC,
		JobUC:          jobUC,
		ApplicationUC:  applicationUC,
		ReviewUC:       reviewUC,
		AvailabilityUC: availabilityUC,
		BookmarkUC:     bookmarkUC,
		EarningUC:      earningUC,
		DocumentUC:     documentUC,
		AdminUC:        adminUC,
		FraudUC:        fraudUC,
		Health:         healthUC,
		Config:         cfg,
	})

	// 11. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

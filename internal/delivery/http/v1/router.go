package v1

import (
	"go-marketplace-backend/config"
	"go-marketplace-backend/internal/delivery/http/middleware"
	"go-marketplace-backend/internal/domain"
	"go-marketplace-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC         domain.AuthUsecase
	WorkerUC       domain.WorkerUsecase
	SkillUC        domain.SkillUsecase
	PortfolioUC    domain.PortfolioUsecase
	JobUC          domain.JobUsecase
	ApplicationUC  domain.ApplicationUsecase
	ReviewUC       domain.ReviewUsecase
	AvailabilityUC domain.AvailabilityUsecase
	BookmarkUC     domain.BookmarkUsecase
	EarningUC      domain.EarningUsecase
	DocumentUC     domain.DocumentUsecase
	AdminUC        domain.AdminUsecase
	FraudUC        domain.FraudUsecase
	Health         HealthChecker
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config)))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	NewHealthHandler(v1, deps.Health)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.AuthUC))

	worker := protected.Group("")
	worker.Use(middleware.RequireRole(domain.RoleWorker))

	hirer := protected.Group("")
	hirer.Use(middleware.RequireRole(domain.RoleHirer))

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(domain.RoleAdmin))

	maxUpload := deps.Config.MaxUploadBytes

	NewAuthHandler(v1, protected, deps.AuthUC, deps.Config)
	NewWorkerHandler(v1, worker, deps.WorkerUC)
	NewSkillHandler(v1, worker, admin, deps.SkillUC)
	NewPortfolioHandler(v1, worker, deps.PortfolioUC, maxUpload)
	NewAvailabilityHandler(v1, worker, deps.AvailabilityUC)
	NewJobHandler(v1, hirer, deps.JobUC)
	NewApplicationHandler(worker, hirer, deps.ApplicationUC)
	NewReviewHandler(v1, protected, deps.ReviewUC)
	NewBookmarkHandler(hirer, deps.BookmarkUC)
	NewEarningHandler(worker, admin, deps.EarningUC)
	NewDocumentHandler(worker, admin, deps.DocumentUC, maxUpload)
	NewAdminHandler(admin, deps.AdminUC)
	NewFraudHandler(admin, deps.FraudUC)

	return r
}

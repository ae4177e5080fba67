package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"collections-risk-backend/internal/cache"
	"collections-risk-backend/internal/config"
	handler "collections-risk-backend/internal/handlers"
	"collections-risk-backend/internal/middleware"
	"collections-risk-backend/internal/repository"
	"collections-risk-backend/internal/services/ingest"
	"collections-risk-backend/internal/services/insight"
	"collections-risk-backend/internal/services/portfolio"
	"collections-risk-backend/internal/services/scoring"
)

// RegisterRoutes wires repositories, services and handlers onto r. A nil
// redis client disables the summary cache.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {
	customerRepo := repository.NewCustomerRepository(db)
	uploadRepo := repository.NewUploadBatchRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)

	rng := scoring.SourceFromSeed(cfg.Scoring.Seed)
	generator := insight.NewGenerator(rng)

	portfolioService := portfolio.NewService(customerRepo, cache.New(rdb, cfg.Redis.CacheTTL()))
	ingestService := ingest.NewService(customerRepo, uploadRepo, scoring.NewScorer(rng), portfolioService)
	insightService := insight.NewService(customerRepo, analysisRepo, generator, cfg.Analysis.MaxConcurrency)

	Mount(r,
		handler.NewCustomerHandler(ingestService, portfolioService, uploadRepo, cfg.Upload.MaxBytes),
		handler.NewAnalysisHandler(insightService, generator),
	)
}

// Mount registers the API routes for already-built handlers.
func Mount(r *gin.Engine, customers *handler.CustomerHandler, analysis *handler.AnalysisHandler) {
	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Stateless generator preview
	api.POST("/insights/preview", analysis.Preview)

	owned := api.Group("", middleware.Owner())

	// Customer routes
	cust := owned.Group("/customers")
	{
		cust.POST("/upload", customers.Upload)
		cust.GET("", customers.List)
		cust.POST("/reclassify", customers.Reclassify)
		cust.POST("/analysis", analysis.AnalyzeMany)
		cust.GET("/:id", customers.Get)
		cust.POST("/:id/analysis", analysis.Analyze)
		cust.GET("/:id/analysis", analysis.History)
	}

	owned.GET("/portfolio/summary", customers.Summary)
	owned.GET("/uploads", customers.ListUploads)
}

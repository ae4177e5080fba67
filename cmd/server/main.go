package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"collections-risk-backend/internal/config"
	"collections-risk-backend/internal/middleware"
	"collections-risk-backend/internal/repository"
	"collections-risk-backend/internal/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zap.L().Sync() //nolint:errcheck

	db, err := config.InitDB(cfg.Database)
	if err != nil {
		zap.L().Fatal("database", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		zap.L().Fatal("migrate", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	rdb, err := config.NewRedisClient(ctx, cfg.Redis)
	cancel()
	if err != nil {
		zap.L().Warn("redis unavailable, summary cache disabled", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}

	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", middleware.OwnerHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, rdb, cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	zap.L().Info("server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}

package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/4bhisheksharma/book-swap3/internal/api"
	"github.com/4bhisheksharma/book-swap3/internal/pkg/config"
	"github.com/4bhisheksharma/book-swap3/internal/pkg/logger"
	"github.com/4bhisheksharma/book-swap3/internal/pkg/redis"
	"github.com/4bhisheksharma/book-swap3/internal/repository"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting BookSwap API")

	if err := repository.InitDB(cfg.Database.Path); err != nil {
		zap.L().Fatal("Failed to initialize database",
			zap.Error(err))
	}
	defer repository.Close()

	if cfg.Redis.Enabled {
		if err := redis.Init(cfg); err != nil {
			zap.L().Warn("Redis initialization failed, registration rate limiting falls back to in-memory",
				zap.Error(err))
		} else {
			defer redis.Close()
		}
	}

	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	api.SetupRouter(r)

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Starting BookSwap API")
	fmt.Printf("URL: http://%s\n", cfg.ServerAddr())
	fmt.Printf("Database: %s\n", cfg.Database.Path)
	fmt.Println(strings.Repeat("=", 60))

	if err := r.Run(cfg.ServerAddr()); err != nil {
		zap.L().Fatal("Failed to start server",
			zap.Error(err))
	}
}

package main

import (
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"hospital-portal/internal/config"
	"hospital-portal/internal/routes"
	"hospital-portal/internal/upstream"
	"hospital-portal/internal/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables only")
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	utils.InitializeLogger(cfg.Environment, cfg.LogLevel)
	logger := utils.GetLogger()
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID"}
	router.Use(cors.New(corsConfig))

	// Client for the upstream hospital backend
	api := upstream.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, logger)

	routes.SetupRoutes(router, api, cfg, logger)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	logger.Info("portal running",
		zap.String("port", cfg.Port),
		zap.String("backend", cfg.Backend.BaseURL))
	if err := router.Run(serverAddr); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

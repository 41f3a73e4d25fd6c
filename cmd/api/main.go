package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"tariff-compare/internal/api/handlers"
	"tariff-compare/internal/api/middleware"
	"tariff-compare/internal/config"
)

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	cfg := config.Default()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			log.Fatalf("Failed to load config %s: %v", path, err)
		}
		cfg = *loaded
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	analyzeHandler := handlers.NewAnalyzeHandler(&cfg)
	pricesHandler := handlers.NewPricesHandler(&cfg)
	tariffsHandler := handlers.NewTariffsHandler(&cfg)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/analyze", analyzeHandler.Analyze)
		api.GET("/prices", pricesHandler.GetPrices)
		api.GET("/tariffs", tariffsHandler.ListTariffs)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/bstlaurentnz/energy-provider-comparison/internal/api/handlers"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/api/middleware"

	"github.com/gin-gonic/gin"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	// Initialize handlers
	store := handlers.NewRunStore()
	compareHandler := handlers.NewCompareHandler(store)
	simulateHandler := handlers.NewSimulateHandler()
	providersHandler := handlers.NewProvidersHandler()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/compare", compareHandler.RunCompare)
		api.GET("/compare/:id/ledger", compareHandler.GetLedger)

		api.POST("/simulate", simulateHandler.RunSimulate)

		api.GET("/providers", providersHandler.ListProviders)
	}

	// Start server
	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

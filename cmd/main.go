package main

import (
	"context"
	"fmt"
	"log"

	_ "leadapi/docs"
	"leadapi/internal/config"
	"leadapi/internal/handlers"
	"leadapi/internal/middleware"
	"leadapi/internal/repositories"
	"leadapi/internal/services"
	"leadapi/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// @title Lead Management API
// @version 1.0.0
// @description API for managing and tracking submitted leads
// @BasePath /
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	// Database connection
	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Create repositories and services
	leadRepo := repositories.NewLeadRepository(pool)
	leadService := services.NewLeadService(leadRepo)

	// Create handlers
	leadHandlers := handlers.NewLeadHandlers(leadService)
	healthHandlers := handlers.NewHealthHandlers(pool)

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RequestIDWithConfig(echoMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Metrics())

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	// Admin dashboard, swagger UI and prometheus exposition
	e.GET("/admin", handlers.AdminPanel)
	e.GET("/docs/*", echoSwagger.WrapHandler)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API routes
	api := e.Group("/api")
	api.Use(middleware.VersionHeader())

	api.GET("/check/:phone", leadHandlers.CheckPhone)
	api.POST("/leads", leadHandlers.CreateLead)
	api.GET("/leads", leadHandlers.ListLeads)
	api.GET("/leads/export/csv", leadHandlers.ExportLeadsCSV)
	api.GET("/leads/:id", leadHandlers.GetLead)
	api.DELETE("/leads/:id", leadHandlers.DeleteLead)
	api.PATCH("/leads/:id/signup", leadHandlers.ToggleSignup)
	api.PATCH("/leads/:id/callback", leadHandlers.ToggleCallback)
	api.GET("/stats", leadHandlers.GetStats)

	// Start server
	log.Printf("🚀 Lead API server v%s starting on port %d", middleware.APIVersion, cfg.Port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}

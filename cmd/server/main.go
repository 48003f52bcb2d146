package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmpark/company-catalog-backend/config"
	"github.com/jmpark/company-catalog-backend/internal/app/controller"
	"github.com/jmpark/company-catalog-backend/internal/app/repository"
	"github.com/jmpark/company-catalog-backend/internal/app/service"
	"github.com/jmpark/company-catalog-backend/internal/db"
	"github.com/jmpark/company-catalog-backend/internal/loader"
	"github.com/jmpark/company-catalog-backend/internal/router"
	"github.com/jmpark/company-catalog-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logger.Initialize(logger.Config{
		Level:       cfg.Log.ConsoleLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
		FilePath:    cfg.Log.FilePath,
		FileLevel:   cfg.Log.FileLevel,
	})

	logger.Info("Starting company catalog server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if cfg.Bootstrap.DropTables {
		if err := db.DropTables(); err != nil {
			logger.Fatal("Failed to drop tables", err)
		}
	}

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Reconcile the CSV snapshot (optional)
	if cfg.Bootstrap.Populate {
		result, err := loader.New(db.GetDB()).LoadCSV(cfg.Bootstrap.DataFile)
		if err != nil {
			logger.Fatal("Failed to populate database", err)
		}
		logger.Info("Database populated from snapshot", map[string]interface{}{
			"file":    cfg.Bootstrap.DataFile,
			"created": result.Created,
			"skipped": result.Skipped,
			"failed":  result.Failed,
		})
	}

	// Initialize repositories
	companyRepo := repository.NewCompanyRepository(db.GetDB())
	tagRepo := repository.NewTagRepository(db.GetDB())

	// Initialize services
	companyService := service.NewCompanyService(companyRepo, tagRepo)
	tagService := service.NewTagService(tagRepo, companyRepo)

	// Initialize controllers
	companyController := controller.NewCompanyController(companyService)
	tagController := controller.NewTagController(tagService)

	// Setup router
	r := router.NewRouter(companyController, tagController, cfg)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}

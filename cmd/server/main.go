package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/sizecharts/internal/api"
	"github.com/jafarshop/sizecharts/internal/catalog"
	"github.com/jafarshop/sizecharts/internal/chart"
	"github.com/jafarshop/sizecharts/internal/config"
	"github.com/jafarshop/sizecharts/internal/repository"
	"github.com/jafarshop/sizecharts/internal/repository/postgres"
	"github.com/jafarshop/sizecharts/internal/service"
	"github.com/jafarshop/sizecharts/internal/shopify"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, _ = zap.NewProduction()
	} else {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	logger.Info("Starting size chart service",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
	)

	// Run history is optional: without a database the service still processes
	// runs, it just cannot answer status queries afterwards
	var repos *repository.Repositories
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		logger.Warn("Database unavailable, run history disabled", zap.Error(err))
	} else {
		defer db.Close()
		repos = postgres.NewRepositories(db, logger)
	}

	// Wire the pipeline
	client := shopify.NewClient(cfg.Shopify, logger)
	gateway := catalog.NewGateway(client, time.Duration(cfg.Processing.PageDelayMs)*time.Millisecond, logger)
	style := chart.StyleWithOverrides(cfg.Chart.BrandName, cfg.Chart.MainColor, cfg.Chart.HeaderBg, cfg.Chart.LogoPath)
	charts := service.NewSizeChartService(gateway, chart.NewPNGRenderer(), service.Options{
		Style:        style,
		MinPairs:     cfg.Processing.MinPairs,
		ProductDelay: time.Duration(cfg.Processing.ProductDelayMs) * time.Millisecond,
	}, logger)
	runs := service.NewRunService(charts, gateway, repos, logger)

	// Initialize router
	router := api.NewRouter(cfg, runs, style, logger)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Server started successfully", zap.String("address", srv.Addr))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

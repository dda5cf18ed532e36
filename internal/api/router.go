package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/sizecharts/internal/api/handlers"
	"github.com/jafarshop/sizecharts/internal/api/middleware"
	"github.com/jafarshop/sizecharts/internal/chart"
	"github.com/jafarshop/sizecharts/internal/config"
	"github.com/jafarshop/sizecharts/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, runs *service.RunService, style chart.StyleConfig, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Size Chart Service",
			"endpoints": []string{
				"GET /health",
				"POST /v1/size-charts/runs",
				"GET /v1/size-charts/runs",
				"GET /v1/size-charts/runs/:id",
				"POST /v1/size-charts/preview",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes (operator key required)
	v1 := router.Group("/v1")
	v1.Use(middleware.AuthMiddleware(cfg.API.AdminKeyHash, logger))
	{
		v1.POST("/size-charts/runs", handlers.HandleStartRun(runs, logger))
		v1.GET("/size-charts/runs", handlers.HandleListRuns(runs, logger))
		v1.GET("/size-charts/runs/:id", handlers.HandleGetRun(runs, logger))
		v1.POST("/size-charts/preview", handlers.HandlePreview(style, logger))
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}

package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/api/handlers"
	"github.com/jafarshop/catalogapi/internal/api/middleware"
	"github.com/jafarshop/catalogapi/internal/config"
	"github.com/jafarshop/catalogapi/internal/repository"
	"github.com/jafarshop/catalogapi/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(loggingMiddleware(logger))

	images := service.NewImageIngestor(repos, logger)
	importer := service.NewImportService(cfg, repos, images, logger)
	bulk := service.NewBulkService(repos, logger)

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Catalog API",
			"endpoints": []string{
				"GET /health",
				"POST /v1/catalog/import",
				"POST /v1/products/bulk-delete",
				"POST /v1/products/bulk-publish",
				"POST /v1/products/:id/variants",
				"POST /v1/variants/bulk-delete",
				"POST /v1/variants/:id/stocks",
				"PUT /v1/variants/:id/stocks",
				"DELETE /v1/variants/:id/stocks",
				"POST /v1/collections/bulk-delete",
				"POST /v1/collections/bulk-publish",
				"POST /v1/categories/bulk-delete",
				"POST /v1/product-types/bulk-delete",
				"POST /v1/images/bulk-delete",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes; all catalog mutations require the admin key
	v1 := router.Group("/v1")
	v1.Use(middleware.AdminAuthMiddleware(cfg, logger))
	{
		v1.POST("/catalog/import", handlers.HandleImportCollection(importer, logger))

		v1.POST("/products/bulk-delete", handlers.HandleProductBulkDelete(bulk, logger))
		v1.POST("/products/bulk-publish", handlers.HandleProductBulkPublish(bulk, logger))
		v1.POST("/products/:id/variants", handlers.HandleVariantBulkCreate(bulk, logger))

		v1.POST("/variants/bulk-delete", handlers.HandleVariantBulkDelete(bulk, logger))
		v1.POST("/variants/:id/stocks", handlers.HandleVariantStocksCreate(bulk, logger))
		v1.PUT("/variants/:id/stocks", handlers.HandleVariantStocksUpdate(bulk, logger))
		v1.DELETE("/variants/:id/stocks", handlers.HandleVariantStocksDelete(bulk, logger))

		v1.POST("/collections/bulk-delete", handlers.HandleCollectionBulkDelete(bulk, logger))
		v1.POST("/collections/bulk-publish", handlers.HandleCollectionBulkPublish(bulk, logger))
		v1.POST("/categories/bulk-delete", handlers.HandleCategoryBulkDelete(bulk, logger))
		v1.POST("/product-types/bulk-delete", handlers.HandleProductTypeBulkDelete(bulk, logger))
		v1.POST("/images/bulk-delete", handlers.HandleProductImageBulkDelete(bulk, logger))
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

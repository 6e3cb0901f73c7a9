package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/service"
)

// HandleCollectionBulkDelete handles POST /v1/collections/bulk-delete
func HandleCollectionBulkDelete(bulk *service.BulkService, logger *zap.Logger) gin.HandlerFunc {
	return handleBulkIDs(bulk.CollectionBulkDelete)
}

// HandleCategoryBulkDelete handles POST /v1/categories/bulk-delete
func HandleCategoryBulkDelete(bulk *service.BulkService, logger *zap.Logger) gin.HandlerFunc {
	return handleBulkIDs(bulk.CategoryBulkDelete)
}

// HandleProductTypeBulkDelete handles POST /v1/product-types/bulk-delete
func HandleProductTypeBulkDelete(bulk *service.BulkService, logger *zap.Logger) gin.HandlerFunc {
	return handleBulkIDs(bulk.ProductTypeBulkDelete)
}

// HandleProductImageBulkDelete handles POST /v1/images/bulk-delete
func HandleProductImageBulkDelete(bulk *service.BulkService, logger *zap.Logger) gin.HandlerFunc {
	return handleBulkIDs(bulk.ProductImageBulkDelete)
}

// HandleCollectionBulkPublish handles POST /v1/collections/bulk-publish
func HandleCollectionBulkPublish(bulk *service.BulkService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req publishRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		count, err := bulk.CollectionBulkPublish(c.Request.Context(), req.IDs, *req.IsPublished)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}

func handleBulkIDs(op func(ctx context.Context, ids []uuid.UUID) (int64, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req idsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		count, err := op(c.Request.Context(), req.IDs)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}

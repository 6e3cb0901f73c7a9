package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/service"
)

type idsRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required"`
}

type publishRequest struct {
	IDs         []uuid.UUID `json:"ids" binding:"required"`
	IsPublished *bool       `json:"is_published" binding:"required"`
}

// HandleProductBulkDelete handles POST /v1/products/bulk-delete
func HandleProductBulkDelete(bulk *service.BulkService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req idsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		count, err := bulk.ProductBulkDelete(c.Request.Context(), req.IDs)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}

// HandleProductBulkPublish handles POST /v1/products/bulk-publish
func HandleProductBulkPublish(bulk *service.BulkService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req publishRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		count, err := bulk.ProductBulkPublish(c.Request.Context(), req.IDs, *req.IsPublished)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}

type variantBulkCreateRequest struct {
	Variants []service.VariantCreateInput `json:"variants" binding:"required"`
}

// HandleVariantBulkCreate handles POST /v1/products/:id/variants
func HandleVariantBulkCreate(bulk *service.BulkService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var req variantBulkCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		variants, err := bulk.VariantBulkCreate(c.Request.Context(), productID, req.Variants)
		if err != nil {
			respondError(c, err)
			return
		}

		created := make([]gin.H, 0, len(variants))
		for _, v := range variants {
			created = append(created, gin.H{
				"id":    v.ID.String(),
				"sku":   v.SKU,
				"price": v.Price.String(),
			})
		}
		c.JSON(http.StatusOK, gin.H{"count": len(created), "variants": created})
	}
}

// HandleVariantBulkDelete handles POST /v1/variants/bulk-delete
func HandleVariantBulkDelete(bulk *service.BulkService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req idsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		count, err := bulk.VariantBulkDelete(c.Request.Context(), req.IDs)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": count})
	}
}

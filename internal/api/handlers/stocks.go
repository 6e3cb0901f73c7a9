package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/service"
)

type stocksRequest struct {
	Stocks []service.StockInput `json:"stocks" binding:"required"`
}

type stocksDeleteRequest struct {
	WarehouseIDs []uuid.UUID `json:"warehouse_ids" binding:"required"`
}

// HandleVariantStocksCreate handles POST /v1/variants/:id/stocks
func HandleVariantStocksCreate(bulk *service.BulkService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		variantID, ok := parseVariantID(c)
		if !ok {
			return
		}

		var req stocksRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		if err := bulk.VariantStocksCreate(c.Request.Context(), variantID, req.Stocks); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "created"})
	}
}

// HandleVariantStocksUpdate handles PUT /v1/variants/:id/stocks
func HandleVariantStocksUpdate(bulk *service.BulkService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		variantID, ok := parseVariantID(c)
		if !ok {
			return
		}

		var req stocksRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		if err := bulk.VariantStocksUpdate(c.Request.Context(), variantID, req.Stocks); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "updated"})
	}
}

// HandleVariantStocksDelete handles DELETE /v1/variants/:id/stocks
func HandleVariantStocksDelete(bulk *service.BulkService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		variantID, ok := parseVariantID(c)
		if !ok {
			return
		}

		var req stocksDeleteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		if err := bulk.VariantStocksDelete(c.Request.Context(), variantID, req.WarehouseIDs); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}

func parseVariantID(c *gin.Context) (uuid.UUID, bool) {
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid variant id"})
		return uuid.Nil, false
	}
	return variantID, true
}

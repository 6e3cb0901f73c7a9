package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/domain"
	"github.com/jafarshop/catalogapi/internal/service"
)

type importRequest struct {
	ShopURL      string `json:"shop_url" binding:"required"`
	AccessToken  string `json:"access_token" binding:"required"`
	CollectionID string `json:"collection_id" binding:"required"`
}

type importedProduct struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	ShopifyID string `json:"shopify_id"`
}

// HandleImportCollection handles POST /v1/catalog/import. It imports a
// Shopify collection and returns the newly created products; products
// imported by an earlier run are not re-created and not re-returned.
func HandleImportCollection(importer *service.ImportService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req importRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		products, err := importer.ImportCollection(c.Request.Context(), req.ShopURL, req.AccessToken, req.CollectionID)
		if err != nil {
			logger.Error("Collection import failed",
				zap.String("collection_id", req.CollectionID),
				zap.Error(err),
			)
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": toImportedProducts(products)})
	}
}

func toImportedProducts(products []*domain.Product) []importedProduct {
	out := make([]importedProduct, 0, len(products))
	for _, p := range products {
		item := importedProduct{
			ID:   p.ID.String(),
			Name: p.Name,
			Slug: p.Slug,
		}
		if p.ShopifyID != nil {
			item.ShopifyID = *p.ShopifyID
		}
		out = append(out, item)
	}
	return out
}

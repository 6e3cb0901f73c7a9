package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/domain"
	"github.com/jafarshop/catalogapi/internal/repository"
)

// ImageIngestor receives the image URLs collected during product
// materialization and fetches them in the background. Per-image failures are
// logged and skipped; they never affect the import result.
type ImageIngestor interface {
	Ingest(ctx context.Context, productID uuid.UUID, urls []string)
}

type imageIngestor struct {
	repos      *repository.Repositories
	httpClient *http.Client
	logger     *zap.Logger
}

// NewImageIngestor creates an ingestor that downloads each image and records
// it as a product image row. Thumbnail generation is handled elsewhere.
func NewImageIngestor(repos *repository.Repositories, logger *zap.Logger) *imageIngestor {
	return &imageIngestor{
		repos: repos,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: logger,
	}
}

func (i *imageIngestor) Ingest(ctx context.Context, productID uuid.UUID, urls []string) {
	for _, url := range urls {
		if err := i.fetchOne(ctx, productID, url); err != nil {
			i.logger.Warn("Image fetch failed, skipping",
				zap.String("product_id", productID.String()),
				zap.String("url", url),
				zap.Error(err),
			)
		}
	}
}

func (i *imageIngestor) fetchOne(ctx context.Context, productID uuid.UUID, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image fetch returned status %d", resp.StatusCode)
	}

	size, err := io.Copy(io.Discard, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read image body: %w", err)
	}

	return i.repos.ProductImage.Create(ctx, &domain.ProductImage{
		ProductID:   productID,
		URL:         url,
		ContentType: resp.Header.Get("Content-Type"),
		SizeBytes:   size,
	})
}

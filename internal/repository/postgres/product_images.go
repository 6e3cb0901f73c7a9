package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/domain"
)

type productImageRepository struct {
	db     querier
	logger *zap.Logger
}

// NewProductImageRepository creates a new product image repository
func NewProductImageRepository(db querier, logger *zap.Logger) *productImageRepository {
	return &productImageRepository{db: db, logger: logger}
}

func (r *productImageRepository) Create(ctx context.Context, img *domain.ProductImage) error {
	query := `
		INSERT INTO product_images (id, product_id, url, content_type, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if img.ID == uuid.Nil {
		img.ID = uuid.New()
	}
	if img.CreatedAt.IsZero() {
		img.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		img.ID, img.ProductID, img.URL, img.ContentType, img.SizeBytes, img.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create product image", zap.Error(err), zap.String("url", img.URL))
		return err
	}
	return nil
}

func (r *productImageRepository) ListByProductID(ctx context.Context, productID uuid.UUID) ([]*domain.ProductImage, error) {
	query := `
		SELECT id, product_id, url, content_type, size_bytes, created_at
		FROM product_images
		WHERE product_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		r.logger.Error("Failed to list product images", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, err
	}
	defer rows.Close()

	var out []*domain.ProductImage
	for rows.Next() {
		var img domain.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.ContentType, &img.SizeBytes, &img.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &img)
	}
	return out, rows.Err()
}

func (r *productImageRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM product_images WHERE id = ANY($1)`, uuidArray(ids))
	if err != nil {
		r.logger.Error("Failed to delete product images", zap.Error(err))
		return 0, err
	}
	return res.RowsAffected()
}

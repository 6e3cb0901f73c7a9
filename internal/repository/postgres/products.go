package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/domain"
	"github.com/jafarshop/catalogapi/pkg/errors"
)

type productRepository struct {
	db     querier
	logger *zap.Logger
}

// NewProductRepository creates a new product repository
func NewProductRepository(db querier, logger *zap.Logger) *productRepository {
	return &productRepository{db: db, logger: logger}
}

const productColumns = `id, name, slug, product_type_id, category_id, description,
		is_published, visible_in_listings, available_for_purchase, default_variant_id,
		shopify_id, created_at, updated_at`

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `
		INSERT INTO products (
			id, name, slug, product_type_id, category_id, description,
			is_published, visible_in_listings, available_for_purchase,
			default_variant_id, shopify_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	now := time.Now()
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Slug, p.ProductTypeID, p.CategoryID, p.Description,
		p.IsPublished, p.VisibleInListings, p.AvailableForPurchase,
		p.DefaultVariantID, p.ShopifyID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create product", zap.Error(err), zap.String("slug", p.Slug))
		return err
	}
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get product", zap.Error(err), zap.String("id", id.String()))
		return nil, err
	}
	return p, nil
}

func (r *productRepository) ListByShopifyIDs(ctx context.Context, shopifyIDs []string) ([]*domain.Product, error) {
	if len(shopifyIDs) == 0 {
		return nil, nil
	}
	query := `SELECT ` + productColumns + ` FROM products WHERE shopify_id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(shopifyIDs))
	if err != nil {
		r.logger.Error("Failed to list products by shopify ids", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *productRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ANY($1)`, uuidArray(ids))
	if err != nil {
		r.logger.Error("Failed to delete products", zap.Error(err))
		return 0, err
	}
	return res.RowsAffected()
}

func (r *productRepository) SetPublished(ctx context.Context, ids []uuid.UUID, isPublished bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `UPDATE products SET is_published = $1, updated_at = $2 WHERE id = ANY($3)`
	res, err := r.db.ExecContext(ctx, query, isPublished, time.Now(), uuidArray(ids))
	if err != nil {
		r.logger.Error("Failed to publish products", zap.Error(err), zap.Bool("is_published", isPublished))
		return 0, err
	}
	return res.RowsAffected()
}

func (r *productRepository) SetDefaultVariant(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) error {
	query := `UPDATE products SET default_variant_id = $1, updated_at = $2 WHERE id = $3`
	_, err := r.db.ExecContext(ctx, query, variantID, time.Now(), productID)
	if err != nil {
		r.logger.Error("Failed to set default variant", zap.Error(err), zap.String("product_id", productID.String()))
		return err
	}
	return nil
}

func (r *productRepository) ListIDsWithNullDefaultVariant(ctx context.Context, productIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	query := `SELECT id FROM products WHERE id = ANY($1) AND default_variant_id IS NULL`
	rows, err := r.db.QueryContext(ctx, query, uuidArray(productIDs))
	if err != nil {
		r.logger.Error("Failed to list products without default variant", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	var availableForPurchase sql.NullTime
	var defaultVariantID uuid.NullUUID
	var shopifyID sql.NullString
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.ProductTypeID, &p.CategoryID, &p.Description,
		&p.IsPublished, &p.VisibleInListings, &availableForPurchase,
		&defaultVariantID, &shopifyID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if availableForPurchase.Valid {
		p.AvailableForPurchase = &availableForPurchase.Time
	}
	if defaultVariantID.Valid {
		p.DefaultVariantID = &defaultVariantID.UUID
	}
	if shopifyID.Valid {
		p.ShopifyID = &shopifyID.String
	}
	return &p, nil
}

// uuidArray converts ids into a pq array parameter
func uuidArray(ids []uuid.UUID) interface{} {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	return pq.Array(strs)
}

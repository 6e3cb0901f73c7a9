package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/domain"
)

type collectionRepository struct {
	db     querier
	logger *zap.Logger
}

// NewCollectionRepository creates a new collection repository
func NewCollectionRepository(db querier, logger *zap.Logger) *collectionRepository {
	return &collectionRepository{db: db, logger: logger}
}

func (r *collectionRepository) Create(ctx context.Context, c *domain.Collection) error {
	query := `
		INSERT INTO collections (id, name, slug, description, is_published, shopify_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Slug, c.Description, c.IsPublished, c.ShopifyID, c.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create collection", zap.Error(err), zap.String("name", c.Name))
		return err
	}
	return nil
}

func (r *collectionRepository) ListNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name FROM collections`)
	if err != nil {
		r.logger.Error("Failed to list collection names", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

func (r *collectionRepository) AddProducts(ctx context.Context, collectionID uuid.UUID, productIDs []uuid.UUID) error {
	if len(productIDs) == 0 {
		return nil
	}

	query := `INSERT INTO collection_products (id, collection_id, product_id) VALUES `
	args := make([]interface{}, 0, len(productIDs)*3)
	for i, pid := range productIDs {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d)", i*3+1, i*3+2, i*3+3)
		args = append(args, uuid.New(), collectionID, pid)
	}

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to add products to collection",
			zap.Error(err),
			zap.String("collection_id", collectionID.String()),
			zap.Int("count", len(productIDs)),
		)
		return err
	}
	return nil
}

func (r *collectionRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM collections WHERE id = ANY($1)`, uuidArray(ids))
	if err != nil {
		r.logger.Error("Failed to delete collections", zap.Error(err))
		return 0, err
	}
	return res.RowsAffected()
}

func (r *collectionRepository) SetPublished(ctx context.Context, ids []uuid.UUID, isPublished bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `UPDATE collections SET is_published = $1 WHERE id = ANY($2)`
	res, err := r.db.ExecContext(ctx, query, isPublished, uuidArray(ids))
	if err != nil {
		r.logger.Error("Failed to publish collections", zap.Error(err), zap.Bool("is_published", isPublished))
		return 0, err
	}
	return res.RowsAffected()
}

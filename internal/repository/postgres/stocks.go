package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/domain"
)

type stockRepository struct {
	db     querier
	logger *zap.Logger
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db querier, logger *zap.Logger) *stockRepository {
	return &stockRepository{db: db, logger: logger}
}

func (r *stockRepository) CreateBatch(ctx context.Context, stocks []*domain.Stock) error {
	if len(stocks) == 0 {
		return nil
	}

	query := `INSERT INTO stocks (id, variant_id, warehouse_id, quantity, created_at) VALUES `

	args := make([]interface{}, 0, len(stocks)*5)
	now := time.Now()

	for i, s := range stocks {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", i*5+1, i*5+2, i*5+3, i*5+4, i*5+5)

		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = now
		}

		args = append(args, s.ID, s.VariantID, s.WarehouseID, s.Quantity, s.CreatedAt)
	}

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to batch-create stocks", zap.Error(err), zap.Int("count", len(stocks)))
		return err
	}
	return nil
}

func (r *stockRepository) ListByVariantID(ctx context.Context, variantID uuid.UUID) ([]*domain.Stock, error) {
	query := `
		SELECT id, variant_id, warehouse_id, quantity, created_at
		FROM stocks
		WHERE variant_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, variantID)
	if err != nil {
		r.logger.Error("Failed to list stocks", zap.Error(err), zap.String("variant_id", variantID.String()))
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Stock
	for rows.Next() {
		var s domain.Stock
		if err := rows.Scan(&s.ID, &s.VariantID, &s.WarehouseID, &s.Quantity, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *stockRepository) ListWarehouseIDsByVariant(ctx context.Context, variantID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT warehouse_id FROM stocks WHERE variant_id = $1`
	rows, err := r.db.QueryContext(ctx, query, variantID)
	if err != nil {
		r.logger.Error("Failed to list stock warehouses", zap.Error(err), zap.String("variant_id", variantID.String()))
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

func (r *stockRepository) UpsertQuantities(ctx context.Context, stocks []*domain.Stock) error {
	query := `
		INSERT INTO stocks (id, variant_id, warehouse_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (variant_id, warehouse_id) DO UPDATE SET quantity = EXCLUDED.quantity
	`
	now := time.Now()
	for _, s := range stocks {
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		if s.CreatedAt.IsZero() {
			s.CreatedAt = now
		}
		if _, err := r.db.ExecContext(ctx, query, s.ID, s.VariantID, s.WarehouseID, s.Quantity, s.CreatedAt); err != nil {
			r.logger.Error("Failed to upsert stock", zap.Error(err), zap.String("variant_id", s.VariantID.String()))
			return err
		}
	}
	return nil
}

func (r *stockRepository) DeleteByVariantAndWarehouses(ctx context.Context, variantID uuid.UUID, warehouseIDs []uuid.UUID) error {
	if len(warehouseIDs) == 0 {
		return nil
	}
	query := `DELETE FROM stocks WHERE variant_id = $1 AND warehouse_id = ANY($2)`
	_, err := r.db.ExecContext(ctx, query, variantID, uuidArray(warehouseIDs))
	if err != nil {
		r.logger.Error("Failed to delete stocks", zap.Error(err), zap.String("variant_id", variantID.String()))
		return err
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/domain"
	"github.com/jafarshop/catalogapi/pkg/errors"
)

// Repositories for fixed, pre-existing reference entities the importer
// resolves up front: categories, product types, warehouses.

type categoryRepository struct {
	db     querier
	logger *zap.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db querier, logger *zap.Logger) *categoryRepository {
	return &categoryRepository{db: db, logger: logger}
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := `SELECT id, name, slug FROM categories WHERE id = $1`
	var c domain.Category
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Slug)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "category", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get category", zap.Error(err), zap.String("id", id.String()))
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ANY($1)`, uuidArray(ids))
	if err != nil {
		r.logger.Error("Failed to delete categories", zap.Error(err))
		return 0, err
	}
	return res.RowsAffected()
}

type productTypeRepository struct {
	db     querier
	logger *zap.Logger
}

// NewProductTypeRepository creates a new product type repository
func NewProductTypeRepository(db querier, logger *zap.Logger) *productTypeRepository {
	return &productTypeRepository{db: db, logger: logger}
}

func (r *productTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProductType, error) {
	query := `SELECT id, name, slug FROM product_types WHERE id = $1`
	var t domain.ProductType
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.Slug)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product_type", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get product type", zap.Error(err), zap.String("id", id.String()))
		return nil, err
	}
	return &t, nil
}

func (r *productTypeRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM product_types WHERE id = ANY($1)`, uuidArray(ids))
	if err != nil {
		r.logger.Error("Failed to delete product types", zap.Error(err))
		return 0, err
	}
	return res.RowsAffected()
}

type warehouseRepository struct {
	db     querier
	logger *zap.Logger
}

// NewWarehouseRepository creates a new warehouse repository
func NewWarehouseRepository(db querier, logger *zap.Logger) *warehouseRepository {
	return &warehouseRepository{db: db, logger: logger}
}

func (r *warehouseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Warehouse, error) {
	query := `SELECT id, name, slug FROM warehouses WHERE id = $1`
	var w domain.Warehouse
	err := r.db.QueryRowContext(ctx, query, id).Scan(&w.ID, &w.Name, &w.Slug)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "warehouse", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get warehouse", zap.Error(err), zap.String("id", id.String()))
		return nil, err
	}
	return &w, nil
}

package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/domain"
	"github.com/jafarshop/catalogapi/pkg/errors"
)

type variantRepository struct {
	db     querier
	logger *zap.Logger
}

// NewVariantRepository creates a new product variant repository
func NewVariantRepository(db querier, logger *zap.Logger) *variantRepository {
	return &variantRepository{db: db, logger: logger}
}

const variantColumns = `id, product_id, sku, price, weight_value, weight_unit, created_at`

func (r *variantRepository) Create(ctx context.Context, v *domain.ProductVariant) error {
	query := `
		INSERT INTO product_variants (id, product_id, sku, price, weight_value, weight_unit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		v.ID, v.ProductID, v.SKU, v.Price, v.Weight.Value, v.Weight.Unit, v.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create variant", zap.Error(err), zap.String("sku", v.SKU))
		return err
	}
	return nil
}

func (r *variantRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProductVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM product_variants WHERE id = $1`
	v, err := scanVariant(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product_variant", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get variant", zap.Error(err), zap.String("id", id.String()))
		return nil, err
	}
	return v, nil
}

func (r *variantRepository) FirstByProductID(ctx context.Context, productID uuid.UUID) (*domain.ProductVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM product_variants WHERE product_id = $1 ORDER BY created_at, id LIMIT 1`
	v, err := scanVariant(r.db.QueryRowContext(ctx, query, productID))
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "product_variant", ID: "product:" + productID.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get first variant", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, err
	}
	return v, nil
}

func (r *variantRepository) ListByProductID(ctx context.Context, productID uuid.UUID) ([]*domain.ProductVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM product_variants WHERE product_id = $1 ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		r.logger.Error("Failed to list variants", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, err
	}
	defer rows.Close()

	var out []*domain.ProductVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *variantRepository) ListProductIDs(ctx context.Context, variantIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(variantIDs) == 0 {
		return nil, nil
	}
	query := `SELECT DISTINCT product_id FROM product_variants WHERE id = ANY($1)`
	rows, err := r.db.QueryContext(ctx, query, uuidArray(variantIDs))
	if err != nil {
		r.logger.Error("Failed to list product ids for variants", zap.Error(err))
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

func (r *variantRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM product_variants WHERE id = ANY($1)`, uuidArray(ids))
	if err != nil {
		r.logger.Error("Failed to delete variants", zap.Error(err))
		return 0, err
	}
	return res.RowsAffected()
}

func (r *variantRepository) AssignAttributeValue(ctx context.Context, variantID, attributeID, valueID uuid.UUID) error {
	query := `
		INSERT INTO variant_attribute_values (id, variant_id, attribute_id, value_id)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, uuid.New(), variantID, attributeID, valueID)
	if err != nil {
		r.logger.Error("Failed to assign attribute value",
			zap.Error(err),
			zap.String("variant_id", variantID.String()),
			zap.String("value_id", valueID.String()),
		)
		return err
	}
	return nil
}

func (r *variantRepository) ListValueAssignmentsByProduct(ctx context.Context, productID uuid.UUID) ([]domain.VariantAttributeValue, error) {
	query := `
		SELECT vav.variant_id, vav.attribute_id, vav.value_id
		FROM variant_attribute_values vav
		JOIN product_variants pv ON pv.id = vav.variant_id
		WHERE pv.product_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, productID)
	if err != nil {
		r.logger.Error("Failed to list attribute assignments", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, err
	}
	defer rows.Close()

	var out []domain.VariantAttributeValue
	for rows.Next() {
		var a domain.VariantAttributeValue
		if err := rows.Scan(&a.VariantID, &a.AttributeID, &a.ValueID); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanVariant(row rowScanner) (*domain.ProductVariant, error) {
	var v domain.ProductVariant
	err := row.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Price, &v.Weight.Value, &v.Weight.Unit, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

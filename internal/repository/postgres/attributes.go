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

type attributeRepository struct {
	db     querier
	logger *zap.Logger
}

// NewAttributeRepository creates a new attribute repository
func NewAttributeRepository(db querier, logger *zap.Logger) *attributeRepository {
	return &attributeRepository{db: db, logger: logger}
}

func (r *attributeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Attribute, error) {
	query := `SELECT id, name, slug, created_at FROM attributes WHERE id = $1`
	var a domain.Attribute
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &a.Slug, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "attribute", ID: id.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get attribute", zap.Error(err), zap.String("id", id.String()))
		return nil, err
	}
	return &a, nil
}

func (r *attributeRepository) ListValues(ctx context.Context, attributeID uuid.UUID) ([]*domain.AttributeValue, error) {
	query := `
		SELECT id, attribute_id, name, slug, created_at
		FROM attribute_values
		WHERE attribute_id = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, attributeID)
	if err != nil {
		r.logger.Error("Failed to list attribute values", zap.Error(err), zap.String("attribute_id", attributeID.String()))
		return nil, err
	}
	defer rows.Close()

	var out []*domain.AttributeValue
	for rows.Next() {
		var v domain.AttributeValue
		if err := rows.Scan(&v.ID, &v.AttributeID, &v.Name, &v.Slug, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

func (r *attributeRepository) CreateValue(ctx context.Context, v *domain.AttributeValue) error {
	query := `
		INSERT INTO attribute_values (id, attribute_id, name, slug, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query, v.ID, v.AttributeID, v.Name, v.Slug, v.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create attribute value", zap.Error(err), zap.String("name", v.Name))
		return err
	}
	return nil
}

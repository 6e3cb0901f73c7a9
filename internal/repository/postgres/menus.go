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

type menuRepository struct {
	db     querier
	logger *zap.Logger
}

// NewMenuRepository creates a new menu repository
func NewMenuRepository(db querier, logger *zap.Logger) *menuRepository {
	return &menuRepository{db: db, logger: logger}
}

func (r *menuRepository) GetByName(ctx context.Context, name string) (*domain.Menu, error) {
	query := `SELECT id, name FROM menus WHERE name = $1`
	var m domain.Menu
	err := r.db.QueryRowContext(ctx, query, name).Scan(&m.ID, &m.Name)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "menu", ID: name}
	}
	if err != nil {
		r.logger.Error("Failed to get menu", zap.Error(err), zap.String("name", name))
		return nil, err
	}
	return &m, nil
}

func (r *menuRepository) CreateItem(ctx context.Context, item *domain.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, menu_id, parent_id, name, collection_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.MenuID, item.ParentID, item.Name, item.CollectionID, item.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create menu item", zap.Error(err), zap.String("name", item.Name))
		return err
	}
	return nil
}

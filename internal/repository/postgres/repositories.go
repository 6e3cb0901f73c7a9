package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/repository"
)

// querier is satisfied by both *sql.DB and *sql.Tx so repositories can run
// inside or outside a transaction
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// NewRepositories creates all repositories backed by db. The returned
// aggregate's InTx runs the callback against transaction-scoped repositories.
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	repos := build(db, logger)
	repos.InTx = func(ctx context.Context, fn func(*repository.Repositories) error) error {
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		txRepos := build(tx, logger)
		if err := fn(txRepos); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.Error("Failed to roll back transaction", zap.Error(rbErr))
			}
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil
	}
	return repos
}

func build(q querier, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Product:      NewProductRepository(q, logger),
		Variant:      NewVariantRepository(q, logger),
		Stock:        NewStockRepository(q, logger),
		Attribute:    NewAttributeRepository(q, logger),
		Collection:   NewCollectionRepository(q, logger),
		Category:     NewCategoryRepository(q, logger),
		ProductType:  NewProductTypeRepository(q, logger),
		Warehouse:    NewWarehouseRepository(q, logger),
		Menu:         NewMenuRepository(q, logger),
		ProductImage: NewProductImageRepository(q, logger),
	}
}

package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jafarshop/catalogapi/internal/domain"
)

// ProductRepository defines product data access methods
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	ListByShopifyIDs(ctx context.Context, shopifyIDs []string) ([]*domain.Product, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
	SetPublished(ctx context.Context, ids []uuid.UUID, isPublished bool) (int64, error)
	SetDefaultVariant(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) error
	ListIDsWithNullDefaultVariant(ctx context.Context, productIDs []uuid.UUID) ([]uuid.UUID, error)
}

// VariantRepository defines product variant data access methods
type VariantRepository interface {
	Create(ctx context.Context, variant *domain.ProductVariant) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ProductVariant, error)
	FirstByProductID(ctx context.Context, productID uuid.UUID) (*domain.ProductVariant, error)
	ListByProductID(ctx context.Context, productID uuid.UUID) ([]*domain.ProductVariant, error)
	ListProductIDs(ctx context.Context, variantIDs []uuid.UUID) ([]uuid.UUID, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
	AssignAttributeValue(ctx context.Context, variantID, attributeID, valueID uuid.UUID) error
	ListValueAssignmentsByProduct(ctx context.Context, productID uuid.UUID) ([]domain.VariantAttributeValue, error)
}

// StockRepository defines stock data access methods
type StockRepository interface {
	CreateBatch(ctx context.Context, stocks []*domain.Stock) error
	ListByVariantID(ctx context.Context, variantID uuid.UUID) ([]*domain.Stock, error)
	ListWarehouseIDsByVariant(ctx context.Context, variantID uuid.UUID) ([]uuid.UUID, error)
	UpsertQuantities(ctx context.Context, stocks []*domain.Stock) error
	DeleteByVariantAndWarehouses(ctx context.Context, variantID uuid.UUID, warehouseIDs []uuid.UUID) error
}

// AttributeRepository defines attribute taxonomy data access methods
type AttributeRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Attribute, error)
	ListValues(ctx context.Context, attributeID uuid.UUID) ([]*domain.AttributeValue, error)
	CreateValue(ctx context.Context, value *domain.AttributeValue) error
}

// CollectionRepository defines collection data access methods
type CollectionRepository interface {
	Create(ctx context.Context, collection *domain.Collection) error
	ListNames(ctx context.Context) ([]string, error)
	AddProducts(ctx context.Context, collectionID uuid.UUID, productIDs []uuid.UUID) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
	SetPublished(ctx context.Context, ids []uuid.UUID, isPublished bool) (int64, error)
}

// CategoryRepository defines category data access methods
type CategoryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// ProductTypeRepository defines product type data access methods
type ProductTypeRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ProductType, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// WarehouseRepository defines warehouse data access methods
type WarehouseRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Warehouse, error)
}

// MenuRepository defines menu and menu item data access methods
type MenuRepository interface {
	GetByName(ctx context.Context, name string) (*domain.Menu, error)
	CreateItem(ctx context.Context, item *domain.MenuItem) error
}

// ProductImageRepository defines product image data access methods
type ProductImageRepository interface {
	Create(ctx context.Context, image *domain.ProductImage) error
	ListByProductID(ctx context.Context, productID uuid.UUID) ([]*domain.ProductImage, error)
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// Repositories aggregates all repositories. InTx runs fn against a
// transaction-scoped copy of the aggregate; fn returning an error rolls the
// whole transaction back.
type Repositories struct {
	Product      ProductRepository
	Variant      VariantRepository
	Stock        StockRepository
	Attribute    AttributeRepository
	Collection   CollectionRepository
	Category     CategoryRepository
	ProductType  ProductTypeRepository
	Warehouse    WarehouseRepository
	Menu         MenuRepository
	ProductImage ProductImageRepository

	InTx func(ctx context.Context, fn func(*Repositories) error) error
}

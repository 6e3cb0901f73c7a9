package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Attribute is a taxonomy definition, e.g. "Size" or "Color"
type Attribute struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	CreatedAt time.Time
}

// AttributeValue is one value under an attribute; names are unique per
// attribute after whitespace normalization
type AttributeValue struct {
	ID          uuid.UUID
	AttributeID uuid.UUID
	Name        string
	Slug        string
	CreatedAt   time.Time
}

// ProductType is a fixed classification products are created under
type ProductType struct {
	ID   uuid.UUID
	Name string
	Slug string
}

// Category is a fixed category products are created under
type Category struct {
	ID   uuid.UUID
	Name string
	Slug string
}

// Product is a local catalog product
type Product struct {
	ID                   uuid.UUID
	Name                 string
	Slug                 string
	ProductTypeID        uuid.UUID
	CategoryID           uuid.UUID
	Description          string
	IsPublished          bool
	VisibleInListings    bool
	AvailableForPurchase *time.Time
	DefaultVariantID     *uuid.UUID // must point to one of the product's own variants, or be nil
	ShopifyID            *string    // external id tag; set on imported products for re-run dedup
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Weight is a value bound to the unit the remote record declared; no
// conversion is performed
type Weight struct {
	Value float64
	Unit  string
}

// ProductVariant belongs to a product; SKU is process-unique
type ProductVariant struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	SKU       string
	Price     decimal.Decimal
	Weight    Weight
	CreatedAt time.Time
}

// VariantAttributeValue binds one attribute value to a variant; a variant
// carries at most one value per attribute
type VariantAttributeValue struct {
	VariantID   uuid.UUID
	AttributeID uuid.UUID
	ValueID     uuid.UUID
}

// Stock is unique per (variant, warehouse) pair
type Stock struct {
	ID          uuid.UUID
	VariantID   uuid.UUID
	WarehouseID uuid.UUID
	Quantity    int
	CreatedAt   time.Time
}

// Warehouse holds stock; the importer writes against one configured default
type Warehouse struct {
	ID   uuid.UUID
	Name string
	Slug string
}

// Collection groups products; name is effectively unique case-insensitively
type Collection struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Description string
	IsPublished bool
	ShopifyID   *string
	CreatedAt   time.Time
}

// CollectionProduct is the collection/product membership join entity
type CollectionProduct struct {
	ID           uuid.UUID
	CollectionID uuid.UUID
	ProductID    uuid.UUID
}

// Menu is a navigation menu, e.g. "navbar"
type Menu struct {
	ID   uuid.UUID
	Name string
}

// MenuItem is an entry in a menu; the importer creates one per synchronized
// collection, under a configured parent item
type MenuItem struct {
	ID           uuid.UUID
	MenuID       uuid.UUID
	ParentID     *uuid.UUID
	Name         string
	CollectionID *uuid.UUID
	CreatedAt    time.Time
}

// ProductImage records a fetched image for a product
type ProductImage struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	URL         string
	ContentType string
	SizeBytes   int64
	CreatedAt   time.Time
}

package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/config"
	"github.com/jafarshop/catalogapi/internal/domain"
	"github.com/jafarshop/catalogapi/internal/repository"
	"github.com/jafarshop/catalogapi/internal/shopify"
	"github.com/jafarshop/catalogapi/pkg/errors"
)

// importRun holds the per-run state of one import: transaction-scoped
// repositories, the attribute cache and the resolved fixed references.
type importRun struct {
	catalog     config.CatalogConfig
	repos       *repository.Repositories
	cache       *attributeCache
	productType *domain.ProductType
	category    *domain.Category
	warehouse   *domain.Warehouse
	logger      *zap.Logger
}

// newImportRun resolves the configured fixed references up front; any
// failure is fatal to the run.
func newImportRun(ctx context.Context, cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) (*importRun, error) {
	productType, err := repos.ProductType.GetByID(ctx, cfg.Catalog.DefaultProductTypeID)
	if err != nil {
		return nil, &errors.ErrConfiguration{Reference: "default product type", Err: err}
	}
	category, err := repos.Category.GetByID(ctx, cfg.Catalog.DefaultCategoryID)
	if err != nil {
		return nil, &errors.ErrConfiguration{Reference: "default category", Err: err}
	}
	warehouse, err := repos.Warehouse.GetByID(ctx, cfg.Catalog.DefaultWarehouseID)
	if err != nil {
		return nil, &errors.ErrConfiguration{Reference: "default warehouse", Err: err}
	}

	return &importRun{
		catalog:     cfg.Catalog,
		repos:       repos,
		cache:       newAttributeCache(repos.Attribute),
		productType: productType,
		category:    category,
		warehouse:   warehouse,
		logger:      logger,
	}, nil
}

// seedAttributeValues walks the whole batch once, collects every size and
// color option value, and ensures all of them exist before any variant is
// materialized. Variant materialization relies on this pre-seeding.
func (r *importRun) seedAttributeValues(ctx context.Context, products []shopify.Product) error {
	var sizes, colors []string
	seenSize := make(map[string]struct{})
	seenColor := make(map[string]struct{})
	for _, p := range products {
		slots := resolveOptionSlots(p)
		if !slots.complete() {
			continue
		}
		for _, v := range p.Variants {
			if size := v.Option(slots.Size); size != "" {
				if _, ok := seenSize[size]; !ok {
					seenSize[size] = struct{}{}
					sizes = append(sizes, size)
				}
			}
			if color := v.Option(slots.Color); color != "" {
				if _, ok := seenColor[color]; !ok {
					seenColor[color] = struct{}{}
					colors = append(colors, color)
				}
			}
		}
	}

	if err := r.cache.EnsureValues(ctx, r.catalog.SizeAttributeID, sizes); err != nil {
		return err
	}
	return r.cache.EnsureValues(ctx, r.catalog.ColorAttributeID, colors)
}

// createProduct materializes one remote product and its variants, and
// returns the image URLs collected for deferred ingestion. The product is
// live immediately: published, visible and available for purchase today.
func (r *importRun) createProduct(ctx context.Context, rp shopify.Product) (*domain.Product, []string, error) {
	shopifyID := strconv.FormatInt(rp.ID, 10)
	today := time.Now().UTC().Truncate(24 * time.Hour)

	product := &domain.Product{
		Name: rp.Title,
		// The remote id keeps slugs unique across title collisions
		Slug:                 slug.Make(rp.Title + shopifyID),
		ProductTypeID:        r.productType.ID,
		CategoryID:           r.category.ID,
		Description:          rp.BodyHTML,
		IsPublished:          true,
		VisibleInListings:    true,
		AvailableForPurchase: &today,
		ShopifyID:            &shopifyID,
	}
	if err := r.repos.Product.Create(ctx, product); err != nil {
		return nil, nil, err
	}

	if err := r.createVariants(ctx, product, rp); err != nil {
		return nil, nil, err
	}

	urls := make([]string, 0, len(rp.Images))
	for _, img := range rp.Images {
		urls = append(urls, img.Src)
	}
	return product, urls, nil
}

// createVariants materializes the variants of one remote product. Variants
// missing a SKU or price are silently skipped; an option value that was
// never seeded is a hard error for the whole batch. Stocks for all variants
// are written in one batch insert at the end.
func (r *importRun) createVariants(ctx context.Context, product *domain.Product, rp shopify.Product) error {
	slots := resolveOptionSlots(rp)
	if !slots.complete() {
		r.logger.Debug("Product does not declare both size and color options, created without variants",
			zap.String("product", rp.Title),
		)
		return nil
	}

	var stocks []*domain.Stock
	for _, rv := range rp.Variants {
		if rv.SKU == "" || rv.Price == "" {
			r.logger.Debug("Variant missing sku or price, skipped",
				zap.String("product", rp.Title),
				zap.String("sku", rv.SKU),
			)
			continue
		}

		price, err := decimal.NewFromString(rv.Price)
		if err != nil {
			return &errors.ErrValidation{
				Message: fmt.Sprintf("invalid price %q on variant %s", rv.Price, rv.SKU),
			}
		}

		sizeAttr, sizeValue, err := r.cache.Resolve(ctx, r.catalog.SizeAttributeID, rv.Option(slots.Size))
		if err != nil {
			return err
		}
		colorAttr, colorValue, err := r.cache.Resolve(ctx, r.catalog.ColorAttributeID, rv.Option(slots.Color))
		if err != nil {
			return err
		}

		variant := &domain.ProductVariant{
			ProductID: product.ID,
			SKU:       rv.SKU,
			Price:     price,
			// Weight stays in the remote unit, no conversion
			Weight: domain.Weight{Value: rv.Weight, Unit: rv.WeightUnit},
		}
		if err := r.repos.Variant.Create(ctx, variant); err != nil {
			return err
		}
		if err := r.repos.Variant.AssignAttributeValue(ctx, variant.ID, sizeAttr.ID, sizeValue.ID); err != nil {
			return err
		}
		if err := r.repos.Variant.AssignAttributeValue(ctx, variant.ID, colorAttr.ID, colorValue.ID); err != nil {
			return err
		}

		stocks = append(stocks, &domain.Stock{
			VariantID:   variant.ID,
			WarehouseID: r.warehouse.ID,
			Quantity:    rv.InventoryQuantity,
		})
	}

	return r.repos.Stock.CreateBatch(ctx, stocks)
}

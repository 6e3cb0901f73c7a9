package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/domain"
	"github.com/jafarshop/catalogapi/internal/repository"
	"github.com/jafarshop/catalogapi/pkg/errors"
)

// BulkService implements the bulk catalog mutations: delete, publish,
// variant and stock creation.
type BulkService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewBulkService creates a new bulk mutation service
func NewBulkService(repos *repository.Repositories, logger *zap.Logger) *BulkService {
	return &BulkService{repos: repos, logger: logger}
}

// VariantCreateInput is one variant of a bulk create request
type VariantCreateInput struct {
	SKU         string                  `json:"sku"`
	Price       string                  `json:"price"`
	WeightValue float64                 `json:"weight_value"`
	WeightUnit  string                  `json:"weight_unit"`
	Attributes  []VariantAttributeInput `json:"attributes"`
	Stocks      []StockInput            `json:"stocks"`
}

// VariantAttributeInput binds one attribute value to a created variant
type VariantAttributeInput struct {
	AttributeID uuid.UUID `json:"attribute_id"`
	ValueID     uuid.UUID `json:"value_id"`
}

// StockInput is one stock row of a variant create or stock mutation request
type StockInput struct {
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Quantity    int       `json:"quantity"`
}

func (s *BulkService) ProductBulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	count, err := s.repos.Product.DeleteByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Bulk-deleted products", zap.Int64("count", count))
	return count, nil
}

func (s *BulkService) ProductBulkPublish(ctx context.Context, ids []uuid.UUID, isPublished bool) (int64, error) {
	return s.repos.Product.SetPublished(ctx, ids, isPublished)
}

func (s *BulkService) CollectionBulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return s.repos.Collection.DeleteByIDs(ctx, ids)
}

func (s *BulkService) CollectionBulkPublish(ctx context.Context, ids []uuid.UUID, isPublished bool) (int64, error) {
	return s.repos.Collection.SetPublished(ctx, ids, isPublished)
}

func (s *BulkService) CategoryBulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return s.repos.Category.DeleteByIDs(ctx, ids)
}

func (s *BulkService) ProductTypeBulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return s.repos.ProductType.DeleteByIDs(ctx, ids)
}

func (s *BulkService) ProductImageBulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return s.repos.ProductImage.DeleteByIDs(ctx, ids)
}

// VariantBulkCreate creates variants for one product, with their attribute
// assignments and stocks. Validation failures carry the index of the
// offending input; an attribute values combination must be unique within the
// payload and against the product's existing variants. When the product has
// no default variant yet, the first created variant becomes it.
func (s *BulkService) VariantBulkCreate(ctx context.Context, productID uuid.UUID, inputs []VariantCreateInput) ([]*domain.ProductVariant, error) {
	fields := make(map[string]string)
	prices := make([]decimal.Decimal, len(inputs))
	seenSKU := make(map[string]struct{}, len(inputs))
	seenCombination := make(map[string]struct{}, len(inputs))
	for i, in := range inputs {
		if in.SKU == "" {
			fields[fmt.Sprintf("variants[%d].sku", i)] = "sku is required"
		} else if _, dup := seenSKU[in.SKU]; dup {
			fields[fmt.Sprintf("variants[%d].sku", i)] = "duplicated SKU"
		} else {
			seenSKU[in.SKU] = struct{}{}
		}

		price, err := decimal.NewFromString(in.Price)
		switch {
		case err != nil:
			fields[fmt.Sprintf("variants[%d].price", i)] = "invalid price"
		case price.Exponent() < -2:
			fields[fmt.Sprintf("variants[%d].price", i)] = "price has too many decimal places"
		default:
			prices[i] = price
		}

		seenAttribute := make(map[uuid.UUID]struct{}, len(in.Attributes))
		for _, attr := range in.Attributes {
			if _, dup := seenAttribute[attr.AttributeID]; dup {
				fields[fmt.Sprintf("variants[%d].attributes", i)] = "duplicated attribute ID"
			}
			seenAttribute[attr.AttributeID] = struct{}{}
		}
		if key := attributeCombinationKey(in.Attributes); key != "" {
			if _, dup := seenCombination[key]; dup {
				fields[fmt.Sprintf("variants[%d].attributes", i)] = "duplicated attribute values combination"
			}
			seenCombination[key] = struct{}{}
		}

		seenWarehouse := make(map[uuid.UUID]struct{}, len(in.Stocks))
		for _, stock := range in.Stocks {
			if _, dup := seenWarehouse[stock.WarehouseID]; dup {
				fields[fmt.Sprintf("variants[%d].stocks", i)] = "duplicated warehouse ID"
			}
			seenWarehouse[stock.WarehouseID] = struct{}{}
		}
	}
	if len(fields) > 0 {
		return nil, &errors.ErrValidation{Message: "invalid variants input", Fields: fields}
	}

	var variants []*domain.ProductVariant
	err := s.repos.InTx(ctx, func(tx *repository.Repositories) error {
		product, err := tx.Product.GetByID(ctx, productID)
		if err != nil {
			return err
		}

		existing, err := existingCombinationKeys(ctx, tx, productID)
		if err != nil {
			return err
		}
		for i, in := range inputs {
			key := attributeCombinationKey(in.Attributes)
			if key == "" {
				continue
			}
			if _, taken := existing[key]; taken {
				return &errors.ErrValidation{
					Message: "invalid variants input",
					Fields: map[string]string{
						fmt.Sprintf("variants[%d].attributes", i): "attribute values combination already used by another variant",
					},
				}
			}
		}

		var stocks []*domain.Stock
		for i, in := range inputs {
			variant := &domain.ProductVariant{
				ProductID: productID,
				SKU:       in.SKU,
				Price:     prices[i],
				Weight:    domain.Weight{Value: in.WeightValue, Unit: in.WeightUnit},
			}
			if err := tx.Variant.Create(ctx, variant); err != nil {
				return err
			}
			variants = append(variants, variant)

			for _, attr := range in.Attributes {
				if err := tx.Variant.AssignAttributeValue(ctx, variant.ID, attr.AttributeID, attr.ValueID); err != nil {
					return err
				}
			}

			for _, stock := range in.Stocks {
				stocks = append(stocks, &domain.Stock{
					VariantID:   variant.ID,
					WarehouseID: stock.WarehouseID,
					Quantity:    stock.Quantity,
				})
			}
		}
		if err := tx.Stock.CreateBatch(ctx, stocks); err != nil {
			return err
		}

		if product.DefaultVariantID == nil && len(variants) > 0 {
			return tx.Product.SetDefaultVariant(ctx, productID, &variants[0].ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return variants, nil
}

// attributeCombinationKey builds an order-independent key for an attribute
// values combination; "" means no attributes, which never collides
func attributeCombinationKey(attrs []VariantAttributeInput) string {
	if len(attrs) == 0 {
		return ""
	}
	pairs := make([]string, len(attrs))
	for i, a := range attrs {
		pairs[i] = a.AttributeID.String() + "=" + a.ValueID.String()
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func existingCombinationKeys(ctx context.Context, tx *repository.Repositories, productID uuid.UUID) (map[string]struct{}, error) {
	assignments, err := tx.Variant.ListValueAssignmentsByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	byVariant := make(map[uuid.UUID][]VariantAttributeInput)
	for _, a := range assignments {
		byVariant[a.VariantID] = append(byVariant[a.VariantID], VariantAttributeInput{
			AttributeID: a.AttributeID,
			ValueID:     a.ValueID,
		})
	}
	keys := make(map[string]struct{}, len(byVariant))
	for _, attrs := range byVariant {
		keys[attributeCombinationKey(attrs)] = struct{}{}
	}
	return keys, nil
}

// VariantBulkDelete deletes variants and re-points the default variant of
// every affected product to its first remaining variant, so a default never
// dangles to a deleted one.
func (s *BulkService) VariantBulkDelete(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var count int64
	err := s.repos.InTx(ctx, func(tx *repository.Repositories) error {
		productIDs, err := tx.Variant.ListProductIDs(ctx, ids)
		if err != nil {
			return err
		}

		count, err = tx.Variant.DeleteByIDs(ctx, ids)
		if err != nil {
			return err
		}

		// Deleting a default variant nulls the reference; assign the first
		// remaining variant where one exists
		orphaned, err := tx.Product.ListIDsWithNullDefaultVariant(ctx, productIDs)
		if err != nil {
			return err
		}
		for _, productID := range orphaned {
			first, err := tx.Variant.FirstByProductID(ctx, productID)
			if err != nil {
				if _, ok := err.(*errors.ErrNotFound); ok {
					continue
				}
				return err
			}
			if err := tx.Product.SetDefaultVariant(ctx, productID, &first.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// VariantStocksCreate creates stocks for a variant, rejecting duplicate
// warehouses in the payload and warehouses that already have a stock row for
// the variant.
func (s *BulkService) VariantStocksCreate(ctx context.Context, variantID uuid.UUID, inputs []StockInput) error {
	if err := validateUniqueWarehouses(inputs); err != nil {
		return err
	}

	return s.repos.InTx(ctx, func(tx *repository.Repositories) error {
		if _, err := tx.Variant.GetByID(ctx, variantID); err != nil {
			return err
		}

		existing, err := tx.Stock.ListWarehouseIDsByVariant(ctx, variantID)
		if err != nil {
			return err
		}
		taken := make(map[uuid.UUID]struct{}, len(existing))
		for _, id := range existing {
			taken[id] = struct{}{}
		}
		for _, in := range inputs {
			if _, ok := taken[in.WarehouseID]; ok {
				return &errors.ErrConflict{
					Message: "stock for this warehouse already exists for this product variant",
				}
			}
		}

		stocks := make([]*domain.Stock, 0, len(inputs))
		for _, in := range inputs {
			stocks = append(stocks, &domain.Stock{
				VariantID:   variantID,
				WarehouseID: in.WarehouseID,
				Quantity:    in.Quantity,
			})
		}
		return tx.Stock.CreateBatch(ctx, stocks)
	})
}

// VariantStocksUpdate creates or updates stock quantities for a variant
func (s *BulkService) VariantStocksUpdate(ctx context.Context, variantID uuid.UUID, inputs []StockInput) error {
	if err := validateUniqueWarehouses(inputs); err != nil {
		return err
	}

	if _, err := s.repos.Variant.GetByID(ctx, variantID); err != nil {
		return err
	}

	stocks := make([]*domain.Stock, 0, len(inputs))
	for _, in := range inputs {
		stocks = append(stocks, &domain.Stock{
			VariantID:   variantID,
			WarehouseID: in.WarehouseID,
			Quantity:    in.Quantity,
		})
	}
	return s.repos.Stock.UpsertQuantities(ctx, stocks)
}

// VariantStocksDelete removes a variant's stocks in the given warehouses
func (s *BulkService) VariantStocksDelete(ctx context.Context, variantID uuid.UUID, warehouseIDs []uuid.UUID) error {
	if _, err := s.repos.Variant.GetByID(ctx, variantID); err != nil {
		return err
	}
	return s.repos.Stock.DeleteByVariantAndWarehouses(ctx, variantID, warehouseIDs)
}

func validateUniqueWarehouses(inputs []StockInput) error {
	seen := make(map[uuid.UUID]struct{}, len(inputs))
	for i, in := range inputs {
		if _, dup := seen[in.WarehouseID]; dup {
			return &errors.ErrValidation{
				Message: "duplicated warehouse ID",
				Fields:  map[string]string{fmt.Sprintf("stocks[%d].warehouse_id", i): "duplicated warehouse ID"},
			}
		}
		seen[in.WarehouseID] = struct{}{}
	}
	return nil
}

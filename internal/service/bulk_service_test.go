package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/domain"
	"github.com/jafarshop/catalogapi/pkg/errors"
)

type bulkFixture struct {
	store *fakeStore
	svc   *BulkService
}

func newBulkFixture(t *testing.T) *bulkFixture {
	t.Helper()
	store := newFakeStore()
	return &bulkFixture{
		store: store,
		svc:   NewBulkService(newFakeRepos(store), zap.NewNop()),
	}
}

func (f *bulkFixture) addProduct(t *testing.T) *domain.Product {
	t.Helper()
	p := &domain.Product{ID: uuid.New(), Name: "Shirt"}
	f.store.products = append(f.store.products, p)
	return p
}

func (f *bulkFixture) addVariant(t *testing.T, productID uuid.UUID, sku string) *domain.ProductVariant {
	t.Helper()
	v := &domain.ProductVariant{ID: uuid.New(), ProductID: productID, SKU: sku}
	f.store.variants = append(f.store.variants, v)
	return v
}

func TestVariantBulkCreateAssignsDefaultVariant(t *testing.T) {
	f := newBulkFixture(t)
	product := f.addProduct(t)
	warehouseID := uuid.New()

	variants, err := f.svc.VariantBulkCreate(context.Background(), product.ID, []VariantCreateInput{
		{SKU: "A-1", Price: "10.00", Stocks: []StockInput{{WarehouseID: warehouseID, Quantity: 4}}},
		{SKU: "A-2", Price: "12.50"},
	})
	require.NoError(t, err)
	require.Len(t, variants, 2)

	require.NotNil(t, product.DefaultVariantID)
	assert.Equal(t, variants[0].ID, *product.DefaultVariantID)

	require.Len(t, f.store.stocks, 1)
	assert.Equal(t, variants[0].ID, f.store.stocks[0].VariantID)
	assert.Equal(t, warehouseID, f.store.stocks[0].WarehouseID)
	assert.Equal(t, 4, f.store.stocks[0].Quantity)
}

func TestVariantBulkCreateKeepsExistingDefault(t *testing.T) {
	f := newBulkFixture(t)
	product := f.addProduct(t)
	existing := f.addVariant(t, product.ID, "OLD")
	product.DefaultVariantID = &existing.ID

	_, err := f.svc.VariantBulkCreate(context.Background(), product.ID, []VariantCreateInput{
		{SKU: "NEW", Price: "10.00"},
	})
	require.NoError(t, err)

	require.NotNil(t, product.DefaultVariantID)
	assert.Equal(t, existing.ID, *product.DefaultVariantID)
}

func TestVariantBulkCreateValidation(t *testing.T) {
	f := newBulkFixture(t)
	product := f.addProduct(t)
	warehouseID := uuid.New()

	_, err := f.svc.VariantBulkCreate(context.Background(), product.ID, []VariantCreateInput{
		{SKU: "A-1", Price: "10.00"},
		{SKU: "A-1", Price: "not-a-number"},
		{SKU: "", Price: "10.999"},
		{SKU: "A-4", Price: "10.00", Stocks: []StockInput{
			{WarehouseID: warehouseID, Quantity: 1},
			{WarehouseID: warehouseID, Quantity: 2},
		}},
	})

	var valErr *errors.ErrValidation
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "duplicated SKU", valErr.Fields["variants[1].sku"])
	assert.Equal(t, "invalid price", valErr.Fields["variants[1].price"])
	assert.Equal(t, "sku is required", valErr.Fields["variants[2].sku"])
	assert.Equal(t, "price has too many decimal places", valErr.Fields["variants[2].price"])
	assert.Equal(t, "duplicated warehouse ID", valErr.Fields["variants[3].stocks"])

	// nothing persisted on validation failure
	assert.Empty(t, f.store.variants)
	assert.Empty(t, f.store.stocks)
}

func TestVariantBulkCreateAssignsAttributeValues(t *testing.T) {
	f := newBulkFixture(t)
	product := f.addProduct(t)
	sizeAttr, colorAttr := uuid.New(), uuid.New()
	sizeS, red := uuid.New(), uuid.New()

	variants, err := f.svc.VariantBulkCreate(context.Background(), product.ID, []VariantCreateInput{
		{SKU: "A-1", Price: "10.00", Attributes: []VariantAttributeInput{
			{AttributeID: sizeAttr, ValueID: sizeS},
			{AttributeID: colorAttr, ValueID: red},
		}},
	})
	require.NoError(t, err)
	require.Len(t, variants, 1)

	require.Len(t, f.store.variantValues, 2)
	for _, a := range f.store.variantValues {
		assert.Equal(t, variants[0].ID, a.VariantID)
	}
}

func TestVariantBulkCreateDuplicateAttributesInPayload(t *testing.T) {
	f := newBulkFixture(t)
	product := f.addProduct(t)
	sizeAttr, sizeS := uuid.New(), uuid.New()

	_, err := f.svc.VariantBulkCreate(context.Background(), product.ID, []VariantCreateInput{
		{SKU: "A-1", Price: "10.00", Attributes: []VariantAttributeInput{
			{AttributeID: sizeAttr, ValueID: sizeS},
		}},
		// same combination as the first input
		{SKU: "A-2", Price: "10.00", Attributes: []VariantAttributeInput{
			{AttributeID: sizeAttr, ValueID: sizeS},
		}},
		// same attribute twice on one input
		{SKU: "A-3", Price: "10.00", Attributes: []VariantAttributeInput{
			{AttributeID: sizeAttr, ValueID: sizeS},
			{AttributeID: sizeAttr, ValueID: uuid.New()},
		}},
	})

	var valErr *errors.ErrValidation
	require.ErrorAs(t, err, &valErr)
	assert.Equal(t, "duplicated attribute values combination", valErr.Fields["variants[1].attributes"])
	assert.Equal(t, "duplicated attribute ID", valErr.Fields["variants[2].attributes"])
	assert.Empty(t, f.store.variants)
	assert.Empty(t, f.store.variantValues)
}

func TestVariantBulkCreateCombinationTakenByExistingVariant(t *testing.T) {
	f := newBulkFixture(t)
	product := f.addProduct(t)
	existing := f.addVariant(t, product.ID, "OLD")
	sizeAttr, colorAttr := uuid.New(), uuid.New()
	sizeS, red := uuid.New(), uuid.New()
	f.store.variantValues = append(f.store.variantValues,
		domain.VariantAttributeValue{VariantID: existing.ID, AttributeID: sizeAttr, ValueID: sizeS},
		domain.VariantAttributeValue{VariantID: existing.ID, AttributeID: colorAttr, ValueID: red},
	)

	// same combination, attribute order reversed
	_, err := f.svc.VariantBulkCreate(context.Background(), product.ID, []VariantCreateInput{
		{SKU: "NEW", Price: "10.00", Attributes: []VariantAttributeInput{
			{AttributeID: colorAttr, ValueID: red},
			{AttributeID: sizeAttr, ValueID: sizeS},
		}},
	})

	var valErr *errors.ErrValidation
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields["variants[0].attributes"], "already used")
	require.Len(t, f.store.variants, 1)
	assert.Equal(t, "OLD", f.store.variants[0].SKU)
}

func TestVariantBulkCreateUnknownProduct(t *testing.T) {
	f := newBulkFixture(t)

	_, err := f.svc.VariantBulkCreate(context.Background(), uuid.New(), []VariantCreateInput{
		{SKU: "A-1", Price: "10.00"},
	})

	var notFound *errors.ErrNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Empty(t, f.store.variants)
}

func TestVariantBulkDeleteRepointsDefault(t *testing.T) {
	f := newBulkFixture(t)
	product := f.addProduct(t)
	v1 := f.addVariant(t, product.ID, "A-1")
	v2 := f.addVariant(t, product.ID, "A-2")
	product.DefaultVariantID = &v1.ID

	count, err := f.svc.VariantBulkDelete(context.Background(), []uuid.UUID{v1.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NotNil(t, product.DefaultVariantID)
	assert.Equal(t, v2.ID, *product.DefaultVariantID)
}

func TestVariantBulkDeleteLeavesDefaultNilWithoutSurvivors(t *testing.T) {
	f := newBulkFixture(t)
	product := f.addProduct(t)
	v1 := f.addVariant(t, product.ID, "A-1")
	product.DefaultVariantID = &v1.ID

	count, err := f.svc.VariantBulkDelete(context.Background(), []uuid.UUID{v1.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.Nil(t, product.DefaultVariantID)
	assert.Empty(t, f.store.variants)
}

func TestVariantBulkDeleteDoesNotTouchUnaffectedDefaults(t *testing.T) {
	f := newBulkFixture(t)
	product := f.addProduct(t)
	v1 := f.addVariant(t, product.ID, "A-1")
	v2 := f.addVariant(t, product.ID, "A-2")
	product.DefaultVariantID = &v2.ID

	_, err := f.svc.VariantBulkDelete(context.Background(), []uuid.UUID{v1.ID})
	require.NoError(t, err)

	require.NotNil(t, product.DefaultVariantID)
	assert.Equal(t, v2.ID, *product.DefaultVariantID)
}

func TestVariantStocksCreate(t *testing.T) {
	f := newBulkFixture(t)
	product := f.addProduct(t)
	variant := f.addVariant(t, product.ID, "A-1")
	warehouseID := uuid.New()

	err := f.svc.VariantStocksCreate(context.Background(), variant.ID, []StockInput{
		{WarehouseID: warehouseID, Quantity: 9},
	})
	require.NoError(t, err)
	require.Len(t, f.store.stocks, 1)
	assert.Equal(t, 9, f.store.stocks[0].Quantity)
}

func TestVariantStocksCreateRejectsExistingWarehouse(t *testing.T) {
	f := newBulkFixture(t)
	product := f.addProduct(t)
	variant := f.addVariant(t, product.ID, "A-1")
	warehouseID := uuid.New()
	f.store.stocks = append(f.store.stocks, &domain.Stock{
		ID: uuid.New(), VariantID: variant.ID, WarehouseID: warehouseID, Quantity: 1,
	})

	err := f.svc.VariantStocksCreate(context.Background(), variant.ID, []StockInput{
		{WarehouseID: warehouseID, Quantity: 9},
	})

	var conflict *errors.ErrConflict
	require.ErrorAs(t, err, &conflict)
	require.Len(t, f.store.stocks, 1)
	assert.Equal(t, 1, f.store.stocks[0].Quantity)
}

func TestVariantStocksCreateRejectsDuplicateWarehouseInPayload(t *testing.T) {
	f := newBulkFixture(t)
	product := f.addProduct(t)
	variant := f.addVariant(t, product.ID, "A-1")
	warehouseID := uuid.New()

	err := f.svc.VariantStocksCreate(context.Background(), variant.ID, []StockInput{
		{WarehouseID: warehouseID, Quantity: 1},
		{WarehouseID: warehouseID, Quantity: 2},
	})

	var valErr *errors.ErrValidation
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields, "stocks[1].warehouse_id")
	assert.Empty(t, f.store.stocks)
}

func TestVariantStocksUpdateUpserts(t *testing.T) {
	f := newBulkFixture(t)
	product := f.addProduct(t)
	variant := f.addVariant(t, product.ID, "A-1")
	existingWarehouse := uuid.New()
	newWarehouse := uuid.New()
	f.store.stocks = append(f.store.stocks, &domain.Stock{
		ID: uuid.New(), VariantID: variant.ID, WarehouseID: existingWarehouse, Quantity: 1,
	})

	err := f.svc.VariantStocksUpdate(context.Background(), variant.ID, []StockInput{
		{WarehouseID: existingWarehouse, Quantity: 50},
		{WarehouseID: newWarehouse, Quantity: 3},
	})
	require.NoError(t, err)

	require.Len(t, f.store.stocks, 2)
	assert.Equal(t, 50, f.store.stocks[0].Quantity)
	assert.Equal(t, newWarehouse, f.store.stocks[1].WarehouseID)
	assert.Equal(t, 3, f.store.stocks[1].Quantity)
}

func TestVariantStocksDelete(t *testing.T) {
	f := newBulkFixture(t)
	product := f.addProduct(t)
	variant := f.addVariant(t, product.ID, "A-1")
	w1, w2 := uuid.New(), uuid.New()
	f.store.stocks = append(f.store.stocks,
		&domain.Stock{ID: uuid.New(), VariantID: variant.ID, WarehouseID: w1, Quantity: 1},
		&domain.Stock{ID: uuid.New(), VariantID: variant.ID, WarehouseID: w2, Quantity: 2},
	)

	err := f.svc.VariantStocksDelete(context.Background(), variant.ID, []uuid.UUID{w1})
	require.NoError(t, err)

	require.Len(t, f.store.stocks, 1)
	assert.Equal(t, w2, f.store.stocks[0].WarehouseID)
}

func TestVariantStockMutationsRequireExistingVariant(t *testing.T) {
	f := newBulkFixture(t)
	missing := uuid.New()
	input := []StockInput{{WarehouseID: uuid.New(), Quantity: 1}}

	var notFound *errors.ErrNotFound
	require.ErrorAs(t, f.svc.VariantStocksCreate(context.Background(), missing, input), &notFound)
	require.ErrorAs(t, f.svc.VariantStocksUpdate(context.Background(), missing, input), &notFound)
	require.ErrorAs(t, f.svc.VariantStocksDelete(context.Background(), missing, []uuid.UUID{uuid.New()}), &notFound)
}

func TestProductBulkPublish(t *testing.T) {
	f := newBulkFixture(t)
	p1 := f.addProduct(t)
	p2 := f.addProduct(t)
	p1.IsPublished = true

	count, err := f.svc.ProductBulkPublish(context.Background(), []uuid.UUID{p1.ID, p2.ID}, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.False(t, p1.IsPublished)
	assert.False(t, p2.IsPublished)
}

func TestProductTypeBulkDelete(t *testing.T) {
	f := newBulkFixture(t)
	keep, drop := uuid.New(), uuid.New()
	f.store.productTypes[keep] = &domain.ProductType{ID: keep, Name: "Apparel"}
	f.store.productTypes[drop] = &domain.ProductType{ID: drop, Name: "Legacy"}

	count, err := f.svc.ProductTypeBulkDelete(context.Background(), []uuid.UUID{drop, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Contains(t, f.store.productTypes, keep)
	assert.NotContains(t, f.store.productTypes, drop)
}

func TestProductBulkDelete(t *testing.T) {
	f := newBulkFixture(t)
	p1 := f.addProduct(t)
	f.addProduct(t)

	count, err := f.svc.ProductBulkDelete(context.Background(), []uuid.UUID{p1.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, f.store.products, 1)
	assert.NotEqual(t, p1.ID, f.store.products[0].ID)
}

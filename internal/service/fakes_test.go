package service

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/jafarshop/catalogapi/internal/domain"
	"github.com/jafarshop/catalogapi/internal/repository"
	"github.com/jafarshop/catalogapi/pkg/errors"
)

// fakeStore is an in-memory stand-in for the database. newFakeRepos wires
// repository implementations over it, with InTx emulating rollback by
// snapshotting the store.
type fakeStore struct {
	mu sync.Mutex

	products        []*domain.Product
	variants        []*domain.ProductVariant
	variantValues   []domain.VariantAttributeValue
	stocks          []*domain.Stock
	attributes      map[uuid.UUID]*domain.Attribute
	attributeValues []*domain.AttributeValue
	collections     []*domain.Collection
	memberships     []*domain.CollectionProduct
	categories      map[uuid.UUID]*domain.Category
	productTypes    map[uuid.UUID]*domain.ProductType
	warehouses      map[uuid.UUID]*domain.Warehouse
	menus           map[string]*domain.Menu
	menuItems       []*domain.MenuItem
	images          []*domain.ProductImage

	listValuesCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		attributes:   make(map[uuid.UUID]*domain.Attribute),
		categories:   make(map[uuid.UUID]*domain.Category),
		productTypes: make(map[uuid.UUID]*domain.ProductType),
		warehouses:   make(map[uuid.UUID]*domain.Warehouse),
		menus:        make(map[string]*domain.Menu),
	}
}

type storeSnapshot struct {
	products        int
	variants        int
	variantValues   int
	stocks          int
	attributeValues int
	collections     int
	memberships     int
	menuItems       int
	images          int
}

func (s *fakeStore) snapshot() storeSnapshot {
	return storeSnapshot{
		products:        len(s.products),
		variants:        len(s.variants),
		variantValues:   len(s.variantValues),
		stocks:          len(s.stocks),
		attributeValues: len(s.attributeValues),
		collections:     len(s.collections),
		memberships:     len(s.memberships),
		menuItems:       len(s.menuItems),
		images:          len(s.images),
	}
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.products = s.products[:snap.products]
	s.variants = s.variants[:snap.variants]
	s.variantValues = s.variantValues[:snap.variantValues]
	s.stocks = s.stocks[:snap.stocks]
	s.attributeValues = s.attributeValues[:snap.attributeValues]
	s.collections = s.collections[:snap.collections]
	s.memberships = s.memberships[:snap.memberships]
	s.menuItems = s.menuItems[:snap.menuItems]
	s.images = s.images[:snap.images]
}

func newFakeRepos(store *fakeStore) *repository.Repositories {
	repos := &repository.Repositories{
		Product:      &fakeProductRepo{store},
		Variant:      &fakeVariantRepo{store},
		Stock:        &fakeStockRepo{store},
		Attribute:    &fakeAttributeRepo{store},
		Collection:   &fakeCollectionRepo{store},
		Category:     &fakeCategoryRepo{store},
		ProductType:  &fakeProductTypeRepo{store},
		Warehouse:    &fakeWarehouseRepo{store},
		Menu:         &fakeMenuRepo{store},
		ProductImage: &fakeImageRepo{store},
	}
	repos.InTx = func(ctx context.Context, fn func(*repository.Repositories) error) error {
		snap := store.snapshot()
		if err := fn(repos); err != nil {
			store.restore(snap)
			return err
		}
		return nil
	}
	return repos
}

type fakeProductRepo struct{ s *fakeStore }

func (r *fakeProductRepo) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.s.products = append(r.s.products, p)
	return nil
}

func (r *fakeProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	for _, p := range r.s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "product", ID: id.String()}
}

func (r *fakeProductRepo) ListByShopifyIDs(ctx context.Context, shopifyIDs []string) ([]*domain.Product, error) {
	wanted := make(map[string]struct{}, len(shopifyIDs))
	for _, id := range shopifyIDs {
		wanted[id] = struct{}{}
	}
	var out []*domain.Product
	for _, p := range r.s.products {
		if p.ShopifyID == nil {
			continue
		}
		if _, ok := wanted[*p.ShopifyID]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var kept []*domain.Product
	var count int64
	for _, p := range r.s.products {
		if containsID(ids, p.ID) {
			count++
			continue
		}
		kept = append(kept, p)
	}
	r.s.products = kept
	return count, nil
}

func (r *fakeProductRepo) SetPublished(ctx context.Context, ids []uuid.UUID, isPublished bool) (int64, error) {
	var count int64
	for _, p := range r.s.products {
		if containsID(ids, p.ID) {
			p.IsPublished = isPublished
			count++
		}
	}
	return count, nil
}

func (r *fakeProductRepo) SetDefaultVariant(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID) error {
	for _, p := range r.s.products {
		if p.ID == productID {
			p.DefaultVariantID = variantID
			return nil
		}
	}
	return &errors.ErrNotFound{Resource: "product", ID: productID.String()}
}

func (r *fakeProductRepo) ListIDsWithNullDefaultVariant(ctx context.Context, productIDs []uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, p := range r.s.products {
		if containsID(productIDs, p.ID) && p.DefaultVariantID == nil {
			out = append(out, p.ID)
		}
	}
	return out, nil
}

type fakeVariantRepo struct{ s *fakeStore }

func (r *fakeVariantRepo) Create(ctx context.Context, v *domain.ProductVariant) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.s.variants = append(r.s.variants, v)
	return nil
}

func (r *fakeVariantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProductVariant, error) {
	for _, v := range r.s.variants {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "product_variant", ID: id.String()}
}

func (r *fakeVariantRepo) FirstByProductID(ctx context.Context, productID uuid.UUID) (*domain.ProductVariant, error) {
	for _, v := range r.s.variants {
		if v.ProductID == productID {
			return v, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "product_variant", ID: "product:" + productID.String()}
}

func (r *fakeVariantRepo) ListByProductID(ctx context.Context, productID uuid.UUID) ([]*domain.ProductVariant, error) {
	var out []*domain.ProductVariant
	for _, v := range r.s.variants {
		if v.ProductID == productID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeVariantRepo) ListProductIDs(ctx context.Context, variantIDs []uuid.UUID) ([]uuid.UUID, error) {
	seen := make(map[uuid.UUID]struct{})
	var out []uuid.UUID
	for _, v := range r.s.variants {
		if !containsID(variantIDs, v.ID) {
			continue
		}
		if _, ok := seen[v.ProductID]; !ok {
			seen[v.ProductID] = struct{}{}
			out = append(out, v.ProductID)
		}
	}
	return out, nil
}

func (r *fakeVariantRepo) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var kept []*domain.ProductVariant
	var count int64
	for _, v := range r.s.variants {
		if containsID(ids, v.ID) {
			count++
			// emulate ON DELETE SET NULL on products.default_variant_id
			for _, p := range r.s.products {
				if p.DefaultVariantID != nil && *p.DefaultVariantID == v.ID {
					p.DefaultVariantID = nil
				}
			}
			continue
		}
		kept = append(kept, v)
	}
	r.s.variants = kept
	return count, nil
}

func (r *fakeVariantRepo) AssignAttributeValue(ctx context.Context, variantID, attributeID, valueID uuid.UUID) error {
	r.s.variantValues = append(r.s.variantValues, domain.VariantAttributeValue{
		VariantID:   variantID,
		AttributeID: attributeID,
		ValueID:     valueID,
	})
	return nil
}

func (r *fakeVariantRepo) ListValueAssignmentsByProduct(ctx context.Context, productID uuid.UUID) ([]domain.VariantAttributeValue, error) {
	variantIDs := make(map[uuid.UUID]struct{})
	for _, v := range r.s.variants {
		if v.ProductID == productID {
			variantIDs[v.ID] = struct{}{}
		}
	}
	var out []domain.VariantAttributeValue
	for _, a := range r.s.variantValues {
		if _, ok := variantIDs[a.VariantID]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeStockRepo struct{ s *fakeStore }

func (r *fakeStockRepo) CreateBatch(ctx context.Context, stocks []*domain.Stock) error {
	for _, st := range stocks {
		if st.ID == uuid.Nil {
			st.ID = uuid.New()
		}
		r.s.stocks = append(r.s.stocks, st)
	}
	return nil
}

func (r *fakeStockRepo) ListByVariantID(ctx context.Context, variantID uuid.UUID) ([]*domain.Stock, error) {
	var out []*domain.Stock
	for _, st := range r.s.stocks {
		if st.VariantID == variantID {
			out = append(out, st)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) ListWarehouseIDsByVariant(ctx context.Context, variantID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, st := range r.s.stocks {
		if st.VariantID == variantID {
			out = append(out, st.WarehouseID)
		}
	}
	return out, nil
}

func (r *fakeStockRepo) UpsertQuantities(ctx context.Context, stocks []*domain.Stock) error {
	for _, in := range stocks {
		updated := false
		for _, st := range r.s.stocks {
			if st.VariantID == in.VariantID && st.WarehouseID == in.WarehouseID {
				st.Quantity = in.Quantity
				updated = true
				break
			}
		}
		if !updated {
			r.s.stocks = append(r.s.stocks, in)
		}
	}
	return nil
}

func (r *fakeStockRepo) DeleteByVariantAndWarehouses(ctx context.Context, variantID uuid.UUID, warehouseIDs []uuid.UUID) error {
	var kept []*domain.Stock
	for _, st := range r.s.stocks {
		if st.VariantID == variantID && containsID(warehouseIDs, st.WarehouseID) {
			continue
		}
		kept = append(kept, st)
	}
	r.s.stocks = kept
	return nil
}

type fakeAttributeRepo struct{ s *fakeStore }

func (r *fakeAttributeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Attribute, error) {
	if a, ok := r.s.attributes[id]; ok {
		return a, nil
	}
	return nil, &errors.ErrNotFound{Resource: "attribute", ID: id.String()}
}

func (r *fakeAttributeRepo) ListValues(ctx context.Context, attributeID uuid.UUID) ([]*domain.AttributeValue, error) {
	r.s.listValuesCalls++
	var out []*domain.AttributeValue
	for _, v := range r.s.attributeValues {
		if v.AttributeID == attributeID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *fakeAttributeRepo) CreateValue(ctx context.Context, v *domain.AttributeValue) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.s.attributeValues = append(r.s.attributeValues, v)
	return nil
}

type fakeCollectionRepo struct{ s *fakeStore }

func (r *fakeCollectionRepo) Create(ctx context.Context, c *domain.Collection) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.s.collections = append(r.s.collections, c)
	return nil
}

func (r *fakeCollectionRepo) ListNames(ctx context.Context) ([]string, error) {
	var out []string
	for _, c := range r.s.collections {
		out = append(out, c.Name)
	}
	return out, nil
}

func (r *fakeCollectionRepo) AddProducts(ctx context.Context, collectionID uuid.UUID, productIDs []uuid.UUID) error {
	for _, pid := range productIDs {
		r.s.memberships = append(r.s.memberships, &domain.CollectionProduct{
			ID:           uuid.New(),
			CollectionID: collectionID,
			ProductID:    pid,
		})
	}
	return nil
}

func (r *fakeCollectionRepo) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var kept []*domain.Collection
	var count int64
	for _, c := range r.s.collections {
		if containsID(ids, c.ID) {
			count++
			continue
		}
		kept = append(kept, c)
	}
	r.s.collections = kept
	return count, nil
}

func (r *fakeCollectionRepo) SetPublished(ctx context.Context, ids []uuid.UUID, isPublished bool) (int64, error) {
	var count int64
	for _, c := range r.s.collections {
		if containsID(ids, c.ID) {
			c.IsPublished = isPublished
			count++
		}
	}
	return count, nil
}

type fakeCategoryRepo struct{ s *fakeStore }

func (r *fakeCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	if c, ok := r.s.categories[id]; ok {
		return c, nil
	}
	return nil, &errors.ErrNotFound{Resource: "category", ID: id.String()}
}

func (r *fakeCategoryRepo) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var count int64
	for _, id := range ids {
		if _, ok := r.s.categories[id]; ok {
			delete(r.s.categories, id)
			count++
		}
	}
	return count, nil
}

type fakeProductTypeRepo struct{ s *fakeStore }

func (r *fakeProductTypeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProductType, error) {
	if t, ok := r.s.productTypes[id]; ok {
		return t, nil
	}
	return nil, &errors.ErrNotFound{Resource: "product_type", ID: id.String()}
}

func (r *fakeProductTypeRepo) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	var count int64
	for _, id := range ids {
		if _, ok := r.s.productTypes[id]; ok {
			delete(r.s.productTypes, id)
			count++
		}
	}
	return count, nil
}

type fakeWarehouseRepo struct{ s *fakeStore }

func (r *fakeWarehouseRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Warehouse, error) {
	if w, ok := r.s.warehouses[id]; ok {
		return w, nil
	}
	return nil, &errors.ErrNotFound{Resource: "warehouse", ID: id.String()}
}

type fakeMenuRepo struct{ s *fakeStore }

func (r *fakeMenuRepo) GetByName(ctx context.Context, name string) (*domain.Menu, error) {
	if m, ok := r.s.menus[name]; ok {
		return m, nil
	}
	return nil, &errors.ErrNotFound{Resource: "menu", ID: name}
}

func (r *fakeMenuRepo) CreateItem(ctx context.Context, item *domain.MenuItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.s.menuItems = append(r.s.menuItems, item)
	return nil
}

type fakeImageRepo struct{ s *fakeStore }

func (r *fakeImageRepo) Create(ctx context.Context, img *domain.ProductImage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if img.ID == uuid.Nil {
		img.ID = uuid.New()
	}
	r.s.images = append(r.s.images, img)
	return nil
}

func (r *fakeImageRepo) ListByProductID(ctx context.Context, productID uuid.UUID) ([]*domain.ProductImage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*domain.ProductImage
	for _, img := range r.s.images {
		if img.ProductID == productID {
			out = append(out, img)
		}
	}
	return out, nil
}

func (r *fakeImageRepo) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var kept []*domain.ProductImage
	var count int64
	for _, img := range r.s.images {
		if containsID(ids, img.ID) {
			count++
			continue
		}
		kept = append(kept, img)
	}
	r.s.images = kept
	return count, nil
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

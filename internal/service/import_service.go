package service

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/config"
	"github.com/jafarshop/catalogapi/internal/domain"
	"github.com/jafarshop/catalogapi/internal/repository"
	"github.com/jafarshop/catalogapi/internal/shopify"
)

// CatalogReader reads a remote collection and its products
type CatalogReader interface {
	GetCollection(ctx context.Context, collectionID string) (*shopify.Collection, error)
	GetCollectionProducts(ctx context.Context, collectionID string) ([]shopify.Product, error)
}

// ImportService imports a remote Shopify collection into local catalog
// records: products, variants, stocks, a destination collection and its menu
// entry.
type ImportService struct {
	cfg       *config.Config
	repos     *repository.Repositories
	newReader func(shopURL, accessToken string) (CatalogReader, error)
	images    ImageIngestor
	logger    *zap.Logger
}

// NewImportService creates a new import service
func NewImportService(cfg *config.Config, repos *repository.Repositories, images ImageIngestor, logger *zap.Logger) *ImportService {
	return &ImportService{
		cfg:   cfg,
		repos: repos,
		newReader: func(shopURL, accessToken string) (CatalogReader, error) {
			return shopify.New(shopURL, accessToken, cfg.Shopify.APIVersion, logger)
		},
		images: images,
		logger: logger,
	}
}

// ImportCollection fetches the remote collection, materializes its not-yet-
// imported products inside one transaction, links new and previously
// imported products into a freshly created destination collection in a
// second transaction, then schedules image ingestion for the new products.
// Returns the newly created products; already-imported ones are filtered by
// their shopify id tag and not re-created.
func (s *ImportService) ImportCollection(ctx context.Context, shopURL, accessToken, collectionID string) ([]*domain.Product, error) {
	reader, err := s.newReader(shopURL, accessToken)
	if err != nil {
		return nil, err
	}

	remoteCollection, err := reader.GetCollection(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	remoteProducts, err := reader.GetCollectionProducts(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	// Filter out already-imported products by shopify id
	remoteIDs := make([]string, 0, len(remoteProducts))
	for _, rp := range remoteProducts {
		remoteIDs = append(remoteIDs, strconv.FormatInt(rp.ID, 10))
	}
	existing, err := s.repos.Product.ListByShopifyIDs(ctx, remoteIDs)
	if err != nil {
		return nil, err
	}
	imported := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		if p.ShopifyID != nil {
			imported[*p.ShopifyID] = struct{}{}
		}
	}
	newRemote := remoteProducts[:0:0]
	for _, rp := range remoteProducts {
		if _, ok := imported[strconv.FormatInt(rp.ID, 10)]; !ok {
			newRemote = append(newRemote, rp)
		}
	}

	// One transaction covers attribute seeding and all product, variant and
	// stock creation: a data error anywhere leaves nothing committed.
	var created []*domain.Product
	imageURLs := make(map[uuid.UUID][]string)
	err = s.repos.InTx(ctx, func(tx *repository.Repositories) error {
		run, err := newImportRun(ctx, s.cfg, tx, s.logger)
		if err != nil {
			return err
		}
		if err := run.seedAttributeValues(ctx, newRemote); err != nil {
			return err
		}
		for _, rp := range newRemote {
			product, urls, err := run.createProduct(ctx, rp)
			if err != nil {
				return err
			}
			created = append(created, product)
			imageURLs[product.ID] = urls
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	attach := make([]uuid.UUID, 0, len(created)+len(existing))
	for _, p := range created {
		attach = append(attach, p.ID)
	}
	for _, p := range existing {
		attach = append(attach, p.ID)
	}

	// Second transaction scope; a failure here is not compensated, the
	// products above stay committed and need manual reconciliation.
	if err := s.repos.InTx(ctx, func(tx *repository.Repositories) error {
		_, err := s.syncCollection(ctx, tx, remoteCollection, attach)
		return err
	}); err != nil {
		s.logger.Error("Collection sync failed after product commit; imported products are not attached to any collection",
			zap.Error(err),
			zap.Int("products", len(created)),
		)
		return nil, err
	}

	// Deferred image ingestion, newly created products only. Fire and
	// forget: failures are logged by the ingestor and do not affect the
	// import result.
	for _, p := range created {
		urls := imageURLs[p.ID]
		if len(urls) == 0 {
			continue
		}
		go s.images.Ingest(context.Background(), p.ID, urls)
	}

	s.logger.Info("Imported collection",
		zap.String("collection_id", collectionID),
		zap.Int("new_products", len(created)),
		zap.Int("already_imported", len(existing)),
	)
	return created, nil
}

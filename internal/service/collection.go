package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/jafarshop/catalogapi/internal/domain"
	"github.com/jafarshop/catalogapi/internal/repository"
	"github.com/jafarshop/catalogapi/internal/shopify"
	"github.com/jafarshop/catalogapi/pkg/errors"
)

// syncCollection creates the destination collection under a disambiguated
// name, attaches every product in productIDs in one bulk insert, and creates
// one menu entry for it. Re-running an import creates a second,
// disambiguated collection and menu entry; there is no dedup by shopify id
// here.
func (s *ImportService) syncCollection(ctx context.Context, repos *repository.Repositories, rc *shopify.Collection, productIDs []uuid.UUID) (*domain.Collection, error) {
	names, err := repos.Collection.ListNames(ctx)
	if err != nil {
		return nil, err
	}
	name := disambiguateCollectionName(rc.Title, names)

	shopifyID := strconv.FormatInt(rc.ID, 10)
	collection := &domain.Collection{
		Name:        name,
		Slug:        slug.Make(name),
		Description: rc.BodyHTML,
		IsPublished: true,
		ShopifyID:   &shopifyID,
	}
	if err := repos.Collection.Create(ctx, collection); err != nil {
		return nil, err
	}

	if err := repos.Collection.AddProducts(ctx, collection.ID, productIDs); err != nil {
		return nil, err
	}

	menu, err := repos.Menu.GetByName(ctx, s.cfg.Catalog.NavMenuName)
	if err != nil {
		return nil, &errors.ErrConfiguration{Reference: "menu " + s.cfg.Catalog.NavMenuName, Err: err}
	}
	parentID := s.cfg.Catalog.ParentMenuItemID
	item := &domain.MenuItem{
		MenuID:       menu.ID,
		ParentID:     &parentID,
		Name:         name,
		CollectionID: &collection.ID,
	}
	if err := repos.Menu.CreateItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("Synchronized collection",
		zap.String("name", name),
		zap.Int("products", len(productIDs)),
	)
	return collection, nil
}

// disambiguateCollectionName appends "(N)" with the smallest N that makes
// the name unique against existing collection names, compared
// case-insensitively, starting at N=2.
func disambiguateCollectionName(title string, existing []string) string {
	taken := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		taken[strings.ToLower(name)] = struct{}{}
	}

	name := title
	for i := 2; ; i++ {
		if _, ok := taken[strings.ToLower(name)]; !ok {
			return name
		}
		name = fmt.Sprintf("%s(%d)", title, i)
	}
}

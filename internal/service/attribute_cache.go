package service

import (
	"context"
	"regexp"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/jafarshop/catalogapi/internal/domain"
	"github.com/jafarshop/catalogapi/internal/repository"
	"github.com/jafarshop/catalogapi/pkg/errors"
)

// whitespaceRun matches one or more whitespace characters. Remote option
// strings occasionally carry doubled spaces, so runs collapse to a single
// hyphen before any comparison or creation.
var whitespaceRun = regexp.MustCompile(`\s+`)

func normalizeValueName(name string) string {
	return whitespaceRun.ReplaceAllString(name, "-")
}

type attributeEntry struct {
	attribute *domain.Attribute
	values    []*domain.AttributeValue
}

// attributeCache memoizes the value set of each attribute for the lifetime
// of one import run. It is constructed per run and passed by reference; it
// is not safe for concurrent writers.
type attributeCache struct {
	repo    repository.AttributeRepository
	entries map[uuid.UUID]*attributeEntry
}

func newAttributeCache(repo repository.AttributeRepository) *attributeCache {
	return &attributeCache{
		repo:    repo,
		entries: make(map[uuid.UUID]*attributeEntry),
	}
}

func (c *attributeCache) load(ctx context.Context, attributeID uuid.UUID) (*attributeEntry, error) {
	if entry, ok := c.entries[attributeID]; ok {
		return entry, nil
	}
	attribute, err := c.repo.GetByID(ctx, attributeID)
	if err != nil {
		return nil, &errors.ErrConfiguration{Reference: "attribute " + attributeID.String(), Err: err}
	}
	values, err := c.repo.ListValues(ctx, attributeID)
	if err != nil {
		return nil, err
	}
	entry := &attributeEntry{attribute: attribute, values: values}
	c.entries[attributeID] = entry
	return entry, nil
}

// EnsureValues guarantees every name in candidates exists as a value of the
// attribute, creating missing ones. Created values extend the cache entry in
// place.
func (c *attributeCache) EnsureValues(ctx context.Context, attributeID uuid.UUID, candidates []string) error {
	entry, err := c.load(ctx, attributeID)
	if err != nil {
		return err
	}

	for _, candidate := range candidates {
		name := normalizeValueName(candidate)
		if entry.find(name) != nil {
			continue
		}
		value := &domain.AttributeValue{
			AttributeID: attributeID,
			Name:        name,
			Slug:        slug.Make(name),
		}
		if err := c.repo.CreateValue(ctx, value); err != nil {
			return err
		}
		entry.values = append(entry.values, value)
	}
	return nil
}

// Resolve returns the attribute and its value matching name exactly (after
// normalization). Callers must have run EnsureValues for the full candidate
// set first; an unseeded name is a hard error.
func (c *attributeCache) Resolve(ctx context.Context, attributeID uuid.UUID, name string) (*domain.Attribute, *domain.AttributeValue, error) {
	entry, err := c.load(ctx, attributeID)
	if err != nil {
		return nil, nil, err
	}

	normalized := normalizeValueName(name)
	value := entry.find(normalized)
	if value == nil {
		return nil, nil, &errors.ErrNotFound{Resource: "attribute_value", ID: normalized}
	}
	return entry.attribute, value, nil
}

func (e *attributeEntry) find(name string) *domain.AttributeValue {
	for _, v := range e.values {
		if v.Name == name {
			return v
		}
	}
	return nil
}

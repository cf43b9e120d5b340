package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codclick-aut6/clickprato6-sub000/pkg/db/models"
	pkgerrors "github.com/codclick-aut6/clickprato6-sub000/pkg/errors"
)

// Service exposes read access to the authored catalog.
type Service interface {
	Snapshot(ctx context.Context) (*View, error)
	ListItems(ctx context.Context) ([]models.CatalogItem, error)
	GetItem(ctx context.Context, id uuid.UUID) (*models.CatalogItem, error)
}

type service struct {
	repo Repository
}

// NewService builds a catalog service backed by the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// Snapshot fetches the current items and variation pool as one indexed view.
func (s *service) Snapshot(ctx context.Context) (*View, error) {
	items, err := s.repo.GetAllItems(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog items")
	}
	variations, err := s.repo.GetAllVariations(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load variations")
	}
	return NewView(items, variations), nil
}

// ListItems returns the available portion of the catalog.
func (s *service) ListItems(ctx context.Context) ([]models.CatalogItem, error) {
	items, err := s.repo.GetAllItems(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog items")
	}
	out := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if item.Available {
			out = append(out, item)
		}
	}
	return out, nil
}

// GetItem returns one catalog item by id.
func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*models.CatalogItem, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "item id is required")
	}
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "catalog item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog item")
	}
	return item, nil
}

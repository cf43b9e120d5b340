package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/codclick-aut6/clickprato6-sub000/pkg/db/models"
)

// Repository defines the persistence surface required by the catalog service.
type Repository interface {
	GetAllItems(ctx context.Context) ([]models.CatalogItem, error)
	GetAllVariations(ctx context.Context) ([]models.Variation, error)
	GetItem(ctx context.Context, id uuid.UUID) (*models.CatalogItem, error)
}

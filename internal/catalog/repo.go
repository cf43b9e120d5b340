package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/codclick-aut6/clickprato6-sub000/pkg/db/models"
)

// GormRepository exposes read operations over the authored catalog tables.
type GormRepository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// GetAllItems loads every catalog item with its groups and borders attached.
func (r *GormRepository) GetAllItems(ctx context.Context) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	err := r.db.WithContext(ctx).
		Preload("Groups", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Borders", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// GetAllVariations loads the full variation pool, including unavailable rows
// so stale line references can still be resolved by id.
func (r *GormRepository) GetAllVariations(ctx context.Context) ([]models.Variation, error) {
	var rows []models.Variation
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetItem returns one catalog item with groups and borders.
func (r *GormRepository) GetItem(ctx context.Context, id uuid.UUID) (*models.CatalogItem, error) {
	var item models.CatalogItem
	err := r.db.WithContext(ctx).
		Preload("Groups", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Borders", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

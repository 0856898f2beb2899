package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
)

// Repository handles menu catalog persistence.
type Repository interface {
	ListMenuItems(ctx context.Context, params ListMenuItemsQuery) ([]models.MenuItem, error)
	FindMenuItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
	SaveMenuItem(ctx context.Context, item *models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id uuid.UUID) (bool, error)
}

// ListMenuItemsQuery configures menu list queries.
type ListMenuItemsQuery struct {
	Category      *string
	OnlyAvailable bool
	OnlyPopular   bool
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a catalog repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListMenuItems(ctx context.Context, params ListMenuItemsQuery) ([]models.MenuItem, error) {
	query := r.db.WithContext(ctx).
		Model(&models.MenuItem{}).
		Preload("Variations").
		Preload("AddOns")
	if params.Category != nil {
		query = query.Where("category = ?", *params.Category)
	}
	if params.OnlyAvailable {
		query = query.Where("available")
	}
	if params.OnlyPopular {
		query = query.Where("popular")
	}

	var items []models.MenuItem
	if err := query.Order("category ASC, name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *repository) SaveMenuItem(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *repository) DeleteMenuItem(ctx context.Context, id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, nil
	}
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.MenuItem{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) FindMenuItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	if id == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	var item models.MenuItem
	if err := r.db.WithContext(ctx).
		Preload("Variations").
		Preload("AddOns").
		Where("id = ?", id).
		First(&item).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

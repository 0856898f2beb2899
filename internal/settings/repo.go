package settings

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
)

// Repository handles site setting persistence.
type Repository interface {
	ListSettings(ctx context.Context) ([]models.SiteSetting, error)
	FindSettingByID(ctx context.Context, id string) (*models.SiteSetting, error)
	UpsertSetting(ctx context.Context, setting *models.SiteSetting) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a settings repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListSettings(ctx context.Context) ([]models.SiteSetting, error) {
	var settings []models.SiteSetting
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (r *repository) FindSettingByID(ctx context.Context, id string) (*models.SiteSetting, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var setting models.SiteSetting
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&setting).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

func (r *repository) UpsertSetting(ctx context.Context, setting *models.SiteSetting) error {
	return r.db.WithContext(ctx).Save(setting).Error
}

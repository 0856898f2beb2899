package affiliates

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	"github.com/sweetquest/sweetquest-backend/pkg/enums"
)

// Repository handles affiliate persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateAffiliate(ctx context.Context, affiliate *models.Affiliate) error
	UpdateAffiliate(ctx context.Context, affiliate *models.Affiliate) error
	DeleteAffiliate(ctx context.Context, id uuid.UUID) (bool, error)
	ListAffiliates(ctx context.Context, params ListAffiliatesQuery) ([]models.Affiliate, error)
	FindAffiliateByID(ctx context.Context, id uuid.UUID) (*models.Affiliate, error)
	FindAffiliateByCode(ctx context.Context, code string, status *enums.AffiliateStatus) (*models.Affiliate, error)
}

// ListAffiliatesQuery configures affiliate list queries.
type ListAffiliatesQuery struct {
	Status *enums.AffiliateStatus
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an affiliate repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateAffiliate(ctx context.Context, affiliate *models.Affiliate) error {
	return r.db.WithContext(ctx).Create(affiliate).Error
}

func (r *repository) UpdateAffiliate(ctx context.Context, affiliate *models.Affiliate) error {
	return r.db.WithContext(ctx).Save(affiliate).Error
}

func (r *repository) DeleteAffiliate(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Affiliate{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) ListAffiliates(ctx context.Context, params ListAffiliatesQuery) ([]models.Affiliate, error) {
	query := r.db.WithContext(ctx).Model(&models.Affiliate{})
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	var affiliates []models.Affiliate
	if err := query.Order("created_at DESC").Find(&affiliates).Error; err != nil {
		return nil, err
	}
	return affiliates, nil
}

func (r *repository) FindAffiliateByID(ctx context.Context, id uuid.UUID) (*models.Affiliate, error) {
	if id == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	var affiliate models.Affiliate
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&affiliate).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &affiliate, nil
}

func (r *repository) FindAffiliateByCode(ctx context.Context, code string, status *enums.AffiliateStatus) (*models.Affiliate, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, gorm.ErrRecordNotFound
	}

	query := r.db.WithContext(ctx).Where("referral_code = ?", code)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var affiliate models.Affiliate
	if err := query.First(&affiliate).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &affiliate, nil
}

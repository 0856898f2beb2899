package paymentmethods

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
)

// Repository handles payment method account persistence.
type Repository interface {
	ListPaymentMethods(ctx context.Context, onlyEnabled bool) ([]models.PaymentMethodAccount, error)
	FindPaymentMethodByID(ctx context.Context, id uuid.UUID) (*models.PaymentMethodAccount, error)
	FindPaymentMethodByCode(ctx context.Context, code string) (*models.PaymentMethodAccount, error)
	SavePaymentMethod(ctx context.Context, method *models.PaymentMethodAccount) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a payment method repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListPaymentMethods(ctx context.Context, onlyEnabled bool) ([]models.PaymentMethodAccount, error) {
	query := r.db.WithContext(ctx).Model(&models.PaymentMethodAccount{})
	if onlyEnabled {
		query = query.Where("enabled")
	}

	var methods []models.PaymentMethodAccount
	if err := query.Order("sort_order ASC, name ASC").Find(&methods).Error; err != nil {
		return nil, err
	}
	return methods, nil
}

func (r *repository) FindPaymentMethodByID(ctx context.Context, id uuid.UUID) (*models.PaymentMethodAccount, error) {
	if id == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	var method models.PaymentMethodAccount
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&method).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &method, nil
}

func (r *repository) SavePaymentMethod(ctx context.Context, method *models.PaymentMethodAccount) error {
	return r.db.WithContext(ctx).Save(method).Error
}

func (r *repository) FindPaymentMethodByCode(ctx context.Context, code string) (*models.PaymentMethodAccount, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var method models.PaymentMethodAccount
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&method).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &method, nil
}

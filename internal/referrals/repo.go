package referrals

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	"github.com/sweetquest/sweetquest-backend/pkg/enums"
	"github.com/sweetquest/sweetquest-backend/pkg/pagination"
)

// Repository handles order persistence and referral aggregates.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) error
	ListOrders(ctx context.Context, params ListOrdersQuery) ([]models.Order, error)
	ListOrdersByAffiliate(ctx context.Context, affiliateID uuid.UUID) ([]models.Order, error)
	ListReferredOrders(ctx context.Context) ([]models.Order, error)
	FindOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (bool, error)
	ReferralStats(ctx context.Context) (*StatsRow, error)
	CountAffiliates(ctx context.Context) (total int64, active int64, err error)
}

// ListOrdersQuery configures order list queries. The cursor is a keyset
// position: rows strictly older than it are returned.
type ListOrdersQuery struct {
	Status       *enums.OrderStatus
	OnlyReferred bool
	Limit        int
	Cursor       *pagination.Cursor
}

// StatsRow mirrors the get_referral_stats() result set.
type StatsRow struct {
	TotalReferrals    int64            `gorm:"column:total_referrals"`
	TotalRevenue      decimal.Decimal  `gorm:"column:total_revenue"`
	AvgOrderValue     decimal.Decimal  `gorm:"column:avg_order_value"`
	TotalAffiliates   int64            `gorm:"column:total_affiliates"`
	ActiveAffiliates  int64            `gorm:"column:active_affiliates"`
	TopAffiliateID    *uuid.UUID       `gorm:"column:top_affiliate_id"`
	TopAffiliateName  *string          `gorm:"column:top_affiliate_name"`
	TopAffiliateCount *int64           `gorm:"column:top_affiliate_count"`
	TopAffiliateSales *decimal.Decimal `gorm:"column:top_affiliate_sales"`
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns an orders repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *repository) ListOrders(ctx context.Context, params ListOrdersQuery) ([]models.Order, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Preload("Affiliate")
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.OnlyReferred {
		query = query.Where("affiliate_id IS NOT NULL")
	}
	if params.Cursor != nil {
		query = query.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			params.Cursor.CreatedAt, params.Cursor.CreatedAt, params.Cursor.ID,
		)
	}
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}

	var orders []models.Order
	if err := query.Order("created_at DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) ListOrdersByAffiliate(ctx context.Context, affiliateID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Where("affiliate_id = ?", affiliateID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) ListReferredOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Preload("Affiliate").
		Where("affiliate_id IS NOT NULL").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) FindOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("Affiliate").
		Where("id = ?", id).
		First(&order).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) CountAffiliates(ctx context.Context) (int64, int64, error) {
	var total, active int64
	if err := r.db.WithContext(ctx).
		Model(&models.Affiliate{}).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Affiliate{}).
		Where("status = ?", enums.AffiliateStatusActive).
		Count(&active).Error; err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

func (r *repository) ReferralStats(ctx context.Context) (*StatsRow, error) {
	var row StatsRow
	if err := r.db.WithContext(ctx).
		Raw("SELECT * FROM get_referral_stats()").
		Scan(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

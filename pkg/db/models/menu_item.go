package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItem is a catalog entry customers can order.
type MenuItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	Description string          `gorm:"column:description;not null;default:''"`
	BasePrice   decimal.Decimal `gorm:"column:base_price;type:numeric(10,2);not null"`
	Category    string          `gorm:"column:category;not null"`
	ImageURL    *string         `gorm:"column:image_url"`
	Available   bool            `gorm:"column:available;not null;default:true"`
	Popular     bool            `gorm:"column:popular;not null;default:false"`

	DiscountPrice     *decimal.Decimal `gorm:"column:discount_price;type:numeric(10,2)"`
	DiscountStartDate *time.Time       `gorm:"column:discount_start_date"`
	DiscountEndDate   *time.Time       `gorm:"column:discount_end_date"`
	DiscountActive    bool             `gorm:"column:discount_active;not null;default:false"`

	Variations []Variation `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`
	AddOns     []AddOn     `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// Variation is a mutually exclusive size/option choice whose price is added
// to the line's unit price.
type Variation struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MenuItemID uuid.UUID       `gorm:"column:menu_item_id;type:uuid;not null"`
	Name       string          `gorm:"column:name;not null"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
}

// AddOn is an additive, repeatable modifier.
type AddOn struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MenuItemID uuid.UUID       `gorm:"column:menu_item_id;type:uuid;not null"`
	Name       string          `gorm:"column:name;not null"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Category   string          `gorm:"column:category;not null;default:''"`
}

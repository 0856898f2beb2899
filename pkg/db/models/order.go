package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sweetquest/sweetquest-backend/pkg/enums"
)

// Order is a persisted customer order. The affiliate reference is weak:
// it attributes the sale but does not own the row.
type Order struct {
	ID            uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerName  string            `gorm:"column:customer_name;not null"`
	ContactNumber string            `gorm:"column:contact_number;not null"`
	ServiceType   enums.ServiceType `gorm:"column:service_type;type:text;not null"`
	Total         decimal.Decimal   `gorm:"column:total;type:numeric(10,2);not null"`
	PaymentMethod *string           `gorm:"column:payment_method"`
	ReferenceNo   *string           `gorm:"column:reference_number"`
	Status        enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pending'"`

	ReferredBy   *string    `gorm:"column:referred_by"`
	ReferralCode *string    `gorm:"column:referral_code"`
	AffiliateID  *uuid.UUID `gorm:"column:affiliate_id;type:uuid"`
	Affiliate    *Affiliate `gorm:"foreignKey:AffiliateID"`

	DeliveryAddress *string `gorm:"column:delivery_address"`
	Landmark        *string `gorm:"column:landmark"`
	PickupTime      *string `gorm:"column:pickup_time"`
	PartySize       *int    `gorm:"column:party_size"`
	DineInTime      *string `gorm:"column:dine_in_time"`
	Notes           *string `gorm:"column:notes"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMethodAccount is a manually settled payment destination shown at
// checkout (GCash, Maya, bank transfer).
type PaymentMethodAccount struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code          string    `gorm:"column:code;not null;uniqueIndex:payment_method_accounts_code_key"`
	Name          string    `gorm:"column:name;not null"`
	AccountName   string    `gorm:"column:account_name;not null"`
	AccountNumber string    `gorm:"column:account_number;not null"`
	QRCodeURL     *string   `gorm:"column:qr_code_url"`
	Enabled       bool      `gorm:"column:enabled;not null;default:true"`
	SortOrder     int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

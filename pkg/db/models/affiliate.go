package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/sweetquest/sweetquest-backend/pkg/enums"
)

// Affiliate is a partner whose referral code attributes orders.
type Affiliate struct {
	ID           uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string                `gorm:"column:name;not null"`
	Email        *string               `gorm:"column:email"`
	Phone        *string               `gorm:"column:phone"`
	ReferralCode string                `gorm:"column:referral_code;not null;uniqueIndex:affiliates_referral_code_key"`
	Status       enums.AffiliateStatus `gorm:"column:status;type:text;not null;default:'active'"`
	Notes        *string               `gorm:"column:notes"`
	CreatedAt    time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

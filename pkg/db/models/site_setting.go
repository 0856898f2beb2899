package models

import (
	"time"

	"github.com/sweetquest/sweetquest-backend/pkg/enums"
)

// SiteSetting is a keyed storefront configuration value.
type SiteSetting struct {
	ID          string            `gorm:"column:id;primaryKey"`
	Value       string            `gorm:"column:value;not null"`
	Type        enums.SettingType `gorm:"column:type;type:text;not null;default:'text'"`
	Description *string           `gorm:"column:description"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
)

// IsOnDiscount reports whether the item's discount applies at the given instant.
// A discount needs the active flag, a discount price, and the instant inside the
// schedule window; a missing bound leaves that side of the window open.
func IsOnDiscount(now time.Time, item models.MenuItem) bool {
	if !item.DiscountActive || item.DiscountPrice == nil {
		return false
	}
	if item.DiscountStartDate != nil && now.Before(*item.DiscountStartDate) {
		return false
	}
	if item.DiscountEndDate != nil && now.After(*item.DiscountEndDate) {
		return false
	}
	return true
}

// EffectivePrice returns the price a customer pays for the base item right now:
// the discount price while a discount applies, otherwise the base price.
func EffectivePrice(now time.Time, item models.MenuItem) decimal.Decimal {
	if IsOnDiscount(now, item) {
		return *item.DiscountPrice
	}
	return item.BasePrice
}

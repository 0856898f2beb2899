package cart

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineAddOn is an add-on selection frozen onto a cart line.
type LineAddOn struct {
	AddOnID  uuid.UUID       `json:"add_on_id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// Line is a single cart entry. Identity is the composite of item, variation
// and the exact add-on selection; the unit price is frozen when the line is
// first added.
type Line struct {
	Key           string          `json:"key"`
	MenuItemID    uuid.UUID       `json:"menu_item_id"`
	Name          string          `json:"name"`
	VariationID   *uuid.UUID      `json:"variation_id,omitempty"`
	VariationName string          `json:"variation_name,omitempty"`
	AddOns        []LineAddOn     `json:"add_ons,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
}

// Total returns the line total: unit price times quantity.
func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is a visitor's cart addressed by an opaque token.
type Cart struct {
	Token     string    `json:"token"`
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalItems sums the quantities across all lines.
func (c *Cart) TotalItems() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice sums the line totals. An empty cart totals zero.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Total())
	}
	return total
}

// FindLine returns the line with the given key, or nil.
func (c *Cart) FindLine(key string) *Line {
	for i := range c.Lines {
		if c.Lines[i].Key == key {
			return &c.Lines[i]
		}
	}
	return nil
}

// LineKey derives the composite identity for a cart line: menu item,
// variation (or "base"), and the sorted add-on selection with quantities.
// Two selections that differ only in add-on order share a key.
func LineKey(menuItemID uuid.UUID, variationID *uuid.UUID, addOns []LineAddOn) string {
	variation := "base"
	if variationID != nil {
		variation = variationID.String()
	}

	parts := make([]string, 0, len(addOns))
	for _, addOn := range addOns {
		parts = append(parts, fmt.Sprintf("%s:%d", addOn.AddOnID, addOn.Quantity))
	}
	sort.Strings(parts)

	return fmt.Sprintf("%s|%s|%s", menuItemID, variation, strings.Join(parts, ","))
}

package cart

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sweetquest/sweetquest-backend/internal/catalog"
	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
)

// Service manages visitor carts.
type Service interface {
	GetCart(ctx context.Context, token string) (*Cart, error)
	AddItem(ctx context.Context, token string, input AddItemInput) (*Cart, error)
	SetQuantity(ctx context.Context, token, lineKey string, quantity int) (*Cart, error)
	RemoveLine(ctx context.Context, token, lineKey string) (*Cart, error)
	Clear(ctx context.Context, token string) error
}

// AddOnSelection picks an add-on and how many of it.
type AddOnSelection struct {
	AddOnID  uuid.UUID
	Quantity int
}

// AddItemInput captures one item configuration to add to a cart.
type AddItemInput struct {
	MenuItemID  uuid.UUID
	VariationID *uuid.UUID
	AddOns      []AddOnSelection
	Quantity    int
}

type menuItemLoader interface {
	FindMenuItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Store Store
	Menu  menuItemLoader
	Now   func() time.Time
}

type service struct {
	store Store
	menu  menuItemLoader
	now   func() time.Time
}

// NewService constructs a cart service.
func NewService(params ServiceParams) (*service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart store required")
	}
	if params.Menu == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "menu loader required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{store: params.Store, menu: params.Menu, now: now}, nil
}

// GetCart returns the cart stored at token. An unknown or expired token
// yields an empty cart under the same token.
func (s *service) GetCart(ctx context.Context, token string) (*Cart, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	stored, err := s.store.Get(ctx, token)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if stored == nil {
		return &Cart{Token: token, Lines: []Line{}}, nil
	}
	return stored, nil
}

// AddItem freezes the current effective price onto a line and merges it into
// the cart. An empty token starts a new cart. Lines with the same item,
// variation and add-on selection merge by summing quantities; the unit price
// frozen on the first add wins.
func (s *service) AddItem(ctx context.Context, token string, input AddItemInput) (*Cart, error) {
	if input.MenuItemID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item id is required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	item, err := s.menu.FindMenuItemByID(ctx, input.MenuItemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find menu item")
	}
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
	}
	if !item.Available {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item is not available")
	}

	line, err := buildLine(s.now().UTC(), *item, input)
	if err != nil {
		return nil, err
	}

	if token == "" {
		token = uuid.NewString()
	}
	current, err := s.GetCart(ctx, token)
	if err != nil {
		return nil, err
	}

	if existing := current.FindLine(line.Key); existing != nil {
		existing.Quantity += line.Quantity
	} else {
		current.Lines = append(current.Lines, *line)
	}
	current.UpdatedAt = s.now().UTC()

	if err := s.store.Put(ctx, current); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return current, nil
}

// SetQuantity replaces a line's quantity. Zero or negative removes the line.
func (s *service) SetQuantity(ctx context.Context, token, lineKey string, quantity int) (*Cart, error) {
	if quantity <= 0 {
		return s.RemoveLine(ctx, token, lineKey)
	}

	current, err := s.GetCart(ctx, token)
	if err != nil {
		return nil, err
	}

	line := current.FindLine(lineKey)
	if line == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	line.Quantity = quantity
	current.UpdatedAt = s.now().UTC()

	if err := s.store.Put(ctx, current); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return current, nil
}

// RemoveLine drops a line from the cart.
func (s *service) RemoveLine(ctx context.Context, token, lineKey string) (*Cart, error) {
	current, err := s.GetCart(ctx, token)
	if err != nil {
		return nil, err
	}

	kept := current.Lines[:0]
	found := false
	for _, line := range current.Lines {
		if line.Key == lineKey {
			found = true
			continue
		}
		kept = append(kept, line)
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	current.Lines = kept
	current.UpdatedAt = s.now().UTC()

	if err := s.store.Put(ctx, current); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return current, nil
}

// Clear discards the cart stored at token.
func (s *service) Clear(ctx context.Context, token string) error {
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	if err := s.store.Delete(ctx, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

// buildLine resolves the variation and add-ons against the item and freezes
// the unit price: effective base price plus variation plus add-on subtotals.
func buildLine(now time.Time, item models.MenuItem, input AddItemInput) (*Line, error) {
	unitPrice := catalog.EffectivePrice(now, item)

	line := &Line{
		MenuItemID: item.ID,
		Name:       item.Name,
		Quantity:   input.Quantity,
	}

	if input.VariationID != nil {
		variation := findVariation(item, *input.VariationID)
		if variation == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "variation does not belong to menu item")
		}
		line.VariationID = input.VariationID
		line.VariationName = variation.Name
		unitPrice = unitPrice.Add(variation.Price)
	}

	for _, selection := range input.AddOns {
		if selection.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "add-on quantity must be positive")
		}
		addOn := findAddOn(item, selection.AddOnID)
		if addOn == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "add-on does not belong to menu item")
		}
		line.AddOns = append(line.AddOns, LineAddOn{
			AddOnID:  addOn.ID,
			Name:     addOn.Name,
			Price:    addOn.Price,
			Quantity: selection.Quantity,
		})
		unitPrice = unitPrice.Add(addOn.Price.Mul(decimal.NewFromInt(int64(selection.Quantity))))
	}

	line.UnitPrice = unitPrice
	line.Key = LineKey(line.MenuItemID, line.VariationID, line.AddOns)
	return line, nil
}

func findVariation(item models.MenuItem, id uuid.UUID) *models.Variation {
	for i := range item.Variations {
		if item.Variations[i].ID == id {
			return &item.Variations[i]
		}
	}
	return nil
}

func findAddOn(item models.MenuItem, id uuid.UUID) *models.AddOn {
	for i := range item.AddOns {
		if item.AddOns[i].ID == id {
			return &item.AddOns[i]
		}
	}
	return nil
}

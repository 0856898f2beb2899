package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
)

// Service exposes the public menu and the admin catalog operations.
type Service interface {
	ListMenu(ctx context.Context, params ListMenuParams) ([]MenuItemView, error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (*MenuItemView, error)
	CreateMenuItem(ctx context.Context, input CreateMenuItemInput) (*MenuItemView, error)
	UpdateMenuItem(ctx context.Context, id uuid.UUID, input UpdateMenuItemInput) (*MenuItemView, error)
	DeleteMenuItem(ctx context.Context, id uuid.UUID) error
}

// ListMenuParams configures a menu listing.
type ListMenuParams struct {
	Category      string
	IncludeHidden bool
	OnlyPopular   bool
}

// MenuItemView is a menu item decorated with its current effective price.
type MenuItemView struct {
	Item           models.MenuItem
	EffectivePrice decimal.Decimal
	OnDiscount     bool
}

// VariationInput describes one size/option choice on a new menu item.
type VariationInput struct {
	Name  string
	Price decimal.Decimal
}

// AddOnInput describes one add-on offered with a new menu item.
type AddOnInput struct {
	Name     string
	Price    decimal.Decimal
	Category string
}

// CreateMenuItemInput captures a new catalog entry.
type CreateMenuItemInput struct {
	Name        string
	Description string
	Category    string
	BasePrice   decimal.Decimal
	ImageURL    *string
	Available   bool
	Popular     bool

	DiscountPrice     *decimal.Decimal
	DiscountStartDate *time.Time
	DiscountEndDate   *time.Time
	DiscountActive    bool

	Variations []VariationInput
	AddOns     []AddOnInput
}

// UpdateMenuItemInput applies a partial update; nil fields are untouched.
// Variations and add-ons are managed through their own rows, not here.
type UpdateMenuItemInput struct {
	Name        *string
	Description *string
	Category    *string
	BasePrice   *decimal.Decimal
	ImageURL    *string
	Available   *bool
	Popular     *bool

	DiscountPrice     *decimal.Decimal
	DiscountStartDate *time.Time
	DiscountEndDate   *time.Time
	DiscountActive    *bool
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Repo Repository
	Now  func() time.Time
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs a catalog service.
func NewService(params ServiceParams) (*service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog repo required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, now: now}, nil
}

// ListMenu returns menu items with effective pricing applied.
func (s *service) ListMenu(ctx context.Context, params ListMenuParams) ([]MenuItemView, error) {
	query := ListMenuItemsQuery{
		OnlyAvailable: !params.IncludeHidden,
		OnlyPopular:   params.OnlyPopular,
	}
	if category := strings.TrimSpace(params.Category); category != "" {
		query.Category = &category
	}

	items, err := s.repo.ListMenuItems(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list menu items")
	}

	now := s.now().UTC()
	views := make([]MenuItemView, 0, len(items))
	for _, item := range items {
		views = append(views, MenuItemView{
			Item:           item,
			EffectivePrice: EffectivePrice(now, item),
			OnDiscount:     IsOnDiscount(now, item),
		})
	}
	return views, nil
}

// CreateMenuItem adds a catalog entry with its variations and add-ons.
func (s *service) CreateMenuItem(ctx context.Context, input CreateMenuItemInput) (*MenuItemView, error) {
	name := strings.TrimSpace(input.Name)
	category := strings.TrimSpace(input.Category)
	switch {
	case name == "":
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item name is required")
	case category == "":
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item category is required")
	case !input.BasePrice.IsPositive():
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "base price must be positive")
	}

	item := models.MenuItem{
		Name:              name,
		Description:       strings.TrimSpace(input.Description),
		Category:          category,
		BasePrice:         input.BasePrice,
		ImageURL:          input.ImageURL,
		Available:         input.Available,
		Popular:           input.Popular,
		DiscountPrice:     input.DiscountPrice,
		DiscountStartDate: input.DiscountStartDate,
		DiscountEndDate:   input.DiscountEndDate,
		DiscountActive:    input.DiscountActive,
	}
	for _, v := range input.Variations {
		item.Variations = append(item.Variations, models.Variation{Name: v.Name, Price: v.Price})
	}
	for _, a := range input.AddOns {
		item.AddOns = append(item.AddOns, models.AddOn{Name: a.Name, Price: a.Price, Category: a.Category})
	}

	if err := s.repo.CreateMenuItem(ctx, &item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create menu item")
	}

	now := s.now().UTC()
	return &MenuItemView{
		Item:           item,
		EffectivePrice: EffectivePrice(now, item),
		OnDiscount:     IsOnDiscount(now, item),
	}, nil
}

// UpdateMenuItem applies a partial update to a catalog entry.
func (s *service) UpdateMenuItem(ctx context.Context, id uuid.UUID, input UpdateMenuItemInput) (*MenuItemView, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item id is required")
	}

	item, err := s.repo.FindMenuItemByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find menu item")
	}
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item name cannot be empty")
		}
		item.Name = name
	}
	if input.Description != nil {
		item.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		category := strings.TrimSpace(*input.Category)
		if category == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item category cannot be empty")
		}
		item.Category = category
	}
	if input.BasePrice != nil {
		if !input.BasePrice.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "base price must be positive")
		}
		item.BasePrice = *input.BasePrice
	}
	if input.ImageURL != nil {
		item.ImageURL = input.ImageURL
	}
	if input.Available != nil {
		item.Available = *input.Available
	}
	if input.Popular != nil {
		item.Popular = *input.Popular
	}
	if input.DiscountPrice != nil {
		item.DiscountPrice = input.DiscountPrice
	}
	if input.DiscountStartDate != nil {
		item.DiscountStartDate = input.DiscountStartDate
	}
	if input.DiscountEndDate != nil {
		item.DiscountEndDate = input.DiscountEndDate
	}
	if input.DiscountActive != nil {
		item.DiscountActive = *input.DiscountActive
	}

	if err := s.repo.SaveMenuItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save menu item")
	}

	now := s.now().UTC()
	return &MenuItemView{
		Item:           *item,
		EffectivePrice: EffectivePrice(now, *item),
		OnDiscount:     IsOnDiscount(now, *item),
	}, nil
}

// DeleteMenuItem removes a catalog entry; variations and add-ons cascade.
func (s *service) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "menu item id is required")
	}
	deleted, err := s.repo.DeleteMenuItem(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete menu item")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
	}
	return nil
}

// GetMenuItem returns a single menu item with effective pricing applied.
func (s *service) GetMenuItem(ctx context.Context, id uuid.UUID) (*MenuItemView, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "menu item id is required")
	}

	item, err := s.repo.FindMenuItemByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find menu item")
	}
	if item == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
	}

	now := s.now().UTC()
	return &MenuItemView{
		Item:           *item,
		EffectivePrice: EffectivePrice(now, *item),
		OnDiscount:     IsOnDiscount(now, *item),
	}, nil
}

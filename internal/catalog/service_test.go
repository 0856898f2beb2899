package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
)

type stubRepo struct {
	listFn   func(ctx context.Context, params ListMenuItemsQuery) ([]models.MenuItem, error)
	findFn   func(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	createFn func(ctx context.Context, item *models.MenuItem) error
	saveFn   func(ctx context.Context, item *models.MenuItem) error
	deleteFn func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (s *stubRepo) ListMenuItems(ctx context.Context, params ListMenuItemsQuery) ([]models.MenuItem, error) {
	if s.listFn != nil {
		return s.listFn(ctx, params)
	}
	return nil, nil
}

func (s *stubRepo) FindMenuItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	if s.findFn != nil {
		return s.findFn(ctx, id)
	}
	return nil, nil
}

func (s *stubRepo) CreateMenuItem(ctx context.Context, item *models.MenuItem) error {
	if s.createFn != nil {
		return s.createFn(ctx, item)
	}
	return nil
}

func (s *stubRepo) SaveMenuItem(ctx context.Context, item *models.MenuItem) error {
	if s.saveFn != nil {
		return s.saveFn(ctx, item)
	}
	return nil
}

func (s *stubRepo) DeleteMenuItem(ctx context.Context, id uuid.UUID) (bool, error) {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return false, nil
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(ServiceParams{}); err == nil {
		t.Fatal("expected error when repo is missing")
	}
}

func TestListMenuAppliesDiscountPricing(t *testing.T) {
	now := time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC)
	repo := &stubRepo{
		listFn: func(ctx context.Context, params ListMenuItemsQuery) ([]models.MenuItem, error) {
			if !params.OnlyAvailable {
				t.Fatal("expected only available items by default")
			}
			return []models.MenuItem{
				{
					Name:           "Ube Cheesecake",
					BasePrice:      decimal.RequireFromString("250.00"),
					DiscountPrice:  decimalPtr("199.00"),
					DiscountActive: true,
				},
				{
					Name:      "Leche Flan",
					BasePrice: decimal.RequireFromString("120.00"),
				},
			}, nil
		},
	}

	svc, err := NewService(ServiceParams{Repo: repo, Now: func() time.Time { return now }})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	views, err := svc.ListMenu(context.Background(), ListMenuParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	if !views[0].EffectivePrice.Equal(decimal.RequireFromString("199.00")) {
		t.Fatalf("expected discounted price, got %s", views[0].EffectivePrice)
	}
	if !views[0].OnDiscount {
		t.Fatal("expected first item on discount")
	}
	if !views[1].EffectivePrice.Equal(decimal.RequireFromString("120.00")) {
		t.Fatalf("expected base price, got %s", views[1].EffectivePrice)
	}
}

func TestListMenuForwardsCategoryFilter(t *testing.T) {
	var captured ListMenuItemsQuery
	repo := &stubRepo{
		listFn: func(ctx context.Context, params ListMenuItemsQuery) ([]models.MenuItem, error) {
			captured = params
			return nil, nil
		},
	}

	svc, _ := NewService(ServiceParams{Repo: repo})
	if _, err := svc.ListMenu(context.Background(), ListMenuParams{Category: " cakes "}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Category == nil || *captured.Category != "cakes" {
		t.Fatal("expected trimmed category filter to be forwarded")
	}
}

func TestCreateMenuItemPersistsChildren(t *testing.T) {
	var created *models.MenuItem
	repo := &stubRepo{
		createFn: func(ctx context.Context, item *models.MenuItem) error {
			created = item
			return nil
		},
	}

	svc, _ := NewService(ServiceParams{Repo: repo})
	view, err := svc.CreateMenuItem(context.Background(), CreateMenuItemInput{
		Name:      " Halo-Halo Supreme ",
		Category:  "ice cream",
		BasePrice: decimal.RequireFromString("150.00"),
		Available: true,
		Variations: []VariationInput{
			{Name: "Large", Price: decimal.RequireFromString("30.00")},
		},
		AddOns: []AddOnInput{
			{Name: "Extra Leche Flan", Price: decimal.RequireFromString("25.00"), Category: "toppings"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected item to be created")
	}
	if created.Name != "Halo-Halo Supreme" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if len(created.Variations) != 1 || len(created.AddOns) != 1 {
		t.Fatal("expected variation and add-on rows")
	}
	if !view.EffectivePrice.Equal(decimal.RequireFromString("150.00")) {
		t.Fatalf("unexpected effective price %s", view.EffectivePrice)
	}
}

func TestCreateMenuItemRejectsNonPositivePrice(t *testing.T) {
	svc, _ := NewService(ServiceParams{Repo: &stubRepo{}})
	_, err := svc.CreateMenuItem(context.Background(), CreateMenuItemInput{
		Name:      "Freebie",
		Category:  "cakes",
		BasePrice: decimal.Zero,
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateMenuItemPartial(t *testing.T) {
	id := uuid.New()
	var saved *models.MenuItem
	repo := &stubRepo{
		findFn: func(ctx context.Context, gotID uuid.UUID) (*models.MenuItem, error) {
			return &models.MenuItem{
				ID:        id,
				Name:      "Leche Flan",
				Category:  "classics",
				BasePrice: decimal.RequireFromString("120.00"),
				Available: true,
			}, nil
		},
		saveFn: func(ctx context.Context, item *models.MenuItem) error {
			saved = item
			return nil
		},
	}

	svc, _ := NewService(ServiceParams{Repo: repo})
	hidden := false
	view, err := svc.UpdateMenuItem(context.Background(), id, UpdateMenuItemInput{Available: &hidden})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil || saved.Available {
		t.Fatal("expected availability to be switched off")
	}
	if saved.Name != "Leche Flan" {
		t.Fatalf("untouched field changed: %q", saved.Name)
	}
	if view.Item.ID != id {
		t.Fatal("expected updated item in view")
	}
}

func TestDeleteMenuItemNotFound(t *testing.T) {
	svc, _ := NewService(ServiceParams{Repo: &stubRepo{}})
	err := svc.DeleteMenuItem(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected not found error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestGetMenuItemNotFound(t *testing.T) {
	svc, _ := NewService(ServiceParams{Repo: &stubRepo{}})
	_, err := svc.GetMenuItem(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error for missing item")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestGetMenuItemRequiresID(t *testing.T) {
	svc, _ := NewService(ServiceParams{Repo: &stubRepo{}})
	_, err := svc.GetMenuItem(context.Background(), uuid.Nil)
	if err == nil {
		t.Fatal("expected error for nil id")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
)

type stubMenu struct {
	items map[uuid.UUID]*models.MenuItem
}

func (s *stubMenu) FindMenuItemByID(_ context.Context, id uuid.UUID) (*models.MenuItem, error) {
	return s.items[id], nil
}

func fixtureItem() *models.MenuItem {
	itemID := uuid.New()
	return &models.MenuItem{
		ID:        itemID,
		Name:      "Ube Cheesecake",
		BasePrice: decimal.RequireFromString("150.00"),
		Available: true,
		Variations: []models.Variation{
			{ID: uuid.New(), MenuItemID: itemID, Name: "Large", Price: decimal.RequireFromString("20.00")},
		},
		AddOns: []models.AddOn{
			{ID: uuid.New(), MenuItemID: itemID, Name: "Extra Ube", Price: decimal.RequireFromString("10.00")},
		},
	}
}

func newTestService(t *testing.T, items ...*models.MenuItem) Service {
	t.Helper()
	menu := &stubMenu{items: map[uuid.UUID]*models.MenuItem{}}
	for _, item := range items {
		menu.items[item.ID] = item
	}
	svc, err := NewService(ServiceParams{
		Store: NewMemoryStore(time.Hour),
		Menu:  menu,
		Now:   func() time.Time { return time.Date(2025, 9, 10, 12, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestAddItemFreezesConfiguredUnitPrice(t *testing.T) {
	item := fixtureItem()
	svc := newTestService(t, item)

	cart, err := svc.AddItem(context.Background(), "", AddItemInput{
		MenuItemID:  item.ID,
		VariationID: &item.Variations[0].ID,
		AddOns:      []AddOnSelection{{AddOnID: item.AddOns[0].ID, Quantity: 2}},
		Quantity:    2,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.Token == "" {
		t.Fatal("expected a cart token to be minted")
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Lines))
	}

	// 150 base + 20 variation + 2x10 add-on = 190 per unit
	line := cart.Lines[0]
	if !line.UnitPrice.Equal(decimal.RequireFromString("190.00")) {
		t.Fatalf("expected unit price 190.00, got %s", line.UnitPrice)
	}
	if !cart.TotalPrice().Equal(decimal.RequireFromString("380.00")) {
		t.Fatalf("expected cart total 380.00, got %s", cart.TotalPrice())
	}
	if cart.TotalItems() != 2 {
		t.Fatalf("expected 2 items, got %d", cart.TotalItems())
	}
}

func TestAddItemMergesIdenticalConfigurations(t *testing.T) {
	item := fixtureItem()
	svc := newTestService(t, item)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "", AddItemInput{MenuItemID: item.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, err = svc.AddItem(ctx, cart.Token, AddItemInput{MenuItemID: item.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cart.Lines) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(cart.Lines))
	}
	if cart.Lines[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", cart.Lines[0].Quantity)
	}
}

func TestAddItemKeepsDistinctConfigurationsApart(t *testing.T) {
	item := fixtureItem()
	svc := newTestService(t, item)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "", AddItemInput{MenuItemID: item.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cart, err = svc.AddItem(ctx, cart.Token, AddItemInput{
		MenuItemID:  item.ID,
		VariationID: &item.Variations[0].ID,
		Quantity:    1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cart.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Lines))
	}
}

func TestAddItemMergeKeepsFrozenPrice(t *testing.T) {
	item := fixtureItem()
	svc := newTestService(t, item)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "", AddItemInput{MenuItemID: item.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Price changes after the first add must not reprice the existing line.
	item.BasePrice = decimal.RequireFromString("999.00")

	cart, err = svc.AddItem(ctx, cart.Token, AddItemInput{MenuItemID: item.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(cart.Lines))
	}
	if !cart.Lines[0].UnitPrice.Equal(decimal.RequireFromString("150.00")) {
		t.Fatalf("expected frozen unit price 150.00, got %s", cart.Lines[0].UnitPrice)
	}
}

func TestAddItemRejectsForeignVariation(t *testing.T) {
	item := fixtureItem()
	svc := newTestService(t, item)
	foreign := uuid.New()

	_, err := svc.AddItem(context.Background(), "", AddItemInput{
		MenuItemID:  item.ID,
		VariationID: &foreign,
		Quantity:    1,
	})
	if err == nil {
		t.Fatal("expected error for foreign variation")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddItemRejectsUnavailableItem(t *testing.T) {
	item := fixtureItem()
	item.Available = false
	svc := newTestService(t, item)

	_, err := svc.AddItem(context.Background(), "", AddItemInput{MenuItemID: item.ID, Quantity: 1})
	if err == nil {
		t.Fatal("expected error for unavailable item")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	item := fixtureItem()
	svc := newTestService(t, item)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "", AddItemInput{MenuItemID: item.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cart, err = svc.SetQuantity(ctx, cart.Token, cart.Lines[0].Key, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cart.Lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(cart.Lines))
	}
	if !cart.TotalPrice().Equal(decimal.Zero) {
		t.Fatalf("expected zero total, got %s", cart.TotalPrice())
	}
}

func TestSetQuantityUnknownLine(t *testing.T) {
	item := fixtureItem()
	svc := newTestService(t, item)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "", AddItemInput{MenuItemID: item.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.SetQuantity(ctx, cart.Token, "missing-key", 3)
	if err == nil {
		t.Fatal("expected error for unknown line")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestClearDiscardsCart(t *testing.T) {
	item := fixtureItem()
	svc := newTestService(t, item)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "", AddItemInput{MenuItemID: item.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Clear(ctx, cart.Token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reloaded, err := svc.GetCart(ctx, cart.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reloaded.Lines) != 0 {
		t.Fatalf("expected cleared cart, got %d lines", len(reloaded.Lines))
	}
}

func TestLineKeyIgnoresAddOnOrder(t *testing.T) {
	itemID := uuid.New()
	a := LineAddOn{AddOnID: uuid.New(), Quantity: 1}
	b := LineAddOn{AddOnID: uuid.New(), Quantity: 2}

	first := LineKey(itemID, nil, []LineAddOn{a, b})
	second := LineKey(itemID, nil, []LineAddOn{b, a})
	if first != second {
		t.Fatalf("expected identical keys, got %q vs %q", first, second)
	}

	changedQty := LineKey(itemID, nil, []LineAddOn{a, {AddOnID: b.AddOnID, Quantity: 3}})
	if changedQty == first {
		t.Fatal("expected different key when add-on quantity differs")
	}
}

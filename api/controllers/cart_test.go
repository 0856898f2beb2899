package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	cartsvc "github.com/sweetquest/sweetquest-backend/internal/cart"
)

type stubCartService struct {
	record *cartsvc.Cart
	err    error

	gotToken string
	gotInput cartsvc.AddItemInput
	cleared  bool
}

func (s *stubCartService) GetCart(ctx context.Context, token string) (*cartsvc.Cart, error) {
	s.gotToken = token
	return s.record, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, token string, input cartsvc.AddItemInput) (*cartsvc.Cart, error) {
	s.gotToken = token
	s.gotInput = input
	return s.record, s.err
}

func (s *stubCartService) SetQuantity(ctx context.Context, token, lineKey string, quantity int) (*cartsvc.Cart, error) {
	s.gotToken = token
	return s.record, s.err
}

func (s *stubCartService) RemoveLine(ctx context.Context, token, lineKey string) (*cartsvc.Cart, error) {
	s.gotToken = token
	return s.record, s.err
}

func (s *stubCartService) Clear(ctx context.Context, token string) error {
	s.gotToken = token
	s.cleared = true
	return s.err
}

func testCart(token string) *cartsvc.Cart {
	return &cartsvc.Cart{
		Token: token,
		Lines: []cartsvc.Line{
			{
				Key:        "line-1",
				MenuItemID: uuid.New(),
				Name:       "Halo-Halo",
				UnitPrice:  decimal.NewFromInt(150),
				Quantity:   2,
			},
		},
	}
}

func TestCartAddItemMintsTokenHeader(t *testing.T) {
	svc := &stubCartService{record: testCart("cart-token-1")}
	handler := CartAddItem(svc, nil)

	body := strings.NewReader(`{"menu_item_id":"` + uuid.NewString() + `","quantity":2}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if resp.Header().Get("X-Cart-Token") != "cart-token-1" {
		t.Fatalf("expected cart token header, got %q", resp.Header().Get("X-Cart-Token"))
	}
	if svc.gotToken != "" {
		t.Fatalf("expected empty inbound token, got %q", svc.gotToken)
	}
	if svc.gotInput.Quantity != 2 {
		t.Fatalf("unexpected quantity: %d", svc.gotInput.Quantity)
	}

	var envelope struct {
		Data cartResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.TotalItems != 2 {
		t.Fatalf("unexpected total items: %d", envelope.Data.TotalItems)
	}
	if !envelope.Data.TotalPrice.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("unexpected total price: %s", envelope.Data.TotalPrice)
	}
}

func TestCartAddItemRejectsZeroQuantity(t *testing.T) {
	handler := CartAddItem(&stubCartService{}, nil)

	body := strings.NewReader(`{"menu_item_id":"` + uuid.NewString() + `","quantity":0}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", body)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartFetchRequiresToken(t *testing.T) {
	handler := CartFetch(&stubCartService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartFetchPassesHeaderToken(t *testing.T) {
	svc := &stubCartService{record: testCart("cart-token-2")}
	handler := CartFetch(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Cart-Token", "cart-token-2")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.gotToken != "cart-token-2" {
		t.Fatalf("unexpected token: %q", svc.gotToken)
	}
}

func TestCartClear(t *testing.T) {
	svc := &stubCartService{}
	handler := CartClear(svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil)
	req.Header.Set("X-Cart-Token", "cart-token-3")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !svc.cleared {
		t.Fatal("expected clear to reach the service")
	}
}

package checkout

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sweetquest/sweetquest-backend/internal/cart"
	"github.com/sweetquest/sweetquest-backend/internal/referrals"
	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	"github.com/sweetquest/sweetquest-backend/pkg/enums"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
	"github.com/sweetquest/sweetquest-backend/pkg/logger"
)

type stubCarts struct {
	carts   map[string]*cart.Cart
	cleared []string
}

func (s *stubCarts) GetCart(_ context.Context, token string) (*cart.Cart, error) {
	if c, ok := s.carts[token]; ok {
		return c, nil
	}
	return &cart.Cart{Token: token, Lines: []cart.Line{}}, nil
}

func (s *stubCarts) Clear(_ context.Context, token string) error {
	s.cleared = append(s.cleared, token)
	delete(s.carts, token)
	return nil
}

type stubOrders struct {
	created *referrals.CreateOrderInput
	err     error
}

func (s *stubOrders) CreateOrder(_ context.Context, input referrals.CreateOrderInput) (*models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = &input
	return &models.Order{ID: uuid.New(), Total: input.Total, Status: enums.OrderStatusPending}, nil
}

type stubResolver struct {
	resolution *referrals.Resolution
	cleared    []string
}

func (s *stubResolver) Resolve(_ context.Context, sessionID, code string) (*referrals.Resolution, error) {
	if s.resolution != nil {
		return s.resolution, nil
	}
	return &referrals.Resolution{}, nil
}

func (s *stubResolver) Clear(_ context.Context, sessionID string) error {
	s.cleared = append(s.cleared, sessionID)
	return nil
}

type stubPaymentMethods struct {
	methods map[string]*models.PaymentMethodAccount
}

func (s *stubPaymentMethods) FindEnabledByCode(_ context.Context, code string) (*models.PaymentMethodAccount, error) {
	return s.methods[code], nil
}

func gcashMethods() *stubPaymentMethods {
	return &stubPaymentMethods{methods: map[string]*models.PaymentMethodAccount{
		"gcash": {Code: "gcash", Name: "GCash", Enabled: true},
	}}
}

func fixtureCart(token string) *cart.Cart {
	return &cart.Cart{
		Token: token,
		Lines: []cart.Line{
			{
				Key:           "line-1",
				MenuItemID:    uuid.New(),
				Name:          "Ube Cheesecake",
				VariationName: "Large",
				UnitPrice:     decimal.RequireFromString("190.00"),
				Quantity:      2,
			},
		},
	}
}

type serviceFixture struct {
	carts    *stubCarts
	orders   *stubOrders
	resolver *stubResolver
	methods  *stubPaymentMethods
	service  Service
}

func newFixture(t *testing.T) *serviceFixture {
	t.Helper()
	f := &serviceFixture{
		carts:    &stubCarts{carts: map[string]*cart.Cart{"tok": fixtureCart("tok")}},
		orders:   &stubOrders{},
		resolver: &stubResolver{},
		methods:  gcashMethods(),
	}
	svc, err := NewService(ServiceParams{
		Carts:           f.carts,
		Orders:          f.orders,
		Referrals:       f.resolver,
		PaymentMethods:  f.methods,
		Logger:          logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
		MessengerPageID: "1234567890",
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	f.service = svc
	return f
}

func submitInput() SubmitInput {
	return SubmitInput{
		CartToken:         "tok",
		SessionID:         "sess-1",
		Details:           validDeliveryDetails(),
		PaymentMethodCode: "gcash",
	}
}

func TestSubmitBuildsMessengerHandoff(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Total.Equal(decimal.RequireFromString("380.00")) {
		t.Fatalf("expected total 380.00, got %s", result.Total)
	}
	if !result.OrderPersisted || result.Order == nil {
		t.Fatal("expected order to persist")
	}
	if !strings.HasPrefix(result.MessengerURL, "https://m.me/1234567890?text=") {
		t.Fatalf("unexpected messenger url %q", result.MessengerURL)
	}
	if !strings.Contains(result.Summary, "Ube Cheesecake (Large)") {
		t.Fatalf("expected item in summary, got:\n%s", result.Summary)
	}
	if !strings.Contains(result.Summary, "TOTAL: ₱380.00") {
		t.Fatalf("expected total in summary, got:\n%s", result.Summary)
	}
	if !strings.Contains(result.Summary, "Payment: GCash") {
		t.Fatalf("expected payment method in summary, got:\n%s", result.Summary)
	}

	if len(f.carts.cleared) != 1 || f.carts.cleared[0] != "tok" {
		t.Fatal("expected cart to be cleared after submission")
	}
	if len(f.resolver.cleared) != 1 || f.resolver.cleared[0] != "sess-1" {
		t.Fatal("expected referral attribution to be cleared after submission")
	}
}

func TestSubmitOrderTotalMatchesCart(t *testing.T) {
	f := newFixture(t)

	result, err := f.service.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.orders.created == nil {
		t.Fatal("expected order input to be captured")
	}
	if !f.orders.created.Total.Equal(result.Total) {
		t.Fatalf("order total %s does not match cart total %s", f.orders.created.Total, result.Total)
	}
}

func TestSubmitAttachesReferralAttribution(t *testing.T) {
	f := newFixture(t)
	affiliateID := uuid.New()
	f.resolver.resolution = &referrals.Resolution{
		Affiliate: &models.Affiliate{ID: affiliateID, Name: "Maria"},
		Code:      "maria1",
	}

	result, err := f.service.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.orders.created.AffiliateID == nil || *f.orders.created.AffiliateID != affiliateID {
		t.Fatal("expected affiliate attribution on the order")
	}
	if f.orders.created.ReferralCode == nil || *f.orders.created.ReferralCode != "maria1" {
		t.Fatal("expected referral code on the order")
	}
	if !strings.Contains(result.Summary, "Referred by: Maria (maria1)") {
		t.Fatalf("expected referral in summary, got:\n%s", result.Summary)
	}
}

func TestSubmitBlocksEmptyCart(t *testing.T) {
	f := newFixture(t)
	delete(f.carts.carts, "tok")

	_, err := f.service.Submit(context.Background(), submitInput())
	if err == nil {
		t.Fatal("expected error for empty cart")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitBlocksInvalidDetails(t *testing.T) {
	f := newFixture(t)
	input := submitInput()
	input.Details.DeliveryAddress = ""

	_, err := f.service.Submit(context.Background(), input)
	if err == nil {
		t.Fatal("expected error for missing delivery address")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitRejectsDisabledPaymentMethod(t *testing.T) {
	f := newFixture(t)
	input := submitInput()
	input.PaymentMethodCode = "maya"

	_, err := f.service.Submit(context.Background(), input)
	if err == nil {
		t.Fatal("expected error for unknown payment method")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitSurvivesOrderPersistenceFailure(t *testing.T) {
	f := newFixture(t)
	f.orders.err = fmt.Errorf("database down")

	result, err := f.service.Submit(context.Background(), submitInput())
	if err != nil {
		t.Fatalf("submission must survive a failed order write, got %v", err)
	}
	if result.OrderPersisted {
		t.Fatal("expected OrderPersisted=false")
	}
	if result.Order != nil {
		t.Fatal("expected no order on failed persistence")
	}
	if result.MessengerURL == "" {
		t.Fatal("expected messenger handoff regardless of persistence")
	}
}

package checkout

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/sweetquest/sweetquest-backend/internal/cart"
	"github.com/sweetquest/sweetquest-backend/internal/referrals"
	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	"github.com/sweetquest/sweetquest-backend/pkg/enums"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
	"github.com/sweetquest/sweetquest-backend/pkg/logger"
)

// Service turns a cart plus customer details into a submitted order.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error)
}

// SubmitInput captures one checkout submission.
type SubmitInput struct {
	CartToken         string
	SessionID         string
	Details           Details
	PaymentMethodCode string
	ReferenceNo       string
}

// SubmitResult is the submission outcome. OrderPersisted is false when the
// database write failed; the Messenger handoff still proceeds so the store
// never loses a sale to an outage.
type SubmitResult struct {
	Order          *models.Order
	OrderPersisted bool
	Total          decimal.Decimal
	Summary        string
	MessengerURL   string
}

type cartManager interface {
	GetCart(ctx context.Context, token string) (*cart.Cart, error)
	Clear(ctx context.Context, token string) error
}

type orderCreator interface {
	CreateOrder(ctx context.Context, input referrals.CreateOrderInput) (*models.Order, error)
}

type referralResolver interface {
	Resolve(ctx context.Context, sessionID, code string) (*referrals.Resolution, error)
	Clear(ctx context.Context, sessionID string) error
}

type paymentMethodLoader interface {
	FindEnabledByCode(ctx context.Context, code string) (*models.PaymentMethodAccount, error)
}

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	Carts           cartManager
	Orders          orderCreator
	Referrals       referralResolver
	PaymentMethods  paymentMethodLoader
	Logger          *logger.Logger
	MessengerPageID string
}

type service struct {
	carts          cartManager
	orders         orderCreator
	referrals      referralResolver
	paymentMethods paymentMethodLoader
	logg           *logger.Logger
	pageID         string

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewService constructs a checkout service.
func NewService(params ServiceParams) (*service, error) {
	if params.Carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart manager required")
	}
	if params.Orders == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "order creator required")
	}
	if params.Referrals == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "referral resolver required")
	}
	if params.PaymentMethods == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payment method loader required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	if strings.TrimSpace(params.MessengerPageID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "messenger page id required")
	}

	return &service{
		carts:          params.Carts,
		orders:         params.Orders,
		referrals:      params.Referrals,
		paymentMethods: params.PaymentMethods,
		logg:           params.Logger,
		pageID:         strings.TrimSpace(params.MessengerPageID),
		inFlight:       map[string]struct{}{},
	}, nil
}

// Submit validates the details, freezes the cart total into an order, and
// returns the Messenger deep link. A second submission for the same cart
// while one is running is rejected.
func (s *service) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	token := strings.TrimSpace(input.CartToken)
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}

	if !s.acquire(token) {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "checkout already in progress for this cart")
	}
	defer s.release(token)

	if err := input.Details.Validate(); err != nil {
		return nil, err
	}

	current, err := s.carts.GetCart(ctx, token)
	if err != nil {
		return nil, err
	}
	if len(current.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	method, err := s.resolvePaymentMethod(ctx, input.PaymentMethodCode)
	if err != nil {
		return nil, err
	}

	resolution := s.resolveReferral(ctx, input.SessionID)
	total := current.TotalPrice()

	summary := BuildSummary(SummaryInput{
		Details:           input.Details,
		Cart:              current,
		PaymentMethodName: method.Name,
		ReferredByName:    referredByName(resolution),
		ReferralCode:      referralCode(resolution),
	})

	result := &SubmitResult{
		Total:        total,
		Summary:      summary,
		MessengerURL: MessengerURL(s.pageID, summary),
	}

	order, err := s.orders.CreateOrder(ctx, s.buildOrderInput(input, method, resolution, total))
	if err != nil {
		// The Messenger handoff is the source of truth for the store; a
		// failed database write must not block the sale.
		errCtx := s.logg.WithField(ctx, "error", err.Error())
		s.logg.Error(errCtx, "order persistence failed during checkout", err)
	} else {
		result.Order = order
		result.OrderPersisted = true
	}

	if err := s.carts.Clear(ctx, token); err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "failed to clear cart after checkout")
	}
	if input.SessionID != "" {
		if err := s.referrals.Clear(ctx, input.SessionID); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "failed to clear referral attribution after checkout")
		}
	}

	return result, nil
}

func (s *service) resolvePaymentMethod(ctx context.Context, code string) (*models.PaymentMethodAccount, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment method is required")
	}
	method, err := s.paymentMethods.FindEnabledByCode(ctx, code)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find payment method")
	}
	if method == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown or disabled payment method")
	}
	return method, nil
}

// resolveReferral is best effort: attribution never blocks a checkout.
func (s *service) resolveReferral(ctx context.Context, sessionID string) *referrals.Resolution {
	if sessionID == "" {
		return nil
	}
	resolution, err := s.referrals.Resolve(ctx, sessionID, "")
	if err != nil {
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "referral resolution failed during checkout")
		return nil
	}
	return resolution
}

func (s *service) buildOrderInput(input SubmitInput, method *models.PaymentMethodAccount, resolution *referrals.Resolution, total decimal.Decimal) referrals.CreateOrderInput {
	d := input.Details
	orderInput := referrals.CreateOrderInput{
		CustomerName:  d.CustomerName,
		ContactNumber: d.ContactNumber,
		ServiceType:   d.ServiceType,
		Total:         total,
		PaymentMethod: &method.Name,
	}

	if ref := strings.TrimSpace(input.ReferenceNo); ref != "" {
		orderInput.ReferenceNo = &ref
	}
	if notes := strings.TrimSpace(d.Notes); notes != "" {
		orderInput.Notes = &notes
	}

	switch d.ServiceType {
	case enums.ServiceTypeDelivery:
		address := d.DeliveryAddress
		orderInput.DeliveryAddress = &address
		if d.Landmark != "" {
			landmark := d.Landmark
			orderInput.Landmark = &landmark
		}
	case enums.ServiceTypePickup:
		pickup := d.PickupTime
		orderInput.PickupTime = &pickup
	case enums.ServiceTypeDineIn:
		partySize := d.PartySize
		orderInput.PartySize = &partySize
		if d.DineInTime != "" {
			dineInTime := d.DineInTime
			orderInput.DineInTime = &dineInTime
		}
	}

	if resolution != nil && resolution.Affiliate != nil {
		affiliateID := resolution.Affiliate.ID
		code := resolution.Code
		name := resolution.Affiliate.Name
		orderInput.AffiliateID = &affiliateID
		orderInput.ReferralCode = &code
		orderInput.ReferredBy = &name
	}

	return orderInput
}

func (s *service) acquire(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[token]; busy {
		return false
	}
	s.inFlight[token] = struct{}{}
	return true
}

func (s *service) release(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, token)
}

func referredByName(resolution *referrals.Resolution) string {
	if resolution == nil || resolution.Affiliate == nil {
		return ""
	}
	return resolution.Affiliate.Name
}

func referralCode(resolution *referrals.Resolution) string {
	if resolution == nil || resolution.Affiliate == nil {
		return ""
	}
	return resolution.Code
}

package paymentmethods

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
)

// Service exposes the payment destinations shown at checkout.
type Service interface {
	ListEnabled(ctx context.Context) ([]models.PaymentMethodAccount, error)
	ListAll(ctx context.Context) ([]models.PaymentMethodAccount, error)
	FindEnabledByCode(ctx context.Context, code string) (*models.PaymentMethodAccount, error)
	UpdateAccount(ctx context.Context, id uuid.UUID, input UpdateAccountInput) (*models.PaymentMethodAccount, error)
}

// UpdateAccountInput applies a partial update; nil fields are untouched.
// The code is fixed at seed time since orders reference it by value.
type UpdateAccountInput struct {
	Name          *string
	AccountName   *string
	AccountNumber *string
	QRCodeURL     *string
	Enabled       *bool
	SortOrder     *int
}

// ServiceParams groups dependencies for the payment method service.
type ServiceParams struct {
	Repo Repository
}

type service struct {
	repo Repository
}

// NewService constructs a payment method service.
func NewService(params ServiceParams) (*service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payment method repo required")
	}
	return &service{repo: params.Repo}, nil
}

// ListEnabled returns the customer-facing payment methods in display order.
func (s *service) ListEnabled(ctx context.Context) ([]models.PaymentMethodAccount, error) {
	methods, err := s.repo.ListPaymentMethods(ctx, true)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payment methods")
	}
	return methods, nil
}

// ListAll returns every payment method, including disabled ones, for the
// admin dashboard.
func (s *service) ListAll(ctx context.Context) ([]models.PaymentMethodAccount, error) {
	methods, err := s.repo.ListPaymentMethods(ctx, false)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payment methods")
	}
	return methods, nil
}

// UpdateAccount edits a payment destination's display fields or toggles it.
func (s *service) UpdateAccount(ctx context.Context, id uuid.UUID, input UpdateAccountInput) (*models.PaymentMethodAccount, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment method id is required")
	}

	method, err := s.repo.FindPaymentMethodByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find payment method")
	}
	if method == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment method not found")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment method name cannot be empty")
		}
		method.Name = name
	}
	if input.AccountName != nil {
		method.AccountName = strings.TrimSpace(*input.AccountName)
	}
	if input.AccountNumber != nil {
		method.AccountNumber = strings.TrimSpace(*input.AccountNumber)
	}
	if input.QRCodeURL != nil {
		method.QRCodeURL = input.QRCodeURL
	}
	if input.Enabled != nil {
		method.Enabled = *input.Enabled
	}
	if input.SortOrder != nil {
		method.SortOrder = *input.SortOrder
	}

	if err := s.repo.SavePaymentMethod(ctx, method); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save payment method")
	}
	return method, nil
}

// FindEnabledByCode resolves a checkout selection. Disabled and unknown
// codes both resolve to nil.
func (s *service) FindEnabledByCode(ctx context.Context, code string) (*models.PaymentMethodAccount, error) {
	if strings.TrimSpace(code) == "" {
		return nil, nil
	}
	method, err := s.repo.FindPaymentMethodByCode(ctx, code)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find payment method")
	}
	if method == nil || !method.Enabled {
		return nil, nil
	}
	return method, nil
}

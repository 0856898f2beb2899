package affiliates

import (
	"context"
	"math/rand"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/sweetquest/sweetquest-backend/pkg/db"
	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	"github.com/sweetquest/sweetquest-backend/pkg/enums"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
)

const referralCodeConstraint = "affiliates_referral_code_key"

// Service manages affiliate partners and referral code resolution.
type Service interface {
	ListAffiliates(ctx context.Context, params ListAffiliatesParams) ([]models.Affiliate, error)
	CreateAffiliate(ctx context.Context, input CreateAffiliateInput) (*models.Affiliate, error)
	UpdateAffiliate(ctx context.Context, id uuid.UUID, input UpdateAffiliateInput) (*models.Affiliate, error)
	DeleteAffiliate(ctx context.Context, id uuid.UUID) error
	LookupByCode(ctx context.Context, code string) (*models.Affiliate, error)
	GenerateCode(name string) string
}

// ListAffiliatesParams configures an affiliate listing.
type ListAffiliatesParams struct {
	Status *enums.AffiliateStatus
}

// CreateAffiliateInput captures a new affiliate. An empty ReferralCode asks
// the service to derive one from the name.
type CreateAffiliateInput struct {
	Name         string
	Email        *string
	Phone        *string
	ReferralCode string
	Status       *enums.AffiliateStatus
	Notes        *string
}

// UpdateAffiliateInput applies a partial update; nil fields are untouched.
type UpdateAffiliateInput struct {
	Name         *string
	Email        *string
	Phone        *string
	ReferralCode *string
	Status       *enums.AffiliateStatus
	Notes        *string
}

// ServiceParams groups dependencies for the affiliate service.
type ServiceParams struct {
	Repo Repository
	// RandInt returns a value in [0, n). Overridable for deterministic codes.
	RandInt func(n int) int
}

type service struct {
	repo    Repository
	randInt func(n int) int
}

// NewService constructs an affiliate service.
func NewService(params ServiceParams) (*service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "affiliate repo required")
	}
	randInt := params.RandInt
	if randInt == nil {
		randInt = rand.Intn
	}
	return &service{repo: params.Repo, randInt: randInt}, nil
}

// ListAffiliates returns affiliates newest first.
func (s *service) ListAffiliates(ctx context.Context, params ListAffiliatesParams) ([]models.Affiliate, error) {
	affiliates, err := s.repo.ListAffiliates(ctx, ListAffiliatesQuery{Status: params.Status})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list affiliates")
	}
	return affiliates, nil
}

// CreateAffiliate registers a partner. Referral codes are unique; a duplicate
// surfaces as a conflict rather than being pre-checked.
func (s *service) CreateAffiliate(ctx context.Context, input CreateAffiliateInput) (*models.Affiliate, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "affiliate name is required")
	}

	status := enums.AffiliateStatusActive
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid affiliate status")
		}
		status = *input.Status
	}

	code := strings.TrimSpace(input.ReferralCode)
	if code == "" {
		code = s.GenerateCode(name)
	}

	affiliate := &models.Affiliate{
		Name:         name,
		Email:        input.Email,
		Phone:        input.Phone,
		ReferralCode: code,
		Status:       status,
		Notes:        input.Notes,
	}

	if err := s.repo.CreateAffiliate(ctx, affiliate); err != nil {
		if db.IsUniqueViolation(err, referralCodeConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "referral code already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create affiliate")
	}
	return affiliate, nil
}

// UpdateAffiliate applies the non-nil fields and saves.
func (s *service) UpdateAffiliate(ctx context.Context, id uuid.UUID, input UpdateAffiliateInput) (*models.Affiliate, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "affiliate id is required")
	}

	affiliate, err := s.repo.FindAffiliateByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find affiliate")
	}
	if affiliate == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "affiliate not found")
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "affiliate name cannot be empty")
		}
		affiliate.Name = name
	}
	if input.Email != nil {
		affiliate.Email = input.Email
	}
	if input.Phone != nil {
		affiliate.Phone = input.Phone
	}
	if input.ReferralCode != nil {
		code := strings.TrimSpace(*input.ReferralCode)
		if code == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "referral code cannot be empty")
		}
		affiliate.ReferralCode = code
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid affiliate status")
		}
		affiliate.Status = *input.Status
	}
	if input.Notes != nil {
		affiliate.Notes = input.Notes
	}

	if err := s.repo.UpdateAffiliate(ctx, affiliate); err != nil {
		if db.IsUniqueViolation(err, referralCodeConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "referral code already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update affiliate")
	}
	return affiliate, nil
}

// DeleteAffiliate removes a partner. Orders keep their attribution columns;
// only the weak affiliate reference is nulled by the schema.
func (s *service) DeleteAffiliate(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "affiliate id is required")
	}

	deleted, err := s.repo.DeleteAffiliate(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete affiliate")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "affiliate not found")
	}
	return nil
}

// LookupByCode resolves a referral code to an active affiliate. Unknown,
// inactive and suspended codes all resolve to nil without error.
func (s *service) LookupByCode(ctx context.Context, code string) (*models.Affiliate, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}

	active := enums.AffiliateStatusActive
	affiliate, err := s.repo.FindAffiliateByCode(ctx, code, &active)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find affiliate by code")
	}
	return affiliate, nil
}

// GenerateCode derives a referral code from the partner name: lowercase with
// whitespace stripped, plus a numeric suffix in [0, 1000).
func (s *service) GenerateCode(name string) string {
	base := strings.ToLower(name)
	base = strings.Join(strings.Fields(base), "")
	return base + strconv.Itoa(s.randInt(1000))
}

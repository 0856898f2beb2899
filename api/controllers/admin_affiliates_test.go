package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/sweetquest/sweetquest-backend/internal/affiliates"
	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	"github.com/sweetquest/sweetquest-backend/pkg/enums"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
)

type stubAffiliateService struct {
	records []models.Affiliate
	record  *models.Affiliate
	err     error

	gotCreate    affiliates.CreateAffiliateInput
	gotUpdate    affiliates.UpdateAffiliateInput
	deleted      []uuid.UUID
	generatedFor string
}

func (s *stubAffiliateService) ListAffiliates(ctx context.Context, params affiliates.ListAffiliatesParams) ([]models.Affiliate, error) {
	return s.records, s.err
}

func (s *stubAffiliateService) CreateAffiliate(ctx context.Context, input affiliates.CreateAffiliateInput) (*models.Affiliate, error) {
	s.gotCreate = input
	return s.record, s.err
}

func (s *stubAffiliateService) UpdateAffiliate(ctx context.Context, id uuid.UUID, input affiliates.UpdateAffiliateInput) (*models.Affiliate, error) {
	s.gotUpdate = input
	return s.record, s.err
}

func (s *stubAffiliateService) DeleteAffiliate(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	return s.err
}

func (s *stubAffiliateService) LookupByCode(ctx context.Context, code string) (*models.Affiliate, error) {
	return s.record, s.err
}

func (s *stubAffiliateService) GenerateCode(name string) string {
	s.generatedFor = name
	return "mariasantos42"
}

func TestAdminAffiliateCreate(t *testing.T) {
	svc := &stubAffiliateService{record: &models.Affiliate{
		ID:           uuid.New(),
		Name:         "Maria Santos",
		ReferralCode: "mariasantos42",
		Status:       enums.AffiliateStatusActive,
	}}
	handler := AdminAffiliateCreate(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/affiliates", strings.NewReader(`{"name":"Maria Santos"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotCreate.Name != "Maria Santos" {
		t.Fatalf("unexpected name: %q", svc.gotCreate.Name)
	}

	var envelope struct {
		Data affiliateResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.ReferralCode != "mariasantos42" {
		t.Fatalf("unexpected code: %q", envelope.Data.ReferralCode)
	}
}

func TestAdminAffiliateCreateDuplicateCode(t *testing.T) {
	svc := &stubAffiliateService{err: pkgerrors.New(pkgerrors.CodeConflict, "referral code already in use")}
	handler := AdminAffiliateCreate(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/affiliates", strings.NewReader(`{"name":"Maria","referral_code":"maria1"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}

func TestAdminAffiliateCreateBadStatus(t *testing.T) {
	handler := AdminAffiliateCreate(&stubAffiliateService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/affiliates", strings.NewReader(`{"name":"Maria","status":"retired"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminAffiliateUpdatePartial(t *testing.T) {
	id := uuid.New()
	svc := &stubAffiliateService{record: &models.Affiliate{ID: id, Name: "Maria S.", Status: enums.AffiliateStatusInactive}}
	handler := AdminAffiliateUpdate(svc, nil)

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/v1/affiliates/{affiliateID}", strings.NewReader(`{"status":"inactive"}`))
	req = withChiParam(req, "affiliateID", id.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.gotUpdate.Name != nil {
		t.Fatal("expected untouched name")
	}
	if svc.gotUpdate.Status == nil || *svc.gotUpdate.Status != enums.AffiliateStatusInactive {
		t.Fatal("expected inactive status in update input")
	}
}

func TestAdminAffiliateGenerateCode(t *testing.T) {
	svc := &stubAffiliateService{}
	handler := AdminAffiliateGenerateCode(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/affiliates/generate-code", strings.NewReader(`{"name":"Maria Santos"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.generatedFor != "Maria Santos" {
		t.Fatalf("unexpected name: %q", svc.generatedFor)
	}

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data["code"] != "mariasantos42" {
		t.Fatalf("unexpected code: %q", envelope.Data["code"])
	}
}

func TestAdminAffiliateGenerateCodeMissingName(t *testing.T) {
	handler := AdminAffiliateGenerateCode(&stubAffiliateService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/affiliates/generate-code", strings.NewReader(`{}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminAffiliateDelete(t *testing.T) {
	id := uuid.New()
	svc := &stubAffiliateService{}
	handler := AdminAffiliateDelete(svc, nil)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/v1/affiliates/{affiliateID}", nil)
	req = withChiParam(req, "affiliateID", id.String())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(svc.deleted) != 1 || svc.deleted[0] != id {
		t.Fatal("expected delete to reach the service")
	}
}

package settings

import (
	"context"
	"testing"

	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	"github.com/sweetquest/sweetquest-backend/pkg/enums"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
)

type stubRepo struct {
	settings map[string]*models.SiteSetting
}

func (s *stubRepo) ListSettings(ctx context.Context) ([]models.SiteSetting, error) {
	var out []models.SiteSetting
	for _, setting := range s.settings {
		out = append(out, *setting)
	}
	return out, nil
}

func (s *stubRepo) FindSettingByID(ctx context.Context, id string) (*models.SiteSetting, error) {
	return s.settings[id], nil
}

func (s *stubRepo) UpsertSetting(ctx context.Context, setting *models.SiteSetting) error {
	s.settings[setting.ID] = setting
	return nil
}

func TestGetSettingNotFound(t *testing.T) {
	svc, _ := NewService(ServiceParams{Repo: &stubRepo{settings: map[string]*models.SiteSetting{}}})
	_, err := svc.GetSetting(context.Background(), "store_name")
	if err == nil {
		t.Fatal("expected not found error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestPutSettingDefaultsToTextType(t *testing.T) {
	repo := &stubRepo{settings: map[string]*models.SiteSetting{}}
	svc, _ := NewService(ServiceParams{Repo: repo})

	setting, err := svc.PutSetting(context.Background(), PutSettingInput{ID: "store_name", Value: "Sweet Quest"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if setting.Type != enums.SettingTypeText {
		t.Fatalf("expected text type default, got %q", setting.Type)
	}

	stored, err := svc.GetSetting(context.Background(), "store_name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.Value != "Sweet Quest" {
		t.Fatalf("expected stored value, got %q", stored.Value)
	}
}

func TestPutSettingRejectsInvalidType(t *testing.T) {
	svc, _ := NewService(ServiceParams{Repo: &stubRepo{settings: map[string]*models.SiteSetting{}}})
	_, err := svc.PutSetting(context.Background(), PutSettingInput{
		ID:    "store_name",
		Value: "x",
		Type:  enums.SettingType("blob"),
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

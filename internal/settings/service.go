package settings

import (
	"context"
	"strings"

	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	"github.com/sweetquest/sweetquest-backend/pkg/enums"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
)

// Service exposes storefront configuration values.
type Service interface {
	ListSettings(ctx context.Context) ([]models.SiteSetting, error)
	GetSetting(ctx context.Context, id string) (*models.SiteSetting, error)
	PutSetting(ctx context.Context, input PutSettingInput) (*models.SiteSetting, error)
}

// PutSettingInput creates or replaces a keyed setting.
type PutSettingInput struct {
	ID          string
	Value       string
	Type        enums.SettingType
	Description *string
}

// ServiceParams groups dependencies for the settings service.
type ServiceParams struct {
	Repo Repository
}

type service struct {
	repo Repository
}

// NewService constructs a settings service.
func NewService(params ServiceParams) (*service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "settings repo required")
	}
	return &service{repo: params.Repo}, nil
}

// ListSettings returns every setting ordered by key.
func (s *service) ListSettings(ctx context.Context) ([]models.SiteSetting, error) {
	settings, err := s.repo.ListSettings(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list settings")
	}
	return settings, nil
}

// GetSetting returns one setting by key.
func (s *service) GetSetting(ctx context.Context, id string) (*models.SiteSetting, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "setting id is required")
	}
	setting, err := s.repo.FindSettingByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "find setting")
	}
	if setting == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "setting not found")
	}
	return setting, nil
}

// PutSetting creates or replaces a setting.
func (s *service) PutSetting(ctx context.Context, input PutSettingInput) (*models.SiteSetting, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "setting id is required")
	}
	settingType := input.Type
	if settingType == "" {
		settingType = enums.SettingTypeText
	}
	if !settingType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid setting type")
	}

	setting := &models.SiteSetting{
		ID:          id,
		Value:       input.Value,
		Type:        settingType,
		Description: input.Description,
	}
	if err := s.repo.UpsertSetting(ctx, setting); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save setting")
	}
	return setting, nil
}

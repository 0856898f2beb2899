package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sweetquest/sweetquest-backend/api/responses"
	"github.com/sweetquest/sweetquest-backend/api/validators"
	"github.com/sweetquest/sweetquest-backend/internal/settings"
	"github.com/sweetquest/sweetquest-backend/pkg/db/models"
	"github.com/sweetquest/sweetquest-backend/pkg/enums"
	pkgerrors "github.com/sweetquest/sweetquest-backend/pkg/errors"
	"github.com/sweetquest/sweetquest-backend/pkg/logger"
)

type settingResponse struct {
	ID          string    `json:"id"`
	Value       string    `json:"value"`
	Type        string    `json:"type"`
	Description *string   `json:"description,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func newSettingResponse(setting models.SiteSetting) settingResponse {
	return settingResponse{
		ID:          setting.ID,
		Value:       setting.Value,
		Type:        string(setting.Type),
		Description: setting.Description,
		UpdatedAt:   setting.UpdatedAt,
	}
}

// SettingsList returns all storefront settings.
func SettingsList(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		records, err := svc.ListSettings(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]settingResponse, len(records))
		for i, record := range records {
			out[i] = newSettingResponse(record)
		}
		responses.WriteSuccess(w, out)
	}
}

// SettingGet returns one setting by key.
func SettingGet(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "settingID"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "setting id is required"))
			return
		}

		record, err := svc.GetSetting(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newSettingResponse(*record))
	}
}

type putSettingRequest struct {
	Value       string  `json:"value" validate:"required"`
	Type        string  `json:"type"`
	Description *string `json:"description"`
}

// AdminSettingPut creates or replaces a keyed setting.
func AdminSettingPut(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "settingID"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "setting id is required"))
			return
		}

		var body putSettingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.PutSetting(r.Context(), settings.PutSettingInput{
			ID:          id,
			Value:       body.Value,
			Type:        enums.SettingType(body.Type),
			Description: body.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newSettingResponse(*record))
	}
}
